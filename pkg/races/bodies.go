package races

import (
	"vcombat/pkg/anatomy"
	"vcombat/pkg/vertical"
)

var (
	breathing     = anatomy.Tag{Name: "BreathingPathway", Vital: true}
	consciousness = anatomy.Tag{Name: "ConsciousnessSource", Vital: true}
	bloodPump     = anatomy.Tag{Name: "BloodPumpingSource", Vital: true}
	bloodFilter   = anatomy.Tag{Name: "BloodFiltrationSource", Vital: true}
	sight         = anatomy.Tag{Name: "SightSource"}
	manipulation  = anatomy.Tag{Name: "ManipulationLimbCore"}
	moving        = anatomy.Tag{Name: "MovingLimbCore"}
)

func outside(name string, region vertical.Region, coverage float64, groups ...string) anatomy.Part {
	return anatomy.Part{Name: name, Def: name, Region: region, Depth: anatomy.DepthOutside, Coverage: coverage, Groups: groups}
}

func inside(name string, coverage float64, tags ...anatomy.Tag) anatomy.Part {
	return anatomy.Part{Name: name, Def: name, Depth: anatomy.DepthInside, Coverage: coverage, Tags: tags}
}

// HumanoidBody builds a fresh humanoid body tree.
func HumanoidBody() *anatomy.Body {
	b := anatomy.NewBody("Human")
	torso := b.AddPart(-1, outside("Torso", vertical.RegionMiddle, 0.3))
	b.AddPart(torso, inside("Heart", 0.02, bloodPump))
	b.AddPart(torso, inside("Left lung", 0.025, breathing))
	b.AddPart(torso, inside("Right lung", 0.025, breathing))
	b.AddPart(torso, inside("Left kidney", 0.017, bloodFilter))
	b.AddPart(torso, inside("Right kidney", 0.017, bloodFilter))

	neckPart := outside("Neck", vertical.RegionTop, 0.075)
	neckPart.Tags = []anatomy.Tag{breathing}
	neck := b.AddPart(torso, neckPart)
	head := b.AddPart(neck, outside("Head", vertical.RegionTop, 0.8, "HeadAttackTool", "UpperHead", "FullHead"))
	skull := b.AddPart(head, outside("Skull", vertical.RegionTop, 0.18, "UpperHead", "FullHead"))
	b.AddPart(skull, inside("Brain", 0.8, consciousness))
	eye := outside("Left eye", vertical.RegionTop, 0.07, "FullHead")
	eye.Tags = []anatomy.Tag{sight}
	b.AddPart(head, eye)
	eye.Name, eye.Def = "Right eye", "Right eye"
	b.AddPart(head, eye)
	b.AddPart(head, outside("Jaw", vertical.RegionTop, 0.15, "Teeth", "FullHead"))

	for _, side := range []string{"Left", "Right"} {
		shoulder := b.AddPart(torso, outside(side+" shoulder", vertical.RegionMiddle, 0.12))
		armPart := outside(side+" arm", vertical.RegionMiddle, 0.77)
		armPart.Tags = []anatomy.Tag{manipulation}
		arm := b.AddPart(shoulder, armPart)
		hand := b.AddPart(arm, outside(side+" hand", vertical.RegionMiddle, 0.14, side+"Hand"))
		for _, f := range []string{"pinky", "ring finger", "middle finger", "index finger", "thumb"} {
			b.AddPart(hand, outside(side+" "+f, vertical.RegionMiddle, 0.08, side+"Hand"))
		}

		legPart := outside(side+" leg", vertical.RegionBottom, 0.14)
		legPart.Tags = []anatomy.Tag{moving}
		leg := b.AddPart(torso, legPart)
		foot := b.AddPart(leg, outside(side+" foot", vertical.RegionBottom, 0.1, "Feet"))
		b.AddPart(foot, outside(side+" little toe", vertical.RegionBottom, 0.06, "Feet"))
	}
	return b
}

// QuadrupedBody builds a fresh four-legged animal body with a tail.
func QuadrupedBody() *anatomy.Body {
	b := anatomy.NewBody("QuadrupedAnimalWithPaws")
	body := b.AddPart(-1, outside("Body", vertical.RegionMiddle, 0.45))
	b.AddPart(body, inside("Heart", 0.02, bloodPump))
	b.AddPart(body, inside("Lungs", 0.03, breathing))
	b.AddPart(body, inside("Kidneys", 0.03, bloodFilter))
	b.AddPart(body, outside("Tail", vertical.RegionMiddle, 0.05))

	neckPart := outside("Neck", vertical.RegionTop, 0.22)
	neckPart.Tags = []anatomy.Tag{breathing}
	neck := b.AddPart(body, neckPart)
	head := b.AddPart(neck, outside("Head", vertical.RegionTop, 0.75, "HeadAttackTool"))
	skull := b.AddPart(head, outside("Skull", vertical.RegionTop, 0.25))
	b.AddPart(skull, inside("Brain", 0.7, consciousness))
	b.AddPart(head, outside("Nose", vertical.RegionTop, 0.1))
	b.AddPart(head, outside("Jaw", vertical.RegionTop, 0.1, "Teeth"))

	for _, leg := range []struct{ name, group string }{
		{"Front left leg", "FrontLeftPaw"},
		{"Front right leg", "FrontRightPaw"},
		{"Rear left leg", ""},
		{"Rear right leg", ""},
	} {
		legPart := outside(leg.name, vertical.RegionBottom, 0.07)
		legPart.Tags = []anatomy.Tag{moving}
		l := b.AddPart(body, legPart)
		var groups []string
		if leg.group != "" {
			groups = append(groups, leg.group)
		}
		b.AddPart(l, outside(leg.name+" paw", vertical.RegionBottom, 0.1, groups...))
	}
	return b
}
