package melee

import (
	"math"
	"math/rand/v2"

	"vcombat/pkg/anatomy"
	"vcombat/pkg/tools"
	"vcombat/pkg/vertical"
)

const (
	// Damage rolls between these multiples of the tool's power
	damageSpreadMin = 0.8
	damageSpreadMax = 1.2

	critPenetrationMult  = 2
	critStunFactor  = 0.25
	shieldBashPower = 6
	neckPart        = "Neck"
)

// DamageInfo is one packet of damage an attack deals. The tool travels with it
// so the receiver never has to guess which of the attacker's tools made it.
type DamageInfo struct {
	Kind             string
	Amount           float64
	ArmorPenetration float64
	Region           vertical.Region
	Depth            anatomy.Depth
	Part             int // -1 lets the receiver pick
	Tool             *tools.Tool
	Instigator       uint64
	Parried          bool
	KnockDown        bool
}

func spread(rng *rand.Rand, v float64) float64 {
	return v * (damageSpreadMin + rng.Float64()*(damageSpreadMax-damageSpreadMin))
}

// roundRandom rounds v down or up with probability equal to its fraction.
func roundRandom(rng *rand.Rand, v float64) float64 {
	f := math.Floor(v)
	if rng.Float64() < v-f {
		return f + 1
	}
	return f
}

func isSharp(kind string) bool {
	return kind == "Cut" || kind == "Stab" || kind == "Scratch" || kind == "Bite"
}

// DamageInfos builds the damage an attack deals: the main blow against the
// struck part, then any extra damages the tool carries. crit doubles the
// armour penetration of sharp blows from non-animals, stuns flesh targets on blunt blows and lets animals
// knock their target down.
func DamageInfos(rng *rand.Rand, a Attack, crit bool) []DamageInfo {
	var instigator uint64
	if a.Attacker != nil {
		instigator = a.Attacker.ID
	}
	if a.Tool == nil {
		return []DamageInfo{{Kind: "Blunt", Amount: 1, Part: -1, Instigator: instigator}}
	}

	// Crit and armour rules follow the tool's declared kind even when a weak
	// blow lands as blunt
	kind := a.Tool.DamageKind()
	sharp := isSharp(kind)
	amount := spread(rng, a.Tool.Power)
	if amount < 1 {
		amount = 1
		kind = "Blunt"
	}

	animal := a.Attacker != nil && a.Attacker.Animal
	mult := 1.0
	if crit && sharp && !animal {
		mult = critPenetrationMult
	}
	ap := a.Tool.ArmorPenetrationBlunt
	if sharp {
		ap = a.Tool.ArmorPenetrationSharp
	}

	main := DamageInfo{
		Kind:             kind,
		Amount:           amount,
		ArmorPenetration: ap * mult,
		Part:             -1,
		Tool:             a.Tool,
		Instigator:       instigator,
	}

	if a.Target.Creature() {
		part, region := StruckRegion(rng, a)
		main.Region = region
		main.Part = part
		if part >= 0 {
			main.Depth = a.Target.Body.Parts[part].Depth
		}
		// Predators go for the throat of helpless prey
		if a.Attacker != nil && a.Attacker.Predator && a.Target.Immobile() {
			if neck, ok := findNeck(a.Target); ok {
				main.Part = neck
				main.Region = vertical.RegionTop
				main.Depth = anatomy.DepthOutside
			}
		}
	}
	if crit && animal {
		main.KnockDown = true
	}

	infos := []DamageInfo{main}
	for _, extra := range a.Tool.ExtraDamages {
		if extra.Chance > 0 && !chance(rng, extra.Chance) {
			continue
		}
		infos = append(infos, DamageInfo{
			Kind:             extra.Def,
			Amount:           spread(rng, extra.Amount),
			ArmorPenetration: extra.ArmorPenetration,
			Region:           vertical.RegionUndefined,
			Depth:            anatomy.DepthOutside,
			Part:             -1,
			Tool:             a.Tool,
			Instigator:       instigator,
		})
	}

	if crit && !sharp && !animal && a.Target.Flesh {
		infos = append(infos, DamageInfo{
			Kind:             "Stun",
			Amount:           roundRandom(rng, main.Amount*critStunFactor),
			ArmorPenetration: main.ArmorPenetration,
			Region:           main.Region,
			Depth:            anatomy.DepthOutside,
			Part:             -1,
			Tool:             a.Tool,
			Instigator:       instigator,
		})
	}
	return infos
}

func findNeck(c *Combatant) (int, bool) {
	for _, idx := range c.Body.NotMissingParts(c.Injuries, vertical.RegionTop, anatomy.DepthOutside) {
		if c.Body.Parts[idx].Def == neckPart {
			return idx, true
		}
	}
	return -1, false
}

// shieldBash is the blow a shield riposte deals back to the attacker.
func shieldBash(a Attack) DamageInfo {
	var instigator uint64
	if a.Target != nil {
		instigator = a.Target.ID
	}
	return DamageInfo{
		Kind:       "Blunt",
		Amount:     shieldBashPower,
		Region:     vertical.RegionUndefined,
		Part:       -1,
		Instigator: instigator,
	}
}

// DamageTaker receives damage. TakeDamage reports whether the damage was
// absorbed (for example by armour or a destroyed part).
type DamageTaker interface {
	TakeDamage(DamageInfo) bool
}

// Apply hands every info to taker and returns how many were not absorbed.
func Apply(taker DamageTaker, infos []DamageInfo) int {
	if taker == nil {
		return 0
	}
	landed := 0
	for _, info := range infos {
		if !taker.TakeDamage(info) {
			landed++
		}
	}
	return landed
}
