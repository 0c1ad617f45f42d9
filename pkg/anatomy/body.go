package anatomy

import (
	"vcombat/pkg/vertical"
)

// Depth is whether a part sits on the outside of the body or inside it.
type Depth int

const (
	DepthUndefined Depth = iota
	DepthInside
	DepthOutside
)

// Tag marks what a part does for the body. Losing every part carrying a vital
// tag kills the creature.
type Tag struct {
	Name  string
	Vital bool
}

// Part is one node of a body tree. Parent and Children are indices into Body.Parts.
type Part struct {
	Name      string
	Def       string
	Region    vertical.Region
	Depth     Depth
	Coverage  float64 // Absolute coverage, used as the selection weight
	Parent    int     // -1 for the core part
	Children  []int
	Groups    []string
	Tags      []Tag
	HitChance map[string]float64 // Damage kind -> hit chance factor, default 1
}

// Body is an arena of parts rooted at the core part (the torso).
type Body struct {
	Name  string
	Parts []Part
	Core  int
}

func NewBody(name string) *Body {
	return &Body{Name: name, Core: -1}
}

// AddPart appends p under parent and returns its index. The first part added
// with parent -1 becomes the core; later roots are rejected with -1.
func (b *Body) AddPart(parent int, p Part) int {
	if parent < 0 {
		if b.Core >= 0 {
			return -1
		}
		p.Parent = -1
		b.Parts = append(b.Parts, p)
		b.Core = len(b.Parts) - 1
		return b.Core
	}
	if parent >= len(b.Parts) {
		return -1
	}
	p.Parent = parent
	p.Children = nil
	b.Parts = append(b.Parts, p)
	idx := len(b.Parts) - 1
	b.Parts[parent].Children = append(b.Parts[parent].Children, idx)
	return idx
}

func (b *Body) valid(idx int) bool {
	return idx >= 0 && idx < len(b.Parts)
}

func (b *Body) IsCore(idx int) bool {
	return idx == b.Core
}

// InferRegion returns the region a part attacks from or is hit at: the declared
// region of its ancestor directly attached to the core. Fingers on an arm hang
// off the shoulder and are Middle even if declared Bottom; legs and the neck keep
// their own region. Missing parts, the core and undeclared regions give Middle.
func (b *Body) InferRegion(idx int) vertical.Region {
	if b == nil || !b.valid(idx) || b.IsCore(idx) {
		return vertical.RegionMiddle
	}

	prev := idx
	parent := b.Parts[idx].Parent
	for steps := 0; parent != b.Core; steps++ {
		if !b.valid(parent) || steps > len(b.Parts) {
			// Detached from the core
			return vertical.RegionMiddle
		}
		prev = parent
		parent = b.Parts[parent].Parent
	}

	if r := b.Parts[prev].Region; r.Defined() {
		return r
	}
	return vertical.RegionMiddle
}

// Subtree lists idx and all its descendants in pre-order.
func (b *Body) Subtree(idx int) []int {
	if !b.valid(idx) {
		return nil
	}
	var out []int
	stack := []int{idx}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, n)
		children := b.Parts[n].Children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return out
}

// FirstInGroup returns the first part, in definition order, belonging to group.
func (b *Body) FirstInGroup(group string) (int, bool) {
	if b == nil || group == "" {
		return -1, false
	}
	for i := range b.Parts {
		if b.Parts[i].InGroup(group) {
			return i, true
		}
	}
	return -1, false
}

func (p *Part) InGroup(group string) bool {
	for _, g := range p.Groups {
		if g == group {
			return true
		}
	}
	return false
}

func (p *Part) IsVital() bool {
	for _, t := range p.Tags {
		if t.Vital {
			return true
		}
	}
	return false
}

func (p *Part) HasTag(name string) bool {
	for _, t := range p.Tags {
		if t.Name == name {
			return true
		}
	}
	return false
}

// HitChanceFactor is the factor for damageKind, 1 when the part does not list it.
func (p *Part) HitChanceFactor(damageKind string) float64 {
	if f, ok := p.HitChance[damageKind]; ok {
		return f
	}
	return 1
}

// HoldsAllOfVitalTag reports whether the subtree under idx contains every
// covered part carrying some vital tag, so that losing idx would also lose that
// whole function. The matching tag name is returned.
func (b *Body) HoldsAllOfVitalTag(idx int) (string, bool) {
	if !b.valid(idx) {
		return "", false
	}

	total := make(map[string]int)
	for i := range b.Parts {
		p := &b.Parts[i]
		if p.Coverage <= 0 {
			continue
		}
		for _, t := range p.Tags {
			if t.Vital {
				total[t.Name]++
			}
		}
	}

	inside := make(map[string]int)
	var order []string
	for _, i := range b.Subtree(idx) {
		p := &b.Parts[i]
		if p.Coverage <= 0 {
			continue
		}
		for _, t := range p.Tags {
			if !t.Vital {
				continue
			}
			if inside[t.Name] == 0 {
				order = append(order, t.Name)
			}
			inside[t.Name]++
		}
	}

	for _, name := range order {
		if inside[name] == total[name] {
			return name, true
		}
	}
	return "", false
}
