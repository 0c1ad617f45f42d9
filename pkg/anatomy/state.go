package anatomy

import "vcombat/pkg/vertical"

// State is the injury state of one creature's body: which parts are gone.
type State struct {
	missing map[int]bool
}

func NewState() *State {
	return &State{missing: make(map[int]bool)}
}

// SetMissing marks a part as destroyed or severed. Its descendants go with it.
func (s *State) SetMissing(idx int) {
	if s.missing == nil {
		s.missing = make(map[int]bool)
	}
	s.missing[idx] = true
}

func (s *State) MissingCount() int {
	if s == nil {
		return 0
	}
	return len(s.missing)
}

// IsMissing reports whether idx or one of its ancestors is missing.
// A nil state has nothing missing.
func (s *State) IsMissing(b *Body, idx int) bool {
	if s == nil || len(s.missing) == 0 {
		return false
	}
	for steps := 0; b.valid(idx) && steps <= len(b.Parts); steps++ {
		if s.missing[idx] {
			return true
		}
		idx = b.Parts[idx].Parent
	}
	return false
}

// NotMissingParts lists the parts still attached that match region and depth.
// RegionUndefined and DepthUndefined match any part.
func (b *Body) NotMissingParts(s *State, region vertical.Region, depth Depth) []int {
	var out []int
	for i := range b.Parts {
		p := &b.Parts[i]
		if region != vertical.RegionUndefined && p.Region != region {
			continue
		}
		if depth != DepthUndefined && p.Depth != depth {
			continue
		}
		if s.IsMissing(b, i) {
			continue
		}
		out = append(out, i)
	}
	return out
}

// GroupIntact reports whether any part of group is still attached.
func (b *Body) GroupIntact(s *State, group string) bool {
	for i := range b.Parts {
		if b.Parts[i].InGroup(group) && !s.IsMissing(b, i) {
			return true
		}
	}
	return false
}
