package melee

import (
	"math/rand/v2"

	"vcombat/pkg/selection"
	"vcombat/pkg/tools"
)

const (
	// A usable tool never has zero weight, so it can still be picked when
	// nothing else is available
	usableFloorWeight = 0.0001
	worstShareWeight  = 0.00001

	bestCategoryShare = 0.75
	midCategoryShare  = 0.25

	bestCategoryFrac  = 0.95
	worstCategoryFrac = 0.25
)

// Category buckets tools by how their base weight compares to the best one.
type Category int

const (
	CategoryBest Category = iota
	CategoryMid
	CategoryWorst
)

// Usable reports whether c can swing t. Sex-restricted tools need a creature
// of that sex. A natural tool is lost with the last part of its linked group
// unless it is always usable.
func Usable(c *Combatant, t *tools.Tool) bool {
	if t == nil {
		return false
	}
	if !c.Creature() {
		return true
	}
	if t.RestrictedGender != tools.GenderNone && t.RestrictedGender != c.Gender {
		return false
	}
	if t.EnsureAlwaysUsable || t.LinkedGroup == "" || t.Owner().IsWeapon() {
		return true
	}
	return c.Body.GroupIntact(c.Injuries, t.LinkedGroup)
}

// BaseWeight is the tool's damage per second scaled by its chance factor.
// Tools the attacker cannot use or that cannot reach the target weigh nothing.
func BaseWeight(a Attack) float64 {
	if !Usable(a.Attacker, a.Tool) || !CanReach(a) {
		return 0
	}
	cooldown := a.Tool.Cooldown
	if cooldown <= 0 {
		cooldown = 1
	}
	factor := a.Tool.ChanceFactor
	if factor <= 0 {
		factor = 1
	}
	return a.Tool.Power / cooldown * factor
}

// SelectionWeight is BaseWeight with the floor for usable tools applied.
func SelectionWeight(a Attack) float64 {
	w := BaseWeight(a)
	if w == 0 && Usable(a.Attacker, a.Tool) && CanReach(a) {
		return usableFloorWeight
	}
	return w
}

// CategoryOf places weight relative to highest.
func CategoryOf(weight, highest float64) Category {
	switch {
	case weight >= highest*bestCategoryFrac:
		return CategoryBest
	case weight < highest*worstCategoryFrac:
		return CategoryWorst
	}
	return CategoryMid
}

// FinalWeights turns the candidate attacks' selection weights into draw
// weights. Best tools share most of the probability, mid tools the rest, and
// worst tools together get a vanishing share that only matters when they are
// the only option.
func FinalWeights(attacks []Attack) []float64 {
	raw := make([]float64, len(attacks))
	var highest float64
	for i, a := range attacks {
		raw[i] = SelectionWeight(a)
		highest = max(highest, raw[i])
	}

	cats := make([]Category, len(attacks))
	counts := map[Category]int{}
	for i, w := range raw {
		if w <= 0 {
			continue
		}
		cats[i] = CategoryOf(w, highest)
		counts[cats[i]]++
	}

	out := make([]float64, len(attacks))
	for i, w := range raw {
		if w <= 0 {
			continue
		}
		n := float64(counts[cats[i]])
		switch cats[i] {
		case CategoryBest:
			out[i] = bestCategoryShare / n
		case CategoryMid:
			out[i] = midCategoryShare / n
		case CategoryWorst:
			out[i] = 1 / n * worstShareWeight
		}
	}
	return out
}

// ChooseTool draws the tool attacker swings at target from ts.
func ChooseTool(rng *rand.Rand, attacker, target *Combatant, ts []*tools.Tool) (*tools.Tool, bool) {
	attacks := make([]Attack, len(ts))
	for i, t := range ts {
		attacks[i] = NewAttack(attacker, target, t)
	}
	weights := FinalWeights(attacks)
	idx := make([]int, len(ts))
	for i := range idx {
		idx[i] = i
	}
	i, ok := selection.Draw(rng, idx, func(i int) float64 { return weights[i] })
	if !ok {
		return nil, false
	}
	return ts[i], true
}
