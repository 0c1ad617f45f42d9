package selection

import (
	"math/rand/v2"

	"vcombat/pkg/anatomy"
	"vcombat/pkg/vertical"
)

// Candidates lists the outside, still attached parts of body whose region lies
// between the regions the band's edges fall into on target.
func Candidates(body *anatomy.Body, state *anatomy.State, target, band vertical.Interval) []int {
	if body == nil {
		return nil
	}
	lo := target.RegionFor(band.Min, true)
	hi := target.RegionFor(band.Max, true)
	if lo == hi {
		return body.NotMissingParts(state, lo, anatomy.DepthOutside)
	}

	var out []int
	for _, idx := range body.NotMissingParts(state, vertical.RegionUndefined, anatomy.DepthOutside) {
		r := body.Parts[idx].Region
		if r >= lo && r <= hi {
			out = append(out, idx)
		}
	}
	return out
}

// SelectPart draws the struck part for a strike landing in band on a target
// occupying target. Parts weigh their coverage times the band's share of their
// region times the part's hit chance factor for damageKind. If the damage kind
// rules every candidate out, the draw is repeated without it. The bool is false
// when no part has coverage in the band.
func SelectPart(rng *rand.Rand, body *anatomy.Body, state *anatomy.State, target, band vertical.Interval, damageKind string) (int, bool) {
	candidates := Candidates(body, state, target, band)
	if len(candidates) == 0 {
		return -1, false
	}

	overlap := func(idx int) float64 {
		p := &body.Parts[idx]
		return p.Coverage * target.WeightForRegion(band, p.Region)
	}
	withHitChance := func(idx int) float64 {
		return overlap(idx) * body.Parts[idx].HitChanceFactor(damageKind)
	}

	if idx, ok := Draw(rng, candidates, withHitChance); ok {
		return idx, true
	}
	if idx, ok := Draw(rng, candidates, overlap); ok {
		return idx, true
	}
	return -1, false
}
