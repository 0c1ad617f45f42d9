package vertical

import (
	"math"

	"vcombat/pkg/shared/config"
)

// Interval is the vertical space an entity or cell occupies, in cell height units.
type Interval struct {
	Min float64
	Max float64
}

// NewInterval orders its bounds so that Min <= Max always holds.
func NewInterval(a, b float64) Interval {
	if a > b {
		a, b = b, a
	}
	return Interval{Min: a, Max: b}
}

func (i Interval) Span() float64 {
	return i.Max - i.Min
}

// BottomHeight is the top of the bottom region.
func (i Interval) BottomHeight() float64 {
	return i.Min + i.Span()*config.BodyRegionBottomHeight
}

// MiddleHeight is the top of the middle region.
func (i Interval) MiddleHeight() float64 {
	return i.Min + i.Span()*config.BodyRegionMiddleHeight
}

// RegionFor classifies a height against the interval. With allowOutOfBounds
// heights below Min count as Bottom and heights at or above Max as Top;
// otherwise both return Undefined.
func (i Interval) RegionFor(height float64, allowOutOfBounds bool) Region {
	switch {
	case !allowOutOfBounds && height < i.Min:
		return RegionUndefined
	case height < i.BottomHeight():
		return RegionBottom
	case height < i.MiddleHeight():
		return RegionMiddle
	case allowOutOfBounds || height < i.Max:
		return RegionTop
	default:
		return RegionUndefined
	}
}

// RegionBand returns the part of the interval a region covers, (0,0) for Undefined.
func (i Interval) RegionBand(r Region) Interval {
	switch r {
	case RegionBottom:
		return Interval{Min: i.Min, Max: i.BottomHeight()}
	case RegionMiddle:
		return Interval{Min: i.BottomHeight(), Max: i.MiddleHeight()}
	case RegionTop:
		return Interval{Min: i.MiddleHeight(), Max: i.Max}
	default:
		return Interval{}
	}
}

// WeightForRegion is the fraction of the region band covered by band.
// A zero-span region band weighs 0 and a band that misses the region weighs 0.
func (i Interval) WeightForRegion(band Interval, r Region) float64 {
	region := i.RegionBand(r)
	span := region.Span()
	if span <= 0 {
		return 0
	}
	covered := math.Min(band.Max, region.Max) - math.Max(band.Min, region.Min)
	if covered <= 0 || math.IsNaN(covered) {
		return 0
	}
	return covered / span
}

// Overlap intersects two intervals without reordering the result, so callers
// can tell an empty overlap (lo > hi) apart from a touching one.
func (i Interval) Overlap(other Interval) (lo, hi float64) {
	return math.Max(i.Min, other.Min), math.Min(i.Max, other.Max)
}
