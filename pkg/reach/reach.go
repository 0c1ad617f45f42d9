package reach

import (
	"vcombat/pkg/shared/config"
	"vcombat/pkg/tools"
	"vcombat/pkg/vertical"
)

// FallbackSpan is the width of a band produced by fallback widening.
const FallbackSpan = config.MeleeFallbackSpan

// Envelope is the height band an attack can land in.
type Envelope struct {
	Band         vertical.Interval
	UsedFallback bool
}

// Band is the natural band an attacker covers when striking from region,
// extended by reach in both directions.
//
//	Bottom: legs, plus reach to kick low torso parts
//	Middle: arm length, up and down
//	Top:    neck to top of head
func Band(attacker vertical.Interval, region vertical.Region, reach float64) vertical.Interval {
	switch region {
	case vertical.RegionBottom:
		return vertical.Interval{
			Min: attacker.Min - reach,
			Max: attacker.BottomHeight() + reach,
		}
	case vertical.RegionMiddle:
		span := attacker.RegionBand(region).Span()
		return vertical.Interval{
			Min: attacker.BottomHeight() - config.MeleeMiddleInset - reach,
			Max: attacker.MiddleHeight() - config.MeleeMiddleInset + span + reach,
		}
	case vertical.RegionTop:
		return vertical.Interval{
			Min: attacker.MiddleHeight() - reach,
			Max: attacker.Max + reach,
		}
	default:
		return attacker
	}
}

// Resolve intersects the attacker's band with the target. When they do not
// overlap, policy may narrow the band to FallbackSpan at the target's nearest
// edge: downwards when the target is below the band, upwards when it is above.
// A nil target skips the intersection. The bool is false when the attack
// cannot land at all.
func Resolve(attacker vertical.Interval, region vertical.Region, reach float64, policy tools.Fallback, target *vertical.Interval) (Envelope, bool) {
	band := Band(attacker, region, reach)
	if target == nil {
		return Envelope{Band: band}, true
	}

	lo, hi := band.Overlap(*target)
	if lo <= hi {
		return Envelope{Band: vertical.Interval{Min: lo, Max: hi}}, true
	}

	switch {
	case lo == band.Min && policy.AllowsLower():
		// Target stands below the band, e.g. behind a barricade we stand on
		return Envelope{Band: vertical.Interval{Min: hi - FallbackSpan, Max: hi}, UsedFallback: true}, true
	case hi == band.Max && policy.AllowsUpper():
		// Target stands above the band
		return Envelope{Band: vertical.Interval{Min: lo, Max: lo + FallbackSpan}, UsedFallback: true}, true
	default:
		return Envelope{}, false
	}
}
