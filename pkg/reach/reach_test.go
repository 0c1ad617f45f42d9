package reach

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vcombat/pkg/tools"
	"vcombat/pkg/vertical"
)

func TestBand(t *testing.T) {
	attacker := vertical.Interval{Min: 0, Max: 1}

	tests := []struct {
		region vertical.Region
		reach  float64
		want   vertical.Interval
	}{
		{vertical.RegionBottom, 0, vertical.Interval{Min: 0, Max: 0.45}},
		{vertical.RegionBottom, 0.1, vertical.Interval{Min: -0.1, Max: 0.55}},
		{vertical.RegionMiddle, 0, vertical.Interval{Min: 0.4, Max: 1.2}},
		{vertical.RegionTop, 0.2, vertical.Interval{Min: 0.65, Max: 1.2}},
		{vertical.RegionUndefined, 5, attacker},
	}
	for _, tt := range tests {
		t.Run(tt.region.String(), func(t *testing.T) {
			got := Band(attacker, tt.region, tt.reach)
			assert.InDelta(t, tt.want.Min, got.Min, 1e-9)
			assert.InDelta(t, tt.want.Max, got.Max, 1e-9)
		})
	}
}

func TestResolve_SameHeightMiddle(t *testing.T) {
	i := vertical.Interval{Min: 0, Max: 1}
	env, ok := Resolve(i, vertical.RegionMiddle, 0, tools.FallbackNone, &i)
	require.True(t, ok)
	assert.False(t, env.UsedFallback)
	assert.Greater(t, env.Band.Span(), 0.0)
	assert.InDelta(t, 0.4, env.Band.Min, 1e-9)
	assert.Equal(t, 1.0, env.Band.Max)
}

func TestResolve_NoTarget(t *testing.T) {
	i := vertical.Interval{Min: 0.5, Max: 1.5}
	env, ok := Resolve(i, vertical.RegionTop, 0, tools.FallbackNone, nil)
	require.True(t, ok)
	assert.Equal(t, Band(i, vertical.RegionTop, 0), env.Band)
}

func TestResolve_TopToolAgainstShortTarget(t *testing.T) {
	human := vertical.Interval{Min: 0, Max: 1}
	rabbit := vertical.Interval{Min: 0, Max: 0.3}

	t.Run("fails without lower fallback", func(t *testing.T) {
		for _, p := range []tools.Fallback{tools.FallbackAutomatic, tools.FallbackNone, tools.FallbackNearestAbove} {
			env, ok := Resolve(human, vertical.RegionTop, 0, p, &rabbit)
			assert.False(t, ok, p.String())
			assert.Equal(t, Envelope{}, env)
		}
	})

	t.Run("nearest narrows to the target's top edge", func(t *testing.T) {
		env, ok := Resolve(human, vertical.RegionTop, 0, tools.FallbackNearest, &rabbit)
		require.True(t, ok)
		assert.True(t, env.UsedFallback)
		assert.InDelta(t, 0.25, env.Band.Min, 1e-9)
		assert.InDelta(t, 0.3, env.Band.Max, 1e-9)
		assert.InDelta(t, FallbackSpan, env.Band.Span(), 1e-9)
	})
}

func TestResolve_TargetAbove(t *testing.T) {
	rabbit := vertical.Interval{Min: 0, Max: 0.3}
	// Standing on a barricade
	human := vertical.Interval{Min: 0.5, Max: 1.5}

	_, ok := Resolve(rabbit, vertical.RegionBottom, 0, tools.FallbackNearestBelow, &human)
	assert.False(t, ok)

	env, ok := Resolve(rabbit, vertical.RegionBottom, 0, tools.FallbackNearestAbove, &human)
	require.True(t, ok)
	assert.True(t, env.UsedFallback)
	assert.InDelta(t, 0.5, env.Band.Min, 1e-9)
	assert.InDelta(t, 0.55, env.Band.Max, 1e-9)
}

func TestResolve_FallbackAlwaysSpansFallbackSpan(t *testing.T) {
	attacker := vertical.Interval{Min: 0, Max: 1}
	for floor := -2.0; floor <= 2.0; floor += 0.25 {
		target := vertical.Interval{Min: floor, Max: floor + 0.2}
		for _, r := range []vertical.Region{vertical.RegionBottom, vertical.RegionMiddle, vertical.RegionTop} {
			env, ok := Resolve(attacker, r, 0, tools.FallbackFullBody, &target)
			require.True(t, ok)
			if env.UsedFallback {
				assert.InDelta(t, FallbackSpan, env.Band.Span(), 1e-9)
			} else {
				assert.LessOrEqual(t, env.Band.Min, env.Band.Max)
			}
		}
	}
}
