package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vcombat/pkg/anatomy"
	"vcombat/pkg/vertical"
)

func wolfBody() *anatomy.Body {
	b := anatomy.NewBody("QuadrupedAnimalWithPaws")
	torso := b.AddPart(-1, anatomy.Part{Name: "body"})
	neck := b.AddPart(torso, anatomy.Part{Name: "neck", Region: vertical.RegionTop})
	head := b.AddPart(neck, anatomy.Part{Name: "head"})
	b.AddPart(head, anatomy.Part{Name: "jaw", Groups: []string{"Teeth"}})
	leg := b.AddPart(torso, anatomy.Part{Name: "front left leg", Region: vertical.RegionBottom})
	b.AddPart(leg, anatomy.Part{Name: "front left paw", Groups: []string{"FrontLeftPaw"}})
	return b
}

func TestFallbackPredicates(t *testing.T) {
	tests := []struct {
		f            Fallback
		upper, lower bool
	}{
		{FallbackAutomatic, false, false},
		{FallbackNone, false, false},
		{FallbackNearestAbove, true, false},
		{FallbackNearestBelow, false, true},
		{FallbackNearest, true, true},
		{FallbackFullBody, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.f.String(), func(t *testing.T) {
			assert.Equal(t, tt.upper, tt.f.AllowsUpper())
			assert.Equal(t, tt.lower, tt.f.AllowsLower())
		})
	}
}

func TestParseFallback(t *testing.T) {
	f, err := ParseFallback("nearestbelow")
	require.NoError(t, err)
	assert.Equal(t, FallbackNearestBelow, f)

	f, err = ParseFallback("")
	require.NoError(t, err)
	assert.Equal(t, FallbackAutomatic, f)

	_, err = ParseFallback("sideways")
	assert.EqualError(t, err, `unknown fallback "sideways"`)
}

func TestParseGender(t *testing.T) {
	g, err := ParseGender("Female")
	require.NoError(t, err)
	assert.Equal(t, GenderFemale, g)

	g, err = ParseGender("")
	require.NoError(t, err)
	assert.Equal(t, GenderNone, g)

	_, err = ParseGender("Hermaphrodite")
	assert.Error(t, err)
}

func TestReach(t *testing.T) {
	t.Run("natural tools add nothing", func(t *testing.T) {
		tool := &Tool{Label: "teeth"}
		tool.Bind(&Owner{DefName: "Wolf", Body: wolfBody(), Bulk: 5})
		assert.Equal(t, 0.0, tool.Reach())
	})

	t.Run("one-handed weapon", func(t *testing.T) {
		tool := &Tool{Label: "point"}
		tool.Bind(&Owner{DefName: "Knife", Bulk: 1, OneHanded: true})
		assert.InDelta(t, 0.1, tool.Reach(), 1e-9)
	})

	t.Run("two-handed weapon", func(t *testing.T) {
		tool := &Tool{Label: "blade"}
		tool.Bind(&Owner{DefName: "Greatsword", Bulk: 8})
		assert.InDelta(t, 0.4, tool.Reach(), 1e-9)

		// Rebinding drops the cached reach
		tool.Bind(&Owner{DefName: "Spear", Bulk: 12})
		assert.InDelta(t, 0.6, tool.Reach(), 1e-9)
	})

	t.Run("unbound tool", func(t *testing.T) {
		assert.Equal(t, 0.0, (&Tool{}).Reach())
	})
}

func TestAttackRegion(t *testing.T) {
	body := wolfBody()
	wolf := &Owner{DefName: "Wolf", Body: body}

	tests := []struct {
		name  string
		tool  *Tool
		owner *Owner
		want  vertical.Region
	}{
		{"unbound", &Tool{LinkedGroup: "Teeth"}, nil, vertical.RegionUndefined},
		{"weapon", &Tool{}, &Owner{DefName: "Club", Bulk: 3}, vertical.RegionMiddle},
		{"no linked group", &Tool{}, wolf, vertical.RegionMiddle},
		{"bite inherits neck", &Tool{LinkedGroup: "Teeth"}, wolf, vertical.RegionTop},
		{"paw inherits leg", &Tool{LinkedGroup: "FrontLeftPaw"}, wolf, vertical.RegionBottom},
		{"unknown group", &Tool{LinkedGroup: "Horn"}, wolf, vertical.RegionMiddle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.owner != nil {
				tt.tool.Bind(tt.owner)
			}
			assert.Equal(t, tt.want, tt.tool.AttackRegion())
		})
	}
}

func TestDamageKind(t *testing.T) {
	assert.Equal(t, "Blunt", (&Tool{}).DamageKind())
	assert.Equal(t, "Bite", (&Tool{Capacities: []string{"Bite", "Scratch"}}).DamageKind())
}
