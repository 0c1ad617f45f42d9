package world

import (
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vcombat/pkg/shared/components"
	"vcombat/pkg/shared/ecs"
	"vcombat/pkg/vertical"
)

func grass(w, h int) []int {
	return make([]int, w*h)
}

func testScene() *SceneDefinition {
	return &SceneDefinition{
		Width:  5,
		Height: 5,
		Ground: grass(5, 5),
		Structures: []StructureDef{
			{X: 2, Z: 2, Fillage: "full"},
			{X: 1, Z: 2, Fillage: "partial", FillPercent: 0.5},
			{X: 3, Z: 3, Fillage: "partial", FillPercent: 0.3},
			{X: 4, Z: 4, Fillage: "full", Door: true, Open: true},
		},
		Plants: []PlantDef{{X: 0, Z: 0, Height: 0.4}},
		Creatures: []CreatureDef{
			{X: 1, Z: 1, RaceID: "human", Name: "crouched", Crouching: true, Weapon: "knife"},
			{X: 3, Z: 3, RaceID: "human", Name: "on the barricade"},
			{X: 0, Z: 0, RaceID: "rabbit"},
		},
	}
}

func creatureNamed(t *testing.T, w *ecs.World, name string) ecs.Entity {
	t.Helper()
	for _, e := range ecs.Query[components.CreatureComponent](w) {
		c, _ := ecs.GetComponent[components.CreatureComponent](w, e)
		if c.Name == name {
			return e
		}
	}
	t.Fatalf("no creature %q", name)
	return 0
}

func TestScene_Profiles(t *testing.T) {
	w := ecs.NewWorld()
	m, err := testScene().Build(w)
	require.NoError(t, err)
	scene := NewScene(m, w)

	t.Run("wall", func(t *testing.T) {
		e, ok := scene.EntityAt(vertical.Cell{X: 2, Z: 2})
		require.True(t, ok)
		p, ok := scene.Profile(e)
		require.True(t, ok)
		assert.Equal(t, vertical.Interval{Min: 0, Max: 2}, p.Interval)
	})

	t.Run("open door", func(t *testing.T) {
		e, ok := scene.EntityAt(vertical.Cell{X: 4, Z: 4})
		require.True(t, ok)
		p, _ := scene.Profile(e)
		assert.Equal(t, vertical.Profile{}, p)
	})

	t.Run("crouching behind cover", func(t *testing.T) {
		p, ok := scene.Profile(creatureNamed(t, w, "crouched"))
		require.True(t, ok)
		assert.InDelta(t, 0, p.Min, 1e-9)
		assert.InDelta(t, 0.66, p.Max, 1e-9)
		assert.InDelta(t, 0.51, p.ShotHeight, 1e-9)
	})

	t.Run("standing on a barricade", func(t *testing.T) {
		p, ok := scene.Profile(creatureNamed(t, w, "on the barricade"))
		require.True(t, ok)
		assert.InDelta(t, 0.3, p.Min, 1e-9)
		assert.InDelta(t, 1.3, p.Max, 1e-9)
	})

	t.Run("plants are not edifices", func(t *testing.T) {
		p, ok := scene.Profile(creatureNamed(t, w, "Snowhare"))
		require.True(t, ok)
		assert.InDelta(t, 0, p.Min, 1e-9)
		_, ok = scene.CoverAt(vertical.Cell{X: 0, Z: 0})
		assert.False(t, ok)
	})
}

func TestBuild_Equipment(t *testing.T) {
	w := ecs.NewWorld()
	_, err := testScene().Build(w)
	require.NoError(t, err)

	e := creatureNamed(t, w, "crouched")
	eq, ok := ecs.GetComponent[components.EquipmentComponent](w, e)
	require.True(t, ok)
	assert.Equal(t, "knife", eq.Slots[components.SlotWeapon].ItemID)
	assert.True(t, ecs.Has[components.HealthComponent](w, e))
	assert.True(t, ecs.Has[components.MeleeComponent](w, e))
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SceneDefinition)
		cause  error
	}{
		{"ground size", func(d *SceneDefinition) { d.Ground = grass(2, 2) }, ErrBadDimensions},
		{"no width", func(d *SceneDefinition) { d.Width = 0 }, ErrBadDimensions},
		{"structure outside", func(d *SceneDefinition) { d.Structures[0].X = 9 }, ErrOutOfBounds},
		{"creature outside", func(d *SceneDefinition) { d.Creatures[0].Z = -1 }, ErrOutOfBounds},
		{"unknown race", func(d *SceneDefinition) { d.Creatures[0].RaceID = "dragon" }, ErrUnknownRace},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := testScene()
			tt.mutate(def)
			_, err := def.Build(ecs.NewWorld())
			require.Error(t, err)
			assert.Equal(t, tt.cause, errors.Cause(err))
		})
	}

	t.Run("bad fillage", func(t *testing.T) {
		def := testScene()
		def.Structures[0].Fillage = "solid"
		_, err := def.Build(ecs.NewWorld())
		var perr *vertical.ParseError
		assert.ErrorAs(t, err, &perr)
	})
}

func TestSaveLoadScene(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	def := testScene()
	require.NoError(t, SaveScene(path, def))

	loaded, err := LoadScene(path)
	require.NoError(t, err)
	assert.Equal(t, def, loaded)

	_, err = LoadScene(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestMap_Walkable(t *testing.T) {
	m := NewMap(3, 2)
	m.Tiles[1][2] = Tile{Type: TileWaterDeep}
	assert.True(t, m.Walkable(vertical.Cell{X: 0, Z: 0}))
	assert.False(t, m.Walkable(vertical.Cell{X: 2, Z: 1}))
	assert.False(t, m.Walkable(vertical.Cell{X: 3, Z: 0}))
	assert.Equal(t, []int{0, 0, 0, 0, 0, int(TileWaterDeep)}, FlattenTiles(m.Tiles))
}
