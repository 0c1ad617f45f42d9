package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vcombat/pkg/selection"
	"vcombat/pkg/shared/ecs"
	"vcombat/pkg/vertical"
)

func TestGenerate(t *testing.T) {
	scene := generate(24, 24, selection.NewRand(3))
	assert.Len(t, scene.Ground, 24*24)
	assert.NotEmpty(t, scene.Structures)
	assert.NotEmpty(t, scene.Creatures)

	m, err := scene.Build(ecs.NewWorld())
	require.NoError(t, err)
	for _, c := range scene.Creatures {
		assert.True(t, m.Walkable(vertical.Cell{X: c.X, Z: c.Z}), "%s stands in water", c.Name)
	}

	assert.Equal(t, scene, generate(24, 24, selection.NewRand(3)))
}
