package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"

	"vcombat/pkg/selection"
	"vcombat/pkg/shared/world"
	"vcombat/pkg/vertical"
)

func main() {
	width := flag.Int("width", 24, "Scene width in cells")
	height := flag.Int("height", 24, "Scene height in cells")
	seed := flag.Uint64("seed", 1, "Random seed")
	out := flag.String("out", "data/scenes/skirmish.json", "Output file")
	flag.Parse()

	scene := generate(*width, *height, selection.NewRand(*seed))
	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := world.SaveScene(*out, scene); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("Generated %s: %d structures, %d plants, %d creatures\n",
		*out, len(scene.Structures), len(scene.Plants), len(scene.Creatures))
}

func generate(width, height int, rng *rand.Rand) *world.SceneDefinition {
	ground := make([]int, width*height)
	occupied := make(map[vertical.Cell]bool)
	at := func(x, z int) *int { return &ground[z*width+x] }

	// Pond in the middle with a sandy shore
	cx, cz := width/2, height/2
	for z := 0; z < height; z++ {
		for x := 0; x < width; x++ {
			dx, dz := x-cx, z-cz
			distSq := dx*dx + dz*dz
			switch {
			case distSq < 4:
				*at(x, z) = int(world.TileWaterDeep)
			case distSq < 9:
				*at(x, z) = int(world.TileWaterShallow)
			case distSq < 16:
				*at(x, z) = int(world.TileSand)
			case rng.IntN(100) < 5:
				*at(x, z) = int(world.TileDirt)
			}
		}
	}

	scene := &world.SceneDefinition{Width: width, Height: height, Ground: ground}

	// A walled yard in the north-west corner with a door and a low window
	for i := 1; i <= 5; i++ {
		for _, c := range []vertical.Cell{{X: i, Z: 1}, {X: 1, Z: i}, {X: 5, Z: i}, {X: i, Z: 5}} {
			if occupied[c] {
				continue
			}
			occupied[c] = true
			s := world.StructureDef{X: c.X, Z: c.Z, Fillage: "full"}
			switch c {
			case vertical.Cell{X: 3, Z: 5}:
				s.Door = true
			case vertical.Cell{X: 5, Z: 3}:
				s.Fillage, s.FillPercent = "partial", 0.45
			}
			scene.Structures = append(scene.Structures, s)
		}
	}
	for z := 2; z <= 4; z++ {
		for x := 2; x <= 4; x++ {
			*at(x, z) = int(world.TileWoodFloor)
		}
	}

	// Sandbags along the shore
	for x := cx - 3; x <= cx+3; x += 2 {
		c := vertical.Cell{X: x, Z: cz + 4}
		if c.Z < height && !occupied[c] {
			occupied[c] = true
			scene.Structures = append(scene.Structures, world.StructureDef{X: c.X, Z: c.Z, Fillage: "partial", FillPercent: 0.3})
		}
	}

	// Trees and bushes on open grass
	for z := 0; z < height; z++ {
		for x := 0; x < width; x++ {
			c := vertical.Cell{X: x, Z: z}
			if occupied[c] || world.TileType(*at(x, z)) != world.TileGrass || rng.Float64() >= 0.08 {
				continue
			}
			occupied[c] = true
			scene.Plants = append(scene.Plants, world.PlantDef{X: x, Z: z, Height: 0.3 + rng.Float64()*1.7})
		}
	}

	free := func() (vertical.Cell, bool) {
		for attempt := 0; attempt < 20; attempt++ {
			c := vertical.Cell{X: rng.IntN(width), Z: rng.IntN(height)}
			if !occupied[c] && !world.TileType(*at(c.X, c.Z)).IsSolid() {
				occupied[c] = true
				return c, true
			}
		}
		return vertical.Cell{}, false
	}

	scene.Creatures = append(scene.Creatures,
		world.CreatureDef{X: 3, Z: 3, RaceID: "human", Name: "Warden", Faction: 1, Crouching: true, Weapon: "spear"},
	)
	occupied[vertical.Cell{X: 3, Z: 3}] = true

	weapons := []string{"knife", "club", "spear"}
	for i := 0; i < 4; i++ {
		c, ok := free()
		if !ok {
			continue
		}
		scene.Creatures = append(scene.Creatures, world.CreatureDef{
			X: c.X, Z: c.Z, RaceID: "human", Name: fmt.Sprintf("Raider %d", i+1),
			Faction: 2, Aggressive: true, Weapon: weapons[rng.IntN(len(weapons))],
		})
	}
	for i := 0; i < 3; i++ {
		if c, ok := free(); ok {
			scene.Creatures = append(scene.Creatures, world.CreatureDef{X: c.X, Z: c.Z, RaceID: "rabbit", Name: "Rabbit"})
		}
	}
	if c, ok := free(); ok {
		scene.Spawners = append(scene.Spawners, world.SpawnerDef{X: c.X, Z: c.Z, RaceID: "wolf"})
	}
	return scene
}
