package world

import "vcombat/pkg/vertical"

type TileType int

const (
	TileGrass TileType = iota
	TileDirt
	TileStoneFloor
	TileWoodFloor
	TileSand
	TileWaterShallow
	TileWaterDeep
	TileLava
)

// IsSolid reports whether creatures cannot stand on the tile.
func (t TileType) IsSolid() bool {
	switch t {
	case TileWaterDeep, TileLava:
		return true
	default:
		return false
	}
}

type Tile struct {
	Type TileType
}

// Map is the ground layer of a scene. Things standing on it live in the ECS.
type Map struct {
	Width    int
	Height   int
	Tiles    [][]Tile // Indexed [z][x]
	Spawners []Spawner
}

type Spawner struct {
	X, Z   int
	RaceID string
}

func NewMap(width, height int) *Map {
	m := &Map{
		Width:  width,
		Height: height,
		Tiles:  make([][]Tile, height),
	}
	for z := 0; z < height; z++ {
		m.Tiles[z] = make([]Tile, width)
	}
	return m
}

func (m *Map) InBounds(c vertical.Cell) bool {
	return m != nil && c.X >= 0 && c.Z >= 0 && c.X < m.Width && c.Z < m.Height
}

// TileAt returns the tile at c; out of bounds cells read as deep water.
func (m *Map) TileAt(c vertical.Cell) TileType {
	if !m.InBounds(c) {
		return TileWaterDeep
	}
	return m.Tiles[c.Z][c.X].Type
}

// Walkable reports whether a creature may step into c.
func (m *Map) Walkable(c vertical.Cell) bool {
	return m.InBounds(c) && !m.TileAt(c).IsSolid()
}

func FlattenTiles(tiles [][]Tile) []int {
	if len(tiles) == 0 {
		return nil
	}
	height := len(tiles)
	width := len(tiles[0])
	flat := make([]int, width*height)
	for z := 0; z < height; z++ {
		for x := 0; x < width; x++ {
			flat[z*width+x] = int(tiles[z][x].Type)
		}
	}
	return flat
}

func UnflattenTiles(flat []int, width, height int) [][]Tile {
	tiles := make([][]Tile, height)
	for z := 0; z < height; z++ {
		tiles[z] = make([]Tile, width)
		for x := 0; x < width; x++ {
			if z*width+x < len(flat) {
				tiles[z][x] = Tile{Type: TileType(flat[z*width+x])}
			}
		}
	}
	return tiles
}
