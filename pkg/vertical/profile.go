package vertical

import (
	"math"

	"vcombat/pkg/shared/config"
)

// Category is the structural class that decides how a thing's height is computed.
type Category int

const (
	CategoryNone Category = iota // Open terrain, nothing to collide with
	CategoryPlant
	CategoryBuilding
	CategoryCreature
	CategoryItem
)

// Fillage is how much of its cell a thing blocks.
type Fillage int

const (
	FillNone Fillage = iota
	FillPartial
	FillFull
)

// Cell is a grid position. Z is the second horizontal axis; height is never a cell axis.
type Cell struct {
	X, Z int
}

var adjacent8 = [8]Cell{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Adjacent8 returns the eight neighbouring cells.
func (c Cell) Adjacent8() [8]Cell {
	var out [8]Cell
	for i, d := range adjacent8 {
		out[i] = Cell{X: c.X + d.X, Z: c.Z + d.Z}
	}
	return out
}

// IsAdjacent reports whether o is one of c's eight neighbours.
func (c Cell) IsAdjacent(o Cell) bool {
	dx, dz := o.X-c.X, o.Z-c.Z
	return c != o && dx >= -1 && dx <= 1 && dz >= -1 && dz <= 1
}

// Thing is the read-only view of an entity the height rules need.
type Thing struct {
	ID          uint64
	Category    Category
	Fillage     Fillage
	FillPercent float64
	PlantHeight float64 // Visual height of a plant
	Door        bool
	DoorOpen    bool
	BodyHeight  float64 // Collision height from body size factors
	Crouching   bool
}

// Scene answers the host's map queries. A nil Scene means the thing is not
// spawned: no edifice is stacked under it and no neighbours are scanned.
type Scene interface {
	InBounds(c Cell) bool
	CoverAt(c Cell) (Thing, bool)
}

// Profile is a thing's occupied interval and the height its shots leave from.
type Profile struct {
	Interval
	ShotHeight float64
}

// Compute returns the vertical profile of t standing at pos.
func Compute(scene Scene, t Thing, pos Cell) Profile {
	switch t.Category {
	case CategoryNone:
		return Profile{}
	case CategoryPlant:
		// Height matches the visual size
		return Profile{Interval: NewInterval(0, t.PlantHeight)}
	case CategoryBuilding:
		return buildingProfile(t)
	}

	collisionHeight := t.FillPercent
	shotHeightOffset := 0.0
	if t.Category == CategoryCreature {
		collisionHeight = t.BodyHeight
		shotHeightOffset = collisionHeight * (1 - config.BodyRegionMiddleHeight)
		if t.Crouching && scene != nil {
			collisionHeight = crouchHeight(scene, pos, collisionHeight, shotHeightOffset)
		}
	}

	edificeHeight := 0.0
	if scene != nil {
		if edifice, ok := scene.CoverAt(pos); ok && edifice.ID != t.ID && edifice.Category != CategoryPlant {
			edificeHeight = Compute(nil, edifice, pos).Max
		}
	}

	interval := NewInterval(edificeHeight, edificeHeight+collisionHeight)
	return Profile{
		Interval:   interval,
		ShotHeight: interval.Max - shotHeightOffset,
	}
}

func buildingProfile(t Thing) Profile {
	if t.Door && t.DoorOpen {
		return Profile{}
	}
	if t.Fillage == FillFull {
		return Profile{
			Interval:   Interval{Min: 0, Max: config.WallCollisionHeight},
			ShotHeight: config.WallCollisionHeight,
		}
	}
	return Profile{
		Interval:   Interval{Min: math.Min(0, t.FillPercent), Max: math.Max(0, t.FillPercent)},
		ShotHeight: t.FillPercent,
	}
}

// crouchHeight lowers a creature behind the tallest partial cover next to it,
// staying high enough to shoot over that cover and never above its full height.
func crouchHeight(scene Scene, pos Cell, height, shotHeightOffset float64) float64 {
	crouch := config.BodyRegionBottomHeight * height
	for _, c := range pos.Adjacent8() {
		if !scene.InBounds(c) {
			continue
		}
		cover, ok := scene.CoverAt(c)
		if !ok || cover.Fillage != FillPartial || cover.Category == CategoryPlant {
			continue
		}
		if h := Compute(nil, cover, c).Max; h > crouch {
			crouch = h
		}
	}
	return math.Min(height, crouch+config.CrouchCoverEpsilon+shotHeightOffset)
}

// CoverHeightMeters is the displayed height of a cover definition.
func CoverHeightMeters(fillage Fillage, fillPercent float64) float64 {
	height := fillPercent
	if fillage == FillFull {
		height = config.WallCollisionHeight
	}
	return height * config.MeterPerCellHeight
}
