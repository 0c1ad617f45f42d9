package systems

import (
	"math"

	"vcombat/pkg/shared/world"
	"vcombat/pkg/vertical"
)

type Node struct {
	Cell    vertical.Cell
	G, H, F float64
	Parent  *Node
}

// Directions: cardinal then diagonal
var dirs = [8]vertical.Cell{
	{X: 0, Z: -1}, {X: 0, Z: 1}, {X: -1, Z: 0}, {X: 1, Z: 0},
	{X: -1, Z: -1}, {X: 1, Z: -1}, {X: -1, Z: 1}, {X: 1, Z: 1},
}

// FindPath runs A* from start until it reaches a cell next to goal, and
// returns the cells to walk through, start excluded. blocked reports cells a
// creature cannot enter besides solid tiles. A nil path means no route or
// already adjacent.
func FindPath(m *world.Map, start, goal vertical.Cell, blocked func(vertical.Cell) bool) []vertical.Cell {
	if start.IsAdjacent(goal) || start == goal || !m.InBounds(goal) {
		return nil
	}
	free := func(c vertical.Cell) bool {
		return m.Walkable(c) && !blocked(c)
	}

	index := func(c vertical.Cell) int { return c.Z*m.Width + c.X }
	open := map[int]*Node{index(start): {Cell: start}}
	closed := make(map[int]bool)

	var final *Node
	for len(open) > 0 {
		// Lowest F, ties broken by grid index so runs are reproducible
		var curr *Node
		currIdx := -1
		for idx, node := range open {
			if curr == nil || node.F < curr.F || (node.F == curr.F && idx < currIdx) {
				curr, currIdx = node, idx
			}
		}
		delete(open, currIdx)
		closed[currIdx] = true

		if curr.Cell.IsAdjacent(goal) {
			final = curr
			break
		}

		for i, d := range dirs {
			next := vertical.Cell{X: curr.Cell.X + d.X, Z: curr.Cell.Z + d.Z}
			idx := index(next)
			if !m.InBounds(next) || closed[idx] || !free(next) {
				continue
			}
			// No cutting corners past blocked cells
			if i >= 4 && (!free(vertical.Cell{X: next.X, Z: curr.Cell.Z}) || !free(vertical.Cell{X: curr.Cell.X, Z: next.Z})) {
				continue
			}

			moveCost := 1.0
			if i >= 4 {
				moveCost = math.Sqrt2
			}
			g := curr.G + moveCost
			h := math.Hypot(float64(next.X-goal.X), float64(next.Z-goal.Z))
			if existing, ok := open[idx]; ok {
				if g < existing.G {
					existing.G = g
					existing.F = g + h
					existing.Parent = curr
				}
				continue
			}
			open[idx] = &Node{Cell: next, G: g, H: h, F: g + h, Parent: curr}
		}
	}

	if final == nil {
		return nil
	}
	var path []vertical.Cell
	for n := final; n.Parent != nil; n = n.Parent {
		path = append([]vertical.Cell{n.Cell}, path...)
	}
	return path
}
