package water

import (
	"sort"

	"github.com/pthm-cable/hydraulica/cellpool"
)

var neighborOffsets = [8]cellpool.Vec2i{
	{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
	{X: -1, Y: 0}, {X: 1, Y: 0},
	{X: -1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1},
}

// Cascade redistributes height between p and its neighbors to keep local
// slope below maxdiff, preserving the total height of every pair it
// touches.
func Cascade(m *cellpool.Map, p cellpool.Vec2i, maxdiff, settling float64) {
	pc, ok := m.CellAt(p)
	if !ok {
		return
	}

	type neighbor struct {
		pos cellpool.Vec2i
		c   *cellpool.Cell
	}

	var neighbors []neighbor
	for _, off := range neighborOffsets {
		np := p.Add(off)
		if nc, ok := m.CellAt(np); ok {
			neighbors = append(neighbors, neighbor{pos: np, c: nc})
		}
	}

	sort.Slice(neighbors, func(i, j int) bool {
		return neighbors[i].c.Height < neighbors[j].c.Height
	})

	for _, nb := range neighbors {
		diff := pc.Height - nb.c.Height
		if diff > -maxdiff && diff < maxdiff {
			continue
		}

		excess := diff - maxdiff
		if diff < 0 {
			excess = -diff - maxdiff
		}
		transfer := settling * excess / 2

		if diff > 0 {
			pc.Height -= transfer
			nb.c.Height += transfer
		} else {
			pc.Height += transfer
			nb.c.Height -= transfer
		}
	}
}
