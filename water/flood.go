package water

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/hydraulica/cellpool"
)

// floodRaiseStep is the plane increment tried on each failed growth
// attempt before the fail budget is exhausted.
const floodRaiseStep = 0.001

// Flood grows a connected standing-water pool under a trapped drop.
// It uses an explicit work-queue traversal rather than recursion so pool
// depth is bounded only by available memory, not call-stack depth.
// Returns true if the drop should keep running (placed at a drain or the
// pool absorbed its volume), false if flood divergence silently drops it.
func Flood(m *cellpool.Map, drop *Drop, params Params) bool {
	origin := ipos(drop.Pos)
	originCell, ok := m.CellAt(origin)
	if !ok {
		return false
	}

	plane := originCell.Height + originCell.Pool
	fail := 10

	for {
		floodSet, drainPos, drainCell, found := growFloodSet(m, origin, plane)

		if found {
			const delta = 0.001
			newPlane := (1-delta)*plane + delta*(drainCell.Height+drainCell.Pool)
			for _, c := range floodSet {
				c.Pool = 0
				if newPlane > c.Height {
					c.Pool = newPlane - c.Height
				}
			}
			drop.Pos = r2.Vec{X: float64(drainPos.X) + 0.5, Y: float64(drainPos.Y) + 0.5}
			return true
		}

		if len(floodSet) == 0 {
			drop.Volume = 0
			return false
		}

		volumeFactor := params.FloodVolumeFactor
		var sum float64
		for _, c := range floodSet {
			sum += plane - (c.Height + c.Pool)
		}
		tVol := volumeFactor * sum

		if tVol <= drop.Volume {
			for _, c := range floodSet {
				c.Pool = plane - c.Height
			}
			drop.Volume -= tVol
			plane += 0.5 * (drop.Volume - tVol) / float64(len(floodSet)) / volumeFactor
			return true
		}

		fail--
		if fail <= 0 {
			drop.Volume = 0
			return false
		}
		plane += floodRaiseStep
	}
}

// growFloodSet performs one full 8-connected traversal from origin, using
// an explicit stack (depth-first order), collecting
// every reachable cell at or below plane into the flood set. It stops
// expanding through any cell strictly below plane, recording it as a
// drainage-point candidate (the lowest one found wins), and stops
// expanding through any cell strictly above plane, recording it in the
// caller's implicit boundary (no transfer happens through it).
func growFloodSet(m *cellpool.Map, origin cellpool.Vec2i, plane float64) (floodSet map[cellpool.Vec2i]*cellpool.Cell, drainPos cellpool.Vec2i, drainCell *cellpool.Cell, found bool) {
	floodSet = map[cellpool.Vec2i]*cellpool.Cell{}
	visited := map[cellpool.Vec2i]bool{origin: true}

	stack := []cellpool.Vec2i{origin}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		curCell, ok := m.CellAt(cur)
		if !ok {
			continue
		}
		level := curCell.Height + curCell.Pool

		if level < plane {
			if !found || level < drainCell.Height+drainCell.Pool {
				found = true
				drainPos = cur
				drainCell = curCell
			}
			continue
		}

		floodSet[cur] = curCell

		for _, off := range neighborOffsets {
			np := cur.Add(off)
			if visited[np] {
				continue
			}
			visited[np] = true

			nc, ok := m.CellAt(np)
			if !ok {
				continue
			}
			if nc.Height+nc.Pool > plane {
				continue
			}
			stack = append(stack, np)
		}
	}

	return floodSet, drainPos, drainCell, found
}
