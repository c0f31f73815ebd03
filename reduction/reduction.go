// Package reduction computes derived per-cell quantities: surface normals
// from the height field, and the saturating discharge view consumed by
// shaders, drop deposition, and vegetation gates.
package reduction

import (
	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/hydraulica/cellpool"
)

// Up is returned by Normal when all four diagonals cancel or no
// neighboring cell is reachable.
var Up = r3.Vec{X: 0, Y: 1, Z: 0}

// Normal computes the surface normal at p by averaging four
// cross-product diagonals formed from the ±1 neighbors in x and y,
// scaled vertically by mapScale. Returns Up if the sum is degenerate.
func Normal(m *cellpool.Map, p cellpool.Vec2i, mapScale float64) r3.Vec {
	c, ok := m.CellAt(p)
	if !ok {
		return Up
	}
	h := c.Height

	var n r3.Vec

	if nb, ok := m.CellAt(cellpool.Vec2i{X: p.X, Y: p.Y + 1}); ok {
		if eb, ok := m.CellAt(cellpool.Vec2i{X: p.X + 1, Y: p.Y}); ok {
			a := r3.Vec{X: 0, Y: mapScale * (nb.Height - h), Z: 1}
			b := r3.Vec{X: 1, Y: mapScale * (eb.Height - h), Z: 0}
			n = r3.Add(n, r3.Cross(a, b))
		}
	}
	if sb, ok := m.CellAt(cellpool.Vec2i{X: p.X, Y: p.Y - 1}); ok {
		if wb, ok := m.CellAt(cellpool.Vec2i{X: p.X - 1, Y: p.Y}); ok {
			a := r3.Vec{X: 0, Y: mapScale * (sb.Height - h), Z: -1}
			b := r3.Vec{X: -1, Y: mapScale * (wb.Height - h), Z: 0}
			n = r3.Add(n, r3.Cross(a, b))
		}
	}
	if eb, ok := m.CellAt(cellpool.Vec2i{X: p.X + 1, Y: p.Y}); ok {
		if sb, ok := m.CellAt(cellpool.Vec2i{X: p.X, Y: p.Y - 1}); ok {
			a := r3.Vec{X: 1, Y: mapScale * (eb.Height - h), Z: 0}
			b := r3.Vec{X: 0, Y: mapScale * (sb.Height - h), Z: -1}
			n = r3.Add(n, r3.Cross(a, b))
		}
	}
	if wb, ok := m.CellAt(cellpool.Vec2i{X: p.X - 1, Y: p.Y}); ok {
		if nb, ok := m.CellAt(cellpool.Vec2i{X: p.X, Y: p.Y + 1}); ok {
			a := r3.Vec{X: -1, Y: mapScale * (wb.Height - h), Z: 0}
			b := r3.Vec{X: 0, Y: mapScale * (nb.Height - h), Z: 1}
			n = r3.Add(n, r3.Cross(a, b))
		}
	}

	if r3.Norm(n) == 0 {
		return Up
	}
	return r3.Unit(n)
}

// DischargeView maps raw discharge into the saturating [0,1) range used
// by shaders, drop deposition, and vegetation gates.
func DischargeView(raw float64) float64 {
	return mathext.Erf(0.4 * raw)
}

// RadialFalloff returns the island-shaping multiplier for a point at
// distance r (in cell units) from the world center.
func RadialFalloff(r float64) float64 {
	return 0.5 * (1 + mathext.Erf(1-r*r/0.07))
}
