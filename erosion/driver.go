// Package erosion drives the per-tick simulation loop: reset trackers,
// spawn and descend drops per node, low-pass filter the result, and run
// the vegetation policy against the same height field.
package erosion

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/hydraulica/cellpool"
	"github.com/pthm-cable/hydraulica/collab"
	"github.com/pthm-cable/hydraulica/vegetation"
	"github.com/pthm-cable/hydraulica/water"
)

// Params bundles every tunable the driver reads each tick.
type Params struct {
	LRate         float64
	CyclesPerTick int
	Water         water.Params
	Plant         vegetation.Params
}

// Driver owns the cell map, the vegetation system, and the RNG used for
// drop spawn positions and vegetation events.
type Driver struct {
	Map        *cellpool.Map
	Vegetation *vegetation.System

	rng    *rand.Rand
	params Params
	tick   int
}

// New constructs a driver over an already-generated map.
func New(m *cellpool.Map, seed int64, params Params) *Driver {
	return &Driver{
		Map:        m,
		Vegetation: vegetation.NewSystem(params.Plant),
		rng:        rand.New(rand.NewSource(seed)),
		params:     params,
	}
}

// rngAdapter satisfies collab.RNG over the driver's *rand.Rand.
type rngAdapter struct{ r *rand.Rand }

func (a rngAdapter) Intn(n int) int   { return a.r.Intn(n) }
func (a rngAdapter) Float64() float64 { return a.r.Float64() }

// Tick runs one simulation tick: reset trackers, spawn cycles drops per
// node, filter, then run the vegetation policy.
func (d *Driver) Tick() {
	for _, node := range d.Map.Nodes {
		for y := 0; y < node.Slice.Resolution(); y++ {
			for x := 0; x < node.Slice.Resolution(); x++ {
				c, _ := node.Slice.Get(cellpool.Vec2i{X: x, Y: y})
				c.ResetTrack()
			}
		}
	}

	for _, node := range d.Map.Nodes {
		w := node.Slice.Resolution()
		for i := 0; i < d.params.CyclesPerTick; i++ {
			start := cellpool.Vec2i{
				X: node.Origin.X + d.rng.Intn(w),
				Y: node.Origin.Y + d.rng.Intn(w),
			}
			drop := water.NewDrop(r2.Vec{X: float64(start.X), Y: float64(start.Y)}, d.params.Water)
			rootDensityAt := func(p cellpool.Vec2i) float64 {
				return d.Vegetation.RootDensityAt(d.Map, p)
			}
			for drop.Descend(d.Map, rootDensityAt) {
				if d.params.Water.FloodEnabled && r2.Norm(drop.Speed) == 0 {
					if !water.Flood(d.Map, drop, d.params.Water) {
						break
					}
				}
			}
		}
	}

	d.Map.Each(func(_ cellpool.Vec2i, c *cellpool.Cell) {
		c.Filter(d.params.LRate)
	})

	d.Vegetation.Tick(d.Map, rngAdapter{r: d.rng})

	d.tick++
}

// TickCount returns the number of ticks run so far.
func (d *Driver) TickCount() int {
	return d.tick
}

var _ collab.Snapshot = (*snapshotView)(nil)

// snapshotView is a read-only adapter over the driver's live state; it
// never mutates the map and is safe to hand to a renderer between ticks.
type snapshotView struct {
	d *Driver
}

// Snapshot returns a read-only view for host consumption between ticks.
func (d *Driver) Snapshot() collab.Snapshot {
	return snapshotView{d: d}
}

func (s snapshotView) CellAt(p cellpool.Vec2i) (cellpool.Cell, bool) {
	c, ok := s.d.Map.CellAt(p)
	if !ok {
		return cellpool.Cell{}, false
	}
	return *c, true
}

func (s snapshotView) WorldSize() int {
	return s.d.Map.WorldSize()
}

func (s snapshotView) Plants() []collab.PlantView {
	return s.d.Vegetation.Plants()
}
