package vegetation

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/hydraulica/cellpool"
	"github.com/pthm-cable/hydraulica/collab"
	"github.com/pthm-cable/hydraulica/reduction"
)

// stencil is the root-density imprint applied around a plant: center,
// then the four orthogonal and four diagonal neighbors.
var stencil = []struct {
	Off    cellpool.Vec2i
	Weight float64
}{
	{cellpool.Vec2i{X: 0, Y: 0}, 1.0},
	{cellpool.Vec2i{X: 1, Y: 0}, 0.6},
	{cellpool.Vec2i{X: -1, Y: 0}, 0.6},
	{cellpool.Vec2i{X: 0, Y: 1}, 0.6},
	{cellpool.Vec2i{X: 0, Y: -1}, 0.6},
	{cellpool.Vec2i{X: 1, Y: 1}, 0.4},
	{cellpool.Vec2i{X: 1, Y: -1}, 0.4},
	{cellpool.Vec2i{X: -1, Y: 1}, 0.4},
	{cellpool.Vec2i{X: -1, Y: -1}, 0.4},
}

// Params collects the plant tuning values read from configuration.
type Params struct {
	MapScale     float64
	GrowRate     float64
	MaxSize      float64
	MaxSteep     float64
	MaxDischarge float64
	DeathProb    float64
	SpreadProb   float64
	SpreadRadius int
}

// System owns the ark world holding plant entities and applies the
// per-tick spawn/grow/death/spread policy against a height field.
type System struct {
	world  *ecs.World
	mapper *ecs.Map2[Position, Size]
	filter *ecs.Filter2[Position, Size]
	params Params
}

// NewSystem creates an empty vegetation system.
func NewSystem(params Params) *System {
	world := ecs.NewWorld()
	return &System{
		world:  world,
		mapper: ecs.NewMap2[Position, Size](world),
		filter: ecs.NewFilter2[Position, Size](world),
		params: params,
	}
}

// Count returns the number of live plants.
func (s *System) Count() int {
	n := 0
	query := s.filter.Query()
	for query.Next() {
		n++
	}
	return n
}

// Plants returns a read-only snapshot of every live plant, for collab.Snapshot.
func (s *System) Plants() []collab.PlantView {
	var out []collab.PlantView
	query := s.filter.Query()
	for query.Next() {
		pos, size := query.Get()
		out = append(out, collab.PlantView{X: pos.X, Y: pos.Y, Size: size.Value})
	}
	return out
}

// RootDensityAt returns the root density the vegetation system has
// imprinted at p, for coupling into drop deposition.
func (s *System) RootDensityAt(m *cellpool.Map, p cellpool.Vec2i) float64 {
	c, ok := m.CellAt(p)
	if !ok {
		return 0
	}
	return c.RootDensity
}

func (s *System) applyStencil(m *cellpool.Map, center cellpool.Vec2i, sign float64) {
	for _, st := range stencil {
		p := center.Add(st.Off)
		if c, ok := m.CellAt(p); ok {
			c.RootDensity += sign * st.Weight
		}
	}
}

func (s *System) discharge(m *cellpool.Map, p cellpool.Vec2i) float64 {
	c, ok := m.CellAt(p)
	if !ok {
		return 1
	}
	return reduction.DischargeView(c.Discharge)
}

func (s *System) slope(m *cellpool.Map, p cellpool.Vec2i) float64 {
	n := reduction.Normal(m, p, s.params.MapScale)
	return n.Y
}

// spawnCandidate reports whether a plant can take root at p.
func (s *System) spawnCandidate(m *cellpool.Map, p cellpool.Vec2i) bool {
	if _, ok := m.CellAt(p); !ok {
		return false
	}
	return s.discharge(m, p) < s.params.MaxDischarge && s.slope(m, p) >= s.params.MaxSteep
}

// Tick runs one tick of the spawn/grow/death/spread policy against m.
func (s *System) Tick(m *cellpool.Map, rng collab.RNG) {
	size := m.WorldSize()

	// Random spawn: one attempt per tick.
	if size > 0 {
		candidate := cellpool.Vec2i{X: rng.Intn(size), Y: rng.Intn(size)}
		if s.spawnCandidate(m, candidate) {
			pos := Position{X: float64(candidate.X) + 0.5, Y: float64(candidate.Y) + 0.5}
			s.mapper.NewEntity(&pos, &Size{Value: 0})
			s.applyStencil(m, candidate, 1)
		}
	}

	type dead struct {
		entity ecs.Entity
		pos    cellpool.Vec2i
	}
	var toRemove []dead
	var toSpread []cellpool.Vec2i

	query := s.filter.Query()
	for query.Next() {
		entity := query.Entity()
		pos, sz := query.Get()

		cell := cellpool.Vec2i{X: int(pos.X), Y: int(pos.Y)}

		// Age.
		sz.Value += s.params.GrowRate * (s.params.MaxSize - sz.Value)

		// Death check.
		if s.discharge(m, cell) >= s.params.MaxDischarge || rng.Float64() < s.params.DeathProb {
			toRemove = append(toRemove, dead{entity: entity, pos: cell})
			continue
		}

		// Spread.
		if rng.Float64() < s.params.SpreadProb {
			toSpread = append(toSpread, cell)
		}
	}

	for _, d := range toRemove {
		s.applyStencil(m, d.pos, -1)
		s.mapper.Remove(d.entity)
	}

	for _, origin := range toSpread {
		s.trySpread(m, origin, rng)
	}
}

func (s *System) trySpread(m *cellpool.Map, origin cellpool.Vec2i, rng collab.RNG) {
	r := s.params.SpreadRadius
	if r <= 0 {
		r = 4
	}
	dx := rng.Intn(2*r+1) - r
	dy := rng.Intn(2*r+1) - r
	target := cellpool.Vec2i{X: origin.X + dx, Y: origin.Y + dy}

	c, ok := m.CellAt(target)
	if !ok {
		return
	}
	if s.discharge(m, target) >= s.params.MaxDischarge {
		return
	}
	if rng.Float64() < c.RootDensity {
		return
	}
	if s.slope(m, target) < s.params.MaxSteep {
		return
	}

	pos := Position{X: float64(target.X) + 0.5, Y: float64(target.Y) + 0.5}
	s.mapper.NewEntity(&pos, &Size{Value: 0})
	s.applyStencil(m, target, 1)
}
