package water

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/hydraulica/cellpool"
	"github.com/pthm-cable/hydraulica/reduction"
)

// Params collects the tunable coefficients descend and flood read from
// configuration. Held by value so a Drop carries its own immutable copy.
type Params struct {
	MapScale          float64
	Gravity           float64
	MomentumTransfer  float64
	DepositionRate    float64
	Entrainment       float64
	EvapRate          float64
	MinVol            float64
	MaxAge            int
	MaxDiff           float64
	Settling          float64
	FloodEnabled      bool
	FloodVolumeFactor float64
}

// Drop is a single water particle descending the height field.
type Drop struct {
	Pos      r2.Vec
	Speed    r2.Vec
	Volume   float64
	Sediment float64
	Age      int

	params Params
}

// NewDrop places a drop at pos with the nominal initial volume and zero
// sediment, speed, and age.
func NewDrop(pos r2.Vec, params Params) *Drop {
	return &Drop{Pos: pos, Volume: 1, params: params}
}

func ipos(p r2.Vec) cellpool.Vec2i {
	return cellpool.Vec2i{X: int(math.Floor(p.X)), Y: int(math.Floor(p.Y))}
}

// Descend advances the drop by one cell step, mutating m in place, and
// returns true iff the caller should call Descend again. The loop
// `for drop.Descend(m, rootDensityAt) {}` always terminates within
// params.MaxAge+1 iterations.
//
// rootDensityAt, if non-nil, returns the root density at a cell position
// so deposition can be damped by vegetation coupling; pass nil when no
// vegetation model is active.
func (d *Drop) Descend(m *cellpool.Map, rootDensityAt func(cellpool.Vec2i) float64) bool {
	p := ipos(d.Pos)

	cell, ok := m.CellAt(p)
	if !ok {
		return false
	}
	normal := reduction.Normal(m, p, d.params.MapScale)

	if d.Age > d.params.MaxAge || d.Volume < d.params.MinVol {
		cell.Height += d.Sediment
		return false
	}

	effD := math.Max(0, d.params.DepositionRate)
	if rootDensityAt != nil {
		rd := clamp01(rootDensityAt(p))
		effD = d.params.DepositionRate * (1 - rd)
	}

	d.Speed.X += d.params.Gravity * normal.X / d.Volume
	d.Speed.Y += d.params.Gravity * normal.Z / d.Volume

	f := r2.Vec{X: cell.MomentumX, Y: cell.MomentumY}
	if r2.Norm(f) > 0 && r2.Norm(d.Speed) > 0 {
		fHat := r2.Unit(f)
		sHat := r2.Unit(d.Speed)
		align := r2.Dot(fHat, sHat)
		denom := d.Volume + cell.Discharge
		scale := d.params.MomentumTransfer * align / denom
		d.Speed = r2.Add(d.Speed, r2.Scale(scale, f))
	}

	if r2.Norm(d.Speed) > 0 {
		d.Speed = r2.Scale(math.Sqrt2, r2.Unit(d.Speed))
	}

	d.Pos = r2.Add(d.Pos, d.Speed)

	cell.DischargeTrack += d.Volume
	cell.MomentumXTrack += d.Volume * d.Speed.X
	cell.MomentumYTrack += d.Volume * d.Speed.Y

	newPos := ipos(d.Pos)
	h1 := cell.Height
	var h2 float64
	newCell, inBounds := m.CellAt(newPos)
	if inBounds {
		h2 = newCell.Height
	} else {
		h2 = h1 - 0.003
	}

	cEq := math.Max(0, (1+d.params.Entrainment*cell.Discharge)*(h1-h2))
	cdiff := cEq - d.Sediment
	d.Sediment += effD * cdiff
	cell.Height -= effD * cdiff

	d.Sediment /= 1 - d.params.EvapRate
	d.Volume *= 1 - d.params.EvapRate

	if !inBounds {
		d.Volume = 0
		return false
	}

	Cascade(m, newPos, d.params.MaxDiff, d.params.Settling)

	d.Age++
	return true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
