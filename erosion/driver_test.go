package erosion

import (
	"testing"

	"github.com/pthm-cable/hydraulica/cellpool"
	"github.com/pthm-cable/hydraulica/noise"
	"github.com/pthm-cable/hydraulica/terrain"
	"github.com/pthm-cable/hydraulica/vegetation"
	"github.com/pthm-cable/hydraulica/water"
)

func buildDriver(t *testing.T, size int, seed int64, cycles int) *Driver {
	t.Helper()
	pool := cellpool.NewPool(size * size)
	m, err := cellpool.NewMap(pool, 1, size)
	if err != nil {
		t.Fatalf("NewMap: %v", err)
	}
	terrain.Generate(m, noise.NewPerlin(seed), 0, terrain.Options{})

	params := Params{
		LRate:         0.1,
		CyclesPerTick: cycles,
		Water: water.Params{
			MapScale:          80,
			Gravity:           1,
			MomentumTransfer:  1,
			DepositionRate:    0.1,
			Entrainment:       10,
			EvapRate:          0.001,
			MinVol:            0.01,
			MaxAge:            500,
			MaxDiff:           0.01,
			Settling:          0.8,
			FloodVolumeFactor: 0.5,
		},
		Plant: vegetation.Params{
			MapScale:     80,
			GrowRate:     0.05,
			MaxSize:      1.5,
			MaxSteep:     0.8,
			MaxDischarge: 0.3,
			DeathProb:    0.001,
			SpreadProb:   0.05,
			SpreadRadius: 4,
		},
	}

	return New(m, seed, params)
}

func TestTickIdempotenceOnEmptySpawns(t *testing.T) {
	d := buildDriver(t, 16, 1, 0)

	type before struct{ height, discharge, mx, my float64 }
	want := map[cellpool.Vec2i]before{}
	d.Map.Each(func(p cellpool.Vec2i, c *cellpool.Cell) {
		want[p] = before{
			height:    c.Height,
			discharge: (1 - d.params.LRate) * c.Discharge,
			mx:        (1 - d.params.LRate) * c.MomentumX,
			my:        (1 - d.params.LRate) * c.MomentumY,
		}
	})

	d.Tick()

	d.Map.Each(func(p cellpool.Vec2i, c *cellpool.Cell) {
		w := want[p]
		if c.Height != w.height {
			t.Errorf("height changed at %v: got %v want %v", p, c.Height, w.height)
		}
		if c.Discharge != w.discharge {
			t.Errorf("discharge mismatch at %v: got %v want %v", p, c.Discharge, w.discharge)
		}
		if c.MomentumX != w.mx || c.MomentumY != w.my {
			t.Errorf("momentum mismatch at %v", p)
		}
	})
}

func TestDriverDeterministic(t *testing.T) {
	d1 := buildDriver(t, 24, 7, 20)
	d2 := buildDriver(t, 24, 7, 20)

	for i := 0; i < 5; i++ {
		d1.Tick()
		d2.Tick()
	}

	mismatch := false
	d1.Map.Each(func(p cellpool.Vec2i, c *cellpool.Cell) {
		c2, _ := d2.Map.CellAt(p)
		if c.Height != c2.Height || c.Discharge != c2.Discharge {
			mismatch = true
		}
	})
	if mismatch {
		t.Errorf("expected bit-identical cell buffers for identical seed and config")
	}
}

func TestTickCountIncrements(t *testing.T) {
	d := buildDriver(t, 8, 3, 0)
	if d.TickCount() != 0 {
		t.Fatalf("expected 0 ticks before running")
	}
	d.Tick()
	d.Tick()
	if d.TickCount() != 2 {
		t.Errorf("expected 2 ticks run, got %d", d.TickCount())
	}
}
