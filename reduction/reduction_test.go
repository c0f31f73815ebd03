package reduction

import (
	"math"
	"testing"

	"github.com/pthm-cable/hydraulica/cellpool"
)

func flatMap(t *testing.T, size int, height float64) *cellpool.Map {
	t.Helper()
	pool := cellpool.NewPool(size * size)
	m, err := cellpool.NewMap(pool, 1, size)
	if err != nil {
		t.Fatalf("NewMap: %v", err)
	}
	m.Each(func(_ cellpool.Vec2i, c *cellpool.Cell) { c.Height = height })
	return m
}

func TestNormalIsUpOnFlatField(t *testing.T) {
	m := flatMap(t, 8, 0.5)

	for y := 1; y < 7; y++ {
		for x := 1; x < 7; x++ {
			p := cellpool.Vec2i{X: x, Y: y}
			n := Normal(m, p, 80)
			if math.Abs(n.X-Up.X) > 1e-9 || math.Abs(n.Y-Up.Y) > 1e-9 || math.Abs(n.Z-Up.Z) > 1e-9 {
				t.Errorf("expected up vector at %v, got %v", p, n)
			}
		}
	}
}

func TestNormalOutOfBoundsReturnsUp(t *testing.T) {
	m := flatMap(t, 4, 0.5)
	n := Normal(m, cellpool.Vec2i{X: 100, Y: 100}, 80)
	if n != Up {
		t.Errorf("expected Up for an out-of-bounds position, got %v", n)
	}
}

func TestDischargeViewSaturatesAndIsMonotone(t *testing.T) {
	prev := -1.0
	for _, d := range []float64{0, 0.1, 1, 5, 50, 1000} {
		v := DischargeView(d)
		if v < 0 || v >= 1 {
			t.Errorf("expected DischargeView(%v) in [0,1), got %v", d, v)
		}
		if v < prev {
			t.Errorf("expected DischargeView monotone in d, got %v after %v", v, prev)
		}
		prev = v
	}
}

func TestDischargeViewZeroIsZero(t *testing.T) {
	if v := DischargeView(0); v != 0 {
		t.Errorf("expected DischargeView(0) == 0, got %v", v)
	}
}
