package water

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/hydraulica/cellpool"
)

func basinMap(t *testing.T, size int) *cellpool.Map {
	t.Helper()
	pool := cellpool.NewPool(size * size)
	m, err := cellpool.NewMap(pool, 1, size)
	if err != nil {
		t.Fatalf("NewMap: %v", err)
	}
	// A bowl: height rises with distance from center, flat floor.
	center := size / 2
	m.Each(func(p cellpool.Vec2i, c *cellpool.Cell) {
		dx, dy := p.X-center, p.Y-center
		d := dx*dx + dy*dy
		if d < 2 {
			c.Height = 0.1
		} else {
			c.Height = 0.1 + float64(d)*0.02
		}
	})
	return m
}

func TestFloodNeverProducesNegativePool(t *testing.T) {
	m := basinMap(t, 16)
	params := defaultParams()

	drop := NewDrop(r2.Vec{X: 8, Y: 8}, params)
	drop.Volume = 5

	Flood(m, drop, params)

	m.Each(func(_ cellpool.Vec2i, c *cellpool.Cell) {
		if c.Pool < -1e-9 {
			t.Errorf("expected non-negative pool depth, got %v", c.Pool)
		}
	})
}

func TestFloodCommitConsumesAtMostDropVolume(t *testing.T) {
	m := basinMap(t, 16)
	params := defaultParams()

	drop := NewDrop(r2.Vec{X: 8, Y: 8}, params)
	drop.Volume = 0.01

	Flood(m, drop, params)

	if drop.Volume < 0 {
		t.Errorf("drop volume went negative: %v", drop.Volume)
	}
}
