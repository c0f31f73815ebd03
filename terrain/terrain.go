// Package terrain fills a cellpool.Map's height field from a noise
// oracle: eight fractal octaves, a linear renormalization to [0,1], and an
// optional radial falloff for island generation.
package terrain

import (
	"math"

	"github.com/pthm-cable/hydraulica/cellpool"
	"github.com/pthm-cable/hydraulica/collab"
	"github.com/pthm-cable/hydraulica/reduction"
)

const (
	octaves    = 8
	lacunarity = 2.0
	gain       = 0.6
	baseFreq   = 1.0
)

// Options controls optional shaping applied after the fractal sum.
type Options struct {
	// RadialFalloff multiplies heights by reduction.RadialFalloff(r),
	// biasing the terrain toward an island.
	RadialFalloff bool
}

// Generate fills every cell of m with a height sampled from oracle,
// optionally reshaped into an island by opts.
func Generate(m *cellpool.Map, oracle collab.NoiseOracle, seedMod float64, opts Options) {
	size := m.WorldSize()
	if size <= 0 {
		return
	}

	min, max := math.Inf(1), math.Inf(-1)

	m.Each(func(world cellpool.Vec2i, c *cellpool.Cell) {
		nx := float64(world.X) / float64(size)
		ny := float64(world.Y) / float64(size)

		var h float64
		freq := baseFreq
		amp := 1.0
		for k := 0; k < octaves; k++ {
			h += amp * oracle.Noise2D(nx*freq+seedMod, ny*freq+seedMod)
			freq *= lacunarity
			amp *= gain
		}

		c.Height = h
		if h < min {
			min = h
		}
		if h > max {
			max = h
		}
	})

	span := max - min
	if span == 0 {
		span = 1
	}

	center := float64(size) / 2

	m.Each(func(world cellpool.Vec2i, c *cellpool.Cell) {
		c.Height = (c.Height - min) / span

		if opts.RadialFalloff {
			dx := float64(world.X) - center
			dy := float64(world.Y) - center
			r := math.Sqrt(dx*dx + dy*dy)
			c.Height *= reduction.RadialFalloff(r)
		}
	})
}
