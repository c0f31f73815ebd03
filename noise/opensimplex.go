package noise

import opensimplex "github.com/ojrac/opensimplex-go"

// OpenSimplex wraps the ojrac/opensimplex-go generator as an alternate
// collab.NoiseOracle, selectable in place of Perlin via terrain
// configuration.
type OpenSimplex struct {
	src opensimplex.Noise
}

// NewOpenSimplex seeds a new OpenSimplex oracle.
func NewOpenSimplex(seed int64) *OpenSimplex {
	return &OpenSimplex{src: opensimplex.New(seed)}
}

// Noise2D returns a coherent noise value for the given coordinates.
func (o *OpenSimplex) Noise2D(x, y float64) float64 {
	return o.src.Eval2(x, y)
}
