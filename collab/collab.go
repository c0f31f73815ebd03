// Package collab defines the seams between the simulation core and its
// host: noise generation, randomness, and the read-only views a renderer
// or exporter pulls between ticks. The core consumes NoiseOracle and RNG
// and exposes its state through Snapshot; within this module, the noise
// package implements NoiseOracle and the erosion driver implements
// Snapshot and adapts its own random source to RNG.
package collab

import "github.com/pthm-cable/hydraulica/cellpool"

// NoiseOracle produces coherent noise for terrain generation. Noise2D must
// be pure: the same (x, y) on the same oracle always returns the same
// value, so the terrain generator stays deterministic for a given seed.
type NoiseOracle interface {
	Noise2D(x, y float64) float64
}

// RNG is the uniform random source the vegetation model draws from. The
// erosion driver passes it an adapter over the same seeded *rand.Rand it
// uses directly for drop spawn positions.
type RNG interface {
	Intn(n int) int
	Float64() float64
}

// PlantView is the read-only shape of a single vegetation entity exposed
// to a snapshot reader.
type PlantView struct {
	X, Y float64
	Size float64
}

// Snapshot is a read-only readout of the simulation state between ticks.
// It is not a persisted format; nothing in the core re-reads a Snapshot
// as input.
type Snapshot interface {
	CellAt(p cellpool.Vec2i) (cellpool.Cell, bool)
	WorldSize() int
	Plants() []PlantView
}

// ImageSink receives per-tick dumps of the discharge and momentum fields.
// Encode is supplied by the host. No package in this module calls an
// ImageSink; it is the attachment point for a host-side exporter.
type ImageSink interface {
	Encode(discharge, momentumX, momentumY float64) (r, g, b, a uint8)
	Emit(tick int, width, height int, pixels []byte)
}
