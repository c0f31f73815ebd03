// Package cellpool provides the fixed-size cell arena and grid indexing
// that back the simulation's terrain, flow, and vegetation fields.
package cellpool

// Cell is a single grid record. Fields are interleaved because the
// per-step access pattern during drop descent touches all of them
// together; consumers should not depend on this layout.
type Cell struct {
	Height float64 // surface elevation, normalized to [0,1] at generation

	Discharge  float64 // low-passed water throughput estimate
	MomentumX  float64 // low-passed weighted velocity
	MomentumY  float64

	DischargeTrack float64 // per-tick accumulators, zeroed before each tick
	MomentumXTrack float64
	MomentumYTrack float64

	RootDensity float64 // vegetation imprint, >= 0

	Pool float64 // standing water depth above Height; only touched when flood is enabled
}

// ResetTrack zeroes the per-tick accumulators.
func (c *Cell) ResetTrack() {
	c.DischargeTrack = 0
	c.MomentumXTrack = 0
	c.MomentumYTrack = 0
}

// Filter applies the exponential moving average that turns this tick's
// tracked accumulators into the persistent discharge/momentum fields.
func (c *Cell) Filter(lrate float64) {
	c.Discharge = (1-lrate)*c.Discharge + lrate*c.DischargeTrack
	c.MomentumX = (1-lrate)*c.MomentumX + lrate*c.MomentumXTrack
	c.MomentumY = (1-lrate)*c.MomentumY + lrate*c.MomentumYTrack
}
