package telemetry

// Collector accumulates per-tick discharge/momentum samples and spawned
// drop counts within a tick window and produces a WindowStats on Flush;
// plant count and pool volume are supplied at Flush time.
type Collector struct {
	windowDurationTicks int

	windowStartTick int
	dropsSpawned    int

	dischargeSamples []float64
	momentumSamples  []float64
}

// NewCollector creates a collector whose window spans windowDurationTicks
// simulation ticks.
func NewCollector(windowDurationTicks int) *Collector {
	if windowDurationTicks < 1 {
		windowDurationTicks = 1
	}
	return &Collector{windowDurationTicks: windowDurationTicks}
}

// RecordDrop records that one drop was spawned this tick.
func (c *Collector) RecordDrop() {
	c.dropsSpawned++
}

// RecordCell records one cell's discharge and momentum magnitude for this
// window's summary statistics.
func (c *Collector) RecordCell(discharge, momentumMagnitude float64) {
	c.dischargeSamples = append(c.dischargeSamples, discharge)
	c.momentumSamples = append(c.momentumSamples, momentumMagnitude)
}

// ShouldFlush reports whether enough ticks have passed to flush the
// window.
func (c *Collector) ShouldFlush(currentTick int) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats from the accumulated samples and resets
// the collector for the next window.
func (c *Collector) Flush(currentTick, plantCount int, poolVolume float64) WindowStats {
	dischargeMean, dischargeStdDev, dischargeMax := ComputeDischargeStats(c.dischargeSamples)
	momentumMean, momentumStdDev := ComputeMomentumStats(c.momentumSamples)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		DropsSpawned: c.dropsSpawned,
		PlantCount:   plantCount,

		DischargeMean:   dischargeMean,
		DischargeStdDev: dischargeStdDev,
		DischargeMax:    dischargeMax,

		MomentumMean:   momentumMean,
		MomentumStdDev: momentumStdDev,

		PoolVolume: poolVolume,
	}

	c.windowStartTick = currentTick
	c.dropsSpawned = 0
	c.dischargeSamples = c.dischargeSamples[:0]
	c.momentumSamples = c.momentumSamples[:0]

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int {
	return c.windowDurationTicks
}
