package telemetry

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a tick window, exported as
// one CSV row.
type WindowStats struct {
	WindowStartTick int `csv:"-"`
	WindowEndTick   int `csv:"window_end"`

	DropsSpawned int `csv:"drops_spawned"`
	PlantCount   int `csv:"plant_count"`

	DischargeMean   float64 `csv:"discharge_mean"`
	DischargeStdDev float64 `csv:"discharge_stddev"`
	DischargeMax    float64 `csv:"discharge_max"`

	MomentumMean   float64 `csv:"momentum_mean"`
	MomentumStdDev float64 `csv:"momentum_stddev"`

	PoolVolume float64 `csv:"pool_volume"`
}

// ComputeDischargeStats returns the mean, sample standard deviation (from
// gonum's unbiased variance), and max of a sample of discharge values.
func ComputeDischargeStats(values []float64) (mean, stddev, max float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}
	mean, variance := stat.MeanVariance(values, nil)
	stddev = math.Sqrt(variance)

	max = values[0]
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	return mean, stddev, max
}

// ComputeMomentumStats returns the mean and sample standard deviation
// (from gonum's unbiased variance) of a sample of momentum magnitudes.
func ComputeMomentumStats(values []float64) (mean, stddev float64) {
	if len(values) == 0 {
		return 0, 0
	}
	mean, variance := stat.MeanVariance(values, nil)
	return mean, math.Sqrt(variance)
}
