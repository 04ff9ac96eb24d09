package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary holds aggregate statistics over one population-wide metric.
type Summary struct {
	Mean   float64
	Std    float64
	Median float64
}

// Summarize computes mean, standard deviation and median of values.
// Returns a zero Summary for an empty slice.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	s := Summary{
		Mean:   stat.Mean(sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
	}
	if len(sorted) > 1 {
		s.Std = stat.StdDev(sorted, nil)
	}
	return s
}
