package analysis

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type Summary struct {
	Min, Max     float64
	Mean, StdDev float64
	// Saturated counts samples pinned at either end of the range.
	Saturated int
}

// Summarize reports the distribution of one channel. lo and hi are the
// channel's rail values.
func Summarize(data []float64, lo, hi float64) Summary {
	if len(data) == 0 {
		return Summary{}
	}

	mean, std := stat.MeanStdDev(data, nil)
	s := Summary{
		Min:    floats.Min(data),
		Max:    floats.Max(data),
		Mean:   mean,
		StdDev: std,
	}
	for _, v := range data {
		if v <= lo || v >= hi {
			s.Saturated++
		}
	}
	return s
}
