package metrics

import "github.com/san-kum/lorenzdac/internal/driver"

// Metric accumulates a scalar over the ticks it observes.
type Metric interface {
	driver.Observer
	Name() string
	Value() float64
}

// Defaults returns the metrics recorded with every capture.
func Defaults() []Metric {
	return []Metric{
		NewSaturation(0),
		NewSaturation(1),
		NewExcursion(),
		NewSlew(0),
		NewSlew(1),
	}
}

func Collect(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
