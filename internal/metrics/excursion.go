package metrics

import (
	"github.com/san-kum/lorenzdac/internal/driver"
	"github.com/san-kum/lorenzdac/internal/dynamo"
)

// Excursion is the fraction of ticks where any normalised coordinate left
// [0, 1], i.e. the live trajectory went outside the calibrated box.
type Excursion struct {
	name    string
	outside int
	samples int
}

func NewExcursion() *Excursion {
	return &Excursion{
		name: "excursion",
	}
}

func (e *Excursion) Name() string {
	return e.name
}

func (e *Excursion) OnTick(f driver.Frame) {
	e.samples++
	for _, a := range dynamo.Axes {
		if v := f.Sample.At(a); v < 0 || v > 1 {
			e.outside++
			break
		}
	}
}

func (e *Excursion) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return float64(e.outside) / float64(e.samples)
}
