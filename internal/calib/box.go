package calib

import (
	"fmt"
	"math"

	"github.com/san-kum/lorenzdac/internal/dynamo"
)

// MinWidth is the narrowest range that still normalises; anything tighter
// is degenerate.
const MinWidth = 1e-12

// Midpoint is the normalised value reported on a degenerate axis.
const Midpoint = 0.5

// Range is the [Min, Max] interval visited on one axis.
type Range struct {
	Min, Max float64
}

func (r Range) Width() float64 { return r.Max - r.Min }

// IsOpen reports whether no sample has been observed yet.
func (r Range) IsOpen() bool { return r.Min > r.Max }

func (r *Range) observe(v float64) {
	if v > r.Max {
		r.Max = v
	}
	if v < r.Min {
		r.Min = v
	}
}

// Box is the per-axis bounding box of a trajectory.
type Box struct {
	X, Y, Z Range
}

// Open returns a box whose bounds any real sample defeats.
func Open() Box {
	open := Range{Min: math.Inf(1), Max: math.Inf(-1)}
	return Box{X: open, Y: open, Z: open}
}

// At returns the range on axis a.
func (b Box) At(a dynamo.Axis) Range {
	switch a {
	case dynamo.AxisX:
		return b.X
	case dynamo.AxisY:
		return b.Y
	default:
		return b.Z
	}
}

// Observe widens each axis independently to include s.
func (b *Box) Observe(s dynamo.State) {
	b.X.observe(s.X)
	b.Y.observe(s.Y)
	b.Z.observe(s.Z)
}

// Degenerate lists the axes too narrow to normalise.
func (b Box) Degenerate() []dynamo.Axis {
	var axes []dynamo.Axis
	for _, a := range dynamo.Axes {
		if b.At(a).Width() < MinWidth {
			axes = append(axes, a)
		}
	}
	return axes
}

// Normalize maps s affinely into the box without clamping. Degenerate
// axes report Midpoint.
func (b Box) Normalize(s dynamo.State) Sample {
	return Sample{
		X: normalize(s.X, b.X),
		Y: normalize(s.Y, b.Y),
		Z: normalize(s.Z, b.Z),
	}
}

func normalize(v float64, r Range) float64 {
	w := r.Width()
	if !(w >= MinWidth) {
		return Midpoint
	}
	return (v - r.Min) / w
}

func (b Box) String() string {
	return fmt.Sprintf("x:(%f,%f) y:(%f,%f) z:(%f,%f)",
		b.X.Min, b.X.Max, b.Y.Min, b.Y.Max, b.Z.Min, b.Z.Max)
}

// Sample is a normalised point, nominally in [0, 1] per axis.
type Sample struct {
	X, Y, Z float64
}

func (s Sample) At(a dynamo.Axis) float64 {
	switch a {
	case dynamo.AxisX:
		return s.X
	case dynamo.AxisY:
		return s.Y
	default:
		return s.Z
	}
}
