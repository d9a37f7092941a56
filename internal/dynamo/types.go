package dynamo

import (
	"fmt"
	"math"
)

// Axis selects one coordinate of a State.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Axes lists every axis in order.
var Axes = [3]Axis{AxisX, AxisY, AxisZ}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("axis(%d)", int(a))
}

// ParseAxis maps "x", "y" or "z" to an Axis.
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x", "X":
		return AxisX, nil
	case "y", "Y":
		return AxisY, nil
	case "z", "Z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("unknown axis %q", s)
}

// State is a point in three dimensional phase space.
type State struct {
	X, Y, Z float64
}

// At returns the coordinate on axis a.
func (s State) At(a Axis) float64 {
	switch a {
	case AxisX:
		return s.X
	case AxisY:
		return s.Y
	default:
		return s.Z
	}
}

func (s State) IsValid() bool {
	for _, a := range Axes {
		v := s.At(a)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) String() string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", s.X, s.Y, s.Z)
}

// Params are the Lorenz coefficients and the fixed step size.
type Params struct {
	Sigma float64
	Rho   float64
	Beta  float64
	Dt    float64
}

func DefaultParams() Params {
	return Params{
		Sigma: 10.0,
		Rho:   28.0,
		Beta:  8.0 / 3.0,
		Dt:    0.001,
	}
}

func (p Params) Validate() error {
	for name, v := range map[string]float64{"sigma": p.Sigma, "rho": p.Rho, "beta": p.Beta, "dt": p.Dt} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidParams, name)
		}
	}
	if p.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidParams, p.Dt)
	}
	return nil
}

// System is an autonomous ODE dX/dt = f(X).
type System interface {
	Derive(x State) State
}

type Integrator interface {
	Step(sys System, x State, dt float64) State
}

// Advancer is a single-step state transition.
type Advancer interface {
	Advance(x State) State
}

// Stepper advances a System by one fixed step.
type Stepper struct {
	System     System
	Integrator Integrator
	Dt         float64
}

func (s Stepper) Advance(x State) State {
	return s.Integrator.Step(s.System, x, s.Dt)
}
