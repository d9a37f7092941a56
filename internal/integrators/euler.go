package integrators

import "github.com/san-kum/lorenzdac/internal/dynamo"

// Euler is the explicit first-order scheme x' = x + f(x)*dt.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(dyn dynamo.System, x dynamo.State, dt float64) dynamo.State {
	dx := dyn.Derive(x)
	return dynamo.State{
		X: x.X + dx.X*dt,
		Y: x.Y + dx.Y*dt,
		Z: x.Z + dx.Z*dt,
	}
}
