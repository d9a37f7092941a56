package physics

import "github.com/san-kum/lorenzdac/internal/dynamo"

type Lorenz struct{ sigma, rho, beta float64 }

func NewLorenz(p dynamo.Params) *Lorenz { return &Lorenz{p.Sigma, p.Rho, p.Beta} }

// Derive calculates the Lorenz attractor derivatives.
func (l *Lorenz) Derive(s dynamo.State) dynamo.State {
	return dynamo.State{
		X: l.sigma * (s.Y - s.X),
		Y: s.X*(l.rho-s.Z) - s.Y,
		Z: s.X*s.Y - l.beta*s.Z,
	}
}

func (l *Lorenz) DefaultState() dynamo.State { return dynamo.State{X: 1.0, Y: 1.0, Z: 1.0} }

func (l *Lorenz) Params() map[string]float64 {
	return map[string]float64{"sigma": l.sigma, "rho": l.rho, "beta": l.beta}
}
