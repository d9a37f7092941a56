// Package dynamo provides the core primitives for integrating a three
// dimensional autonomous system:
//
//   - [State]: a point (x, y, z) in phase space, passed by value
//   - [Params]: Lorenz coefficients plus the fixed step size
//   - [System]: interface for ODE systems (dX/dt = f(X))
//   - [Integrator]: numerical stepping interface
//   - [Stepper]: a System and Integrator bound to one step size
//
// # Example
//
//	p := dynamo.DefaultParams()
//	st := dynamo.Stepper{System: physics.NewLorenz(p), Integrator: integrators.NewEuler(), Dt: p.Dt}
//	next := st.Advance(dynamo.State{X: 1, Y: 1, Z: 1})
//
// Every type here is a value; a Stepper holds no mutable state and is safe
// to share between goroutines.
package dynamo
