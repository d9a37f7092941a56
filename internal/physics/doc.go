// Package physics provides the dynamical system driven onto the outputs.
//
// [Lorenz] implements [dynamo.System] with the classic butterfly attractor
// equations. Coefficients are fixed at construction; there is no setter.
//
//	dyn := physics.NewLorenz(dynamo.DefaultParams())
//	d := dyn.Derive(dyn.DefaultState())
package physics
