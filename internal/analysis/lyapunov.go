package analysis

import (
	"math"

	"github.com/san-kum/lorenzdac/internal/dynamo"
)

// LyapunovExponent estimates the largest Lyapunov exponent using the
// trajectory separation method. A positive value indicates chaos.
//
// Algorithm:
// 1. Run two trajectories separated by perturbation on x
// 2. After every step measure their separation d
// 3. Accumulate ln(d/d0) and pull the companion back to distance d0
// 4. λ ≈ Σ ln(d/d0) / (steps*dt)
func LyapunovExponent(st dynamo.Advancer, x0 dynamo.State, dt float64, steps int, perturbation float64) float64 {
	if steps <= 0 || dt <= 0 || perturbation <= 0 {
		return 0
	}

	d0 := perturbation
	x := x0
	xp := x0
	xp.X += perturbation

	sumLog := 0.0
	count := 0
	for i := 0; i < steps; i++ {
		x = st.Advance(x)
		xp = st.Advance(xp)

		dx, dy, dz := xp.X-x.X, xp.Y-x.Y, xp.Z-x.Z
		sep := math.Sqrt(dx*dx + dy*dy + dz*dz)
		if sep == 0 || math.IsNaN(sep) || math.IsInf(sep, 0) {
			continue
		}

		sumLog += math.Log(sep / d0)
		count++

		scale := d0 / sep
		xp = dynamo.State{X: x.X + dx*scale, Y: x.Y + dy*scale, Z: x.Z + dz*scale}
	}

	if count == 0 {
		return 0
	}
	return sumLog / (float64(count) * dt)
}
