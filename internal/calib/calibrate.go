package calib

import (
	"fmt"

	"github.com/san-kum/lorenzdac/internal/dynamo"
)

// DefaultSteps is long enough for a trajectory started off the attractor to
// settle and sample its full extent at dt=0.001.
const DefaultSteps = 20000

// Calibrate advances x0 steps times and returns the bounding box of every
// state visited after x0, plus the final state. The transient is included.
func Calibrate(st dynamo.Advancer, x0 dynamo.State, steps int) (Box, dynamo.State, error) {
	if steps < 1 {
		return Box{}, x0, fmt.Errorf("%w: got %d", dynamo.ErrInvalidSteps, steps)
	}

	box := Open()
	x := x0
	for i := 0; i < steps; i++ {
		x = st.Advance(x)
		box.Observe(x)
	}

	for _, a := range dynamo.Axes {
		if box.At(a).IsOpen() {
			return box, x, &dynamo.SimulationError{
				Step:    steps,
				State:   x,
				Wrapped: fmt.Errorf("%w: axis %s never observed a finite sample", dynamo.ErrInvalidState, a),
			}
		}
	}

	return box, x, nil
}

// CheckRange reports ErrDegenerateRange when any axis is too narrow.
// Normalize already guards those axes; callers use this to warn.
func CheckRange(b Box) error {
	if axes := b.Degenerate(); len(axes) > 0 {
		return fmt.Errorf("%w: axes %v", dynamo.ErrDegenerateRange, axes)
	}
	return nil
}
