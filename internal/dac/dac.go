package dac

import (
	"fmt"
	"math"
)

// MaxCode is the highest code the driver emits, one below full scale.
const MaxCode = 254

// Channel identifies one of the two output channels.
type Channel int

const (
	Chan0 Channel = iota
	Chan1
)

func (c Channel) Valid() bool { return c == Chan0 || c == Chan1 }

func (c Channel) String() string { return fmt.Sprintf("ch%d", int(c)) }

// Output is a configured channel handle.
type Output interface {
	Write(code uint8) error
}

// Device hands out channel handles. Handles live for the process lifetime.
type Device interface {
	Configure(ch Channel) (Output, error)
}

// Quantize converts a scaled level to a code, truncating toward zero and
// saturating to [0, MaxCode]. NaN maps to 0.
func Quantize(v float64) uint8 {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= MaxCode:
		return MaxCode
	}
	return uint8(v)
}

// OutputFunc adapts a function to Output.
type OutputFunc func(code uint8) error

func (f OutputFunc) Write(code uint8) error { return f(code) }
