package driver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/san-kum/lorenzdac/internal/calib"
	"github.com/san-kum/lorenzdac/internal/dac"
	"github.com/san-kum/lorenzdac/internal/dynamo"
)

var (
	ErrNotCalibrated = errors.New("driver: tick before calibration")
	ErrCalibrated    = errors.New("driver: already calibrated")
)

// Phase is the driver lifecycle. The only transition is Calibrating to
// Running.
type Phase int

const (
	Calibrating Phase = iota
	Running
)

func (p Phase) String() string {
	if p == Running {
		return "running"
	}
	return "calibrating"
}

// Frame is everything produced by one tick.
type Frame struct {
	Tick   int
	State  dynamo.State
	Sample calib.Sample
	Codes  [2]uint8
}

type Observer interface {
	OnTick(f Frame)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(f Frame)

func (fn ObserverFunc) OnTick(f Frame) { fn(f) }

type Options struct {
	Steps    int
	Interval time.Duration
	Axes     [2]dynamo.Axis
	// Resume starts the live trajectory from the calibration's final state
	// instead of the initial condition.
	Resume bool
}

func DefaultOptions() Options {
	return Options{
		Steps:    calib.DefaultSteps,
		Interval: 2 * time.Millisecond,
		Axes:     [2]dynamo.Axis{dynamo.AxisX, dynamo.AxisZ},
	}
}

type Driver struct {
	stepper   dynamo.Advancer
	x0        dynamo.State
	opts      Options
	out       [2]dac.Output
	clock     Clock
	observers []Observer

	phase Phase
	box   calib.Box
	state dynamo.State
	tick  int
}

func New(st dynamo.Advancer, x0 dynamo.State, opts Options, out [2]dac.Output, clock Clock) *Driver {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Driver{
		stepper:   st,
		x0:        x0,
		opts:      opts,
		out:       out,
		clock:     clock,
		observers: make([]Observer, 0),
		state:     x0,
	}
}

// Open configures both channels of dev. Failure on either channel is fatal.
func Open(dev dac.Device) ([2]dac.Output, error) {
	var out [2]dac.Output
	for _, ch := range []dac.Channel{dac.Chan0, dac.Chan1} {
		o, err := dev.Configure(ch)
		if err != nil {
			return out, fmt.Errorf("%w: %s: %v", dynamo.ErrDeviceConfig, ch, err)
		}
		out[ch] = o
	}
	return out, nil
}

func (d *Driver) AddObserver(o Observer) { d.observers = append(d.observers, o) }

func (d *Driver) Phase() Phase        { return d.phase }
func (d *Driver) Box() calib.Box      { return d.box }
func (d *Driver) State() dynamo.State { return d.state }
func (d *Driver) Ticks() int          { return d.tick }

// Calibrate runs the range pass and moves the driver to Running.
func (d *Driver) Calibrate() (calib.Box, error) {
	if d.phase != Calibrating {
		return d.box, ErrCalibrated
	}
	box, final, err := calib.Calibrate(d.stepper, d.x0, d.opts.Steps)
	if err != nil {
		return box, err
	}

	d.box = box
	d.state = d.x0
	if d.opts.Resume {
		d.state = final
	}
	d.phase = Running
	return box, nil
}

// Tick advances the live state once and writes both channels from it.
func (d *Driver) Tick() (Frame, error) {
	if d.phase != Running {
		return Frame{}, ErrNotCalibrated
	}

	d.state = d.stepper.Advance(d.state)
	sample := d.box.Normalize(d.state)

	f := Frame{Tick: d.tick, State: d.state, Sample: sample}
	for i, a := range d.opts.Axes {
		f.Codes[i] = dac.Quantize(sample.At(a) * dac.MaxCode)
	}

	for i, o := range d.out {
		if err := o.Write(f.Codes[i]); err != nil {
			return f, fmt.Errorf("tick %d: write %s: %w", d.tick, dac.Channel(i), err)
		}
	}
	d.tick++

	for _, obs := range d.observers {
		obs.OnTick(f)
	}
	return f, nil
}

// Run calibrates if needed, then ticks once per interval until ctx is done
// or a write fails.
func (d *Driver) Run(ctx context.Context) error {
	if d.opts.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", d.opts.Interval)
	}
	if d.phase == Calibrating {
		if _, err := d.Calibrate(); err != nil {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if _, err := d.Tick(); err != nil {
			return err
		}
		if err := d.clock.Sleep(ctx, d.opts.Interval); err != nil {
			return err
		}
	}
}

// RunTicks calibrates if needed and performs n ticks without sleeping.
func (d *Driver) RunTicks(n int) ([]Frame, error) {
	if d.phase == Calibrating {
		if _, err := d.Calibrate(); err != nil {
			return nil, err
		}
	}
	frames := make([]Frame, 0, n)
	for i := 0; i < n; i++ {
		f, err := d.Tick()
		if err != nil {
			return frames, err
		}
		frames = append(frames, f)
	}
	return frames, nil
}
