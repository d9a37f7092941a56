package driver_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/lorenzdac/internal/calib"
	"github.com/san-kum/lorenzdac/internal/dac"
	"github.com/san-kum/lorenzdac/internal/driver"
	"github.com/san-kum/lorenzdac/internal/dynamo"
	"github.com/san-kum/lorenzdac/internal/integrators"
	"github.com/san-kum/lorenzdac/internal/physics"
)

var origin = dynamo.State{X: 1, Y: 1, Z: 1}

func stepper() dynamo.Stepper {
	p := dynamo.DefaultParams()
	return dynamo.Stepper{System: physics.NewLorenz(p), Integrator: integrators.NewEuler(), Dt: p.Dt}
}

// countingClock cancels after limit sleeps.
type countingClock struct {
	sleeps   int
	limit    int
	interval time.Duration
	cancel   context.CancelFunc
}

func (c *countingClock) Sleep(ctx context.Context, d time.Duration) error {
	c.sleeps++
	c.interval = d
	if c.sleeps >= c.limit {
		c.cancel()
	}
	return ctx.Err()
}

type failingDevice struct{ bad dac.Channel }

func (f failingDevice) Configure(ch dac.Channel) (dac.Output, error) {
	if ch == f.bad {
		return nil, errors.New("no such channel")
	}
	return dac.Null{}.Configure(ch)
}

var _ = Describe("Driver", func() {
	var (
		rec  *dac.Recorder
		outs [2]dac.Output
		opts driver.Options
	)

	BeforeEach(func() {
		rec = dac.NewRecorder()
		var err error
		outs, err = driver.Open(rec)
		Expect(err).NotTo(HaveOccurred())
		opts = driver.DefaultOptions()
	})

	Describe("Open", func() {
		It("configures both channels", func() {
			Expect(rec.Configured(dac.Chan0)).To(BeTrue())
			Expect(rec.Configured(dac.Chan1)).To(BeTrue())
		})

		It("halts on a channel that cannot be configured", func() {
			_, err := driver.Open(failingDevice{bad: dac.Chan1})
			Expect(err).To(MatchError(dynamo.ErrDeviceConfig))
		})
	})

	Describe("lifecycle", func() {
		It("refuses to tick before calibration", func() {
			d := driver.New(stepper(), origin, opts, outs, nil)
			Expect(d.Phase()).To(Equal(driver.Calibrating))
			_, err := d.Tick()
			Expect(err).To(MatchError(driver.ErrNotCalibrated))
			Expect(rec.Codes(dac.Chan0)).To(BeEmpty())
		})

		It("moves to running exactly once", func() {
			d := driver.New(stepper(), origin, opts, outs, nil)
			box, err := d.Calibrate()
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Phase()).To(Equal(driver.Running))
			Expect(d.Box()).To(Equal(box))

			_, err = d.Calibrate()
			Expect(err).To(MatchError(driver.ErrCalibrated))
			Expect(d.Phase()).To(Equal(driver.Running))
		})

		It("propagates calibration errors", func() {
			opts.Steps = 0
			d := driver.New(stepper(), origin, opts, outs, nil)
			_, err := d.Calibrate()
			Expect(err).To(MatchError(dynamo.ErrInvalidSteps))
			Expect(d.Phase()).To(Equal(driver.Calibrating))
		})
	})

	Describe("Tick", func() {
		var d *driver.Driver

		BeforeEach(func() {
			d = driver.New(stepper(), origin, opts, outs, nil)
			_, err := d.Calibrate()
			Expect(err).NotTo(HaveOccurred())
		})

		It("restarts the live trajectory from the initial condition", func() {
			Expect(d.State()).To(Equal(origin))
			f, err := d.Tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(f.State).To(Equal(stepper().Advance(origin)))
			Expect(f.Tick).To(Equal(0))
		})

		It("writes both channels from the same state", func() {
			for i := 0; i < 50; i++ {
				f, err := d.Tick()
				Expect(err).NotTo(HaveOccurred())

				n := d.Box().Normalize(f.State)
				Expect(f.Sample).To(Equal(n))
				Expect(f.Codes[0]).To(Equal(dac.Quantize(n.X * dac.MaxCode)))
				Expect(f.Codes[1]).To(Equal(dac.Quantize(n.Z * dac.MaxCode)))
			}
			Expect(rec.Codes(dac.Chan0)).To(HaveLen(50))
			Expect(rec.Codes(dac.Chan1)).To(HaveLen(50))
			Expect(d.Ticks()).To(Equal(50))
		})

		It("never exceeds the maximum code", func() {
			frames, err := d.RunTicks(2000)
			Expect(err).NotTo(HaveOccurred())
			for _, f := range frames {
				Expect(f.Codes[0]).To(BeNumerically("<=", dac.MaxCode))
				Expect(f.Codes[1]).To(BeNumerically("<=", dac.MaxCode))
			}
		})

		It("notifies observers after writing", func() {
			var seen []driver.Frame
			d.AddObserver(driver.ObserverFunc(func(f driver.Frame) {
				Expect(rec.Codes(dac.Chan1)).To(HaveLen(f.Tick + 1))
				seen = append(seen, f)
			}))
			_, err := d.RunTicks(3)
			Expect(err).NotTo(HaveOccurred())
			Expect(seen).To(HaveLen(3))
		})

		It("stops on a write failure", func() {
			boom := errors.New("bus error")
			bad := [2]dac.Output{outs[0], dac.OutputFunc(func(uint8) error { return boom })}
			d := driver.New(stepper(), origin, opts, bad, nil)
			_, err := d.RunTicks(10)
			Expect(err).To(MatchError(boom))
			Expect(d.Ticks()).To(Equal(0))
		})
	})

	Describe("Resume", func() {
		It("continues from the calibration's final state", func() {
			opts.Resume = true
			opts.Steps = 1000
			d := driver.New(stepper(), origin, opts, outs, nil)
			_, err := d.Calibrate()
			Expect(err).NotTo(HaveOccurred())

			_, final, err := calib.Calibrate(stepper(), origin, 1000)
			Expect(err).NotTo(HaveOccurred())
			Expect(d.State()).To(Equal(final))
		})
	})

	Describe("Run", func() {
		It("ticks then sleeps the configured interval until cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			clock := &countingClock{limit: 25, cancel: cancel}

			d := driver.New(stepper(), origin, opts, outs, clock)
			err := d.Run(ctx)
			Expect(err).To(MatchError(context.Canceled))
			Expect(d.Ticks()).To(Equal(25))
			Expect(clock.interval).To(Equal(2 * time.Millisecond))
			Expect(rec.Codes(dac.Chan0)).To(HaveLen(25))
		})

		It("rejects a non-positive interval", func() {
			opts.Interval = 0
			d := driver.New(stepper(), origin, opts, outs, nil)
			Expect(d.Run(context.Background())).To(HaveOccurred())
		})

		It("sleeps on the system clock", func() {
			opts.Steps = 100
			opts.Interval = time.Millisecond
			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
			defer cancel()

			d := driver.New(stepper(), origin, opts, outs, driver.SystemClock{})
			err := d.Run(ctx)
			Expect(err).To(MatchError(context.DeadlineExceeded))
			Expect(d.Ticks()).To(BeNumerically(">", 0))
		})
	})
})
