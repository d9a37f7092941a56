package session

import (
	"context"
	"fmt"
	"log"

	"github.com/san-kum/lorenzdac/internal/calib"
	"github.com/san-kum/lorenzdac/internal/config"
	"github.com/san-kum/lorenzdac/internal/driver"
	"github.com/san-kum/lorenzdac/internal/dynamo"
	"github.com/san-kum/lorenzdac/internal/integrators"
	"github.com/san-kum/lorenzdac/internal/physics"
)

// Session wires the Lorenz stepper, an output device and a driver from a
// config.
type Session struct {
	cfg     *config.Config
	params  dynamo.Params
	stepper dynamo.Stepper
	x0      dynamo.State
	driver  *driver.Driver
	release func()
}

// NewStepper returns the compiled-in Lorenz system under forward Euler.
func NewStepper() (dynamo.Stepper, dynamo.Params) {
	p := dynamo.DefaultParams()
	return dynamo.Stepper{
		System:     physics.NewLorenz(p),
		Integrator: integrators.NewEuler(),
		Dt:         p.Dt,
	}, p
}

func New(cfg *config.Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	st, p := NewStepper()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Session{
		cfg:     cfg,
		params:  p,
		stepper: st,
		x0:      physics.NewLorenz(p).DefaultState(),
		release: func() {},
	}, nil
}

// Setup opens the configured device on both channels and builds the driver.
// A device that cannot be configured aborts the session.
func (s *Session) Setup(r *Registry) error {
	dev, release, err := r.Open(s.cfg)
	if err != nil {
		return err
	}
	out, err := driver.Open(dev)
	if err != nil {
		release()
		return err
	}
	s.release = release

	axes, err := s.cfg.Axes()
	if err != nil {
		release()
		return err
	}
	opts := driver.Options{
		Steps:    s.cfg.CalibrationSteps,
		Interval: s.cfg.Tick,
		Axes:     axes,
		Resume:   s.cfg.Resume,
	}
	s.driver = driver.New(s.stepper, s.x0, opts, out, nil)
	return nil
}

// Calibrate runs the range pass and logs the result.
func (s *Session) Calibrate() (calib.Box, error) {
	if s.driver == nil {
		return calib.Box{}, fmt.Errorf("session not setup")
	}
	box, err := s.driver.Calibrate()
	if err != nil {
		return box, err
	}
	log.Printf("calibrated over %d steps: %s", s.cfg.CalibrationSteps, box)
	if err := calib.CheckRange(box); err != nil {
		log.Printf("warning: %v", err)
	}
	return box, nil
}

// Run calibrates and drives the outputs until ctx is done.
func (s *Session) Run(ctx context.Context) error {
	if _, err := s.Calibrate(); err != nil {
		return err
	}
	log.Printf("driving %s on %s/%s every %s", s.cfg.Output, s.cfg.Channels[0], s.cfg.Channels[1], s.cfg.Tick)
	return s.driver.Run(ctx)
}

func (s *Session) Close() { s.release() }

func (s *Session) Driver() *driver.Driver  { return s.driver }
func (s *Session) Params() dynamo.Params   { return s.params }
func (s *Session) Stepper() dynamo.Stepper { return s.stepper }
func (s *Session) Initial() dynamo.State   { return s.x0 }
func (s *Session) Config() *config.Config  { return s.cfg }
