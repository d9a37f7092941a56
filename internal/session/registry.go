package session

import (
	"fmt"
	"os"
	"sort"

	"github.com/san-kum/lorenzdac/internal/audio"
	"github.com/san-kum/lorenzdac/internal/config"
	"github.com/san-kum/lorenzdac/internal/dac"
)

// Opener builds an output device from the config. The returned func
// releases it.
type Opener func(cfg *config.Config) (dac.Device, func(), error)

type Registry struct {
	outputs map[string]Opener
}

func NewRegistry() *Registry {
	r := &Registry{outputs: make(map[string]Opener)}

	r.outputs[config.OutputAudio] = func(*config.Config) (dac.Device, func(), error) {
		d := audio.NewDevice()
		return d, d.Stop, nil
	}
	r.outputs[config.OutputSysfs] = func(cfg *config.Config) (dac.Device, func(), error) {
		return dac.NewSysfs(cfg.SysfsDir), func() {}, nil
	}
	r.outputs[config.OutputStdout] = func(*config.Config) (dac.Device, func(), error) {
		return dac.NewLineWriter(os.Stdout), func() {}, nil
	}
	r.outputs[config.OutputNull] = func(*config.Config) (dac.Device, func(), error) {
		return dac.Null{}, func() {}, nil
	}

	return r
}

// Register adds or replaces an output backend.
func (r *Registry) Register(name string, open Opener) {
	r.outputs[name] = open
}

func (r *Registry) Open(cfg *config.Config) (dac.Device, func(), error) {
	open, ok := r.outputs[cfg.Output]
	if !ok {
		return nil, nil, fmt.Errorf("unknown output: %s", cfg.Output)
	}
	return open(cfg)
}

func (r *Registry) ListOutputs() []string {
	names := make([]string, 0, len(r.outputs))
	for name := range r.outputs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
