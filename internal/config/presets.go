package config

import (
	"sort"
	"time"

	"github.com/san-kum/lorenzdac/internal/calib"
)

var Presets = map[string]*Config{
	"reference": {
		Output: OutputAudio, Tick: DefaultTick, CalibrationSteps: calib.DefaultSteps,
		Channels: [2]string{"x", "z"}, CaptureDir: DefaultCaptureDir,
	},
	"scope-xy": {
		Output: OutputAudio, Tick: DefaultTick, CalibrationSteps: calib.DefaultSteps,
		Channels: [2]string{"x", "y"}, CaptureDir: DefaultCaptureDir,
	},
	"slow": {
		Output: OutputAudio, Tick: 20 * time.Millisecond, CalibrationSteps: calib.DefaultSteps,
		Channels: [2]string{"x", "z"}, CaptureDir: DefaultCaptureDir,
	},
	"settled": {
		Output: OutputAudio, Tick: DefaultTick, CalibrationSteps: calib.DefaultSteps,
		Channels: [2]string{"x", "z"}, Resume: true, CaptureDir: DefaultCaptureDir,
	},
	"iio": {
		Output: OutputSysfs, Tick: DefaultTick, CalibrationSteps: calib.DefaultSteps,
		Channels: [2]string{"x", "z"}, CaptureDir: DefaultCaptureDir,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
