package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/lorenzdac/internal/calib"
	"github.com/san-kum/lorenzdac/internal/dynamo"
)

const (
	DefaultTick       = 2 * time.Millisecond
	DefaultOutput     = "audio"
	DefaultCaptureDir = ".lorenzdac"
)

// Output backends understood by the driver.
const (
	OutputAudio  = "audio"
	OutputSysfs  = "sysfs"
	OutputStdout = "stdout"
	OutputNull   = "null"
)

// Config covers the driver surroundings. The Lorenz coefficients and step
// size are compiled in and have no entry here.
type Config struct {
	Output           string        `yaml:"output"`
	SysfsDir         string        `yaml:"sysfs_dir"`
	Tick             time.Duration `yaml:"tick"`
	CalibrationSteps int           `yaml:"calibration_steps"`
	Channels         [2]string     `yaml:"channels,flow"`
	Resume           bool          `yaml:"resume"`
	CaptureDir       string        `yaml:"capture_dir"`
}

func DefaultConfig() *Config {
	return &Config{
		Output:           DefaultOutput,
		Tick:             DefaultTick,
		CalibrationSteps: calib.DefaultSteps,
		Channels:         [2]string{"x", "z"},
		CaptureDir:       DefaultCaptureDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch c.Output {
	case OutputAudio, OutputSysfs, OutputStdout, OutputNull:
	default:
		return fmt.Errorf("unknown output %q", c.Output)
	}
	if c.Tick <= 0 {
		return fmt.Errorf("tick must be positive, got %s", c.Tick)
	}
	if c.CalibrationSteps < 1 {
		return fmt.Errorf("%w: calibration_steps=%d", dynamo.ErrInvalidSteps, c.CalibrationSteps)
	}
	if _, err := c.Axes(); err != nil {
		return err
	}
	return nil
}

// Axes resolves the configured channel axes.
func (c *Config) Axes() ([2]dynamo.Axis, error) {
	var axes [2]dynamo.Axis
	for i, name := range c.Channels {
		a, err := dynamo.ParseAxis(name)
		if err != nil {
			return axes, fmt.Errorf("channel %d: %w", i, err)
		}
		axes[i] = a
	}
	return axes, nil
}
