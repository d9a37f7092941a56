package dac

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// DefaultSysfsDir is the first IIO device on Linux.
const DefaultSysfsDir = "/sys/bus/iio/devices/iio:device0"

// Sysfs drives an IIO DAC through its out_voltageN_raw attributes.
type Sysfs struct {
	Dir string
}

func NewSysfs(dir string) *Sysfs {
	if dir == "" {
		dir = DefaultSysfsDir
	}
	return &Sysfs{Dir: dir}
}

// Configure opens the channel's raw attribute for writing and powers the
// channel up when the device exposes a powerdown switch.
func (s *Sysfs) Configure(ch Channel) (Output, error) {
	if !ch.Valid() {
		return nil, fmt.Errorf("sysfs: invalid channel %d", int(ch))
	}

	down := filepath.Join(s.Dir, fmt.Sprintf("out_voltage%d_powerdown", int(ch)))
	if _, err := os.Stat(down); err == nil {
		if err := os.WriteFile(down, []byte("0"), 0644); err != nil {
			return nil, fmt.Errorf("sysfs: power up %s: %w", ch, err)
		}
	}

	raw := filepath.Join(s.Dir, fmt.Sprintf("out_voltage%d_raw", int(ch)))
	f, err := os.OpenFile(raw, os.O_WRONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("sysfs: open %s: %w", ch, err)
	}

	buf := make([]byte, 0, 4)
	return OutputFunc(func(code uint8) error {
		buf = strconv.AppendUint(buf[:0], uint64(code), 10)
		// sysfs attributes take a whole value per write at offset 0
		_, err := f.WriteAt(buf, 0)
		return err
	}), nil
}
