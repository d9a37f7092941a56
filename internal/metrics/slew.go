package metrics

import (
	"fmt"

	"github.com/san-kum/lorenzdac/internal/driver"
)

// Slew is the mean absolute code change per tick on one channel.
type Slew struct {
	name    string
	channel int
	prev    uint8
	sum     float64
	samples int
}

func NewSlew(channel int) *Slew {
	return &Slew{
		name:    fmt.Sprintf("slew_ch%d", channel),
		channel: channel,
	}
}

func (s *Slew) Name() string {
	return s.name
}

func (s *Slew) OnTick(f driver.Frame) {
	c := f.Codes[s.channel]
	if s.samples > 0 {
		d := int(c) - int(s.prev)
		if d < 0 {
			d = -d
		}
		s.sum += float64(d)
	}
	s.prev = c
	s.samples++
}

func (s *Slew) Value() float64 {
	if s.samples < 2 {
		return 0
	}
	return s.sum / float64(s.samples-1)
}
