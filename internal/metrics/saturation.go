package metrics

import (
	"fmt"

	"github.com/san-kum/lorenzdac/internal/dac"
	"github.com/san-kum/lorenzdac/internal/driver"
)

// Saturation is the fraction of ticks a channel spends on either rail.
type Saturation struct {
	name    string
	channel int
	pinned  int
	samples int
}

func NewSaturation(channel int) *Saturation {
	return &Saturation{
		name:    fmt.Sprintf("saturation_ch%d", channel),
		channel: channel,
	}
}

func (s *Saturation) Name() string {
	return s.name
}

func (s *Saturation) OnTick(f driver.Frame) {
	s.samples++
	if c := f.Codes[s.channel]; c == 0 || c == dac.MaxCode {
		s.pinned++
	}
}

func (s *Saturation) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return float64(s.pinned) / float64(s.samples)
}
