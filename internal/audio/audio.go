package audio

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/gordonklaus/portaudio"

	"github.com/san-kum/lorenzdac/internal/dac"
)

const (
	SampleRate = 44100
	BufferSize = 256
)

// Device drives a DC-coupled stereo interface as a two channel DAC:
// channel 0 is left, channel 1 is right. Each channel holds its last code
// until the next write.
type Device struct {
	mu     sync.Mutex
	stream *portaudio.Stream
	levels [2]atomic.Uint32
	active bool
}

func NewDevice() *Device {
	d := &Device{}
	mid := math.Float32bits(0)
	d.levels[0].Store(mid)
	d.levels[1].Store(mid)
	return d
}

// Start opens the default output stream.
func (d *Device) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.active {
		return nil
	}

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("audio: initialize: %w", err)
	}

	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, d.Process)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("audio: open stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("audio: start stream: %w", err)
	}

	d.stream = stream
	d.active = true
	return nil
}

func (d *Device) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stream != nil {
		d.stream.Stop()
		d.stream.Close()
		d.stream = nil
	}
	if d.active {
		portaudio.Terminate()
	}
	d.active = false
}

// Configure starts the stream on first use and returns the channel handle.
func (d *Device) Configure(ch dac.Channel) (dac.Output, error) {
	if !ch.Valid() {
		return nil, fmt.Errorf("audio: invalid channel %d", int(ch))
	}
	if err := d.Start(); err != nil {
		return nil, err
	}
	return dac.OutputFunc(func(code uint8) error {
		d.Set(ch, code)
		return nil
	}), nil
}

// Set holds code on ch without touching the stream.
func (d *Device) Set(ch dac.Channel, code uint8) {
	d.levels[ch].Store(math.Float32bits(Level(code)))
}

// Level maps a code in [0, MaxCode] onto a sample in [-1, 1].
func Level(code uint8) float32 {
	if code > dac.MaxCode {
		code = dac.MaxCode
	}
	return float32(code)/float32(dac.MaxCode)*2 - 1
}

// Process is the stream callback; it fills each buffer with the held levels.
func (d *Device) Process(out [][]float32) {
	for c := range out {
		if c > 1 {
			break
		}
		v := math.Float32frombits(d.levels[c].Load())
		for i := range out[c] {
			out[c][i] = v
		}
	}
}
