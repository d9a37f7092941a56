package dac

import (
	"fmt"
	"sync"
)

// Recorder is an in-memory device that keeps every code written.
type Recorder struct {
	mu     sync.Mutex
	codes  [2][]uint8
	opened [2]bool
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Configure(ch Channel) (Output, error) {
	if !ch.Valid() {
		return nil, fmt.Errorf("recorder: invalid channel %d", int(ch))
	}
	r.mu.Lock()
	r.opened[ch] = true
	r.mu.Unlock()
	return OutputFunc(func(code uint8) error {
		r.mu.Lock()
		r.codes[ch] = append(r.codes[ch], code)
		r.mu.Unlock()
		return nil
	}), nil
}

// Codes returns a copy of the codes written to ch.
func (r *Recorder) Codes(ch Channel) []uint8 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]uint8, len(r.codes[ch]))
	copy(out, r.codes[ch])
	return out
}

func (r *Recorder) Configured(ch Channel) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return ch.Valid() && r.opened[ch]
}
