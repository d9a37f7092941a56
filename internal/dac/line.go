package dac

import (
	"fmt"
	"io"
	"sync"
)

// LineWriter writes one "chN code" line per write to w.
type LineWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func NewLineWriter(w io.Writer) *LineWriter {
	return &LineWriter{w: w}
}

func (l *LineWriter) Configure(ch Channel) (Output, error) {
	if !ch.Valid() {
		return nil, fmt.Errorf("line writer: invalid channel %d", int(ch))
	}
	return OutputFunc(func(code uint8) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		_, err := fmt.Fprintf(l.w, "%s %d\n", ch, code)
		return err
	}), nil
}

// Null discards every write.
type Null struct{}

func (Null) Configure(ch Channel) (Output, error) {
	if !ch.Valid() {
		return nil, fmt.Errorf("null: invalid channel %d", int(ch))
	}
	return OutputFunc(func(uint8) error { return nil }), nil
}
