package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/lorenzdac/internal/capture"
	"github.com/san-kum/lorenzdac/internal/driver"
)

type Document struct {
	Meta   capture.Metadata `json:"meta"`
	Frames []Row            `json:"frames"`
}

type Row struct {
	Tick  int        `json:"tick"`
	State [3]float64 `json:"state"`
	Norm  [3]float64 `json:"norm"`
	Codes [2]uint8   `json:"codes"`
}

// JSON writes a capture as a single indented document.
func JSON(w io.Writer, meta capture.Metadata, frames []driver.Frame) error {
	doc := Document{Meta: meta, Frames: make([]Row, len(frames))}
	for i, f := range frames {
		doc.Frames[i] = Row{
			Tick:  f.Tick,
			State: [3]float64{f.State.X, f.State.Y, f.State.Z},
			Norm:  [3]float64{f.Sample.X, f.Sample.Y, f.Sample.Z},
			Codes: f.Codes,
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}
