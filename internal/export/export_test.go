package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/lorenzdac/internal/capture"
	"github.com/san-kum/lorenzdac/internal/driver"
	"github.com/san-kum/lorenzdac/internal/dynamo"
	"github.com/san-kum/lorenzdac/internal/viz"
)

func frames() []driver.Frame {
	return []driver.Frame{
		{Tick: 0, State: dynamo.State{X: 1, Y: 2, Z: 3}, Codes: [2]uint8{0, 0}},
		{Tick: 1, State: dynamo.State{X: 4, Y: 5, Z: 6}, Codes: [2]uint8{254, 254}},
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	meta := capture.Metadata{ID: "abc", Ticks: 2}
	require.NoError(t, JSON(&buf, meta, frames()))

	var doc Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "abc", doc.Meta.ID)
	require.Len(t, doc.Frames, 2)
	assert.Equal(t, [3]float64{4, 5, 6}, doc.Frames[1].State)
	assert.Equal(t, [2]uint8{254, 254}, doc.Frames[1].Codes)
}

func TestTraceSVG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TraceSVG(&buf, frames(), 254, "#33ff66"))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, "M0.0,254.0 L254.0,0.0")
	assert.Contains(t, out, `stroke="#33ff66"`)
}

func TestTraceSVGTooShort(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, TraceSVG(&buf, frames()[:1], 100, "#fff"))
}

func TestCanvasSVG(t *testing.T) {
	assert.Empty(t, CanvasSVG(nil, 4))

	c := viz.NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	out := CanvasSVG(c, 4)
	assert.Equal(t, 2, strings.Count(out, "<circle"))
	assert.Contains(t, out, `width="16" height="16"`)
}
