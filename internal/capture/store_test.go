package capture

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/lorenzdac/internal/calib"
	"github.com/san-kum/lorenzdac/internal/dac"
	"github.com/san-kum/lorenzdac/internal/driver"
	"github.com/san-kum/lorenzdac/internal/dynamo"
	"github.com/san-kum/lorenzdac/internal/integrators"
	"github.com/san-kum/lorenzdac/internal/physics"
)

func runFrames(t *testing.T, n int) (calib.Box, []driver.Frame) {
	t.Helper()
	p := dynamo.DefaultParams()
	st := dynamo.Stepper{System: physics.NewLorenz(p), Integrator: integrators.NewEuler(), Dt: p.Dt}
	outs, err := driver.Open(dac.Null{})
	if err != nil {
		t.Fatal(err)
	}
	opts := driver.DefaultOptions()
	opts.Steps = 2000
	d := driver.New(st, dynamo.State{X: 1, Y: 1, Z: 1}, opts, outs, nil)

	rec := &Recorder{}
	d.AddObserver(rec)
	if _, err := d.RunTicks(n); err != nil {
		t.Fatal(err)
	}
	return d.Box(), rec.Frames
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	box, frames := runFrames(t, 100)
	runID, err := st.Save(Metadata{Params: dynamo.DefaultParams(), Box: box, Axes: [2]string{"x", "z"}, Interval: 2 * time.Millisecond}, frames)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Ticks != 100 {
		t.Errorf("expected 100 ticks, got %d", meta.Ticks)
	}
	if meta.Box != box {
		t.Errorf("expected box %s, got %s", box, meta.Box)
	}
	if meta.Interval != 2*time.Millisecond {
		t.Errorf("expected 2ms interval, got %s", meta.Interval)
	}

	loaded, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatalf("load frames failed: %v", err)
	}
	if len(loaded) != len(frames) {
		t.Fatalf("expected %d frames, got %d", len(frames), len(loaded))
	}
	for i := range frames {
		if loaded[i] != frames[i] {
			t.Fatalf("frame %d differs: %+v vs %+v", i, loaded[i], frames[i])
		}
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	_, frames := runFrames(t, 5)
	if _, err := st.Save(Metadata{}, frames); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreListMissingDir(t *testing.T) {
	runs, err := New(filepath.Join(t.TempDir(), "absent")).List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected empty list, got %v, %v", runs, err)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runID, err := st.Save(Metadata{ID: "fixed"}, nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID != "fixed" {
		t.Errorf("expected provided id, got %s", runID)
	}

	for _, name := range []string{metadataFile, codesFile} {
		if _, err := os.Stat(filepath.Join(tmpDir, runID, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}

	frames, err := st.LoadFrames(runID)
	if err != nil || len(frames) != 0 {
		t.Errorf("expected no frames, got %d, %v", len(frames), err)
	}
}

func TestLoadFramesShortRow(t *testing.T) {
	tmpDir := t.TempDir()
	dir := filepath.Join(tmpDir, "bad")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	data := "tick,x\n0,1\n"
	if err := os.WriteFile(filepath.Join(dir, codesFile), []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := New(tmpDir).LoadFrames("bad"); err == nil {
		t.Error("expected error for short row")
	}
}

func TestChannel(t *testing.T) {
	frames := []driver.Frame{{Codes: [2]uint8{1, 2}}, {Codes: [2]uint8{3, 4}}}
	if got := Channel(frames, 1); got[0] != 2 || got[1] != 4 {
		t.Errorf("unexpected channel %v", got)
	}
}

func TestStoreKeepsMetrics(t *testing.T) {
	st := New(t.TempDir())
	id, err := st.Save(Metadata{Metrics: map[string]float64{"saturation_ch0": 0.25}}, nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	meta, err := st.Load(id)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Metrics["saturation_ch0"] != 0.25 {
		t.Errorf("expected metric 0.25, got %v", meta.Metrics)
	}
}

func TestStoreSaveFailureLeavesNoCapture(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	_, frames := runFrames(t, 5)
	meta := Metadata{ID: "broken", Params: dynamo.Params{Sigma: math.NaN()}}
	if _, err := st.Save(meta, frames); err == nil {
		t.Fatal("expected error encoding NaN metadata")
	}

	if _, err := os.Stat(filepath.Join(tmpDir, "broken")); !os.IsNotExist(err) {
		t.Errorf("expected capture directory removed, got %v", err)
	}
	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected no captures listed, got %v, %v", runs, err)
	}
}
