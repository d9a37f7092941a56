package capture

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/lorenzdac/internal/calib"
	"github.com/san-kum/lorenzdac/internal/driver"
	"github.com/san-kum/lorenzdac/internal/dynamo"
)

const (
	metadataFile = "metadata.json"
	codesFile    = "codes.csv"
)

// Store keeps captured tick sequences for offline inspection.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type Metadata struct {
	ID        string        `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	Params    dynamo.Params `json:"params"`
	Initial   dynamo.State  `json:"initial"`
	Steps     int           `json:"calibration_steps"`
	Resume    bool          `json:"resume"`
	Interval  time.Duration `json:"interval_ns"`
	Axes      [2]string     `json:"axes"`
	Box       calib.Box     `json:"box"`
	Ticks     int           `json:"ticks"`

	Metrics map[string]float64 `json:"metrics,omitempty"`
}

// Recorder collects frames as a driver observer.
type Recorder struct {
	Frames []driver.Frame
}

func (r *Recorder) OnTick(f driver.Frame) { r.Frames = append(r.Frames, f) }

func (s *Store) Save(meta Metadata, frames []driver.Frame) (string, error) {
	if meta.ID == "" {
		meta.ID = uuid.NewString()
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	meta.Ticks = len(frames)

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	// metadata.json goes last so List never sees a capture without frames.
	if err := writeFrames(filepath.Join(runDir, codesFile), frames); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	if err := writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	return meta.ID, nil
}

func writeFrames(path string, frames []driver.Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(csv.NewWriter(f), frames); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeMetadata(path string, meta Metadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteCSV writes one row per frame and flushes w.
func WriteCSV(w *csv.Writer, frames []driver.Frame) error {
	header := []string{"tick", "x", "y", "z", "nx", "ny", "nz", "ch0", "ch1"}
	if err := w.Write(header); err != nil {
		return err
	}

	f64 := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	for _, f := range frames {
		row := []string{
			strconv.Itoa(f.Tick),
			f64(f.State.X), f64(f.State.Y), f64(f.State.Z),
			f64(f.Sample.X), f64(f.Sample.Y), f64(f.Sample.Z),
			strconv.Itoa(int(f.Codes[0])), strconv.Itoa(int(f.Codes[1])),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (s *Store) List() ([]Metadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Metadata{}, nil
		}
		return nil, err
	}

	runs := make([]Metadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*Metadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("capture %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadFrames reads back the frames of a capture.
func (s *Store) LoadFrames(runID string) ([]driver.Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, codesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []driver.Frame{}, nil
	}

	frames := make([]driver.Frame, 0, len(records)-1)
	for i, rec := range records[1:] {
		f, err := parseRow(rec)
		if err != nil {
			return frames, fmt.Errorf("capture %s row %d: %w", runID, i+1, err)
		}
		frames = append(frames, f)
	}
	return frames, nil
}

var errShortRow = errors.New("short row")

func parseRow(rec []string) (driver.Frame, error) {
	var f driver.Frame
	if len(rec) < 9 {
		return f, errShortRow
	}

	tick, err := strconv.Atoi(rec[0])
	if err != nil {
		return f, err
	}
	f.Tick = tick

	vals := make([]float64, 6)
	for i := range vals {
		if vals[i], err = strconv.ParseFloat(rec[i+1], 64); err != nil {
			return f, err
		}
	}
	f.State = dynamo.State{X: vals[0], Y: vals[1], Z: vals[2]}
	f.Sample = calib.Sample{X: vals[3], Y: vals[4], Z: vals[5]}

	for i := 0; i < 2; i++ {
		c, err := strconv.ParseUint(rec[7+i], 10, 8)
		if err != nil {
			return f, err
		}
		f.Codes[i] = uint8(c)
	}
	return f, nil
}

// Channel extracts one channel's codes as floats for plotting.
func Channel(frames []driver.Frame, ch int) []float64 {
	out := make([]float64, len(frames))
	for i, f := range frames {
		out[i] = float64(f.Codes[ch])
	}
	return out
}
