package analysis

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/lorenzdac/internal/dynamo"
	"github.com/san-kum/lorenzdac/internal/integrators"
	"github.com/san-kum/lorenzdac/internal/physics"
)

func TestDominantFrequency(t *testing.T) {
	const n = 1024
	interval := 2 * time.Millisecond
	freq := 25.0

	data := make([]float64, n)
	for i := range data {
		data[i] = 127 + 100*math.Sin(2*math.Pi*freq*float64(i)*interval.Seconds())
	}

	got := DominantFrequency(data, interval)
	resolution := 1 / (float64(n) * interval.Seconds())
	if math.Abs(got-freq) > resolution {
		t.Errorf("expected ~%.2f hz, got %.2f hz", freq, got)
	}
}

func TestPowerSpectrumRemovesDC(t *testing.T) {
	data := make([]float64, 64)
	for i := range data {
		data[i] = 200
	}
	ps := PowerSpectrum(data)
	if len(ps) != 32 {
		t.Fatalf("expected 32 bins, got %d", len(ps))
	}
	for i, v := range ps {
		if v > 1e-9 {
			t.Errorf("bin %d: expected zero power, got %f", i, v)
		}
	}
	if DominantFrequency(nil, time.Millisecond) != 0 {
		t.Error("expected 0 for empty input")
	}
}

func TestPowerSpectrumIgnoresOffset(t *testing.T) {
	centered := make([]float64, 128)
	shifted := make([]float64, 128)
	for i := range centered {
		centered[i] = math.Sin(2 * math.Pi * 5 * float64(i) / 128)
		shifted[i] = centered[i] + 127
	}

	a, b := PowerSpectrum(centered), PowerSpectrum(shifted)
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-6 {
			t.Errorf("bin %d: %f vs %f", i, a[i], b[i])
		}
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{0, 10, 20, 254}, 0, 254)
	if s.Min != 0 || s.Max != 254 {
		t.Errorf("unexpected bounds %+v", s)
	}
	if math.Abs(s.Mean-71) > 1e-9 {
		t.Errorf("expected mean 71, got %f", s.Mean)
	}
	if s.Saturated != 2 {
		t.Errorf("expected 2 saturated samples, got %d", s.Saturated)
	}
	if (Summarize(nil, 0, 254) != Summary{}) {
		t.Error("expected zero summary for empty input")
	}
}

func TestLyapunovLorenzPositive(t *testing.T) {
	p := dynamo.DefaultParams()
	st := dynamo.Stepper{System: physics.NewLorenz(p), Integrator: integrators.NewEuler(), Dt: p.Dt}

	lambda := LyapunovExponent(st, dynamo.State{X: 1, Y: 1, Z: 1}, p.Dt, 50000, 1e-8)
	if lambda < 0.3 || lambda > 1.5 {
		t.Errorf("expected lambda near 0.9, got %.3f", lambda)
	}
}

type decay struct{}

func (decay) Derive(x dynamo.State) dynamo.State { return dynamo.State{X: -x.X, Y: -x.Y, Z: -x.Z} }

func TestLyapunovStableNegative(t *testing.T) {
	st := dynamo.Stepper{System: decay{}, Integrator: integrators.NewEuler(), Dt: 0.01}
	lambda := LyapunovExponent(st, dynamo.State{X: 1, Y: 1, Z: 1}, 0.01, 1000, 1e-6)
	if math.Abs(lambda-math.Log(0.99)/0.01) > 1e-3 {
		t.Errorf("expected lambda ~-1, got %.4f", lambda)
	}
	if LyapunovExponent(st, dynamo.State{}, 0.01, 0, 1e-6) != 0 {
		t.Error("expected 0 for zero steps")
	}
}

func TestXYPlot(t *testing.T) {
	xs := []float64{0, 127, 254}
	ys := []float64{0, 127, 254}
	out := XYPlot(xs, ys, 10, 5)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(lines))
	}
	if []rune(lines[0])[9] != '•' {
		t.Errorf("expected last point top right, got %q", lines[0])
	}
	if []rune(lines[4])[0] != '·' {
		t.Errorf("expected first point bottom left, got %q", lines[4])
	}
	if XYPlot(nil, nil, 10, 5) != "" {
		t.Error("expected empty plot for no data")
	}
}

func TestEnsembleMatchesSingleRuns(t *testing.T) {
	st := dynamo.Stepper{System: decay{}, Integrator: integrators.NewEuler(), Dt: 0.01}
	e := Ensemble{Advancer: st, Dt: 0.01, Steps: 500, Perturbation: 1e-6}

	x0 := dynamo.State{X: 1, Y: 1, Z: 1}
	got := e.Run(x0, 4, 0.5)
	if len(got) != 4 {
		t.Fatalf("expected 4 results, got %d", len(got))
	}
	for i, v := range got {
		start := x0
		start.X += float64(i) * 0.5
		want := LyapunovExponent(st, start, 0.01, 500, 1e-6)
		if v != want {
			t.Errorf("run %d: expected %f, got %f", i, want, v)
		}
	}
	if e.Run(x0, 0, 1) != nil {
		t.Error("expected nil for zero runs")
	}
}
