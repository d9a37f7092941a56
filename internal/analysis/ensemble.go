package analysis

import (
	"sync"

	"github.com/san-kum/lorenzdac/internal/dynamo"
)

// Ensemble estimates the Lyapunov exponent from several starting points in
// parallel. Each run starts from x0 shifted along x by i*spread.
type Ensemble struct {
	Advancer     dynamo.Advancer
	Dt           float64
	Steps        int
	Perturbation float64
}

func (e Ensemble) Run(x0 dynamo.State, runs int, spread float64) []float64 {
	if runs <= 0 {
		return nil
	}
	results := make([]float64, runs)

	var wg sync.WaitGroup
	for i := 0; i < runs; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			start := x0
			start.X += float64(idx) * spread
			results[idx] = LyapunovExponent(e.Advancer, start, e.Dt, e.Steps, e.Perturbation)
		}(i)
	}

	wg.Wait()
	return results
}
