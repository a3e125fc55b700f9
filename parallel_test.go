package spline

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-spline/internal/testutil"
)

// TestRef_ConcurrentEvaluation verifies that Ref copies evaluated from
// separate goroutines produce the same results as a single sequential
// evaluator. Run with -race to check the copies share no mutable state.
func TestRef_ConcurrentEvaluation(t *testing.T) {
	const (
		numSamples = 512
		workers    = 8
		numQueries = 4096
	)

	xs := make([]float64, numSamples)
	ys := make([]float64, numSamples)
	for i := range numSamples {
		xs[i] = float64(i) * 0.01
		ys[i] = math.Sin(xs[i] * 7)
	}

	for _, degree := range []Degree{Linear, CatmullRom} {
		t.Run(degree.String(), func(t *testing.T) {
			shared, err := NewFromPoints(xs, ys, degree)
			require.NoError(t, err)

			// Each worker walks the queries from a different offset.
			queries := make([][]float64, workers)
			want := make([][]float64, workers)
			seq := shared.Ref()
			for w := range workers {
				queries[w] = make([]float64, numQueries)
				want[w] = make([]float64, numQueries)
				for i := range numQueries {
					queries[w][i] = math.Mod(float64(w)*0.7+float64(i)*0.0013, 5.2)
					want[w][i] = seq.Value(queries[w][i])
				}
			}

			got := make([][]float64, workers)
			var wg sync.WaitGroup
			for w := range workers {
				wg.Add(1)
				go func(worker int) {
					defer wg.Done()
					ref := shared.Ref()
					got[worker] = ref.ValueAll(queries[worker])
				}(w)
			}
			wg.Wait()

			for w := range workers {
				testutil.AssertSlicesInDelta(t, want[w], got[w], testutil.KernelTolerance, "worker %d", w)
			}
		})
	}
}

func BenchmarkValueAll_CatmullRom(b *testing.B) {
	xs, ys := uniformTable(4096)
	sp, err := NewFromPoints(xs, ys, CatmullRom)
	require.NoError(b, err)

	queries := make([]float64, 8192)
	for i := range queries {
		queries[i] = float64(i) * 0.5
	}
	out := make([]float64, len(queries))

	b.ReportAllocs()
	for b.Loop() {
		sp.ValueAll(queries, out)
	}
}

func BenchmarkValue_CatmullRomScalar(b *testing.B) {
	xs, ys := uniformTable(4096)
	sp, err := NewFromPoints(xs, ys, CatmullRom)
	require.NoError(b, err)

	b.ReportAllocs()
	for b.Loop() {
		for i := range 8192 {
			sp.Value(float64(i) * 0.5)
		}
	}
}
