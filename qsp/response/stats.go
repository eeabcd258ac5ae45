package response

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"github.com/cwbudde/algo-qsp/qsp/core"
)

// Stats summarizes pointwise deviation between a realized response and a
// target function.
type Stats struct {
	Max  float64
	Mean float64
	P95  float64
}

// ErrorStats compares realized samples against target samples of equal
// length and reports absolute-deviation summaries.
func ErrorStats(got, want []float64) (Stats, error) {
	if len(got) == 0 || len(got) != len(want) {
		return Stats{}, fmt.Errorf("response: mismatched sample lengths %d and %d: %w",
			len(got), len(want), core.ErrInvalidParameter)
	}

	diffs := make(stats.Float64Data, len(got))
	for i := range got {
		diffs[i] = math.Abs(got[i] - want[i])
	}

	maxErr, err := stats.Max(diffs)
	if err != nil {
		return Stats{}, fmt.Errorf("response: %w", err)
	}
	mean, err := stats.Mean(diffs)
	if err != nil {
		return Stats{}, fmt.Errorf("response: %w", err)
	}
	p95, err := stats.Percentile(diffs, 95)
	if err != nil {
		return Stats{}, fmt.Errorf("response: %w", err)
	}

	return Stats{Max: maxErr, Mean: mean, P95: p95}, nil
}
