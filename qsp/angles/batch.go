package angles

import (
	"fmt"
	"sync"

	"github.com/cwbudde/algo-qsp/qsp/poly"
)

// SolveBatch solves each polynomial concurrently with shared options.
// Results are returned in input order. The error, if any, is the first
// per-polynomial failure by index; the corresponding Result slot still
// carries whatever best phases that solve produced.
func SolveBatch(polys []poly.Polynomial, opts ...Option) ([]Result, error) {
	results := make([]Result, len(polys))
	errs := make([]error, len(polys))

	var wg sync.WaitGroup
	for i, p := range polys {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = Solve(p, opts...)
		}()
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return results, fmt.Errorf("angles: batch entry %d: %w", i, err)
		}
	}

	return results, nil
}
