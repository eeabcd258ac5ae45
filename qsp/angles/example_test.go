package angles_test

import (
	"fmt"

	"github.com/cwbudde/algo-qsp/qsp/angles"
	"github.com/cwbudde/algo-qsp/qsp/core"
	"github.com/cwbudde/algo-qsp/qsp/poly"
	"github.com/cwbudde/algo-qsp/qsp/response"
)

func ExampleSolve() {
	// 2x^2 - 1 is the degree-2 Chebyshev polynomial; its phase sequence
	// reproduces it exactly as the realized response.
	res, err := angles.Solve(poly.NewMonomial(-1, 0, 2), angles.WithTolerance(1e-8))
	if err != nil {
		fmt.Println("solve failed:", err)
		return
	}

	ps, _, err := response.Evaluate(res.Phases, core.OperatorWz, []float64{0, 1})
	if err != nil {
		fmt.Println("evaluate failed:", err)
		return
	}

	fmt.Printf("phases: %d\n", len(res.Phases))
	fmt.Printf("P(0) = %.4f\n", ps[0])
	fmt.Printf("P(1) = %.4f\n", ps[1])
	// Output:
	// phases: 3
	// P(0) = -1.0000
	// P(1) = 1.0000
}
