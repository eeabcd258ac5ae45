package poly_test

import (
	"fmt"

	"github.com/cwbudde/algo-qsp/qsp/poly"
)

func ExampleGenerate() {
	p, _, err := poly.Generate("sign", 19, 10)
	if err != nil {
		fmt.Println("generate failed:", err)
		return
	}

	parity, err := p.Parity()
	if err != nil {
		fmt.Println("parity failed:", err)
		return
	}

	fmt.Printf("degree %d, %s\n", p.Degree(), parity)
	// Output:
	// degree 19, odd
}

func ExampleNames() {
	fmt.Println(poly.Names())
	// Output:
	// [efilter gibbs invert invert_rect rect sign threshold]
}
