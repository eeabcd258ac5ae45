package angles

// Defaults used when no option overrides them.
const (
	DefaultTolerance     = 0.1
	DefaultMaxIterations = 100
	DefaultRootRetries   = 4
)

// Option configures a solve.
type Option func(*config)

type config struct {
	tolerance   float64
	maxIter     int
	gridSize    int
	rootRetries int
}

func defaultConfig() config {
	return config{
		tolerance:   DefaultTolerance,
		maxIter:     DefaultMaxIterations,
		gridSize:    0, // derived from the degree when left at zero
		rootRetries: DefaultRootRetries,
	}
}

func (c config) grid(degree int) int {
	if c.gridSize > 0 {
		return c.gridSize
	}
	n := 8 * degree
	if n < 64 {
		n = 64
	}

	return n
}

// WithTolerance sets the maximum acceptable pointwise deviation between the
// realized response and the target polynomial.
func WithTolerance(tol float64) Option {
	return func(c *config) {
		if tol > 0 {
			c.tolerance = tol
		}
	}
}

// WithMaxIterations caps the refinement iteration count.
func WithMaxIterations(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxIter = n
		}
	}
}

// WithGridSize fixes the number of verification grid points instead of
// deriving it from the polynomial degree.
func WithGridSize(n int) Option {
	return func(c *config) {
		if n > 1 {
			c.gridSize = n
		}
	}
}

// WithRootRetries sets how many perturbed re-roots the completion stage may
// attempt when root classification comes up short.
func WithRootRetries(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.rootRetries = n
		}
	}
}
