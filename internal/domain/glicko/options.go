package glicko

// Option applies a configuration option to the Calculator.
type Option func(*Calculator)

// WithTau sets the volatility change constraint. Smaller values keep
// volatility more stable; 0.3 to 1.2 are reasonable per the paper.
func WithTau(tau float64) Option {
	return func(c *Calculator) {
		if tau > 0 {
			c.tau = tau
		}
	}
}

// WithEpsilon sets the convergence tolerance of the volatility solve.
func WithEpsilon(epsilon float64) Option {
	return func(c *Calculator) {
		if epsilon > 0 {
			c.epsilon = epsilon
		}
	}
}

// WithMaxIterations bounds the volatility solve iteration count.
func WithMaxIterations(n int) Option {
	return func(c *Calculator) {
		if n > 0 {
			c.maxIterations = n
		}
	}
}
