package context

// ContextOption is a functional option for configuring a Context during construction.
type ContextOption func(*ctx)

// WithFlushWorkers is an option builder that sets the number of workers the
// context's flush pool uses for parallel staging.
//
// Parameters:
//   - workers: the worker count, values below 1 are clamped to 1
//
// Returns:
//   - ContextOption: a function that applies the worker count to a context
func WithFlushWorkers(workers int) ContextOption {
	return func(c *ctx) {
		c.flushWorkers = max(workers, 1)
	}
}

// WithLiveGeneration is an option builder that seeds the live-definition
// generation, letting a caller resume from a persisted style epoch.
//
// Parameters:
//   - generation: the starting generation
//
// Returns:
//   - ContextOption: a function that applies the generation to a context
func WithLiveGeneration(generation uint64) ContextOption {
	return func(c *ctx) {
		c.liveGeneration = generation
	}
}
