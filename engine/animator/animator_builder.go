package animator

import "github.com/Carmen-Shannon/lumo-go/engine/area"

// AnimatorOption is a functional option for configuring an animator during
// construction.
type AnimatorOption func(*animator)

// WithArea sets the animator's initial target handle.
//
// Parameters:
//   - a: the handle to target
//
// Returns:
//   - AnimatorOption: the option to apply
func WithArea(a area.Area) AnimatorOption {
	return func(an *animator) {
		an.area = a
	}
}

// WithLiveGeneration seeds the animator's definition generation so the first
// Init call against a matching context is a no-op.
//
// Parameters:
//   - generation: the live definition generation to start from
//
// Returns:
//   - AnimatorOption: the option to apply
func WithLiveGeneration(generation uint64) AnimatorOption {
	return func(an *animator) {
		an.liveGeneration = generation
	}
}
