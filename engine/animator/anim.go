package animator

// Policy selects how a play request interacts with an animation already in
// flight on the same area.
type Policy int

const (
	// PolicyCut replaces the current animation immediately.
	PolicyCut Policy = iota
	// PolicyChain queues the animation to start when the current one ends.
	PolicyChain
)

// Play is an Anim's playback descriptor: the replace-or-queue policy, the
// duration in seconds that track times normalize against, and whether the
// animation locks out later play requests until it ends.
type Play struct {
	Policy   Policy
	Duration float64
	Terminal bool
}

// TotalTime returns the animation's duration in seconds.
func (p Play) TotalTime() float64 {
	return p.Duration
}

// ComputeTime maps elapsed wall time to the normalized track time. A
// non-positive duration resolves straight to the end of the timeline.
//
// Parameters:
//   - elapsed: seconds since the animation started
//
// Returns:
//   - float64: the normalized time for track evaluation
func (p Play) ComputeTime(elapsed float64) float64 {
	if p.Duration <= 0.0 {
		return 1.0
	}
	return elapsed / p.Duration
}

// Cut reports whether the play request replaces the current animation.
func (p Play) Cut() bool {
	return p.Policy == PolicyCut
}

// Anim is an ordered set of tracks played together under one Play
// descriptor. At most one track should target a given property identity;
// when duplicates exist the first match wins.
type Anim struct {
	Play   Play
	Tracks []Track
}
