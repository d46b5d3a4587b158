package animator

import (
	"math"

	"github.com/Carmen-Shannon/lumo-go/engine/area"
)

// playInfo is one registry entry: the wall-clock start of the playing
// animation and the total duration still scheduled against the area,
// including anything queued behind the current animation. startTime stays NaN
// until the first advance observes a clock value.
type playInfo struct {
	startTime float64
	totalTime float64
}

// Registry tracks which areas have an animation in flight. It is scoped to
// one render context and shared by every animator driving areas of that
// context; inject it explicitly rather than holding it in a package global.
type Registry interface {
	// Playing reports whether the area has an active entry.
	Playing(a area.Area) bool

	// TotalTime returns the remaining scheduled duration for the area.
	//
	// Parameters:
	//   - a: the area to look up
	//
	// Returns:
	//   - float64: the entry's total time in seconds
	//   - bool: false when the area has no entry
	TotalTime(a area.Area) (float64, bool)

	// StartTime returns the stamped start time for the area.
	//
	// Parameters:
	//   - a: the area to look up
	//
	// Returns:
	//   - float64: the entry's start time, NaN until first advanced
	//   - bool: false when the area has no entry
	StartTime(a area.Area) (float64, bool)

	// Stop zeroes the area's remaining duration, halting playback on the
	// next advance without removing the entry.
	Stop(a area.Area)

	// Move re-keys the area's entry when a handle is replaced after a
	// rebuild. No-op when the old area has no entry.
	Move(old, new area.Area)

	// Len returns the number of active entries.
	Len() int

	get(a area.Area) *playInfo
	insert(a area.Area, info *playInfo)
	remove(a area.Area)
}

type registry struct {
	entries map[area.Area]*playInfo
}

var _ Registry = &registry{}

// NewRegistry creates an empty playing-animation registry.
//
// Returns:
//   - Registry: the new registry
func NewRegistry() Registry {
	return &registry{
		entries: make(map[area.Area]*playInfo),
	}
}

func (r *registry) Playing(a area.Area) bool {
	_, ok := r.entries[a]
	return ok
}

func (r *registry) TotalTime(a area.Area) (float64, bool) {
	if info, ok := r.entries[a]; ok {
		return info.totalTime, true
	}
	return 0, false
}

func (r *registry) StartTime(a area.Area) (float64, bool) {
	if info, ok := r.entries[a]; ok {
		return info.startTime, true
	}
	return math.NaN(), false
}

func (r *registry) Stop(a area.Area) {
	if info, ok := r.entries[a]; ok {
		info.totalTime = 0.0
	}
}

func (r *registry) Move(old, new area.Area) {
	if old == new {
		return
	}
	if info, ok := r.entries[old]; ok {
		delete(r.entries, old)
		r.entries[new] = info
	}
}

func (r *registry) Len() int {
	return len(r.entries)
}

func (r *registry) get(a area.Area) *playInfo {
	return r.entries[a]
}

func (r *registry) insert(a area.Area, info *playInfo) {
	r.entries[a] = info
}

func (r *registry) remove(a area.Area) {
	delete(r.entries, a)
}
