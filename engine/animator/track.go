package animator

import (
	"github.com/Carmen-Shannon/lumo-go/common"
	"github.com/Carmen-Shannon/lumo-go/engine/shader"
)

// Key is one point on a track's timeline. Time is normalized against the
// owning Anim's duration, so a key at 1.0 lands exactly on the Anim boundary.
type Key[T any] struct {
	Time  float64
	Value T
}

// Track is one animated property's key-framed timeline. The concrete types
// below carry the keys for each supported value kind; consumers dispatch on
// the concrete type.
type Track interface {
	// BindTo returns the property identity this track writes to.
	BindTo() shader.BindID
}

// FloatTrack animates a single float property.
type FloatTrack struct {
	Bind    shader.BindID
	Keys    []Key[float32]
	Ease    Ease
	CutInit bool
}

// Vec2Track animates a two component vector property.
type Vec2Track struct {
	Bind    shader.BindID
	Keys    []Key[common.Vec2]
	Ease    Ease
	CutInit bool
}

// Vec3Track animates a three component vector property.
type Vec3Track struct {
	Bind    shader.BindID
	Keys    []Key[common.Vec3]
	Ease    Ease
	CutInit bool
}

// Vec4Track animates a four component vector property.
type Vec4Track struct {
	Bind    shader.BindID
	Keys    []Key[common.Vec4]
	Ease    Ease
	CutInit bool
}

// ColorTrack animates an RGBA color property.
type ColorTrack struct {
	Bind    shader.BindID
	Keys    []Key[common.Color]
	Ease    Ease
	CutInit bool
}

var _ Track = &FloatTrack{}
var _ Track = &Vec2Track{}
var _ Track = &Vec3Track{}
var _ Track = &Vec4Track{}
var _ Track = &ColorTrack{}

func (t *FloatTrack) BindTo() shader.BindID { return t.Bind }
func (t *Vec2Track) BindTo() shader.BindID  { return t.Bind }
func (t *Vec3Track) BindTo() shader.BindID  { return t.Bind }
func (t *Vec4Track) BindTo() shader.BindID  { return t.Bind }
func (t *ColorTrack) BindTo() shader.BindID { return t.Bind }

// computeKeys resolves a track's value at normalized time t. Empty keys yield
// the zero value. Before the first key the track either holds the externally
// observed last value (cutInit false, blend-in) or snaps to its first key
// (cutInit true). Past the last key it holds the last key. In between the
// bracketing keys interpolate with the local fraction remapped through ease.
func computeKeys[T any](t float64, keys []Key[T], cutInit bool, last T, ease Ease, lerp func(a, b T, f float64) T) T {
	if len(keys) == 0 {
		var zero T
		return zero
	}
	if ease == nil {
		ease = EaseLinear
	}
	if t <= keys[0].Time {
		if cutInit {
			return keys[0].Value
		}
		if keys[0].Time <= 0.0 {
			return keys[0].Value
		}
		// blend from the observed value toward the first key
		f := ease(common.Clamp01(t / keys[0].Time))
		return lerp(last, keys[0].Value, f)
	}
	if t >= keys[len(keys)-1].Time {
		return keys[len(keys)-1].Value
	}
	for i := 1; i < len(keys); i++ {
		if t < keys[i].Time {
			k0, k1 := keys[i-1], keys[i]
			span := k1.Time - k0.Time
			if span <= 0.0 {
				return k1.Value
			}
			f := ease((t - k0.Time) / span)
			return lerp(k0.Value, k1.Value, f)
		}
	}
	return keys[len(keys)-1].Value
}

// Compute resolves the track at normalized time t with last as the
// blend-in fallback.
func (t *FloatTrack) Compute(time float64, last float32) float32 {
	return computeKeys(time, t.Keys, t.CutInit, last, t.Ease, common.Lerp32)
}

// Compute resolves the track at normalized time t with last as the
// blend-in fallback.
func (t *Vec2Track) Compute(time float64, last common.Vec2) common.Vec2 {
	return computeKeys(time, t.Keys, t.CutInit, last, t.Ease, common.Vec2.Lerp)
}

// Compute resolves the track at normalized time t with last as the
// blend-in fallback.
func (t *Vec3Track) Compute(time float64, last common.Vec3) common.Vec3 {
	return computeKeys(time, t.Keys, t.CutInit, last, t.Ease, common.Vec3.Lerp)
}

// Compute resolves the track at normalized time t with last as the
// blend-in fallback.
func (t *Vec4Track) Compute(time float64, last common.Vec4) common.Vec4 {
	return computeKeys(time, t.Keys, t.CutInit, last, t.Ease, common.Vec4.Lerp)
}

// Compute resolves the track at normalized time t with last as the
// blend-in fallback.
func (t *ColorTrack) Compute(time float64, last common.Color) common.Color {
	return computeKeys(time, t.Keys, t.CutInit, last, t.Ease, common.Color.Lerp)
}
