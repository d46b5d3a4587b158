package animator

import (
	"math"

	"github.com/Carmen-Shannon/lumo-go/common"
	"github.com/Carmen-Shannon/lumo-go/engine/area"
	"github.com/Carmen-Shannon/lumo-go/engine/context"
	"github.com/Carmen-Shannon/lumo-go/engine/shader"
)

type lastKind int

const (
	lastFloat lastKind = iota
	lastVec2
	lastVec3
	lastVec4
	lastColor
)

// lastValue holds one cached resolved value. The slot array carries up to
// four components; the kind tag says how many are meaningful and how a reader
// should interpret them.
type lastValue struct {
	kind lastKind
	v    [4]float32
}

// Animator is the per-object playback state machine. It owns the current and
// queued Anim for one target area, caches the last resolved value of every
// property it has touched, and keeps the shared registry's entry for its area
// up to date as playback starts, chains, and drains.
//
// All methods are driven synchronously from one render pass; the animator is
// not safe for concurrent use.
type Animator interface {
	// Init rebuilds the animation definition when the context's live
	// generation has moved since the last build. On rebuild it halts any
	// in-flight play on the area and snapshots the new definition's closing
	// key values into the last-value cache without starting playback.
	//
	// Parameters:
	//   - cx: the render context
	//   - build: callback producing the definition for the current generation
	Init(cx context.Context, build func(cx context.Context) *Anim)

	// Play starts or queues an animation per its Play policy. A playing
	// terminal animation drops the request. When the target area is not yet
	// valid the animation becomes current without registry bookkeeping so a
	// later rebuild can pick it up.
	//
	// Parameters:
	//   - cx: the render context
	//   - anim: the animation to play
	Play(cx context.Context, anim *Anim)

	// SetArea re-targets the animator after a rebuild relocated its storage,
	// moving any registry entry from the old handle to the new one.
	SetArea(cx context.Context, a area.Area)

	// Area returns the animator's current target handle.
	Area() area.Area

	// TerminalPlaying reports whether the current animation is terminal.
	TerminalPlaying() bool

	// End force-terminates the current animation, snapshotting its closing
	// key values into the last-value cache.
	End()

	// EndAndSet force-terminates the current animation and snapshots the
	// given animation's closing key values instead, without playing it.
	EndAndSet(anim *Anim)

	// CalcFloat resolves the identified float property at the given clock
	// value, advancing playback as a side effect. Falls back to the cached
	// last value when no animation or matching track is active.
	//
	// Parameters:
	//   - cx: the render context
	//   - id: the property identity
	//   - now: the shared clock value in seconds
	//
	// Returns:
	//   - float32: the resolved value
	CalcFloat(cx context.Context, id shader.BindID, now float64) float32

	// CalcVec2 resolves the identified Vec2 property at the given clock value.
	CalcVec2(cx context.Context, id shader.BindID, now float64) common.Vec2

	// CalcVec3 resolves the identified Vec3 property at the given clock value.
	CalcVec3(cx context.Context, id shader.BindID, now float64) common.Vec3

	// CalcVec4 resolves the identified Vec4 property at the given clock value.
	CalcVec4(cx context.Context, id shader.BindID, now float64) common.Vec4

	// CalcColor resolves the identified color property at the given clock value.
	CalcColor(cx context.Context, id shader.BindID, now float64) common.Color

	// CalcArea resolves every track of the current animation against one
	// shared advance of the clock, caches each result, and writes it through
	// the given area. Preferred over per-property calls within a frame so a
	// chain promotion is observed uniformly by all properties.
	//
	// Parameters:
	//   - cx: the render context
	//   - a: the handle to write resolved values through
	//   - now: the shared clock value in seconds
	CalcArea(cx context.Context, a area.Area, now float64)

	// LastFloat returns the cached value for the identity without advancing
	// playback, or 0 when the identity was never resolved as a float.
	LastFloat(id shader.BindID) float32

	// LastVec2 returns the cached Vec2 for the identity without advancing playback.
	LastVec2(id shader.BindID) common.Vec2

	// LastVec3 returns the cached Vec3 for the identity without advancing playback.
	LastVec3(id shader.BindID) common.Vec3

	// LastVec4 returns the cached Vec4 for the identity without advancing playback.
	LastVec4(id shader.BindID) common.Vec4

	// LastColor returns the cached color for the identity without advancing playback.
	LastColor(id shader.BindID) common.Color

	// SetLastFloat seeds or overwrites the cached value for the identity.
	SetLastFloat(id shader.BindID, value float32)

	// SetLastVec2 seeds or overwrites the cached Vec2 for the identity.
	SetLastVec2(id shader.BindID, value common.Vec2)

	// SetLastVec3 seeds or overwrites the cached Vec3 for the identity.
	SetLastVec3(id shader.BindID, value common.Vec3)

	// SetLastVec4 seeds or overwrites the cached Vec4 for the identity.
	SetLastVec4(id shader.BindID, value common.Vec4)

	// SetLastColor seeds or overwrites the cached color for the identity.
	SetLastColor(id shader.BindID, value common.Color)

	// PushLastFloat appends the cached float for the identity to the given
	// instance range, re-emitting an in-flight value during a view rebuild.
	PushLastFloat(cx context.Context, ia area.InstanceArea, id shader.BindID)

	// PushLastVec2 appends the cached Vec2 for the identity to the given
	// instance range.
	PushLastVec2(cx context.Context, ia area.InstanceArea, id shader.BindID)

	// PushLastVec3 appends the cached Vec3 for the identity to the given
	// instance range.
	PushLastVec3(cx context.Context, ia area.InstanceArea, id shader.BindID)

	// PushLastVec4 appends the cached Vec4 for the identity to the given
	// instance range.
	PushLastVec4(cx context.Context, ia area.InstanceArea, id shader.BindID)

	// PushLastColor appends the cached color for the identity to the given
	// instance range.
	PushLastColor(cx context.Context, ia area.InstanceArea, id shader.BindID)
}

type animator struct {
	registry       Registry
	area           area.Area
	current        *Anim
	next           *Anim
	liveGeneration uint64
	lastValues     map[shader.BindID]lastValue
}

var _ Animator = &animator{}

// NewAnimator creates an animator bound to the given shared registry.
//
// Parameters:
//   - registry: the playing-animation registry of the render context
//   - options: optional settings applied in order
//
// Returns:
//   - Animator: the new animator, idle and targeting the empty area
func NewAnimator(registry Registry, options ...AnimatorOption) Animator {
	an := &animator{
		registry:   registry,
		area:       area.Empty(),
		lastValues: make(map[shader.BindID]lastValue),
	}
	for _, opt := range options {
		opt(an)
	}
	return an
}

func (an *animator) Init(cx context.Context, build func(cx context.Context) *Anim) {
	if an.liveGeneration == cx.LiveGeneration() {
		return
	}
	an.liveGeneration = cx.LiveGeneration()
	anim := build(cx)
	// halt anything this area still has in flight
	an.registry.Stop(an.area)
	an.setAnimAsLastValues(anim)
}

func (an *animator) Play(cx context.Context, anim *Anim) {
	an.liveGeneration = cx.LiveGeneration()
	if an.current != nil && an.current.Play.Terminal {
		return
	}
	if !an.area.IsValid(cx) {
		an.setAnimAsLastValues(anim)
		an.current = anim
		return
	}
	if info := an.registry.get(an.area); info != nil {
		if anim.Play.Cut() || an.current == nil {
			an.current = anim
			an.next = nil
			info.startTime = math.NaN()
			info.totalTime = an.current.Play.TotalTime()
		} else {
			an.next = anim
			info.totalTime = an.current.Play.TotalTime() + an.next.Play.TotalTime()
		}
	} else if !an.area.IsEmpty() {
		an.current = anim
		an.next = nil
		an.registry.insert(an.area, &playInfo{
			startTime: math.NaN(),
			totalTime: anim.Play.TotalTime(),
		})
	}
}

func (an *animator) SetArea(cx context.Context, a area.Area) {
	an.registry.Move(an.area, a)
	an.area = a
}

func (an *animator) Area() area.Area {
	return an.area
}

func (an *animator) TerminalPlaying() bool {
	return an.current != nil && an.current.Play.Terminal
}

func (an *animator) End() {
	if an.current != nil {
		an.setAnimAsLastValues(an.current)
		an.current = nil
	}
}

func (an *animator) EndAndSet(anim *Anim) {
	an.current = nil
	an.setAnimAsLastValues(anim)
}

// advance stamps the registry entry on first observation, promotes a queued
// animation when the current one has run its duration, and returns the
// normalized track time. The second return is false when nothing is playing;
// in that case any leftover registry entry for the area is reclaimed.
func (an *animator) advance(now float64) (float64, bool) {
	if an.current == nil {
		an.registry.remove(an.area)
		return 0, false
	}
	info := an.registry.get(an.area)
	if info == nil {
		return 0, false
	}
	if math.IsNaN(info.startTime) {
		info.startTime = now
	}
	currentTotal := an.current.Play.TotalTime()
	if now-info.startTime >= currentTotal && an.next != nil {
		an.current = an.next
		an.next = nil
		info.startTime += currentTotal
		info.totalTime -= currentTotal
	}
	return an.current.Play.ComputeTime(now - info.startTime), true
}

// findTrack returns the first track of the current animation bound to id.
func (an *animator) findTrack(id shader.BindID) Track {
	if an.current == nil {
		return nil
	}
	for _, track := range an.current.Tracks {
		if track.BindTo() == id {
			return track
		}
	}
	return nil
}

// setAnimAsLastValues snapshots every track's closing key value into the
// cache, or the kind's zero value for tracks without keys. An animation with
// no tracks leaves the cache untouched.
func (an *animator) setAnimAsLastValues(anim *Anim) {
	for _, track := range anim.Tracks {
		switch t := track.(type) {
		case *FloatTrack:
			var val float32
			if len(t.Keys) > 0 {
				val = t.Keys[len(t.Keys)-1].Value
			}
			an.SetLastFloat(t.Bind, val)
		case *Vec2Track:
			var val common.Vec2
			if len(t.Keys) > 0 {
				val = t.Keys[len(t.Keys)-1].Value
			}
			an.SetLastVec2(t.Bind, val)
		case *Vec3Track:
			var val common.Vec3
			if len(t.Keys) > 0 {
				val = t.Keys[len(t.Keys)-1].Value
			}
			an.SetLastVec3(t.Bind, val)
		case *Vec4Track:
			var val common.Vec4
			if len(t.Keys) > 0 {
				val = t.Keys[len(t.Keys)-1].Value
			}
			an.SetLastVec4(t.Bind, val)
		case *ColorTrack:
			var val common.Color
			if len(t.Keys) > 0 {
				val = t.Keys[len(t.Keys)-1].Value
			}
			an.SetLastColor(t.Bind, val)
		}
	}
}

func (an *animator) CalcFloat(cx context.Context, id shader.BindID, now float64) float32 {
	ret := an.LastFloat(id)
	if t, ok := an.advance(now); ok {
		if track, ok := an.findTrack(id).(*FloatTrack); ok {
			ret = track.Compute(t, ret)
		}
	}
	an.SetLastFloat(id, ret)
	return ret
}

func (an *animator) CalcVec2(cx context.Context, id shader.BindID, now float64) common.Vec2 {
	ret := an.LastVec2(id)
	if t, ok := an.advance(now); ok {
		if track, ok := an.findTrack(id).(*Vec2Track); ok {
			ret = track.Compute(t, ret)
		}
	}
	an.SetLastVec2(id, ret)
	return ret
}

func (an *animator) CalcVec3(cx context.Context, id shader.BindID, now float64) common.Vec3 {
	ret := an.LastVec3(id)
	if t, ok := an.advance(now); ok {
		if track, ok := an.findTrack(id).(*Vec3Track); ok {
			ret = track.Compute(t, ret)
		}
	}
	an.SetLastVec3(id, ret)
	return ret
}

func (an *animator) CalcVec4(cx context.Context, id shader.BindID, now float64) common.Vec4 {
	ret := an.LastVec4(id)
	if t, ok := an.advance(now); ok {
		if track, ok := an.findTrack(id).(*Vec4Track); ok {
			ret = track.Compute(t, ret)
		}
	}
	an.SetLastVec4(id, ret)
	return ret
}

func (an *animator) CalcColor(cx context.Context, id shader.BindID, now float64) common.Color {
	ret := an.LastColor(id)
	if t, ok := an.advance(now); ok {
		if track, ok := an.findTrack(id).(*ColorTrack); ok {
			ret = track.Compute(t, ret)
		}
	}
	an.SetLastColor(id, ret)
	return ret
}

func (an *animator) CalcArea(cx context.Context, a area.Area, now float64) {
	t, ok := an.advance(now)
	if !ok {
		return
	}
	for _, track := range an.current.Tracks {
		switch tr := track.(type) {
		case *FloatTrack:
			ret := tr.Compute(t, an.LastFloat(tr.Bind))
			an.SetLastFloat(tr.Bind, ret)
			a.WriteFloat(cx, tr.Bind, ret)
		case *Vec2Track:
			ret := tr.Compute(t, an.LastVec2(tr.Bind))
			an.SetLastVec2(tr.Bind, ret)
			a.WriteVec2(cx, tr.Bind, ret)
		case *Vec3Track:
			ret := tr.Compute(t, an.LastVec3(tr.Bind))
			an.SetLastVec3(tr.Bind, ret)
			a.WriteVec3(cx, tr.Bind, ret)
		case *Vec4Track:
			ret := tr.Compute(t, an.LastVec4(tr.Bind))
			an.SetLastVec4(tr.Bind, ret)
			a.WriteVec4(cx, tr.Bind, ret)
		case *ColorTrack:
			ret := tr.Compute(t, an.LastColor(tr.Bind))
			an.SetLastColor(tr.Bind, ret)
			a.WriteColor(cx, tr.Bind, ret)
		}
	}
}

func (an *animator) LastFloat(id shader.BindID) float32 {
	if last, ok := an.lastValues[id]; ok && last.kind == lastFloat {
		return last.v[0]
	}
	return 0
}

func (an *animator) LastVec2(id shader.BindID) common.Vec2 {
	if last, ok := an.lastValues[id]; ok && last.kind == lastVec2 {
		return common.Vec2{X: last.v[0], Y: last.v[1]}
	}
	return common.Vec2{}
}

func (an *animator) LastVec3(id shader.BindID) common.Vec3 {
	if last, ok := an.lastValues[id]; ok && last.kind == lastVec3 {
		return common.Vec3{X: last.v[0], Y: last.v[1], Z: last.v[2]}
	}
	return common.Vec3{}
}

func (an *animator) LastVec4(id shader.BindID) common.Vec4 {
	if last, ok := an.lastValues[id]; ok && last.kind == lastVec4 {
		return common.Vec4{X: last.v[0], Y: last.v[1], Z: last.v[2], W: last.v[3]}
	}
	return common.Vec4{}
}

func (an *animator) LastColor(id shader.BindID) common.Color {
	if last, ok := an.lastValues[id]; ok && last.kind == lastColor {
		return common.Color{R: last.v[0], G: last.v[1], B: last.v[2], A: last.v[3]}
	}
	return common.Color{}
}

func (an *animator) SetLastFloat(id shader.BindID, value float32) {
	an.lastValues[id] = lastValue{kind: lastFloat, v: [4]float32{value}}
}

func (an *animator) SetLastVec2(id shader.BindID, value common.Vec2) {
	an.lastValues[id] = lastValue{kind: lastVec2, v: [4]float32{value.X, value.Y}}
}

func (an *animator) SetLastVec3(id shader.BindID, value common.Vec3) {
	an.lastValues[id] = lastValue{kind: lastVec3, v: [4]float32{value.X, value.Y, value.Z}}
}

func (an *animator) SetLastVec4(id shader.BindID, value common.Vec4) {
	an.lastValues[id] = lastValue{kind: lastVec4, v: [4]float32{value.X, value.Y, value.Z, value.W}}
}

func (an *animator) SetLastColor(id shader.BindID, value common.Color) {
	an.lastValues[id] = lastValue{kind: lastColor, v: [4]float32{value.R, value.G, value.B, value.A}}
}
