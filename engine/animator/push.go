package animator

import (
	"github.com/Carmen-Shannon/lumo-go/engine/area"
	"github.com/Carmen-Shannon/lumo-go/engine/context"
	"github.com/Carmen-Shannon/lumo-go/engine/shader"
)

// The PushLast helpers re-emit an animator's cached values while a view is
// being rebuilt: the drawing pass appends the value an animation last resolved
// so a mid-flight animation carries across the rebuild seamlessly.

// PushLastFloat appends the cached float for the identity to the draw call's
// instance storage.
//
// Parameters:
//   - cx: the render context
//   - ia: the instance range being emitted
//   - id: the property identity
func (an *animator) PushLastFloat(cx context.Context, ia area.InstanceArea, id shader.BindID) {
	ia.PushFloat(cx, an.LastFloat(id))
}

// PushLastVec2 appends the cached Vec2 for the identity.
func (an *animator) PushLastVec2(cx context.Context, ia area.InstanceArea, id shader.BindID) {
	ia.PushVec2(cx, an.LastVec2(id))
}

// PushLastVec3 appends the cached Vec3 for the identity.
func (an *animator) PushLastVec3(cx context.Context, ia area.InstanceArea, id shader.BindID) {
	ia.PushVec3(cx, an.LastVec3(id))
}

// PushLastVec4 appends the cached Vec4 for the identity.
func (an *animator) PushLastVec4(cx context.Context, ia area.InstanceArea, id shader.BindID) {
	ia.PushVec4(cx, an.LastVec4(id))
}

// PushLastColor appends the cached color for the identity.
func (an *animator) PushLastColor(cx context.Context, ia area.InstanceArea, id shader.BindID) {
	ia.PushColor(cx, an.LastColor(id))
}
