package area

import (
	"github.com/Carmen-Shannon/lumo-go/common"
	"github.com/Carmen-Shannon/lumo-go/engine/context"
)

// The push API appends raw slot data to a draw call's instance storage while a
// view is being rebuilt. Unlike the broadcast writers on Area, pushes extend
// the buffer instead of updating it in place, and component order is always
// natural.

// push resolves the draw call when the handle is still current, marks the
// instance storage dirty, and hands the appended buffer back to the caller.
func (ia InstanceArea) push(cx context.Context, values ...float32) {
	view := cx.View(ia.ViewID)
	if view == nil || view.Generation != ia.Generation {
		logger.Debug("push on stale instance area", "view", ia.ViewID, "draw_call", ia.DrawCallID)
		return
	}
	dc := cx.DrawCall(ia.ViewID, ia.DrawCallID)
	if dc == nil {
		return
	}
	dc.Instance = append(dc.Instance, values...)
	cx.MarkInstanceDirty(ia.ViewID, ia.DrawCallID)
}

// PushFloat appends a single float slot to the draw call's instance storage.
//
// Parameters:
//   - cx: the render context
//   - value: the slot value to append
func (ia InstanceArea) PushFloat(cx context.Context, value float32) {
	ia.push(cx, value)
}

// PushVec2 appends a Vec2 in natural component order.
func (ia InstanceArea) PushVec2(cx context.Context, value common.Vec2) {
	ia.push(cx, value.X, value.Y)
}

// PushVec3 appends a Vec3 in natural component order.
func (ia InstanceArea) PushVec3(cx context.Context, value common.Vec3) {
	ia.push(cx, value.X, value.Y, value.Z)
}

// PushVec4 appends a Vec4 in natural component order.
func (ia InstanceArea) PushVec4(cx context.Context, value common.Vec4) {
	ia.push(cx, value.X, value.Y, value.Z, value.W)
}

// PushColor appends an RGBA color as four slots.
func (ia InstanceArea) PushColor(cx context.Context, value common.Color) {
	ia.push(cx, value.R, value.G, value.B, value.A)
}

// SetDoScroll sets whether the draw call follows its view's horizontal and
// vertical scroll offsets.
//
// Parameters:
//   - cx: the render context
//   - horizontal: follow horizontal scrolling
//   - vertical: follow vertical scrolling
func (ia InstanceArea) SetDoScroll(cx context.Context, horizontal, vertical bool) {
	view := cx.View(ia.ViewID)
	if view == nil || view.Generation != ia.Generation {
		return
	}
	dc := cx.DrawCall(ia.ViewID, ia.DrawCallID)
	if dc == nil {
		return
	}
	dc.DoHScroll = horizontal
	dc.DoVScroll = vertical
}

// IsFirstInstance reports whether the handle starts at the first instance of
// its draw call.
//
// Returns:
//   - bool: true when the instance offset is zero
func (ia InstanceArea) IsFirstInstance() bool {
	return ia.InstanceOffset == 0
}
