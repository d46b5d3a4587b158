package context

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/lumo-go/common"
)

// Pass is one render pass. Typed writes through areas mark the owning pass
// dirty so the submission layer knows it must repaint.
type Pass struct {
	// PaintDirty is set when any draw call in the pass was mutated since the
	// last Flush.
	PaintDirty bool
}

// View is one retained view: a rectangle of the layout, its scroll state, and
// the draw calls emitted into it during the last redraw. Views carry the
// monotonic redraw generation that area handles are stamped with; a handle
// whose stamp differs from the view's current generation is stale.
type View struct {
	// Rect is the view's rectangle in parent coordinates.
	Rect common.Rect

	// ParentScroll is the accumulated scroll offset of the view's ancestors.
	ParentScroll common.Vec2

	// UnsnappedScroll is the view's own unsnapped scroll position.
	UnsnappedScroll common.Vec2

	// PassID is the owning pass.
	PassID int

	// Generation is the view's current redraw stamp. Bumped by RedrawView;
	// never reused.
	Generation uint64

	// DrawCalls are the draw calls emitted into this view, rebuilt each redraw.
	DrawCalls []*DrawCall
}

// DrawCall is one draw call's CPU-side storage: the flat per-instance float
// buffer, the user uniform block, and the texture slot table, all laid out per
// the shader's Mapping. The GPU buffers are residency targets only; uploads
// are staged by Flush and submitted elsewhere.
type DrawCall struct {
	// ShaderKey names the shader whose Mapping lays out this draw call.
	ShaderKey string

	// Instance is the flat per-instance float storage. Stride is the shader
	// mapping's TotalSlots.
	Instance []float32

	// UserUniforms is the per-draw-call user uniform block in float slots.
	UserUniforms []float32

	// Textures2D is the texture slot table, one texture id per declared slot.
	Textures2D []uint32

	// DrawScroll is the scroll offset applied to this draw call's geometry.
	DrawScroll common.Vec2

	// DoHScroll and DoVScroll control whether the draw call participates in
	// horizontal and vertical scrolling.
	DoHScroll, DoVScroll bool

	// InstanceDirty and UniformsDirty record pending CPU mutations since the
	// last Flush.
	InstanceDirty, UniformsDirty bool

	// InstanceBuffer and UniformBuffer are the GPU residency targets for the
	// staged writes. Nil until the submission layer allocates them; staged
	// writes carry the nil through and the submission layer allocates lazily.
	InstanceBuffer, UniformBuffer *wgpu.Buffer
}

// ClipAndScroll converts an instance-space rectangle to final screen space by
// applying the draw call's scroll offset.
//
// Parameters:
//   - x, y, w, h: the instance-space rectangle
//
// Returns:
//   - common.Rect: the scrolled rectangle
func (d *DrawCall) ClipAndScroll(x, y, w, h float32) common.Rect {
	if d.DoHScroll {
		x -= d.DrawScroll.X
	}
	if d.DoVScroll {
		y -= d.DrawScroll.Y
	}
	return common.Rect{X: x, Y: y, W: w, H: h}
}
