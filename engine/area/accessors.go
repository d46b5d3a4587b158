// accessors.go layers the typed read/write operations over Area: property
// identity plus expected kind resolve to a float-slot offset through the
// shader mapping, and values are broadcast across every repeated instance the
// handle spans. Reads return the kind's zero value and writes no-op whenever
// the handle is stale or the property absent.
package area

import (
	"github.com/Carmen-Shannon/lumo-go/common"
	"github.com/Carmen-Shannon/lumo-go/engine/context"
	"github.com/Carmen-Shannon/lumo-go/engine/shader"
)

// instanceRef is a resolved window into a draw call's instance storage: the
// handle's base slot offset, the per-instance stride, the spanned instance
// count, and the backing buffer itself.
type instanceRef struct {
	offset int
	slots  int
	count  int
	buffer []float32
}

// instanceOffset resolves a property identity of the expected kind against the
// draw call's shader mapping. Only instance-kind areas resolve.
func (a Area) instanceOffset(cx context.Context, id shader.BindID, kind shader.ValueKind) (int, bool) {
	if a.kind != KindInstance {
		return 0, false
	}
	dc := cx.DrawCall(a.instance.ViewID, a.instance.DrawCallID)
	if dc == nil {
		return 0, false
	}
	s := cx.Shader(dc.ShaderKey)
	if s == nil {
		return 0, false
	}
	return s.Mapping().InstanceOffset(id, kind)
}

// uniformOffset resolves a user uniform identity of the expected kind against
// the draw call's shader mapping.
func (a Area) uniformOffset(cx context.Context, id shader.BindID, kind shader.ValueKind) (int, bool) {
	if a.kind != KindInstance {
		return 0, false
	}
	dc := cx.DrawCall(a.instance.ViewID, a.instance.DrawCallID)
	if dc == nil {
		return 0, false
	}
	s := cx.Shader(dc.ShaderKey)
	if s == nil {
		return 0, false
	}
	return s.Mapping().UniformOffset(id, kind)
}

// readRef resolves the handle into a read window over the instance storage.
// Fails silently on stale handles.
func (a Area) readRef(cx context.Context) (instanceRef, bool) {
	if a.kind != KindInstance {
		return instanceRef{}, false
	}
	view := cx.View(a.instance.ViewID)
	if view == nil || view.Generation != a.instance.Generation {
		return instanceRef{}, false
	}
	dc := cx.DrawCall(a.instance.ViewID, a.instance.DrawCallID)
	if dc == nil {
		return instanceRef{}, false
	}
	s := cx.Shader(dc.ShaderKey)
	if s == nil {
		return instanceRef{}, false
	}
	return instanceRef{
		offset: a.instance.InstanceOffset,
		slots:  s.Mapping().TotalSlots,
		count:  a.instance.InstanceCount,
		buffer: dc.Instance,
	}, true
}

// writeRef resolves the handle into a write window over the instance storage,
// marking the draw call and its pass dirty as a side effect.
func (a Area) writeRef(cx context.Context) (instanceRef, bool) {
	ref, ok := a.readRef(cx)
	if !ok {
		return instanceRef{}, false
	}
	cx.MarkInstanceDirty(a.instance.ViewID, a.instance.DrawCallID)
	return ref, true
}

// WriteFloat broadcasts a float value into the identified property of every
// instance the handle spans. No-op when the handle is stale or the property
// absent.
//
// Parameters:
//   - cx: the render context
//   - id: the property identity
//   - value: the value to store
func (a Area) WriteFloat(cx context.Context, id shader.BindID, value float32) {
	off, ok := a.instanceOffset(cx, id, shader.KindFloat)
	if !ok {
		return
	}
	if ref, ok := a.writeRef(cx); ok {
		for i := 0; i < ref.count; i++ {
			ref.buffer[ref.offset+off+i*ref.slots] = value
		}
	}
}

// ReadFloat reads the identified float property from the first spanned
// instance, or 0 when unresolvable.
//
// Parameters:
//   - cx: the render context
//   - id: the property identity
//
// Returns:
//   - float32: the stored value, 0 when stale or absent
func (a Area) ReadFloat(cx context.Context, id shader.BindID) float32 {
	off, ok := a.instanceOffset(cx, id, shader.KindFloat)
	if !ok {
		return 0
	}
	if ref, ok := a.readRef(cx); ok {
		return ref.buffer[ref.offset+off]
	}
	return 0
}

// WriteVec2 broadcasts a Vec2 into the identified property. The components are
// stored in (y, x) slot order; deployed shader layouts depend on this order,
// so it must not be normalized.
//
// Parameters:
//   - cx: the render context
//   - id: the property identity
//   - value: the value to store
func (a Area) WriteVec2(cx context.Context, id shader.BindID, value common.Vec2) {
	off, ok := a.instanceOffset(cx, id, shader.KindVec2)
	if !ok {
		return
	}
	if ref, ok := a.writeRef(cx); ok {
		for i := 0; i < ref.count; i++ {
			base := ref.offset + off + i*ref.slots
			ref.buffer[base+0] = value.Y
			ref.buffer[base+1] = value.X
		}
	}
}

// ReadVec2 reads the identified Vec2 property from the first spanned instance.
// Slots are returned in their stored order, matching what ReadVec2 of a value
// written by WriteVec2 observes in the raw buffer.
//
// Parameters:
//   - cx: the render context
//   - id: the property identity
//
// Returns:
//   - common.Vec2: the stored value, zero when stale or absent
func (a Area) ReadVec2(cx context.Context, id shader.BindID) common.Vec2 {
	off, ok := a.instanceOffset(cx, id, shader.KindVec2)
	if !ok {
		return common.Vec2{}
	}
	if ref, ok := a.readRef(cx); ok {
		return common.Vec2{
			X: ref.buffer[ref.offset+off+0],
			Y: ref.buffer[ref.offset+off+1],
		}
	}
	return common.Vec2{}
}

// WriteVec3 broadcasts a Vec3 into the identified property in natural
// component order.
//
// Parameters:
//   - cx: the render context
//   - id: the property identity
//   - value: the value to store
func (a Area) WriteVec3(cx context.Context, id shader.BindID, value common.Vec3) {
	off, ok := a.instanceOffset(cx, id, shader.KindVec3)
	if !ok {
		return
	}
	if ref, ok := a.writeRef(cx); ok {
		for i := 0; i < ref.count; i++ {
			base := ref.offset + off + i*ref.slots
			ref.buffer[base+0] = value.X
			ref.buffer[base+1] = value.Y
			ref.buffer[base+2] = value.Z
		}
	}
}

// ReadVec3 reads the identified Vec3 property from the first spanned instance.
func (a Area) ReadVec3(cx context.Context, id shader.BindID) common.Vec3 {
	off, ok := a.instanceOffset(cx, id, shader.KindVec3)
	if !ok {
		return common.Vec3{}
	}
	if ref, ok := a.readRef(cx); ok {
		return common.Vec3{
			X: ref.buffer[ref.offset+off+0],
			Y: ref.buffer[ref.offset+off+1],
			Z: ref.buffer[ref.offset+off+2],
		}
	}
	return common.Vec3{}
}

// WriteVec4 broadcasts a Vec4 into the identified property in natural
// component order.
func (a Area) WriteVec4(cx context.Context, id shader.BindID, value common.Vec4) {
	off, ok := a.instanceOffset(cx, id, shader.KindVec4)
	if !ok {
		return
	}
	if ref, ok := a.writeRef(cx); ok {
		for i := 0; i < ref.count; i++ {
			base := ref.offset + off + i*ref.slots
			ref.buffer[base+0] = value.X
			ref.buffer[base+1] = value.Y
			ref.buffer[base+2] = value.Z
			ref.buffer[base+3] = value.W
		}
	}
}

// ReadVec4 reads the identified Vec4 property from the first spanned instance.
func (a Area) ReadVec4(cx context.Context, id shader.BindID) common.Vec4 {
	off, ok := a.instanceOffset(cx, id, shader.KindVec4)
	if !ok {
		return common.Vec4{}
	}
	if ref, ok := a.readRef(cx); ok {
		return common.Vec4{
			X: ref.buffer[ref.offset+off+0],
			Y: ref.buffer[ref.offset+off+1],
			Z: ref.buffer[ref.offset+off+2],
			W: ref.buffer[ref.offset+off+3],
		}
	}
	return common.Vec4{}
}

// WriteColor broadcasts an RGBA color into the identified property. Colors
// share the vec4 footprint, so the property must be declared vec4<f32>.
func (a Area) WriteColor(cx context.Context, id shader.BindID, value common.Color) {
	off, ok := a.instanceOffset(cx, id, shader.KindVec4)
	if !ok {
		return
	}
	if ref, ok := a.writeRef(cx); ok {
		for i := 0; i < ref.count; i++ {
			base := ref.offset + off + i*ref.slots
			ref.buffer[base+0] = value.R
			ref.buffer[base+1] = value.G
			ref.buffer[base+2] = value.B
			ref.buffer[base+3] = value.A
		}
	}
}

// ReadColor reads the identified color property from the first spanned instance.
func (a Area) ReadColor(cx context.Context, id shader.BindID) common.Color {
	off, ok := a.instanceOffset(cx, id, shader.KindVec4)
	if !ok {
		return common.Color{}
	}
	if ref, ok := a.readRef(cx); ok {
		return common.Color{
			R: ref.buffer[ref.offset+off+0],
			G: ref.buffer[ref.offset+off+1],
			B: ref.buffer[ref.offset+off+2],
			A: ref.buffer[ref.offset+off+3],
		}
	}
	return common.Color{}
}

// WriteMat4 broadcasts a 4x4 matrix into the identified property.
func (a Area) WriteMat4(cx context.Context, id shader.BindID, value *common.Mat4) {
	off, ok := a.instanceOffset(cx, id, shader.KindMat4)
	if !ok {
		return
	}
	if ref, ok := a.writeRef(cx); ok {
		for i := 0; i < ref.count; i++ {
			base := ref.offset + off + i*ref.slots
			for j := 0; j < 16; j++ {
				ref.buffer[base+j] = value.V[j]
			}
		}
	}
}

// ReadMat4 reads the identified matrix property from the first spanned instance.
func (a Area) ReadMat4(cx context.Context, id shader.BindID) common.Mat4 {
	off, ok := a.instanceOffset(cx, id, shader.KindMat4)
	if !ok {
		return common.Mat4{}
	}
	if ref, ok := a.readRef(cx); ok {
		var ret common.Mat4
		for j := 0; j < 16; j++ {
			ret.V[j] = ref.buffer[ref.offset+off+j]
		}
		return ret
	}
	return common.Mat4{}
}

// WriteUniformFloat stores a float into the draw call's user uniform block,
// marking the uniforms dirty. No-op when the handle is stale or the uniform
// absent.
//
// Parameters:
//   - cx: the render context
//   - id: the uniform identity
//   - v: the value to store
func (a Area) WriteUniformFloat(cx context.Context, id shader.BindID, v float32) {
	off, ok := a.uniformOffset(cx, id, shader.KindFloat)
	if !ok {
		return
	}
	if dc, ok := a.uniformsWriteRef(cx); ok && off < len(dc) {
		dc[off] = v
	}
}

// WriteUniformVec3 stores a Vec3 into the draw call's user uniform block in
// natural component order.
func (a Area) WriteUniformVec3(cx context.Context, id shader.BindID, v common.Vec3) {
	off, ok := a.uniformOffset(cx, id, shader.KindVec3)
	if !ok {
		return
	}
	if dc, ok := a.uniformsWriteRef(cx); ok && off+2 < len(dc) {
		dc[off+0] = v.X
		dc[off+1] = v.Y
		dc[off+2] = v.Z
	}
}

// uniformsWriteRef resolves the handle to the draw call's mutable uniform
// block, marking the uniforms and pass dirty.
func (a Area) uniformsWriteRef(cx context.Context) ([]float32, bool) {
	if a.kind != KindInstance {
		return nil, false
	}
	view := cx.View(a.instance.ViewID)
	if view == nil || view.Generation != a.instance.Generation {
		return nil, false
	}
	dc := cx.DrawCall(a.instance.ViewID, a.instance.DrawCallID)
	if dc == nil {
		return nil, false
	}
	cx.MarkUniformsDirty(a.instance.ViewID, a.instance.DrawCallID)
	return dc.UserUniforms, true
}

// WriteTexture2D stores a texture id into the slot declared for the identified
// texture. No-op when the handle is stale or the texture undeclared.
//
// Parameters:
//   - cx: the render context
//   - id: the texture identity
//   - textureID: the texture id to store in the slot table
func (a Area) WriteTexture2D(cx context.Context, id shader.BindID, textureID uint32) {
	if a.kind != KindInstance {
		return
	}
	view := cx.View(a.instance.ViewID)
	if view == nil || view.Generation != a.instance.Generation {
		return
	}
	dc := cx.DrawCall(a.instance.ViewID, a.instance.DrawCallID)
	if dc == nil {
		return
	}
	s := cx.Shader(dc.ShaderKey)
	if s == nil {
		return
	}
	slot, ok := s.Mapping().TextureSlot(id)
	if !ok || slot >= len(dc.Textures2D) {
		return
	}
	dc.Textures2D[slot] = textureID
}
