// package shader is the metadata side of the WGSL pipeline: it parses annotated
// shader source and exposes the property mapping the rest of the toolkit uses to
// address per-instance and per-draw-call float storage by identity. It performs
// no compilation and owns no GPU resources.
package shader

import (
	"hash/fnv"
)

// ValueKind identifies the float-slot footprint of a shader-exposed property.
// A property's kind must match the accessor used to address it; a kind mismatch
// resolves as "not found" rather than an error, because shaders are free to
// omit or retype unused properties.
type ValueKind int

const (
	// KindFloat is a single float slot (WGSL f32).
	KindFloat ValueKind = iota

	// KindVec2 is two float slots (WGSL vec2<f32>).
	KindVec2

	// KindVec3 is three float slots (WGSL vec3<f32>).
	KindVec3

	// KindVec4 is four float slots (WGSL vec4<f32>). Colors share this kind;
	// a color property is declared vec4<f32> in the shader.
	KindVec4

	// KindMat4 is sixteen float slots (WGSL mat4x4<f32>).
	KindMat4
)

// Slots returns the number of float slots a value of this kind occupies in
// instance or uniform storage.
//
// Returns:
//   - int: the slot count, 0 for an unknown kind
func (k ValueKind) Slots() int {
	switch k {
	case KindFloat:
		return 1
	case KindVec2:
		return 2
	case KindVec3:
		return 3
	case KindVec4:
		return 4
	case KindMat4:
		return 16
	default:
		return 0
	}
}

// String returns the WGSL spelling of the kind.
func (k ValueKind) String() string {
	switch k {
	case KindFloat:
		return "f32"
	case KindVec2:
		return "vec2<f32>"
	case KindVec3:
		return "vec3<f32>"
	case KindVec4:
		return "vec4<f32>"
	case KindMat4:
		return "mat4x4<f32>"
	default:
		return "unknown"
	}
}

// BindID is the stable identity correlating an animated track or a typed
// accessor to a shader-exposed property. IDs are content hashes of the
// qualified property name, so independently compiled callers agree on them
// without a shared registry.
type BindID uint64

// Bind hashes a qualified property name (e.g. "quad.hover") into a BindID
// using 64-bit FNV-1a.
//
// Parameters:
//   - name: the qualified "<struct>.<field>" property name
//
// Returns:
//   - BindID: the property identity
func Bind(name string) BindID {
	h := fnv.New64a()
	h.Write([]byte(name))
	return BindID(h.Sum64())
}

// Prop describes one shader-exposed property resolved from an annotated WGSL
// struct: its qualified name, identity, value kind, and float-slot offset
// within a single instance (or within the uniform block).
type Prop struct {
	// Name is the qualified "<struct>.<field>" name the BindID was hashed from.
	Name string

	// ID is the property identity used for lookups.
	ID BindID

	// Kind is the property's float-slot footprint.
	Kind ValueKind

	// Offset is the property's float-slot offset inside one instance stride
	// (for instance props) or inside the uniform block (for uniform props).
	Offset int
}

// TextureSlot describes one declared texture binding.
type TextureSlot struct {
	// Name is the texture's declared name.
	Name string

	// ID is the texture identity, hashed from Name.
	ID BindID

	// Slot is the index into a draw call's texture table.
	Slot int
}

// RectProps holds the instance-slot offsets of the geometry fields (x, y, w, h)
// when the instance struct declares them. An offset of -1 means the field is
// absent; geometry queries then degrade to defaults.
type RectProps struct {
	X, Y, W, H int
}

// Mapping is the resolved property layout of one shader: every annotated
// instance property, user uniform, and texture slot, plus the per-instance
// stride in float slots. A Mapping is immutable after parsing.
type Mapping struct {
	// Instance holds the per-instance properties in declaration order.
	Instance []Prop

	// Uniforms holds the per-draw-call user uniform properties in declaration order.
	Uniforms []Prop

	// Textures holds the declared texture slots in declaration order.
	Textures []TextureSlot

	// TotalSlots is the per-instance stride in float slots.
	TotalSlots int

	// UniformSlots is the user uniform block size in float slots.
	UniformSlots int

	// Rect holds the offsets of the geometry instance fields, -1 when absent.
	Rect RectProps

	instanceIndex map[BindID]int
	uniformIndex  map[BindID]int
	textureIndex  map[BindID]int
}

// InstanceOffset resolves a property identity of the expected kind to its
// float-slot offset within one instance. Absence and kind mismatch both report
// not-found; shaders may legitimately omit properties a caller animates.
//
// Parameters:
//   - id: the property identity
//   - kind: the expected value kind
//
// Returns:
//   - int: the float-slot offset within one instance stride
//   - bool: false when the property is absent or of a different kind
func (m *Mapping) InstanceOffset(id BindID, kind ValueKind) (int, bool) {
	i, ok := m.instanceIndex[id]
	if !ok || m.Instance[i].Kind != kind {
		return 0, false
	}
	return m.Instance[i].Offset, true
}

// UniformOffset resolves a user uniform identity of the expected kind to its
// float-slot offset within the draw call's uniform block.
//
// Parameters:
//   - id: the property identity
//   - kind: the expected value kind
//
// Returns:
//   - int: the float-slot offset within the uniform block
//   - bool: false when the uniform is absent or of a different kind
func (m *Mapping) UniformOffset(id BindID, kind ValueKind) (int, bool) {
	i, ok := m.uniformIndex[id]
	if !ok || m.Uniforms[i].Kind != kind {
		return 0, false
	}
	return m.Uniforms[i].Offset, true
}

// TextureSlot resolves a texture identity to its slot in the draw call's
// texture table.
//
// Parameters:
//   - id: the texture identity
//
// Returns:
//   - int: the texture table slot
//   - bool: false when no texture with that identity is declared
func (m *Mapping) TextureSlot(id BindID) (int, bool) {
	i, ok := m.textureIndex[id]
	if !ok {
		return 0, false
	}
	return m.Textures[i].Slot, true
}

// buildIndexes populates the identity lookup maps and the rect offsets after
// parsing. Rect fields are matched by their unqualified names per the
// layout contract with the drawing layer.
func (m *Mapping) buildIndexes(structName string) {
	m.instanceIndex = make(map[BindID]int, len(m.Instance))
	m.uniformIndex = make(map[BindID]int, len(m.Uniforms))
	m.textureIndex = make(map[BindID]int, len(m.Textures))
	m.Rect = RectProps{X: -1, Y: -1, W: -1, H: -1}

	for i, p := range m.Instance {
		m.instanceIndex[p.ID] = i
		switch p.Name {
		case structName + ".x":
			m.Rect.X = p.Offset
		case structName + ".y":
			m.Rect.Y = p.Offset
		case structName + ".w":
			m.Rect.W = p.Offset
		case structName + ".h":
			m.Rect.H = p.Offset
		}
	}
	for i, p := range m.Uniforms {
		m.uniformIndex[p.ID] = i
	}
	for i, t := range m.Textures {
		m.textureIndex[t.ID] = i
	}
}
