package shader

import (
	"testing"
)

const quadSource = `
//@lumo:instance Quad
//@lumo:uniform QuadUniforms
//@lumo:texture 0 quad.tex

struct Quad {
	x: f32,
	y: f32,
	w: f32,
	h: f32,
	color: vec4<f32>,
	hover: f32,
	offset: vec2<f32>,
};

struct QuadUniforms {
	fade: f32,
	tint: vec3<f32>,
};

@vertex
fn vs_main() -> @builtin(position) vec4<f32> {
	return vec4<f32>(0.0);
}
`

func TestNewShaderMapping(t *testing.T) {
	s, err := NewShader("quad", quadSource)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := s.Mapping()
	if m.TotalSlots != 11 {
		t.Errorf("expected 11 instance slots, got %d", m.TotalSlots)
	}
	if m.UniformSlots != 4 {
		t.Errorf("expected 4 uniform slots, got %d", m.UniformSlots)
	}

	off, ok := m.InstanceOffset(Bind("Quad.color"), KindVec4)
	if !ok || off != 4 {
		t.Errorf("expected Quad.color at offset 4, got %d ok=%v", off, ok)
	}
	off, ok = m.InstanceOffset(Bind("Quad.hover"), KindFloat)
	if !ok || off != 8 {
		t.Errorf("expected Quad.hover at offset 8, got %d ok=%v", off, ok)
	}
	off, ok = m.InstanceOffset(Bind("Quad.offset"), KindVec2)
	if !ok || off != 9 {
		t.Errorf("expected Quad.offset at offset 9, got %d ok=%v", off, ok)
	}
}

func TestKindMismatchResolvesNotFound(t *testing.T) {
	s, err := NewShader("quad", quadSource)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := s.Mapping()
	if _, ok := m.InstanceOffset(Bind("Quad.color"), KindVec3); ok {
		t.Error("expected kind mismatch to resolve as not found")
	}
	if _, ok := m.InstanceOffset(Bind("Quad.missing"), KindFloat); ok {
		t.Error("expected absent property to resolve as not found")
	}
}

func TestRectProps(t *testing.T) {
	s, err := NewShader("quad", quadSource)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := s.Mapping().Rect
	if r.X != 0 || r.Y != 1 || r.W != 2 || r.H != 3 {
		t.Errorf("unexpected rect offsets: %+v", r)
	}
}

func TestRectPropsAbsent(t *testing.T) {
	src := `
//@lumo:instance Dot
struct Dot {
	color: vec4<f32>,
};
`
	s, err := NewShader("dot", src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := s.Mapping().Rect
	if r.X != -1 || r.Y != -1 || r.W != -1 || r.H != -1 {
		t.Errorf("expected absent rect offsets, got %+v", r)
	}
}

func TestUniformOffsets(t *testing.T) {
	s, err := NewShader("quad", quadSource)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := s.Mapping()
	off, ok := m.UniformOffset(Bind("QuadUniforms.tint"), KindVec3)
	if !ok || off != 1 {
		t.Errorf("expected QuadUniforms.tint at offset 1, got %d ok=%v", off, ok)
	}
}

func TestTextureSlots(t *testing.T) {
	s, err := NewShader("quad", quadSource)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	slot, ok := s.Mapping().TextureSlot(Bind("quad.tex"))
	if !ok || slot != 0 {
		t.Errorf("expected quad.tex in slot 0, got %d ok=%v", slot, ok)
	}
	if _, ok := s.Mapping().TextureSlot(Bind("quad.other")); ok {
		t.Error("expected undeclared texture to resolve as not found")
	}
}

func TestMissingInstanceAnnotation(t *testing.T) {
	src := `
struct Quad {
	x: f32,
};
`
	if _, err := NewShader("quad", src); err == nil {
		t.Error("expected error for source without instance annotation")
	}
}

func TestDuplicateInstanceAnnotation(t *testing.T) {
	src := `
//@lumo:instance Quad
//@lumo:instance Quad
struct Quad {
	x: f32,
};
`
	if _, err := NewShader("quad", src); err == nil {
		t.Error("expected error for duplicate instance annotation")
	}
}

func TestInstanceVertexLayout(t *testing.T) {
	s, err := NewShader("quad", quadSource)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	layout := s.InstanceVertexLayout(2)
	if layout.ArrayStride != 11*4 {
		t.Errorf("expected stride 44, got %d", layout.ArrayStride)
	}
	if len(layout.Attributes) != 7 {
		t.Errorf("expected 7 attributes, got %d", len(layout.Attributes))
	}
	if layout.Attributes[0].ShaderLocation != 2 {
		t.Errorf("expected first location 2, got %d", layout.Attributes[0].ShaderLocation)
	}
}

func TestBindStable(t *testing.T) {
	if Bind("Quad.color") != Bind("Quad.color") {
		t.Error("expected identical names to hash to identical ids")
	}
	if Bind("Quad.color") == Bind("Quad.hover") {
		t.Error("expected distinct names to hash to distinct ids")
	}
}
