package area

import (
	"testing"

	"github.com/Carmen-Shannon/lumo-go/common"
	"github.com/Carmen-Shannon/lumo-go/engine/context"
	"github.com/Carmen-Shannon/lumo-go/engine/shader"
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
`

// newQuadContext builds a context with one pass, one view, and one quad draw
// call holding the given number of zeroed instances.
func newQuadContext(t *testing.T, instances int) (context.Context, Area) {
	t.Helper()
	cx := context.NewContext(context.WithFlushWorkers(1))
	s, err := shader.NewShader("quad", quadSource)
	if err != nil {
		t.Fatalf("unexpected shader error: %v", err)
	}
	cx.RegisterShader(s)
	pass := cx.AddPass()
	viewID, err := cx.AddView(pass)
	if err != nil {
		t.Fatalf("unexpected view error: %v", err)
	}
	dcID, err := cx.AddDrawCall(viewID, "quad")
	if err != nil {
		t.Fatalf("unexpected draw call error: %v", err)
	}
	dc := cx.DrawCall(viewID, dcID)
	dc.Instance = make([]float32, instances*s.Mapping().TotalSlots)
	a := FromInstance(InstanceArea{
		ViewID:        viewID,
		DrawCallID:    dcID,
		InstanceCount: instances,
		Generation:    cx.View(viewID).Generation,
	})
	return cx, a
}

func TestWriteReadFloat(t *testing.T) {
	cx, a := newQuadContext(t, 1)
	id := shader.Bind("Quad.hover")
	a.WriteFloat(cx, id, 0.75)
	if got := a.ReadFloat(cx, id); got != 0.75 {
		t.Errorf("expected 0.75, got %v", got)
	}
}

func TestVec2StorageOrder(t *testing.T) {
	cx, a := newQuadContext(t, 1)
	id := shader.Bind("Quad.offset")
	a.WriteVec2(cx, id, common.Vec2{X: 1, Y: 2})

	inst, _ := a.Instance()
	dc := cx.DrawCall(inst.ViewID, inst.DrawCallID)
	// the y component occupies the first of the two reserved slots
	if dc.Instance[9] != 2 || dc.Instance[10] != 1 {
		t.Errorf("expected raw slots (2, 1), got (%v, %v)", dc.Instance[9], dc.Instance[10])
	}
}

func TestWriteBroadcastsAcrossInstances(t *testing.T) {
	const n = 3
	cx, a := newQuadContext(t, n)
	id := shader.Bind("Quad.hover")
	a.WriteFloat(cx, id, 1.5)

	inst, _ := a.Instance()
	dc := cx.DrawCall(inst.ViewID, inst.DrawCallID)
	for i := 0; i < n; i++ {
		if got := dc.Instance[8+i*11]; got != 1.5 {
			t.Errorf("instance %d: expected 1.5, got %v", i, got)
		}
	}
}

func TestStaleHandleDegrades(t *testing.T) {
	cx, a := newQuadContext(t, 1)
	id := shader.Bind("Quad.hover")
	a.WriteFloat(cx, id, 3)

	inst, _ := a.Instance()
	cx.RedrawView(inst.ViewID)
	dc := cx.DrawCall(inst.ViewID, inst.DrawCallID)
	dc.Instance = make([]float32, 11)

	if a.IsValid(cx) {
		t.Error("expected handle to be stale after redraw")
	}
	a.WriteFloat(cx, id, 9)
	if dc.Instance[8] != 0 {
		t.Error("expected stale write to be a no-op")
	}
	if got := a.ReadFloat(cx, id); got != 0 {
		t.Errorf("expected stale read to return 0, got %v", got)
	}
	if got := a.Rect(cx); got != (common.Rect{}) {
		t.Errorf("expected stale rect to be zero, got %+v", got)
	}
}

func TestMissingPropertyIsNoOp(t *testing.T) {
	cx, a := newQuadContext(t, 1)
	before := make([]float32, 11)
	inst, _ := a.Instance()
	copy(before, cx.DrawCall(inst.ViewID, inst.DrawCallID).Instance)

	a.WriteFloat(cx, shader.Bind("Quad.missing"), 5)
	a.WriteVec4(cx, shader.Bind("Quad.hover"), common.Vec4{X: 1}) // kind mismatch

	after := cx.DrawCall(inst.ViewID, inst.DrawCallID).Instance
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("slot %d changed: %v -> %v", i, before[i], after[i])
		}
	}
	if got := a.ReadVec4(cx, shader.Bind("Quad.missing")); got != (common.Vec4{}) {
		t.Errorf("expected zero vec4, got %+v", got)
	}
}

func TestWriteMarksDirty(t *testing.T) {
	cx, a := newQuadContext(t, 1)
	inst, _ := a.Instance()
	view := cx.View(inst.ViewID)
	dc := cx.DrawCall(inst.ViewID, inst.DrawCallID)
	dc.InstanceDirty = false
	cx.Pass(view.PassID).PaintDirty = false

	a.WriteFloat(cx, shader.Bind("Quad.hover"), 1)
	if !dc.InstanceDirty {
		t.Error("expected write to mark instance storage dirty")
	}
	if !cx.Pass(view.PassID).PaintDirty {
		t.Error("expected write to mark the pass paint dirty")
	}
}

func TestColorSharesVec4Footprint(t *testing.T) {
	cx, a := newQuadContext(t, 1)
	id := shader.Bind("Quad.color")
	a.WriteColor(cx, id, common.Color{R: 0.1, G: 0.2, B: 0.3, A: 0.4})
	got := a.ReadColor(cx, id)
	want := common.Color{R: 0.1, G: 0.2, B: 0.3, A: 0.4}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestRectRoundTrip(t *testing.T) {
	cx, a := newQuadContext(t, 1)
	a.SetRect(cx, common.Rect{X: 10, Y: 20, W: 30, H: 40})
	got := a.Rect(cx)
	if got != (common.Rect{X: 10, Y: 20, W: 30, H: 40}) {
		t.Errorf("unexpected rect: %+v", got)
	}
}

func TestUniformWrite(t *testing.T) {
	cx, a := newQuadContext(t, 1)
	a.WriteUniformFloat(cx, shader.Bind("QuadUniforms.fade"), 0.5)
	a.WriteUniformVec3(cx, shader.Bind("QuadUniforms.tint"), common.Vec3{X: 1, Y: 2, Z: 3})

	inst, _ := a.Instance()
	dc := cx.DrawCall(inst.ViewID, inst.DrawCallID)
	if dc.UserUniforms[0] != 0.5 {
		t.Errorf("expected fade 0.5, got %v", dc.UserUniforms[0])
	}
	if dc.UserUniforms[1] != 1 || dc.UserUniforms[2] != 2 || dc.UserUniforms[3] != 3 {
		t.Errorf("unexpected tint slots: %v", dc.UserUniforms[1:4])
	}
	if !dc.UniformsDirty {
		t.Error("expected uniform write to mark uniforms dirty")
	}
}

func TestWriteTexture2D(t *testing.T) {
	cx, a := newQuadContext(t, 1)
	a.WriteTexture2D(cx, shader.Bind("quad.tex"), 7)
	inst, _ := a.Instance()
	dc := cx.DrawCall(inst.ViewID, inst.DrawCallID)
	if dc.Textures2D[0] != 7 {
		t.Errorf("expected texture id 7 in slot 0, got %d", dc.Textures2D[0])
	}
}

func TestPushAppendsNaturalOrder(t *testing.T) {
	cx, a := newQuadContext(t, 0)
	inst, _ := a.Instance()
	ia := InstanceArea{
		ViewID:     inst.ViewID,
		DrawCallID: inst.DrawCallID,
		Generation: inst.Generation,
	}
	ia.PushFloat(cx, 1)
	ia.PushVec2(cx, common.Vec2{X: 2, Y: 3})
	ia.PushColor(cx, common.Color{R: 4, G: 5, B: 6, A: 7})

	dc := cx.DrawCall(inst.ViewID, inst.DrawCallID)
	want := []float32{1, 2, 3, 4, 5, 6, 7}
	if len(dc.Instance) != len(want) {
		t.Fatalf("expected %d slots, got %d", len(want), len(dc.Instance))
	}
	for i, w := range want {
		if dc.Instance[i] != w {
			t.Errorf("slot %d: expected %v, got %v", i, w, dc.Instance[i])
		}
	}
}

func TestIsFirstInstance(t *testing.T) {
	ia := InstanceArea{InstanceOffset: 0}
	if !ia.IsFirstInstance() {
		t.Error("expected offset 0 to be the first instance")
	}
	ia.InstanceOffset = 11
	if ia.IsFirstInstance() {
		t.Error("expected non-zero offset not to be the first instance")
	}
}

func TestEmptyAndAllNeverValid(t *testing.T) {
	cx, _ := newQuadContext(t, 1)
	if Empty().IsValid(cx) {
		t.Error("expected empty area to be invalid")
	}
	if All().IsValid(cx) {
		t.Error("expected all area to be invalid")
	}
	if !Empty().IsEmpty() {
		t.Error("expected empty area to report empty")
	}
}

func TestViewAreaRect(t *testing.T) {
	cx, a := newQuadContext(t, 1)
	inst, _ := a.Instance()
	view := cx.View(inst.ViewID)
	view.Rect = common.Rect{X: 5, Y: 6, W: 100, H: 200}

	va := FromView(ViewArea{ViewID: inst.ViewID, Generation: view.Generation})
	if got := va.Rect(cx); got != view.Rect {
		t.Errorf("expected %+v, got %+v", view.Rect, got)
	}
}

func TestAbsToRel(t *testing.T) {
	cx, a := newQuadContext(t, 1)
	a.SetRect(cx, common.Rect{X: 10, Y: 20, W: 30, H: 40})
	rel := a.AbsToRel(cx, common.Vec2{X: 15, Y: 26})
	if rel.X != 5 || rel.Y != 6 {
		t.Errorf("expected (5, 6), got (%v, %v)", rel.X, rel.Y)
	}
}
