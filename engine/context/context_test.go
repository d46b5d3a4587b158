package context

import (
	"testing"

	"github.com/Carmen-Shannon/lumo-go/engine/shader"
)

const quadSource = `
//@lumo:instance Quad
//@lumo:uniform QuadUniforms
//@lumo:texture 1 quad.tex

struct Quad {
	x: f32,
	y: f32,
	color: vec4<f32>,
};

struct QuadUniforms {
	fade: f32,
};
`

func newTestContext(t *testing.T) (Context, int, int) {
	t.Helper()
	cx := NewContext(WithFlushWorkers(1))
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
	return cx, viewID, dcID
}

func TestAddDrawCallSizesStorage(t *testing.T) {
	cx, viewID, dcID := newTestContext(t)
	dc := cx.DrawCall(viewID, dcID)
	if len(dc.Instance) != 0 {
		t.Errorf("expected an empty instance buffer, got %d slots", len(dc.Instance))
	}
	if len(dc.UserUniforms) != 1 {
		t.Errorf("expected 1 uniform slot, got %d", len(dc.UserUniforms))
	}
	if len(dc.Textures2D) != 2 {
		t.Errorf("expected a texture table up to slot 1, got %d", len(dc.Textures2D))
	}
}

func TestAddDrawCallUnknownShader(t *testing.T) {
	cx, viewID, _ := newTestContext(t)
	if _, err := cx.AddDrawCall(viewID, "nope"); err == nil {
		t.Error("expected an error for an unregistered shader")
	}
}

func TestRedrawViewBumpsGenerationAndTruncates(t *testing.T) {
	cx, viewID, dcID := newTestContext(t)
	dc := cx.DrawCall(viewID, dcID)
	dc.Instance = append(dc.Instance, 1, 2, 3)
	dc.InstanceDirty = true
	before := cx.View(viewID).Generation

	gen := cx.RedrawView(viewID)
	if gen <= before {
		t.Errorf("expected the generation to advance past %d, got %d", before, gen)
	}
	if cx.View(viewID).Generation != gen {
		t.Error("expected the view stamped with the new generation")
	}
	if len(dc.Instance) != 0 {
		t.Errorf("expected instance storage truncated, got %d slots", len(dc.Instance))
	}
	if dc.InstanceDirty {
		t.Error("expected dirty flags cleared at the start of a redraw cycle")
	}
}

func TestMarkDirtyPropagatesToPass(t *testing.T) {
	cx, viewID, dcID := newTestContext(t)
	passID := cx.View(viewID).PassID

	cx.MarkInstanceDirty(viewID, dcID)
	if !cx.DrawCall(viewID, dcID).InstanceDirty {
		t.Error("expected the draw call marked instance dirty")
	}
	if !cx.Pass(passID).PaintDirty {
		t.Error("expected the pass marked paint dirty")
	}

	cx.Pass(passID).PaintDirty = false
	cx.MarkUniformsDirty(viewID, dcID)
	if !cx.Pass(passID).PaintDirty {
		t.Error("expected a uniform write to mark the pass paint dirty")
	}
}

func TestFlushDrainsDirtyStorage(t *testing.T) {
	cx, viewID, dcID := newTestContext(t)
	dc := cx.DrawCall(viewID, dcID)
	dc.Instance = append(dc.Instance, 1, 2, 3, 4, 5, 6)
	cx.MarkInstanceDirty(viewID, dcID)
	cx.MarkUniformsDirty(viewID, dcID)

	writes := cx.Flush()
	if len(writes) != 2 {
		t.Fatalf("expected 2 buffer writes, got %d", len(writes))
	}
	kinds := map[BufferKind]bool{}
	for _, w := range writes {
		kinds[w.Kind] = true
		if w.ViewID != viewID || w.DrawCallID != dcID {
			t.Errorf("unexpected write target: view %d draw call %d", w.ViewID, w.DrawCallID)
		}
		if w.Kind == BufferInstance && len(w.Data) != 6*4 {
			t.Errorf("expected 24 bytes of instance data, got %d", len(w.Data))
		}
	}
	if !kinds[BufferInstance] || !kinds[BufferUniforms] {
		t.Error("expected one instance write and one uniform write")
	}
	if dc.InstanceDirty || dc.UniformsDirty {
		t.Error("expected dirty flags cleared after flush")
	}
	if cx.Pass(cx.View(viewID).PassID).PaintDirty {
		t.Error("expected the pass paint flag cleared after flush")
	}

	if again := cx.Flush(); len(again) != 0 {
		t.Errorf("expected nothing to flush on a clean context, got %d writes", len(again))
	}
}

func TestBumpLiveGeneration(t *testing.T) {
	cx := NewContext()
	before := cx.LiveGeneration()
	after := cx.BumpLiveGeneration()
	if after != before+1 || cx.LiveGeneration() != after {
		t.Errorf("expected the live generation to advance from %d, got %d", before, after)
	}
}
