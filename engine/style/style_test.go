package style

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/lumo-go/engine/animator"
	"github.com/Carmen-Shannon/lumo-go/engine/shader"
)

const hoverSheet = `
anims:
  hover_in:
    duration: 0.25
    policy: cut
    tracks:
      - bind: Quad.hover
        kind: float
        ease: out_quad
        keys:
          - time: 0.0
            value: 0.0
          - time: 1.0
            value: 1.0
      - bind: Quad.color
        kind: color
        cut_init: true
        keys:
          - time: 0.0
            value: "#1e1e1e"
          - time: 1.0
            value: rebeccapurple
  drop:
    duration: 1.5
    policy: chain
    terminal: true
    tracks:
      - bind: Quad.offset
        kind: vec2
        ease:
          name: pow
          begin: 1.2
          end: 0.8
        keys:
          - time: 1.0
            value: [4.0, 8.0]
`

func TestParseSheet(t *testing.T) {
	s, err := Parse([]byte(hoverSheet))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	names := s.Names()
	if len(names) != 2 || names[0] != "drop" || names[1] != "hover_in" {
		t.Fatalf("unexpected names: %v", names)
	}

	anim, ok := s.Anim("hover_in")
	if !ok {
		t.Fatal("expected hover_in to exist")
	}
	if anim.Play.Duration != 0.25 || anim.Play.Policy != animator.PolicyCut || anim.Play.Terminal {
		t.Errorf("unexpected play descriptor: %+v", anim.Play)
	}
	if len(anim.Tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(anim.Tracks))
	}

	hover, ok := anim.Tracks[0].(*animator.FloatTrack)
	if !ok {
		t.Fatalf("expected a float track, got %T", anim.Tracks[0])
	}
	if hover.Bind != shader.Bind("Quad.hover") {
		t.Error("expected the bind name hashed into the track identity")
	}
	if len(hover.Keys) != 2 || hover.Keys[1].Value != 1.0 {
		t.Errorf("unexpected keys: %+v", hover.Keys)
	}
	// out_quad leads at the midpoint
	if got := hover.Ease(0.5); got <= 0.5 {
		t.Errorf("expected an out_quad ease, got %v at the midpoint", got)
	}

	color, ok := anim.Tracks[1].(*animator.ColorTrack)
	if !ok {
		t.Fatalf("expected a color track, got %T", anim.Tracks[1])
	}
	if !color.CutInit {
		t.Error("expected cut_init carried through")
	}
	if math.Abs(float64(color.Keys[0].Value.R)-float64(0x1e)/255) > 1e-3 {
		t.Errorf("unexpected hex red channel: %v", color.Keys[0].Value.R)
	}
	if color.Keys[1].Value.R == 0 {
		t.Error("expected the named color resolved")
	}
}

func TestParseChainTerminalAndVec2(t *testing.T) {
	s, err := Parse([]byte(hoverSheet))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	anim, ok := s.Anim("drop")
	if !ok {
		t.Fatal("expected drop to exist")
	}
	if anim.Play.Policy != animator.PolicyChain || !anim.Play.Terminal {
		t.Errorf("unexpected play descriptor: %+v", anim.Play)
	}
	track, ok := anim.Tracks[0].(*animator.Vec2Track)
	if !ok {
		t.Fatalf("expected a vec2 track, got %T", anim.Tracks[0])
	}
	if track.Keys[0].Value.X != 4 || track.Keys[0].Value.Y != 8 {
		t.Errorf("unexpected key value: %+v", track.Keys[0].Value)
	}
}

func TestAnimReturnsFreshCopy(t *testing.T) {
	s, err := Parse([]byte(hoverSheet))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a, _ := s.Anim("hover_in")
	b, _ := s.Anim("hover_in")
	a.Tracks[0] = nil
	if b.Tracks[0] == nil {
		t.Error("expected each lookup to return an independent track slice")
	}
}

func TestParseErrors(t *testing.T) {
	bad := []string{
		"anims:\n  a:\n    policy: bounce\n",
		"anims:\n  a:\n    tracks:\n      - bind: x\n        kind: spline\n",
		"anims:\n  a:\n    tracks:\n      - bind: x\n        kind: float\n        ease: warp\n",
		"anims:\n  a:\n    tracks:\n      - bind: x\n        kind: color\n        keys:\n          - time: 0\n            value: notacolor\n",
		"anims:\n  a:\n    tracks:\n      - bind: x\n        kind: vec2\n        keys:\n          - time: 0\n            value: [1, 2, 3]\n",
	}
	for i, doc := range bad {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("document %d: expected a parse error", i)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hover.yaml")
	if err := os.WriteFile(path, []byte(hoverSheet), 0o644); err != nil {
		t.Fatal(err)
	}
	s, errGo := Load(path)
	if errGo != nil {
		t.Fatalf("unexpected error: %v", errGo)
	}
	if _, ok := s.Anim("hover_in"); !ok {
		t.Error("expected the sheet loaded from disk")
	}
	if _, errGo := Load(filepath.Join(dir, "missing.yaml")); errGo == nil {
		t.Error("expected an error for a missing file")
	}
}
