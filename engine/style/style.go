// package style loads animation definitions from YAML style sheets and turns
// them into playable Anim descriptors. Sheets are the declarative surface for
// designers; the animator package never sees YAML, only the built descriptors.
//
// A sheet document looks like:
//
//	anims:
//	  hover_in:
//	    duration: 0.25
//	    policy: cut
//	    tracks:
//	      - bind: quad.color
//	        kind: color
//	        ease: out_quad
//	        keys:
//	          - time: 0.0
//	            value: "#1e1e1e"
//	          - time: 1.0
//	            value: "#3a78ff"
package style

import (
	"os"
	"sort"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"
	"gopkg.in/yaml.v3"

	"github.com/Carmen-Shannon/lumo-go/common"
	"github.com/Carmen-Shannon/lumo-go/engine/animator"
	"github.com/Carmen-Shannon/lumo-go/engine/shader"
)

// Sheet is a parsed style sheet holding named animation descriptors.
type Sheet interface {
	// Anim returns the named animation descriptor. Each call returns a fresh
	// copy so callers can play it without sharing track state.
	//
	// Parameters:
	//   - name: the animation's key in the sheet
	//
	// Returns:
	//   - *animator.Anim: the descriptor
	//   - bool: false when the sheet has no animation under that name
	Anim(name string) (*animator.Anim, bool)

	// Names returns the sheet's animation names in sorted order.
	Names() []string
}

type sheet struct {
	anims map[string]*animator.Anim
}

var _ Sheet = &sheet{}

type sheetSpec struct {
	Anims map[string]animSpec `yaml:"anims"`
}

type animSpec struct {
	Duration float64     `yaml:"duration"`
	Policy   string      `yaml:"policy"`
	Terminal bool        `yaml:"terminal"`
	Tracks   []trackSpec `yaml:"tracks"`
}

type trackSpec struct {
	Bind    string    `yaml:"bind"`
	Kind    string    `yaml:"kind"`
	Ease    easeSpec  `yaml:"ease"`
	CutInit bool      `yaml:"cut_init"`
	Keys    []keySpec `yaml:"keys"`
}

// easeSpec decodes either a bare name ("out_quad") or a parameterized map
// ({name: pow, begin: 1.2, end: 0.8}).
type easeSpec struct {
	Name  string
	Begin float64
	End   float64
	Cx1   float64
	Cy1   float64
	Cx2   float64
	Cy2   float64
}

func (e *easeSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&e.Name)
	}
	var params struct {
		Name  string  `yaml:"name"`
		Begin float64 `yaml:"begin"`
		End   float64 `yaml:"end"`
		Cx1   float64 `yaml:"cx1"`
		Cy1   float64 `yaml:"cy1"`
		Cx2   float64 `yaml:"cx2"`
		Cy2   float64 `yaml:"cy2"`
	}
	if errGo := node.Decode(&params); errGo != nil {
		return errGo
	}
	*e = easeSpec(params)
	return nil
}

type keySpec struct {
	Time  float64   `yaml:"time"`
	Value yaml.Node `yaml:"value"`
}

// Load reads and parses one YAML style sheet from disk.
//
// Parameters:
//   - path: the sheet file to read
//
// Returns:
//   - Sheet: the parsed sheet
//   - errors.Error: nil on success
func Load(path string) (Sheet, errors.Error) {
	data, errGo := os.ReadFile(path)
	if errGo != nil {
		return nil, errors.Wrap(errGo).With("file", path).With("stack", stack.Trace().TrimRuntime())
	}
	s, err := Parse(data)
	if err != nil {
		return nil, err.With("file", path)
	}
	return s, nil
}

// Parse builds a sheet from raw YAML.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - Sheet: the parsed sheet
//   - errors.Error: nil on success
func Parse(data []byte) (Sheet, errors.Error) {
	spec := sheetSpec{}
	if errGo := yaml.Unmarshal(data, &spec); errGo != nil {
		return nil, errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
	}
	s := &sheet{anims: make(map[string]*animator.Anim, len(spec.Anims))}
	for name, as := range spec.Anims {
		anim, err := buildAnim(as)
		if err != nil {
			return nil, err.With("anim", name)
		}
		s.anims[name] = anim
	}
	return s, nil
}

func (s *sheet) Anim(name string) (*animator.Anim, bool) {
	src, ok := s.anims[name]
	if !ok {
		return nil, false
	}
	cp := &animator.Anim{
		Play:   src.Play,
		Tracks: make([]animator.Track, len(src.Tracks)),
	}
	copy(cp.Tracks, src.Tracks)
	return cp, true
}

func (s *sheet) Names() []string {
	names := make([]string, 0, len(s.anims))
	for name := range s.anims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func buildAnim(as animSpec) (*animator.Anim, errors.Error) {
	anim := &animator.Anim{
		Play: animator.Play{
			Duration: as.Duration,
			Terminal: as.Terminal,
		},
	}
	switch as.Policy {
	case "", "cut":
		anim.Play.Policy = animator.PolicyCut
	case "chain":
		anim.Play.Policy = animator.PolicyChain
	default:
		return nil, errors.New("unknown play policy").With("policy", as.Policy).With("stack", stack.Trace().TrimRuntime())
	}
	for _, ts := range as.Tracks {
		track, err := buildTrack(ts)
		if err != nil {
			return nil, err.With("bind", ts.Bind)
		}
		anim.Tracks = append(anim.Tracks, track)
	}
	return anim, nil
}

func buildTrack(ts trackSpec) (animator.Track, errors.Error) {
	ease, err := buildEase(ts.Ease)
	if err != nil {
		return nil, err
	}
	bind := shader.Bind(ts.Bind)
	switch ts.Kind {
	case "float":
		track := &animator.FloatTrack{Bind: bind, Ease: ease, CutInit: ts.CutInit}
		for _, ks := range ts.Keys {
			var v float32
			if errGo := ks.Value.Decode(&v); errGo != nil {
				return nil, errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
			}
			track.Keys = append(track.Keys, animator.Key[float32]{Time: ks.Time, Value: v})
		}
		return track, nil
	case "vec2":
		track := &animator.Vec2Track{Bind: bind, Ease: ease, CutInit: ts.CutInit}
		for _, ks := range ts.Keys {
			v, errGo := decodeComponents(ks.Value, 2)
			if errGo != nil {
				return nil, errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
			}
			track.Keys = append(track.Keys, animator.Key[common.Vec2]{Time: ks.Time, Value: common.Vec2{X: v[0], Y: v[1]}})
		}
		return track, nil
	case "vec3":
		track := &animator.Vec3Track{Bind: bind, Ease: ease, CutInit: ts.CutInit}
		for _, ks := range ts.Keys {
			v, errGo := decodeComponents(ks.Value, 3)
			if errGo != nil {
				return nil, errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
			}
			track.Keys = append(track.Keys, animator.Key[common.Vec3]{Time: ks.Time, Value: common.Vec3{X: v[0], Y: v[1], Z: v[2]}})
		}
		return track, nil
	case "vec4":
		track := &animator.Vec4Track{Bind: bind, Ease: ease, CutInit: ts.CutInit}
		for _, ks := range ts.Keys {
			v, errGo := decodeComponents(ks.Value, 4)
			if errGo != nil {
				return nil, errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
			}
			track.Keys = append(track.Keys, animator.Key[common.Vec4]{Time: ks.Time, Value: common.Vec4{X: v[0], Y: v[1], Z: v[2], W: v[3]}})
		}
		return track, nil
	case "color":
		track := &animator.ColorTrack{Bind: bind, Ease: ease, CutInit: ts.CutInit}
		for _, ks := range ts.Keys {
			c, err := decodeColor(ks.Value)
			if err != nil {
				return nil, err
			}
			track.Keys = append(track.Keys, animator.Key[common.Color]{Time: ks.Time, Value: c})
		}
		return track, nil
	default:
		return nil, errors.New("unknown track kind").With("kind", ts.Kind).With("stack", stack.Trace().TrimRuntime())
	}
}

func decodeComponents(node yaml.Node, want int) ([]float32, error) {
	v := []float32{}
	if errGo := node.Decode(&v); errGo != nil {
		return nil, errGo
	}
	if len(v) != want {
		return nil, errors.New("wrong component count").With("want", want).With("got", len(v))
	}
	return v, nil
}

// decodeColor accepts a "#rrggbb" hex string or an SVG 1.1 color name.
func decodeColor(node yaml.Node) (common.Color, errors.Error) {
	var raw string
	if errGo := node.Decode(&raw); errGo != nil {
		return common.Color{}, errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
	}
	if len(raw) > 0 && raw[0] == '#' {
		c, errGo := common.ColorFromHex(raw)
		if errGo != nil {
			return common.Color{}, errors.Wrap(errGo).With("color", raw).With("stack", stack.Trace().TrimRuntime())
		}
		return c, nil
	}
	c, ok := common.ColorFromName(raw)
	if !ok {
		return common.Color{}, errors.New("unknown color name").With("color", raw).With("stack", stack.Trace().TrimRuntime())
	}
	return c, nil
}

func buildEase(es easeSpec) (animator.Ease, errors.Error) {
	switch es.Name {
	case "", "linear":
		return animator.EaseLinear, nil
	case "in_quad":
		return animator.EaseInQuad, nil
	case "out_quad":
		return animator.EaseOutQuad, nil
	case "in_out_quad":
		return animator.EaseInOutQuad, nil
	case "in_cubic":
		return animator.EaseInCubic, nil
	case "out_cubic":
		return animator.EaseOutCubic, nil
	case "in_out_cubic":
		return animator.EaseInOutCubic, nil
	case "pow":
		return animator.EasePow(es.Begin, es.End), nil
	case "bezier":
		return animator.EaseBezier(es.Cx1, es.Cy1, es.Cx2, es.Cy2), nil
	default:
		return nil, errors.New("unknown ease").With("ease", es.Name).With("stack", stack.Trace().TrimRuntime())
	}
}
