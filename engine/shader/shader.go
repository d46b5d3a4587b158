package shader

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// shader is the implementation of the Shader interface.
type shader struct {
	key     string
	source  string
	mapping *Mapping
}

// Shader is a parsed, annotated WGSL shader: the source string plus the
// resolved property Mapping. The Shader performs no compilation; it only
// supplies the metadata draw calls and typed accessors resolve against.
type Shader interface {
	// Key returns the registry key this shader is looked up by.
	//
	// Returns:
	//   - string: the shader key
	Key() string

	// Source returns the raw WGSL source, annotations included.
	//
	// Returns:
	//   - string: the WGSL source
	Source() string

	// Mapping returns the resolved property mapping. The mapping is immutable;
	// callers must not modify it.
	//
	// Returns:
	//   - *Mapping: the property mapping
	Mapping() *Mapping

	// InstanceVertexLayout returns the per-instance vertex buffer layout derived
	// from the annotated instance struct, for binding the instance buffer.
	//
	// Parameters:
	//   - firstLocation: the shader location of the first instance attribute
	//
	// Returns:
	//   - wgpu.VertexBufferLayout: the instance-stepped layout
	InstanceVertexLayout(firstLocation int) wgpu.VertexBufferLayout
}

var _ Shader = &shader{}

// NewShader parses annotated WGSL source into a Shader. The source must carry
// exactly one //@lumo:instance annotation naming a struct declared in the
// source; //@lumo:uniform and //@lumo:texture annotations are optional.
//
// Parameters:
//   - key: the registry key the shader will be looked up by
//   - source: the raw WGSL source
//
// Returns:
//   - Shader: the parsed shader
//   - error: an error describing the first annotation or layout problem
func NewShader(key, source string) (Shader, error) {
	mapping, err := parseSource(source)
	if err != nil {
		return nil, fmt.Errorf("shader %q: %w", key, err)
	}
	return &shader{
		key:     key,
		source:  source,
		mapping: mapping,
	}, nil
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) Mapping() *Mapping {
	return s.mapping
}

func (s *shader) InstanceVertexLayout(firstLocation int) wgpu.VertexBufferLayout {
	return buildVertexLayout(s.mapping.Instance, s.mapping.TotalSlots, firstLocation)
}

// parseSource runs the metadata pass: annotations first (they live in
// comments), then struct extraction over the comment-stripped source.
func parseSource(source string) (*Mapping, error) {
	anns, err := parseAnnotations(source)
	if err != nil {
		return nil, err
	}

	structs := parseStructBlocks(stripComments(source))
	byName := make(map[string]parsedStruct, len(structs))
	for _, ps := range structs {
		byName[ps.name] = ps
	}

	m := &Mapping{}
	instanceStruct := ""
	for _, ann := range anns {
		switch ann.Type {
		case AnnotationTypeInstance:
			if instanceStruct != "" {
				return nil, fmt.Errorf("line %d: duplicate @lumo instance annotation", ann.Line)
			}
			ps, ok := byName[ann.Name]
			if !ok {
				return nil, fmt.Errorf("line %d: @lumo instance annotation names unknown struct %q", ann.Line, ann.Name)
			}
			props, slots, err := buildProps(ps)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", ann.Line, err)
			}
			m.Instance = props
			m.TotalSlots = slots
			instanceStruct = ann.Name
		case AnnotationTypeUniform:
			if m.Uniforms != nil {
				return nil, fmt.Errorf("line %d: duplicate @lumo uniform annotation", ann.Line)
			}
			ps, ok := byName[ann.Name]
			if !ok {
				return nil, fmt.Errorf("line %d: @lumo uniform annotation names unknown struct %q", ann.Line, ann.Name)
			}
			props, slots, err := buildProps(ps)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", ann.Line, err)
			}
			m.Uniforms = props
			m.UniformSlots = slots
		case AnnotationTypeTexture:
			m.Textures = append(m.Textures, TextureSlot{
				Name: ann.Name,
				ID:   Bind(ann.Name),
				Slot: ann.Slot,
			})
		}
	}

	if instanceStruct == "" {
		return nil, fmt.Errorf("source has no @lumo instance annotation")
	}

	m.buildIndexes(instanceStruct)
	return m, nil
}
