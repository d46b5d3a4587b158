package shader

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// wgslKindMap maps the WGSL type names accepted in annotated property structs
// to their ValueKind. Properties are float-slot addressed, so only float types
// are animatable.
var wgslKindMap = map[string]ValueKind{
	"f32":         KindFloat,
	"vec2f":       KindVec2,
	"vec2<f32>":   KindVec2,
	"vec3f":       KindVec3,
	"vec3<f32>":   KindVec3,
	"vec4f":       KindVec4,
	"vec4<f32>":   KindVec4,
	"mat4x4f":     KindMat4,
	"mat4x4<f32>": KindMat4,
}

// wgslVertexFormatMap maps property kinds to the wgpu vertex format and byte
// size used when reporting the instance buffer's vertex layout.
var wgslVertexFormatMap = map[ValueKind]struct {
	format wgpu.VertexFormat
	size   uint64
}{
	KindFloat: {wgpu.VertexFormatFloat32, 4},
	KindVec2:  {wgpu.VertexFormatFloat32x2, 8},
	KindVec3:  {wgpu.VertexFormatFloat32x3, 12},
	KindVec4:  {wgpu.VertexFormatFloat32x4, 16},
}

var (
	// structBlockRegex matches struct declarations and captures the name and body
	structBlockRegex = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)

	// fieldRegex matches a struct field line: optional attributes, name, colon, type.
	// The type capture (.+) is greedy to handle parameterized types like vec4<f32>.
	fieldRegex = regexp.MustCompile(`(?:(?:@\w+\([^)]*\)\s*)*)*\s*(\w+)\s*:\s*(.+)`)
)

// parsedField represents a single field extracted from a WGSL struct during parsing
type parsedField struct {
	name     string
	typeName string
}

// parsedStruct represents a WGSL struct block extracted during parsing
type parsedStruct struct {
	name   string
	fields []parsedField
}

// parseAnnotations scans the raw (comment-bearing) source for @lumo: lines.
//
// Parameters:
//   - source: the raw WGSL source
//
// Returns:
//   - []Annotation: all annotations in source order
//   - error: the first malformed annotation encountered
func parseAnnotations(source string) ([]Annotation, error) {
	var anns []Annotation
	for i, line := range strings.Split(source, "\n") {
		ann, err := parseAnnotation(line, i+1)
		if err != nil {
			return nil, err
		}
		if ann != nil {
			anns = append(anns, *ann)
		}
	}
	return anns, nil
}

// parseStructBlocks finds all struct { ... } blocks in the cleaned WGSL source
// and parses their fields.
//
// Parameters:
//   - source: WGSL source with comments already stripped
//
// Returns:
//   - []parsedStruct: all struct blocks found in the source
func parseStructBlocks(source string) []parsedStruct {
	matches := structBlockRegex.FindAllStringSubmatch(source, -1)
	structs := make([]parsedStruct, 0, len(matches))

	for _, match := range matches {
		structs = append(structs, parsedStruct{
			name:   match[1],
			fields: parseStructFields(match[2]),
		})
	}

	return structs
}

// parseStructFields parses the body of a struct block into individual fields,
// tolerating @location / @builtin attributes in front of the field name.
//
// Parameters:
//   - body: the content between { and } of a struct declaration
//
// Returns:
//   - []parsedField: all fields found in the struct body
func parseStructFields(body string) []parsedField {
	lines := splitAtTopLevelCommas(body)
	fields := make([]parsedField, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fm := fieldRegex.FindStringSubmatch(line)
		if fm == nil {
			continue
		}
		fields = append(fields, parsedField{
			name:     fm[1],
			typeName: strings.TrimSpace(fm[2]),
		})
	}

	return fields
}

// buildProps converts a parsed property struct into the qualified Prop list,
// assigning sequential float-slot offsets in declaration order.
//
// Parameters:
//   - ps: the parsed struct
//
// Returns:
//   - []Prop: the properties with offsets assigned
//   - int: the total slot count of the struct
//   - error: an error naming the first field with a non-animatable type
func buildProps(ps parsedStruct) ([]Prop, int, error) {
	props := make([]Prop, 0, len(ps.fields))
	offset := 0
	for _, f := range ps.fields {
		kind, ok := wgslKindMap[f.typeName]
		if !ok {
			return nil, 0, fmt.Errorf("struct %q field %q: type %q is not float-slot addressable", ps.name, f.name, f.typeName)
		}
		name := ps.name + "." + f.name
		props = append(props, Prop{
			Name:   name,
			ID:     Bind(name),
			Kind:   kind,
			Offset: offset,
		})
		offset += kind.Slots()
	}
	return props, offset, nil
}

// buildVertexLayout converts the instance properties into the per-instance
// wgpu vertex buffer layout the renderer binds the instance buffer with.
// Mat4 properties are expanded into four column attributes.
//
// Parameters:
//   - props: the instance properties
//   - totalSlots: the per-instance stride in float slots
//   - firstLocation: the shader location of the first instance attribute
//
// Returns:
//   - wgpu.VertexBufferLayout: the instance-stepped layout
func buildVertexLayout(props []Prop, totalSlots, firstLocation int) wgpu.VertexBufferLayout {
	attrs := make([]wgpu.VertexAttribute, 0, len(props))
	location := firstLocation
	for _, p := range props {
		if p.Kind == KindMat4 {
			for col := 0; col < 4; col++ {
				attrs = append(attrs, wgpu.VertexAttribute{
					Format:         wgpu.VertexFormatFloat32x4,
					Offset:         uint64(p.Offset+col*4) * 4,
					ShaderLocation: uint32(location),
				})
				location++
			}
			continue
		}
		info := wgslVertexFormatMap[p.Kind]
		attrs = append(attrs, wgpu.VertexAttribute{
			Format:         info.format,
			Offset:         uint64(p.Offset) * 4,
			ShaderLocation: uint32(location),
		})
		location++
	}
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(totalSlots) * 4,
		StepMode:    wgpu.VertexStepModeInstance,
		Attributes:  attrs,
	}
}

// stripComments removes line and block comments from WGSL source so they do
// not interfere with struct and field parsing.
func stripComments(source string) string {
	return stripLineComments(stripBlockComments(source))
}

// stripLineComments removes single-line // comments from WGSL source.
func stripLineComments(source string) string {
	var sb strings.Builder
	lines := strings.SplitSeq(source, "\n")
	for line := range lines {
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// stripBlockComments removes block comments (/* ... */) from WGSL source,
// handling nested block comments per the WGSL specification.
func stripBlockComments(source string) string {
	var sb strings.Builder
	sb.Grow(len(source))
	depth := 0
	i := 0
	for i < len(source) {
		if i+1 < len(source) {
			if source[i] == '/' && source[i+1] == '*' {
				depth++
				i += 2
				continue
			}
			if source[i] == '*' && source[i+1] == '/' {
				if depth > 0 {
					depth--
				}
				i += 2
				continue
			}
		}
		if depth == 0 {
			sb.WriteByte(source[i])
		}
		i++
	}
	return sb.String()
}

// splitAtTopLevelCommas splits s on commas that are not nested inside <>
// type parameter lists.
//
// Parameters:
//   - s: the string to split (typically the body of a WGSL struct)
//
// Returns:
//   - []string: substrings between top-level commas
func splitAtTopLevelCommas(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}
