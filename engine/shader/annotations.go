// annotations.go defines the annotation types, argument validation, and parser for
// the Lumo WGSL metadata pass. Annotations are single-line WGSL comments prefixed
// with @lumo: that mark which structs carry per-instance and per-draw-call
// animatable properties and which bindings are addressable texture slots. The
// parsed results drive Mapping construction; the WGSL itself is passed through
// untouched.
package shader

import (
	"fmt"
	"strconv"
	"strings"
)

// annotationPrefix is the marker that identifies a Lumo annotation within a WGSL
// comment line. Every annotation must appear on a line beginning with "//"
// followed by this prefix.
const annotationPrefix = "@lumo:"

// AnnotationType identifies the kind of annotation parsed from a WGSL comment line.
type AnnotationType string

const (
	// AnnotationTypeInstance marks a WGSL struct as the shader's per-instance
	// property layout. Exactly one instance annotation is allowed per shader.
	//
	// Syntax: //@lumo:instance <struct_name>
	//
	// Example: //@lumo:instance quad
	AnnotationTypeInstance AnnotationType = "instance"

	// AnnotationTypeUniform marks a WGSL struct as the shader's per-draw-call
	// user uniform block. At most one uniform annotation is allowed per shader.
	//
	// Syntax: //@lumo:uniform <struct_name>
	//
	// Example: //@lumo:uniform quad_uniforms
	AnnotationTypeUniform AnnotationType = "uniform"

	// AnnotationTypeTexture declares an addressable texture slot. The slot index
	// is the position in the draw call's texture table; the name is hashed into
	// the texture's BindID.
	//
	// Syntax: //@lumo:texture <slot> <name>
	//
	// Example: //@lumo:texture 0 quad.icon
	AnnotationTypeTexture AnnotationType = "texture"
)

// Annotation represents a single parsed @lumo: annotation from a WGSL source line.
type Annotation struct {
	// Type identifies which annotation was parsed (instance, uniform, or texture).
	Type AnnotationType

	// Name is the struct name for instance/uniform annotations, or the texture
	// name for texture annotations.
	Name string

	// Slot is the texture table index for texture annotations. Zero otherwise.
	Slot int

	// Line is the 1-based line number in the WGSL source where this annotation
	// was found. Used for error reporting.
	Line int
}

// parseAnnotation attempts to parse a single line of WGSL source as a @lumo:
// annotation. Returns nil with no error for lines that do not contain the
// annotation prefix, a populated Annotation for valid annotations, or an error
// for lines with the correct prefix but invalid syntax.
//
// Parameters:
//   - line: the raw WGSL source line to parse
//   - lineNum: the 1-based line number for error reporting
//
// Returns:
//   - *Annotation: the parsed annotation, or nil if the line is not an annotation
//   - error: a descriptive error if the annotation is malformed
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	trimmed := strings.TrimSpace(line)
	_, after, ok := strings.Cut(trimmed, annotationPrefix)
	if !ok {
		return nil, nil
	}

	args := strings.Fields(after)
	if len(args) == 0 {
		return nil, fmt.Errorf("line %d: empty @lumo annotation", lineNum)
	}

	switch args[0] {
	case string(AnnotationTypeInstance):
		if len(args) != 2 {
			return nil, fmt.Errorf("line %d: @lumo instance annotation requires exactly one argument (struct name)", lineNum)
		}
		return &Annotation{Type: AnnotationTypeInstance, Name: args[1], Line: lineNum}, nil
	case string(AnnotationTypeUniform):
		if len(args) != 2 {
			return nil, fmt.Errorf("line %d: @lumo uniform annotation requires exactly one argument (struct name)", lineNum)
		}
		return &Annotation{Type: AnnotationTypeUniform, Name: args[1], Line: lineNum}, nil
	case string(AnnotationTypeTexture):
		if len(args) != 3 {
			return nil, fmt.Errorf("line %d: @lumo texture annotation requires exactly two arguments (slot, name)", lineNum)
		}
		slot, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid texture slot %q in @lumo texture annotation: %v", lineNum, args[1], err)
		}
		if slot < 0 {
			return nil, fmt.Errorf("line %d: negative texture slot %d in @lumo texture annotation", lineNum, slot)
		}
		return &Annotation{Type: AnnotationTypeTexture, Name: args[2], Slot: slot, Line: lineNum}, nil
	default:
		return nil, fmt.Errorf("line %d: unknown @lumo annotation type %q", lineNum, args[0])
	}
}
