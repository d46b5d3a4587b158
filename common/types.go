// package common contains common types that are used throughout this toolkit. They are not
// interface-wrapped structs, just plain structs that express commonly used data-types.
package common

// Vec2 is a 2-component float vector. Used for positions, scroll offsets, and
// 2D animated shader properties.
type Vec2 struct {
	X, Y float32
}

// Vec3 is a 3-component float vector.
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 is a 4-component float vector.
type Vec4 struct {
	X, Y, Z, W float32
}

// Color is an RGBA color with float components in [0, 1]. Colors occupy four
// float slots in instance storage, the same footprint as a Vec4.
type Color struct {
	R, G, B, A float32
}

// Rect is an axis-aligned rectangle with a top-left origin.
type Rect struct {
	X, Y, W, H float32
}

// Mat4 is a 4x4 matrix stored column-major in a flat array, matching the
// GPU-side mat4x4<f32> layout.
type Mat4 struct {
	V [16]float32
}

// Identity resets the matrix to the identity matrix.
func (m *Mat4) Identity() {
	for i := range m.V {
		m.V[i] = 0
	}
	m.V[0], m.V[5], m.V[10], m.V[15] = 1, 1, 1, 1
}

// Lerp linearly interpolates between v and o by fraction f.
//
// Parameters:
//   - o: the target vector
//   - f: the interpolation fraction, typically in [0, 1]
//
// Returns:
//   - Vec2: the interpolated vector
func (v Vec2) Lerp(o Vec2, f float64) Vec2 {
	return Vec2{
		X: Lerp32(v.X, o.X, f),
		Y: Lerp32(v.Y, o.Y, f),
	}
}

// Lerp linearly interpolates between v and o by fraction f.
func (v Vec3) Lerp(o Vec3, f float64) Vec3 {
	return Vec3{
		X: Lerp32(v.X, o.X, f),
		Y: Lerp32(v.Y, o.Y, f),
		Z: Lerp32(v.Z, o.Z, f),
	}
}

// Lerp linearly interpolates between v and o by fraction f.
func (v Vec4) Lerp(o Vec4, f float64) Vec4 {
	return Vec4{
		X: Lerp32(v.X, o.X, f),
		Y: Lerp32(v.Y, o.Y, f),
		Z: Lerp32(v.Z, o.Z, f),
		W: Lerp32(v.W, o.W, f),
	}
}

// Lerp linearly interpolates each channel between c and o by fraction f.
// Interpolation is per-component in RGBA space; use BlendLab for perceptual
// blending.
func (c Color) Lerp(o Color, f float64) Color {
	return Color{
		R: Lerp32(c.R, o.R, f),
		G: Lerp32(c.G, o.G, f),
		B: Lerp32(c.B, o.B, f),
		A: Lerp32(c.A, o.A, f),
	}
}

// Contains reports whether the point p lies inside the rectangle.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}
