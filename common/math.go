package common

import (
	"unsafe"
)

// Lerp32 linearly interpolates between a and b by fraction f.
//
// Parameters:
//   - a: the start value
//   - b: the end value
//   - f: the interpolation fraction, typically in [0, 1]
//
// Returns:
//   - float32: a + (b-a)*f
func Lerp32(a, b float32, f float64) float32 {
	return a + float32(float64(b-a)*f)
}

// Clamp01 clamps v into the [0, 1] range.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}
