package context

import "github.com/cogentcore/webgpu/wgpu"

// BufferKind identifies which of a draw call's storages a staged write targets.
type BufferKind int

const (
	// BufferInstance targets the per-instance float buffer.
	BufferInstance BufferKind = iota

	// BufferUniforms targets the user uniform block.
	BufferUniforms
)

// BufferWrite describes a single pending GPU buffer upload produced by Flush.
// Data is an owned copy; the submission layer may upload it at any point in the
// frame. Buffer may be nil when the draw call has no GPU residency yet, in
// which case the submission layer allocates before writing.
type BufferWrite struct {
	Buffer     *wgpu.Buffer
	ViewID     int
	DrawCallID int
	Kind       BufferKind
	Offset     uint64
	Data       []byte
}
