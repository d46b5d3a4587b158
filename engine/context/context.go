// package context owns the retained view/pass/draw-call container: the storage
// that area handles address, the per-view redraw generations that invalidate
// them, the live-definition generation that invalidates cached animation
// definitions, and the staging of dirty CPU storage into GPU buffer writes.
// It submits nothing to the GPU itself.
package context

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"

	"github.com/Carmen-Shannon/lumo-go/common"
	"github.com/Carmen-Shannon/lumo-go/engine/shader"
)

// ctx is the implementation of the Context interface.
type ctx struct {
	passes  []*Pass
	views   []*View
	shaders map[string]shader.Shader

	// redrawCounter backs the per-view redraw generations. Monotonic for the
	// context's lifetime so a stale handle can never collide with a live one.
	redrawCounter uint64

	// liveGeneration is bumped whenever live style definitions change;
	// animators rebuild their cached definitions when they observe a new value.
	liveGeneration uint64

	// flushPool fans the per-draw-call staging work out across reusable
	// workers. Workers persist across frames.
	flushPool    worker.DynamicWorkerPool
	flushWorkers int
}

// Context is the shared render container driven synchronously from one
// render/update pass per frame. All mutation is single-threaded by contract;
// only Flush fans out internally, over disjoint draw calls.
type Context interface {
	// AddPass appends a new pass and returns its id.
	//
	// Returns:
	//   - int: the new pass id
	AddPass() int

	// Pass returns the pass with the given id, or nil when out of range.
	//
	// Parameters:
	//   - id: the pass id
	//
	// Returns:
	//   - *Pass: the pass, or nil
	Pass(id int) *Pass

	// AddView appends a new view under the given pass and returns its id. The
	// view starts at the context's current redraw generation.
	//
	// Parameters:
	//   - passID: the owning pass
	//
	// Returns:
	//   - int: the new view id
	//   - error: an error when the pass does not exist
	AddView(passID int) (int, error)

	// View returns the view with the given id, or nil when out of range.
	//
	// Parameters:
	//   - id: the view id
	//
	// Returns:
	//   - *View: the view, or nil
	View(id int) *View

	// RedrawView begins a redraw cycle for the view: bumps its generation and
	// truncates every draw call's CPU storage so the drawing pass can rebuild
	// it. Handles stamped with the previous generation become stale, never
	// invalid loudly.
	//
	// Parameters:
	//   - id: the view id
	//
	// Returns:
	//   - uint64: the view's new generation, 0 when the view does not exist
	RedrawView(id int) uint64

	// AddDrawCall appends a draw call to the view, sized per the shader's
	// mapping (empty instance buffer, full-size uniform block and texture
	// table).
	//
	// Parameters:
	//   - viewID: the owning view
	//   - shaderKey: the key of a registered shader
	//
	// Returns:
	//   - int: the new draw call id within the view
	//   - error: an error when the view or shader does not exist
	AddDrawCall(viewID int, shaderKey string) (int, error)

	// DrawCall returns a draw call, or nil when either id is out of range.
	//
	// Parameters:
	//   - viewID: the owning view
	//   - drawCallID: the draw call id within the view
	//
	// Returns:
	//   - *DrawCall: the draw call, or nil
	DrawCall(viewID, drawCallID int) *DrawCall

	// RegisterShader makes a parsed shader's mapping available to draw calls
	// and typed accessors under its key. Re-registering a key replaces it.
	//
	// Parameters:
	//   - s: the shader to register
	RegisterShader(s shader.Shader)

	// Shader returns the registered shader for a key, or nil.
	//
	// Parameters:
	//   - key: the shader key
	//
	// Returns:
	//   - shader.Shader: the shader, or nil
	Shader(key string) shader.Shader

	// LiveGeneration returns the current live-definition generation.
	//
	// Returns:
	//   - uint64: the generation
	LiveGeneration() uint64

	// BumpLiveGeneration advances the live-definition generation, signalling
	// animators to rebuild cached definitions on their next Init.
	//
	// Returns:
	//   - uint64: the new generation
	BumpLiveGeneration() uint64

	// MarkInstanceDirty flags a draw call's instance storage and its pass as
	// mutated. No-op when either id is out of range.
	//
	// Parameters:
	//   - viewID: the owning view
	//   - drawCallID: the draw call id within the view
	MarkInstanceDirty(viewID, drawCallID int)

	// MarkUniformsDirty flags a draw call's uniform block and its pass as
	// mutated. No-op when either id is out of range.
	//
	// Parameters:
	//   - viewID: the owning view
	//   - drawCallID: the draw call id within the view
	MarkUniformsDirty(viewID, drawCallID int)

	// Flush drains every dirty draw call into owned BufferWrite records and
	// clears the dirty flags, including pass paint flags. Staging work is
	// fanned out across the context's worker pool; the call returns only when
	// all writes are staged.
	//
	// Returns:
	//   - []BufferWrite: the staged writes, in no particular order
	Flush() []BufferWrite
}

var _ Context = &ctx{}

// NewContext creates a render context with no passes or views.
//
// Parameters:
//   - options: functional options to further configure the context
//
// Returns:
//   - Context: the new context
func NewContext(options ...ContextOption) Context {
	c := &ctx{
		shaders:       make(map[string]shader.Shader),
		redrawCounter: 1,
		liveGeneration: 1,
		flushWorkers:  max(runtime.NumCPU()-1, 1),
	}
	for _, option := range options {
		option(c)
	}
	// Queue size of 256 accommodates typical draw call counts with headroom.
	c.flushPool = worker.NewDynamicWorkerPool(c.flushWorkers, 256, 1*time.Second)
	return c
}

func (c *ctx) AddPass() int {
	c.passes = append(c.passes, &Pass{})
	return len(c.passes) - 1
}

func (c *ctx) Pass(id int) *Pass {
	if id < 0 || id >= len(c.passes) {
		return nil
	}
	return c.passes[id]
}

func (c *ctx) AddView(passID int) (int, error) {
	if c.Pass(passID) == nil {
		return 0, fmt.Errorf("context: AddView: pass %d does not exist", passID)
	}
	c.views = append(c.views, &View{
		PassID:     passID,
		Generation: c.redrawCounter,
	})
	return len(c.views) - 1, nil
}

func (c *ctx) View(id int) *View {
	if id < 0 || id >= len(c.views) {
		return nil
	}
	return c.views[id]
}

func (c *ctx) RedrawView(id int) uint64 {
	view := c.View(id)
	if view == nil {
		return 0
	}
	c.redrawCounter++
	view.Generation = c.redrawCounter
	for _, dc := range view.DrawCalls {
		dc.Instance = dc.Instance[:0]
		dc.InstanceDirty = false
		dc.UniformsDirty = false
	}
	return view.Generation
}

func (c *ctx) AddDrawCall(viewID int, shaderKey string) (int, error) {
	view := c.View(viewID)
	if view == nil {
		return 0, fmt.Errorf("context: AddDrawCall: view %d does not exist", viewID)
	}
	s, ok := c.shaders[shaderKey]
	if !ok {
		return 0, fmt.Errorf("context: AddDrawCall: shader %q is not registered", shaderKey)
	}
	m := s.Mapping()
	textureSlots := 0
	for _, t := range m.Textures {
		if t.Slot+1 > textureSlots {
			textureSlots = t.Slot + 1
		}
	}
	view.DrawCalls = append(view.DrawCalls, &DrawCall{
		ShaderKey:    shaderKey,
		UserUniforms: make([]float32, m.UniformSlots),
		Textures2D:   make([]uint32, textureSlots),
	})
	return len(view.DrawCalls) - 1, nil
}

func (c *ctx) DrawCall(viewID, drawCallID int) *DrawCall {
	view := c.View(viewID)
	if view == nil || drawCallID < 0 || drawCallID >= len(view.DrawCalls) {
		return nil
	}
	return view.DrawCalls[drawCallID]
}

func (c *ctx) RegisterShader(s shader.Shader) {
	c.shaders[s.Key()] = s
}

func (c *ctx) Shader(key string) shader.Shader {
	return c.shaders[key]
}

func (c *ctx) LiveGeneration() uint64 {
	return c.liveGeneration
}

func (c *ctx) BumpLiveGeneration() uint64 {
	c.liveGeneration++
	return c.liveGeneration
}

func (c *ctx) MarkInstanceDirty(viewID, drawCallID int) {
	view := c.View(viewID)
	dc := c.DrawCall(viewID, drawCallID)
	if view == nil || dc == nil {
		return
	}
	dc.InstanceDirty = true
	if pass := c.Pass(view.PassID); pass != nil {
		pass.PaintDirty = true
	}
}

func (c *ctx) MarkUniformsDirty(viewID, drawCallID int) {
	view := c.View(viewID)
	dc := c.DrawCall(viewID, drawCallID)
	if view == nil || dc == nil {
		return
	}
	dc.UniformsDirty = true
	if pass := c.Pass(view.PassID); pass != nil {
		pass.PaintDirty = true
	}
}

func (c *ctx) Flush() []BufferWrite {
	// Parallel CPU staging over disjoint draw calls, mirroring the per-frame
	// prep barrier the render loop runs. A WaitGroup provides the frame
	// barrier since the pool's own Wait blocks until workers idle-exit, which
	// is unsuitable for frame-rate workloads.
	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		writes []BufferWrite
	)
	taskID := 0
	for viewID, view := range c.views {
		for drawCallID, dc := range view.DrawCalls {
			if !dc.InstanceDirty && !dc.UniformsDirty {
				continue
			}
			wg.Add(1)
			vID, dID, dcCap := viewID, drawCallID, dc
			id := taskID
			taskID++
			c.flushPool.SubmitTask(worker.Task{
				ID: id,
				Do: func() (any, error) {
					defer wg.Done()
					local := make([]BufferWrite, 0, 2)
					if dcCap.InstanceDirty && len(dcCap.Instance) > 0 {
						data := make([]byte, len(dcCap.Instance)*4)
						copy(data, common.SliceToBytes(dcCap.Instance))
						local = append(local, BufferWrite{
							Buffer:     dcCap.InstanceBuffer,
							ViewID:     vID,
							DrawCallID: dID,
							Kind:       BufferInstance,
							Data:       data,
						})
					}
					if dcCap.UniformsDirty && len(dcCap.UserUniforms) > 0 {
						data := make([]byte, len(dcCap.UserUniforms)*4)
						copy(data, common.SliceToBytes(dcCap.UserUniforms))
						local = append(local, BufferWrite{
							Buffer:     dcCap.UniformBuffer,
							ViewID:     vID,
							DrawCallID: dID,
							Kind:       BufferUniforms,
							Data:       data,
						})
					}
					dcCap.InstanceDirty = false
					dcCap.UniformsDirty = false
					mu.Lock()
					writes = append(writes, local...)
					mu.Unlock()
					return nil, nil
				},
			})
		}
	}
	wg.Wait()
	for _, pass := range c.passes {
		pass.PaintDirty = false
	}
	return writes
}
