// package area provides the generation-stamped logical handle into GPU-resident
// per-instance and per-view float storage. An Area survives the redraw cycles
// that rebuild and relocate the storage it targets: validity is re-checked
// lazily on every access by comparing the handle's stamped generation against
// the referenced view's live generation, and every accessor degrades to a
// default value or a no-op when the handle is stale or the property absent.
// Nothing here ever fails loudly; transient staleness during rebuild is the
// expected state, not an error.
package area

import (
	logxi "github.com/mgutz/logxi/v1"

	"github.com/Carmen-Shannon/lumo-go/common"
	"github.com/Carmen-Shannon/lumo-go/engine/context"
)

var logger = logxi.New("lumo.area")

// Kind is the closed variant tag of an Area.
type Kind uint8

const (
	// KindEmpty is the zero Area; it addresses nothing and is never valid.
	KindEmpty Kind = iota

	// KindAll is the wildcard Area used for broadcast redraw requests; like
	// Empty it addresses no storage and is never valid.
	KindAll

	// KindInstance addresses a contiguous range of instances inside one draw
	// call of one view.
	KindInstance

	// KindView addresses a view's own geometry (rect and scroll state).
	KindView
)

// InstanceArea identifies a contiguous instance range inside a draw call,
// stamped with the generation of the view at the time the range was emitted.
type InstanceArea struct {
	ViewID         int
	DrawCallID     int
	InstanceOffset int
	InstanceCount  int
	Generation     uint64
}

// ViewArea identifies a view, stamped with its generation.
type ViewArea struct {
	ViewID     int
	Generation uint64
}

// Area is the generation-checked logical handle. It is a small comparable
// value: areas are copied freely and used as map keys by the playing-animation
// registry. The zero Area is Empty.
type Area struct {
	kind     Kind
	instance InstanceArea
	view     ViewArea
}

// Empty returns the empty Area.
func Empty() Area {
	return Area{}
}

// All returns the wildcard Area.
func All() Area {
	return Area{kind: KindAll}
}

// FromInstance wraps an InstanceArea into an Area.
//
// Parameters:
//   - inst: the instance range to address
//
// Returns:
//   - Area: the instance-kind handle
func FromInstance(inst InstanceArea) Area {
	return Area{kind: KindInstance, instance: inst}
}

// FromView wraps a ViewArea into an Area.
//
// Parameters:
//   - view: the view to address
//
// Returns:
//   - Area: the view-kind handle
func FromView(view ViewArea) Area {
	return Area{kind: KindView, view: view}
}

// Kind returns the variant tag.
func (a Area) Kind() Kind {
	return a.kind
}

// IsEmpty reports whether the Area is the empty variant.
func (a Area) IsEmpty() bool {
	return a.kind == KindEmpty
}

// Instance returns the instance payload.
//
// Returns:
//   - InstanceArea: the payload, zero unless the Area is instance-kind
//   - bool: true when the Area is instance-kind
func (a Area) Instance() (InstanceArea, bool) {
	return a.instance, a.kind == KindInstance
}

// View returns the view payload.
//
// Returns:
//   - ViewArea: the payload, zero unless the Area is view-kind
//   - bool: true when the Area is view-kind
func (a Area) View() (ViewArea, bool) {
	return a.view, a.kind == KindView
}

// IsValid reports whether the handle still addresses live storage: the
// referenced view must exist and its generation must equal the stamp. Empty
// and All are never valid, as is an instance handle spanning zero instances.
//
// Parameters:
//   - cx: the render context
//
// Returns:
//   - bool: true when every access through the handle will resolve
func (a Area) IsValid(cx context.Context) bool {
	switch a.kind {
	case KindInstance:
		if a.instance.InstanceCount == 0 {
			return false
		}
		view := cx.View(a.instance.ViewID)
		return view != nil && view.Generation == a.instance.Generation
	case KindView:
		view := cx.View(a.view.ViewID)
		return view != nil && view.Generation == a.view.Generation
	default:
		return false
	}
}

// LocalScrollPos returns the referenced view's own unsnapped scroll position,
// or a zero vector when the handle is stale.
//
// Parameters:
//   - cx: the render context
//
// Returns:
//   - common.Vec2: the local scroll position
func (a Area) LocalScrollPos(cx context.Context) common.Vec2 {
	switch a.kind {
	case KindInstance:
		view := cx.View(a.instance.ViewID)
		if view == nil || view.Generation != a.instance.Generation {
			return common.Vec2{}
		}
		return view.UnsnappedScroll
	case KindView:
		view := cx.View(a.view.ViewID)
		if view == nil {
			return common.Vec2{}
		}
		return view.UnsnappedScroll
	default:
		return common.Vec2{}
	}
}

// ScrollPos returns the scroll offset applied to the storage the handle
// addresses: the draw call's scroll for instance handles, the parent scroll
// for view handles. Zero when stale.
//
// Parameters:
//   - cx: the render context
//
// Returns:
//   - common.Vec2: the scroll offset
func (a Area) ScrollPos(cx context.Context) common.Vec2 {
	switch a.kind {
	case KindInstance:
		view := cx.View(a.instance.ViewID)
		if view == nil || view.Generation != a.instance.Generation {
			return common.Vec2{}
		}
		dc := cx.DrawCall(a.instance.ViewID, a.instance.DrawCallID)
		if dc == nil {
			return common.Vec2{}
		}
		return dc.DrawScroll
	case KindView:
		view := cx.View(a.view.ViewID)
		if view == nil {
			return common.Vec2{}
		}
		return view.ParentScroll
	default:
		return common.Vec2{}
	}
}

// Rect returns the final screen rectangle of the storage the handle addresses.
// For instance handles the rectangle is patched together from the shader's
// rect instance properties (x, y, w, h) of the first spanned instance; any
// missing rect property, a stale handle, or a zero-span handle yields a zero
// rectangle.
//
// Parameters:
//   - cx: the render context
//
// Returns:
//   - common.Rect: the screen rectangle, zero when unresolvable
func (a Area) Rect(cx context.Context) common.Rect {
	switch a.kind {
	case KindInstance:
		if a.instance.InstanceCount == 0 {
			logger.Debug("Rect called on a zero-span instance area, handle was never finalized")
			return common.Rect{}
		}
		view := cx.View(a.instance.ViewID)
		if view == nil || view.Generation != a.instance.Generation {
			return common.Rect{}
		}
		dc := cx.DrawCall(a.instance.ViewID, a.instance.DrawCallID)
		if dc == nil {
			return common.Rect{}
		}
		s := cx.Shader(dc.ShaderKey)
		if s == nil {
			return common.Rect{}
		}
		rect := s.Mapping().Rect
		if rect.X < 0 || rect.Y < 0 || rect.W < 0 || rect.H < 0 {
			return common.Rect{}
		}
		base := a.instance.InstanceOffset
		if base+rect.H >= len(dc.Instance) {
			return common.Rect{}
		}
		return dc.ClipAndScroll(
			dc.Instance[base+rect.X],
			dc.Instance[base+rect.Y],
			dc.Instance[base+rect.W],
			dc.Instance[base+rect.H],
		)
	case KindView:
		view := cx.View(a.view.ViewID)
		if view == nil {
			return common.Rect{}
		}
		return common.Rect{
			X: view.Rect.X - view.ParentScroll.X,
			Y: view.Rect.Y - view.ParentScroll.Y,
			W: view.Rect.W,
			H: view.Rect.H,
		}
	default:
		return common.Rect{}
	}
}

// SetRect writes a rectangle through the handle: into the shader's rect
// instance properties for instance handles, into the view's rect for view
// handles. Stale handles are a logged no-op.
//
// Parameters:
//   - cx: the render context
//   - rect: the rectangle to store
func (a Area) SetRect(cx context.Context, rect common.Rect) {
	switch a.kind {
	case KindInstance:
		view := cx.View(a.instance.ViewID)
		if view == nil || view.Generation != a.instance.Generation {
			logger.Debug("SetRect called on a stale area, redraw pass should re-emit before writing")
			return
		}
		dc := cx.DrawCall(a.instance.ViewID, a.instance.DrawCallID)
		if dc == nil {
			return
		}
		s := cx.Shader(dc.ShaderKey)
		if s == nil {
			return
		}
		props := s.Mapping().Rect
		base := a.instance.InstanceOffset
		set := func(offset int, v float32) {
			if offset >= 0 && base+offset < len(dc.Instance) {
				dc.Instance[base+offset] = v
			}
		}
		set(props.X, rect.X)
		set(props.Y, rect.Y)
		set(props.W, rect.W)
		set(props.H, rect.H)
		cx.MarkInstanceDirty(a.instance.ViewID, a.instance.DrawCallID)
	case KindView:
		view := cx.View(a.view.ViewID)
		if view != nil {
			view.Rect = rect
		}
	}
}

// AbsToRel converts an absolute point into the handle's local coordinate
// space. Stale or storage-less handles return the point unchanged.
//
// Parameters:
//   - cx: the render context
//   - abs: the absolute point
//
// Returns:
//   - common.Vec2: the point relative to the handle's origin
func (a Area) AbsToRel(cx context.Context, abs common.Vec2) common.Vec2 {
	switch a.kind {
	case KindInstance:
		if a.instance.InstanceCount == 0 {
			return abs
		}
		view := cx.View(a.instance.ViewID)
		if view == nil || view.Generation != a.instance.Generation {
			return abs
		}
		dc := cx.DrawCall(a.instance.ViewID, a.instance.DrawCallID)
		if dc == nil {
			return abs
		}
		s := cx.Shader(dc.ShaderKey)
		if s == nil {
			return abs
		}
		rect := s.Mapping().Rect
		if rect.X < 0 || rect.Y < 0 {
			return abs
		}
		base := a.instance.InstanceOffset
		if base+rect.Y >= len(dc.Instance) {
			return abs
		}
		return common.Vec2{
			X: abs.X - dc.Instance[base+rect.X] + dc.DrawScroll.X,
			Y: abs.Y - dc.Instance[base+rect.Y] + dc.DrawScroll.Y,
		}
	case KindView:
		view := cx.View(a.view.ViewID)
		if view == nil {
			return abs
		}
		return common.Vec2{
			X: abs.X - view.Rect.X + view.ParentScroll.X + view.UnsnappedScroll.X,
			Y: abs.Y - view.Rect.Y - view.ParentScroll.Y + view.UnsnappedScroll.Y,
		}
	default:
		return abs
	}
}
