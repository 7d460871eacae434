// Package layer defines the contract shared by every interactive drawing
// surface and the compositor that stacks them onto one canvas.
package layer

import "cubesketch/internal/math3d"

// Context is the immediate-mode 2D drawing API handed to Layer.Draw.
type Context interface {
	ClearRect(x, y, w, h float64)
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	// Ellipse appends an elliptical arc centred on (x, y). Angles are radians.
	Ellipse(x, y, radiusX, radiusY, rotation, startAngle, endAngle float64)
	SetStrokeStyle(style string)
	SetLineWidth(w float64)
	Stroke()
}

// Surface is the backing drawable a layer is bound to. It is owned and
// sized by the compositor.
type Surface interface {
	Width() int
	Height() int
	// ClientOrigin is the top-left of the surface in client (pointer)
	// coordinates.
	ClientOrigin() math3d.Vec2
}

// Layer is implemented by every interactive surface. Embed Base to get
// no-op defaults.
type Layer interface {
	PointerDown(e *PointerEvent)
	// PointerMove reports whether the layer needs a redraw.
	PointerMove(e *PointerEvent) bool
	PointerUp(e *PointerEvent)
	Wheel(e *WheelEvent)
	ContextMenu(e *ContextMenuEvent)
	Draw(ctx Context)
	Resize(width, height int)
	Attach(s Surface)
}

// Base implements Layer with no-ops and remembers the attached surface.
type Base struct {
	surface Surface
}

var _ Layer = (*Base)(nil)

func (b *Base) PointerDown(*PointerEvent)      {}
func (b *Base) PointerMove(*PointerEvent) bool { return false }
func (b *Base) PointerUp(*PointerEvent)        {}
func (b *Base) Wheel(*WheelEvent)              {}
func (b *Base) ContextMenu(*ContextMenuEvent)  {}
func (b *Base) Draw(Context)                   {}
func (b *Base) Resize(int, int)                {}

// Attach binds the layer to s.
func (b *Base) Attach(s Surface) { b.surface = s }

// Surface returns the attached surface, or nil.
func (b *Base) Surface() Surface { return b.surface }

// Attached reports whether a surface has been bound.
func (b *Base) Attached() bool { return b.surface != nil }

// Viewport returns the attached surface size; zero when detached.
func (b *Base) Viewport() math3d.Viewport {
	if b.surface == nil {
		return math3d.Viewport{}
	}
	return math3d.Viewport{Width: float64(b.surface.Width()), Height: float64(b.surface.Height())}
}

// Centered converts client coordinates to coordinates relative to the
// surface centre. ok is false when no surface is attached.
func (b *Base) Centered(clientX, clientY float64) (p math3d.Vec2, ok bool) {
	if b.surface == nil {
		return math3d.Vec2{}, false
	}
	o := b.surface.ClientOrigin()
	return math3d.Vec2{
		X: (clientX - o.X) - float64(b.surface.Width())/2,
		Y: (clientY - o.Y) - float64(b.surface.Height())/2,
	}, true
}
