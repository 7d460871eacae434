package layer

// Canvas is a surface that can also be drawn on and resized. The compositor
// owns it; layers only see it through Surface and Context.
type Canvas interface {
	Surface
	Context
	Resize(width, height int)
}

// Compositor stacks layers on one canvas. Layers are dispatched in
// registration order: the first registered is drawn first (bottom) and
// receives input first. Every layer receives every event.
type Compositor struct {
	canvas Canvas
	layers []Layer
	dirty  bool
}

// NewCompositor returns a compositor drawing into canvas. canvas may be nil
// and attached later with SetCanvas.
func NewCompositor(canvas Canvas) *Compositor {
	return &Compositor{canvas: canvas, dirty: true}
}

// Add registers layers on top of the existing stack and binds them to the
// canvas if one is set.
func (c *Compositor) Add(layers ...Layer) {
	for _, l := range layers {
		if c.canvas != nil {
			l.Attach(c.canvas)
		}
		c.layers = append(c.layers, l)
	}
	c.dirty = true
}

// Layers returns the registered layers bottom to top.
func (c *Compositor) Layers() []Layer {
	return append([]Layer(nil), c.layers...)
}

// SetCanvas replaces the backing canvas and rebinds every layer.
func (c *Compositor) SetCanvas(canvas Canvas) {
	c.canvas = canvas
	for _, l := range c.layers {
		l.Attach(canvas)
	}
	c.dirty = true
}

// Canvas returns the backing canvas, or nil.
func (c *Compositor) Canvas() Canvas { return c.canvas }

// Invalidate requests a redraw on the next Render.
func (c *Compositor) Invalidate() { c.dirty = true }

// Dirty reports whether a redraw is pending.
func (c *Compositor) Dirty() bool { return c.dirty }

func (c *Compositor) PointerDown(e *PointerEvent) {
	for _, l := range c.layers {
		l.PointerDown(e)
	}
	c.dirty = true
}

// PointerMove returns true when at least one layer asked for a redraw.
func (c *Compositor) PointerMove(e *PointerEvent) bool {
	redraw := false
	for _, l := range c.layers {
		if l.PointerMove(e) {
			redraw = true
		}
	}
	if redraw {
		c.dirty = true
	}
	return redraw
}

func (c *Compositor) PointerUp(e *PointerEvent) {
	for _, l := range c.layers {
		l.PointerUp(e)
	}
	c.dirty = true
}

func (c *Compositor) Wheel(e *WheelEvent) {
	for _, l := range c.layers {
		l.Wheel(e)
	}
	c.dirty = true
}

// ContextMenu reports whether the host menu should be suppressed.
func (c *Compositor) ContextMenu(e *ContextMenuEvent) bool {
	for _, l := range c.layers {
		l.ContextMenu(e)
	}
	return e.DefaultPrevented()
}

// Resize resizes the canvas and then notifies every layer.
func (c *Compositor) Resize(width, height int) {
	if c.canvas != nil {
		c.canvas.Resize(width, height)
	}
	for _, l := range c.layers {
		l.Resize(width, height)
	}
	c.dirty = true
}

// Render clears the canvas and draws every layer bottom to top. It does
// nothing without a canvas.
func (c *Compositor) Render() {
	if c.canvas == nil {
		return
	}
	c.canvas.ClearRect(0, 0, float64(c.canvas.Width()), float64(c.canvas.Height()))
	for _, l := range c.layers {
		l.Draw(c.canvas)
	}
	c.dirty = false
}
