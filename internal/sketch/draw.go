package sketch

import (
	"log/slog"

	"cubesketch/internal/layer"
)

// Layer records freehand strokes with a linear undo/redo history.
type Layer struct {
	layer.Base

	strokes  []*Stroke
	undone   []*Stroke
	current  *Stroke
	post     PostProcessor
	disabled bool
	color    string
	width    float64
}

var _ layer.Layer = (*Layer)(nil)

// New returns a sketch layer using DefaultColor and DefaultWidth.
func New() *Layer {
	return &Layer{color: DefaultColor, width: DefaultWidth}
}

// SetStyle changes the colour and width of strokes started afterwards.
func (l *Layer) SetStyle(color string, width float64) {
	l.color, l.width = color, width
}

// SetPostProcessor installs pp to run once on every finished stroke. nil
// removes it.
func (l *Layer) SetPostProcessor(pp PostProcessor) { l.post = pp }

// AllowDrawing enables or disables starting new strokes.
func (l *Layer) AllowDrawing(enabled bool) { l.disabled = !enabled }

// DrawingAllowed reports whether new strokes may start.
func (l *Layer) DrawingAllowed() bool { return !l.disabled }

func (l *Layer) PointerDown(e *layer.PointerEvent) {
	p, ok := l.Centered(e.ClientX, e.ClientY)
	if !ok {
		slog.Warn("sketch layer has no surface; ignoring pointer")
		return
	}
	if l.disabled || e.Button != layer.ButtonPrimary {
		return
	}
	l.current = &Stroke{Color: l.color, Width: l.width}
	clear(l.undone)
	l.undone = l.undone[:0]
	l.current.Points = append(l.current.Points, p)
}

func (l *Layer) PointerMove(e *layer.PointerEvent) bool {
	if l.current == nil {
		return false
	}
	p, ok := l.Centered(e.ClientX, e.ClientY)
	if !ok {
		return false
	}
	l.current.Points = append(l.current.Points, p)
	return true
}

func (l *Layer) PointerUp(*layer.PointerEvent) {
	if l.current == nil {
		return
	}
	s := l.current
	l.current = nil
	if l.post != nil {
		s = l.post(s)
	}
	if !s.Empty() {
		l.strokes = append(l.strokes, s)
	}
}

// AppendStroke commits s directly, bypassing the post-processor.
func (l *Layer) AppendStroke(s *Stroke) {
	l.strokes = append(l.strokes, s)
}

// Undo moves the newest committed stroke to the redo stack. The caller is
// responsible for requesting a redraw.
func (l *Layer) Undo() {
	n := len(l.strokes)
	if n == 0 {
		return
	}
	s := l.strokes[n-1]
	l.strokes[n-1] = nil
	l.strokes = l.strokes[:n-1]
	l.undone = append(l.undone, s)
}

// Redo moves the newest undone stroke back to the committed stack.
func (l *Layer) Redo() {
	n := len(l.undone)
	if n == 0 {
		return
	}
	s := l.undone[n-1]
	l.undone[n-1] = nil
	l.undone = l.undone[:n-1]
	l.strokes = append(l.strokes, s)
}

// Clear drops all committed and undone strokes.
func (l *Layer) Clear() {
	l.strokes = nil
	l.undone = nil
}

// Strokes returns the committed strokes, oldest first.
func (l *Layer) Strokes() []*Stroke { return append([]*Stroke(nil), l.strokes...) }

// Undone returns the redo stack, oldest first.
func (l *Layer) Undone() []*Stroke { return append([]*Stroke(nil), l.undone...) }

// Current returns the stroke being drawn, or nil.
func (l *Layer) Current() *Stroke { return l.current }

// Draw renders committed strokes and then the stroke in progress.
func (l *Layer) Draw(ctx layer.Context) {
	if !l.Attached() {
		return
	}
	for _, s := range l.strokes {
		l.drawStroke(ctx, s)
	}
	if l.current != nil {
		l.drawStroke(ctx, l.current)
	}
}

func (l *Layer) drawStroke(ctx layer.Context, s *Stroke) {
	c := l.Viewport().Center()
	ctx.SetStrokeStyle(s.Color)
	ctx.SetLineWidth(s.Width)
	ctx.BeginPath()
	for i, p := range s.Points {
		if i == 0 {
			ctx.MoveTo(p.X+c.X, p.Y+c.Y)
		} else {
			ctx.LineTo(p.X+c.X, p.Y+c.Y)
		}
	}
	ctx.Stroke()
}
