// Package layertest provides a recording Canvas for layer tests.
package layertest

import (
	"fmt"

	"cubesketch/internal/layer"
	"cubesketch/internal/math3d"
)

// Op is one recorded drawing call.
type Op struct {
	Name string
	Args []float64
	Str  string
}

func (o Op) String() string {
	if o.Str != "" {
		return fmt.Sprintf("%s(%q)", o.Name, o.Str)
	}
	return fmt.Sprintf("%s%v", o.Name, o.Args)
}

// Recorder is an in-memory layer.Canvas that records every call.
type Recorder struct {
	W, H   int
	Origin math3d.Vec2
	Ops    []Op
}

var _ layer.Canvas = (*Recorder)(nil)

// New returns a recorder of the given size.
func New(w, h int) *Recorder { return &Recorder{W: w, H: h} }

func (r *Recorder) Width() int                { return r.W }
func (r *Recorder) Height() int               { return r.H }
func (r *Recorder) ClientOrigin() math3d.Vec2 { return r.Origin }
func (r *Recorder) Resize(w, h int)           { r.W, r.H = w, h }

func (r *Recorder) record(name string, args ...float64) {
	r.Ops = append(r.Ops, Op{Name: name, Args: args})
}

func (r *Recorder) ClearRect(x, y, w, h float64) { r.record("ClearRect", x, y, w, h) }
func (r *Recorder) BeginPath()                   { r.record("BeginPath") }
func (r *Recorder) MoveTo(x, y float64)          { r.record("MoveTo", x, y) }
func (r *Recorder) LineTo(x, y float64)          { r.record("LineTo", x, y) }
func (r *Recorder) SetLineWidth(w float64)       { r.record("SetLineWidth", w) }
func (r *Recorder) Stroke()                      { r.record("Stroke") }

func (r *Recorder) Ellipse(x, y, rx, ry, rot, start, end float64) {
	r.record("Ellipse", x, y, rx, ry, rot, start, end)
}

func (r *Recorder) SetStrokeStyle(style string) {
	r.Ops = append(r.Ops, Op{Name: "SetStrokeStyle", Str: style})
}

// Names returns the recorded call names in order.
func (r *Recorder) Names() []string {
	names := make([]string, len(r.Ops))
	for i, op := range r.Ops {
		names[i] = op.Name
	}
	return names
}

// Filter returns the ops with the given name.
func (r *Recorder) Filter(name string) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Name == name {
			out = append(out, op)
		}
	}
	return out
}

// Reset drops the recorded ops.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }
