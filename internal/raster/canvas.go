// Package raster is a small software 2D context: paths of straight segments
// and elliptical arcs stroked into an image.RGBA with a DDA line walker.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"math"

	"cubesketch/internal/layer"
	"cubesketch/internal/math3d"
)

// ellipseSegments is the number of chords used for a full ellipse.
const ellipseSegments = 64

type segment struct {
	a, b math3d.Vec2
}

// Canvas implements layer.Canvas over an *image.RGBA.
type Canvas struct {
	img    *image.RGBA
	origin math3d.Vec2

	path    []segment
	cursor  math3d.Vec2
	hasPos  bool
	style   color.NRGBA
	width   float64
	palette map[string]color.NRGBA
}

var _ layer.Canvas = (*Canvas)(nil)

// NewCanvas returns a transparent canvas of the given size.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{
		style:   color.NRGBA{A: 255},
		width:   1,
		palette: make(map[string]color.NRGBA),
	}
	c.Resize(width, height)
	return c
}

// Image returns the backing image. It is replaced on Resize.
func (c *Canvas) Image() *image.RGBA { return c.img }

func (c *Canvas) Width() int  { return c.img.Bounds().Dx() }
func (c *Canvas) Height() int { return c.img.Bounds().Dy() }

// ClientOrigin implements layer.Surface.
func (c *Canvas) ClientOrigin() math3d.Vec2 { return c.origin }

// SetClientOrigin sets where the canvas sits in pointer coordinates.
func (c *Canvas) SetClientOrigin(o math3d.Vec2) { c.origin = o }

// Resize reallocates the backing image. Content is discarded.
func (c *Canvas) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if c.img != nil && c.Width() == width && c.Height() == height {
		return
	}
	c.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

// ClearRect makes the rectangle fully transparent.
func (c *Canvas) ClearRect(x, y, w, h float64) {
	r := image.Rect(int(math.Floor(x)), int(math.Floor(y)), int(math.Ceil(x+w)), int(math.Ceil(y+h)))
	draw.Draw(c.img, r.Intersect(c.img.Bounds()), image.Transparent, image.Point{}, draw.Src)
}

// BeginPath discards the current path.
func (c *Canvas) BeginPath() {
	c.path = c.path[:0]
	c.hasPos = false
}

// MoveTo starts a new sub-path at (x, y).
func (c *Canvas) MoveTo(x, y float64) {
	c.cursor = math3d.V2(x, y)
	c.hasPos = true
}

// LineTo adds a segment from the current point. Without a current point it
// behaves like MoveTo.
func (c *Canvas) LineTo(x, y float64) {
	p := math3d.V2(x, y)
	if c.hasPos {
		c.path = append(c.path, segment{c.cursor, p})
	}
	c.cursor = p
	c.hasPos = true
}

// Ellipse adds an arc from startAngle to endAngle (clockwise in screen
// space), connected to the current point if there is one.
func (c *Canvas) Ellipse(x, y, rx, ry, rotation, startAngle, endAngle float64) {
	sweep := endAngle - startAngle
	n := int(math.Ceil(math.Abs(sweep) / (2 * math.Pi) * ellipseSegments))
	if n < 1 {
		n = 1
	}
	sinR, cosR := math.Sincos(rotation)
	at := func(t float64) (float64, float64) {
		ex, ey := rx*math.Cos(t), ry*math.Sin(t)
		return x + ex*cosR - ey*sinR, y + ex*sinR + ey*cosR
	}
	px, py := at(startAngle)
	c.LineTo(px, py)
	for i := 1; i <= n; i++ {
		px, py = at(startAngle + sweep*float64(i)/float64(n))
		c.LineTo(px, py)
	}
}

// SetStrokeStyle parses style as a CSS colour. Unparseable styles are
// ignored, as a browser canvas does.
func (c *Canvas) SetStrokeStyle(style string) {
	if col, ok := c.palette[style]; ok {
		c.style = col
		return
	}
	col, err := ParseColor(style)
	if err != nil {
		slog.Warn("ignoring stroke style", "style", style, "err", err)
		return
	}
	c.palette[style] = col
	c.style = col
}

// SetLineWidth sets the stroke width in pixels. Non-positive widths are
// ignored.
func (c *Canvas) SetLineWidth(w float64) {
	if w > 0 && !math.IsInf(w, 0) && !math.IsNaN(w) {
		c.width = w
	}
}

// Stroke draws every segment of the current path with the current style.
func (c *Canvas) Stroke() {
	for _, s := range c.path {
		DrawLine(c.img, s.a.X, s.a.Y, s.b.X, s.b.Y, c.width, c.style)
	}
}

// Flatten returns a copy of the canvas composited over bg.
func (c *Canvas) Flatten(bg color.Color) *image.RGBA {
	out := image.NewRGBA(c.img.Bounds())
	draw.Draw(out, out.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), c.img, c.img.Bounds().Min, draw.Over)
	return out
}
