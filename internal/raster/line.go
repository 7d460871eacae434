package raster

import (
	"image"
	"image/color"
	"math"
)

const maxStepsPerPixel = 16

// DrawLine draws a line from (x1, y1) to (x2, y2) by stepping along the
// major axis. Each step stamps a square brush of the given width, blended
// source-over. Pixels outside the image are skipped.
func DrawLine(img *image.RGBA, x1, y1, x2, y2, width float64, col color.NRGBA) {
	if math.IsNaN(x1+y1+x2+y2) || math.IsInf(x1+y1+x2+y2, 0) {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	steps := math.Ceil(math.Max(math.Abs(dx), math.Abs(dy)))
	// skip lines that are wildly off-surface, such as points projected
	// through the eye plane
	if b := img.Bounds(); steps > maxStepsPerPixel*float64(b.Dx()+b.Dy()+1) {
		return
	}

	brush := int(math.Round(width))
	if brush < 1 {
		brush = 1
	}
	if steps == 0 {
		stamp(img, x1, y1, brush, col)
		return
	}

	xInc := dx / steps
	yInc := dy / steps

	x, y := x1, y1
	for i := 0; i <= int(steps); i++ {
		stamp(img, x, y, brush, col)
		x += xInc
		y += yInc
	}
}

// stamp paints a brush x brush square centred on (x, y).
func stamp(img *image.RGBA, x, y float64, brush int, col color.NRGBA) {
	half := (brush - 1) / 2
	ix := int(math.Floor(x)) - half
	iy := int(math.Floor(y)) - half
	for by := 0; by < brush; by++ {
		for bx := 0; bx < brush; bx++ {
			blend(img, ix+bx, iy+by, col)
		}
	}
}

// blend composites col over the pixel at (x, y).
func blend(img *image.RGBA, x, y int, col color.NRGBA) {
	if !(image.Point{x, y}.In(img.Bounds())) || col.A == 0 {
		return
	}
	offset := img.PixOffset(x, y)
	pix := img.Pix[offset : offset+4 : offset+4]
	if col.A == 0xFF {
		pix[0], pix[1], pix[2], pix[3] = col.R, col.G, col.B, 0xFF
		return
	}
	a := uint32(col.A)
	inv := 255 - a
	pix[0] = uint8((uint32(col.R)*a + uint32(pix[0])*inv + 127) / 255)
	pix[1] = uint8((uint32(col.G)*a + uint32(pix[1])*inv + 127) / 255)
	pix[2] = uint8((uint32(col.B)*a + uint32(pix[2])*inv + 127) / 255)
	pix[3] = uint8((a*255 + uint32(pix[3])*inv + 127) / 255)
}
