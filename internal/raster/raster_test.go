package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cubesketch/internal/math3d"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"black", color.NRGBA{0, 0, 0, 255}},
		{"LightBlue", color.NRGBA{173, 216, 230, 255}},
		{"#f00", color.NRGBA{255, 0, 0, 255}},
		{"#00ff0080", color.NRGBA{0, 255, 0, 128}},
		{"#123456", color.NRGBA{0x12, 0x34, 0x56, 255}},
		{"rgb(1, 2, 3)", color.NRGBA{1, 2, 3, 255}},
		{"rgba(33, 33, 200, 0.8)", color.NRGBA{33, 33, 200, 204}},
		{"rgba(33,200,33,0.5)", color.NRGBA{33, 200, 33, 128}},
		{"transparent", color.NRGBA{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "notacolor", "#12", "rgba(1,2)", "rgb(a,b,c)", "rgb(1,2,3"} {
		_, err := ParseColor(bad)
		assert.ErrorIs(t, err, ErrBadColor, bad)
	}
}

func TestDrawLineHorizontal(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 5))
	DrawLine(img, 1, 2, 8, 2, 1, color.NRGBA{255, 0, 0, 255})
	for x := 1; x <= 8; x++ {
		assert.Equal(t, color.RGBA{255, 0, 0, 255}, img.RGBAAt(x, 2), "x=%d", x)
	}
	assert.Equal(t, color.RGBA{}, img.RGBAAt(0, 2))
	assert.Equal(t, color.RGBA{}, img.RGBAAt(9, 2))
	assert.Equal(t, color.RGBA{}, img.RGBAAt(4, 1))
}

func TestDrawLineWidthAndClip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	DrawLine(img, -5, 5, 20, 5, 3, color.NRGBA{0, 0, 255, 255})
	for x := 0; x < 10; x++ {
		for _, y := range []int{4, 5, 6} {
			assert.Equal(t, uint8(255), img.RGBAAt(x, y).B)
		}
		assert.Equal(t, uint8(0), img.RGBAAt(x, 3).B)
	}
}

func TestDrawLineBlends(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	DrawLine(img, 0, 0, 0, 0, 1, color.NRGBA{255, 255, 255, 128})
	assert.Equal(t, color.RGBA{128, 128, 128, 128}, img.RGBAAt(0, 0))
}

func TestCanvasStrokeAndClear(t *testing.T) {
	c := NewCanvas(20, 20)
	c.BeginPath()
	c.MoveTo(2, 2)
	c.LineTo(2, 17)
	c.SetStrokeStyle("black")
	c.SetLineWidth(1)
	c.Stroke()
	assert.Equal(t, uint8(255), c.Image().RGBAAt(2, 10).A)

	c.ClearRect(0, 0, 20, 20)
	assert.Equal(t, color.RGBA{}, c.Image().RGBAAt(2, 10))
}

func TestCanvasIgnoresBadStyle(t *testing.T) {
	c := NewCanvas(5, 5)
	c.SetStrokeStyle("red")
	c.SetStrokeStyle("bogus")
	c.BeginPath()
	c.MoveTo(0, 0)
	c.LineTo(4, 0)
	c.Stroke()
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, c.Image().RGBAAt(2, 0))
}

func TestCanvasEllipse(t *testing.T) {
	c := NewCanvas(40, 40)
	c.BeginPath()
	c.Ellipse(20, 20, 10, 10, 0, 0, 6.283185307179586)
	c.SetStrokeStyle("black")
	c.Stroke()
	img := c.Image()
	assert.Equal(t, uint8(255), img.RGBAAt(30, 20).A)
	assert.Equal(t, uint8(255), img.RGBAAt(10, 20).A)
	assert.Equal(t, uint8(0), img.RGBAAt(20, 20).A, "centre stays empty")
}

func TestCanvasResizeAndFlatten(t *testing.T) {
	c := NewCanvas(4, 4)
	c.Resize(8, 3)
	assert.Equal(t, 8, c.Width())
	assert.Equal(t, 3, c.Height())

	c.SetClientOrigin(math3d.V2(5, 7))
	assert.Equal(t, math3d.V2(5, 7), c.ClientOrigin())

	out := c.Flatten(color.White)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, out.RGBAAt(1, 1))
}

func TestBeginPathResets(t *testing.T) {
	c := NewCanvas(10, 10)
	c.MoveTo(0, 0)
	c.LineTo(9, 0)
	c.BeginPath()
	c.Stroke()
	assert.Equal(t, color.RGBA{}, c.Image().RGBAAt(5, 0))
}
