package raster

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ErrBadColor is returned for a style string that cannot be parsed.
var ErrBadColor = errors.New("raster: unrecognised color")

// ParseColor parses a CSS colour: a name from the CSS named colours,
// "transparent", #rgb, #rrggbb, #rrggbbaa, rgb(r, g, b) or rgba(r, g, b, a)
// with a in [0, 1]. The result is not premultiplied.
func ParseColor(s string) (color.NRGBA, error) {
	str := strings.ToLower(strings.TrimSpace(s))
	switch {
	case str == "":
		return color.NRGBA{}, fmt.Errorf("%w: empty", ErrBadColor)
	case str == "transparent":
		return color.NRGBA{}, nil
	case strings.HasPrefix(str, "#"):
		return parseHex(str[1:])
	case strings.HasPrefix(str, "rgba(") || strings.HasPrefix(str, "rgb("):
		return parseFunc(str)
	}
	c, ok := colornames.Map[str]
	if !ok {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
}

func parseHex(x string) (color.NRGBA, error) {
	var r, g, b, a int
	a = 255
	var err error
	switch len(x) {
	case 3:
		_, err = fmt.Sscanf(x, "%1x%1x%1x", &r, &g, &b)
		r |= r << 4
		g |= g << 4
		b |= b << 4
	case 6:
		_, err = fmt.Sscanf(x, "%02x%02x%02x", &r, &g, &b)
	case 8:
		_, err = fmt.Sscanf(x, "%02x%02x%02x%02x", &r, &g, &b, &a)
	default:
		return color.NRGBA{}, fmt.Errorf("%w: hex %q", ErrBadColor, x)
	}
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: hex %q: %v", ErrBadColor, x, err)
	}
	return color.NRGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(a)}, nil
}

func parseFunc(str string) (color.NRGBA, error) {
	open := strings.IndexByte(str, '(')
	if !strings.HasSuffix(str, ")") {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, str)
	}
	parts := strings.Split(str[open+1:len(str)-1], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, str)
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: %q: %v", ErrBadColor, str, err)
		}
		ch[i] = clamp8(v)
	}
	alpha := uint8(255)
	if len(parts) == 4 {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: %q: %v", ErrBadColor, str, err)
		}
		alpha = clamp8(v * 255)
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: alpha}, nil
}

func clamp8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v + 0.5)
	}
}
