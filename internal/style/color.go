// internal/style/color.go
package style

import (
	"image/color"
	"math"
	"strings"
)

// Color is an RGBA colour with straight (non-premultiplied) components in [0,1].
type Color struct {
	R, G, B, A float32
}

// Named colours.
var (
	Transparent = rgba8(0x00, 0x00, 0x00, 0x00)
	White       = rgba8(0xff, 0xff, 0xff, 0xff)
	Silver      = rgba8(0xc0, 0xc0, 0xc0, 0xff)
	Gray        = rgba8(0x80, 0x80, 0x80, 0xff)
	Black       = rgba8(0x00, 0x00, 0x00, 0xff)
	Red         = rgba8(0xff, 0x00, 0x00, 0xff)
	Maroon      = rgba8(0x80, 0x00, 0x00, 0xff)
	Yellow      = rgba8(0xff, 0xff, 0x00, 0xff)
	Olive       = rgba8(0x80, 0x80, 0x00, 0xff)
	Lime        = rgba8(0x00, 0xff, 0x00, 0xff)
	Green       = rgba8(0x00, 0x80, 0x00, 0xff)
	Aqua        = rgba8(0x00, 0xff, 0xff, 0xff)
	Teal        = rgba8(0x00, 0x80, 0x80, 0xff)
	Blue        = rgba8(0x00, 0x00, 0xff, 0xff)
	Navy        = rgba8(0x00, 0x00, 0x80, 0xff)
	Fuchsia     = rgba8(0xff, 0x00, 0xff, 0xff)
	Purple      = rgba8(0x80, 0x00, 0x80, 0xff)
)

var namedColors = map[string]Color{
	"transparent": Transparent,
	"white":       White,
	"silver":      Silver,
	"gray":        Gray,
	"black":       Black,
	"red":         Red,
	"maroon":      Maroon,
	"yellow":      Yellow,
	"olive":       Olive,
	"lime":        Lime,
	"green":       Green,
	"aqua":        Aqua,
	"teal":        Teal,
	"blue":        Blue,
	"navy":        Navy,
	"fuchsia":     Fuchsia,
	"purple":      Purple,
}

func rgba8(r, g, b, a uint8) Color {
	return Color{R: float32(r) / 255, G: float32(g) / 255, B: float32(b) / 255, A: float32(a) / 255}
}

// NewColor validates that every component lies in [0,1].
func NewColor(r, g, b, a float32) (Color, error) {
	c := Color{R: r, G: g, B: b, A: a}
	for _, v := range [...]float32{r, g, b, a} {
		if isNaNOrInf(v) || v < 0 || v > 1 {
			return Color{}, &MalformedColorError{Input: c.String()}
		}
	}
	return c, nil
}

// ParseColor accepts "#RRGGBBAA" or one of the named colours, case-insensitively.
func ParseColor(value string) (Color, error) {
	v := strings.TrimSpace(value)
	if c, ok := namedColors[strings.ToLower(v)]; ok {
		return c, nil
	}
	if c, ok := parseHexColor(v); ok {
		return c, nil
	}
	return Color{}, &MalformedColorError{Input: value}
}

func parseHexColor(hex string) (Color, bool) {
	if len(hex) != 9 || hex[0] != '#' {
		return Color{}, false
	}
	var b [4]uint8
	for i := range b {
		hi, ok1 := hexDigit(hex[1+2*i])
		lo, ok2 := hexDigit(hex[2+2*i])
		if !ok1 || !ok2 {
			return Color{}, false
		}
		b[i] = hi<<4 | lo
	}
	return rgba8(b[0], b[1], b[2], b[3]), true
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// Equal compares the exact bit patterns of all four components.
func (c Color) Equal(o Color) bool {
	return math.Float32bits(c.R) == math.Float32bits(o.R) &&
		math.Float32bits(c.G) == math.Float32bits(o.G) &&
		math.Float32bits(c.B) == math.Float32bits(o.B) &&
		math.Float32bits(c.A) == math.Float32bits(o.A)
}

// NRGBA converts to an 8-bit straight-alpha colour.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

func (c Color) String() string {
	n := c.NRGBA()
	const digits = "0123456789abcdef"
	out := []byte{'#', 0, 0, 0, 0, 0, 0, 0, 0}
	for i, v := range [...]uint8{n.R, n.G, n.B, n.A} {
		out[1+2*i] = digits[v>>4]
		out[2+2*i] = digits[v&0x0f]
	}
	return string(out)
}

func to8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xff
	}
	return uint8(math.Round(float64(v) * 255))
}
