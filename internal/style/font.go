package style

import (
	"math"
	"strconv"
	"strings"
)

// FontSizeType distinguishes absolute pixel sizes from viewport-relative ones.
type FontSizeType int

const (
	// FontRelative is the fallback when no "px" suffix is present.
	// One relative unit is 2% of the viewport height.
	FontRelative FontSizeType = iota
	FontPixel
)

func (t FontSizeType) String() string {
	if t == FontPixel {
		return "px"
	}
	return ""
}

// FontSize is a positive text size.
type FontSize struct {
	Value float32
	Type  FontSizeType
}

// DefaultFontSize is one relative unit.
var DefaultFontSize = FontSize{Value: 1, Type: FontRelative}

// NewFontSize rejects values that are not strictly positive.
func NewFontSize(value float32, kind FontSizeType) (FontSize, error) {
	if isNaNOrInf(value) || value <= 0 {
		return FontSize{}, NewMalformedDimensionError(formatFloat(value)+kind.String(), "font size must be greater than 0", nil)
	}
	return FontSize{Value: value, Type: kind}, nil
}

// ParseFontSize reads "<number>px" as a pixel size and a bare number as a relative size.
func ParseFontSize(input string) (FontSize, error) {
	s := strings.TrimSpace(input)
	kind := FontRelative
	if strings.HasSuffix(s, "px") {
		kind = FontPixel
		s = strings.TrimSpace(strings.TrimSuffix(s, "px"))
	}
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return FontSize{}, NewMalformedDimensionError(input, "not a number", err)
	}
	fs, err := NewFontSize(float32(f), kind)
	if err != nil {
		return FontSize{}, NewMalformedDimensionError(input, "font size must be greater than 0", nil)
	}
	return fs, nil
}

// Equal compares kind and the exact bit pattern of the value.
func (f FontSize) Equal(o FontSize) bool {
	return f.Type == o.Type && math.Float32bits(f.Value) == math.Float32bits(o.Value)
}

func (f FontSize) String() string {
	return formatFloat(f.Value) + f.Type.String()
}

// FontStyle selects the face variant of a font family.
type FontStyle int

const (
	FontNormal FontStyle = iota
	FontBold
	FontItalic
	FontBoldItalic
)

var fontStyleNames = map[string]FontStyle{
	"NORMAL":      FontNormal,
	"BOLD":        FontBold,
	"ITALIC":      FontItalic,
	"BOLD_ITALIC": FontBoldItalic,
	"BOLDITALIC":  FontBoldItalic,
}

// ParseFontStyle matches the literal case-insensitively.
func ParseFontStyle(v string) (FontStyle, error) {
	return matchEnum("fontStyle", v, fontStyleNames)
}

func (s FontStyle) String() string {
	switch s {
	case FontBold:
		return "bold"
	case FontItalic:
		return "italic"
	case FontBoldItalic:
		return "bold_italic"
	default:
		return "normal"
	}
}
