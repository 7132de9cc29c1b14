// internal/layout/resolve.go
package layout

import (
	"github.com/chewxy/math32"

	"github.com/xkilldash9x/onegui/internal/style"
)

// Axis is a layout direction.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	if a == Horizontal {
		return "width"
	}
	return "height"
}

// relativeFontUnit is the share of the viewport height that one relative font unit covers.
const relativeFontUnit = 0.02

// ResolveWidth turns the style's width into pixels against the parent content box.
// allowHeightRelative must be false when called while resolving a height, which stops
// a %h width and a %w height from resolving each other forever.
func ResolveWidth(st *style.Style, parentWidth, parentHeight float32, allowHeightRelative bool) (float32, error) {
	if st == nil {
		return 0, style.NewMissingStyleError("")
	}
	return resolve(Horizontal, st, st.Width, parentWidth, parentHeight, allowHeightRelative)
}

// ResolveHeight is the mirror of ResolveWidth.
func ResolveHeight(st *style.Style, parentWidth, parentHeight float32, allowWidthRelative bool) (float32, error) {
	if st == nil {
		return 0, style.NewMissingStyleError("")
	}
	return resolve(Vertical, st, st.Height, parentWidth, parentHeight, allowWidthRelative)
}

// ResolveMarginOrPaddingWidth resolves a left or right margin or padding.
// A %h value scales the style's own resolved height.
func ResolveMarginOrPaddingWidth(st *style.Style, d style.Dimension, parentWidth, parentHeight float32, allowHeightRelative bool) (float32, error) {
	return resolve(Horizontal, st, d, parentWidth, parentHeight, allowHeightRelative)
}

// ResolveMarginOrPaddingHeight resolves a top or bottom margin or padding.
// A %w value scales the style's own resolved width.
func ResolveMarginOrPaddingHeight(st *style.Style, d style.Dimension, parentWidth, parentHeight float32, allowWidthRelative bool) (float32, error) {
	return resolve(Vertical, st, d, parentWidth, parentHeight, allowWidthRelative)
}

func resolve(axis Axis, st *style.Style, d style.Dimension, parentWidth, parentHeight float32, allowCross bool) (float32, error) {
	parent := parentWidth
	same, cross := style.PercentWidth, style.PercentHeight
	if axis == Vertical {
		parent = parentHeight
		same, cross = style.PercentHeight, style.PercentWidth
	}

	switch d.Type {
	case style.Pixel:
		return math32.Min(parent, d.Value), nil
	case style.Percent:
		return parent * (d.Value / 100), nil
	case cross:
		if !allowCross {
			return 0, style.NewUnsupportedDimensionRelationError(d.Type, axis.String())
		}
		if st == nil {
			return 0, style.NewMissingStyleError("")
		}
		var other float32
		var err error
		if axis == Horizontal {
			other, err = ResolveHeight(st, parentWidth, parentHeight, false)
		} else {
			other, err = ResolveWidth(st, parentWidth, parentHeight, false)
		}
		if err != nil {
			return 0, err
		}
		return other * (d.Value / 100), nil
	case same:
		return 0, style.NewUnsupportedDimensionRelationError(d.Type, axis.String())
	}
	return 0, style.NewMalformedDimensionError(d.String(), "unknown dimension type", nil)
}

// resolveEdge resolves one margin or padding side that lies on axis.
func resolveEdge(axis Axis, st *style.Style, d style.Dimension, parentWidth, parentHeight float32) (float32, error) {
	if axis == Horizontal {
		return ResolveMarginOrPaddingWidth(st, d, parentWidth, parentHeight, true)
	}
	return ResolveMarginOrPaddingHeight(st, d, parentWidth, parentHeight, true)
}

// FontPixelHeight converts a font size to whole pixels for a viewport of the given height.
func FontPixelHeight(viewportHeight float32, fs style.FontSize) int {
	if fs.Type == style.FontPixel {
		return int(math32.Round(fs.Value))
	}
	return int(math32.Round(fs.Value * relativeFontUnit * viewportHeight))
}

// ContentBox subtracts the style's padding, resolved against the box itself, from width and height.
func ContentBox(st *style.Style, width, height float32) (float32, float32, error) {
	top, right, bottom, left, err := Padding(st, width, height)
	if err != nil {
		return 0, 0, err
	}
	return width - (left + right), height - (top + bottom), nil
}

// Padding resolves all four padding sides against the given box.
func Padding(st *style.Style, width, height float32) (top, right, bottom, left float32, err error) {
	if left, err = ResolveMarginOrPaddingWidth(st, st.Padding.Left, width, height, true); err != nil {
		return
	}
	if right, err = ResolveMarginOrPaddingWidth(st, st.Padding.Right, width, height, true); err != nil {
		return
	}
	if top, err = ResolveMarginOrPaddingHeight(st, st.Padding.Top, width, height, true); err != nil {
		return
	}
	bottom, err = ResolveMarginOrPaddingHeight(st, st.Padding.Bottom, width, height, true)
	return
}
