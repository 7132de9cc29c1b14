package parser

import (
	"strings"

	"github.com/xkilldash9x/onegui/internal/style"
)

type setter func(st *style.Style, value string) error

// properties is the whitelist of style-sheet property names.
var properties = map[string]setter{
	"width":  dimension(func(st *style.Style) *style.Dimension { return &st.Width }),
	"height": dimension(func(st *style.Style) *style.Dimension { return &st.Height }),

	"marginLeft":   dimension(func(st *style.Style) *style.Dimension { return &st.Margin.Left }),
	"marginRight":  dimension(func(st *style.Style) *style.Dimension { return &st.Margin.Right }),
	"marginTop":    dimension(func(st *style.Style) *style.Dimension { return &st.Margin.Top }),
	"marginBottom": dimension(func(st *style.Style) *style.Dimension { return &st.Margin.Bottom }),

	"paddingLeft":   dimension(func(st *style.Style) *style.Dimension { return &st.Padding.Left }),
	"paddingRight":  dimension(func(st *style.Style) *style.Dimension { return &st.Padding.Right }),
	"paddingTop":    dimension(func(st *style.Style) *style.Dimension { return &st.Padding.Top }),
	"paddingBottom": dimension(func(st *style.Style) *style.Dimension { return &st.Padding.Bottom }),

	"color":           colorValue(func(st *style.Style) *style.Color { return &st.Color }),
	"backgroundColor": colorValue(func(st *style.Style) *style.Color { return &st.BackgroundColor }),

	"backgroundImage": func(st *style.Style, v string) error {
		st.BackgroundImage = quoted(v)
		return nil
	},
	"font": func(st *style.Style, v string) error {
		st.Font = quoted(v)
		return nil
	},
	"fontSize": func(st *style.Style, v string) (err error) {
		st.FontSize, err = style.ParseFontSize(v)
		return err
	},
	"fontStyle": func(st *style.Style, v string) (err error) {
		st.FontStyle, err = style.ParseFontStyle(v)
		return err
	},
	"align": func(st *style.Style, v string) (err error) {
		st.Align, err = style.ParseAlign(v)
		return err
	},
	"verticalAlign": func(st *style.Style, v string) (err error) {
		st.VerticalAlign, err = style.ParseVerticalAlign(v)
		return err
	},
	"childLayout": func(st *style.Style, v string) (err error) {
		st.ChildLayout, err = style.ParseChildLayout(v)
		return err
	},
}

// Properties lists the accepted property names.
func Properties() []string {
	names := make([]string, 0, len(properties))
	for name := range properties {
		names = append(names, name)
	}
	return names
}

func dimension(field func(*style.Style) *style.Dimension) setter {
	return func(st *style.Style, v string) error {
		d, err := style.ParseDimension(v)
		if err != nil {
			return err
		}
		*field(st) = d
		return nil
	}
}

func colorValue(field func(*style.Style) *style.Color) setter {
	return func(st *style.Style, v string) error {
		c, err := style.ParseColor(v)
		if err != nil {
			return err
		}
		*field(st) = c
		return nil
	}
}

// quoted returns the content of a double-quoted literal. The literals none and null,
// and anything that is not a well-formed non-empty quoted string, resolve to "".
func quoted(v string) string {
	if v == "none" || v == "null" {
		return ""
	}
	if len(v) > 2 && strings.HasPrefix(v, `"`) && strings.HasSuffix(v, `"`) {
		return v[1 : len(v)-1]
	}
	return ""
}
