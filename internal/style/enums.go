// internal/style/enums.go
package style

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Align is the horizontal alignment of text, and of children in a vertical stack.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// VerticalAlign is the vertical alignment of text, and of children in a horizontal stack.
type VerticalAlign int

const (
	VAlignTop VerticalAlign = iota
	VAlignMiddle
	VAlignBottom
)

func (v VerticalAlign) String() string {
	switch v {
	case VAlignMiddle:
		return "middle"
	case VAlignBottom:
		return "bottom"
	default:
		return "top"
	}
}

// ChildLayout is the axis and direction along which a container stacks its children.
type ChildLayout int

const (
	StackRight ChildLayout = iota
	StackLeft
	StackDown
	StackUp
	// LayoutCenter is accepted by the parser but has no placement algorithm.
	LayoutCenter
)

func (c ChildLayout) String() string {
	switch c {
	case StackLeft:
		return "left"
	case StackDown:
		return "down"
	case StackUp:
		return "up"
	case LayoutCenter:
		return "center"
	default:
		return "right"
	}
}

// Horizontal reports whether the layout stacks along the x axis.
func (c ChildLayout) Horizontal() bool { return c == StackLeft || c == StackRight }

// Vertical reports whether the layout stacks along the y axis.
func (c ChildLayout) Vertical() bool { return c == StackUp || c == StackDown }

var alignNames = map[string]Align{
	"LEFT":   AlignLeft,
	"CENTER": AlignCenter,
	"RIGHT":  AlignRight,
}

var verticalAlignNames = map[string]VerticalAlign{
	"TOP":    VAlignTop,
	"MIDDLE": VAlignMiddle,
	"BOTTOM": VAlignBottom,
}

var childLayoutNames = map[string]ChildLayout{
	"LEFT":        StackLeft,
	"RIGHT":       StackRight,
	"UP":          StackUp,
	"DOWN":        StackDown,
	"STACK-LEFT":  StackLeft,
	"STACK-RIGHT": StackRight,
	"STACK-UP":    StackUp,
	"STACK-DOWN":  StackDown,
	"CENTER":      LayoutCenter,
}

func ParseAlign(v string) (Align, error) {
	return matchEnum("align", v, alignNames)
}

func ParseVerticalAlign(v string) (VerticalAlign, error) {
	return matchEnum("verticalAlign", v, verticalAlignNames)
}

func ParseChildLayout(v string) (ChildLayout, error) {
	return matchEnum("childLayout", v, childLayoutNames)
}

// matchEnum upper-cases the literal with US English rules and looks it up in names.
// A Caser holds state, so one is created per call.
func matchEnum[T any](property, value string, names map[string]T) (T, error) {
	key := cases.Upper(language.AmericanEnglish).String(strings.TrimSpace(value))
	if v, ok := names[key]; ok {
		return v, nil
	}
	var zero T
	return zero, NewInvalidEnumValueError(property, value)
}
