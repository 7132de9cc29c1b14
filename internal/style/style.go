// internal/style/style.go
package style

import "sort"

// Edges holds one Dimension per side of a box.
type Edges struct {
	Top, Right, Bottom, Left Dimension
}

// Style is the fully resolved set of layout and paint properties for one component.
// A Style is shared by reference once compiled and must not be modified afterwards.
type Style struct {
	Width  Dimension
	Height Dimension

	Color           Color
	BackgroundColor Color
	// BackgroundImage is a path resolved by the image service; empty means none.
	BackgroundImage string

	Padding Edges
	Margin  Edges

	// Font names a font family or file; empty selects the default family.
	Font      string
	FontSize  FontSize
	FontStyle FontStyle

	Align         Align
	VerticalAlign VerticalAlign
	ChildLayout   ChildLayout
}

// Default returns the style every property falls back to when a sheet leaves it unset.
func Default() Style {
	return Style{
		Width:           Pct(100),
		Height:          Pct(100),
		Color:           White,
		BackgroundColor: Transparent,
		FontSize:        DefaultFontSize,
		FontStyle:       FontNormal,
		Align:           AlignLeft,
		VerticalAlign:   VAlignTop,
		ChildLayout:     StackRight,
	}
}

// Sheet maps style names to compiled styles. Components find their style by id.
// A Sheet is populated before the first layout pass and only read during one.
type Sheet struct {
	styles map[string]*Style
}

func NewSheet() *Sheet {
	return &Sheet{styles: make(map[string]*Style)}
}

// Put registers st under name, replacing any previous entry.
func (s *Sheet) Put(name string, st *Style) {
	s.styles[name] = st
}

// Lookup returns the style registered under name.
func (s *Sheet) Lookup(name string) (*Style, bool) {
	if s == nil {
		return nil, false
	}
	st, ok := s.styles[name]
	return st, ok
}

// Merge copies every style of other into s. Same-named styles are overwritten.
func (s *Sheet) Merge(other *Sheet) {
	if other == nil {
		return
	}
	for name, st := range other.styles {
		s.styles[name] = st
	}
}

// Names lists the registered style names in sorted order.
func (s *Sheet) Names() []string {
	names := make([]string, 0, len(s.styles))
	for name := range s.styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Sheet) Len() int { return len(s.styles) }
