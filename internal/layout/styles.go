package layout

import (
	"github.com/xkilldash9x/onegui/internal/component"
	"github.com/xkilldash9x/onegui/internal/style"
)

// StyleSource looks styles up by name. *style.Sheet satisfies it.
type StyleSource interface {
	Lookup(name string) (*style.Style, bool)
}

// Styles is the resolved style of every component in a tree for one pass.
type Styles map[component.ID]*style.Style

// StyleName is the name looked up for a component. Buttons in a non-default
// state use "<id>.<state>" when the sheet defines it.
func StyleName(src StyleSource, n *component.Node) string {
	if n.Kind == component.KindButton && n.State != component.ButtonDefault {
		name := string(n.ID) + "." + n.State.String()
		if _, ok := src.Lookup(name); ok {
			return name
		}
	}
	return string(n.ID)
}

// ResolveStyles looks up the style of every component reachable from the root.
// It fails with a *style.MissingStyleError on the first component without one.
func ResolveStyles(tree *component.Tree, src StyleSource) (Styles, error) {
	styles := make(Styles, tree.Len())
	var missing error
	tree.Walk(tree.Root(), func(n *component.Node) bool {
		if missing != nil {
			return false
		}
		st, ok := src.Lookup(StyleName(src, n))
		if !ok || st == nil {
			missing = style.NewMissingStyleError(string(n.ID))
			return false
		}
		styles[n.ID] = st
		return true
	})
	if missing != nil {
		return nil, missing
	}
	return styles, nil
}
