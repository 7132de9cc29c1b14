// internal/render/state.go
package render

import (
	"github.com/xkilldash9x/onegui/internal/component"
	"github.com/xkilldash9x/onegui/internal/layout"
	"github.com/xkilldash9x/onegui/internal/style"
)

// State captures exactly the inputs that change a component's pixels, apart from
// its size. Equal states mean a cached image can be reused.
type State interface {
	Equal(other State) bool
}

type labelState struct {
	text   string
	fontPx int // resolved pixel height; relative sizes follow the viewport height
}

func (s labelState) Equal(other State) bool {
	o, ok := other.(labelState)
	return ok && o == s
}

type buttonState struct {
	text   string
	state  component.ButtonState
	fontPx int
}

func (s buttonState) Equal(other State) bool {
	o, ok := other.(buttonState)
	return ok && o == s
}

type childState struct {
	id      component.ID
	visible bool
	state   State
}

// containerState is the ordered list of the children's own states, so a change
// anywhere below a container invalidates it.
type containerState struct {
	children []childState
}

func (s containerState) Equal(other State) bool {
	o, ok := other.(containerState)
	if !ok || len(o.children) != len(s.children) {
		return false
	}
	for i, c := range s.children {
		oc := o.children[i]
		if c.id != oc.id || c.visible != oc.visible {
			return false
		}
		if (c.state == nil) != (oc.state == nil) {
			return false
		}
		if c.state != nil && !c.state.Equal(oc.state) {
			return false
		}
	}
	return true
}

// leafState is the state of a component with no children. st is its resolved
// style for the pass; nil leaves the font size out.
func leafState(n *component.Node, st *style.Style, viewportHeight float32) State {
	var fontPx int
	if st != nil {
		fontPx = layout.FontPixelHeight(viewportHeight, st.FontSize)
	}
	switch n.Kind {
	case component.KindButton:
		return buttonState{text: n.Text, state: n.State, fontPx: fontPx}
	default:
		return labelState{text: n.Text, fontPx: fontPx}
	}
}
