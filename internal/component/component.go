// internal/component/component.go
package component

import (
	"strconv"
	"strings"
)

// ID identifies a component within a tree. It doubles as the style name used to look up its style.
type ID string

// Kind is the closed set of component kinds.
type Kind int

const (
	KindScreen Kind = iota
	KindPanel
	KindLabel
	KindButton
)

func (k Kind) String() string {
	switch k {
	case KindScreen:
		return "screen"
	case KindPanel:
		return "panel"
	case KindLabel:
		return "label"
	case KindButton:
		return "button"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// IsContainer reports whether components of this kind hold children.
func (k Kind) IsContainer() bool {
	return k == KindScreen || k == KindPanel
}

// ParseKind accepts the lower-case kind names used in scene documents.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "screen":
		return KindScreen, true
	case "panel":
		return KindPanel, true
	case "label":
		return KindLabel, true
	case "button":
		return KindButton, true
	}
	return 0, false
}

// ButtonState is the interaction state a button is drawn in.
type ButtonState int

const (
	ButtonDefault ButtonState = iota
	ButtonPressed
	ButtonHover
	ButtonDisabled
)

func (s ButtonState) String() string {
	switch s {
	case ButtonPressed:
		return "pressed"
	case ButtonHover:
		return "hover"
	case ButtonDisabled:
		return "disabled"
	default:
		return "default"
	}
}

// ParseButtonState accepts the names returned by String. Empty means default.
func ParseButtonState(s string) (ButtonState, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return ButtonDefault, true
	case "pressed":
		return ButtonPressed, true
	case "hover":
		return ButtonHover, true
	case "disabled":
		return ButtonDisabled, true
	}
	return 0, false
}

// Node is one component in the arena. Parent and children are ids, not pointers.
// Nodes are owned by their Tree; read them through Tree methods.
type Node struct {
	ID       ID
	Kind     Kind
	Parent   ID
	Children []ID

	// Text is drawn by labels and buttons.
	Text   string
	State  ButtonState
	Hidden bool
}
