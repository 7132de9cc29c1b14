// internal/component/tree.go
package component

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyID      = errors.New("component id must not be empty")
	ErrDuplicateID  = errors.New("component id already exists")
	ErrNotFound     = errors.New("component not found")
	ErrNotContainer = errors.New("component cannot hold children")
	ErrRemoveRoot   = errors.New("the root screen cannot be removed")
	ErrNotTextual   = errors.New("component does not carry text")
)

// RemoveFunc is notified with every id removed by a single Remove call, parents first.
type RemoveFunc func(removed []ID)

// Tree is an arena of components addressed by id, rooted at a screen.
// It is not safe for concurrent use; callers serialise mutation against layout and render passes.
type Tree struct {
	nodes    map[ID]*Node
	root     ID
	onRemove []RemoveFunc
}

// NewTree creates a tree whose root is a screen with the given id.
func NewTree(rootID string) (*Tree, error) {
	id, err := checkID(rootID)
	if err != nil {
		return nil, err
	}
	t := &Tree{nodes: make(map[ID]*Node)}
	t.nodes[id] = &Node{ID: id, Kind: KindScreen}
	t.root = id
	return t, nil
}

func checkID(raw string) (ID, error) {
	if strings.TrimSpace(raw) == "" {
		return "", ErrEmptyID
	}
	return ID(raw), nil
}

// Root returns the id of the screen.
func (t *Tree) Root() ID { return t.root }

// Len is the number of components including the root.
func (t *Tree) Len() int { return len(t.nodes) }

// Add appends a new component of the given kind to parent. An empty id is replaced by a random UUID.
func (t *Tree) Add(parent ID, kind Kind, id string) (ID, error) {
	if kind == KindScreen {
		return "", fmt.Errorf("add %q: a screen can only be the root", id)
	}
	p, ok := t.nodes[parent]
	if !ok {
		return "", fmt.Errorf("add to %q: %w", parent, ErrNotFound)
	}
	if !p.Kind.IsContainer() {
		return "", fmt.Errorf("add to %q (%s): %w", parent, p.Kind, ErrNotContainer)
	}
	if id == "" {
		id = uuid.NewString()
	}
	cid, err := checkID(id)
	if err != nil {
		return "", err
	}
	if _, exists := t.nodes[cid]; exists {
		return "", fmt.Errorf("add %q: %w", cid, ErrDuplicateID)
	}
	t.nodes[cid] = &Node{ID: cid, Kind: kind, Parent: parent}
	p.Children = append(p.Children, cid)
	return cid, nil
}

// Remove deletes id and its whole subtree, wherever it sits in the tree.
func (t *Tree) Remove(id ID) ([]ID, error) {
	if id == t.root {
		return nil, ErrRemoveRoot
	}
	n, ok := t.nodes[id]
	if !ok {
		return nil, fmt.Errorf("remove %q: %w", id, ErrNotFound)
	}

	if p, ok := t.nodes[n.Parent]; ok {
		for i, c := range p.Children {
			if c == id {
				p.Children = append(p.Children[:i:i], p.Children[i+1:]...)
				break
			}
		}
	}

	var removed []ID
	t.Walk(id, func(n *Node) bool {
		removed = append(removed, n.ID)
		return true
	})
	for _, r := range removed {
		delete(t.nodes, r)
	}
	for _, fn := range t.onRemove {
		fn(removed)
	}
	return removed, nil
}

// OnRemove registers fn to be called after every successful Remove.
func (t *Tree) OnRemove(fn RemoveFunc) {
	t.onRemove = append(t.onRemove, fn)
}

// Node returns the component with the given id.
func (t *Tree) Node(id ID) (*Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Children returns the ordered child ids of id.
func (t *Tree) Children(id ID) []ID {
	if n, ok := t.nodes[id]; ok {
		return n.Children
	}
	return nil
}

// Walk visits id and its descendants depth-first in declaration order.
// Returning false from fn skips the node's children.
func (t *Tree) Walk(id ID, fn func(*Node) bool) {
	n, ok := t.nodes[id]
	if !ok {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		t.Walk(c, fn)
	}
}

// SetText changes the text of a label or button.
func (t *Tree) SetText(id ID, text string) error {
	n, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("set text on %q: %w", id, ErrNotFound)
	}
	if n.Kind != KindLabel && n.Kind != KindButton {
		return fmt.Errorf("set text on %q (%s): %w", id, n.Kind, ErrNotTextual)
	}
	n.Text = text
	return nil
}

// SetButtonState changes the state a button is drawn in.
func (t *Tree) SetButtonState(id ID, s ButtonState) error {
	n, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("set state on %q: %w", id, ErrNotFound)
	}
	if n.Kind != KindButton {
		return fmt.Errorf("set state on %q: %s is not a button", id, n.Kind)
	}
	n.State = s
	return nil
}

// SetHidden hides or shows a component. Hidden components keep their place in the layout.
func (t *Tree) SetHidden(id ID, hidden bool) error {
	n, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("set hidden on %q: %w", id, ErrNotFound)
	}
	n.Hidden = hidden
	return nil
}
