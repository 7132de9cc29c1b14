// internal/scene/scene.go
package scene

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/xkilldash9x/onegui/internal/component"
)

// Node is one component in a scene document.
type Node struct {
	ID       string  `yaml:"id"`
	Kind     string  `yaml:"kind,omitempty"`
	Text     string  `yaml:"text,omitempty"`
	State    string  `yaml:"state,omitempty"`
	Hidden   bool    `yaml:"hidden,omitempty"`
	Children []*Node `yaml:"children,omitempty"`
}

// ErrEmptyScene is returned for documents without a root.
var ErrEmptyScene = errors.New("scene has no root component")

// Load reads a YAML scene document and builds its component tree.
// The root is always a screen.
func Load(r io.Reader) (*component.Tree, error) {
	var root Node
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyScene
		}
		return nil, fmt.Errorf("decoding scene: %w", err)
	}
	return Build(&root)
}

// Build creates the component tree described by root.
func Build(root *Node) (*component.Tree, error) {
	if root == nil || root.ID == "" {
		return nil, ErrEmptyScene
	}
	if root.Kind != "" && root.Kind != "screen" {
		return nil, fmt.Errorf("scene root %q: kind must be screen, got %q", root.ID, root.Kind)
	}
	tree, err := component.NewTree(root.ID)
	if err != nil {
		return nil, err
	}
	if err := apply(tree, tree.Root(), root); err != nil {
		return nil, err
	}
	for _, c := range root.Children {
		if err := add(tree, tree.Root(), c); err != nil {
			return nil, err
		}
	}
	return tree, nil
}

func add(tree *component.Tree, parent component.ID, n *Node) error {
	if n == nil {
		return fmt.Errorf("scene: empty child of %q", parent)
	}
	kind, err := kindOf(n)
	if err != nil {
		return err
	}
	id, err := tree.Add(parent, kind, n.ID)
	if err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	if err := apply(tree, id, n); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := add(tree, id, c); err != nil {
			return err
		}
	}
	return nil
}

// kindOf defaults to panel for nodes with children and label otherwise.
func kindOf(n *Node) (component.Kind, error) {
	if n.Kind == "" {
		if len(n.Children) > 0 {
			return component.KindPanel, nil
		}
		return component.KindLabel, nil
	}
	kind, ok := component.ParseKind(n.Kind)
	if !ok || kind == component.KindScreen {
		return 0, fmt.Errorf("scene component %q: invalid kind %q", n.ID, n.Kind)
	}
	if len(n.Children) > 0 && !kind.IsContainer() {
		return 0, fmt.Errorf("scene component %q: %s cannot have children", n.ID, kind)
	}
	return kind, nil
}

func apply(tree *component.Tree, id component.ID, n *Node) error {
	if n.Text != "" {
		if err := tree.SetText(id, n.Text); err != nil {
			return fmt.Errorf("scene: %w", err)
		}
	}
	if n.State != "" {
		state, ok := component.ParseButtonState(n.State)
		if !ok {
			return fmt.Errorf("scene component %q: invalid button state %q", id, n.State)
		}
		if err := tree.SetButtonState(id, state); err != nil {
			return fmt.Errorf("scene: %w", err)
		}
	}
	if n.Hidden {
		if err := tree.SetHidden(id, true); err != nil {
			return fmt.Errorf("scene: %w", err)
		}
	}
	return nil
}
