// internal/layout/engine.go
package layout

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/xkilldash9x/onegui/internal/component"
	"github.com/xkilldash9x/onegui/internal/style"
)

// ErrCenterLayoutNotImplemented is returned for containers whose childLayout is center.
var ErrCenterLayoutNotImplemented = errors.New("center child layout is not implemented")

// Info is the resolved geometry of one component for one frame.
// X and Y are relative to the parent container's origin; the root sits at 0,0.
type Info struct {
	X, Y          float32
	Width, Height float32
	Visible       bool
}

// Table maps every laid out component to its geometry.
type Table map[component.ID]Info

// Engine runs layout passes. It keeps no state between passes.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates an Engine. A nil logger disables logging.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger.Named("layout")}
}

// Run resolves the styles of tree from src and lays it out for the viewport.
func (e *Engine) Run(tree *component.Tree, src StyleSource, viewportWidth, viewportHeight float32) (Table, Styles, error) {
	styles, err := ResolveStyles(tree, src)
	if err != nil {
		e.logger.Error("Style resolution failed", zap.Error(err), zap.String("code", codeOf(err)))
		return nil, nil, err
	}
	table, err := e.Layout(tree, styles, viewportWidth, viewportHeight)
	if err != nil {
		return nil, nil, err
	}
	return table, styles, nil
}

// Layout computes the geometry of every component. The root fills the viewport.
// The first failure aborts the pass; no partial table is returned.
func (e *Engine) Layout(tree *component.Tree, styles Styles, viewportWidth, viewportHeight float32) (Table, error) {
	root, ok := tree.Node(tree.Root())
	if !ok {
		return nil, fmt.Errorf("layout: %w", component.ErrNotFound)
	}
	table := make(Table, tree.Len())
	table[root.ID] = Info{Width: viewportWidth, Height: viewportHeight, Visible: !root.Hidden}
	if err := e.layoutChildren(tree, styles, table, root); err != nil {
		return nil, err
	}
	return table, nil
}

func (e *Engine) layoutChildren(tree *component.Tree, styles Styles, table Table, container *component.Node) error {
	err := e.placeChildren(tree, styles, table, container)
	if err != nil {
		e.logger.Error("Layout failed for container",
			zap.String("component", string(container.ID)),
			zap.Stringer("kind", container.Kind),
			zap.String("code", codeOf(err)),
			zap.Error(err))
	}
	return err
}

func (e *Engine) placeChildren(tree *component.Tree, styles Styles, table Table, container *component.Node) error {
	st, ok := styles[container.ID]
	if !ok {
		return style.NewMissingStyleError(string(container.ID))
	}

	var axis Axis
	switch {
	case st.ChildLayout.Horizontal():
		axis = Horizontal
	case st.ChildLayout.Vertical():
		axis = Vertical
	default:
		return fmt.Errorf("container %q: %w", container.ID, ErrCenterLayoutNotImplemented)
	}
	reverse := st.ChildLayout == style.StackLeft || st.ChildLayout == style.StackUp
	cross := crossAlignment(axis, st)

	box := table[container.ID]
	contentW, contentH, err := ContentBox(st, box.Width, box.Height)
	if err != nil {
		return err
	}
	padTop, padRight, padBottom, padLeft, err := Padding(st, contentW, contentH)
	if err != nil {
		return err
	}
	padMainStart, padMainEnd, padCrossStart, padCrossEnd := padLeft, padRight, padTop, padBottom
	mainExtent, crossExtent := box.Width, box.Height
	if axis == Vertical {
		padMainStart, padMainEnd, padCrossStart, padCrossEnd = padTop, padBottom, padLeft, padRight
		mainExtent, crossExtent = box.Height, box.Width
	}

	cursor := padMainStart
	if reverse {
		cursor = mainExtent - padMainEnd
	}

	for _, id := range container.Children {
		child, ok := tree.Node(id)
		if !ok {
			return fmt.Errorf("container %q child %q: %w", container.ID, id, component.ErrNotFound)
		}
		err := func() error {
			cst, ok := styles[id]
			if !ok {
				return style.NewMissingStyleError(string(id))
			}
			width, err := ResolveWidth(cst, contentW, contentH, true)
			if err != nil {
				return err
			}
			height, err := ResolveHeight(cst, contentW, contentH, true)
			if err != nil {
				return err
			}
			m, err := margins(cst, width, height)
			if err != nil {
				return err
			}

			mainSize, crossSize := width, height
			marginStart, marginEnd, marginCrossStart, marginCrossEnd := m.left, m.right, m.top, m.bottom
			if axis == Vertical {
				mainSize, crossSize = height, width
				marginStart, marginEnd, marginCrossStart, marginCrossEnd = m.top, m.bottom, m.left, m.right
			}

			var crossPos float32
			switch cross {
			case crossStart:
				crossPos = padCrossStart + marginCrossStart
			case crossEnd:
				crossPos = crossExtent - crossSize - padCrossEnd - marginCrossEnd
			default:
				crossPos = crossExtent/2 - crossSize/2
			}

			if reverse {
				cursor -= mainSize + marginEnd
			} else {
				cursor += marginStart
			}

			info := Info{Width: width, Height: height, Visible: !child.Hidden && table[container.ID].Visible}
			if axis == Horizontal {
				info.X, info.Y = cursor, crossPos
			} else {
				info.X, info.Y = crossPos, cursor
			}
			table[id] = info

			if child.Kind.IsContainer() {
				if err := e.layoutChildren(tree, styles, table, child); err != nil {
					return err
				}
			}

			if reverse {
				cursor -= marginStart
			} else {
				cursor += mainSize + marginEnd
			}
			return nil
		}()
		if err != nil {
			e.logger.Error("Layout failed for component",
				zap.String("component", string(id)),
				zap.Stringer("kind", child.Kind),
				zap.String("parent", string(container.ID)),
				zap.Error(err))
			return err
		}
	}
	return nil
}

type crossAlign int

const (
	crossStart crossAlign = iota
	crossCenter
	crossEnd
)

// crossAlignment maps verticalAlign for horizontal stacks and align for vertical stacks.
func crossAlignment(axis Axis, st *style.Style) crossAlign {
	if axis == Horizontal {
		switch st.VerticalAlign {
		case style.VAlignBottom:
			return crossEnd
		case style.VAlignMiddle:
			return crossCenter
		}
		return crossStart
	}
	switch st.Align {
	case style.AlignRight:
		return crossEnd
	case style.AlignCenter:
		return crossCenter
	}
	return crossStart
}

type resolvedEdges struct {
	top, right, bottom, left float32
}

// margins resolves a child's margins against the child's own size.
func margins(st *style.Style, width, height float32) (resolvedEdges, error) {
	var m resolvedEdges
	var err error
	if m.left, err = resolveEdge(Horizontal, st, st.Margin.Left, width, height); err != nil {
		return m, err
	}
	if m.right, err = resolveEdge(Horizontal, st, st.Margin.Right, width, height); err != nil {
		return m, err
	}
	if m.top, err = resolveEdge(Vertical, st, st.Margin.Top, width, height); err != nil {
		return m, err
	}
	m.bottom, err = resolveEdge(Vertical, st, st.Margin.Bottom, width, height)
	return m, err
}

func codeOf(err error) string {
	var coded style.Coded
	if errors.As(err, &coded) {
		return string(coded.Code())
	}
	return ""
}
