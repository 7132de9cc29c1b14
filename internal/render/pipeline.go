// internal/render/pipeline.go
package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sort"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/xkilldash9x/onegui/internal/assets"
	"github.com/xkilldash9x/onegui/internal/component"
	"github.com/xkilldash9x/onegui/internal/layout"
)

// ErrNoLayout is returned by Render before the first successful Update.
var ErrNoLayout = errors.New("render called before a successful layout pass")

// Settings tune painting.
type Settings struct {
	// ChildOverlayAlpha darkens each composited child by a black overlay of this opacity.
	ChildOverlayAlpha float64
	// SweepStale drops cache entries for components not visited by a pass.
	SweepStale bool
}

// Pipeline lays out and renders one component tree. A pass must not run
// concurrently with mutation of the tree.
type Pipeline struct {
	logger *zap.Logger
	tree   *component.Tree
	source layout.StyleSource
	engine *layout.Engine
	fonts  *assets.Fonts
	images *assets.Images
	cfg    Settings

	cache          *Cache
	table          layout.Table
	styles         layout.Styles
	viewportHeight float32
}

// New creates a pipeline over tree. Styles are looked up in src on every Update.
// Nil services fall back to builtin fonts and an image service with no asset root.
func New(logger *zap.Logger, tree *component.Tree, src layout.StyleSource, fonts *assets.Fonts, images *assets.Images, cfg Settings) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	if fonts == nil {
		fonts = assets.NewFonts(logger, nil, 16, true)
	}
	if images == nil {
		images = assets.NewImages(logger, nil, 16, assets.Bilinear)
	}
	p := &Pipeline{
		logger: logger.Named("render"),
		tree:   tree,
		source: src,
		engine: layout.NewEngine(logger),
		fonts:  fonts,
		images: images,
		cfg:    cfg,
		cache:  NewCache(),
	}
	tree.OnRemove(func(removed []component.ID) {
		p.cache.Evict(removed)
		p.logger.Debug("Evicted removed components", zap.Int("count", len(removed)))
	})
	return p
}

// Update runs a layout pass for the given viewport. On failure the previous
// geometry is kept and Render keeps drawing it.
func (p *Pipeline) Update(viewportWidth, viewportHeight float32) error {
	table, styles, err := p.engine.Run(p.tree, p.source, viewportWidth, viewportHeight)
	if err != nil {
		return fmt.Errorf("layout pass: %w", err)
	}
	p.table, p.styles, p.viewportHeight = table, styles, viewportHeight
	return nil
}

// Render paints the tree from the last layout pass and returns the root image.
// The returned image is owned by the cache and must not be modified.
func (p *Pipeline) Render() (*image.RGBA, error) {
	if p.table == nil {
		return nil, ErrNoLayout
	}
	root, ok := p.tree.Node(p.tree.Root())
	if !ok {
		return nil, fmt.Errorf("render: %w", component.ErrNotFound)
	}

	p.cache.begin()
	img, _, err := p.render(root)
	if err != nil {
		return nil, err
	}
	if p.cfg.SweepStale {
		if n := p.cache.sweep(); n > 0 {
			p.logger.Debug("Swept stale cache entries", zap.Int("count", n))
		}
	}
	return img, nil
}

// Frame runs Update and then Render.
func (p *Pipeline) Frame(viewportWidth, viewportHeight float32) (*image.RGBA, error) {
	if err := p.Update(viewportWidth, viewportHeight); err != nil {
		return nil, err
	}
	return p.Render()
}

// Geometry returns the table from the last layout pass.
func (p *Pipeline) Geometry() layout.Table { return p.table }

// Image returns the last image rendered for id.
func (p *Pipeline) Image(id component.ID) (*image.RGBA, bool) { return p.cache.Image(id) }

func (p *Pipeline) Stats() Stats { return p.cache.Stats() }

// BackgroundImages lists the scaled background images the last layout pass needs,
// ordered by path and size.
func (p *Pipeline) BackgroundImages() []assets.ImageKey {
	seen := make(map[assets.ImageKey]bool)
	var keys []assets.ImageKey
	for id, st := range p.styles {
		info := p.table[id]
		if st.BackgroundImage == "" || !info.Visible {
			continue
		}
		key := assets.ImageKey{Path: st.BackgroundImage, Width: pixels(info.Width), Height: pixels(info.Height)}
		if key.Width == 0 || key.Height == 0 || seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Width != b.Width {
			return a.Width < b.Width
		}
		return a.Height < b.Height
	})
	return keys
}

// Preload loads the background images of the last layout pass ahead of Render.
func (p *Pipeline) Preload(ctx context.Context, concurrency int) error {
	if p.table == nil {
		return ErrNoLayout
	}
	keys := p.BackgroundImages()
	if len(keys) == 0 {
		return nil
	}
	p.logger.Debug("Preloading background images", zap.Int("count", len(keys)))
	return p.images.Preload(ctx, keys, concurrency)
}

// CacheLen is the number of components with a cached image.
func (p *Pipeline) CacheLen() int { return p.cache.Len() }

// render returns n's image and state, repainting only when the cached one is stale.
func (p *Pipeline) render(n *component.Node) (*image.RGBA, State, error) {
	info, ok := p.table[n.ID]
	if !ok {
		return nil, nil, fmt.Errorf("render %q: no geometry; the tree changed after the layout pass", n.ID)
	}
	width, height := pixels(info.Width), pixels(info.Height)

	var (
		state    State
		children []renderedChild
	)
	if n.Kind.IsContainer() {
		var err error
		children, state, err = p.renderChildren(n)
		if err != nil {
			return nil, nil, err
		}
	} else {
		state = leafState(n, p.styles[n.ID], p.viewportHeight)
	}

	if img, ok := p.cache.lookup(n.ID, state, width, height); ok {
		return img, state, nil
	}

	st, ok := p.styles[n.ID]
	if !ok {
		return nil, nil, fmt.Errorf("render %q: no resolved style", n.ID)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if width > 0 && height > 0 {
		pc := &paintContext{
			pipeline: p,
			node:     n,
			style:    st,
			width:    width,
			height:   height,
			children: children,
		}
		if err := painterFor(n.Kind)(pc, img); err != nil {
			p.logger.Error("Paint failed",
				zap.String("component", string(n.ID)),
				zap.Stringer("kind", n.Kind),
				zap.Error(err))
			return nil, nil, err
		}
	}
	p.cache.store(n.ID, state, img)
	return img, state, nil
}

type renderedChild struct {
	info layout.Info
	img  *image.RGBA
}

// renderChildren renders the visible children and builds the container state.
// Hidden subtrees are not painted, but their cache entries survive the pass.
func (p *Pipeline) renderChildren(n *component.Node) ([]renderedChild, State, error) {
	state := containerState{children: make([]childState, 0, len(n.Children))}
	var out []renderedChild
	for _, id := range n.Children {
		child, ok := p.tree.Node(id)
		if !ok {
			return nil, nil, fmt.Errorf("render %q child %q: %w", n.ID, id, component.ErrNotFound)
		}
		info := p.table[id]
		if !info.Visible {
			state.children = append(state.children, childState{id: id, state: p.dormantState(child)})
			continue
		}
		img, cs, err := p.render(child)
		if err != nil {
			return nil, nil, err
		}
		state.children = append(state.children, childState{id: id, visible: true, state: cs})
		out = append(out, renderedChild{info: info, img: img})
	}
	return out, state, nil
}

// dormantState computes the state of a hidden subtree and keeps its entries alive.
func (p *Pipeline) dormantState(n *component.Node) State {
	p.cache.touch(n.ID)
	if !n.Kind.IsContainer() {
		return leafState(n, p.styles[n.ID], p.viewportHeight)
	}
	state := containerState{children: make([]childState, 0, len(n.Children))}
	for _, id := range n.Children {
		child, ok := p.tree.Node(id)
		if !ok {
			continue
		}
		state.children = append(state.children, childState{id: id, state: p.dormantState(child)})
	}
	return state
}

func pixels(v float32) int {
	px := int(math32.Round(v))
	if px < 0 {
		return 0
	}
	return px
}
