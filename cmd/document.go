// File: cmd/document.go
package cmd

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/xkilldash9x/onegui/internal/assets"
	"github.com/xkilldash9x/onegui/internal/component"
	"github.com/xkilldash9x/onegui/internal/config"
	"github.com/xkilldash9x/onegui/internal/parser"
	"github.com/xkilldash9x/onegui/internal/render"
	"github.com/xkilldash9x/onegui/internal/scene"
	"github.com/xkilldash9x/onegui/internal/style"
)

// document is a parsed set of style sheets plus the scene they style.
type document struct {
	sheet *style.Sheet
	tree  *component.Tree
}

// loadSheets parses every sheet in order; later sheets override earlier ones by name.
func loadSheets(logger *zap.Logger, paths []string) (*style.Sheet, error) {
	p := parser.New(logger)
	merged := style.NewSheet()
	for _, path := range paths {
		f, closeFn, err := openInput(path)
		if err != nil {
			return nil, fmt.Errorf("opening style sheet: %w", err)
		}
		sheet, err := p.Parse(f)
		closeFn()
		if err != nil {
			return nil, fmt.Errorf("style sheet %s: %w", path, err)
		}
		merged.Merge(sheet)
	}
	return merged, nil
}

func loadDocument(logger *zap.Logger, stylePaths []string, scenePath string) (*document, error) {
	sheet, err := loadSheets(logger, stylePaths)
	if err != nil {
		return nil, err
	}
	f, closeFn, err := openInput(scenePath)
	if err != nil {
		return nil, fmt.Errorf("opening scene: %w", err)
	}
	defer closeFn()
	tree, err := scene.Load(f)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", scenePath, err)
	}
	logger.Debug("Loaded document",
		zap.Strings("styles", stylePaths),
		zap.String("scene", scenePath),
		zap.Int("style_count", sheet.Len()),
		zap.Int("components", tree.Len()))
	return &document{sheet: sheet, tree: tree}, nil
}

// newPipeline wires the asset services and the render pipeline from configuration.
func newPipeline(logger *zap.Logger, cfg config.Interface, doc *document) (*render.Pipeline, error) {
	rc, ac := cfg.Render(), cfg.Assets()
	interp, err := assets.ParseInterpolation(rc.Interpolation)
	if err != nil {
		return nil, err
	}
	root := os.DirFS(ac.Root)
	fonts := assets.NewFonts(logger, root, ac.FontCacheSize, rc.Antialias)
	images := assets.NewImages(logger, root, ac.ImageCacheSize, interp)
	return render.New(logger, doc.tree, doc.sheet, fonts, images, render.Settings{
		ChildOverlayAlpha: rc.ChildOverlayAlpha,
		SweepStale:        rc.SweepStale,
	}), nil
}
