// File: cmd/render.go
package cmd

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/fogleman/gg"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/xkilldash9x/onegui/internal/config"
	"github.com/xkilldash9x/onegui/internal/observability"
	"github.com/xkilldash9x/onegui/internal/render"
)

func newRenderCmd() *cobra.Command {
	var doc documentFlags
	var out string

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Render a scene to a PNG file",
		Long: `Lays out and renders the scene for the configured number of frames, paced at
the configured frame rate, and writes the final frame as a PNG. Background images
are preloaded before the first frame.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := getConfigFromContext(ctx)
			if err != nil {
				return err
			}
			return runRender(ctx, observability.GetLogger(), cfg, doc, out)
		},
	}
	doc.register(renderCmd)
	renderCmd.Flags().StringVarP(&out, "out", "o", "", "output PNG file (required)")
	renderCmd.Flags().Int("frames", 0, "number of frames to render (default from config)")
	renderCmd.Flags().Float64("fps", 0, "frame rate limit (default from config)")
	_ = renderCmd.MarkFlagRequired("out")
	return renderCmd
}

func runRender(ctx context.Context, logger *zap.Logger, cfg config.Interface, flags documentFlags, out string) error {
	doc, err := loadDocument(logger, flags.styles, flags.scene)
	if err != nil {
		return err
	}
	pipeline, err := newPipeline(logger, cfg, doc)
	if err != nil {
		return err
	}
	img, err := renderFrames(ctx, logger, cfg, pipeline)
	if err != nil {
		return err
	}
	if err := savePNG(out, img); err != nil {
		return err
	}
	stats := pipeline.Stats()
	logger.Info("Render complete",
		zap.String("out", out),
		zap.Int("frames", cfg.Render().Frames),
		zap.Int("cache_hits", stats.Hits),
		zap.Int("cache_misses", stats.Misses),
		zap.Int("cache_evictions", stats.Evictions))
	return nil
}

// renderFrames runs the configured number of frames, paced by a rate limiter,
// and returns the last one.
func renderFrames(ctx context.Context, logger *zap.Logger, cfg config.Interface, pipeline *render.Pipeline) (*image.RGBA, error) {
	rc, ac := cfg.Render(), cfg.Assets()
	width, height := float32(rc.ViewportWidth), float32(rc.ViewportHeight)

	if err := pipeline.Update(width, height); err != nil {
		return nil, err
	}
	if err := pipeline.Preload(ctx, ac.PreloadConcurrency); err != nil {
		return nil, err
	}

	limiter := rate.NewLimiter(rate.Limit(rc.FPS), 1)
	var img *image.RGBA
	for i := 0; i < rc.Frames; i++ {
		if err := limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		start := time.Now()
		var err error
		img, err = pipeline.Frame(width, height)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		logger.Debug("Rendered frame", zap.Int("frame", i), zap.Duration("took", time.Since(start)))
	}
	return img, nil
}

func savePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
