// File: cmd/watch.go
package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/onegui/internal/config"
	"github.com/xkilldash9x/onegui/internal/observability"
)

func newWatchCmd() *cobra.Command {
	var doc documentFlags
	var out string

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-render a scene whenever its style sheets or scene file change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := getConfigFromContext(ctx)
			if err != nil {
				return err
			}
			return runWatch(ctx, observability.GetLogger(), cfg, doc, out, nil)
		},
	}
	doc.register(watchCmd)
	watchCmd.Flags().StringVarP(&out, "out", "o", "", "output PNG file (required)")
	_ = watchCmd.MarkFlagRequired("out")
	return watchCmd
}

// runWatch renders once and then again after every change to the inputs, until
// ctx is cancelled. Render failures are logged and watching continues.
// rendered, when set, is called after every attempt.
func runWatch(ctx context.Context, logger *zap.Logger, cfg config.Interface, flags documentFlags, out string, rendered func(error)) error {
	renderOnce := func() error {
		doc, err := loadDocument(logger, flags.styles, flags.scene)
		if err != nil {
			return err
		}
		pipeline, err := newPipeline(logger, cfg, doc)
		if err != nil {
			return err
		}
		rc := cfg.Render()
		if err := pipeline.Update(float32(rc.ViewportWidth), float32(rc.ViewportHeight)); err != nil {
			return err
		}
		if err := pipeline.Preload(ctx, cfg.Assets().PreloadConcurrency); err != nil {
			return err
		}
		img, err := pipeline.Render()
		if err != nil {
			return err
		}
		return savePNG(out, img)
	}
	attempt := func() {
		err := renderOnce()
		if err != nil {
			logger.Error("Render failed; waiting for the next change", zap.Error(err))
		} else {
			logger.Info("Rendered", zap.String("out", out))
		}
		if rendered != nil {
			rendered(err)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Close()

	// Directories are watched so editors that replace files on save are still seen.
	watched := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, p := range append(append([]string{}, flags.styles...), flags.scene) {
		if p == "-" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", p, err)
		}
		watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	attempt()

	debounce := cfg.Watch().Debounce
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopped watching")
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil || !watched[abs] {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				logger.Debug("Input changed", zap.String("path", ev.Name), zap.Stringer("op", ev.Op))
				timer.Reset(debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("File watcher error", zap.Error(err))
		case <-timer.C:
			attempt()
		}
	}
}
