// File: cmd/layout.go
package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/onegui/internal/config"
	"github.com/xkilldash9x/onegui/internal/layout"
	"github.com/xkilldash9x/onegui/internal/observability"
	"github.com/xkilldash9x/onegui/internal/scene"
)

// documentFlags are shared by every command that loads a document.
type documentFlags struct {
	styles []string
	scene  string
}

func (d *documentFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&d.styles, "styles", "s", nil, "style sheet files, later ones override earlier ones (required)")
	cmd.Flags().StringVar(&d.scene, "scene", "", "scene document, '-' for stdin (required)")
	cmd.Flags().Int("width", 0, "viewport width in pixels (default from config)")
	cmd.Flags().Int("height", 0, "viewport height in pixels (default from config)")
	_ = cmd.MarkFlagRequired("styles")
	_ = cmd.MarkFlagRequired("scene")
}

func newLayoutCmd() *cobra.Command {
	var doc documentFlags
	var format string

	layoutCmd := &cobra.Command{
		Use:   "layout",
		Short: "Run one layout pass and print the geometry table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := getConfigFromContext(ctx)
			if err != nil {
				return err
			}
			return runLayout(ctx, observability.GetLogger(), cfg, cmd.OutOrStdout(), doc, format)
		},
	}
	doc.register(layoutCmd)
	layoutCmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	return layoutCmd
}

func runLayout(ctx context.Context, logger *zap.Logger, cfg config.Interface, out io.Writer, flags documentFlags, format string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	doc, err := loadDocument(logger, flags.styles, flags.scene)
	if err != nil {
		return err
	}
	rc := cfg.Render()
	table, _, err := layout.NewEngine(logger).Run(doc.tree, doc.sheet, float32(rc.ViewportWidth), float32(rc.ViewportHeight))
	if err != nil {
		return fmt.Errorf("layout failed: %w", err)
	}
	logger.Info("Layout complete",
		zap.Int("components", len(table)),
		zap.Int("width", rc.ViewportWidth),
		zap.Int("height", rc.ViewportHeight))
	return scene.WriteGeometry(out, table, format)
}
