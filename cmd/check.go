// File: cmd/check.go
package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/onegui/internal/observability"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <sheet>...",
		Short: "Parse style sheets and report errors",
		Long: `Parses each style sheet and lists the style names it defines.
The first syntax or value error is reported with its line and column.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(observability.GetLogger(), cmd, args)
		},
	}
}

func runCheck(logger *zap.Logger, cmd *cobra.Command, paths []string) error {
	for _, path := range paths {
		sheet, err := loadSheets(logger, []string{path})
		if err != nil {
			logger.Error("Style sheet is invalid", zap.String("path", path), zap.Error(err))
			return err
		}
		names := sheet.Names()
		logger.Info("Style sheet is valid", zap.String("path", path), zap.Int("styles", len(names)))
		cmd.Printf("%s: %d styles\n", path, len(names))
		for _, name := range names {
			cmd.Printf("  %s\n", name)
		}
	}
	return nil
}
