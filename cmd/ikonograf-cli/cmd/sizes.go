package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"ikonograf/internal/application/commands"
)

var sizesCmd = &cobra.Command{
	Use:   "sizes [theme...]",
	Short: "Rebuild registry size and context aggregates",
	Long: `Re-derive each theme's effective sizes and raw contexts from its
descriptor and refresh the registry. Without arguments every registered
theme is rebuilt.

Examples:
  ikonograf-cli sizes
  ikonograf-cli sizes oxygen breeze`,
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := commands.NewRebuildSizesCommand(store, parser, args).Execute(context.Background())
		if err != nil {
			return err
		}

		for _, ch := range report.Changes {
			status := "unchanged"
			if ch.Changed {
				status = "updated"
			}
			fmt.Printf("%s: %s  sizes=%v contexts=%v\n", ch.Theme, status, ch.EffectiveSizes, ch.RawContexts)
		}
		for id, err := range report.Failed {
			logger.Error("rebuild failed", "theme", id, "err", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sizesCmd)
}
