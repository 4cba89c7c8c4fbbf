package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ikonograf/internal/application/commands"
)

var conflictsCmd = &cobra.Command{
	Use:   "conflicts <theme>",
	Short: "Find filenames shared between contexts",
	Long: `Scan a theme and list filenames that appear under more than one
context. Each context yields a distinct identifier, so the same artwork
ends up cataloged twice; such files are candidates for consolidation.

Examples:
  ikonograf-cli conflicts oxygen`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		theme, err := resolveTheme(args[0])
		if err != nil {
			return err
		}

		report, err := commands.NewConflictsCommand(store, parser, walker, theme).Execute(context.Background())
		if err != nil {
			return err
		}

		if len(report.Conflicts) == 0 {
			fmt.Println("No cross-context filename conflicts.")
			return nil
		}
		for _, c := range report.Conflicts {
			fmt.Printf("%s  contexts=%v\n", c.File, c.RawContexts)
			fmt.Printf("    %s\n", strings.Join(c.IDs, "\n    "))
		}
		fmt.Printf("%d conflicting filename(s)\n", len(report.Conflicts))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(conflictsCmd)
}
