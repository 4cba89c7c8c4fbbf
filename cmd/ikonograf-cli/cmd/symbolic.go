package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"ikonograf/internal/application/commands"
)

var symbolicCmd = &cobra.Command{
	Use:   "symbolic <theme>",
	Short: "Tag monochrome icons in the catalog",
	Long: `Collect symbolic icon evidence from disk (symbolic directories and
-symbolic filename stems) and tag the matching catalog records.

Additive: records that already carry a symbolic value are left alone.

Examples:
  ikonograf-cli symbolic oxygen`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		theme, err := resolveTheme(args[0])
		if err != nil {
			return err
		}

		report, err := commands.NewSymbolicCommand(store, walker, theme).Execute(context.Background())
		if err != nil {
			return err
		}

		fmt.Printf("%d symbolic filenames collected\n", report.Collected)
		for _, id := range report.Updated {
			fmt.Printf("tagged: %s\n", id)
		}
		for _, f := range report.Missing {
			fmt.Printf("no catalog record for: %s\n", f)
		}
		fmt.Printf("%d tagged, %d already set, %d unmatched\n",
			len(report.Updated), report.AlreadySet, len(report.Missing))
		return nil
	},
}

var variantsCmd = &cobra.Command{
	Use:   "variants <theme>",
	Short: "Report color-variant artwork in a theme",
	Long: `List files whose path carries a color-variant marker (-Dark or -Light).
Report only; variants never feed curation automatically.

Examples:
  ikonograf-cli variants oxygen`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		theme, err := resolveTheme(args[0])
		if err != nil {
			return err
		}

		report, err := commands.NewVariantsCommand(walker, theme).Execute(context.Background())
		if err != nil {
			return err
		}

		if len(report.Hits) == 0 {
			fmt.Println("No variant artwork found.")
			return nil
		}
		for _, hit := range report.Hits {
			fmt.Printf("%-5s  %s\n", hit.Variant, hit.RelPath)
		}
		fmt.Printf("%d variant files\n", len(report.Hits))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(symbolicCmd)
	rootCmd.AddCommand(variantsCmd)
}
