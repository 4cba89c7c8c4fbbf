package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ikonograf/internal/application/commands"
)

var (
	labelsSimulate bool
	labelsReplace  []string
)

var labelsCmd = &cobra.Command{
	Use:   "labels <theme>",
	Short: "Generate display labels from filenames",
	Long: `Fill empty catalog labels from icon filenames: strip the extension,
apply replacements, turn separators into spaces, and capitalize each word.
"text-x-c++src.png" becomes "Text X Cpp Src".

Existing labels are never overwritten. Labels with unexpected characters
are flagged for review.

Examples:
  ikonograf-cli labels oxygen --simulate
  ikonograf-cli labels oxygen --replace "kmail=KMail"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		theme, err := resolveTheme(args[0])
		if err != nil {
			return err
		}

		var replacements [][2]string
		for _, r := range labelsReplace {
			from, to, ok := strings.Cut(r, "=")
			if !ok {
				return fmt.Errorf("invalid replacement %q: want old=new", r)
			}
			replacements = append(replacements, [2]string{from, to})
		}

		report, err := commands.NewLabelsCommand(store, theme).
			WithReplacements(replacements).
			WithSimulate(labelsSimulate).
			Execute(context.Background())
		if err != nil {
			return err
		}

		for _, g := range report.Generated {
			fmt.Printf("%s: %q -> %q\n", g.ID, g.File, g.Label)
		}
		for _, s := range report.Suspicious {
			fmt.Printf("suspicious label %s: %q (chars %v)\n", s.ID, s.Label, s.Chars)
		}

		action := "generated"
		if report.Simulated {
			action = "would generate"
		}
		fmt.Printf("%s %d label(s), %d already set\n", action, len(report.Generated), report.AlreadySet)
		return nil
	},
}

func init() {
	labelsCmd.Flags().BoolVar(&labelsSimulate, "simulate", false, "report without saving")
	labelsCmd.Flags().StringArrayVar(&labelsReplace, "replace", nil, "extra old=new replacement, repeatable")
	rootCmd.AddCommand(labelsCmd)
}
