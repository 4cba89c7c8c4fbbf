package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ikonograf/internal/application/commands"
	"ikonograf/internal/domain"
)

var duplicatesVerbose bool

var duplicatesCmd = &cobra.Command{
	Use:   "duplicates <theme>",
	Short: "Report byte-identical duplicate icons in a theme",
	Long: `Hash every icon file in a theme and report full duplicates (identical
at every size) and partial duplicates (identical at some sizes).

The report is decision support only; recording a duplicate relationship
in the catalog is a curator action.

Examples:
  ikonograf-cli duplicates oxygen
  ikonograf-cli duplicates oxygen -v`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		theme, err := resolveTheme(args[0])
		if err != nil {
			return err
		}

		result, err := commands.NewDuplicatesCommand(store, parser, hasher, theme).Execute(context.Background())
		if err != nil {
			return err
		}
		for _, ferr := range result.FileErrors {
			logger.Warn("skipped file", "err", ferr)
		}

		report := result.Report
		fmt.Printf("%d icons hashed\n\n", report.IconCount)

		if len(report.FullGroups) > 0 {
			fmt.Printf("=== Full duplicates (%d groups) ===\n", len(report.FullGroups))
			for _, g := range report.FullGroups {
				renderFullGroup(g)
			}
			fmt.Println()
		}

		if len(report.Partials) > 0 {
			fmt.Printf("=== Partial duplicates (%d icons) ===\n", len(report.Partials))
			for _, p := range report.Partials {
				renderPartial(p)
			}
			fmt.Println()
		}

		if len(report.Broken) > 0 {
			fmt.Printf("=== Broken references (%d) ===\n", len(report.Broken))
			for _, b := range report.Broken {
				fmt.Printf("  %s %s -> %s: %s\n", b.ID, b.Field, b.Target, b.Reason)
			}
		}

		if len(report.FullGroups) == 0 && len(report.Partials) == 0 && len(report.Broken) == 0 {
			fmt.Println("No duplicates found.")
		}
		return nil
	},
}

func renderFullGroup(g domain.FullDuplicateGroup) {
	var tags []string
	if g.Done {
		tags = append(tags, "[DONE]")
	}
	if len(g.Referrers) > 0 {
		tags = append(tags, "[HAS REFERRERS]")
	}
	suffix := ""
	if len(tags) > 0 {
		suffix = "  " + strings.Join(tags, " ")
	}
	fmt.Printf("  %d sizes%s\n", g.SizeCount, suffix)
	for _, id := range g.Icons {
		fmt.Printf("    %s\n", id)
	}
	for _, r := range g.Referrers {
		fmt.Printf("    referrer: %s\n", r)
	}
}

func renderPartial(p domain.PartialDuplicate) {
	fmt.Printf("  %s sizes=%v%s\n", p.ID, p.Sizes, partialTags(p.Flags))
	if p.DuplicateOf != "" {
		fmt.Printf("    duplicate_of: %s\n", p.DuplicateOf)
	}
	if len(p.AllSizesMatchWith) > 0 {
		fmt.Printf("    all sizes match: %s\n", strings.Join(p.AllSizesMatchWith, ", "))
	}
	if duplicatesVerbose {
		for _, sm := range p.PerSize {
			if len(sm.Others) == 0 {
				fmt.Printf("    %4d  unique  %s\n", sm.Size, sm.RelPath)
				continue
			}
			var others []string
			for _, o := range sm.Others {
				others = append(others, fmt.Sprintf("%s@%d", o.ID, o.Size))
			}
			fmt.Printf("    %4d  = %s\n", sm.Size, strings.Join(others, ", "))
		}
	} else if len(p.MatchSet) > 0 {
		fmt.Printf("    matches: %s\n", strings.Join(p.MatchSet, ", "))
	}
}

func partialTags(f domain.PartialFlags) string {
	var tags []string
	if f.AllSizesMatch {
		tags = append(tags, "[ALL SIZES MATCH]")
	}
	if f.Superset {
		tags = append(tags, "[SUSPECTED SUPERSET]")
	}
	if f.LargestMatch {
		tags = append(tags, "[REVIEW LARGEST]")
	}
	if f.MultipleFullDuplicates {
		tags = append(tags, "[REVIEW DUPLICATES]")
	}
	if f.HasReferrers {
		tags = append(tags, "[HAS REFERRERS]")
	}
	if f.DoneDuplicateOf {
		tags = append(tags, "[DONE]")
	}
	if f.DonePrimary {
		tags = append(tags, "[DONE-PRIMARY]")
	}
	if len(tags) == 0 {
		return ""
	}
	return "  " + strings.Join(tags, " ")
}

func init() {
	duplicatesCmd.Flags().BoolVarP(&duplicatesVerbose, "verbose", "v", false, "show per-size match detail")
	rootCmd.AddCommand(duplicatesCmd)
}
