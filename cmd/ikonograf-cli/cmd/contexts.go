package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"ikonograf/internal/application/commands"
)

var contextsCmd = &cobra.Command{
	Use:   "contexts <theme>",
	Short: "Build or check a theme's context manifest",
	Long: `Build a theme's context manifest from its descriptor on first run, or
check the persisted manifest against the descriptor afterwards.

Differences are reported for manual reconciliation; the persisted manifest
is never rewritten.

Examples:
  ikonograf-cli contexts oxygen`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		theme, err := resolveTheme(args[0])
		if err != nil {
			return err
		}

		report, err := commands.NewContextsCommand(store, parser, theme).Execute(context.Background())
		if err != nil {
			return err
		}

		if report.Created {
			fmt.Printf("Created context manifest for %s with %d contexts\n", report.Theme, len(report.Manifest))
			for _, key := range report.Manifest.Keys() {
				fmt.Printf("  %s  (raw %q)\n", key, report.Manifest[key].RawContext)
			}
			return nil
		}

		for _, key := range report.InDescriptorNotManifest {
			fmt.Printf("in descriptor, not in manifest: %s\n", key)
		}
		for _, key := range report.InManifestNotDescriptor {
			fmt.Printf("in manifest, not in descriptor: %s\n", key)
		}
		for _, ch := range report.RawChanged {
			fmt.Printf("raw context changed for %s: %q -> %q\n", ch.Key, ch.OldRaw, ch.NewRaw)
		}
		for _, id := range report.MissingContext {
			fmt.Printf("catalog record without context: %s\n", id)
		}
		for name, ids := range report.InvalidContext {
			fmt.Printf("catalog context %q not in manifest: %v\n", name, ids)
		}
		if report.RawContextsChanged {
			fmt.Printf("registry raw contexts updated: %v\n", report.RawContexts)
		}

		if report.HasDifferences() {
			fmt.Println("Differences found; reconcile the manifest by hand.")
		} else {
			fmt.Printf("Manifest of %s matches the descriptor (%d contexts)\n", report.Theme, len(report.Manifest))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(contextsCmd)
}
