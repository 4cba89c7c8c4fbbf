package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"ikonograf/internal/application/commands"
)

var (
	iconsUpdateInserts bool
	iconsUpdateSizes   bool
)

var iconsCmd = &cobra.Command{
	Use:   "icons <theme>",
	Short: "Build or reconcile a theme's icon catalog",
	Long: `Build a theme's icon catalog from a disk scan on first run, or reconcile
catalog against disk afterwards.

Reconciliation reports icons on disk missing from the catalog, catalog
records with no backing file (classified by re-walking for the literal
filename), size mismatches, and duplicate paths. With --update-inserts
and --update-sizes the additive mutations are applied; curated fields
are never touched.

Examples:
  ikonograf-cli icons oxygen
  ikonograf-cli icons oxygen --update-inserts --update-sizes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		theme, err := resolveTheme(args[0])
		if err != nil {
			return err
		}

		rc := commands.NewReconcileCommand(store, parser, walker, theme)
		if iconsUpdateInserts {
			rc = rc.WithUpdateInserts()
		}
		if iconsUpdateSizes {
			rc = rc.WithUpdateSizes()
		}

		report, err := rc.Execute(context.Background())
		if err != nil {
			return err
		}

		stats := report.ScanStats
		fmt.Printf("%d files seen, %d icon files, %d symlinks skipped\n",
			stats.FilesSeen, stats.IconFiles, stats.SymlinksSkipped)
		for _, dir := range stats.UnmatchedDirs() {
			fmt.Printf("unmatched directory %s: %v\n", dir, stats.Unmatched[dir])
		}
		for _, msg := range stats.ReadErrors {
			logger.Warn("read error", "path", msg)
		}

		if report.Created {
			fmt.Printf("Created catalog for %s with %d icons\n", report.Theme, report.CatalogCount)
			return nil
		}

		for _, id := range report.OnDiskNotInCatalog {
			fmt.Printf("on disk, not in catalog: %s\n", id)
		}
		for _, m := range report.InCatalogNotOnDisk {
			fmt.Printf("in catalog, not on disk: %s (%s)\n", m.ID, m.Classification)
			for _, p := range m.SymlinkPaths {
				fmt.Printf("    symlink: %s\n", p)
			}
		}
		for _, m := range report.SizeMismatches {
			fmt.Printf("size mismatch %s: catalog %v, disk %v\n", m.ID, m.CatalogSizes, m.DiskSizes)
		}
		for _, c := range report.PathConflicts {
			fmt.Printf("path conflict %s size %d%s: %v\n", c.ID, c.Size, c.Ext, c.Paths)
		}

		if report.Inserted > 0 || report.SizesUpdated > 0 {
			fmt.Printf("Applied %d insert(s), %d size update(s)\n", report.Inserted, report.SizesUpdated)
		}
		if report.Clean() {
			fmt.Printf("Catalog of %s matches disk (%d icons)\n", report.Theme, report.CatalogCount)
		}
		return nil
	},
}

func init() {
	iconsCmd.Flags().BoolVar(&iconsUpdateInserts, "update-inserts", false, "insert records for icons missing from the catalog")
	iconsCmd.Flags().BoolVar(&iconsUpdateSizes, "update-sizes", false, "refresh size lists on mismatched records")
	rootCmd.AddCommand(iconsCmd)
}
