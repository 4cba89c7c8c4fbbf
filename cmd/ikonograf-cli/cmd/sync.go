package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/cobra"

	"ikonograf/internal/adapters/sqlite"
	"ikonograf/internal/domain"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Rebuild the search index from the catalogs",
	Long: `Rebuild the SQLite search index from every registered theme's icon
catalog. The index is derived data consumed by the browser and the MCP
server; the JSON catalogs stay the source of truth.

Examples:
  ikonograf-cli sync`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := store.LoadRegistry()
		if err != nil {
			return err
		}

		catalogs := make(map[domain.Theme]*domain.Catalog)
		for _, id := range reg.ThemeIDs() {
			theme, err := store.Theme(id)
			if err != nil {
				return err
			}
			cat, err := store.LoadCatalog(theme)
			if errors.Is(err, fs.ErrNotExist) {
				logger.Warn("theme has no catalog yet", "theme", id)
				continue
			}
			if err != nil {
				return err
			}
			catalogs[theme] = cat
		}

		idx := sqlite.NewIndex()
		if err := idx.Open(rootPath); err != nil {
			return err
		}
		defer idx.Close()

		stats, err := idx.Sync(catalogs)
		if err != nil {
			return err
		}
		fmt.Printf("Indexed %d icons across %d themes in %s\n",
			stats.IconsIndexed, stats.ThemesIndexed, stats.Duration.Round(time.Millisecond))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
