package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"ikonograf/internal/adapters/catalogjson"
	"ikonograf/internal/adapters/descriptor"
	"ikonograf/internal/adapters/filesystem"
	"ikonograf/internal/config"
	"ikonograf/internal/domain"
	"ikonograf/internal/ports"
)

var (
	rootPath string
	workers  int

	store  ports.CatalogStore
	parser ports.DescriptorParser
	walker ports.ThemeFS
	hasher ports.Hasher

	logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
)

var rootCmd = &cobra.Command{
	Use:   "ikonograf-cli",
	Short: "CLI for maintaining icon theme catalogs",
	Long: `ikonograf-cli maintains JSON catalogs over icon theme directories.

It builds per-theme context manifests and icon catalogs from each theme's
index.theme descriptor, reconciles catalog against disk, detects
byte-identical duplicate icons, and keeps the search index in sync.

All catalog mutations are additive; curated fields are never overwritten.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if rootPath == "" {
			rootPath = cfg.Root
		}
		rootPath = config.ExpandHome(rootPath)
		if workers == 0 {
			workers = cfg.Workers
		}

		store = catalogjson.NewStore(rootPath)
		parser = descriptor.New()
		walker = filesystem.NewWalker()
		hasher = filesystem.NewHasher(workers)
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootPath, "root", "r", "", "catalog root (default $IKONOGRAF_ROOT or ~/icons)")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "hashing workers (default one per CPU)")
}

// resolveTheme resolves a theme ID through the registry.
func resolveTheme(id string) (domain.Theme, error) {
	theme, err := store.Theme(id)
	if err != nil {
		return domain.Theme{}, fmt.Errorf("theme %s: %w", id, err)
	}
	return theme, nil
}
