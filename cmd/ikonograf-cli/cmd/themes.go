package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"ikonograf/internal/domain"
)

var (
	themesAddDir   string
	themesAddLabel string
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List registered themes",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := store.LoadRegistry()
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Println("No registry yet; add a theme with 'themes add'.")
			return nil
		}
		if err != nil {
			return err
		}
		for _, id := range reg.ThemeIDs() {
			entry := reg[id]
			label := entry.Label
			if label == "" {
				label = id
			}
			fmt.Printf("%s  %s  sizes=%v contexts=%v\n", id, label, entry.EffectiveSizes, entry.RawContexts)
		}
		return nil
	},
}

var themesAddCmd = &cobra.Command{
	Use:   "add <id>",
	Short: "Register a theme",
	Long: `Register a theme in themes.json. The directory defaults to the theme
ID under the catalog root.

Examples:
  ikonograf-cli themes add oxygen --label "Oxygen"
  ikonograf-cli themes add breeze --dir breeze-icons`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		reg, err := store.LoadRegistry()
		if errors.Is(err, fs.ErrNotExist) {
			reg = domain.Registry{}
		} else if err != nil {
			return err
		}
		if _, ok := reg[id]; ok {
			return fmt.Errorf("theme %s is already registered", id)
		}

		reg[id] = domain.RegistryEntry{Dir: themesAddDir, Label: themesAddLabel}
		if err := store.SaveRegistry(reg); err != nil {
			return err
		}
		fmt.Printf("Registered %s\n", id)
		return nil
	},
}

func init() {
	themesAddCmd.Flags().StringVar(&themesAddDir, "dir", "", "theme directory relative to the catalog root (default: the ID)")
	themesAddCmd.Flags().StringVar(&themesAddLabel, "label", "", "display label (default: the ID)")
	rootCmd.AddCommand(themesCmd)
	themesCmd.AddCommand(themesAddCmd)
}
