package commands

import (
	"context"
	"slices"

	"ikonograf/internal/domain"
	"ikonograf/internal/ports"
)

// SymbolicReport is the outcome of a symbolic tagging pass.
type SymbolicReport struct {
	Theme      string
	Collected  int
	Updated    []string
	AlreadySet int
	// Missing lists symbolic filenames with no catalog record.
	Missing []string
}

// SymbolicCommand tags monochrome icons in the catalog from disk evidence.
// Additive: records with an existing symbolic value are left alone.
type SymbolicCommand struct {
	store   ports.CatalogStore
	themefs ports.ThemeFS
	theme   domain.Theme
}

// NewSymbolicCommand creates a symbolic tagging command.
func NewSymbolicCommand(store ports.CatalogStore, themefs ports.ThemeFS, theme domain.Theme) *SymbolicCommand {
	return &SymbolicCommand{store: store, themefs: themefs, theme: theme}
}

// Execute collects symbolic evidence and applies additive tags.
func (c *SymbolicCommand) Execute(ctx context.Context) (*SymbolicReport, error) {
	symbolic, err := c.themefs.CollectSymbolic(c.theme)
	if err != nil {
		return nil, err
	}

	cat, err := c.store.LoadCatalog(c.theme)
	if err != nil {
		return nil, err
	}

	byFile := make(map[string][]string)
	for _, id := range cat.IDs() {
		rec := cat.Icons[id]
		if rec.File != "" {
			byFile[rec.File] = append(byFile[rec.File], id)
		}
	}

	report := &SymbolicReport{Theme: c.theme.ID, Collected: len(symbolic)}

	files := make([]string, 0, len(symbolic))
	for f := range symbolic {
		files = append(files, f)
	}
	slices.Sort(files)

	for _, f := range files {
		ids, ok := byFile[f]
		if !ok {
			report.Missing = append(report.Missing, f)
			continue
		}
		for _, id := range ids {
			rec := cat.Icons[id]
			if rec.Symbolic != nil {
				report.AlreadySet++
				continue
			}
			yes := true
			rec.Symbolic = &yes
			cat.Icons[id] = rec
			report.Updated = append(report.Updated, id)
		}
	}

	if len(report.Updated) > 0 {
		if err := c.store.SaveCatalog(c.theme, cat); err != nil {
			return nil, err
		}
	}
	return report, nil
}

// VariantsReport lists files carrying a color-variant marker.
type VariantsReport struct {
	Theme string
	Hits  []domain.VariantHit
}

// VariantsCommand reports color-variant artwork (-Dark/-Light path
// markers). Report only; variants share the duplicate engine's file-info
// structure but never feed curation automatically.
type VariantsCommand struct {
	themefs ports.ThemeFS
	theme   domain.Theme
}

// NewVariantsCommand creates a color-variant report command.
func NewVariantsCommand(themefs ports.ThemeFS, theme domain.Theme) *VariantsCommand {
	return &VariantsCommand{themefs: themefs, theme: theme}
}

// Execute collects variant hits.
func (c *VariantsCommand) Execute(ctx context.Context) (*VariantsReport, error) {
	hits, err := c.themefs.CollectVariants(c.theme)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(hits, func(a, b domain.VariantHit) int {
		if a.RelPath < b.RelPath {
			return -1
		}
		if a.RelPath > b.RelPath {
			return 1
		}
		return 0
	})
	return &VariantsReport{Theme: c.theme.ID, Hits: hits}, nil
}
