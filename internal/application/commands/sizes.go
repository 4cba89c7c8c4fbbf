package commands

import (
	"context"
	"errors"
	"io/fs"
	"slices"

	"ikonograf/internal/domain"
	"ikonograf/internal/ports"
)

// SizesChange records one theme whose registry row was rebuilt.
type SizesChange struct {
	Theme          string
	EffectiveSizes []int
	RawContexts    []string
	Changed        bool
}

// SizesReport is the outcome of a registry rebuild pass.
type SizesReport struct {
	Changes []SizesChange
	// Failed lists themes whose descriptor could not be parsed.
	Failed map[string]error
}

// RebuildSizesCommand refreshes the registry's per-theme effective size and
// raw context aggregates from each theme's descriptor.
type RebuildSizesCommand struct {
	store  ports.CatalogStore
	parser ports.DescriptorParser
	themes []string // empty means every registered theme
}

// NewRebuildSizesCommand creates a registry aggregate rebuild command.
func NewRebuildSizesCommand(store ports.CatalogStore, parser ports.DescriptorParser, themes []string) *RebuildSizesCommand {
	return &RebuildSizesCommand{store: store, parser: parser, themes: themes}
}

// Execute re-derives registry aggregates and saves the registry when
// anything changed.
func (c *RebuildSizesCommand) Execute(ctx context.Context) (*SizesReport, error) {
	reg, err := c.store.LoadRegistry()
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		reg = domain.Registry{}
	}

	ids := c.themes
	if len(ids) == 0 {
		ids = reg.ThemeIDs()
	}

	report := &SizesReport{Failed: make(map[string]error)}
	dirty := false

	for _, id := range ids {
		theme, err := c.store.Theme(id)
		if err != nil {
			report.Failed[id] = err
			continue
		}
		idx, err := c.parser.Parse(DescriptorPath(theme))
		if err != nil {
			report.Failed[id] = err
			continue
		}

		entry := reg[id]
		sizes := idx.EffectiveSizes()
		raws := idx.RawContexts()
		change := SizesChange{Theme: id, EffectiveSizes: sizes, RawContexts: raws}
		if !slices.Equal(entry.EffectiveSizes, sizes) || !slices.Equal(entry.RawContexts, raws) {
			entry.EffectiveSizes = sizes
			entry.RawContexts = raws
			reg[id] = entry
			change.Changed = true
			dirty = true
		}
		report.Changes = append(report.Changes, change)
	}

	if dirty {
		if err := c.store.SaveRegistry(reg); err != nil {
			return nil, err
		}
	}
	return report, nil
}
