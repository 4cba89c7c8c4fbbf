package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"slices"

	"ikonograf/internal/domain"
	"ikonograf/internal/ports"
)

// FilenameConflict is one filename discovered under more than one raw
// context. Each context yields a distinct identifier, so the same artwork
// ends up cataloged twice.
type FilenameConflict struct {
	File        string
	RawContexts []string
	IDs         []string
}

// ConflictsReport lists cross-context filename collisions.
type ConflictsReport struct {
	Theme     string
	Conflicts []FilenameConflict
}

// ConflictsCommand finds filenames shared between contexts in a theme.
type ConflictsCommand struct {
	store   ports.CatalogStore
	parser  ports.DescriptorParser
	themefs ports.ThemeFS
	theme   domain.Theme
}

// NewConflictsCommand creates a filename conflict detection command.
func NewConflictsCommand(store ports.CatalogStore, parser ports.DescriptorParser, themefs ports.ThemeFS, theme domain.Theme) *ConflictsCommand {
	return &ConflictsCommand{store: store, parser: parser, themefs: themefs, theme: theme}
}

// Execute scans the theme and groups identifiers by filename.
func (c *ConflictsCommand) Execute(ctx context.Context) (*ConflictsReport, error) {
	idx, err := c.parser.Parse(DescriptorPath(c.theme))
	if err != nil {
		return nil, err
	}
	contexts, err := c.store.LoadContexts(c.theme)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("no context manifest for %s: run contexts first", c.theme.ID)
	}

	inv, _, err := c.themefs.Scan(c.theme, idx, contexts)
	if err != nil {
		return nil, err
	}

	type group struct {
		raws map[string]bool
		ids  []string
	}
	byFile := make(map[string]*group)
	for _, id := range inv.IDs() {
		icon := inv[id]
		g := byFile[icon.File]
		if g == nil {
			g = &group{raws: make(map[string]bool)}
			byFile[icon.File] = g
		}
		if icon.RawContext != "" {
			g.raws[icon.RawContext] = true
		}
		g.ids = append(g.ids, id)
	}

	report := &ConflictsReport{Theme: c.theme.ID}
	files := make([]string, 0, len(byFile))
	for f := range byFile {
		files = append(files, f)
	}
	slices.Sort(files)

	for _, f := range files {
		g := byFile[f]
		if len(g.ids) < 2 {
			continue
		}
		raws := make([]string, 0, len(g.raws))
		for r := range g.raws {
			raws = append(raws, r)
		}
		slices.Sort(raws)
		slices.Sort(g.ids)
		report.Conflicts = append(report.Conflicts, FilenameConflict{File: f, RawContexts: raws, IDs: g.ids})
	}
	return report, nil
}
