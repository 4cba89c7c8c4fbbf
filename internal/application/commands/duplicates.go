package commands

import (
	"context"
	"errors"
	"io/fs"

	"ikonograf/internal/domain"
	"ikonograf/internal/ports"
)

// DuplicatesResult pairs the engine's report with the per-file failures
// collected while hashing.
type DuplicatesResult struct {
	Theme      string
	Report     *domain.DuplicateReport
	FileErrors []error
}

// DuplicatesCommand hashes a theme's icon files and runs the duplicate
// analysis. Decision support only: the catalog is read for curation state
// and never written.
type DuplicatesCommand struct {
	store  ports.CatalogStore
	parser ports.DescriptorParser
	hasher ports.Hasher
	theme  domain.Theme
}

// NewDuplicatesCommand creates a duplicate analysis command.
func NewDuplicatesCommand(store ports.CatalogStore, parser ports.DescriptorParser, hasher ports.Hasher, theme domain.Theme) *DuplicatesCommand {
	return &DuplicatesCommand{store: store, parser: parser, hasher: hasher, theme: theme}
}

// Execute hashes the theme and computes the duplicate report.
func (c *DuplicatesCommand) Execute(ctx context.Context) (*DuplicatesResult, error) {
	idx, err := c.parser.Parse(DescriptorPath(c.theme))
	if err != nil {
		return nil, err
	}
	contexts, err := c.store.LoadContexts(c.theme)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	inv, fileErrs, err := c.hasher.HashTheme(ctx, c.theme, idx, contexts)
	if err != nil {
		return nil, err
	}

	cat, err := c.store.LoadCatalog(c.theme)
	if errors.Is(err, fs.ErrNotExist) {
		cat = nil
	} else if err != nil {
		return nil, err
	}

	return &DuplicatesResult{
		Theme:      c.theme.ID,
		Report:     domain.AnalyzeDuplicates(inv, cat),
		FileErrors: fileErrs,
	}, nil
}
