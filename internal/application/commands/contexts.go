package commands

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"slices"

	"ikonograf/internal/domain"
	"ikonograf/internal/ports"
)

// DescriptorName is the theme descriptor filename inside a theme directory.
const DescriptorName = "index.theme"

// DescriptorPath returns the path of a theme's descriptor.
func DescriptorPath(theme domain.Theme) string {
	return filepath.Join(theme.Dir, DescriptorName)
}

// RawChange is a shared manifest key whose raw backing value differs between
// the descriptor and the persisted manifest.
type RawChange struct {
	Key    string
	OldRaw string
	NewRaw string
}

// ContextsReport is the outcome of a contexts build/check run. Differences
// are reported, never applied: the persisted manifest is the source of truth
// and reconciliation is manual.
type ContextsReport struct {
	Theme    string
	Created  bool
	Manifest domain.ContextManifest

	// Difference classes against the persisted manifest.
	InDescriptorNotManifest []string
	InManifestNotDescriptor []string
	RawChanged              []RawChange

	// Catalog validation findings.
	MissingContext []string            // records with no context value
	InvalidContext map[string][]string // context value -> record IDs

	// Registry aggregate update.
	RawContextsChanged bool
	RawContexts        []string
}

// HasDifferences reports whether manual reconciliation is required.
func (r *ContextsReport) HasDifferences() bool {
	return len(r.InDescriptorNotManifest) > 0 ||
		len(r.InManifestNotDescriptor) > 0 ||
		len(r.RawChanged) > 0 ||
		len(r.MissingContext) > 0 ||
		len(r.InvalidContext) > 0
}

// ContextsCommand builds a theme's context manifest on first run and checks
// it against the descriptor afterwards.
type ContextsCommand struct {
	store  ports.CatalogStore
	parser ports.DescriptorParser
	theme  domain.Theme
}

// NewContextsCommand creates a contexts build/check command.
func NewContextsCommand(store ports.CatalogStore, parser ports.DescriptorParser, theme domain.Theme) *ContextsCommand {
	return &ContextsCommand{store: store, parser: parser, theme: theme}
}

// Execute runs the build or check.
func (c *ContextsCommand) Execute(ctx context.Context) (*ContextsReport, error) {
	idx, err := c.parser.Parse(DescriptorPath(c.theme))
	if err != nil {
		return nil, err
	}

	fresh := domain.BuildContextManifest(idx)
	report := &ContextsReport{Theme: c.theme.ID}

	existing, err := c.store.LoadContexts(c.theme)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// First-time creation is the one case where the computed manifest
		// is written out.
		if err := c.store.SaveContexts(c.theme, fresh); err != nil {
			return nil, err
		}
		report.Created = true
		report.Manifest = fresh
	case err != nil:
		return nil, err
	default:
		report.Manifest = existing
		c.diff(report, existing, fresh)
		if err := c.validateCatalog(report, existing); err != nil {
			return nil, err
		}
	}

	if err := c.updateRegistry(report, idx); err != nil {
		return nil, err
	}
	return report, nil
}

func (c *ContextsCommand) diff(report *ContextsReport, existing, fresh domain.ContextManifest) {
	for _, key := range fresh.Keys() {
		if _, ok := existing[key]; !ok {
			report.InDescriptorNotManifest = append(report.InDescriptorNotManifest, key)
		}
	}
	for _, key := range existing.Keys() {
		if _, ok := fresh[key]; !ok {
			report.InManifestNotDescriptor = append(report.InManifestNotDescriptor, key)
			continue
		}
		if existing[key].RawContext != fresh[key].RawContext {
			report.RawChanged = append(report.RawChanged, RawChange{
				Key:    key,
				OldRaw: existing[key].RawContext,
				NewRaw: fresh[key].RawContext,
			})
		}
	}
}

// validateCatalog checks every catalog record's context against the
// manifest. A missing catalog is not an error; there is nothing to validate
// yet.
func (c *ContextsCommand) validateCatalog(report *ContextsReport, manifest domain.ContextManifest) error {
	cat, err := c.store.LoadCatalog(c.theme)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	for _, id := range cat.IDs() {
		rec := cat.Icons[id]
		if rec.Context == "" {
			report.MissingContext = append(report.MissingContext, id)
			continue
		}
		if _, ok := manifest[rec.Context]; !ok {
			if report.InvalidContext == nil {
				report.InvalidContext = make(map[string][]string)
			}
			report.InvalidContext[rec.Context] = append(report.InvalidContext[rec.Context], id)
		}
	}
	return nil
}

// updateRegistry refreshes the theme's raw-context aggregate in the
// registry. Not a curated field; applied automatically.
func (c *ContextsCommand) updateRegistry(report *ContextsReport, idx domain.DirectoryIndex) error {
	reg, err := c.store.LoadRegistry()
	if err != nil {
		return err
	}
	entry, ok := reg[c.theme.ID]
	if !ok {
		return nil
	}

	raw := idx.RawContexts()
	report.RawContexts = raw
	if slices.Equal(entry.RawContexts, raw) {
		return nil
	}
	entry.RawContexts = raw
	reg[c.theme.ID] = entry
	report.RawContextsChanged = true
	return c.store.SaveRegistry(reg)
}
