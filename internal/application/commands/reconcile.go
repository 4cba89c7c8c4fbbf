package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"ikonograf/internal/domain"
	"ikonograf/internal/ports"
)

// MissingIcon is a catalog record whose identifier no longer appears in any
// indexed directory, classified by a literal-filename re-walk.
type MissingIcon struct {
	ID             string
	Record         domain.CatalogRecord
	Classification domain.Classification
	RealPaths      []string
	SymlinkPaths   []string
}

// SizeMismatch is an identifier present in both catalog and disk scan with
// differing size sets. Compared order-insensitively, reported ordered.
type SizeMismatch struct {
	ID           string
	CatalogSizes []int
	DiskSizes    []int
}

// PathConflict is more than one file of the same extension at one
// (identifier, size). One file per distinct extension is not a conflict.
type PathConflict struct {
	ID    string
	Size  int
	Ext   string
	Paths []string
}

// ReconcileReport is the outcome of an inventory build/check run.
type ReconcileReport struct {
	Theme           string
	Created         bool
	DiscoveredCount int
	CatalogCount    int

	OnDiskNotInCatalog []string
	InCatalogNotOnDisk []MissingIcon
	SizeMismatches     []SizeMismatch
	PathConflicts      []PathConflict

	Inserted     int
	SizesUpdated int

	Inventory domain.Inventory
	ScanStats *domain.ScanStats
}

// Clean reports whether catalog and disk fully agree.
func (r *ReconcileReport) Clean() bool {
	return len(r.OnDiskNotInCatalog) == 0 &&
		len(r.InCatalogNotOnDisk) == 0 &&
		len(r.SizeMismatches) == 0 &&
		len(r.PathConflicts) == 0
}

// ReconcileCommand builds a theme's icon catalog from a disk scan on first
// run and reconciles catalog against disk afterwards. Mutations are strictly
// additive: insert missing records, refresh size lists. Curated fields are
// never touched.
type ReconcileCommand struct {
	store   ports.CatalogStore
	parser  ports.DescriptorParser
	themefs ports.ThemeFS
	theme   domain.Theme

	updateInserts bool
	updateSizes   bool
}

// NewReconcileCommand creates an inventory build/check command.
func NewReconcileCommand(store ports.CatalogStore, parser ports.DescriptorParser, themefs ports.ThemeFS, theme domain.Theme) *ReconcileCommand {
	return &ReconcileCommand{store: store, parser: parser, themefs: themefs, theme: theme}
}

// WithUpdateInserts enables additive insertion of missing records.
func (c *ReconcileCommand) WithUpdateInserts() *ReconcileCommand {
	c.updateInserts = true
	return c
}

// WithUpdateSizes enables refreshing size lists on mismatched records.
func (c *ReconcileCommand) WithUpdateSizes() *ReconcileCommand {
	c.updateSizes = true
	return c
}

// Execute runs the build or reconciliation.
func (c *ReconcileCommand) Execute(ctx context.Context) (*ReconcileReport, error) {
	idx, err := c.parser.Parse(DescriptorPath(c.theme))
	if err != nil {
		return nil, err
	}
	contexts, err := c.store.LoadContexts(c.theme)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("theme %s has no context manifest; run the contexts build first: %w", c.theme.ID, err)
		}
		return nil, err
	}

	inv, stats, err := c.themefs.Scan(c.theme, idx, contexts)
	if err != nil {
		return nil, err
	}

	report := &ReconcileReport{
		Theme:           c.theme.ID,
		DiscoveredCount: len(inv),
		Inventory:       inv,
		ScanStats:       stats,
	}
	report.PathConflicts = findPathConflicts(inv)

	cat, err := c.store.LoadCatalog(c.theme)
	if errors.Is(err, fs.ErrNotExist) {
		cat = c.buildCatalog(inv)
		if err := c.store.SaveCatalog(c.theme, cat); err != nil {
			return nil, err
		}
		report.Created = true
		report.CatalogCount = len(cat.Icons)
		return report, nil
	}
	if err != nil {
		return nil, err
	}
	report.CatalogCount = len(cat.Icons)

	for _, id := range inv.IDs() {
		if _, ok := cat.Icons[id]; !ok {
			report.OnDiskNotInCatalog = append(report.OnDiskNotInCatalog, id)
		}
	}
	for _, id := range cat.IDs() {
		rec := cat.Icons[id]
		disk, ok := inv[id]
		if !ok {
			missing := MissingIcon{ID: id, Record: rec}
			located, locErr := c.themefs.LocateFilename(c.theme, rec.File)
			if locErr == nil {
				missing.RealPaths = located.RealPaths
				missing.SymlinkPaths = located.SymlinkPaths
			}
			missing.Classification = located.Classify()
			report.InCatalogNotOnDisk = append(report.InCatalogNotOnDisk, missing)
			continue
		}
		if !sameSizeSet(rec.Sizes, disk.Sizes) {
			report.SizeMismatches = append(report.SizeMismatches, SizeMismatch{
				ID:           id,
				CatalogSizes: sortedCopy(rec.Sizes),
				DiskSizes:    sortedCopy(disk.Sizes),
			})
		}
	}

	if err := c.applyUpdates(report, cat, inv); err != nil {
		return nil, err
	}
	return report, nil
}

// applyUpdates performs the enabled additive mutations and rewrites the
// catalog once at the end if anything changed.
func (c *ReconcileCommand) applyUpdates(report *ReconcileReport, cat *domain.Catalog, inv domain.Inventory) error {
	mutated := false

	if c.updateInserts {
		for _, id := range report.OnDiskNotInCatalog {
			cat.Icons[id] = newRecord(inv[id])
			report.Inserted++
			mutated = true
		}
	}
	if c.updateSizes {
		for _, mismatch := range report.SizeMismatches {
			rec := cat.Icons[mismatch.ID]
			rec.Sizes = mismatch.DiskSizes
			cat.Icons[mismatch.ID] = rec
			report.SizesUpdated++
			mutated = true
		}
	}

	if !mutated {
		return nil
	}
	report.CatalogCount = len(cat.Icons)
	return c.store.SaveCatalog(c.theme, cat)
}

func (c *ReconcileCommand) buildCatalog(inv domain.Inventory) *domain.Catalog {
	cat := &domain.Catalog{
		Comment: fmt.Sprintf("Auto-maintained catalog for %s. Icons/sizes are additive only.", c.theme.ID),
		Icons:   make(map[string]domain.CatalogRecord, len(inv)),
	}
	for id, icon := range inv {
		cat.Icons[id] = newRecord(icon)
	}
	return cat
}

func newRecord(icon *domain.DiscoveredIcon) domain.CatalogRecord {
	rec := domain.CatalogRecord{
		File:    icon.File,
		Sizes:   sortedCopy(icon.Sizes),
		Context: icon.Context,
	}
	if strings.HasSuffix(domain.Stem(icon.File), "-symbolic") {
		symbolic := true
		rec.Symbolic = &symbolic
	}
	return rec
}

func findPathConflicts(inv domain.Inventory) []PathConflict {
	var conflicts []PathConflict
	for _, id := range inv.IDs() {
		icon := inv[id]
		for _, size := range icon.Sizes {
			byExt := make(map[string][]string)
			for _, p := range icon.Paths[size] {
				ext := strings.ToLower(filepath.Ext(p))
				byExt[ext] = append(byExt[ext], p)
			}
			exts := make([]string, 0, len(byExt))
			for ext := range byExt {
				exts = append(exts, ext)
			}
			slices.Sort(exts)
			for _, ext := range exts {
				if len(byExt[ext]) > 1 {
					paths := byExt[ext]
					slices.Sort(paths)
					conflicts = append(conflicts, PathConflict{ID: id, Size: size, Ext: ext, Paths: paths})
				}
			}
		}
	}
	return conflicts
}

func sameSizeSet(a, b []int) bool {
	return slices.Equal(sortedCopy(a), sortedCopy(b))
}

func sortedCopy(s []int) []int {
	out := slices.Clone(s)
	slices.Sort(out)
	return out
}
