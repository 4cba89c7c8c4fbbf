package ports

import (
	"context"

	"ikonograf/internal/domain"
)

// DescriptorParser turns a theme descriptor file into a directory index.
type DescriptorParser interface {
	Parse(path string) (domain.DirectoryIndex, error)
}

// ThemeFS walks a theme's files on disk. All methods exclude symbolic links
// from traversal; LocateFilename and CollectSymbolic inspect them without
// following directories.
type ThemeFS interface {
	// Scan builds the discovered-icon inventory for a theme, matching each
	// file's directory against the index and resolving contexts through the
	// manifest. Files in unmatched directories are tallied in the stats.
	Scan(theme domain.Theme, idx domain.DirectoryIndex, contexts domain.ContextManifest) (domain.Inventory, *domain.ScanStats, error)

	// LocateFilename re-walks the tree for a literal filename, splitting
	// hits into real files and symbolic links.
	LocateFilename(theme domain.Theme, filename string) (domain.LocateResult, error)

	// CollectSymbolic gathers the filenames of monochrome icons: files in
	// symbolic directories (symlinked files contribute their target's name)
	// and files whose stem ends in -symbolic.
	CollectSymbolic(theme domain.Theme) (map[string]bool, error)

	// CollectVariants reports files whose path carries a color-variant
	// marker (-Dark or -Light).
	CollectVariants(theme domain.Theme) ([]domain.VariantHit, error)
}

// Hasher builds the duplicate engine's input: one hashed file per
// (identifier, effective size) over all matching files in the theme tree.
// Per-file read failures are returned alongside the inventory and do not
// abort the batch.
type Hasher interface {
	HashTheme(ctx context.Context, theme domain.Theme, idx domain.DirectoryIndex, contexts domain.ContextManifest) (domain.HashedInventory, []error, error)
}
