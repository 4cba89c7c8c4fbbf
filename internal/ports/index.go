package ports

import (
	"time"

	"ikonograf/internal/domain"
)

// IndexedIcon is one row of the derived search index.
type IndexedIcon struct {
	Identifier string
	Theme      string
	Context    string
	File       string
	Label      string
	Symbolic   bool
	Sizes      []int
}

// IndexStats holds statistics from an index sync.
type IndexStats struct {
	ThemesIndexed int
	IconsIndexed  int
	Duration      time.Duration
}

// IconIndex is the disposable search index over the persisted catalogs,
// consumed by the browser and the MCP server. The JSON catalogs stay the
// source of truth; the index can always be rebuilt from them.
type IconIndex interface {
	Open(root string) error
	Close() error

	// NeedsFullRebuild reports whether the index is stale (schema change or
	// different catalog root).
	NeedsFullRebuild() bool

	// Sync rebuilds the index from the given catalogs.
	Sync(catalogs map[domain.Theme]*domain.Catalog) (*IndexStats, error)

	// Search returns icons whose identifier, filename, or label matches the
	// query, up to limit rows.
	Search(query string, limit int) ([]IndexedIcon, error)

	// Icons returns all indexed icons for a theme in identifier order.
	Icons(themeID string) ([]IndexedIcon, error)
}
