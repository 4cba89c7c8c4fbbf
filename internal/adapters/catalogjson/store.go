// Package catalogjson persists the catalog data files: the theme registry
// (themes.json) plus each theme's context manifest (contexts.json) and icon
// catalog (icons.json).
package catalogjson

import (
	"fmt"
	"path/filepath"

	"ikonograf/internal/application"
	"ikonograf/internal/domain"
	"ikonograf/internal/ports"
)

// Store implements ports.CatalogStore over a catalog root directory.
type Store struct {
	root string
}

var _ ports.CatalogStore = (*Store)(nil)

// NewStore creates a store for a catalog root.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// Root returns the catalog root directory.
func (s *Store) Root() string {
	return s.root
}

// RegistryPath returns the path of the theme registry file.
func (s *Store) RegistryPath() string {
	return filepath.Join(s.root, "themes.json")
}

// LoadRegistry reads the theme registry.
func (s *Store) LoadRegistry() (domain.Registry, error) {
	var reg domain.Registry
	if err := loadFile(s.RegistryPath(), &reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// SaveRegistry writes the theme registry.
func (s *Store) SaveRegistry(reg domain.Registry) error {
	return saveFile(s.RegistryPath(), reg)
}

// Theme resolves a registry entry to a theme with an absolute directory.
func (s *Store) Theme(id string) (domain.Theme, error) {
	reg, err := s.LoadRegistry()
	if err != nil {
		return domain.Theme{}, err
	}
	entry, ok := reg[id]
	if !ok {
		return domain.Theme{}, fmt.Errorf("theme %q: %w", id, application.ErrNotFound)
	}
	dir := entry.Dir
	if dir == "" {
		dir = id
	}
	label := entry.Label
	if label == "" {
		label = id
	}
	return domain.Theme{ID: id, Dir: filepath.Join(s.root, dir), Label: label}, nil
}

// ContextsPath returns the path of a theme's context manifest.
func (s *Store) ContextsPath(theme domain.Theme) string {
	return filepath.Join(theme.Dir, "contexts.json")
}

// LoadContexts reads a theme's context manifest.
func (s *Store) LoadContexts(theme domain.Theme) (domain.ContextManifest, error) {
	var m domain.ContextManifest
	if err := loadFile(s.ContextsPath(theme), &m); err != nil {
		return nil, err
	}
	return m, nil
}

// SaveContexts writes a theme's context manifest.
func (s *Store) SaveContexts(theme domain.Theme, m domain.ContextManifest) error {
	return saveFile(s.ContextsPath(theme), m)
}

// CatalogPath returns the path of a theme's icon catalog.
func (s *Store) CatalogPath(theme domain.Theme) string {
	return filepath.Join(theme.Dir, "icons.json")
}

// LoadCatalog reads a theme's icon catalog.
func (s *Store) LoadCatalog(theme domain.Theme) (*domain.Catalog, error) {
	var cat domain.Catalog
	if err := loadFile(s.CatalogPath(theme), &cat); err != nil {
		return nil, err
	}
	if cat.Icons == nil {
		cat.Icons = make(map[string]domain.CatalogRecord)
	}
	return &cat, nil
}

// SaveCatalog writes a theme's icon catalog.
func (s *Store) SaveCatalog(theme domain.Theme, cat *domain.Catalog) error {
	return saveFile(s.CatalogPath(theme), cat)
}
