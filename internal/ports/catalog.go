package ports

import "ikonograf/internal/domain"

// CatalogStore owns the persisted catalog state for a catalog root: the
// theme registry plus each theme's context manifest and icon catalog.
// Loaded once per run and passed to components; there is no ambient global.
// Load methods return fs.ErrNotExist-wrapped errors for missing files so
// callers can distinguish first-time builds from corruption.
type CatalogStore interface {
	LoadRegistry() (domain.Registry, error)
	SaveRegistry(reg domain.Registry) error
	RegistryPath() string

	// Theme resolves a registry entry to a Theme with an absolute directory.
	Theme(id string) (domain.Theme, error)

	LoadContexts(theme domain.Theme) (domain.ContextManifest, error)
	SaveContexts(theme domain.Theme, m domain.ContextManifest) error
	ContextsPath(theme domain.Theme) string

	LoadCatalog(theme domain.Theme) (*domain.Catalog, error)
	SaveCatalog(theme domain.Theme, cat *domain.Catalog) error
	CatalogPath(theme domain.Theme) string
}
