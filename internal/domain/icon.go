package domain

import (
	"path/filepath"
	"slices"
	"strings"
)

// IconExtensions are the file extensions recognized as icon artwork.
var IconExtensions = map[string]bool{
	".svg":  true,
	".svgz": true,
	".png":  true,
}

// IsIconFile reports whether a filename has a recognized icon extension.
func IsIconFile(name string) bool {
	return IconExtensions[strings.ToLower(filepath.Ext(name))]
}

// Stem returns a filename without its extension.
func Stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Identifier derives the stable per-icon key: {theme}_{context}_{stem}, or
// {theme}_{stem} for themes without organizational contexts. Two files with
// the same context and stem collapse to one identifier regardless of size or
// extension: an identifier names one logical icon across all its variants.
func Identifier(themeID, context, filename string) string {
	stem := Stem(filename)
	if context == "" {
		return themeID + "_" + stem
	}
	return themeID + "_" + context + "_" + stem
}

// DiscoveredIcon is one logical icon found on disk. Ephemeral: rebuilt on
// every scan, never persisted.
type DiscoveredIcon struct {
	ID         string
	File       string           // bare filename of the first file seen
	Context    string           // normalized context, empty for context-less themes
	RawContext string           // the descriptor's raw label
	Sizes      []int            // sorted effective sizes
	Paths      map[int][]string // effective size -> theme-relative paths
}

// AddPath records a file at an effective size, keeping Sizes sorted and
// deduplicated.
func (d *DiscoveredIcon) AddPath(size int, relPath string) {
	if d.Paths == nil {
		d.Paths = make(map[int][]string)
	}
	d.Paths[size] = append(d.Paths[size], relPath)
	if !slices.Contains(d.Sizes, size) {
		d.Sizes = append(d.Sizes, size)
		slices.Sort(d.Sizes)
	}
}

// Inventory is the scanner's output, keyed by identifier.
type Inventory map[string]*DiscoveredIcon

// IDs returns the inventory's identifiers in sorted order.
func (inv Inventory) IDs() []string {
	ids := make([]string, 0, len(inv))
	for id := range inv {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// CatalogRecord is one persisted icon entry. Curated fields (Label, Hints,
// DuplicateOf, Duplicates) are only ever written by a curator or an explicit
// additive mutation; automated tooling must not overwrite them.
type CatalogRecord struct {
	File        string   `json:"file"`
	Sizes       []int    `json:"sizes"`
	Context     string   `json:"context,omitempty"`
	Label       string   `json:"label,omitempty"`
	Symbolic    *bool    `json:"symbolic,omitempty"`
	Hints       []string `json:"hints,omitempty"`
	DuplicateOf string   `json:"duplicate_of,omitempty"`
	Duplicates  []string `json:"duplicates,omitempty"`
}

// Catalog is the persisted icon catalog for one theme.
type Catalog struct {
	Comment string                   `json:"_comment,omitempty"`
	Icons   map[string]CatalogRecord `json:"icons"`
}

// IDs returns the catalog's identifiers in sorted order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.Icons))
	for id := range c.Icons {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// ContextInfo is one entry in a theme's context manifest, keyed by the
// normalized context identifier.
type ContextInfo struct {
	RawContext   string `json:"raw_context"`
	DisplayLabel string `json:"display_label"`
}

// ContextManifest maps normalized context identifiers to their backing raw
// labels. Once built it is the single source of truth: resolution never
// guesses, and differences against the descriptor are reported for manual
// reconciliation.
type ContextManifest map[string]ContextInfo

// Keys returns the manifest's normalized identifiers in sorted order.
func (m ContextManifest) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Resolve maps a raw context label to its normalized identifier. The second
// return is false when the manifest has no entry backing the raw label.
func (m ContextManifest) Resolve(raw string) (string, bool) {
	for id, info := range m {
		if info.RawContext == raw {
			return id, true
		}
	}
	return "", false
}

// ContextOverrides adjusts lowercased raw labels during the initial manifest
// build. Applied only on first-time creation, never during lookup.
var ContextOverrides = map[string]string{
	"applications": "apps",
}

// NormalizeContext derives the normalized identifier for a raw label the way
// the initial manifest build does: lowercase, then the override table.
func NormalizeContext(raw string) string {
	id := strings.ToLower(raw)
	if o, ok := ContextOverrides[id]; ok {
		return o
	}
	return id
}

// BuildContextManifest constructs a fresh manifest from a directory index.
// Directories without a context are skipped.
func BuildContextManifest(idx DirectoryIndex) ContextManifest {
	m := make(ContextManifest)
	for _, raw := range idx.RawContexts() {
		id := NormalizeContext(raw)
		if _, ok := m[id]; !ok {
			m[id] = ContextInfo{RawContext: raw, DisplayLabel: raw}
		}
	}
	return m
}
