package domain

import (
	"slices"
	"strings"
)

// SelectionType is how a directory's declared size is matched against a
// requested size, per the descriptor's Type key.
type SelectionType int

const (
	SelectionThreshold SelectionType = iota
	SelectionFixed
	SelectionScalable
)

// ParseSelectionType maps a descriptor Type value to a SelectionType.
// Unknown values fall back to Threshold, the descriptor default.
func ParseSelectionType(s string) SelectionType {
	switch strings.ToLower(s) {
	case "fixed":
		return SelectionFixed
	case "scalable":
		return SelectionScalable
	default:
		return SelectionThreshold
	}
}

func (t SelectionType) String() string {
	switch t {
	case SelectionFixed:
		return "Fixed"
	case SelectionScalable:
		return "Scalable"
	default:
		return "Threshold"
	}
}

// DirEntry is the metadata a theme descriptor declares for one directory.
type DirEntry struct {
	Path    string // theme-relative directory path
	Size    int
	Scale   int
	Context string // raw organizational label, empty if the directory declares none
	Type    SelectionType
	MinSize int // 0 when not declared
	MaxSize int // 0 when not declared
}

// EffectiveSize is the declared pixel size multiplied by the scale factor.
// A 64x64@2x directory holds 128px artwork.
func (e DirEntry) EffectiveSize() int {
	return e.Size * e.Scale
}

// DirectoryIndex maps theme-relative directory paths to their declared
// metadata. Built once per theme from the descriptor; immutable afterwards.
type DirectoryIndex map[string]DirEntry

// Lookup returns the entry for a theme-relative directory path.
func (idx DirectoryIndex) Lookup(dir string) (DirEntry, bool) {
	e, ok := idx[dir]
	return e, ok
}

// EffectiveSizes returns the sorted set of effective sizes declared by the
// index's directories.
func (idx DirectoryIndex) EffectiveSizes() []int {
	seen := make(map[int]bool)
	for _, e := range idx {
		seen[e.EffectiveSize()] = true
	}
	sizes := make([]int, 0, len(seen))
	for s := range seen {
		sizes = append(sizes, s)
	}
	slices.Sort(sizes)
	return sizes
}

// RawContexts returns the sorted set of raw context labels declared by the
// index's directories. Directories without a context are skipped.
func (idx DirectoryIndex) RawContexts() []string {
	seen := make(map[string]bool)
	for _, e := range idx {
		if e.Context != "" {
			seen[e.Context] = true
		}
	}
	contexts := make([]string, 0, len(seen))
	for c := range seen {
		contexts = append(contexts, c)
	}
	slices.Sort(contexts)
	return contexts
}

// Theme identifies one cataloged icon theme.
type Theme struct {
	ID    string // registry key, e.g. "oxygen"
	Dir   string // absolute path to the theme directory
	Label string
}

// RegistryEntry is one theme's row in the theme registry file.
type RegistryEntry struct {
	Dir            string   `json:"dir,omitempty"` // relative to the catalog root; defaults to the theme ID
	Label          string   `json:"label,omitempty"`
	EffectiveSizes []int    `json:"effective_sizes,omitempty"`
	RawContexts    []string `json:"raw_contexts,omitempty"`
}

// Registry maps theme IDs to their registry entries.
type Registry map[string]RegistryEntry

// ThemeIDs returns the registry's theme IDs in sorted order.
func (r Registry) ThemeIDs() []string {
	ids := make([]string, 0, len(r))
	for id := range r {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
