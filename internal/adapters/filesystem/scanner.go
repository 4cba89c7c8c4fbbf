// Package filesystem walks theme directories on disk: inventory scanning,
// literal-filename relocation, symbolic and color-variant collection, and
// content hashing. Symbolic links are never traversed into and never counted
// as discovered files.
package filesystem

import (
	"io/fs"
	"path/filepath"
	"strings"

	"ikonograf/internal/application"
	"ikonograf/internal/domain"
	"ikonograf/internal/ports"
)

// Walker implements ports.ThemeFS.
type Walker struct{}

var _ ports.ThemeFS = (*Walker)(nil)

// NewWalker creates a theme filesystem walker.
func NewWalker() *Walker {
	return &Walker{}
}

// Scan walks a theme's tree and builds the discovered-icon inventory.
// Subdirectories reached via symbolic links are not descended into and
// symlinked files are skipped. Files in directories absent from the index
// are tallied per directory and extension but excluded from the result.
func (w *Walker) Scan(theme domain.Theme, idx domain.DirectoryIndex, contexts domain.ContextManifest) (domain.Inventory, *domain.ScanStats, error) {
	inv := make(domain.Inventory)
	stats := &domain.ScanStats{Unmatched: make(map[string]map[string]int)}

	var fatal error
	err := filepath.WalkDir(theme.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			stats.ReadErrors = append(stats.ReadErrors, (&application.FileReadError{Path: path, Err: err}).Error())
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			stats.SymlinksSkipped++
			return nil
		}
		if d.IsDir() {
			return nil
		}
		stats.FilesSeen++

		name := d.Name()
		if !domain.IsIconFile(name) {
			return nil
		}
		stats.IconFiles++

		rel, relErr := filepath.Rel(theme.Dir, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		dir := parentDir(rel)

		entry, ok := idx.Lookup(dir)
		if !ok {
			ext := strings.ToLower(filepath.Ext(name))
			if stats.Unmatched[dir] == nil {
				stats.Unmatched[dir] = make(map[string]int)
			}
			stats.Unmatched[dir][ext]++
			return nil
		}

		context := ""
		if entry.Context != "" {
			id, ok := contexts.Resolve(entry.Context)
			if !ok {
				fatal = &application.UnknownContextError{Theme: theme.ID, RawContext: entry.Context}
				return fs.SkipAll
			}
			context = id
		}

		id := domain.Identifier(theme.ID, context, name)
		icon, ok := inv[id]
		if !ok {
			icon = &domain.DiscoveredIcon{
				ID:         id,
				File:       name,
				Context:    context,
				RawContext: entry.Context,
			}
			inv[id] = icon
		}
		icon.AddPath(entry.EffectiveSize(), rel)
		return nil
	})
	if err != nil {
		return nil, stats, err
	}
	if fatal != nil {
		return nil, stats, fatal
	}
	return inv, stats, nil
}

// LocateFilename re-walks the tree looking for a literal filename, splitting
// hits into real files and symbolic links. Used to disambiguate "genuinely
// missing" from "only reachable through a theme-variant symlink forest".
func (w *Walker) LocateFilename(theme domain.Theme, filename string) (domain.LocateResult, error) {
	var result domain.LocateResult
	err := filepath.WalkDir(theme.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() || d.Name() != filename {
			return nil
		}
		rel, relErr := filepath.Rel(theme.Dir, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if d.Type()&fs.ModeSymlink != 0 {
			result.SymlinkPaths = append(result.SymlinkPaths, rel)
		} else {
			result.RealPaths = append(result.RealPaths, rel)
		}
		return nil
	})
	return result, err
}

func parentDir(rel string) string {
	dir := filepath.ToSlash(filepath.Dir(rel))
	if dir == "." {
		return ""
	}
	return dir
}
