package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"ikonograf/internal/domain"
)

// isSymbolicDir reports whether any segment of a theme-relative directory
// path names a symbolic (monochrome) directory.
func isSymbolicDir(rel string) bool {
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if part == "symbolic" || strings.HasPrefix(part, "symbolic-") {
			return true
		}
	}
	return false
}

// CollectSymbolic walks the theme tree and gathers filenames with symbolic
// (monochrome) evidence: files under a symbolic directory, and files whose
// stem ends in -symbolic anywhere in the tree. A symlinked file in a
// symbolic directory contributes its resolved target's filename.
func (w *Walker) CollectSymbolic(theme domain.Theme) (map[string]bool, error) {
	symbolic := make(map[string]bool)
	err := filepath.WalkDir(theme.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		name := d.Name()
		if !domain.IsIconFile(name) {
			return nil
		}
		rel, relErr := filepath.Rel(theme.Dir, path)
		if relErr != nil {
			return nil
		}

		if isSymbolicDir(filepath.Dir(rel)) {
			if d.Type()&fs.ModeSymlink != 0 {
				target, resolveErr := filepath.EvalSymlinks(path)
				if resolveErr == nil {
					if info, statErr := os.Stat(target); statErr == nil && info.Mode().IsRegular() {
						symbolic[filepath.Base(target)] = true
					}
				}
			} else {
				symbolic[name] = true
			}
		}
		if strings.HasSuffix(domain.Stem(name), "-symbolic") {
			symbolic[name] = true
		}
		return nil
	})
	return symbolic, err
}

// Color-variant markers checked as path substrings.
var variantMarkers = []string{"Dark", "Light"}

// CollectVariants reports icon files whose theme-relative path carries a
// -Dark or -Light marker.
func (w *Walker) CollectVariants(theme domain.Theme) ([]domain.VariantHit, error) {
	var hits []domain.VariantHit
	err := filepath.WalkDir(theme.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		name := d.Name()
		if !domain.IsIconFile(name) {
			return nil
		}
		rel, relErr := filepath.Rel(theme.Dir, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		for _, marker := range variantMarkers {
			if strings.Contains(rel, "-"+marker) {
				hits = append(hits, domain.VariantHit{RelPath: rel, File: name, Variant: marker})
				break
			}
		}
		return nil
	})
	return hits, err
}
