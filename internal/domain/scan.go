package domain

import "slices"

// ScanStats counts what a disk scan saw. Every skipped file and every
// unmatched directory shows up here; nothing is silently dropped.
type ScanStats struct {
	FilesSeen       int
	IconFiles       int
	SymlinksSkipped int
	// Unmatched tallies icon files in directories absent from the
	// directory index, grouped by directory then extension. An out-of-scope
	// finding, not an error.
	Unmatched map[string]map[string]int
	// ReadErrors lists per-file failures that were excluded from results.
	ReadErrors []string
}

// UnmatchedDirs returns the unmatched directories in sorted order.
func (s *ScanStats) UnmatchedDirs() []string {
	dirs := make([]string, 0, len(s.Unmatched))
	for d := range s.Unmatched {
		dirs = append(dirs, d)
	}
	slices.Sort(dirs)
	return dirs
}

// UnmatchedTotal returns the total count of unmatched icon files.
func (s *ScanStats) UnmatchedTotal() int {
	total := 0
	for _, exts := range s.Unmatched {
		for _, n := range exts {
			total += n
		}
	}
	return total
}

// LocateResult classifies where a literal filename turned up during a
// re-walk of the theme tree.
type LocateResult struct {
	RealPaths    []string
	SymlinkPaths []string
}

// Classification buckets a missing catalog entry: genuinely absent, present
// only through symbolic links, or a mix of real files and links.
type Classification string

const (
	ClassAbsent       Classification = "absent"
	ClassSymlinksOnly Classification = "symlinks-only"
	ClassMixed        Classification = "mixed"
)

// Classify reduces a locate result to its classification.
func (r LocateResult) Classify() Classification {
	switch {
	case len(r.RealPaths) == 0 && len(r.SymlinkPaths) == 0:
		return ClassAbsent
	case len(r.RealPaths) == 0:
		return ClassSymlinksOnly
	default:
		return ClassMixed
	}
}

// VariantHit is one file carrying a color-variant marker in its path.
type VariantHit struct {
	RelPath string
	File    string
	Variant string // "Dark" or "Light"
}
