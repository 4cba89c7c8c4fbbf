package domain

import (
	"slices"
	"sort"
)

// FileInfo describes one hashed file backing an icon at one size.
type FileInfo struct {
	RelPath       string
	Hash          string
	ByteLen       int64
	IsSymlink     bool
	SymlinkTarget string
}

// HashedIcon holds one representative hashed file per effective size.
type HashedIcon struct {
	ID    string
	Files map[int]FileInfo
}

// Sizes returns the icon's effective sizes in ascending order.
func (h *HashedIcon) Sizes() []int {
	sizes := make([]int, 0, len(h.Files))
	for s := range h.Files {
		sizes = append(sizes, s)
	}
	slices.Sort(sizes)
	return sizes
}

// Signature is the sorted set of content hashes across all of an icon's
// sizes. Size-independent and order-independent: two icons with equal
// signatures are byte-identical size-for-size as a set.
func (h *HashedIcon) Signature() []string {
	seen := make(map[string]bool)
	for _, f := range h.Files {
		seen[f.Hash] = true
	}
	sig := make([]string, 0, len(seen))
	for hash := range seen {
		sig = append(sig, hash)
	}
	slices.Sort(sig)
	return sig
}

// HashedInventory is the duplicate engine's input, keyed by identifier.
type HashedInventory map[string]*HashedIcon

// FullDuplicateGroup is a set of icons with identical signatures: every
// member is byte-identical to every other.
type FullDuplicateGroup struct {
	Icons     []string // sorted
	SizeCount int
	Done      bool     // every member already has duplicates or duplicate_of
	Referrers []string // icons outside the group with duplicate_of into it
	RefersTo  []string // duplicate_of targets outside the group
}

// MatchRef points at another icon's file sharing a hash.
type MatchRef struct {
	ID      string
	Size    int
	RelPath string
}

// SizeMatch reports one of a partially duplicated icon's sizes and the other
// icons sharing its hash. Others is empty for unique sizes.
type SizeMatch struct {
	Size    int
	Hash    string
	RelPath string
	Others  []MatchRef
}

// PartialFlags are the advisory classification signals per partially
// duplicated icon. Tie-breaking between competing primary candidates is a
// curator decision; the engine only reports.
type PartialFlags struct {
	AllSizesMatch          bool // every size matches some single other icon
	Superset               bool // strictly more sizes and matches all of a smaller icon's sizes
	LargestMatch           bool // largest size shared with a full-duplicate icon matches
	MultipleFullDuplicates bool // matches two or more distinct full-duplicate groups
	HasReferrers           bool // a matched full-duplicate icon has duplicate_of referrers
	DoneDuplicateOf        bool // catalog already records duplicate_of for this icon
	DonePrimary            bool // catalog duplicates list complete and back-referenced
}

// PartialDuplicate is the per-icon partial duplication report.
type PartialDuplicate struct {
	ID                string
	Sizes             []int
	Flags             PartialFlags
	MatchSet          []string // every other icon sharing at least one hash, sorted
	AllSizesMatchWith []string // icons matching every one of this icon's sizes
	FullDupMatches    []string // matched icons that belong to full-duplicate groups
	Referrers         []string
	PerSize           []SizeMatch
	DuplicateOf       string
	Duplicates        []string
}

// BrokenReference is a violated duplicate relationship invariant. The graph
// must be a star: a primary holds a duplicates list, copies hold a single
// duplicate_of, and no chains exist.
type BrokenReference struct {
	ID     string
	Field  string // "duplicate_of" or "duplicates"
	Target string
	Reason string
}

// DuplicateReport is the engine's decision-support output. The engine never
// mutates the catalog.
type DuplicateReport struct {
	IconCount  int
	FullGroups []FullDuplicateGroup
	Partials   []PartialDuplicate
	Broken     []BrokenReference
}

// AnalyzeDuplicates computes full-duplicate groups, partial-duplicate
// relationships, and consistency flags for a hashed inventory. The catalog
// may be empty; it only contributes curation state (duplicate_of/duplicates).
func AnalyzeDuplicates(inv HashedInventory, cat *Catalog) *DuplicateReport {
	report := &DuplicateReport{IconCount: len(inv)}

	records := map[string]CatalogRecord{}
	referrersOf := map[string][]string{} // target -> icons whose duplicate_of points at it
	if cat != nil {
		records = cat.Icons
		for id, rec := range cat.Icons {
			if rec.DuplicateOf != "" {
				referrersOf[rec.DuplicateOf] = append(referrersOf[rec.DuplicateOf], id)
			}
		}
	}

	// Partition by signature.
	sigKey := func(sig []string) string {
		key := ""
		for _, h := range sig {
			key += h + "|"
		}
		return key
	}
	bySig := map[string][]string{}
	for id, icon := range inv {
		key := sigKey(icon.Signature())
		bySig[key] = append(bySig[key], id)
	}

	inFull := map[string]bool{}
	groupOf := map[string]int{}
	for _, ids := range bySig {
		if len(ids) < 2 {
			continue
		}
		slices.Sort(ids)
		group := FullDuplicateGroup{
			Icons:     ids,
			SizeCount: len(inv[ids[0]].Files),
			Done:      true,
		}
		for _, id := range ids {
			inFull[id] = true
			rec := records[id]
			if rec.DuplicateOf == "" && len(rec.Duplicates) == 0 {
				group.Done = false
			}
			for _, ref := range referrersOf[id] {
				if !slices.Contains(ids, ref) {
					group.Referrers = append(group.Referrers, ref)
				}
			}
			if rec.DuplicateOf != "" && !slices.Contains(ids, rec.DuplicateOf) {
				if !slices.Contains(group.RefersTo, rec.DuplicateOf) {
					group.RefersTo = append(group.RefersTo, rec.DuplicateOf)
				}
			}
		}
		slices.Sort(group.Referrers)
		slices.Sort(group.RefersTo)
		report.FullGroups = append(report.FullGroups, group)
	}
	sort.Slice(report.FullGroups, func(i, j int) bool {
		gi, gj := report.FullGroups[i], report.FullGroups[j]
		if len(gi.Icons) != len(gj.Icons) {
			return len(gi.Icons) > len(gj.Icons)
		}
		return gi.Icons[0] < gj.Icons[0]
	})
	for i := range report.FullGroups {
		for _, id := range report.FullGroups[i].Icons {
			groupOf[id] = i
		}
	}

	// Reverse index: hash -> occurrences across icons.
	byHash := map[string][]MatchRef{}
	for id, icon := range inv {
		for size, f := range icon.Files {
			byHash[f.Hash] = append(byHash[f.Hash], MatchRef{ID: id, Size: size, RelPath: f.RelPath})
		}
	}
	for _, refs := range byHash {
		sort.Slice(refs, func(i, j int) bool {
			if refs[i].ID != refs[j].ID {
				return refs[i].ID < refs[j].ID
			}
			return refs[i].Size < refs[j].Size
		})
	}

	sharedHash := func(h string) bool {
		seen := map[string]bool{}
		for _, ref := range byHash[h] {
			seen[ref.ID] = true
		}
		return len(seen) > 1
	}

	// Icons with at least one shared hash, excluding those already resolved
	// at full-group granularity.
	partialIDs := map[string]bool{}
	for h := range byHash {
		if !sharedHash(h) {
			continue
		}
		for _, ref := range byHash[h] {
			if !inFull[ref.ID] {
				partialIDs[ref.ID] = true
			}
		}
	}

	matchCount := func(icon *HashedIcon) int {
		n := 0
		for _, f := range icon.Files {
			for _, ref := range byHash[f.Hash] {
				if ref.ID != icon.ID {
					n++
				}
			}
		}
		return n
	}

	ordered := make([]string, 0, len(partialIDs))
	for id := range partialIDs {
		ordered = append(ordered, id)
	}
	sort.Slice(ordered, func(i, j int) bool {
		ci, cj := matchCount(inv[ordered[i]]), matchCount(inv[ordered[j]])
		if ci != cj {
			return ci > cj
		}
		return ordered[i] < ordered[j]
	})

	for _, id := range ordered {
		icon := inv[id]
		sizes := icon.Sizes()

		// matchedOurs[other] = our sizes whose hash the other icon shares;
		// matchedTheirs[other] = the other icon's matched sizes.
		matchedOurs := map[string]map[int]bool{}
		matchedTheirs := map[string]map[int]bool{}
		for size, f := range icon.Files {
			for _, ref := range byHash[f.Hash] {
				if ref.ID == id {
					continue
				}
				if matchedOurs[ref.ID] == nil {
					matchedOurs[ref.ID] = map[int]bool{}
					matchedTheirs[ref.ID] = map[int]bool{}
				}
				matchedOurs[ref.ID][size] = true
				matchedTheirs[ref.ID][ref.Size] = true
			}
		}

		entry := PartialDuplicate{ID: id, Sizes: sizes}
		rec := records[id]
		entry.DuplicateOf = rec.DuplicateOf
		entry.Duplicates = rec.Duplicates

		fullGroups := map[int]bool{}
		for other, ours := range matchedOurs {
			entry.MatchSet = append(entry.MatchSet, other)

			otherSizes := inv[other].Sizes()
			theirs := matchedTheirs[other]

			if len(ours) == len(sizes) {
				entry.Flags.AllSizesMatch = true
				entry.AllSizesMatchWith = append(entry.AllSizesMatchWith, other)
			}
			if len(sizes) > len(otherSizes) && len(theirs) == len(otherSizes) {
				entry.Flags.Superset = true
			}

			if inFull[other] {
				entry.FullDupMatches = append(entry.FullDupMatches, other)
				fullGroups[groupOf[other]] = true

				if largest, ok := largestCommon(sizes, otherSizes); ok && theirs[largest] {
					entry.Flags.LargestMatch = true
				}
				for _, ref := range referrersOf[other] {
					if ref != id {
						entry.Referrers = append(entry.Referrers, ref)
					}
				}
			}
		}
		slices.Sort(entry.MatchSet)
		slices.Sort(entry.AllSizesMatchWith)
		slices.Sort(entry.FullDupMatches)
		slices.Sort(entry.Referrers)
		entry.Flags.MultipleFullDuplicates = len(fullGroups) >= 2
		entry.Flags.HasReferrers = len(entry.Referrers) > 0
		entry.Flags.DoneDuplicateOf = rec.DuplicateOf != ""

		if len(rec.Duplicates) > 0 {
			pointBack := true
			for _, d := range rec.Duplicates {
				if records[d].DuplicateOf != id {
					pointBack = false
				}
			}
			listed := map[string]bool{}
			for _, d := range rec.Duplicates {
				listed[d] = true
			}
			complete := len(listed) == len(entry.AllSizesMatchWith)
			for _, other := range entry.AllSizesMatchWith {
				if !listed[other] {
					complete = false
				}
			}
			entry.Flags.DonePrimary = pointBack && complete
		}

		for _, size := range sizes {
			f := icon.Files[size]
			sm := SizeMatch{Size: size, Hash: f.Hash, RelPath: f.RelPath}
			for _, ref := range byHash[f.Hash] {
				if ref.ID != id {
					sm.Others = append(sm.Others, ref)
				}
			}
			entry.PerSize = append(entry.PerSize, sm)
		}

		report.Partials = append(report.Partials, entry)
	}

	report.Broken = checkReferences(records)
	return report
}

// largestCommon returns the largest size present in both lists.
func largestCommon(a, b []int) (int, bool) {
	largest, found := 0, false
	for _, s := range a {
		if slices.Contains(b, s) && s > largest {
			largest, found = s, true
		}
	}
	return largest, found
}

// checkReferences validates the duplicate-relationship invariant over the
// catalog: every duplicate_of target exists and is itself a root, and every
// listed duplicate points back at its primary.
func checkReferences(records map[string]CatalogRecord) []BrokenReference {
	var broken []BrokenReference
	ids := make([]string, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		rec := records[id]
		if rec.DuplicateOf != "" {
			target, ok := records[rec.DuplicateOf]
			switch {
			case !ok:
				broken = append(broken, BrokenReference{
					ID: id, Field: "duplicate_of", Target: rec.DuplicateOf,
					Reason: "target does not exist",
				})
			case target.DuplicateOf != "":
				broken = append(broken, BrokenReference{
					ID: id, Field: "duplicate_of", Target: rec.DuplicateOf,
					Reason: "target is itself a duplicate (chains are not allowed)",
				})
			}
		}
		for _, d := range rec.Duplicates {
			target, ok := records[d]
			switch {
			case !ok:
				broken = append(broken, BrokenReference{
					ID: id, Field: "duplicates", Target: d,
					Reason: "listed duplicate does not exist",
				})
			case target.DuplicateOf != id:
				broken = append(broken, BrokenReference{
					ID: id, Field: "duplicates", Target: d,
					Reason: "listed duplicate does not point back",
				})
			}
		}
	}
	return broken
}
