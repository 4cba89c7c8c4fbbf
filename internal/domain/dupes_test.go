package domain

import (
	"reflect"
	"testing"
)

func hashed(id string, files map[int]string) *HashedIcon {
	icon := &HashedIcon{ID: id, Files: make(map[int]FileInfo)}
	for size, hash := range files {
		icon.Files[size] = FileInfo{RelPath: id, Hash: hash}
	}
	return icon
}

func TestSignature(t *testing.T) {
	a := hashed("a", map[int]string{16: "h1", 32: "h2"})
	b := hashed("b", map[int]string{32: "h1", 64: "h2"})
	// Signatures are size-independent and order-independent.
	if !reflect.DeepEqual(a.Signature(), b.Signature()) {
		t.Errorf("signatures differ: %v vs %v", a.Signature(), b.Signature())
	}
}

func TestFullDuplicateGroup(t *testing.T) {
	inv := HashedInventory{
		"t_apps_alarm-clock": hashed("t_apps_alarm-clock", map[int]string{16: "H1", 32: "H2"}),
		"t_apps_clock":       hashed("t_apps_clock", map[int]string{16: "H1", 32: "H2"}),
		"t_apps_bell":        hashed("t_apps_bell", map[int]string{16: "H3"}),
	}

	report := AnalyzeDuplicates(inv, nil)

	if len(report.FullGroups) != 1 {
		t.Fatalf("full groups = %d, want 1", len(report.FullGroups))
	}
	group := report.FullGroups[0]
	if !reflect.DeepEqual(group.Icons, []string{"t_apps_alarm-clock", "t_apps_clock"}) {
		t.Errorf("group icons = %v", group.Icons)
	}
	if group.SizeCount != 2 {
		t.Errorf("size count = %d, want 2", group.SizeCount)
	}
	if group.Done {
		t.Error("uncurated group reported done")
	}
	// Fully accounted for at group granularity: no partial entries.
	if len(report.Partials) != 0 {
		t.Errorf("partials = %v, want none", report.Partials)
	}
}

func TestPartialDuplicateSuperset(t *testing.T) {
	// clock only has size 16 with H1: partial duplicate; alarm-clock has
	// more sizes and matches all of clock's sizes, so it carries Superset.
	inv := HashedInventory{
		"t_apps_alarm-clock": hashed("t_apps_alarm-clock", map[int]string{16: "H1", 32: "H2"}),
		"t_apps_clock":       hashed("t_apps_clock", map[int]string{16: "H1"}),
	}

	report := AnalyzeDuplicates(inv, nil)

	if len(report.FullGroups) != 0 {
		t.Fatalf("full groups = %v, want none", report.FullGroups)
	}
	if len(report.Partials) != 2 {
		t.Fatalf("partials = %d, want 2", len(report.Partials))
	}

	byID := map[string]PartialDuplicate{}
	for _, p := range report.Partials {
		byID[p.ID] = p
	}

	alarm := byID["t_apps_alarm-clock"]
	if !alarm.Flags.Superset {
		t.Error("alarm-clock must carry the superset flag")
	}
	if alarm.Flags.AllSizesMatch {
		t.Error("alarm-clock's size 32 has no match")
	}

	clock := byID["t_apps_clock"]
	if clock.Flags.Superset {
		t.Error("clock is not a superset")
	}
	if !clock.Flags.AllSizesMatch {
		t.Error("clock's only size matches alarm-clock")
	}
	if !reflect.DeepEqual(clock.AllSizesMatchWith, []string{"t_apps_alarm-clock"}) {
		t.Errorf("all-sizes-match set = %v", clock.AllSizesMatchWith)
	}
}

func TestPartialExcludedWhenInFullGroup(t *testing.T) {
	// a and b are a full group; c shares one hash with them. Only c is a
	// partial; a and b are resolved at the coarser granularity.
	inv := HashedInventory{
		"t_a": hashed("t_a", map[int]string{16: "H1", 32: "H2"}),
		"t_b": hashed("t_b", map[int]string{16: "H1", 32: "H2"}),
		"t_c": hashed("t_c", map[int]string{16: "H1", 32: "H9", 48: "H8"}),
	}

	report := AnalyzeDuplicates(inv, nil)

	if len(report.FullGroups) != 1 {
		t.Fatalf("full groups = %d, want 1", len(report.FullGroups))
	}
	if len(report.Partials) != 1 || report.Partials[0].ID != "t_c" {
		t.Fatalf("partials = %v, want only t_c", report.Partials)
	}

	c := report.Partials[0]
	if c.Flags.AllSizesMatch {
		t.Error("only one of c's three sizes matches")
	}
	if !reflect.DeepEqual(c.FullDupMatches, []string{"t_a", "t_b"}) {
		t.Errorf("full-dup matches = %v", c.FullDupMatches)
	}
	// Largest common size between c and the group members is 32, which does
	// not match; no largest-match signal.
	if c.Flags.LargestMatch {
		t.Error("largest common size does not match")
	}
	// Both matched icons belong to one group, not two.
	if c.Flags.MultipleFullDuplicates {
		t.Error("single group matched, flag must be off")
	}
}

func TestLargestMatchFlag(t *testing.T) {
	inv := HashedInventory{
		"t_a": hashed("t_a", map[int]string{16: "H1", 32: "H2"}),
		"t_b": hashed("t_b", map[int]string{16: "H1", 32: "H2"}),
		"t_c": hashed("t_c", map[int]string{16: "H9", 32: "H2", 48: "H8"}),
	}

	report := AnalyzeDuplicates(inv, nil)
	if len(report.Partials) != 1 {
		t.Fatalf("partials = %v", report.Partials)
	}
	c := report.Partials[0]
	// Largest size shared with the full-duplicate icons is 32 and it
	// matches.
	if !c.Flags.LargestMatch {
		t.Error("largest-match flag missing")
	}
}

func TestMultipleFullDuplicateGroups(t *testing.T) {
	inv := HashedInventory{
		"t_a1": hashed("t_a1", map[int]string{16: "H1"}),
		"t_a2": hashed("t_a2", map[int]string{16: "H1"}),
		"t_b1": hashed("t_b1", map[int]string{32: "H2"}),
		"t_b2": hashed("t_b2", map[int]string{32: "H2"}),
		"t_c":  hashed("t_c", map[int]string{16: "H1", 32: "H2", 48: "H9"}),
	}

	report := AnalyzeDuplicates(inv, nil)
	if len(report.FullGroups) != 2 {
		t.Fatalf("full groups = %d, want 2", len(report.FullGroups))
	}
	if len(report.Partials) != 1 {
		t.Fatalf("partials = %v", report.Partials)
	}
	if !report.Partials[0].Flags.MultipleFullDuplicates {
		t.Error("matches two distinct groups, flag must be set")
	}
}

func TestConsistencyFlags(t *testing.T) {
	inv := HashedInventory{
		"t_primary": hashed("t_primary", map[int]string{16: "H1", 32: "H2"}),
		"t_copy":    hashed("t_copy", map[int]string{16: "H1", 32: "H2"}),
		"t_third":   hashed("t_third", map[int]string{16: "H1", 48: "H9"}),
	}
	cat := &Catalog{Icons: map[string]CatalogRecord{
		"t_primary": {File: "primary.png", Sizes: []int{16, 32}, Duplicates: []string{"t_copy"}},
		"t_copy":    {File: "copy.png", Sizes: []int{16, 32}, DuplicateOf: "t_primary"},
		"t_third":   {File: "third.png", Sizes: []int{16, 48}},
	}}

	report := AnalyzeDuplicates(inv, cat)

	if len(report.FullGroups) != 1 {
		t.Fatalf("full groups = %d, want 1", len(report.FullGroups))
	}
	if !report.FullGroups[0].Done {
		t.Error("fully curated group must be done")
	}
	if len(report.Broken) != 0 {
		t.Errorf("broken refs = %v, want none", report.Broken)
	}

	for _, p := range report.Partials {
		if p.ID == "t_third" && !p.Flags.HasReferrers {
			t.Error("t_third matches a full-dup icon with referrers")
		}
	}
}

func TestDonePrimary(t *testing.T) {
	inv := HashedInventory{
		"t_primary": hashed("t_primary", map[int]string{16: "H1", 32: "H2"}),
		"t_copy":    hashed("t_copy", map[int]string{16: "H1", 32: "H2", 48: "H3"}),
	}
	cat := &Catalog{Icons: map[string]CatalogRecord{
		"t_primary": {File: "primary.png", Sizes: []int{16, 32}, Duplicates: []string{"t_copy"}},
		"t_copy":    {File: "copy.png", Sizes: []int{16, 32, 48}, DuplicateOf: "t_primary"},
	}}

	report := AnalyzeDuplicates(inv, cat)

	byID := map[string]PartialDuplicate{}
	for _, p := range report.Partials {
		byID[p.ID] = p
	}
	// Every one of primary's sizes matches t_copy and t_copy points back.
	if !byID["t_primary"].Flags.DonePrimary {
		t.Error("primary with complete back-referenced list must be done-primary")
	}
	if !byID["t_copy"].Flags.DoneDuplicateOf {
		t.Error("copy with duplicate_of must carry done-duplicate-of")
	}
	// t_copy has an extra size, so it is not itself a done primary.
	if byID["t_copy"].Flags.DonePrimary {
		t.Error("copy has no duplicates list")
	}
}

func TestBrokenReferences(t *testing.T) {
	records := map[string]CatalogRecord{
		"t_a": {File: "a.png", DuplicateOf: "t_missing"},
		"t_b": {File: "b.png", DuplicateOf: "t_c"},
		"t_c": {File: "c.png", DuplicateOf: "t_d"},
		"t_d": {File: "d.png", Duplicates: []string{"t_e", "t_b"}},
		"t_e": {File: "e.png", DuplicateOf: "t_d"},
	}

	broken := checkReferences(records)

	reasons := map[string]string{}
	for _, b := range broken {
		reasons[b.ID+"->"+b.Target] = b.Reason
	}

	if _, ok := reasons["t_a->t_missing"]; !ok {
		t.Error("dangling duplicate_of not flagged")
	}
	if _, ok := reasons["t_b->t_c"]; !ok {
		t.Error("duplicate_of chain not flagged")
	}
	// t_b points at t_c, not back at t_d.
	if _, ok := reasons["t_d->t_b"]; !ok {
		t.Error("duplicates entry without back-reference not flagged")
	}
	if _, ok := reasons["t_d->t_e"]; ok {
		t.Error("valid back-referenced duplicate flagged")
	}
}

func TestPartialOrdering(t *testing.T) {
	inv := HashedInventory{
		"t_many": hashed("t_many", map[int]string{16: "H1", 32: "H2"}),
		"t_x":    hashed("t_x", map[int]string{16: "H1"}),
		"t_y":    hashed("t_y", map[int]string{32: "H2"}),
	}

	report := AnalyzeDuplicates(inv, nil)
	if len(report.Partials) != 3 {
		t.Fatalf("partials = %d, want 3", len(report.Partials))
	}
	// Most matches first.
	if report.Partials[0].ID != "t_many" {
		t.Errorf("first partial = %s, want t_many", report.Partials[0].ID)
	}
}
