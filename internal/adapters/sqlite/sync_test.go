package sqlite

import (
	"reflect"
	"testing"

	"ikonograf/internal/domain"
)

func openTestIndex(t *testing.T) *Index {
	t.Helper()
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	idx := NewIndex()
	if err := idx.Open(t.TempDir()); err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { idx.Close() })
	return idx
}

func testCatalogs() map[domain.Theme]*domain.Catalog {
	symbolic := true
	return map[domain.Theme]*domain.Catalog{
		{ID: "oxygen", Dir: "/tmp/oxygen"}: {Icons: map[string]domain.CatalogRecord{
			"oxygen_actions_edit-copy": {File: "edit-copy.png", Sizes: []int{16, 32}, Context: "actions", Label: "Edit Copy"},
			"oxygen_actions_edit-cut":  {File: "edit-cut.svg", Sizes: []int{32}, Context: "actions", Symbolic: &symbolic},
		}},
		{ID: "breeze", Dir: "/tmp/breeze"}: {Icons: map[string]domain.CatalogRecord{
			"breeze_apps_kmail": {File: "kmail.svg", Sizes: []int{48}, Context: "apps", Label: "KMail"},
		}},
	}
}

func TestSyncAndSearch(t *testing.T) {
	idx := openTestIndex(t)

	stats, err := idx.Sync(testCatalogs())
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if stats.ThemesIndexed != 2 || stats.IconsIndexed != 3 {
		t.Errorf("stats = %+v", stats)
	}
	if idx.NeedsFullRebuild() {
		t.Error("freshly synced index reports stale")
	}

	icons, err := idx.Search("edit", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(icons) != 2 {
		t.Fatalf("Search(edit) returned %d icons", len(icons))
	}
	if icons[0].Identifier != "oxygen_actions_edit-copy" {
		t.Errorf("first result = %s", icons[0].Identifier)
	}
	if !reflect.DeepEqual(icons[0].Sizes, []int{16, 32}) {
		t.Errorf("sizes = %v", icons[0].Sizes)
	}
	if !icons[1].Symbolic {
		t.Error("symbolic flag lost in round trip")
	}

	// Label matches too.
	icons, err = idx.Search("KMail", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(icons) != 1 || icons[0].Theme != "breeze" {
		t.Errorf("Search(KMail) = %+v", icons)
	}
}

func TestSyncReplaces(t *testing.T) {
	idx := openTestIndex(t)

	if _, err := idx.Sync(testCatalogs()); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	smaller := map[domain.Theme]*domain.Catalog{
		{ID: "oxygen", Dir: "/tmp/oxygen"}: {Icons: map[string]domain.CatalogRecord{
			"oxygen_actions_edit-copy": {File: "edit-copy.png", Sizes: []int{16}, Context: "actions"},
		}},
	}
	stats, err := idx.Sync(smaller)
	if err != nil {
		t.Fatalf("second Sync: %v", err)
	}
	if stats.IconsIndexed != 1 {
		t.Errorf("IconsIndexed = %d, want 1", stats.IconsIndexed)
	}

	icons, err := idx.Icons("breeze")
	if err != nil {
		t.Fatalf("Icons: %v", err)
	}
	if len(icons) != 0 {
		t.Errorf("stale rows survived resync: %+v", icons)
	}
}

func TestIconsByTheme(t *testing.T) {
	idx := openTestIndex(t)
	if _, err := idx.Sync(testCatalogs()); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	icons, err := idx.Icons("oxygen")
	if err != nil {
		t.Fatalf("Icons: %v", err)
	}
	if len(icons) != 2 {
		t.Fatalf("Icons(oxygen) returned %d rows", len(icons))
	}
	if icons[0].Identifier > icons[1].Identifier {
		t.Error("rows not in identifier order")
	}
}

func TestNeedsFullRebuildOnFreshDB(t *testing.T) {
	idx := openTestIndex(t)
	if !idx.NeedsFullRebuild() {
		t.Error("fresh database must request a rebuild")
	}
}
