package catalogjson

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ikonograf/internal/domain"
)

func newTestStore(t *testing.T) (*Store, domain.Theme) {
	t.Helper()
	root := t.TempDir()
	themeDir := filepath.Join(root, "testtheme")
	if err := os.MkdirAll(themeDir, 0755); err != nil {
		t.Fatal(err)
	}
	return NewStore(root), domain.Theme{ID: "testtheme", Dir: themeDir, Label: "Test"}
}

func TestMarshalCompactArrays(t *testing.T) {
	symbolic := true
	cat := &domain.Catalog{
		Comment: "test catalog",
		Icons: map[string]domain.CatalogRecord{
			"t_apps_clock": {
				File:    "clock.png",
				Sizes:   []int{16, 32, 48},
				Context: "apps",
				Hints:   []string{"clock", "time"},
			},
			"t_apps_alarm": {
				File:     "alarm.png",
				Sizes:    []int{16},
				Context:  "apps",
				Symbolic: &symbolic,
			},
		},
	}

	b, err := Marshal(cat)
	if err != nil {
		t.Fatal(err)
	}
	out := string(b)

	if !strings.Contains(out, `"sizes": [16, 32, 48]`) {
		t.Errorf("sizes array not on a single line:\n%s", out)
	}
	if !strings.Contains(out, `"hints": ["clock", "time"]`) {
		t.Errorf("hints array not on a single line:\n%s", out)
	}
	// Map keys render sorted: alarm before clock.
	if strings.Index(out, "t_apps_alarm") > strings.Index(out, "t_apps_clock") {
		t.Errorf("icon keys not sorted:\n%s", out)
	}
}

func TestCatalogRoundTrip(t *testing.T) {
	store, theme := newTestStore(t)

	cat := &domain.Catalog{
		Comment: "Auto-maintained catalog for testtheme. Icons/sizes are additive only.",
		Icons: map[string]domain.CatalogRecord{
			"testtheme_apps_clock": {File: "clock.png", Sizes: []int{16, 32}, Context: "apps", Label: "Clock"},
			"testtheme_apps_mail":  {File: "mail.png", Sizes: []int{16}, Context: "apps", DuplicateOf: "testtheme_apps_clock"},
		},
	}
	if err := store.SaveCatalog(theme, cat); err != nil {
		t.Fatal(err)
	}
	first, err := os.ReadFile(store.CatalogPath(theme))
	if err != nil {
		t.Fatal(err)
	}

	loaded, err := store.LoadCatalog(theme)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.SaveCatalog(theme, loaded); err != nil {
		t.Fatal(err)
	}
	second, err := os.ReadFile(store.CatalogPath(theme))
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(first, second) {
		t.Errorf("round trip not byte-identical:\n--- first ---\n%s\n--- second ---\n%s", first, second)
	}
}

func TestLoadCatalogMissing(t *testing.T) {
	store, theme := newTestStore(t)
	_, err := store.LoadCatalog(theme)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err = %v, want fs.ErrNotExist", err)
	}
}

func TestContextsRoundTrip(t *testing.T) {
	store, theme := newTestStore(t)

	m := domain.ContextManifest{
		"apps":    {RawContext: "Applications", DisplayLabel: "Applications"},
		"devices": {RawContext: "Devices", DisplayLabel: "Devices"},
	}
	if err := store.SaveContexts(theme, m); err != nil {
		t.Fatal(err)
	}
	loaded, err := store.LoadContexts(theme)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 2 {
		t.Fatalf("loaded %d contexts, want 2", len(loaded))
	}
	if loaded["apps"].RawContext != "Applications" {
		t.Errorf("apps raw context = %q", loaded["apps"].RawContext)
	}
}

func TestThemeResolution(t *testing.T) {
	store, _ := newTestStore(t)

	reg := domain.Registry{
		"testtheme": {Label: "Test Theme"},
		"elsewhere": {Dir: "vendor/elsewhere"},
	}
	if err := store.SaveRegistry(reg); err != nil {
		t.Fatal(err)
	}

	theme, err := store.Theme("testtheme")
	if err != nil {
		t.Fatal(err)
	}
	if theme.Dir != filepath.Join(store.Root(), "testtheme") {
		t.Errorf("dir = %q", theme.Dir)
	}
	if theme.Label != "Test Theme" {
		t.Errorf("label = %q", theme.Label)
	}

	other, err := store.Theme("elsewhere")
	if err != nil {
		t.Fatal(err)
	}
	if other.Dir != filepath.Join(store.Root(), "vendor", "elsewhere") {
		t.Errorf("dir = %q", other.Dir)
	}

	if _, err := store.Theme("nope"); err == nil {
		t.Error("unknown theme should fail")
	}
}
