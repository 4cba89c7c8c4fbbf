package domain

import (
	"reflect"
	"testing"
)

func TestIdentifier(t *testing.T) {
	tests := []struct {
		name     string
		theme    string
		context  string
		filename string
		want     string
	}{
		{"with context", "oxygen", "apps", "clock.png", "oxygen_apps_clock"},
		{"no context", "legacy", "", "add.png", "legacy_add"},
		{"extension ignored", "oxygen", "apps", "clock.svg", "oxygen_apps_clock"},
		{"svgz", "oxygen", "devices", "printer.svgz", "oxygen_devices_printer"},
		{"dotted stem", "papirus", "mimetypes", "text-x-c++src.png", "papirus_mimetypes_text-x-c++src"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Identifier(tt.theme, tt.context, tt.filename); got != tt.want {
				t.Errorf("Identifier() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsIconFile(t *testing.T) {
	for name, want := range map[string]bool{
		"clock.png":  true,
		"clock.svg":  true,
		"clock.SVG":  true,
		"clock.svgz": true,
		"clock.txt":  false,
		"clock":      false,
	} {
		if got := IsIconFile(name); got != want {
			t.Errorf("IsIconFile(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestDiscoveredIconAddPath(t *testing.T) {
	icon := &DiscoveredIcon{ID: "t_apps_clock", File: "clock.png"}
	icon.AddPath(32, "32x32/apps/clock.png")
	icon.AddPath(16, "16x16/apps/clock.png")
	icon.AddPath(16, "16x16/apps/clock.svg")

	if !reflect.DeepEqual(icon.Sizes, []int{16, 32}) {
		t.Errorf("sizes = %v, want [16 32]", icon.Sizes)
	}
	if len(icon.Paths[16]) != 2 {
		t.Errorf("paths at 16 = %v", icon.Paths[16])
	}
}

func TestNormalizeContext(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Applications", "apps"},
		{"Devices", "devices"},
		{"MimeTypes", "mimetypes"},
		{"apps", "apps"},
	}
	for _, tt := range tests {
		if got := NormalizeContext(tt.raw); got != tt.want {
			t.Errorf("NormalizeContext(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestBuildContextManifest(t *testing.T) {
	idx := DirectoryIndex{
		"16x16/apps":    {Path: "16x16/apps", Size: 16, Scale: 1, Context: "Applications"},
		"32x32/apps":    {Path: "32x32/apps", Size: 32, Scale: 1, Context: "Applications"},
		"16x16/devices": {Path: "16x16/devices", Size: 16, Scale: 1, Context: "Devices"},
		"16x16":         {Path: "16x16", Size: 16, Scale: 1},
	}
	m := BuildContextManifest(idx)

	if !reflect.DeepEqual(m.Keys(), []string{"apps", "devices"}) {
		t.Fatalf("keys = %v", m.Keys())
	}
	if m["apps"].RawContext != "Applications" {
		t.Errorf("apps raw context = %q", m["apps"].RawContext)
	}

	// Every normalized identifier has a non-empty raw backing value.
	for id, info := range m {
		if info.RawContext == "" {
			t.Errorf("context %q has no raw backing", id)
		}
	}

	if id, ok := m.Resolve("Applications"); !ok || id != "apps" {
		t.Errorf("Resolve(Applications) = %q, %v", id, ok)
	}
	if _, ok := m.Resolve("Animations"); ok {
		t.Error("undeclared raw context must not resolve")
	}
}
