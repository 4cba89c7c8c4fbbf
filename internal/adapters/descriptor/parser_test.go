package descriptor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"ikonograf/internal/application"
	"ikonograf/internal/domain"
)

func writeDescriptor(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "index.theme")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParse(t *testing.T) {
	path := writeDescriptor(t, `[Icon Theme]
Name=Testtheme
Directories=16x16/apps,22x22/devices,scalable/apps
ScaledDirectories=64x64@2x/apps

[16x16/apps]
Size=16
Context=Applications
Type=Fixed

[22x22/devices]
Size=22
Context=Devices

[scalable/apps]
Size=48
Context=Applications
Type=Scalable
MinSize=8
MaxSize=256

[64x64@2x/apps]
Size=64
Scale=2
Context=Applications
`)

	idx, err := New().Parse(path)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	tests := []struct {
		dir       string
		size      int
		scale     int
		effective int
		context   string
		selType   domain.SelectionType
		minSize   int
		maxSize   int
	}{
		{"16x16/apps", 16, 1, 16, "Applications", domain.SelectionFixed, 0, 0},
		{"22x22/devices", 22, 1, 22, "Devices", domain.SelectionThreshold, 0, 0},
		{"scalable/apps", 48, 1, 48, "Applications", domain.SelectionScalable, 8, 256},
		{"64x64@2x/apps", 64, 2, 128, "Applications", domain.SelectionThreshold, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			e, ok := idx.Lookup(tt.dir)
			if !ok {
				t.Fatalf("directory %s not in index", tt.dir)
			}
			if e.Size != tt.size || e.Scale != tt.scale {
				t.Errorf("size/scale = %d/%d, want %d/%d", e.Size, e.Scale, tt.size, tt.scale)
			}
			if e.EffectiveSize() != tt.effective {
				t.Errorf("effective size = %d, want %d", e.EffectiveSize(), tt.effective)
			}
			if e.Context != tt.context {
				t.Errorf("context = %q, want %q", e.Context, tt.context)
			}
			if e.Type != tt.selType {
				t.Errorf("type = %v, want %v", e.Type, tt.selType)
			}
			if e.MinSize != tt.minSize || e.MaxSize != tt.maxSize {
				t.Errorf("min/max = %d/%d, want %d/%d", e.MinSize, e.MaxSize, tt.minSize, tt.maxSize)
			}
		})
	}
}

func TestParseSkipsDeclaredDirsWithoutSection(t *testing.T) {
	path := writeDescriptor(t, `[Icon Theme]
Directories=16x16/apps,32x32/apps

[16x16/apps]
Size=16
`)
	idx, err := New().Parse(path)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(idx) != 1 {
		t.Fatalf("index has %d entries, want 1", len(idx))
	}
	if _, ok := idx.Lookup("32x32/apps"); ok {
		t.Error("sectionless directory should be skipped")
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no theme section", "[16x16/apps]\nSize=16\n"},
		{"no directories", "[Icon Theme]\nName=Empty\n"},
		{"zero resolvable", "[Icon Theme]\nDirectories=16x16/apps\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeDescriptor(t, tt.content)
			_, err := New().Parse(path)
			if !errors.Is(err, application.ErrMalformedDescriptor) {
				t.Errorf("err = %v, want ErrMalformedDescriptor", err)
			}
		})
	}
}

func TestParseMissingFile(t *testing.T) {
	_, err := New().Parse(filepath.Join(t.TempDir(), "index.theme"))
	if !errors.Is(err, application.ErrMalformedDescriptor) {
		t.Errorf("err = %v, want ErrMalformedDescriptor", err)
	}
}

func TestEffectiveSizes(t *testing.T) {
	path := writeDescriptor(t, `[Icon Theme]
Directories=16x16/apps,16x16/devices,64x64@2x/apps

[16x16/apps]
Size=16

[16x16/devices]
Size=16

[64x64@2x/apps]
Size=64
Scale=2
`)
	idx, err := New().Parse(path)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := idx.EffectiveSizes()
	want := []int{16, 128}
	if len(got) != len(want) {
		t.Fatalf("effective sizes = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("effective sizes = %v, want %v", got, want)
		}
	}
}
