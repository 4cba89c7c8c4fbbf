package commands

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"ikonograf/internal/domain"
	"ikonograf/internal/ports"
)

// defaultReplacements are applied to the stem before word splitting.
// Each pair is literal old/new text; order matters.
var defaultReplacements = [][2]string{
	{"c++", "cpp "},
}

var suspiciousChars = regexp.MustCompile(`[^a-zA-Z0-9 ]`)

// GenerateLabel derives a display label from an icon filename: the
// extension is stripped, replacements applied, separators turned into
// spaces, and each word capitalized.
func GenerateLabel(filename string, replacements [][2]string) string {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	stem = strings.ToLower(stem)
	for _, r := range defaultReplacements {
		stem = strings.ReplaceAll(stem, r[0], r[1])
	}
	for _, r := range replacements {
		stem = strings.ReplaceAll(stem, strings.ToLower(r[0]), r[1])
	}
	stem = strings.ReplaceAll(stem, "-", " ")
	stem = strings.ReplaceAll(stem, "_", " ")

	words := strings.Fields(stem)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// CheckLabel returns the characters in a label outside the expected
// alphanumeric-and-space set, or nil when the label is clean.
func CheckLabel(label string) []string {
	return suspiciousChars.FindAllString(label, -1)
}

// LabelChange records one generated label.
type LabelChange struct {
	ID    string
	File  string
	Label string
}

// SuspiciousLabel flags a label (existing or generated) with unexpected
// characters.
type SuspiciousLabel struct {
	ID    string
	Label string
	Chars []string
}

// LabelsReport is the outcome of a label generation pass.
type LabelsReport struct {
	Theme      string
	Generated  []LabelChange
	AlreadySet int
	Suspicious []SuspiciousLabel
	Simulated  bool
}

// LabelsCommand fills empty catalog labels from filenames. Existing labels
// are never overwritten; in simulate mode nothing is saved.
type LabelsCommand struct {
	store        ports.CatalogStore
	theme        domain.Theme
	replacements [][2]string
	simulate     bool
}

// NewLabelsCommand creates a label generation command.
func NewLabelsCommand(store ports.CatalogStore, theme domain.Theme) *LabelsCommand {
	return &LabelsCommand{store: store, theme: theme}
}

// WithReplacements adds extra old/new text replacements applied before
// word splitting.
func (c *LabelsCommand) WithReplacements(replacements [][2]string) *LabelsCommand {
	c.replacements = replacements
	return c
}

// WithSimulate makes Execute report changes without saving them.
func (c *LabelsCommand) WithSimulate(simulate bool) *LabelsCommand {
	c.simulate = simulate
	return c
}

// Execute generates labels for records that lack one.
func (c *LabelsCommand) Execute(ctx context.Context) (*LabelsReport, error) {
	cat, err := c.store.LoadCatalog(c.theme)
	if err != nil {
		return nil, err
	}

	report := &LabelsReport{Theme: c.theme.ID, Simulated: c.simulate}

	for _, id := range cat.IDs() {
		rec := cat.Icons[id]
		if rec.Label != "" {
			report.AlreadySet++
			if chars := CheckLabel(rec.Label); chars != nil {
				report.Suspicious = append(report.Suspicious, SuspiciousLabel{ID: id, Label: rec.Label, Chars: chars})
			}
			continue
		}
		label := GenerateLabel(rec.File, c.replacements)
		if label == "" {
			continue
		}
		if chars := CheckLabel(label); chars != nil {
			report.Suspicious = append(report.Suspicious, SuspiciousLabel{ID: id, Label: label, Chars: chars})
		}
		report.Generated = append(report.Generated, LabelChange{ID: id, File: rec.File, Label: label})
		if !c.simulate {
			rec.Label = label
			cat.Icons[id] = rec
		}
	}

	if !c.simulate && len(report.Generated) > 0 {
		if err := c.store.SaveCatalog(c.theme, cat); err != nil {
			return nil, err
		}
	}
	return report, nil
}
