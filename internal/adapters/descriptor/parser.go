// Package descriptor parses theme descriptor files (index.theme): a
// sectioned key-value format declaring, per directory, the pixel size,
// scale factor, organizational context, and size-selection type.
package descriptor

import (
	"os"
	"strings"

	"gopkg.in/ini.v1"

	"ikonograf/internal/application"
	"ikonograf/internal/domain"
)

const themeSection = "Icon Theme"

// Parser reads theme descriptors into directory indexes. Pure: one file
// read, no other I/O.
type Parser struct{}

// New creates a descriptor parser.
func New() *Parser {
	return &Parser{}
}

// Parse builds a DirectoryIndex from the descriptor at path. Directories
// declared in the theme section but missing a matching section are silently
// skipped; a descriptor with zero resolvable directories is malformed.
func (p *Parser) Parse(path string) (domain.DirectoryIndex, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &application.MalformedDescriptorError{Path: path, Reason: "file not found"}
	}

	f, err := ini.Load(path)
	if err != nil {
		return nil, &application.MalformedDescriptorError{Path: path, Reason: err.Error()}
	}

	theme, err := f.GetSection(themeSection)
	if err != nil {
		return nil, &application.MalformedDescriptorError{Path: path, Reason: "no [" + themeSection + "] section"}
	}

	declared := splitList(theme.Key("Directories").String())
	declared = append(declared, splitList(theme.Key("ScaledDirectories").String())...)
	if len(declared) == 0 {
		return nil, &application.MalformedDescriptorError{Path: path, Reason: "no directories declared"}
	}

	idx := make(domain.DirectoryIndex)
	for _, dir := range declared {
		sec, err := f.GetSection(dir)
		if err != nil {
			continue
		}
		idx[dir] = domain.DirEntry{
			Path:    dir,
			Size:    sec.Key("Size").MustInt(0),
			Scale:   sec.Key("Scale").MustInt(1),
			Context: sec.Key("Context").String(),
			Type:    domain.ParseSelectionType(sec.Key("Type").MustString("Threshold")),
			MinSize: sec.Key("MinSize").MustInt(0),
			MaxSize: sec.Key("MaxSize").MustInt(0),
		}
	}

	if len(idx) == 0 {
		return nil, &application.MalformedDescriptorError{Path: path, Reason: "no declared directory has a section"}
	}
	return idx, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
