package catalogjson

import (
	"bytes"
	"encoding/json"
	"os"
	"regexp"
)

// Catalog files are a compatibility surface: two-space indent, map keys in
// sorted order (encoding/json sorts them), struct fields in declaration
// order, and arrays collapsed onto single lines for diff-friendliness.
// Loading and re-saving an unchanged file is byte-identical.

var (
	multilineArray = regexp.MustCompile(`(?s)\[[^\[\]]*?\]`)
	afterOpen      = regexp.MustCompile(`\[\s+`)
	beforeClose    = regexp.MustCompile(`\s+\]`)
	betweenItems   = regexp.MustCompile(`,\s+`)
)

func collapseArrays(b []byte) []byte {
	return multilineArray.ReplaceAllFunc(b, func(m []byte) []byte {
		if !bytes.ContainsRune(m, '\n') {
			return m
		}
		m = afterOpen.ReplaceAll(m, []byte("["))
		m = beforeClose.ReplaceAll(m, []byte("]"))
		return betweenItems.ReplaceAll(m, []byte(", "))
	})
}

// Marshal renders v in the catalog file format.
func Marshal(v any) ([]byte, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(collapseArrays(b), '\n'), nil
}

func saveFile(path string, v any) error {
	b, err := Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

func loadFile(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}
