package sqlite

import (
	"strconv"
	"strings"
	"time"

	"ikonograf/internal/domain"
	"ikonograf/internal/ports"
)

// Sync performs a complete rebuild of the index from the given catalogs.
// The index is derived data; a full rebuild is always safe.
func (idx *Index) Sync(catalogs map[domain.Theme]*domain.Catalog) (*ports.IndexStats, error) {
	start := time.Now()
	stats := &ports.IndexStats{}

	tx, err := idx.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM icons`); err != nil {
		return nil, err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO icons (identifier, theme, context, file, label, symbolic, sizes)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	for theme, cat := range catalogs {
		if cat == nil {
			continue
		}
		for _, id := range cat.IDs() {
			rec := cat.Icons[id]
			symbolic := 0
			if rec.Symbolic != nil && *rec.Symbolic {
				symbolic = 1
			}
			if _, err := stmt.Exec(id, theme.ID, rec.Context, rec.File, rec.Label, symbolic, encodeSizes(rec.Sizes)); err != nil {
				return nil, err
			}
			stats.IconsIndexed++
		}
		stats.ThemesIndexed++
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	if err := idx.updateMeta(); err != nil {
		return nil, err
	}

	stats.Duration = time.Since(start)
	return stats, nil
}

// encodeSizes stores a size list as comma-separated text. The index is a
// flat search surface; sizes are display payload, never queried.
func encodeSizes(sizes []int) string {
	parts := make([]string, len(sizes))
	for i, s := range sizes {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, ",")
}

func decodeSizes(s string) []int {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	sizes := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			continue
		}
		sizes = append(sizes, n)
	}
	return sizes
}
