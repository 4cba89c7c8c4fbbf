package sqlite

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"ikonograf/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// Index implements ports.IconIndex using SQLite. The database lives under
// XDG data, one file per catalog root, and is rebuilt from the JSON catalogs
// whenever it goes stale.
type Index struct {
	db     *sql.DB
	root   string
	dbPath string
}

var _ ports.IconIndex = (*Index)(nil)

// NewIndex creates a new SQLite index.
func NewIndex() *Index {
	return &Index{}
}

// Open initializes the index for the given catalog root.
func (idx *Index) Open(root string) error {
	if len(root) > 0 && root[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		root = filepath.Join(home, root[1:])
	}

	idx.root = root
	idx.dbPath = databasePath(root)

	if err := os.MkdirAll(filepath.Dir(idx.dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	// WAL mode for better concurrency between browser and CLI.
	db, err := sql.Open("sqlite", idx.dbPath+"?_journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	idx.db = db

	// Performance pragmas + schema in single batch (reduces round-trips)
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA cache_size = -64000;
		PRAGMA temp_store = MEMORY;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS icons (
			identifier TEXT PRIMARY KEY,
			theme TEXT NOT NULL,
			context TEXT,
			file TEXT NOT NULL,
			label TEXT,
			symbolic INTEGER NOT NULL DEFAULT 0,
			sizes TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_icons_theme ON icons(theme);
		CREATE INDEX IF NOT EXISTS idx_icons_file ON icons(file);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (idx *Index) Close() error {
	if idx.db != nil {
		return idx.db.Close()
	}
	return nil
}

// NeedsFullRebuild returns true if the index should be fully rebuilt.
func (idx *Index) NeedsFullRebuild() bool {
	var version, rootHash string

	idx.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&version)
	idx.db.QueryRow("SELECT value FROM meta WHERE key = 'root_path_hash'").Scan(&rootHash)

	return version != schemaVersion || rootHash != hashRootPath(idx.root)
}

// Search returns icons whose identifier, filename, or label matches the
// query.
func (idx *Index) Search(query string, limit int) ([]ports.IndexedIcon, error) {
	pattern := "%" + query + "%"
	rows, err := idx.db.Query(`
		SELECT identifier, theme, context, file, label, symbolic, sizes
		FROM icons
		WHERE identifier LIKE ? OR file LIKE ? OR label LIKE ?
		ORDER BY identifier
		LIMIT ?
	`, pattern, pattern, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIcons(rows)
}

// Icons returns all indexed icons for a theme in identifier order.
func (idx *Index) Icons(themeID string) ([]ports.IndexedIcon, error) {
	rows, err := idx.db.Query(`
		SELECT identifier, theme, context, file, label, symbolic, sizes
		FROM icons
		WHERE theme = ?
		ORDER BY identifier
	`, themeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIcons(rows)
}

func scanIcons(rows *sql.Rows) ([]ports.IndexedIcon, error) {
	var icons []ports.IndexedIcon
	for rows.Next() {
		var icon ports.IndexedIcon
		var context, label sql.NullString
		var symbolic int
		var sizes string

		if err := rows.Scan(&icon.Identifier, &icon.Theme, &context, &icon.File, &label, &symbolic, &sizes); err != nil {
			return nil, err
		}
		icon.Context = context.String
		icon.Label = label.String
		icon.Symbolic = symbolic != 0
		icon.Sizes = decodeSizes(sizes)
		icons = append(icons, icon)
	}
	return icons, rows.Err()
}

// databasePath returns the path for the SQLite database.
func databasePath(root string) string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "ikonograf", hashRootPath(root)+".db")
}

// hashRootPath returns a short hash of the catalog root path.
func hashRootPath(root string) string {
	h := sha256.Sum256([]byte(root))
	return hex.EncodeToString(h[:8])
}

// updateMeta stamps the schema version and root path hash.
func (idx *Index) updateMeta() error {
	// Two separate Execs: the driver binds the argument list from the start
	// for each statement in a batch, so a single multi-statement Exec would
	// write schemaVersion into both rows.
	if _, err := idx.db.Exec(
		`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`,
		schemaVersion,
	); err != nil {
		return err
	}
	_, err := idx.db.Exec(
		`INSERT OR REPLACE INTO meta (key, value) VALUES ('root_path_hash', ?)`,
		hashRootPath(idx.root),
	)
	return err
}
