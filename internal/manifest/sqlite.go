package manifest

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3" // sqlite3 driver

	"github.com/calvinalkan/seatnorm/internal/fs"
	"github.com/calvinalkan/seatnorm/pkg/seatmap"
)

// Table is the table a SQLite manifest is read from.
const Table = "manifest"

// selectRows reads manifest rows in insertion order.
const selectRows = `SELECT section_id, section_name, row_id, row_name FROM ` + Table + ` ORDER BY rowid`

// IsSQLite reports whether path names a SQLite manifest.
func IsSQLite(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	default:
		return false
	}
}

func loadSQLite(ctx context.Context, fsys fs.FS, path string) ([]seatmap.ManifestRow, error) {
	// SQLite would create a missing file; report it instead.
	ok, err := fsys.Exists(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrManifestRead, path, err)
	}

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, path)
	}

	rows, err := ReadSQLite(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrManifestRead, path, err)
	}

	return rows, nil
}

// ReadSQLite reads the manifest table of the database at path, read-only.
// NULL fields read as empty strings. [seatmap.Build] rejects a NULL id and
// indexes a NULL name as blank.
func ReadSQLite(ctx context.Context, path string) ([]seatmap.ManifestRow, error) {
	dsn := (&url.URL{Scheme: "file", Opaque: path, RawQuery: "mode=ro"}).String()

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	defer func() { _ = db.Close() }()

	err = db.PingContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	rs, err := db.QueryContext(ctx, selectRows)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", Table, err)
	}

	defer func() { _ = rs.Close() }()

	var out []seatmap.ManifestRow

	for rs.Next() {
		var sectionID, sectionName, rowID, rowName sql.NullString

		if err := rs.Scan(&sectionID, &sectionName, &rowID, &rowName); err != nil {
			return nil, fmt.Errorf("scan %s row %d: %w", Table, len(out)+1, err)
		}

		out = append(out, seatmap.ManifestRow{
			SectionID:   sectionID.String,
			SectionName: sectionName.String,
			RowID:       rowID.String,
			RowName:     rowName.String,
		})
	}

	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", Table, err)
	}

	return out, nil
}
