// Package manifest reads venue seating manifests into a [seatmap.Index].
//
// A manifest is a CSV file whose first line is a header and whose columns
// are section_id, section_name, row_id, row_name. Files ending in .gz,
// .zst/.zstd or .lz4 are decompressed on the fly. A SQLite database with a
// manifest table of the same columns may be used instead.
package manifest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"go.uber.org/zap"

	"github.com/calvinalkan/seatnorm/internal/fs"
	"github.com/calvinalkan/seatnorm/pkg/seatmap"
)

// Columns is the number of columns every manifest line must have.
const Columns = 4

// Error variables for manifest loading.
var (
	ErrManifestNotFound = errors.New("manifest not found")
	ErrManifestRead     = errors.New("cannot read manifest")
)

// Load reads the manifest at path and builds its index. SQLite databases
// (.db, .sqlite, .sqlite3) are read from their manifest table, anything else
// as CSV.
func Load(ctx context.Context, fsys fs.FS, path string, log *zap.Logger) (*seatmap.Index, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var (
		rows []seatmap.ManifestRow
		err  error
	)

	if IsSQLite(path) {
		rows, err = loadSQLite(ctx, fsys, path)
	} else {
		rows, err = loadCSV(fsys, path)
	}

	if err != nil {
		return nil, err
	}

	idx, err := seatmap.Build(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.Info("manifest loaded",
		zap.String("path", path),
		zap.Int("rows", len(rows)),
		zap.Stringer("index", idx),
	)

	return idx, nil
}

func loadCSV(fsys fs.FS, path string) ([]seatmap.ManifestRow, error) {
	file, err := fsys.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, path)
		}

		return nil, fmt.Errorf("%w %s: %w", ErrManifestRead, path, err)
	}

	defer func() { _ = file.Close() }()

	body, err := Decompress(file, path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrManifestRead, path, err)
	}

	defer func() { _ = body.Close() }()

	rows, err := Read(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return rows, nil
}

// Read parses manifest CSV. The first line is skipped as a header. A line
// with the wrong number of columns fails the whole read.
//
// Fields may be quoted with '"'. A stray '"' inside an unquoted field is kept
// as text, so names like `Club "A" 6` load as written.
func Read(r io.Reader) ([]seatmap.ManifestRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}

		return nil, fmt.Errorf("%w: header: %w", ErrManifestRead, err)
	}

	var rows []seatmap.ManifestRow

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrManifestRead, err)
		}

		if len(record) != Columns {
			line, _ := reader.FieldPos(0)

			return nil, fmt.Errorf("%w: line %d: got %d columns, want %d",
				seatmap.ErrMalformedRow, line, len(record), Columns)
		}

		rows = append(rows, seatmap.ManifestRow{
			SectionID:   record[0],
			SectionName: record[1],
			RowID:       record[2],
			RowName:     record[3],
		})
	}

	return rows, nil
}

// Decompress wraps r in a decompressor chosen by the extension of path.
// Unknown extensions are read as plain text.
func Decompress(r io.Reader, path string) (io.ReadCloser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}

		return zr, nil
	case ".zst", ".zstd":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}

		return zr.IOReadCloser(), nil
	case ".lz4":
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return io.NopCloser(r), nil
	}
}
