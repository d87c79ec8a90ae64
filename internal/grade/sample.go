// Package grade scores a seat resolver against labelled samples.
//
// A sample file is CSV with a header naming the columns section, row,
// n_section_id, n_row_id and valid (any order, extra columns ignored).
// Each sample earns +1 when the resolver agrees with the label, 0 for a
// cautious miss and -5 for a confident wrong answer. See [Score].
package grade

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/calvinalkan/seatnorm/pkg/seatmap"
)

// Error variables for sample parsing.
var (
	ErrMissingColumn   = errors.New("missing column")
	ErrMalformedSample = errors.New("malformed sample")
)

// Header columns a sample file must have.
const (
	ColSection   = "section"
	ColRow       = "row"
	ColSectionID = "n_section_id"
	ColRowID     = "n_row_id"
	ColValid     = "valid"
)

var requiredColumns = []string{ColSection, ColRow, ColSectionID, ColRowID, ColValid}

// Sample is one labelled query.
type Sample struct {
	Section  string
	Row      string
	Expected seatmap.Resolution
	// Line is the 1-based line the sample was read from.
	Line int
}

// ReadSamples parses a sample file.
func ReadSamples(r io.Reader) ([]Sample, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s (empty input)", ErrMissingColumn, ColSection)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrMalformedSample, err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}

	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	var samples []Sample

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return samples, nil
		}

		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedSample, err)
		}

		line, _ := reader.FieldPos(0)

		sample, err := parseSample(record, cols)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedSample, line, err)
		}

		sample.Line = line
		samples = append(samples, sample)
	}
}

func parseSample(record []string, cols map[string]int) (Sample, error) {
	field := func(name string) (string, error) {
		i := cols[name]
		if i >= len(record) {
			return "", fmt.Errorf("no %s column (got %d fields)", name, len(record))
		}

		return record[i], nil
	}

	var (
		s    Sample
		vals = make(map[string]string, len(requiredColumns))
	)

	for _, name := range requiredColumns {
		v, err := field(name)
		if err != nil {
			return Sample{}, err
		}

		vals[name] = v
	}

	s.Section = vals[ColSection]
	s.Row = vals[ColRow]

	sid, ok, err := ParseID(vals[ColSectionID])
	if err != nil {
		return Sample{}, fmt.Errorf("%s: %w", ColSectionID, err)
	}

	rid, hasRow, err := ParseID(vals[ColRowID])
	if err != nil {
		return Sample{}, fmt.Errorf("%s: %w", ColRowID, err)
	}

	valid, err := ParseBool(vals[ColValid])
	if err != nil {
		return Sample{}, fmt.Errorf("%s: %w", ColValid, err)
	}

	s.Expected = seatmap.Resolution{
		SectionID:  sid,
		HasSection: ok,
		RowID:      rid,
		HasRow:     hasRow,
		Valid:      valid,
	}

	return s, nil
}

// ParseID parses an optional integer id. An empty field means absent.
func ParseID(s string) (int, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false, nil
	}

	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, false, fmt.Errorf("%q is not an integer", s)
	}

	return id, true, nil
}

// ParseBool accepts an integer (non-zero is true) or any word starting
// with t or f, in any case.
func ParseBool(s string) (bool, error) {
	s = strings.TrimSpace(s)

	if n, err := strconv.Atoi(s); err == nil {
		return n != 0, nil
	}

	switch {
	case strings.HasPrefix(strings.ToLower(s), "t"):
		return true, nil
	case strings.HasPrefix(strings.ToLower(s), "f"):
		return false, nil
	}

	return false, fmt.Errorf("%q is not a boolean", s)
}
