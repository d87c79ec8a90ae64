package grade

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Summary returns "<total> / <max>".
func (r Report) Summary() string {
	return fmt.Sprintf("%d / %d", r.Total, r.Max)
}

// Line describes a result for verbose output. Mismatches on invalid
// tickets score nothing and print nothing.
func (r Result) Line() (string, bool) {
	s, exp, got := r.Sample, r.Sample.Expected, r.Got

	switch r.Verdict {
	case VerdictOK:
		return ".. ok", true
	case VerdictMarkedInvalid:
		return fmt.Sprintf(".. %s:%s marked invalid, should be %s:%s",
			s.Section, s.Row, idText(exp.SectionID, exp.HasSection), idText(exp.RowID, exp.HasRow)), true
	case VerdictWrongMatch:
		return fmt.Sprintf(".. %s:%s WRONG!, marked %s:%s, should be %s:%s",
			s.Section, s.Row,
			idText(got.SectionID, got.HasSection), idText(got.RowID, got.HasRow),
			idText(exp.SectionID, exp.HasSection), idText(exp.RowID, exp.HasRow)), true
	case VerdictMarkedValid:
		return fmt.Sprintf(".. %s:%s WRONG! Marked valid, should be invalid", s.Section, s.Row), true
	default:
		return "", false
	}
}

// WriteVerbose writes one line per result followed by the summary.
func (r Report) WriteVerbose(w io.Writer) error {
	for _, res := range r.Results {
		line, ok := res.Line()
		if !ok {
			continue
		}

		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w, r.Summary())

	return err
}

// ResultsHeader is the header of the results CSV.
var ResultsHeader = []string{
	"run_id", "line", ColSection, ColRow,
	ColSectionID, ColRowID, ColValid,
	"got_section_id", "got_row_id", "got_valid",
	"verdict", "points",
}

// CSV renders the results as CSV, one row per sample in input order.
// Absent ids are empty fields. Every row carries the run id so results of
// several runs can be concatenated.
func (r Report) CSV() ([]byte, error) {
	var buf bytes.Buffer

	w := csv.NewWriter(&buf)
	if err := w.Write(ResultsHeader); err != nil {
		return nil, err
	}

	for _, res := range r.Results {
		exp, got := res.Sample.Expected, res.Got

		record := []string{
			r.RunID, strconv.Itoa(res.Sample.Line), res.Sample.Section, res.Sample.Row,
			csvID(exp.SectionID, exp.HasSection), csvID(exp.RowID, exp.HasRow), strconv.FormatBool(exp.Valid),
			csvID(got.SectionID, got.HasSection), csvID(got.RowID, got.HasRow), strconv.FormatBool(got.Valid),
			res.Verdict.String(), strconv.Itoa(res.Points()),
		}

		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func idText(id int, ok bool) string {
	if !ok {
		return "none"
	}

	return strconv.Itoa(id)
}

func csvID(id int, ok bool) string {
	if !ok {
		return ""
	}

	return strconv.Itoa(id)
}
