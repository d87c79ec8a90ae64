package grade

import "github.com/calvinalkan/seatnorm/pkg/seatmap"

// Verdict classifies a resolver answer against its label.
type Verdict int

const (
	// VerdictOK means ids and validity all agree.
	VerdictOK Verdict = iota
	// VerdictMarkedInvalid means a valid ticket was reported invalid.
	VerdictMarkedInvalid
	// VerdictWrongMatch means validity agrees on a valid ticket but an id
	// differs.
	VerdictWrongMatch
	// VerdictMarkedValid means an invalid ticket was reported valid.
	VerdictMarkedValid
	// VerdictMismatch means both agree the ticket is invalid but disagree
	// on which ids were found.
	VerdictMismatch
)

// Points returns the score a verdict earns.
func (v Verdict) Points() int {
	switch v {
	case VerdictOK:
		return 1
	case VerdictWrongMatch, VerdictMarkedValid:
		return -5
	default:
		return 0
	}
}

func (v Verdict) String() string {
	switch v {
	case VerdictOK:
		return "ok"
	case VerdictMarkedInvalid:
		return "marked_invalid"
	case VerdictWrongMatch:
		return "wrong_match"
	case VerdictMarkedValid:
		return "marked_valid"
	case VerdictMismatch:
		return "mismatch"
	default:
		return "unknown"
	}
}

// Score compares the resolver's answer got with the label expected.
func Score(expected, got seatmap.Resolution) Verdict {
	idsMatch := sameID(expected.SectionID, expected.HasSection, got.SectionID, got.HasSection) &&
		sameID(expected.RowID, expected.HasRow, got.RowID, got.HasRow)

	switch {
	case expected.Valid != got.Valid && expected.Valid:
		return VerdictMarkedInvalid
	case expected.Valid != got.Valid:
		return VerdictMarkedValid
	case idsMatch:
		return VerdictOK
	case expected.Valid:
		return VerdictWrongMatch
	default:
		return VerdictMismatch
	}
}

func sameID(a int, hasA bool, b int, hasB bool) bool {
	if !hasA || !hasB {
		return hasA == hasB
	}

	return a == b
}
