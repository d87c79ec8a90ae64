package seatmap

import (
	"regexp"
	"strings"
)

// digitRun matches a maximal run of ASCII digits.
var digitRun = regexp.MustCompile(`[0-9]+`)

// Token is a section label split into its numeral and qualifier.
//
// For "box level 06" the numeral is "6" and the qualifier "box level".
type Token struct {
	// Numeral is the first digit run with leading zeros stripped.
	// Empty when HasNumeral is false.
	Numeral string

	// Qualifier is the label without the numeral, whitespace collapsed.
	// When the label is nothing but the numeral, Qualifier is the numeral.
	Qualifier string

	// Canonical is the label with the numeral's leading zeros stripped in
	// place and whitespace collapsed.
	Canonical string

	HasNumeral bool
}

// Tokenize splits s into numeral and qualifier. Only the first digit run
// counts as the numeral; later runs stay part of the qualifier. Casing is
// left alone.
func Tokenize(s string) Token {
	collapsed := collapseSpace(s)

	loc := digitRun.FindStringIndex(collapsed)
	if loc == nil {
		return Token{Qualifier: collapsed, Canonical: collapsed}
	}

	numeral := TrimZeros(collapsed[loc[0]:loc[1]])
	canonical := collapsed[:loc[0]] + numeral + collapsed[loc[1]:]

	qualifier := collapseSpace(collapsed[:loc[0]] + " " + collapsed[loc[1]:])
	if qualifier == "" {
		qualifier = canonical
	}

	return Token{
		Numeral:    numeral,
		Qualifier:  qualifier,
		Canonical:  canonical,
		HasNumeral: true,
	}
}

// TrimZeros strips leading zeros from s. A string made only of zeros is
// returned unchanged, so "0" stays "0" and "000" stays "000".
func TrimZeros(s string) string {
	trimmed := strings.TrimLeft(s, "0")
	if trimmed == "" {
		return s
	}

	return trimmed
}

// isNumeral reports whether s is a non-empty run of ASCII digits.
func isNumeral(s string) bool {
	if s == "" {
		return false
	}

	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// normalizeLabel is the query-side normalization shared by sections and rows:
// collapsed whitespace, lower case, leading zeros stripped.
func normalizeLabel(s string) string {
	return TrimZeros(strings.ToLower(collapseSpace(s)))
}

// normalizeField is the manifest-side normalization: numerals lose their
// leading zeros, everything else is lower-cased.
func normalizeField(s string) string {
	s = collapseSpace(s)
	if isNumeral(s) {
		return TrimZeros(s)
	}

	return strings.ToLower(s)
}
