package seatmap

import (
	"strings"
	"unicode/utf8"
)

// MatchLetters reports whether the letters of letters appear in phrase in
// the same order, returning phrase on success.
//
// The scan is greedy and never backtracks: each letter is matched at its
// earliest position after the previous match. "fd" matches "field" (f at 0,
// d at 4) but "df" does not. Empty letters match any phrase.
func MatchLetters(letters, phrase string) (string, bool) {
	rest := phrase

	for _, letter := range letters {
		at := strings.IndexRune(rest, letter)
		if at < 0 {
			return "", false
		}

		_, width := utf8.DecodeRuneInString(rest[at:])
		rest = rest[at+width:]
	}

	return phrase, true
}
