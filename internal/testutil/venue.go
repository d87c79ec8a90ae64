package testutil

import (
	"strconv"
	"strings"

	"github.com/calvinalkan/seatnorm/pkg/seatmap"
)

var venueWords = []string{
	"box", "level", "top", "deck", "field", "reserve", "club",
	"upper", "lower", "pavilion", "mezzanine", "terrace", "suite",
}

// VenueManifest derives 1 to maxRows well-formed manifest rows.
func VenueManifest(s *ByteStream, maxRows int) []seatmap.ManifestRow {
	n := 1 + s.NextInt(maxRows)
	rows := make([]seatmap.ManifestRow, 0, n)

	for range n {
		rows = append(rows, seatmap.ManifestRow{
			SectionID:   padded(s, 1+s.NextInt(20)),
			SectionName: SectionLabel(s),
			RowID:       strconv.Itoa(s.NextInt(30)),
			RowName:     RowLabel(s),
		})
	}

	return rows
}

// SectionLabel derives a label like "Box Level 06", "TD 12" or "101".
// Every label has at least one word or a numeral.
func SectionLabel(s *ByteStream) string {
	var parts []string

	for range s.NextInt(3) {
		word := s.Pick(venueWords)

		switch s.NextInt(4) {
		case 0:
			word = strings.ToUpper(word[:1]) + word[1:]
		case 1:
			word = strings.ToUpper(word)
		case 2:
			word = abbreviate(s, word)
		}

		parts = append(parts, word)
	}

	if len(parts) == 0 || s.NextBool() {
		num := padded(s, 1+s.NextInt(40))
		if len(parts) > 0 && s.NextBool() {
			// numeral in front
			parts = append([]string{num}, parts...)
		} else {
			parts = append(parts, num)
		}
	}

	sep := " "
	if s.NextInt(8) == 0 {
		sep = "  "
	}

	return strings.Join(parts, sep)
}

// RowLabel derives a row label like "A", "bb" or "007".
func RowLabel(s *ByteStream) string {
	if s.NextBool() {
		return padded(s, 1+s.NextInt(30))
	}

	letters := make([]byte, 1+s.NextInt(2))
	for i := range letters {
		letters[i] = 'a' + byte(s.NextInt(6))
	}

	if s.NextBool() {
		return strings.ToUpper(string(letters))
	}

	return string(letters)
}

// abbreviate keeps a prefix of word, at least its first letter.
func abbreviate(s *ByteStream, word string) string {
	return word[:1+s.NextInt(len(word))]
}

func padded(s *ByteStream, n int) string {
	return strings.Repeat("0", s.NextInt(3)) + strconv.Itoa(n)
}
