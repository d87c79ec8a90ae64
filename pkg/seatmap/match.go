package seatmap

import "strings"

// MatchStage identifies which rule resolved a section label.
type MatchStage int

const (
	// StageNone means no rule matched.
	StageNone MatchStage = iota
	// StageCollapsed means the numeral's group held a single phrase.
	StageCollapsed
	// StageExact means the query qualifier equals a manifest phrase.
	StageExact
	// StageSubstring means a manifest phrase occurs inside the query qualifier.
	StageSubstring
	// StageWord means the query and a manifest phrase share a word.
	StageWord
	// StageLetters means a query word's letters occur in order in a phrase.
	StageLetters
)

func (s MatchStage) String() string {
	switch s {
	case StageNone:
		return "none"
	case StageCollapsed:
		return "collapsed"
	case StageExact:
		return "exact"
	case StageSubstring:
		return "substring"
	case StageWord:
		return "word"
	case StageLetters:
		return "letters"
	default:
		return "unknown"
	}
}

// matchQualifier runs the staged match policy of query against phrases and
// returns the index of the winning phrase. Each stage scans every phrase in
// order before the next stage starts.
func matchQualifier(query string, phrases []string) (int, MatchStage) {
	for i, p := range phrases {
		if p == query {
			return i, StageExact
		}
	}

	for i, p := range phrases {
		if strings.Contains(query, p) {
			return i, StageSubstring
		}
	}

	queryWords := strings.Fields(query)

	for i, p := range phrases {
		for _, pw := range strings.Fields(p) {
			for _, qw := range queryWords {
				if qw == pw {
					return i, StageWord
				}
			}
		}
	}

	for i, p := range phrases {
		for _, qw := range queryWords {
			if _, ok := MatchLetters(qw, p); ok {
				return i, StageLetters
			}
		}
	}

	return -1, StageNone
}
