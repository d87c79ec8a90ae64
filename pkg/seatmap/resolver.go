package seatmap

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"
)

// Resolution is the outcome of resolving a (section, row) query.
//
// The zero value means the section could not be resolved.
type Resolution struct {
	SectionID  int
	RowID      int
	HasSection bool
	HasRow     bool
	// Valid is true iff both ids are present and the row belongs to the section.
	Valid bool
}

// String formats the resolution as "section_id=10 row_id=2 valid=true",
// with "none" for absent ids.
func (r Resolution) String() string {
	return fmt.Sprintf("section_id=%s row_id=%s valid=%t",
		optionalID(r.SectionID, r.HasSection), optionalID(r.RowID, r.HasRow), r.Valid)
}

func optionalID(id int, ok bool) string {
	if !ok {
		return "none"
	}

	return strconv.Itoa(id)
}

// Match is a resolved section label.
type Match struct {
	// Canonical is the manifest's canonical section name.
	Canonical string
	// Stage is the rule that produced the match.
	Stage MatchStage
}

// Resolver resolves ticket labels against an [Index].
//
// Resolver never mutates its index and is safe for concurrent use.
type Resolver struct {
	index *Index
	log   *zap.Logger
}

// Option configures a [Resolver].
type Option func(*Resolver)

// WithLogger sets the logger used to trace resolution at debug level.
func WithLogger(log *zap.Logger) Option {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

// NewResolver returns a Resolver over idx.
func NewResolver(idx *Index, opts ...Option) *Resolver {
	r := &Resolver{index: idx, log: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Index returns the index the resolver reads from.
func (r *Resolver) Index() *Index { return r.index }

// ResolveSection returns the canonical section name section most likely
// denotes.
func (r *Resolver) ResolveSection(section string) (string, bool) {
	m, ok := r.MatchSection(section)

	return m.Canonical, ok
}

// MatchSection is [Resolver.ResolveSection] that also reports which rule
// matched.
//
// The label is lower-cased, whitespace-collapsed and stripped of leading
// zeros, then split into numeral and qualifier. If the numeral's group is
// collapsed its one section wins. Otherwise the qualifier is matched against
// the group's phrases. Labels without a numeral are looked up by their
// full text.
func (r *Resolver) MatchSection(section string) (Match, bool) {
	norm := normalizeLabel(section)
	tok := Tokenize(norm)

	if tok.HasNumeral {
		if m, ok := r.matchNumeral(tok); ok {
			r.traceMatch(section, m)

			return m, true
		}
	}

	key := tok.Numeral
	if !tok.HasNumeral {
		key = norm
	}

	if m, ok := r.matchGroup(key, tok.Qualifier); ok {
		r.traceMatch(section, m)

		return m, true
	}

	r.log.Debug("section unresolved",
		zap.String("input", section),
		zap.String("numeral", tok.Numeral),
		zap.String("qualifier", tok.Qualifier),
	)

	return Match{}, false
}

// matchNumeral handles the numeral-keyed lookup, collapsed groups first.
func (r *Resolver) matchNumeral(tok Token) (Match, bool) {
	g, ok := r.index.groups[tok.Numeral]
	if !ok {
		return Match{}, false
	}

	if name, ok := g.Resolved(); ok {
		return r.accept(name, StageCollapsed)
	}

	return r.matchPhrases(g, tok.Qualifier)
}

// matchGroup is the fallback lookup: any group, any size, by key.
func (r *Resolver) matchGroup(key, qualifier string) (Match, bool) {
	g, ok := r.index.groups[key]
	if !ok {
		return Match{}, false
	}

	return r.matchPhrases(g, qualifier)
}

func (r *Resolver) matchPhrases(g *Group, qualifier string) (Match, bool) {
	i, stage := matchQualifier(qualifier, g.phrases)
	if stage == StageNone {
		return Match{}, false
	}

	return r.accept(g.names[i], stage)
}

// accept finalizes a candidate only if it names a known section.
func (r *Resolver) accept(canonical string, stage MatchStage) (Match, bool) {
	if _, ok := r.index.sections[canonical]; !ok {
		return Match{}, false
	}

	return Match{Canonical: canonical, Stage: stage}, true
}

func (r *Resolver) traceMatch(input string, m Match) {
	r.log.Debug("section resolved",
		zap.String("input", input),
		zap.String("canonical", m.Canonical),
		zap.Stringer("stage", m.Stage),
	)
}

// Resolve resolves a raw (section, row) pair.
//
// An unknown section or row is reported through the returned Resolution,
// never as an error. The only error is [ErrInconsistentIndex].
func (r *Resolver) Resolve(section, row string) (Resolution, error) {
	canonical, ok := r.ResolveSection(section)
	if !ok {
		return Resolution{}, nil
	}

	return r.ResolveRow(canonical, row)
}

// ResolveRow looks up row within the section named by canonical.
func (r *Resolver) ResolveRow(canonical, row string) (Resolution, error) {
	rawID, ok := r.index.sections[canonical]
	if !ok {
		return Resolution{}, nil
	}

	sectionID := TrimZeros(rawID)
	if !r.index.HasRows(sectionID) {
		return Resolution{}, fmt.Errorf("%w: section %q (id %s) has no rows", ErrInconsistentIndex, canonical, sectionID)
	}

	sid, err := strconv.Atoi(sectionID)
	if err != nil {
		return Resolution{}, fmt.Errorf("%w: section %q id %q: %w", ErrInconsistentIndex, canonical, sectionID, err)
	}

	res := Resolution{SectionID: sid, HasSection: true}

	rawRowID, ok := r.index.RowID(sectionID, normalizeLabel(row))
	if !ok {
		r.log.Debug("row not found",
			zap.String("section", canonical),
			zap.String("row", row),
		)

		return res, nil
	}

	rid, err := strconv.Atoi(rawRowID)
	if err != nil {
		return Resolution{}, fmt.Errorf("%w: section %q row %q id %q: %w", ErrInconsistentIndex, canonical, row, rawRowID, err)
	}

	res.RowID = rid
	res.HasRow = true
	res.Valid = true

	return res, nil
}
