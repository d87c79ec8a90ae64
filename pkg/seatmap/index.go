package seatmap

import (
	"fmt"
	"slices"
	"strconv"
)

// ManifestRow is one line of a seating manifest, as read from the file.
// Fields are raw: casing, padding and whitespace are normalized by [Builder.Add].
type ManifestRow struct {
	SectionID   string
	SectionName string
	RowID       string
	RowName     string
}

// Group holds the qualifier phrases that share one numeral, in the order
// they first appear in the manifest.
//
// "Box Level 6" and "Top Deck 6" form the group "6" with phrases
// ["box level", "top deck"]. A section name without a numeral forms a group
// keyed by the full name whose only phrase is that name.
type Group struct {
	key     string
	phrases []string
	// names[i] is the canonical section name phrases[i] was first seen in.
	names []string
	// collapsed is set by Build for groups with exactly one phrase.
	collapsed bool
}

// Key returns the numeral (or full name) the group is keyed by.
func (g Group) Key() string { return g.key }

// Phrases returns a copy of the group's qualifier phrases.
func (g Group) Phrases() []string { return slices.Clone(g.phrases) }

// Len returns the number of phrases.
func (g Group) Len() int { return len(g.phrases) }

// Resolved returns the canonical section name of a collapsed group.
//
// A group is collapsed when it holds exactly one phrase: every query
// carrying its numeral resolves to that one section.
func (g Group) Resolved() (string, bool) {
	if !g.collapsed {
		return "", false
	}

	return g.names[0], true
}

func (g *Group) add(phrase, canonical string) {
	if slices.Contains(g.phrases, phrase) {
		return
	}

	g.phrases = append(g.phrases, phrase)
	g.names = append(g.names, canonical)
}

// Index is the in-memory form of a manifest.
//
// An Index is immutable once returned by [Build] or [Builder.Index] and safe
// for concurrent reads.
type Index struct {
	// sections maps canonical section name to section id.
	sections map[string]string
	// groups maps numeral (or numeral-less name) to its qualifier group.
	groups map[string]*Group
	// rows maps section id to {row name: row id}.
	rows map[string]map[string]string
}

// SectionID returns the section id of a canonical section name.
func (x *Index) SectionID(canonical string) (string, bool) {
	id, ok := x.sections[canonical]

	return id, ok
}

// Group returns the qualifier group for a numeral, or for the full name of
// a section without one.
func (x *Index) Group(key string) (Group, bool) {
	g, ok := x.groups[key]
	if !ok {
		return Group{}, false
	}

	return *g, true
}

// HasRows reports whether sectionID has a row table.
func (x *Index) HasRows(sectionID string) bool {
	_, ok := x.rows[sectionID]

	return ok
}

// RowID looks up a normalized row name within a section.
func (x *Index) RowID(sectionID, rowName string) (string, bool) {
	id, ok := x.rows[sectionID][rowName]

	return id, ok
}

// Len returns the number of canonical section names.
func (x *Index) Len() int { return len(x.sections) }

// Sections returns the canonical section names, sorted.
func (x *Index) Sections() []string {
	names := make([]string, 0, len(x.sections))
	for name := range x.sections {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Builder accumulates manifest rows into an [Index].
// The zero value is not usable; call [NewBuilder].
type Builder struct {
	sections map[string]string
	groups   map[string]*Group
	rows     map[string]map[string]string
	added    int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		sections: make(map[string]string),
		groups:   make(map[string]*Group),
		rows:     make(map[string]map[string]string),
	}
}

// Add indexes one manifest row.
//
// Ids must be numerals small enough for an int. Names may be blank: a blank
// row name is indexed as "" (general admission), a blank section name as the
// section "".
// A canonical section name seen twice keeps the later section id.
func (b *Builder) Add(row ManifestRow) error {
	sectionID := normalizeField(row.SectionID)
	rowID := normalizeField(row.RowID)

	if err := checkID("section_id", sectionID); err != nil {
		return err
	}

	if err := checkID("row_id", rowID); err != nil {
		return err
	}

	sectionName := normalizeField(row.SectionName)
	rowName := normalizeField(row.RowName)

	tok := Tokenize(sectionName)
	canonical := tok.Canonical

	b.sections[canonical] = sectionID

	key := tok.Numeral
	if !tok.HasNumeral {
		key = canonical
	}

	group, ok := b.groups[key]
	if !ok {
		group = &Group{key: key}
		b.groups[key] = group
	}

	group.add(tok.Qualifier, canonical)

	rows, ok := b.rows[sectionID]
	if !ok {
		rows = make(map[string]string)
		b.rows[sectionID] = rows
	}

	rows[rowName] = rowID
	b.added++

	return nil
}

// Added returns the number of rows added so far.
func (b *Builder) Added() int { return b.added }

// Index collapses single-phrase groups and returns the finished index.
// The builder is reset and may be reused.
func (b *Builder) Index() *Index {
	for _, g := range b.groups {
		g.collapsed = len(g.phrases) == 1
	}

	idx := &Index{sections: b.sections, groups: b.groups, rows: b.rows}
	*b = *NewBuilder()

	return idx
}

// Build indexes rows in order. A bad row fails the whole build; the error
// names its 1-based position.
func Build(rows []ManifestRow) (*Index, error) {
	b := NewBuilder()

	for i, row := range rows {
		if err := b.Add(row); err != nil {
			return nil, fmt.Errorf("manifest row %d: %w", i+1, err)
		}
	}

	return b.Index(), nil
}

func checkID(field, id string) error {
	if !isNumeral(id) {
		return fmt.Errorf("%w: %s %q is not a number", ErrMalformedRow, field, id)
	}

	if _, err := strconv.Atoi(id); err != nil {
		return fmt.Errorf("%w: %s %q out of range", ErrMalformedRow, field, id)
	}

	return nil
}

// String summarizes the index for logs.
func (x *Index) String() string {
	var rows int
	for _, r := range x.rows {
		rows += len(r)
	}

	return fmt.Sprintf("sections=%d groups=%d rows=%d", len(x.sections), len(x.groups), rows)
}
