// Package seatmap resolves free-text ticket labels against a venue seating
// manifest.
//
// A manifest is a list of (section_id, section_name, row_id, row_name) rows.
// [Build] turns it into an immutable [Index]; a [Resolver] maps a raw
// (section, row) pair typed by a person or read off a scan to the section and
// row ids it most likely denotes.
//
// # Basic Usage
//
//	idx, err := seatmap.Build([]seatmap.ManifestRow{
//	    {SectionID: "10", SectionName: "Box Level 6", RowID: "1", RowName: "A"},
//	    {SectionID: "20", SectionName: "Top Deck 6", RowID: "1", RowName: "A"},
//	})
//	if err != nil {
//	    // errors.Is(err, seatmap.ErrMalformedRow)
//	}
//
//	r := seatmap.NewResolver(idx)
//	res, err := r.Resolve("Box 6", "a") // section_id=10 row_id=1 valid=true
//
// # Section Matching
//
// Section labels are split into a numeral ("6") and a qualifier ("box
// level"). Manifest sections sharing a numeral form a [Group]. A query is
// matched against the qualifiers of its numeral's group in stages, first hit
// wins:
//
//  1. exact qualifier
//  2. a manifest qualifier contained in the query qualifier
//  3. a shared word
//  4. a query word whose letters appear in order in the manifest qualifier
//
// Within a stage qualifiers are tried in manifest order, so results are
// deterministic. A group with a single qualifier is collapsed when the index
// is built: any query carrying that numeral resolves to it.
//
// # Concurrency
//
// [Index] is never mutated after [Build] returns. A [Resolver] is safe for
// concurrent use.
//
// # Error Handling
//
// An unresolvable section or row is not an error; it yields a [Resolution]
// with Valid false. Errors are reserved for broken input ([ErrMalformedRow])
// and broken invariants ([ErrInconsistentIndex]).
package seatmap
