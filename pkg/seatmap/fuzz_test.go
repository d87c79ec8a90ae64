package seatmap_test

import (
	"strconv"
	"testing"

	"github.com/calvinalkan/seatnorm/internal/testutil"
	"github.com/calvinalkan/seatnorm/pkg/seatmap"
)

const maxFuzzQueries = 32

func FuzzResolve_Holds_Invariants_When_Random_Manifest(f *testing.F) {
	f.Add([]byte{0x00, 0x01, 0x02})
	f.Add([]byte{0xFF, 0xFE, 0xFD})
	f.Add([]byte("box level 6, top deck 6"))
	f.Add(make([]byte, 64))

	f.Fuzz(func(t *testing.T, fuzzBytes []byte) {
		s := testutil.NewByteStream(fuzzBytes)
		rows := testutil.VenueManifest(s, 24)

		idx, err := seatmap.Build(rows)
		if err != nil {
			t.Fatalf("Build rejected generated manifest: %v\nrows: %v", err, rows)
		}

		r := seatmap.NewResolver(idx)

		pairs := make(map[[2]int]bool, len(rows))

		for _, row := range rows {
			sid, _ := strconv.Atoi(row.SectionID)
			rid, _ := strconv.Atoi(row.RowID)
			pairs[[2]int{sid, rid}] = true
		}

		queries := make([][2]string, 0, len(rows)+maxFuzzQueries)
		for _, row := range rows {
			queries = append(queries, [2]string{row.SectionName, row.RowName})

			if _, ok := r.ResolveSection(row.SectionName); !ok {
				t.Errorf("manifest section %q does not resolve", row.SectionName)
			}
		}

		for len(queries) < len(rows)+maxFuzzQueries && s.HasMore() {
			queries = append(queries, [2]string{testutil.SectionLabel(s), testutil.RowLabel(s)})
		}

		for _, q := range queries {
			first, err := r.Resolve(q[0], q[1])
			if err != nil {
				t.Fatalf("Resolve(%q, %q): %v", q[0], q[1], err)
			}

			again, _ := r.Resolve(q[0], q[1])
			if again != first {
				t.Fatalf("Resolve(%q, %q) not deterministic: %v then %v", q[0], q[1], first, again)
			}

			if first.Valid != (first.HasSection && first.HasRow) {
				t.Fatalf("Resolve(%q, %q) = %v: valid must mean both ids present", q[0], q[1], first)
			}

			if first.HasRow && !first.HasSection {
				t.Fatalf("Resolve(%q, %q) = %v: row without section", q[0], q[1], first)
			}

			if first.Valid && !pairs[[2]int{first.SectionID, first.RowID}] {
				t.Fatalf("Resolve(%q, %q) = %v: pair not in manifest", q[0], q[1], first)
			}
		}
	})
}
