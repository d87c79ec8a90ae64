package seatmap

import "testing"

func TestMatchLetters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		letters string
		phrase  string
		wantOK  bool
	}{
		{"fd", "field", true},
		{"df", "field", false},
		{"fd", "dumbfounded", true},
		{"fdx", "field", false},
		{"", "field", true},
		{"", "", true},
		{"a", "", false},
		{"bl", "box level", true},
		{"lb", "box level", false},
		{"ee", "field", false},
		{"ee", "reserve", true},
		{"ü", "über", true},
	}

	for _, tt := range tests {
		t.Run(tt.letters+"/"+tt.phrase, func(t *testing.T) {
			t.Parallel()

			got, ok := MatchLetters(tt.letters, tt.phrase)
			if ok != tt.wantOK {
				t.Fatalf("MatchLetters(%q, %q) ok=%t, want %t", tt.letters, tt.phrase, ok, tt.wantOK)
			}

			if ok && got != tt.phrase {
				t.Errorf("MatchLetters(%q, %q) = %q, want the phrase back", tt.letters, tt.phrase, got)
			}
		})
	}
}

func TestMatchQualifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		query     string
		phrases   []string
		want      string
		wantStage MatchStage
	}{
		{
			name:      "exact wins over substring",
			query:     "preferred reserve",
			phrases:   []string{"reserve", "preferred reserve"},
			want:      "preferred reserve",
			wantStage: StageExact,
		},
		{
			name:      "phrase contained in query",
			query:     "lower reserve west",
			phrases:   []string{"box", "reserve"},
			want:      "reserve",
			wantStage: StageSubstring,
		},
		{
			name:      "shared word",
			query:     "box",
			phrases:   []string{"top deck", "field box"},
			want:      "field box",
			wantStage: StageWord,
		},
		{
			name:      "shared word in longer query",
			query:     "preferred field value",
			phrases:   []string{"top deck", "field box"},
			want:      "field box",
			wantStage: StageWord,
		},
		{
			name:      "abbreviation by letters",
			query:     "fd bx",
			phrases:   []string{"top deck", "field box"},
			want:      "field box",
			wantStage: StageLetters,
		},
		{
			name:      "letters stage scans phrases before query words",
			query:     "tp bx",
			phrases:   []string{"box level", "top deck"},
			want:      "box level",
			wantStage: StageLetters,
		},
		{
			name:      "word stage scans phrases before query words",
			query:     "deck box",
			phrases:   []string{"field box", "top deck"},
			want:      "field box",
			wantStage: StageWord,
		},
		{
			name:      "word stage beats letters match on an earlier phrase",
			query:     "tp upper",
			phrases:   []string{"top deck", "upper deck"},
			want:      "upper deck",
			wantStage: StageWord,
		},
		{
			name:      "ties go to manifest order",
			query:     "level",
			phrases:   []string{"box level", "club level"},
			want:      "box level",
			wantStage: StageWord,
		},
		{
			name:      "letters out of order do not match",
			query:     "kc",
			phrases:   []string{"top deck"},
			wantStage: StageNone,
		},
		{
			name:      "no phrases",
			query:     "box",
			phrases:   nil,
			wantStage: StageNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			i, stage := matchQualifier(tt.query, tt.phrases)

			if got, want := stage, tt.wantStage; got != want {
				t.Fatalf("stage=%s, want=%s", got, want)
			}

			if stage == StageNone {
				if i != -1 {
					t.Errorf("index=%d, want -1 on no match", i)
				}

				return
			}

			if got, want := tt.phrases[i], tt.want; got != want {
				t.Errorf("phrase=%q, want=%q", got, want)
			}
		})
	}
}

func TestMatchStageString(t *testing.T) {
	t.Parallel()

	for stage, want := range map[MatchStage]string{
		StageNone:      "none",
		StageCollapsed: "collapsed",
		StageExact:     "exact",
		StageSubstring: "substring",
		StageWord:      "word",
		StageLetters:   "letters",
		MatchStage(99): "unknown",
	} {
		if got := stage.String(); got != want {
			t.Errorf("MatchStage(%d).String()=%q, want=%q", int(stage), got, want)
		}
	}
}
