package cli_test

import (
	"strings"
	"testing"

	"github.com/calvinalkan/seatnorm/internal/cli"
)

const samplesCSV = `section,row,n_section_id,n_row_id,valid
Box Level 6,b,10,2,TRUE
Box 6,a,10,1,1
Deck 6,z,20,,False
Mezzanine 99,a,,,0
Top Deck 6,a,10,1,true
Box 6,zz,10,2,t
`

func Test_Grade_Prints_Summary_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.UseManifest(stadiumCSV)
	c.WriteFile("samples.csv", samplesCSV)

	if got, want := c.MustRun("grade", "samples.csv"), "-1 / 6"; got != want {
		t.Errorf("stdout=%q, want=%q", got, want)
	}
}

func Test_Grade_Verbose_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.UseManifest(stadiumCSV)
	c.WriteFile("samples.csv", samplesCSV)

	stdout := c.MustRun("grade", "-v", "--jobs", "3", "samples.csv")

	want := strings.Join([]string{
		".. ok",
		".. ok",
		".. ok",
		".. ok",
		".. Top Deck 6:a WRONG!, marked 20:1, should be 10:1",
		".. Box 6:zz marked invalid, should be 10:2",
		"-1 / 6",
	}, "\n")

	if got := stdout; got != want {
		t.Errorf("stdout=\n%s\nwant=\n%s", got, want)
	}
}

func Test_Grade_Writes_Results_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.UseManifest(stadiumCSV)
	c.WriteFile("samples.csv", samplesCSV)

	c.MustRun("grade", "--out", "out/results.csv", "samples.csv")

	results := c.ReadFile("out/results.csv")
	lines := strings.Split(strings.TrimSpace(results), "\n")

	if got, want := len(lines), 7; got != want {
		t.Fatalf("lines=%d, want=%d\n%s", got, want, results)
	}

	cli.AssertContains(t, lines[0], "verdict,points")
	cli.AssertContains(t, lines[1], "2,Box Level 6,b,10,2,true,10,2,true,ok,1")
	cli.AssertContains(t, lines[5], "wrong_match,-5")
}

func TestGradeCommandErrors(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name    string
		args    []string
		samples string
		wantErr string
	}{
		{name: "no input", args: []string{"grade"}, wantErr: "input file is required"},
		{name: "missing input", args: []string{"grade", "nope.csv"}, wantErr: "cannot open samples"},
		{name: "bad jobs", args: []string{"grade", "-j", "0", "samples.csv"}, samples: samplesCSV, wantErr: "--jobs must be at least 1"},
		{name: "missing column", args: []string{"grade", "samples.csv"}, samples: "section,row\nBox 6,a\n", wantErr: "missing column: n_section_id"},
		{name: "bad bool", args: []string{"grade", "samples.csv"}, samples: "section,row,n_section_id,n_row_id,valid\nBox 6,a,10,1,maybe\n", wantErr: "line 2"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := cli.NewCLI(t)
			c.UseManifest(stadiumCSV)

			if tt.samples != "" {
				c.WriteFile("samples.csv", tt.samples)
			}

			stderr := c.MustFail(tt.args...)
			cli.AssertContains(t, stderr, tt.wantErr)
		})
	}
}
