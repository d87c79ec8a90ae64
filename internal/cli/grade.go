package cli

import (
	"context"
	"fmt"
	"path/filepath"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/calvinalkan/seatnorm/internal/grade"
)

// GradeCmd returns the grade command.
func GradeCmd(d *deps) *Command {
	flags := flag.NewFlagSet("grade", flag.ContinueOnError)
	verbose := flags.BoolP("verbose", "v", false, "Print one line per sample")
	jobs := flags.IntP("jobs", "j", 0, "Concurrent resolutions (default from config, else CPU count)")
	outPath := flags.StringP("out", "o", "", "Write per-sample results as CSV to `file`")

	return &Command{
		Flags: flags,
		Usage: "grade [flags] <input.csv>",
		Short: "Score the resolver against labelled samples",
		Long: `Resolve every sample in <input.csv> and score the answers: +1 when
the resolver agrees with the label, 0 for a cautious miss and -5 for a
confident wrong answer. Prints "<total> / <max>".

The input needs the columns section, row, n_section_id, n_row_id, valid.`,
		Exec: func(ctx context.Context, io *IO, args []string) error {
			return execGrade(ctx, io, d, args, gradeOptions{
				verbose: *verbose,
				jobs:    *jobs,
				jobsSet: flags.Changed("jobs"),
				outPath: *outPath,
			})
		},
	}
}

type gradeOptions struct {
	verbose bool
	jobs    int
	jobsSet bool
	outPath string
}

func execGrade(ctx context.Context, io *IO, d *deps, args []string, opts gradeOptions) error {
	if len(args) == 0 {
		return ErrInputRequired
	}

	if len(args) > 1 {
		return fmt.Errorf("%w: %q", ErrTooManyArgs, args[1:])
	}

	jobs := d.cfg.EffectiveJobs
	if opts.jobsSet {
		if opts.jobs < 1 {
			return fmt.Errorf("--jobs must be at least 1, got %d", opts.jobs)
		}

		jobs = opts.jobs
	}

	r, err := d.resolver(ctx)
	if err != nil {
		return err
	}

	inputPath := d.abs(args[0])

	file, err := d.fs.Open(inputPath)
	if err != nil {
		return fmt.Errorf("cannot open samples: %w", err)
	}

	samples, err := grade.ReadSamples(file)
	_ = file.Close()

	if err != nil {
		return fmt.Errorf("%s: %w", inputPath, err)
	}

	report, err := grade.Run(ctx, r, samples, grade.Options{Jobs: jobs, Logger: d.log})
	if err != nil {
		return err
	}

	if opts.verbose {
		if err := report.WriteVerbose(io.Out()); err != nil {
			return err
		}
	} else {
		io.Println(report.Summary())
	}

	if opts.outPath == "" {
		return nil
	}

	return writeResults(d, report, d.abs(opts.outPath))
}

func writeResults(d *deps, report grade.Report, path string) error {
	data, err := report.CSV()
	if err != nil {
		return fmt.Errorf("rendering results: %w", err)
	}

	if err := d.fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("cannot create results directory: %w", err)
	}

	if err := d.fs.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write results: %w", err)
	}

	d.log.Info("results written", zap.String("path", path), zap.Int("samples", len(report.Results)))

	return nil
}
