package grade

import (
	"context"
	"fmt"
	"runtime"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/calvinalkan/seatnorm/pkg/seatmap"
)

// Resolver is what the grader needs from [seatmap.Resolver].
type Resolver interface {
	Resolve(section, row string) (seatmap.Resolution, error)
}

// Options configures [Run].
type Options struct {
	// Jobs bounds concurrent resolutions. Zero or less means runtime.NumCPU().
	Jobs int
	// Logger receives per-sample debug lines. Nil discards them.
	Logger *zap.Logger
}

// Result is a graded sample.
type Result struct {
	Sample  Sample
	Got     seatmap.Resolution
	Verdict Verdict
}

// Points returns the score of the result.
func (r Result) Points() int { return r.Verdict.Points() }

// Report is the outcome of grading a sample set.
type Report struct {
	// RunID is a time-ordered UUID identifying the grading run.
	RunID string
	// Results is in the same order as the input samples.
	Results []Result
	Total   int
	Max     int
}

// Run resolves every sample and scores it. Samples are resolved
// concurrently; the report keeps input order.
//
// Run stops at the first resolver error or when ctx is cancelled.
func Run(ctx context.Context, r Resolver, samples []Sample, opts Options) (Report, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	runID, err := uuid.NewV7()
	if err != nil {
		return Report{}, fmt.Errorf("run id: %w", err)
	}

	log = log.With(zap.Stringer("run_id", runID))

	results := make([]Result, len(samples))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, s := range samples {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			got, err := r.Resolve(s.Section, s.Row)
			if err != nil {
				return fmt.Errorf("line %d (%q, %q): %w", s.Line, s.Section, s.Row, err)
			}

			verdict := Score(s.Expected, got)
			results[i] = Result{Sample: s, Got: got, Verdict: verdict}

			log.Debug("sample graded",
				zap.Int("line", s.Line),
				zap.Stringer("expected", s.Expected),
				zap.Stringer("got", got),
				zap.Stringer("verdict", verdict),
			)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	// A cancel between the last Go and Wait leaves Wait's error nil.
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	report := Report{RunID: runID.String(), Results: results, Max: len(results)}
	for _, res := range results {
		report.Total += res.Points()
	}

	log.Info("grading finished",
		zap.Int("samples", len(results)),
		zap.Int("total", report.Total),
		zap.Int("max", report.Max),
		zap.Int("jobs", jobs),
	)

	return report, nil
}
