package export

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/glossnet/pkg/debug"
	"github.com/vanderheijden86/glossnet/pkg/network"
)

// Targets names the output files of a batch export. Empty paths are skipped.
type Targets struct {
	SVG    string
	PNG    string
	SQLite string
	JSON   string
}

// Empty reports whether no target is set.
func (t Targets) Empty() bool {
	return t.SVG == "" && t.PNG == "" && t.SQLite == "" && t.JSON == ""
}

// Result is the outcome of one export target.
type Result struct {
	Kind     string
	Path     string
	Duration time.Duration
	Error    error
}

// All runs every requested export in parallel against one frozen copy of
// the session. Individual failures are captured in the results and joined
// into the returned error.
func All(ctx context.Context, s *network.Session, t Targets, source string) ([]Result, error) {
	if s == nil || !s.Ready() {
		return nil, fmt.Errorf("export needs a loaded session")
	}
	snap := s.Snapshot()

	type job struct {
		kind, path string
		run        func() error
	}
	var jobs []job
	if t.SVG != "" {
		jobs = append(jobs, job{"svg", t.SVG, func() error {
			return SaveSnapshot(SnapshotOptions{Path: t.SVG, Format: "svg", Session: snap})
		}})
	}
	if t.PNG != "" {
		jobs = append(jobs, job{"png", t.PNG, func() error {
			return SaveSnapshot(SnapshotOptions{Path: t.PNG, Format: "png", Session: snap})
		}})
	}
	if t.SQLite != "" {
		jobs = append(jobs, job{"sqlite", t.SQLite, func() error {
			return NewSQLiteExporter(snap.Nodes(), source).Export(t.SQLite)
		}})
	}
	if t.JSON != "" {
		jobs = append(jobs, job{"json", t.JSON, func() error {
			return SaveGraphJSON(t.JSON, snap.Nodes(), source)
		}})
	}

	results := make([]Result, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, j := range jobs {
		g.Go(func() error {
			results[i] = Result{Kind: j.kind, Path: j.path}
			if err := ctx.Err(); err != nil {
				results[i].Error = err
				return nil
			}
			start := time.Now()
			results[i].Error = j.run()
			results[i].Duration = time.Since(start)
			debug.LogTiming("export "+j.kind, results[i].Duration)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}

	var errs []error
	for _, r := range results {
		if r.Error != nil {
			errs = append(errs, fmt.Errorf("%s export to %s: %w", r.Kind, r.Path, r.Error))
		}
	}
	return results, errors.Join(errs...)
}
