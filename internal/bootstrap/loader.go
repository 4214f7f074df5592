// AngelaMos | 2026
// loader.go

package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/heritage-museum/internal/core"
)

// Seeder is a catalog collection that can be bulk loaded from its seed file.
type Seeder interface {
	Kind() string
	Count(ctx context.Context) (int, error)
	Seed(ctx context.Context, r io.Reader) (int, error)
}

type Source struct {
	Seeder Seeder
	File   string
}

type Outcome string

const (
	OutcomeSeeded  Outcome = "seeded"
	OutcomeSkipped Outcome = "skipped"
	OutcomeMissing Outcome = "missing"
	OutcomeFailed  Outcome = "failed"
)

type Result struct {
	Kind     string
	Outcome  Outcome
	Inserted int
	Err      error
}

// Loader fills empty catalog tables from <dir>/<file>. Tables that already
// hold rows are left alone, so it is safe to run on every start.
type Loader struct {
	dir     string
	sources []Source
	logger  *slog.Logger
}

func NewLoader(dir string, logger *slog.Logger, sources ...Source) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		dir:     dir,
		sources: sources,
		logger:  logger,
	}
}

// Run never stops early. A failure on one kind is logged and reported in
// its Result while the remaining kinds still load.
func (l *Loader) Run(ctx context.Context) []Result {
	results := make([]Result, 0, len(l.sources))

	for _, src := range l.sources {
		res := l.load(ctx, src)
		results = append(results, res)

		attrs := []any{"kind", res.Kind, "outcome", res.Outcome}
		switch res.Outcome {
		case OutcomeFailed:
			l.logger.ErrorContext(ctx, "catalog seed failed", append(attrs, "error", res.Err)...)
		case OutcomeSeeded:
			l.logger.InfoContext(ctx, "catalog seeded", append(attrs, "records", res.Inserted)...)
		default:
			l.logger.DebugContext(ctx, "catalog seed skipped", attrs...)
		}
	}

	return results
}

func (l *Loader) load(ctx context.Context, src Source) Result {
	res := Result{Kind: src.Seeder.Kind()}

	ctx, span := core.StartSpan(ctx, "bootstrap.seed",
		attribute.String("catalog.kind", res.Kind),
	)
	defer span.End()

	n, err := src.Seeder.Count(ctx)
	if err != nil {
		res.Outcome, res.Err = OutcomeFailed, fmt.Errorf("count %s: %w", res.Kind, err)
		core.SetSpanError(ctx, res.Err)
		return res
	}
	if n > 0 {
		res.Outcome = OutcomeSkipped
		return res
	}

	path := filepath.Join(l.dir, src.File)
	f, err := os.Open(path) //nolint:gosec // G304: path comes from config
	if errors.Is(err, fs.ErrNotExist) {
		res.Outcome = OutcomeMissing
		return res
	}
	if err != nil {
		res.Outcome, res.Err = OutcomeFailed, fmt.Errorf("open %s: %w", path, err)
		core.SetSpanError(ctx, res.Err)
		return res
	}
	defer f.Close() //nolint:errcheck // read-only file

	res.Inserted, err = src.Seeder.Seed(ctx, f)
	if err != nil {
		res.Outcome, res.Err = OutcomeFailed, err
		core.SetSpanError(ctx, err)
		return res
	}

	res.Outcome = OutcomeSeeded
	return res
}

// Failed joins the errors of every failed kind, or returns nil.
func Failed(results []Result) error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errors.Join(errs...)
}
