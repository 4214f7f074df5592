// AngelaMos | 2026
// service.go

package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/goccy/go-json"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/heritage-museum/internal/core"
	"github.com/carterperez-dev/heritage-museum/internal/metrics"
)

type Exporter interface {
	Write(filename string, records any) error
}

// Collection is the catalog store for one kind. Every successful mutation
// re-exports the whole kind to its mirror file; export failures are logged
// and never returned.
type Collection[T Item] struct {
	kind       Kind
	repo       Repository[T]
	mirror     Exporter
	mirrorFile string
	logger     *slog.Logger
}

func NewCollection[T Item](
	kind Kind,
	repo Repository[T],
	mirror Exporter,
	mirrorFile string,
	logger *slog.Logger,
) *Collection[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collection[T]{
		kind:       kind,
		repo:       repo,
		mirror:     mirror,
		mirrorFile: mirrorFile,
		logger:     logger.With("kind", string(kind)),
	}
}

func (c *Collection[T]) Kind() string {
	return string(c.kind)
}

func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	return c.repo.List(ctx)
}

func (c *Collection[T]) Get(ctx context.Context, id int64) (*T, error) {
	return c.repo.GetByID(ctx, id)
}

func (c *Collection[T]) Count(ctx context.Context) (int, error) {
	return c.repo.Count(ctx)
}

func (c *Collection[T]) Create(ctx context.Context, item *T) error {
	if err := c.repo.Create(ctx, item); err != nil {
		return err
	}
	c.export(ctx)
	return nil
}

// Update applies patch to the stored record and writes it back. Fields the
// patch leaves alone keep their stored values.
func (c *Collection[T]) Update(
	ctx context.Context,
	id int64,
	patch func(*T),
) (*T, error) {
	item, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch(item)

	if err := c.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	c.export(ctx)
	return item, nil
}

func (c *Collection[T]) Delete(ctx context.Context, id int64) error {
	if err := c.repo.Delete(ctx, id); err != nil {
		return err
	}
	c.export(ctx)
	return nil
}

// Seed decodes a JSON array of records from r and inserts them. It does not
// touch the mirror: the seed file already is one.
func (c *Collection[T]) Seed(ctx context.Context, r io.Reader) (int, error) {
	var items []T
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return 0, fmt.Errorf("decode %s seed: %w", c.kind, err)
	}
	if len(items) == 0 {
		return 0, nil
	}

	if err := c.repo.InsertBatch(ctx, items); err != nil {
		return 0, err
	}

	metrics.SeedRecordsTotal.WithLabelValues(string(c.kind)).Add(float64(len(items)))
	return len(items), nil
}

// Export rewrites the mirror file from the current rows.
func (c *Collection[T]) Export(ctx context.Context) error {
	ctx, span := core.StartSpan(ctx, "catalog.mirror.export",
		attribute.String("catalog.kind", string(c.kind)),
	)
	defer span.End()

	err := c.writeMirror(ctx)
	metrics.RecordMirrorExport(string(c.kind), err)
	if err != nil {
		core.SetSpanError(ctx, err)
	}
	return err
}

func (c *Collection[T]) writeMirror(ctx context.Context) error {
	if c.mirror == nil {
		return errors.New("mirror not configured")
	}

	items, err := c.repo.List(ctx)
	if err != nil {
		return err
	}

	return c.mirror.Write(c.mirrorFile, items)
}

func (c *Collection[T]) export(ctx context.Context) {
	if err := c.Export(ctx); err != nil {
		c.logger.ErrorContext(ctx, "mirror export failed",
			"file", c.mirrorFile,
			"error", err,
		)
	}
}
