// AngelaMos | 2026
// repository.go

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/heritage-museum/internal/core"
)

type Repository[T Item] interface {
	List(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
	InsertBatch(ctx context.Context, items []T) error
}

// Store is satisfied by *sqlx.DB.
type Store interface {
	core.DBTX
	core.TxBeginner
}

type table struct {
	name    string
	columns []string
	orderBy string
}

// Equal sort keys fall back to id so listings are stable.
var (
	templesTable = table{
		name: "temples",
		columns: []string{
			"name", "dynasty", "builder", "time_period",
			"historical_significance", "weapon_used", "static_image_url",
			"model_3d_embed", "audio_story_url",
		},
		orderBy: "dynasty, id",
	}
	weaponsTable = table{
		name: "weapons",
		columns: []string{
			"name", "dynasty_context", "type", "description", "image_url",
			"model_3d_embed", "audio_story_url",
		},
		orderBy: "name, id",
	}
	fossilsTable = table{
		name: "fossils",
		columns: []string{
			"name", "fossil_type", "era", "age_in_years", "description",
			"origin_location", "image_url", "model_3d_embed",
			"audio_story_url", "updated_by",
		},
		orderBy: "era, id",
	}
)

type queries struct {
	list         string
	get          string
	insert       string
	insertWithID string
	update       string
	delete       string
	count        string
	resetSerial  string
}

func buildQueries(t table) queries {
	selectCols := "id, " + strings.Join(t.columns, ", ") + ", created_at"

	named := make([]string, len(t.columns))
	sets := make([]string, len(t.columns))
	for i, c := range t.columns {
		named[i] = ":" + c
		sets[i] = c + " = :" + c
	}

	return queries{
		list: fmt.Sprintf(
			`SELECT %s FROM %s ORDER BY %s`,
			selectCols, t.name, t.orderBy,
		),
		get: fmt.Sprintf(
			`SELECT %s FROM %s WHERE id = $1`,
			selectCols, t.name,
		),
		insert: fmt.Sprintf(
			`INSERT INTO %s (%s) VALUES (%s) RETURNING %s`,
			t.name, strings.Join(t.columns, ", "), strings.Join(named, ", "), selectCols,
		),
		insertWithID: fmt.Sprintf(
			`INSERT INTO %s (id, %s) VALUES (:id, %s)`,
			t.name, strings.Join(t.columns, ", "), strings.Join(named, ", "),
		),
		update: fmt.Sprintf(
			`UPDATE %s SET %s WHERE id = :id RETURNING %s`,
			t.name, strings.Join(sets, ", "), selectCols,
		),
		delete: fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, t.name),
		count:  fmt.Sprintf(`SELECT COUNT(*) FROM %s`, t.name),
		resetSerial: fmt.Sprintf(
			`SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE(MAX(id), 0) + 1, false) FROM %[1]s`,
			t.name,
		),
	}
}

type repository[T Item] struct {
	db    Store
	table string
	q     queries
}

func newRepository[T Item](db Store, t table) *repository[T] {
	return &repository[T]{db: db, table: t.name, q: buildQueries(t)}
}

func NewTempleRepository(db Store) Repository[Temple] {
	return newRepository[Temple](db, templesTable)
}

func NewWeaponRepository(db Store) Repository[Weapon] {
	return newRepository[Weapon](db, weaponsTable)
}

func NewFossilRepository(db Store) Repository[Fossil] {
	return newRepository[Fossil](db, fossilsTable)
}

func (r *repository[T]) List(ctx context.Context) ([]T, error) {
	items := []T{}
	if err := r.db.SelectContext(ctx, &items, r.q.list); err != nil {
		return nil, fmt.Errorf("list %s: %w", r.table, err)
	}
	return items, nil
}

func (r *repository[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	var item T
	err := r.db.GetContext(ctx, &item, r.q.get, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get %s: %w", r.table, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", r.table, err)
	}
	return &item, nil
}

// Create ignores item's id and fills it, and created_at, from the row.
func (r *repository[T]) Create(ctx context.Context, item *T) error {
	found, err := namedReturning(ctx, r.db, r.q.insert, item)
	if err != nil {
		return fmt.Errorf("create %s: %w", r.table, err)
	}
	if !found {
		return fmt.Errorf("create %s: no row returned", r.table)
	}
	return nil
}

// Update writes every column of item to the row with item's id.
func (r *repository[T]) Update(ctx context.Context, item *T) error {
	found, err := namedReturning(ctx, r.db, r.q.update, item)
	if err != nil {
		return fmt.Errorf("update %s: %w", r.table, err)
	}
	if !found {
		return fmt.Errorf("update %s: %w", r.table, core.ErrNotFound)
	}
	return nil
}

func namedReturning[T Item](
	ctx context.Context,
	e sqlx.ExtContext,
	query string,
	item *T,
) (bool, error) {
	rows, err := sqlx.NamedQueryContext(ctx, e, query, item)
	if err != nil {
		return false, err
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	if !rows.Next() {
		return false, rows.Err()
	}
	if err := rows.StructScan(item); err != nil {
		return false, err
	}
	return true, rows.Err()
}

func (r *repository[T]) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, r.q.delete, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.table, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s rows affected: %w", r.table, err)
	}
	if rows == 0 {
		return fmt.Errorf("delete %s: %w", r.table, core.ErrNotFound)
	}
	return nil
}

func (r *repository[T]) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, r.q.count); err != nil {
		return 0, fmt.Errorf("count %s: %w", r.table, err)
	}
	return n, nil
}

// InsertBatch inserts seed records in one transaction. Records that carry
// an id keep it; they go in first and the id sequence is moved past the
// largest one before records without an id draw from it.
func (r *repository[T]) InsertBatch(ctx context.Context, items []T) error {
	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var pending []int
		for i := range items {
			if items[i].Key() <= 0 {
				pending = append(pending, i)
				continue
			}
			if _, err := sqlx.NamedExecContext(ctx, tx, r.q.insertWithID, &items[i]); err != nil {
				return err
			}
		}

		if _, err := tx.ExecContext(ctx, r.q.resetSerial); err != nil {
			return err
		}

		for _, i := range pending {
			if _, err := namedReturning(ctx, tx, r.q.insert, &items[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("insert %s batch: %w", r.table, err)
	}
	return nil
}
