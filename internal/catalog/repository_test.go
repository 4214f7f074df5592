// AngelaMos | 2026
// repository_test.go

package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/heritage-museum/internal/core"
)

var templeCols = []string{
	"id", "name", "dynasty", "builder", "time_period",
	"historical_significance", "weapon_used", "static_image_url",
	"model_3d_embed", "audio_story_url", "created_at",
}

func newMockStore(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return sqlx.NewDb(db, "pgx"), mock
}

func TestRepository_ListOrdersByKindKey(t *testing.T) {
	tests := []struct {
		name  string
		query string
		list  func(*sqlx.DB) error
	}{
		{"temples", `FROM temples ORDER BY dynasty, id`, func(db *sqlx.DB) error {
			_, err := NewTempleRepository(db).List(context.Background())
			return err
		}},
		{"weapons", `FROM weapons ORDER BY name, id`, func(db *sqlx.DB) error {
			_, err := NewWeaponRepository(db).List(context.Background())
			return err
		}},
		{"fossils", `FROM fossils ORDER BY era, id`, func(db *sqlx.DB) error {
			_, err := NewFossilRepository(db).List(context.Background())
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockStore(t)
			mock.ExpectQuery(tt.query).WillReturnRows(sqlmock.NewRows([]string{"id"}))

			require.NoError(t, tt.list(db))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_CreateScansReturnedRow(t *testing.T) {
	db, mock := newMockStore(t)
	repo := NewTempleRepository(db)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO temples \(name, dynasty.+RETURNING id`).
		WillReturnRows(sqlmock.NewRows(templeCols).AddRow(
			11, "Konark", "Eastern Ganga", "Narasimhadeva I", "1250 CE",
			"Sun temple", "Khanda", "images/konark.jpg", nil, "audio/konark.mp3", now,
		))

	item := Temple{Name: "Konark"}
	require.NoError(t, repo.Create(context.Background(), &item))

	assert.Equal(t, int64(11), item.ID)
	assert.Equal(t, "Eastern Ganga", item.Dynasty)
	assert.Nil(t, item.Model3DEmbed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateMissing(t *testing.T) {
	db, mock := newMockStore(t)
	repo := NewTempleRepository(db)

	mock.ExpectQuery(`UPDATE temples SET name = \$1`).
		WillReturnRows(sqlmock.NewRows(templeCols))

	err := repo.Update(context.Background(), &Temple{ID: 4, Name: "x"})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRepository_DeleteMissing(t *testing.T) {
	db, mock := newMockStore(t)
	repo := NewWeaponRepository(db)

	mock.ExpectExec(`DELETE FROM weapons WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 3)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRepository_GetByIDMissing(t *testing.T) {
	db, mock := newMockStore(t)
	repo := NewFossilRepository(db)

	mock.ExpectQuery(`FROM fossils WHERE id = \$1`).
		WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), 8)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRepository_InsertBatchKeepsIDsAndResetsSequence(t *testing.T) {
	db, mock := newMockStore(t)
	repo := NewWeaponRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO weapons \(id, name`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO weapons \(id, name`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`SELECT setval\(pg_get_serial_sequence\('weapons', 'id'\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.InsertBatch(context.Background(), []Weapon{
		{ID: 1, Name: "Khanda", DynastyContext: StringList{"Rajput"}},
		{ID: 2, Name: "Talwar"},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_InsertBatchExplicitIDsBeforeSequence(t *testing.T) {
	db, mock := newMockStore(t)
	repo := NewWeaponRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO weapons \(id, name`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`SELECT setval\(pg_get_serial_sequence\('weapons', 'id'\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO weapons \(name.+RETURNING id`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(6))
	mock.ExpectCommit()

	items := []Weapon{
		{Name: "Bagh nakh"},
		{ID: 5, Name: "Khanda"},
	}
	require.NoError(t, repo.InsertBatch(context.Background(), items))

	assert.Equal(t, int64(6), items[0].ID)
	assert.Equal(t, int64(5), items[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_InsertBatchRollsBack(t *testing.T) {
	db, mock := newMockStore(t)
	repo := NewWeaponRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO weapons`).WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.InsertBatch(context.Background(), []Weapon{{ID: 1, Name: "Khanda"}})
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}
