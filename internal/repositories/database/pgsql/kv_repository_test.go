package pgsql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/SscSPs/orbit_finance/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*PgxKVRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return newPgxKVRepository(db), mock
}

func TestPgxKVRepository_Get(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"key", "value", "updated_at"}).
		AddRow("orbit_theme", []byte("dark"), time.Now())
	mock.ExpectQuery("SELECT key, value, updated_at FROM kv_entries").
		WithArgs("orbit_theme").
		WillReturnRows(rows)

	got, err := repo.Get(context.Background(), "orbit_theme")
	require.NoError(t, err)
	assert.Equal(t, []byte("dark"), got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxKVRepository_GetMissing(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT key, value, updated_at FROM kv_entries").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"key", "value", "updated_at"}))

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxKVRepository_PutUpserts(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO kv_entries").
		WithArgs("orbit_finance_v5_data", []byte(`{}`), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Put(context.Background(), "orbit_finance_v5_data", []byte(`{}`)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxKVRepository_PutRollsBackOnError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO kv_entries").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repo.Put(context.Background(), "k", []byte("v"))
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 500, appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxKVRepository_Delete(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM kv_entries").
		WithArgs("orbit_session_email").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "orbit_session_email"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
