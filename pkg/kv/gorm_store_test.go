package kv

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockGormStore(t *testing.T) (*GormStore, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)
	return NewGormStoreFromDB(db), mock
}

func TestGormStoreGetMissing(t *testing.T) {
	s, mock := newMockGormStore(t)
	mock.ExpectQuery(`SELECT \* FROM "kv_entries"`).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value", "updated_at"}))

	_, ok, err := s.Get(context.Background(), "bookingHistory")
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStoreGetExisting(t *testing.T) {
	s, mock := newMockGormStore(t)
	rows := sqlmock.NewRows([]string{"key", "value", "updated_at"}).
		AddRow("bookingHistory", []byte(`[{"id":"1"}]`), time.Now())
	mock.ExpectQuery(`SELECT \* FROM "kv_entries"`).WillReturnRows(rows)

	got, ok, err := s.Get(context.Background(), "bookingHistory")
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `[{"id":"1"}]`, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStoreRemove(t *testing.T) {
	s, mock := newMockGormStore(t)
	mock.ExpectExec(`DELETE FROM "kv_entries"`).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, s.Remove(context.Background(), "complaintHistory"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStoreClearAll(t *testing.T) {
	s, mock := newMockGormStore(t)
	mock.ExpectExec(`DELETE FROM "kv_entries"`).WillReturnResult(sqlmock.NewResult(0, 4))

	require.NoError(t, s.ClearAll(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewGormStoreRequiresDSN(t *testing.T) {
	_, err := NewGormStore("")
	require.Error(t, err)
}
