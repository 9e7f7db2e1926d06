package repository

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onerilhan/go-point-api/internal/models"
)

var fixedTime = time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	database, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, mock
}

func TestBalanceRepository_GetByUserID_Found(t *testing.T) {
	// Arrange
	database, mock := newMock(t)
	repo := NewBalanceRepository(database)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, point, updated_at")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "point", "updated_at"}).AddRow(1, 300, fixedTime))

	// Act
	balance, err := repo.GetByUserID(1)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, &models.Balance{UserID: 1, Point: 300, UpdatedAt: fixedTime}, balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBalanceRepository_GetByUserID_NotFoundReturnsZero(t *testing.T) {
	database, mock := newMock(t)
	repo := NewBalanceRepository(database)

	mock.ExpectQuery("SELECT user_id, point, updated_at").
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	balance, err := repo.GetByUserID(42)

	require.NoError(t, err)
	assert.Equal(t, int64(42), balance.UserID)
	assert.Zero(t, balance.Point)
}

func TestBalanceRepository_GetByUserID_DriverError(t *testing.T) {
	database, mock := newMock(t)
	repo := NewBalanceRepository(database)

	mock.ExpectQuery("SELECT user_id, point, updated_at").
		WillReturnError(errors.New("connection reset"))

	balance, err := repo.GetByUserID(1)

	assert.Nil(t, balance)
	assert.ErrorIs(t, err, models.ErrStorageFailure)
}

func TestBalanceRepository_Upsert(t *testing.T) {
	database, mock := newMock(t)
	repo := NewBalanceRepository(database)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO balances (user_id, point, updated_at)")).
		WithArgs(int64(3), int64(150), fixedTime).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "point", "updated_at"}).AddRow(3, 150, fixedTime))

	balance, err := repo.Upsert(3, 150, fixedTime)

	require.NoError(t, err)
	assert.Equal(t, int64(150), balance.Point)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBalanceRepository_Upsert_Error(t *testing.T) {
	database, mock := newMock(t)
	repo := NewBalanceRepository(database)

	mock.ExpectQuery("INSERT INTO balances").WillReturnError(errors.New("check constraint"))

	_, err := repo.Upsert(3, 150, fixedTime)

	assert.ErrorIs(t, err, models.ErrStorageFailure)
}
