package repository

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onerilhan/go-point-api/internal/interfaces"
	"github.com/onerilhan/go-point-api/internal/models"
)

func TestPostgresStore_WithTransaction_CommitsBothWrites(t *testing.T) {
	// Arrange
	database, mock := newMock(t)
	store := NewPostgresStore(database)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "point", "updated_at"}).AddRow(1, 100, fixedTime))
	mock.ExpectQuery("INSERT INTO balances").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "point", "updated_at"}).AddRow(1, 150, fixedTime))
	mock.ExpectQuery("INSERT INTO point_histories").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "amount", "type", "created_at"}).
			AddRow(1, 1, 150, "CHARGE", fixedTime))
	mock.ExpectCommit()

	// Act
	err := store.WithTransaction(func(b interfaces.BalanceRepositoryInterface, h interfaces.PointHistoryRepositoryInterface) error {
		cur, err := b.GetByUserID(1)
		if err != nil {
			return err
		}
		if _, err := b.Upsert(1, cur.Point+50, time.Now()); err != nil {
			return err
		}
		_, err = h.Create(1, cur.Point+50, models.TransactionCharge, time.Now())
		return err
	})

	// Assert
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_WithTransaction_HistoryFailureRollsBackBalance(t *testing.T) {
	database, mock := newMock(t)
	store := NewPostgresStore(database)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO balances").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "point", "updated_at"}).AddRow(1, 150, fixedTime))
	mock.ExpectQuery("INSERT INTO point_histories").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := store.WithTransaction(func(b interfaces.BalanceRepositoryInterface, h interfaces.PointHistoryRepositoryInterface) error {
		if _, err := b.Upsert(1, 150, fixedTime); err != nil {
			return err
		}
		_, err := h.Create(1, 150, models.TransactionCharge, fixedTime)
		return err
	})

	assert.ErrorIs(t, err, models.ErrStorageFailure)
	assert.NoError(t, mock.ExpectationsWereMet())
}
