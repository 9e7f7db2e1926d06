package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/onerilhan/go-point-api/internal/db"
	"github.com/onerilhan/go-point-api/internal/models"
)

// BalanceRepository balance database işlemleri
type BalanceRepository struct {
	db db.Querier
	// forUpdate transaction içinde okunan satırı kilitler
	forUpdate bool
}

// NewBalanceRepository yeni repository oluşturur
func NewBalanceRepository(q db.Querier) *BalanceRepository {
	return &BalanceRepository{db: q}
}

// newLockingBalanceRepository transaction'a bağlı, SELECT ... FOR UPDATE kullanan repository
func newLockingBalanceRepository(tx *sql.Tx) *BalanceRepository {
	return &BalanceRepository{db: tx, forUpdate: true}
}

// GetByUserID kullanıcının bakiyesini getirir, kayıt yoksa sıfır bakiye döner
func (r *BalanceRepository) GetByUserID(userID int64) (*models.Balance, error) {
	query := `
		SELECT user_id, point, updated_at
		FROM balances
		WHERE user_id = $1
	`
	if r.forUpdate {
		query += " FOR UPDATE"
	}

	var balance models.Balance
	err := r.db.QueryRow(query, userID).Scan(
		&balance.UserID,
		&balance.Point,
		&balance.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			empty := models.EmptyBalance(userID)
			return &empty, nil
		}
		return nil, models.NewStorageError("balances.get", err)
	}

	return &balance, nil
}

// Upsert kullanıcının bakiyesini koşulsuz yazar
func (r *BalanceRepository) Upsert(userID, point int64, updatedAt time.Time) (*models.Balance, error) {
	query := `
		INSERT INTO balances (user_id, point, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET point = EXCLUDED.point, updated_at = EXCLUDED.updated_at
		RETURNING user_id, point, updated_at
	`

	var balance models.Balance
	err := r.db.QueryRow(query, userID, point, updatedAt).Scan(
		&balance.UserID,
		&balance.Point,
		&balance.UpdatedAt,
	)
	if err != nil {
		return nil, models.NewStorageError("balances.upsert", err)
	}

	return &balance, nil
}
