package repository

import (
	"time"

	"github.com/onerilhan/go-point-api/internal/db"
	"github.com/onerilhan/go-point-api/internal/models"
)

// PointHistoryRepository point_histories tablosu işlemleri
type PointHistoryRepository struct {
	db db.Querier
}

// NewPointHistoryRepository yeni repository oluşturur
func NewPointHistoryRepository(q db.Querier) *PointHistoryRepository {
	return &PointHistoryRepository{db: q}
}

// Create yeni geçmiş kaydı ekler
func (r *PointHistoryRepository) Create(userID, amount int64, txType models.TransactionType, createdAt time.Time) (*models.PointHistory, error) {
	query := `
		INSERT INTO point_histories (user_id, amount, type, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, amount, type, created_at
	`

	var h models.PointHistory
	err := r.db.QueryRow(query, userID, amount, string(txType), createdAt).Scan(
		&h.ID,
		&h.UserID,
		&h.Amount,
		&h.Type,
		&h.CreatedAt,
	)
	if err != nil {
		return nil, models.NewStorageError("point_histories.create", err)
	}

	return &h, nil
}

// GetByUserID kullanıcının geçmişini ekleme sırasıyla getirir
func (r *PointHistoryRepository) GetByUserID(userID int64) ([]*models.PointHistory, error) {
	query := `
		SELECT id, user_id, amount, type, created_at
		FROM point_histories
		WHERE user_id = $1
		ORDER BY id ASC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, models.NewStorageError("point_histories.list", err)
	}
	defer rows.Close()

	history := make([]*models.PointHistory, 0)
	for rows.Next() {
		var h models.PointHistory
		if err := rows.Scan(&h.ID, &h.UserID, &h.Amount, &h.Type, &h.CreatedAt); err != nil {
			return nil, models.NewStorageError("point_histories.scan", err)
		}
		history = append(history, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, models.NewStorageError("point_histories.rows", err)
	}

	return history, nil
}
