// internal/interfaces/service.go
package interfaces

import "github.com/onerilhan/go-point-api/internal/models"

// PointServiceInterface puan ledger'ı business logic için interface
type PointServiceInterface interface {
	// GetBalance kullanıcının güncel bakiyesini döner (kilitsiz okuma)
	GetBalance(userID int64) (*models.Balance, error)

	// Charge kullanıcının bakiyesine puan ekler
	Charge(userID, amount int64) (*models.Balance, error)

	// Use kullanıcının bakiyesinden puan düşer
	Use(userID, amount int64) (*models.Balance, error)

	// GetHistory kullanıcının puan geçmişini commit sırasıyla döner
	GetHistory(userID int64) ([]*models.PointHistory, error)
}
