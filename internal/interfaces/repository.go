// internal/interfaces/repository.go
package interfaces

import (
	"time"

	"github.com/onerilhan/go-point-api/internal/models"
)

// BalanceRepositoryInterface bakiye kalıcılığı için interface
type BalanceRepositoryInterface interface {
	// GetByUserID kullanıcının bakiyesini getirir, kayıt yoksa sıfır bakiye döner
	GetByUserID(userID int64) (*models.Balance, error)

	// Upsert bakiyeyi koşulsuz yazar ve kaydedilen halini döner
	Upsert(userID, point int64, updatedAt time.Time) (*models.Balance, error)
}

// PointHistoryRepositoryInterface sadece eklenebilen puan geçmişi için interface
type PointHistoryRepositoryInterface interface {
	// Create yeni geçmiş kaydı ekler, ID'yi store atar
	Create(userID, amount int64, txType models.TransactionType, createdAt time.Time) (*models.PointHistory, error)

	// GetByUserID kullanıcının kayıtlarını ekleme sırasıyla getirir
	GetByUserID(userID int64) ([]*models.PointHistory, error)
}

// TxFunc tek bir store transaction'ı içinde çalışan fonksiyon
type TxFunc func(balances BalanceRepositoryInterface, histories PointHistoryRepositoryInterface) error

// PointStoreInterface bakiye ve geçmiş repository'lerini bir arada sunar
type PointStoreInterface interface {
	Balances() BalanceRepositoryInterface
	Histories() PointHistoryRepositoryInterface

	// WithTransaction fn içindeki yazmaların ya hepsini ya hiçbirini kalıcı yapar
	WithTransaction(fn TxFunc) error
}
