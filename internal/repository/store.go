package repository

import (
	"database/sql"

	"github.com/onerilhan/go-point-api/internal/db"
	"github.com/onerilhan/go-point-api/internal/interfaces"
)

// PostgresStore bakiye ve geçmiş tablolarını tek bağlantı havuzu üzerinden sunar
type PostgresStore struct {
	database  *sql.DB
	balances  *BalanceRepository
	histories *PointHistoryRepository
}

var _ interfaces.PointStoreInterface = (*PostgresStore)(nil)

// NewPostgresStore yeni store oluşturur
func NewPostgresStore(database *sql.DB) *PostgresStore {
	return &PostgresStore{
		database:  database,
		balances:  NewBalanceRepository(database),
		histories: NewPointHistoryRepository(database),
	}
}

func (s *PostgresStore) Balances() interfaces.BalanceRepositoryInterface { return s.balances }

func (s *PostgresStore) Histories() interfaces.PointHistoryRepositoryInterface { return s.histories }

// WithTransaction fn'i tek bir database transaction'ı içinde çalıştırır.
// Bakiye okuması satırı kilitler; başka bir process aynı kullanıcıyı bekler.
func (s *PostgresStore) WithTransaction(fn interfaces.TxFunc) error {
	return db.WithTransaction(s.database, func(tx *sql.Tx) error {
		return fn(newLockingBalanceRepository(tx), NewPointHistoryRepository(tx))
	})
}
