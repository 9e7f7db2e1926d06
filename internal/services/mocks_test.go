package services

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/onerilhan/go-point-api/internal/interfaces"
	"github.com/onerilhan/go-point-api/internal/models"
)

// MockBalanceRepository, BalanceRepositoryInterface için sahte (mock) bir yapıdır.
type MockBalanceRepository struct {
	mock.Mock
}

var _ interfaces.BalanceRepositoryInterface = (*MockBalanceRepository)(nil)

func (m *MockBalanceRepository) GetByUserID(userID int64) (*models.Balance, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Balance), args.Error(1)
}

func (m *MockBalanceRepository) Upsert(userID, point int64, updatedAt time.Time) (*models.Balance, error) {
	args := m.Called(userID, point, updatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Balance), args.Error(1)
}

// MockPointHistoryRepository, PointHistoryRepositoryInterface için sahte (mock) bir yapıdır.
type MockPointHistoryRepository struct {
	mock.Mock
}

var _ interfaces.PointHistoryRepositoryInterface = (*MockPointHistoryRepository)(nil)

func (m *MockPointHistoryRepository) Create(userID, amount int64, txType models.TransactionType, createdAt time.Time) (*models.PointHistory, error) {
	args := m.Called(userID, amount, txType, createdAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PointHistory), args.Error(1)
}

func (m *MockPointHistoryRepository) GetByUserID(userID int64) ([]*models.PointHistory, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PointHistory), args.Error(1)
}

// MockPointStore mock repository'leri PointStoreInterface olarak sunar.
// TxErr doluysa WithTransaction fn'i çağırmadan bu hatayı döner.
type MockPointStore struct {
	BalanceRepo *MockBalanceRepository
	HistoryRepo *MockPointHistoryRepository
	TxErr       error
}

var _ interfaces.PointStoreInterface = (*MockPointStore)(nil)

func newMockStore() *MockPointStore {
	return &MockPointStore{
		BalanceRepo: new(MockBalanceRepository),
		HistoryRepo: new(MockPointHistoryRepository),
	}
}

func (m *MockPointStore) Balances() interfaces.BalanceRepositoryInterface { return m.BalanceRepo }

func (m *MockPointStore) Histories() interfaces.PointHistoryRepositoryInterface {
	return m.HistoryRepo
}

func (m *MockPointStore) WithTransaction(fn interfaces.TxFunc) error {
	if m.TxErr != nil {
		return m.TxErr
	}
	return fn(m.BalanceRepo, m.HistoryRepo)
}
