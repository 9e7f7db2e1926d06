// Package memory puan store'unun süreç içi implementasyonu.
// Varsayılan sürücüdür ve servis testlerinde sahte store olarak kullanılır.
package memory

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/onerilhan/go-point-api/internal/interfaces"
	"github.com/onerilhan/go-point-api/internal/models"
)

// latency her store çağrısına rastgele gecikme ekler (0 ise kapalı)
type latency time.Duration

func (l latency) sleep() {
	if l <= 0 {
		return
	}
	time.Sleep(time.Duration(rand.Int63n(int64(l))))
}

// BalanceRepository kullanıcı başına bakiyeyi sync.Map'te tutar
type BalanceRepository struct {
	balances sync.Map // int64 -> models.Balance
	latency  latency
}

// GetByUserID kullanıcının bakiyesini döner, yoksa sıfır bakiye
func (r *BalanceRepository) GetByUserID(userID int64) (*models.Balance, error) {
	r.latency.sleep()
	if v, ok := r.balances.Load(userID); ok {
		b := v.(models.Balance)
		return &b, nil
	}
	empty := models.EmptyBalance(userID)
	return &empty, nil
}

// Upsert bakiyeyi koşulsuz yazar
func (r *BalanceRepository) Upsert(userID, point int64, updatedAt time.Time) (*models.Balance, error) {
	r.latency.sleep()
	b := models.Balance{UserID: userID, Point: point, UpdatedAt: updatedAt}
	r.balances.Store(userID, b)
	return &b, nil
}

// userHistory tek kullanıcının kayıtları; kilit sadece o kullanıcıyı kapsar
type userHistory struct {
	mu      sync.RWMutex
	records []models.PointHistory
}

// PointHistoryRepository kullanıcı başına sadece eklenebilen geçmiş
type PointHistoryRepository struct {
	users   sync.Map // int64 -> *userHistory
	nextID  atomic.Int64
	latency latency
}

func (r *PointHistoryRepository) userHistory(userID int64) *userHistory {
	if v, ok := r.users.Load(userID); ok {
		return v.(*userHistory)
	}
	v, _ := r.users.LoadOrStore(userID, &userHistory{})
	return v.(*userHistory)
}

// Create yeni kayıt ekler ve artan bir ID atar
func (r *PointHistoryRepository) Create(userID, amount int64, txType models.TransactionType, createdAt time.Time) (*models.PointHistory, error) {
	r.latency.sleep()
	uh := r.userHistory(userID)

	uh.mu.Lock()
	h := models.PointHistory{
		ID:        r.nextID.Add(1),
		UserID:    userID,
		Amount:    amount,
		Type:      txType,
		CreatedAt: createdAt,
	}
	uh.records = append(uh.records, h)
	uh.mu.Unlock()

	return &h, nil
}

// GetByUserID kayıtların kopyasını ekleme sırasıyla döner
func (r *PointHistoryRepository) GetByUserID(userID int64) ([]*models.PointHistory, error) {
	r.latency.sleep()
	out := make([]*models.PointHistory, 0)

	v, ok := r.users.Load(userID)
	if !ok {
		return out, nil
	}
	uh := v.(*userHistory)

	uh.mu.RLock()
	defer uh.mu.RUnlock()
	for i := range uh.records {
		h := uh.records[i]
		out = append(out, &h)
	}
	return out, nil
}

// Store memory repository'lerini PointStoreInterface olarak sunar
type Store struct {
	balances  *BalanceRepository
	histories *PointHistoryRepository
}

var _ interfaces.PointStoreInterface = (*Store)(nil)

// Option store ayarı
type Option func(*Store)

// WithLatency her çağrıya 0..d arası rastgele gecikme ekler
func WithLatency(d time.Duration) Option {
	return func(s *Store) {
		s.balances.latency = latency(d)
		s.histories.latency = latency(d)
	}
}

// NewStore boş bir memory store oluşturur
func NewStore(opts ...Option) *Store {
	s := &Store{
		balances:  &BalanceRepository{},
		histories: &PointHistoryRepository{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Balances() interfaces.BalanceRepositoryInterface { return s.balances }

func (s *Store) Histories() interfaces.PointHistoryRepositoryInterface { return s.histories }

// WithTransaction fn'i doğrudan çalıştırır; memory yazmaları hata vermez
func (s *Store) WithTransaction(fn interfaces.TxFunc) error {
	return fn(s.balances, s.histories)
}
