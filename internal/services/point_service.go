package services

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-point-api/internal/interfaces"
	"github.com/onerilhan/go-point-api/internal/metrics"
	"github.com/onerilhan/go-point-api/internal/models"
)

// PointService kullanıcı puan ledger'ı.
// Bakiye ve geçmiş yazmalarının tek yazma yoludur.
type PointService struct {
	store      interfaces.PointStoreInterface
	locks      *userLocks
	maxBalance int64
	now        func() time.Time
}

var _ interfaces.PointServiceInterface = (*PointService)(nil)

// Option PointService ayarı
type Option func(*PointService)

// WithMaxBalance maksimum bakiyeyi değiştirir
func WithMaxBalance(max int64) Option {
	return func(s *PointService) { s.maxBalance = max }
}

// WithClock zaman kaynağını değiştirir (testler için)
func WithClock(now func() time.Time) Option {
	return func(s *PointService) { s.now = now }
}

// NewPointService yeni service oluşturur
func NewPointService(store interfaces.PointStoreInterface, opts ...Option) *PointService {
	s := &PointService{
		store:      store,
		locks:      &userLocks{},
		maxBalance: models.DefaultMaxBalance,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetBalance kullanıcının güncel bakiyesini döner.
// Kilit almaz; tamamlanmış son yazmayı görür.
func (s *PointService) GetBalance(userID int64) (*models.Balance, error) {
	balance, err := s.store.Balances().GetByUserID(userID)
	if err != nil {
		return nil, asStorageError("balances.get", err)
	}
	return balance, nil
}

// GetHistory kullanıcının puan geçmişini commit sırasıyla döner
func (s *PointService) GetHistory(userID int64) ([]*models.PointHistory, error) {
	history, err := s.store.Histories().GetByUserID(userID)
	if err != nil {
		return nil, asStorageError("point_histories.list", err)
	}
	return history, nil
}

// Charge kullanıcının bakiyesine amount kadar puan ekler
func (s *PointService) Charge(userID, amount int64) (*models.Balance, error) {
	return s.mutate(userID, amount, models.TransactionCharge)
}

// Use kullanıcının bakiyesinden amount kadar puan düşer
func (s *PointService) Use(userID, amount int64) (*models.Balance, error) {
	return s.mutate(userID, amount, models.TransactionUse)
}

// mutate okuma, doğrulama, bakiye yazma ve geçmiş ekleme adımlarını
// kullanıcı kilidi altında tek birim olarak çalıştırır.
func (s *PointService) mutate(userID, amount int64, txType models.TransactionType) (*models.Balance, error) {
	start := time.Now()
	defer func() {
		metrics.PointOperationDuration.WithLabelValues(string(txType)).Observe(time.Since(start).Seconds())
	}()

	if amount < 1 {
		current := models.EmptyBalance(userID)
		_, err := current.Apply(txType, amount, s.maxBalance, start)
		s.record(userID, amount, txType, nil, err)
		return nil, err
	}

	unlock, waited := s.locks.lock(userID)
	defer unlock()

	if waited > time.Millisecond {
		log.Debug().
			Int64("user_id", userID).
			Dur("lock_wait", waited).
			Str("type", string(txType)).
			Msg("Kullanıcı kilidi beklendi")
	}

	var saved *models.Balance
	err := s.store.WithTransaction(func(balances interfaces.BalanceRepositoryInterface, histories interfaces.PointHistoryRepositoryInterface) error {
		current, err := balances.GetByUserID(userID)
		if err != nil {
			return asStorageError("balances.get", err)
		}

		next, err := current.Apply(txType, amount, s.maxBalance, s.timestamp(current.UpdatedAt))
		if err != nil {
			return err
		}

		saved, err = balances.Upsert(userID, next.Point, next.UpdatedAt)
		if err != nil {
			return asStorageError("balances.upsert", err)
		}

		if _, err := histories.Create(userID, saved.Point, txType, saved.UpdatedAt); err != nil {
			return asStorageError("point_histories.create", err)
		}
		return nil
	})
	if err != nil {
		err = asStorageError("transaction", err)
		s.record(userID, amount, txType, nil, err)
		return nil, err
	}

	s.record(userID, amount, txType, saved, nil)
	return saved, nil
}

// timestamp şimdiki zamanı döner; kullanıcının son güncellemesinden geriye gitmez
func (s *PointService) timestamp(last time.Time) time.Time {
	now := s.now()
	if now.Before(last) {
		return last
	}
	return now
}

// record işlemin sonucunu loglar ve metriklere yazar
func (s *PointService) record(userID, amount int64, txType models.TransactionType, saved *models.Balance, err error) {
	result := resultLabel(err)
	metrics.PointOperationsTotal.WithLabelValues(string(txType), result).Inc()

	switch {
	case err == nil:
		log.Info().
			Int64("user_id", userID).
			Str("type", string(txType)).
			Int64("amount", amount).
			Int64("point", saved.Point).
			Msg("Puan işlemi tamamlandı")
	case result == metrics.ResultStorageFailure:
		log.Error().
			Err(err).
			Int64("user_id", userID).
			Str("type", string(txType)).
			Int64("amount", amount).
			Msg("Puan işlemi depolama hatası ile başarısız")
	default:
		log.Warn().
			Err(err).
			Int64("user_id", userID).
			Str("type", string(txType)).
			Int64("amount", amount).
			Msg("Puan işlemi reddedildi")
	}
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, models.ErrInvalidAmount):
		return metrics.ResultInvalidAmount
	case errors.Is(err, models.ErrLimitExceeded):
		return metrics.ResultLimitExceeded
	case errors.Is(err, models.ErrInsufficientBalance):
		return metrics.ResultInsufficientBalance
	default:
		return metrics.ResultStorageFailure
	}
}

// asStorageError doğrulama hatalarını olduğu gibi bırakır,
// diğer her hatayı ErrStorageFailure türüne çevirir.
func asStorageError(op string, err error) error {
	var pe *models.PointError
	if errors.As(err, &pe) || errors.Is(err, models.ErrStorageFailure) {
		return err
	}
	return models.NewStorageError(op, err)
}
