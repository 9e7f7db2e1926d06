package services

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onerilhan/go-point-api/internal/models"
	"github.com/onerilhan/go-point-api/internal/repository/memory"
)

// TestPointService_ConcurrentCharges, aynı kullanıcıya eşzamanlı şarjların kaybolmadığını test eder.
func TestPointService_ConcurrentCharges(t *testing.T) {
	// Arrange
	service := NewPointService(memory.NewStore(memory.WithLatency(time.Millisecond)))
	const workers = 100

	// Act
	var wg sync.WaitGroup
	var failed atomic.Int64
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := service.Charge(1, 10); err != nil {
				failed.Add(1)
			}
		}()
	}
	wg.Wait()

	// Assert
	assert.Zero(t, failed.Load())
	assertPoint(t, service, 1, 1000)
	assertHistoryLen(t, service, 1, workers)
}

// TestPointService_ConcurrentChargesOverLimit, limiti aşan eşzamanlı şarjlardan
// sadece sığanların başarılı olduğunu test eder.
func TestPointService_ConcurrentChargesOverLimit(t *testing.T) {
	service := NewPointService(memory.NewStore())
	const workers = 150

	var wg sync.WaitGroup
	var ok, limited atomic.Int64
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.Charge(1, 10)
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, models.ErrLimitExceeded):
				limited.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(100), ok.Load())
	assert.Equal(t, int64(50), limited.Load())
	assertPoint(t, service, 1, 1000)
	assertHistoryLen(t, service, 1, 100)
}

// TestPointService_ConcurrentMixed, karışık şarj/kullanım sonrası geçmişin
// tekrar oynatılmasıyla bakiyenin elde edildiğini test eder.
func TestPointService_ConcurrentMixed(t *testing.T) {
	service := NewPointService(memory.NewStore())
	_, err := service.Charge(1, 500)
	require.NoError(t, err)

	var wg sync.WaitGroup
	var succeeded atomic.Int64
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var err error
			if i%2 == 0 {
				_, err = service.Charge(1, int64(i%7+1))
			} else {
				_, err = service.Use(1, int64(i%5+1))
			}
			if err == nil {
				succeeded.Add(1)
			}
		}(i)
	}
	wg.Wait()

	history, err := service.GetHistory(1)
	require.NoError(t, err)
	assert.Len(t, history, 1+int(succeeded.Load()), "her başarılı işlem tam bir kayıt eklemeli")
	point, consistent := models.Replay(history)
	assert.True(t, consistent)

	balance, err := service.GetBalance(1)
	require.NoError(t, err)
	assert.Equal(t, balance.Point, point)
	assert.GreaterOrEqual(t, balance.Point, int64(0))
	assert.LessOrEqual(t, balance.Point, models.DefaultMaxBalance)

	for i := 1; i < len(history); i++ {
		assert.Less(t, history[i-1].ID, history[i].ID)
		assert.False(t, history[i].CreatedAt.Before(history[i-1].CreatedAt))
	}
}

// TestPointService_UsersAreIndependent, bir kullanıcının kilidi tutulurken
// diğer kullanıcının işleminin tamamlandığını test eder.
func TestPointService_UsersAreIndependent(t *testing.T) {
	service := NewPointService(memory.NewStore())
	unlock, _ := service.locks.lock(1)

	blocked := make(chan struct{})
	go func() {
		_, _ = service.Charge(1, 10)
		close(blocked)
	}()

	_, err := service.Charge(2, 10)
	require.NoError(t, err)
	assertPoint(t, service, 2, 10)

	select {
	case <-blocked:
		t.Fatal("kilitli kullanıcının işlemi beklemeliydi")
	default:
	}

	unlock()
	select {
	case <-blocked:
	case <-time.After(2 * time.Second):
		t.Fatal("kilit bırakıldıktan sonra işlem tamamlanmalıydı")
	}
	assertPoint(t, service, 1, 10)
}

// TestPointService_ReadsDoNotWaitForLock, okumaların kullanıcı kilidini beklemediğini test eder.
func TestPointService_ReadsDoNotWaitForLock(t *testing.T) {
	service := NewPointService(memory.NewStore())
	_, err := service.Charge(1, 10)
	require.NoError(t, err)

	unlock, _ := service.locks.lock(1)
	defer unlock()

	done := make(chan struct{})
	go func() {
		_, _ = service.GetBalance(1)
		_, _ = service.GetHistory(1)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("okuma kilidi beklememeli")
	}
}
