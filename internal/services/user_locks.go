package services

import (
	"sync"
	"time"

	"github.com/onerilhan/go-point-api/internal/metrics"
)

// userLocks kullanıcı ID'sine göre ayrı mutex tutar.
// Aynı kullanıcının yazma işlemleri sıralanır, farklı kullanıcılar birbirini beklemez.
// Kilitler ilk erişimde oluşturulur ve süreç boyunca saklanır.
type userLocks struct {
	locks sync.Map // int64 -> *sync.Mutex
}

func (l *userLocks) get(userID int64) *sync.Mutex {
	if v, ok := l.locks.Load(userID); ok {
		return v.(*sync.Mutex)
	}
	v, loaded := l.locks.LoadOrStore(userID, &sync.Mutex{})
	if !loaded {
		metrics.UserLocks.Inc()
	}
	return v.(*sync.Mutex)
}

// lock kullanıcının kilidini alır ve bırakma fonksiyonunu döner.
// Çağıran her çıkış yolunda unlock'u defer ile çağırmalıdır.
func (l *userLocks) lock(userID int64) (unlock func(), waited time.Duration) {
	mu := l.get(userID)
	start := time.Now()
	mu.Lock()
	waited = time.Since(start)
	metrics.LockWaitSeconds.Observe(waited.Seconds())
	return mu.Unlock, waited
}
