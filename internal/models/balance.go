package models

import (
	"math"
	"time"
)

// DefaultMaxBalance bir kullanıcının tutabileceği varsayılan maksimum puan
const DefaultMaxBalance int64 = 1000

// TransactionType puan hareketinin türü
type TransactionType string

const (
	TransactionCharge TransactionType = "CHARGE"
	TransactionUse    TransactionType = "USE"
)

// Valid geçerli bir hareket türü mü kontrol eder
func (t TransactionType) Valid() bool {
	return t == TransactionCharge || t == TransactionUse
}

// Balance kullanıcının güncel puan bakiyesini temsil eder.
// Değer tipi olarak kullanılır; Charge ve Use yeni bir Balance döner.
type Balance struct {
	UserID    int64     `json:"id" db:"user_id"`
	Point     int64     `json:"point" db:"point"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// EmptyBalance hiç işlem görmemiş kullanıcı için sıfır bakiye döner
func EmptyBalance(userID int64) Balance {
	return Balance{UserID: userID}
}

// Charge bakiyeye amount kadar puan ekler.
// amount < 1 ise ErrInvalidAmount, sonuç max'ı aşarsa ErrLimitExceeded döner.
// Toplama yapılmadan önce kontrol edilir; int64 taşması bakiyeye ulaşmaz.
func (b Balance) Charge(amount, max int64, at time.Time) (Balance, error) {
	if amount < 1 {
		return b, newPointError(ErrInvalidAmount, b.UserID, amount, b.Point)
	}
	if amount > max-b.Point {
		return b, newPointError(ErrLimitExceeded, b.UserID, amount, saturatingAdd(b.Point, amount))
	}
	return Balance{UserID: b.UserID, Point: b.Point + amount, UpdatedAt: at}, nil
}

// saturatingAdd a+b'yi döner; int64'e sığmazsa math.MaxInt64 (a, b >= 0)
func saturatingAdd(a, b int64) int64 {
	if b > math.MaxInt64-a {
		return math.MaxInt64
	}
	return a + b
}

// Use bakiyeden amount kadar puan düşer.
// amount < 1 ise ErrInvalidAmount, sonuç negatifse ErrInsufficientBalance döner.
func (b Balance) Use(amount int64, at time.Time) (Balance, error) {
	if amount < 1 {
		return b, newPointError(ErrInvalidAmount, b.UserID, amount, b.Point)
	}
	next := b.Point - amount
	if next < 0 {
		return b, newPointError(ErrInsufficientBalance, b.UserID, amount, next)
	}
	return Balance{UserID: b.UserID, Point: next, UpdatedAt: at}, nil
}

// Apply hareket türüne göre Charge veya Use çağırır
func (b Balance) Apply(txType TransactionType, amount, max int64, at time.Time) (Balance, error) {
	switch txType {
	case TransactionCharge:
		return b.Charge(amount, max, at)
	case TransactionUse:
		return b.Use(amount, at)
	default:
		return b, newPointError(ErrInvalidAmount, b.UserID, amount, b.Point)
	}
}

// PointHistory başarılı her puan hareketinin değişmez kaydıdır.
// Amount hareket SONRASI bakiyedir.
type PointHistory struct {
	ID        int64           `json:"id" db:"id"`
	UserID    int64           `json:"user_id" db:"user_id"`
	Amount    int64           `json:"amount" db:"amount"`
	Type      TransactionType `json:"type" db:"type"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// Replay geçmiş kayıtlarını sırayla uygulayarak son bakiyeyi hesaplar.
// Her kayıt hareket sonrası bakiyeyi taşıdığı için delta, ardışık kayıtların farkıdır.
// Sıralama veya tür tutarsızlığında ok=false döner.
func Replay(histories []*PointHistory) (point int64, ok bool) {
	for _, h := range histories {
		delta := h.Amount - point
		switch h.Type {
		case TransactionCharge:
			if delta < 1 {
				return point, false
			}
		case TransactionUse:
			if delta > -1 {
				return point, false
			}
		default:
			return point, false
		}
		point += delta
	}
	return point, true
}
