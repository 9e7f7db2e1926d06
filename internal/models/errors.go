package models

import (
	"errors"
	"fmt"
)

// Puan işlemlerinin hata türleri
var (
	ErrInvalidAmount       = errors.New("geçersiz puan miktarı")
	ErrLimitExceeded       = errors.New("maksimum bakiye limiti aşıldı")
	ErrInsufficientBalance = errors.New("puan bakiyesi yetersiz")
	ErrStorageFailure      = errors.New("depolama hatası")
)

// PointError reddedilen bir puan işlemini anlatır.
// Result, işlem uygulansaydı oluşacak (geçersiz) bakiyedir.
type PointError struct {
	Kind   error
	UserID int64
	Amount int64
	Result int64
}

func newPointError(kind error, userID, amount, result int64) *PointError {
	return &PointError{Kind: kind, UserID: userID, Amount: amount, Result: result}
}

func (e *PointError) Error() string {
	switch e.Kind {
	case ErrInvalidAmount:
		return fmt.Sprintf("%s: minimum 1 puan olmalı, istenen: %d", e.Kind, e.Amount)
	case ErrLimitExceeded, ErrInsufficientBalance:
		return fmt.Sprintf("%s. Mevcut puan: %d", e.Kind, e.Result)
	default:
		return e.Kind.Error()
	}
}

func (e *PointError) Unwrap() error { return e.Kind }

// StorageError alttaki store'dan gelen hatayı sarar.
// errors.Is ile hem ErrStorageFailure hem de orijinal hata yakalanabilir.
type StorageError struct {
	Op  string
	Err error
}

// NewStorageError store işlem hatasını StorageError'a çevirir
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s (%s): %v", ErrStorageFailure, e.Op, e.Err)
}

func (e *StorageError) Unwrap() []error { return []error{ErrStorageFailure, e.Err} }
