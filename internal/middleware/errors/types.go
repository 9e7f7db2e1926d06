package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/onerilhan/go-point-api/internal/models"
)

// APIError interface for custom error types
type APIError interface {
	error
	Status() int
}

// PointAPIError ledger hatasının HTTP karşılığı
type PointAPIError struct {
	Message    string
	StatusCode int
	Kind       string
	UserID     int64
	Amount     int64
	// ResultAmount sadece limit/bakiye reddinde doludur (işlem sonrası olacak bakiye)
	ResultAmount *int64
}

// Error PointAPIError'un error interface implementation'ı
func (e *PointAPIError) Error() string {
	return e.Message
}

// Status PointAPIError'un APIError interface implementation'ı
func (e *PointAPIError) Status() int {
	return e.StatusCode
}

// ValidationError validation hatası için custom error type
type ValidationError struct {
	Message    string
	StatusCode int
	Field      string
	Value      interface{}
}

// Error ValidationError'un error interface implementation'ı
func (e *ValidationError) Error() string {
	return e.Message
}

// Status ValidationError'un APIError interface implementation'ı
func (e *ValidationError) Status() int {
	return e.StatusCode
}

// FromError service hatasını APIError'a çevirir.
// Zaten APIError olan hatalar olduğu gibi döner.
func FromError(err error) APIError {
	var apiErr APIError
	if stderrors.As(err, &apiErr) {
		return apiErr
	}

	var pe *models.PointError
	if stderrors.As(err, &pe) {
		out := &PointAPIError{
			Message: pe.Error(),
			Kind:    kindName(pe.Kind),
			UserID:  pe.UserID,
			Amount:  pe.Amount,
		}
		switch pe.Kind {
		case models.ErrInvalidAmount:
			out.StatusCode = http.StatusBadRequest
		default:
			out.StatusCode = http.StatusUnprocessableEntity
			result := pe.Result
			out.ResultAmount = &result
		}
		return out
	}

	if stderrors.Is(err, models.ErrStorageFailure) {
		return &PointAPIError{
			Message:    "Puan deposuna şu anda erişilemiyor. Lütfen daha sonra tekrar deneyin.",
			StatusCode: http.StatusServiceUnavailable,
			Kind:       "storage_failure",
		}
	}

	return &PointAPIError{
		Message:    "Sunucu hatası",
		StatusCode: http.StatusInternalServerError,
		Kind:       "internal",
	}
}

func kindName(kind error) string {
	switch kind {
	case models.ErrInvalidAmount:
		return "invalid_amount"
	case models.ErrLimitExceeded:
		return "limit_exceeded"
	case models.ErrInsufficientBalance:
		return "insufficient_balance"
	default:
		return "point_error"
	}
}
