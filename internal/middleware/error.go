package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-point-api/internal/middleware/errors"
	"github.com/onerilhan/go-point-api/internal/utils"
)

// ErrorHandlingMiddleware centralized error handling ve panic recovery.
// Handler body yazmadan 4xx/5xx dönerse standart error body'si eklenir.
func ErrorHandlingMiddleware(config *errors.ErrorConfig) func(http.Handler) http.Handler {
	if config == nil {
		config = errors.DefaultErrorConfig()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped := &errorResponseWriter{ResponseWriter: w}

			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				if wrapped.headerWritten {
					// Response yarım kaldı; sadece logla
					log.Error().Interface("panic", recovered).Str("path", r.URL.Path).
						Msg("Panic after response started")
					return
				}

				var apiErr errors.APIError
				switch err := recovered.(type) {
				case errors.APIError:
					apiErr = err
					logAPIError(err, r, fmt.Sprintf("%T", err))
				default:
					panicInfo := &errors.PanicInfo{
						Value:     recovered,
						Stack:     string(debug.Stack()),
						RequestID: w.Header().Get("X-Request-ID"),
						Method:    r.Method,
						Path:      r.URL.Path,
						UserAgent: r.Header.Get("User-Agent"),
						ClientIP:  utils.GetClientIP(r),
						Timestamp: time.Now(),
					}
					logPanic(panicInfo, config)

					// Response header'ları temizle (panic sonrası)
					for key := range w.Header() {
						if !contains(config.IncludeHeaders, key) {
							w.Header().Del(key)
						}
					}

					resp := newErrorResponse(w, r, http.StatusInternalServerError, getErrorMessage(http.StatusInternalServerError, config), config)
					if config.ShowStackTrace {
						resp.Stack = panicInfo.Stack
					}
					sendErrorResponse(w, r, resp)
					return
				}

				WriteErrorWithConfig(w, r, apiErr, config)
			}()

			next.ServeHTTP(wrapped, r)

			if wrapped.pendingStatus != 0 {
				resp := newErrorResponse(w, r, wrapped.pendingStatus, getErrorMessage(wrapped.pendingStatus, config), config)
				sendErrorResponse(w, r, resp)
			}
		})
	}
}

// errorResponseWriter body'siz error status'lerini yakalar
type errorResponseWriter struct {
	http.ResponseWriter
	pendingStatus int
	headerWritten bool
}

// WriteHeader error status'ünü body gelene kadar bekletir
func (erw *errorResponseWriter) WriteHeader(code int) {
	if erw.headerWritten || erw.pendingStatus != 0 {
		return
	}
	if code >= 400 {
		erw.pendingStatus = code
		return
	}
	erw.headerWritten = true
	erw.ResponseWriter.WriteHeader(code)
}

// Write bekleyen status'ü handler'ın kendi body'si ile birlikte gönderir
func (erw *errorResponseWriter) Write(b []byte) (int, error) {
	if !erw.headerWritten {
		code := http.StatusOK
		if erw.pendingStatus != 0 {
			code = erw.pendingStatus
			erw.pendingStatus = 0
		}
		erw.headerWritten = true
		erw.ResponseWriter.WriteHeader(code)
	}
	return erw.ResponseWriter.Write(b)
}

// WriteError hatayı APIError'a çevirip standart JSON body ile yazar
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	WriteErrorWithConfig(w, r, errors.FromError(err), errors.DefaultErrorConfig())
}

// WriteErrorWithConfig WriteError'un config alan hali
func WriteErrorWithConfig(w http.ResponseWriter, r *http.Request, err error, config *errors.ErrorConfig) {
	apiErr := errors.FromError(err)
	resp := newErrorResponse(w, r, apiErr.Status(), apiErr.Error(), config)

	switch e := apiErr.(type) {
	case *errors.PointAPIError:
		resp.Kind = e.Kind
		resp.ResultAmount = e.ResultAmount
		if e.UserID != 0 {
			resp.Details["user_id"] = e.UserID
		}
		if e.Amount != 0 {
			resp.Details["amount"] = e.Amount
		}
	case *errors.ValidationError:
		resp.Kind = "validation"
		resp.Details["field"] = e.Field
	}

	sendErrorResponse(w, r, resp)
}

func newErrorResponse(w http.ResponseWriter, r *http.Request, statusCode int, message string, config *errors.ErrorConfig) *errors.ErrorResponse {
	return &errors.ErrorResponse{
		Success:   false,
		Error:     truncateString(message, config.MaxErrorLength),
		Code:      statusCode,
		Timestamp: time.Now().Format(time.RFC3339),
		RequestID: w.Header().Get("X-Request-ID"),
		Details: map[string]interface{}{
			"method": r.Method,
			"path":   r.URL.Path,
		},
	}
}

// sendErrorResponse standardized error response gönderir
func sendErrorResponse(w http.ResponseWriter, r *http.Request, response *errors.ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(response.Code)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error().
			Err(err).
			Str("request_id", response.RequestID).
			Msg("Error response JSON encoding failed")
		return
	}

	logError(r, response.Code, response.Error, response.RequestID)
}

// ErrorHandlingMiddlewareForEnv APP_ENV'e göre config ile middleware döner
func ErrorHandlingMiddlewareForEnv(env string) func(http.Handler) http.Handler {
	return ErrorHandlingMiddleware(errors.ForEnv(env))
}
