package middleware

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-point-api/internal/middleware/errors"
	"github.com/onerilhan/go-point-api/internal/utils"
)

// logAPIError panic ile yükselen API error'ları loglar
func logAPIError(err errors.APIError, r *http.Request, errorType string) {
	logEvent := log.Warn().
		Str("error_type", errorType).
		Str("error_message", err.Error()).
		Int("status_code", err.Status()).
		Str("path", r.URL.Path).
		Str("method", r.Method).
		Str("client_ip", utils.GetClientIP(r))

	switch e := err.(type) {
	case *errors.PointAPIError:
		logEvent.Str("category", "point").
			Str("kind", e.Kind).
			Int64("user_id", e.UserID).
			Msg("Point operation rejected")

	case *errors.ValidationError:
		logEvent.Str("category", "validation").
			Str("field", e.Field).
			Interface("value", e.Value).
			Msg("Validation failed")

	default:
		logEvent.Str("category", "api_error").
			Msg("API error occurred")
	}
}

// logPanic panic durumunu detaylı şekilde loglar
func logPanic(panicInfo *errors.PanicInfo, config *errors.ErrorConfig) {
	logEvent := log.Error().
		Str("type", "panic").
		Str("request_id", panicInfo.RequestID).
		Str("method", panicInfo.Method).
		Str("path", panicInfo.Path).
		Str("client_ip", panicInfo.ClientIP).
		Str("user_agent", panicInfo.UserAgent).
		Time("timestamp", panicInfo.Timestamp).
		Interface("panic_value", panicInfo.Value)

	if config.EnablePanicLogs {
		logEvent.Str("stack_trace", panicInfo.Stack)
	}

	logEvent.Msg("Server panic recovered")
}

// logError error response'u status'e göre uygun seviyede loglar
func logError(r *http.Request, statusCode int, message string, requestID string) {
	logEvent := log.With().
		Str("request_id", requestID).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("client_ip", utils.GetClientIP(r)).
		Int("status_code", statusCode).
		Str("error", message).
		Logger()

	switch {
	case statusCode >= 500:
		logEvent.Error().Msg("Server error occurred")
	default:
		logEvent.Warn().Msg("Client error occurred")
	}
}
