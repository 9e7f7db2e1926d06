package middleware

import (
	"net/http"

	"github.com/onerilhan/go-point-api/internal/middleware/errors"
)

// NotFoundJSONHandler JSON formatında 404 Not Found döner
func NotFoundJSONHandler() http.HandlerFunc {
	config := errors.DefaultErrorConfig()
	return func(w http.ResponseWriter, r *http.Request) {
		resp := newErrorResponse(w, r, http.StatusNotFound, "Endpoint bulunamadı. Geçerli yollar: /point/{id}, /point/{id}/histories, /point/{id}/charge, /point/{id}/use", config)
		sendErrorResponse(w, r, resp)
	}
}

// MethodNotAllowedJSONHandler JSON formatında 405 Method Not Allowed döner
func MethodNotAllowedJSONHandler() http.HandlerFunc {
	config := errors.DefaultErrorConfig()
	return func(w http.ResponseWriter, r *http.Request) {
		resp := newErrorResponse(w, r, http.StatusMethodNotAllowed, getErrorMessage(http.StatusMethodNotAllowed, config), config)
		sendErrorResponse(w, r, resp)
	}
}
