// Package validation yazma isteklerinin body'sini handler'dan önce doğrular.
package validation

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-point-api/internal/middleware/errors"
)

// Config validation middleware ayarları
type Config struct {
	MaxBodySize  int64    // Maximum request body size (bytes)
	ContentTypes []string // Body taşıyan isteklerde izin verilen content type'lar
}

// DefaultConfig varsayılan validation ayarları.
// Puan isteği tek bir sayıdır; 1KB fazlasıyla yeter.
func DefaultConfig() *Config {
	return &Config{
		MaxBodySize: 1024,
		ContentTypes: []string{
			"application/json",
			"text/plain",
		},
	}
}

// Middleware body taşıyan (POST/PUT/PATCH) istekleri doğrular.
// Hata durumunda ValidationError ile panic eder; ErrorHandlingMiddleware yakalar.
func Middleware(config *Config) func(http.Handler) http.Handler {
	if config == nil {
		config = DefaultConfig()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !hasBody(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			if err := ValidateContent(r, config); err != nil {
				panic(&errors.ValidationError{
					Message:    err.Error(),
					StatusCode: http.StatusBadRequest,
					Field:      "body",
					Value:      r.Header.Get("Content-Type"),
				})
			}

			log.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int64("content_length", r.ContentLength).
				Msg("Request validation passed")

			next.ServeHTTP(w, r)
		})
	}
}

func hasBody(method string) bool {
	return method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch
}
