package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-point-api/internal/metrics"
	"github.com/onerilhan/go-point-api/internal/middleware"
	"github.com/onerilhan/go-point-api/internal/middleware/validation"
)

// RouterConfig router kurulum ayarları
type RouterConfig struct {
	Env         string
	RateLimiter *middleware.RateLimitMiddleware // nil ise rate limit yok
	HealthCheck func() error                    // nil ise her zaman sağlıklı
}

// NewRouter puan API'sinin tüm route ve middleware zincirini kurar.
// Sıra (dıştan içe): logging, error handling, rate limit, router (metrics, validation).
func NewRouter(pointHandler *PointHandler, cfg RouterConfig) http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = middleware.NotFoundJSONHandler()
	router.MethodNotAllowedHandler = middleware.MethodNotAllowedJSONHandler()

	router.Use(middleware.MetricsMiddleware)
	router.Use(validation.Middleware(validation.DefaultConfig()))

	pointHandler.RegisterRoutes(router)
	router.HandleFunc("/health", healthHandler(cfg.HealthCheck)).Methods(http.MethodGet)
	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	router.Walk(func(route *mux.Route, router *mux.Router, ancestors []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err == nil {
			methods, _ := route.GetMethods()
			log.Debug().
				Str("path", pathTemplate).
				Strs("methods", methods).
				Msg("📍 Route registered")
		}
		return nil
	})

	var handler http.Handler = router
	if cfg.RateLimiter != nil {
		handler = cfg.RateLimiter.Handler()(handler)
	}
	handler = middleware.ErrorHandlingMiddlewareForEnv(cfg.Env)(handler)
	handler = middleware.RequestLoggingMiddleware(middleware.DefaultLoggingConfig())(handler)
	return handler
}

func healthHandler(check func() error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(); err != nil {
				log.Error().Err(err).Msg("Health check başarısız")
				writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
					"success": false,
					"status":  "unavailable",
				})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"status":  "ok",
		})
	}
}
