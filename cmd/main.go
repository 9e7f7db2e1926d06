package main

import (
	"context"
	"database/sql"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-point-api/internal/config"
	"github.com/onerilhan/go-point-api/internal/db"
	"github.com/onerilhan/go-point-api/internal/handlers"
	"github.com/onerilhan/go-point-api/internal/interfaces"
	"github.com/onerilhan/go-point-api/internal/logger"
	"github.com/onerilhan/go-point-api/internal/metrics"
	"github.com/onerilhan/go-point-api/internal/middleware"
	"github.com/onerilhan/go-point-api/internal/migration"
	"github.com/onerilhan/go-point-api/internal/repository"
	"github.com/onerilhan/go-point-api/internal/repository/memory"
	"github.com/onerilhan/go-point-api/internal/services"
)

func main() {
	// .env dosyasını yükle
	if err := godotenv.Load(); err != nil {
		stdlog.Println(".env dosyası bulunamadı, ortam değişkenlerinden okunacak.")
	}

	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("❌ Geçersiz yapılandırma")
	}

	metrics.Init()

	log.Info().
		Str("environment", cfg.AppEnv).
		Str("port", cfg.Port).
		Str("store", cfg.StoreDriver).
		Int64("max_balance", cfg.MaxBalance).
		Msg("🚀 Puan API başlatıldı")

	store, database := setupStore(cfg)
	if database != nil {
		defer database.Close()
	}

	pointService := services.NewPointService(store, services.WithMaxBalance(cfg.MaxBalance))
	pointHandler := handlers.NewPointHandler(pointService)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	rateLimiter := middleware.NewRateLimitMiddleware(ctx, &middleware.RateLimitConfig{
		RequestsPerMinute: cfg.RateLimitPerMinute,
		Burst:             cfg.RateLimitBurst,
		SkipPaths:         []string{"/health", "/metrics"},
		CleanupInterval:   10 * time.Minute,
		IdleTimeout:       30 * time.Minute,
	})

	var healthCheck func() error
	if database != nil {
		healthCheck = database.Ping
	}

	router := handlers.NewRouter(pointHandler, handlers.RouterConfig{
		Env:         cfg.AppEnv,
		RateLimiter: rateLimiter,
		HealthCheck: healthCheck,
	})

	serverAddr := ":" + cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info().
			Str("addr", serverAddr).
			Msg("🌐 HTTP Server (Gorilla Mux) başlatıldı")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("❌ Server başlatma hatası")
		}
	}()

	<-shutdown
	log.Info().Msg("🛑 Shutdown signal alındı, server kapatılıyor...")

	// Devam eden puan işlemleri tamamlanana kadar bekle
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("❌ HTTP Server kapatma hatası")
	} else {
		log.Info().Msg("✅ HTTP Server başarıyla kapatıldı")
	}

	log.Info().Msg("👋 Puan API başarıyla kapatıldı")
}

// setupStore STORE_DRIVER'a göre store'u kurar.
// Postgres için açılan bağlantıyı da döner (memory'de nil).
func setupStore(cfg *config.Config) (interfaces.PointStoreInterface, *sql.DB) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		if cfg.AutoMigrate {
			if err := migration.Up(cfg.GetDSN()); err != nil {
				log.Fatal().Err(err).Msg("❌ Migration başarısız")
			}
		}

		database, err := db.Connect(cfg.GetDSN())
		if err != nil {
			log.Fatal().Err(err).Msg("❌ Veritabanı bağlantısı başarısız")
		}
		log.Info().Str("host", cfg.DBHost).Str("db", cfg.DBName).Msg("🗄️  Postgres store kullanılıyor")
		return repository.NewPostgresStore(database), database

	default:
		log.Info().Dur("latency", cfg.MemoryLatency).Msg("🧠 Memory store kullanılıyor")
		return memory.NewStore(memory.WithLatency(cfg.MemoryLatency)), nil
	}
}
