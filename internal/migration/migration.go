// Package migration puan şemasını golang-migrate ile yönetir.
// SQL dosyaları binary'ye gömülüdür; sunucu ve CLI aynı kaynağı kullanır.
package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Status şemanın güncel durumu
type Status struct {
	Version uint `json:"version"`
	Dirty   bool `json:"dirty"`
	Applied bool `json:"applied"` // hiç migration uygulanmadıysa false
}

// Up bekleyen tüm migration'ları uygular
func Up(dsn string) error {
	m, err := newMigrate(dsn)
	if err != nil {
		return err
	}
	defer closeMigrate(m)

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		log.Info().Msg("Uygulanacak yeni migration yok")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration'lar uygulanamadı: %w", err)
	}

	version, _, _ := m.Version()
	log.Info().Uint("version", version).Msg("✅ Migration'lar uygulandı")
	return nil
}

// Down son steps adet migration'ı geri alır
func Down(dsn string, steps int) error {
	if steps < 1 {
		return fmt.Errorf("steps en az 1 olmalı, verilen: %d", steps)
	}

	m, err := newMigrate(dsn)
	if err != nil {
		return err
	}
	defer closeMigrate(m)

	err = m.Steps(-steps)
	if errors.Is(err, migrate.ErrNoChange) {
		log.Info().Msg("Geri alınacak migration yok")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration'lar geri alınamadı: %w", err)
	}

	version, _, verr := m.Version()
	if errors.Is(verr, migrate.ErrNilVersion) {
		log.Info().Msg("Tüm migration'lar geri alındı")
		return nil
	}
	log.Info().Uint("version", version).Msg("Migration'lar geri alındı")
	return nil
}

// GetStatus şemanın versiyonunu döner
func GetStatus(dsn string) (*Status, error) {
	m, err := newMigrate(dsn)
	if err != nil {
		return nil, err
	}
	defer closeMigrate(m)

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return &Status{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("migration versiyonu okunamadı: %w", err)
	}
	return &Status{Version: version, Dirty: dirty, Applied: true}, nil
}

// newMigrate ayrı bir bağlantı açar; migrate.Close bu bağlantıyı da kapatır
func newMigrate(dsn string) (*migrate.Migrate, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("veritabanı açılamadı: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres migration driver oluşturulamadı: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("migration kaynağı okunamadı: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate oluşturulamadı: %w", err)
	}
	return m, nil
}

func closeMigrate(m *migrate.Migrate) {
	srcErr, dbErr := m.Close()
	if srcErr != nil || dbErr != nil {
		log.Warn().AnErr("source_error", srcErr).AnErr("db_error", dbErr).Msg("Migrate kapatılamadı")
	}
}
