//go:build integration

package repository_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/onerilhan/go-point-api/internal/db"
	"github.com/onerilhan/go-point-api/internal/migration"
	"github.com/onerilhan/go-point-api/internal/models"
	"github.com/onerilhan/go-point-api/internal/repository"
	"github.com/onerilhan/go-point-api/internal/services"
)

// setupPostgres migration'ları uygulanmış bir Postgres container'ı başlatır
func setupPostgres(t *testing.T) *repository.PostgresStore {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("point_test"),
		postgres.WithUsername("test_user"),
		postgres.WithPassword("test_password"),
		postgres.BasicWaitStrategies(),
		testcontainers.WithLabels(map[string]string{"test": "point-repository"}),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Warning: test container kapatılamadı: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, migration.Up(dsn))

	database, err := db.Connect(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	return repository.NewPostgresStore(database)
}

func TestPostgres_LedgerEndToEnd(t *testing.T) {
	store := setupPostgres(t)
	service := services.NewPointService(store)

	b, err := service.Charge(1, 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), b.Point)

	_, err = service.Charge(1, 1)
	assert.True(t, errors.Is(err, models.ErrLimitExceeded))

	b, err = service.Use(1, 400)
	require.NoError(t, err)
	assert.Equal(t, int64(600), b.Point)

	_, err = service.Use(1, 601)
	assert.True(t, errors.Is(err, models.ErrInsufficientBalance))

	history, err := service.GetHistory(1)
	require.NoError(t, err)
	require.Len(t, history, 2)
	point, ok := models.Replay(history)
	assert.True(t, ok)
	assert.Equal(t, int64(600), point)
}

// TestPostgres_TwoLedgersShareRowLock, aynı veritabanını kullanan iki ayrı
// service'in (iki process gibi) satır kilidi ile sıralandığını test eder.
func TestPostgres_TwoLedgersShareRowLock(t *testing.T) {
	store := setupPostgres(t)
	first := services.NewPointService(store)
	second := services.NewPointService(store)

	// satırı oluştur; ilk insert satır kilidiyle korunmaz
	_, err := first.Charge(7, 1)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); _, _ = first.Charge(7, 2) }()
		go func() { defer wg.Done(); _, _ = second.Charge(7, 2) }()
	}
	wg.Wait()

	b, err := first.GetBalance(7)
	require.NoError(t, err)
	assert.Equal(t, int64(201), b.Point)

	history, err := first.GetHistory(7)
	require.NoError(t, err)
	assert.Len(t, history, 101)
}

func TestMigration_StatusAndDown(t *testing.T) {
	ctx := context.Background()
	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("point_migrate"),
		postgres.WithUsername("test_user"),
		postgres.WithPassword("test_password"),
		postgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	status, err := migration.GetStatus(dsn)
	require.NoError(t, err)
	assert.False(t, status.Applied)

	require.NoError(t, migration.Up(dsn))
	require.NoError(t, migration.Up(dsn), "ikinci Up değişiklik olmadan dönmeli")

	status, err = migration.GetStatus(dsn)
	require.NoError(t, err)
	assert.Equal(t, uint(1), status.Version)
	assert.False(t, status.Dirty)

	require.NoError(t, migration.Down(dsn, 1))
	status, err = migration.GetStatus(dsn)
	require.NoError(t, err)
	assert.False(t, status.Applied)
}
