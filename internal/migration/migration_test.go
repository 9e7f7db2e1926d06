package migration

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations_Paired(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	require.NoError(t, err)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		}
	}

	require.NotEmpty(t, ups)
	assert.Equal(t, ups, downs, "her up migration'ın down karşılığı olmalı")
}

func TestEmbeddedMigrations_CreateLedgerTables(t *testing.T) {
	up, err := fs.ReadFile(migrationsFS, "migrations/000001_create_points.up.sql")
	require.NoError(t, err)

	sql := string(up)
	assert.Contains(t, sql, "CREATE TABLE IF NOT EXISTS balances")
	assert.Contains(t, sql, "CREATE TABLE IF NOT EXISTS point_histories")
	assert.Contains(t, sql, "CHECK (point >= 0)")
}

func TestDown_RejectsNonPositiveSteps(t *testing.T) {
	err := Down("postgres://unused", 0)

	assert.ErrorContains(t, err, "steps")
}
