package database

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestDBConfig_DSN(t *testing.T) {
	t.Parallel()

	cfg := &DBConfig{Host: "db", Port: 5432, Username: "library", Password: "p@ss word", DBName: "catalog", SSLMode: "disable"}
	require.Equal(t, "postgres://library:p%40ss%20word@db:5432/catalog?sslmode=disable", cfg.DSN())

	cfg.SSLMode = ""
	require.Equal(t, "postgres://library:p%40ss%20word@db:5432/catalog", cfg.DSN())
}

func TestPostgresDB_ClosedPool(t *testing.T) {
	t.Parallel()

	db := NewPostgresDB(&DBConfig{})
	require.Equal(t, PoolStats{}, db.Stats())
	require.NoError(t, db.Close())
	require.Error(t, db.HealthCheck(t.Context()))
}

func TestPostgresDB_RegisterPoolMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	db := NewPostgresDB(&DBConfig{})
	require.NoError(t, db.RegisterPoolMetrics(reg))

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 7)

	// registering twice collides
	require.Error(t, db.RegisterPoolMetrics(reg))
}

func TestMigrations_Embedded(t *testing.T) {
	t.Parallel()

	files, err := fs.Glob(migrationsFS, migrationsDir+"/*.sql")
	require.NoError(t, err)
	require.Equal(t, []string{
		"migrations/00001_create_authors.sql",
		"migrations/00002_create_books.sql",
	}, files)

	for _, f := range files {
		body, err := fs.ReadFile(migrationsFS, f)
		require.NoError(t, err)
		require.Contains(t, string(body), "-- +goose Up", f)
		require.Contains(t, string(body), "-- +goose Down", f)
	}

	books, err := fs.ReadFile(migrationsFS, "migrations/00002_create_books.sql")
	require.NoError(t, err)
	require.True(t, strings.Contains(string(books), "REFERENCES authors (id) ON DELETE CASCADE"))
}
