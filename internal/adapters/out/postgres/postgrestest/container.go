// Package postgrestest starts a throwaway PostgreSQL for integration tests.
package postgrestest

import (
	"context"
	"testing"
	"time"

	"supply/internal/adapters/out/postgres"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database is a migrated database running in a container.
type Database struct {
	DB        *gorm.DB
	DSN       string
	container *tcpostgres.PostgresContainer
}

// Start runs postgres:15-alpine and applies the schema.
func Start(t testing.TB) *Database {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(db))

	return &Database{DB: db, DSN: dsn, container: container}
}

// Reset empties every table.
func (d *Database) Reset(t testing.TB) {
	t.Helper()
	require.NoError(t, postgres.Truncate(d.DB))
}

// Stop terminates the container.
func (d *Database) Stop(t testing.TB) {
	t.Helper()
	if d == nil || d.container == nil {
		return
	}
	require.NoError(t, d.container.Terminate(context.Background()))
}
