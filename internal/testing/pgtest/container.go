// Package pgtest starts a throwaway PostgreSQL for integration tests.
package pgtest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	Image    = "postgres:15-alpine"
	Database = "recipes_test"
	User     = "testuser"
	Password = "testpass"
)

// Container is a running database. Terminate is safe on a zero value.
type Container struct {
	ConnString string
	pg         *postgres.PostgresContainer
}

// Start launches the container. Without a reachable docker daemon it
// returns an error instead of panicking, so TestMain can fall back to
// skipping the integration tests.
func Start(ctx context.Context) (c *Container, err error) {
	defer func() {
		if r := recover(); r != nil {
			c, err = nil, fmt.Errorf("docker unavailable: %v", r)
		}
	}()

	pg, err := postgres.Run(ctx, Image,
		postgres.WithDatabase(Database),
		postgres.WithUsername(User),
		postgres.WithPassword(Password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres container: %w", err)
	}

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pg.Terminate(ctx)
		return nil, fmt.Errorf("postgres connection string: %w", err)
	}

	return &Container{ConnString: connStr, pg: pg}, nil
}

// Terminate stops the container, logging rather than failing
func (c *Container) Terminate(ctx context.Context) {
	if c == nil || c.pg == nil {
		return
	}
	if err := c.pg.Terminate(ctx); err != nil {
		fmt.Printf("Failed to terminate container: %v\n", err)
	}
}

// Skip skips t in -short mode or when the container never started
func Skip(t testing.TB, c *Container) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if c == nil {
		t.Skip("Skipping integration test: database not available")
	}
}
