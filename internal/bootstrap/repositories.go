package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/RecipeCraft_Go/internal/config"
	"github.com/osse101/RecipeCraft_Go/internal/database"
	"github.com/osse101/RecipeCraft_Go/internal/database/postgres"
	"github.com/osse101/RecipeCraft_Go/internal/logger"
	"github.com/osse101/RecipeCraft_Go/internal/repository"
)

// InitializeSaveStore picks the save backend named by cfg.SaveBackend.
// The returned pool is nil for the memory backend; otherwise the caller closes it.
func InitializeSaveStore(ctx context.Context, cfg *config.Config) (repository.SaveStore, *pgxpool.Pool, error) {
	log := logger.FromContext(ctx)

	switch cfg.SaveBackend {
	case config.SaveBackendMemory:
		log.Warn(LogMsgUsingMemorySaves)
		return repository.NewMemorySaveStore(), nil, nil

	case config.SaveBackendPostgres:
		pool, err := database.NewPool(ctx, cfg.GetDBConnString(), database.PoolConfig{
			MaxConns:        cfg.DBMaxConns,
			MaxConnIdleTime: cfg.DBMaxConnIdleTime,
			MaxConnLifetime: cfg.DBMaxConnLifetime,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
		}

		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrateDB, err)
		}

		log.Info(LogMsgUsingPostgresSaves, "host", cfg.DBHost, "db", cfg.DBName)
		return postgres.NewSaveRepository(pool), pool, nil

	default:
		return nil, nil, fmt.Errorf(ErrMsgUnknownBackend, cfg.SaveBackend)
	}
}
