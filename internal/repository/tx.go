package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/RecipeCraft_Go/internal/domain"
	"github.com/osse101/RecipeCraft_Go/internal/logger"
)

// Tx defines the interface for transactional operations
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// SaveTx extends Tx with the writes needed to replace a save slot atomically
type SaveTx interface {
	Tx

	// TouchSlot creates slot or updates its saved-at time
	TouchSlot(ctx context.Context, slot string) error
	DeleteSlot(ctx context.Context, slot string) error
	UpsertRecipeState(ctx context.Context, slot, recipe string, state domain.RecipeState) error
}

// SafeRollback is deferred after BeginTx. Rolling back a committed
// transaction is expected and not logged.
func SafeRollback(ctx context.Context, tx Tx) {
	err := tx.Rollback(ctx)
	if err == nil || errors.Is(err, pgx.ErrTxClosed) || err.Error() == domain.ErrMsgTxClosed {
		return
	}
	logger.FromContext(ctx).Error("Failed to roll back save transaction", "error", err)
}
