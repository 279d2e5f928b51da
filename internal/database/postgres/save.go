package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/RecipeCraft_Go/internal/domain"
	"github.com/osse101/RecipeCraft_Go/internal/logger"
	"github.com/osse101/RecipeCraft_Go/internal/repository"
)

const (
	queryTouchSlot = `
INSERT INTO save_slots (slot, saved_at) VALUES ($1, NOW())
ON CONFLICT (slot) DO UPDATE SET saved_at = EXCLUDED.saved_at`

	queryDeleteStates = `DELETE FROM recipe_states WHERE slot = $1`

	queryUpsertState = `
INSERT INTO recipe_states (slot, recipe_name, discovered, times_crafted, updated_at)
VALUES ($1, $2, $3, $4, NOW())
ON CONFLICT (slot, recipe_name) DO UPDATE
SET discovered = EXCLUDED.discovered,
    times_crafted = EXCLUDED.times_crafted,
    updated_at = EXCLUDED.updated_at`

	querySlotExists = `SELECT EXISTS (SELECT 1 FROM save_slots WHERE slot = $1)`

	queryStates = `
SELECT recipe_name, discovered, times_crafted
FROM recipe_states
WHERE slot = $1`

	querySlots = `SELECT slot FROM save_slots ORDER BY slot`
)

// SaveRepository implements repository.SaveStore on PostgreSQL
type SaveRepository struct {
	db *pgxpool.Pool
}

// NewSaveRepository creates a new save repository
func NewSaveRepository(db *pgxpool.Pool) *SaveRepository {
	return &SaveRepository{db: db}
}

var _ repository.SaveStore = (*SaveRepository)(nil)

// saveTx wraps pgx.Tx to implement repository.SaveTx
type saveTx struct {
	tx pgx.Tx
}

// Commit commits the transaction
func (t *saveTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction
func (t *saveTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// TouchSlot creates the slot or refreshes its saved_at time
func (t *saveTx) TouchSlot(ctx context.Context, slot string) error {
	if _, err := t.tx.Exec(ctx, queryTouchSlot, slot); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgTouchSlot, err)
	}
	return nil
}

// DeleteSlot removes every recipe state stored under slot
func (t *saveTx) DeleteSlot(ctx context.Context, slot string) error {
	if _, err := t.tx.Exec(ctx, queryDeleteStates, slot); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgDeleteSlot, err)
	}
	return nil
}

// UpsertRecipeState stores the state of one recipe
func (t *saveTx) UpsertRecipeState(ctx context.Context, slot, recipe string, state domain.RecipeState) error {
	if _, err := t.tx.Exec(ctx, queryUpsertState, slot, recipe, state.Discovered, state.TimesCrafted); err != nil {
		return fmt.Errorf("%s %q: %w", ErrMsgUpsertState, recipe, err)
	}
	return nil
}

// BeginSaveTx starts a transaction for replacing a save slot
func (r *SaveRepository) BeginSaveTx(ctx context.Context) (repository.SaveTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgBeginSaveTx, err)
	}
	return &saveTx{tx: tx}, nil
}

// SaveRecipeStates atomically replaces everything stored under slot
func (r *SaveRepository) SaveRecipeStates(ctx context.Context, slot string, states map[string]domain.RecipeState) error {
	if slot == "" {
		return fmt.Errorf("%s | %w", ErrMsgEmptySlot, domain.ErrInvalidInput)
	}

	tx, err := r.BeginSaveTx(ctx)
	if err != nil {
		return err
	}
	defer repository.SafeRollback(ctx, tx)

	if err := tx.TouchSlot(ctx, slot); err != nil {
		return err
	}
	if err := tx.DeleteSlot(ctx, slot); err != nil {
		return err
	}
	for name, state := range states {
		if err := tx.UpsertRecipeState(ctx, slot, name, state); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgCommitSave, err)
	}

	logger.FromContext(ctx).Info(LogMsgSaveWritten, "slot", slot, "recipes", len(states))
	return nil
}

// LoadRecipeStates returns the states saved under slot
func (r *SaveRepository) LoadRecipeStates(ctx context.Context, slot string) (map[string]domain.RecipeState, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, querySlotExists, slot).Scan(&exists); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgQuerySlot, err)
	}
	if !exists {
		return nil, fmt.Errorf("slot %q | %w", slot, domain.ErrSaveNotFound)
	}

	rows, err := r.db.Query(ctx, queryStates, slot)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgQueryStates, err)
	}
	defer rows.Close()

	states := make(map[string]domain.RecipeState)
	for rows.Next() {
		var (
			name  string
			state domain.RecipeState
		)
		if err := rows.Scan(&name, &state.Discovered, &state.TimesCrafted); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgScanState, err)
		}
		states[name] = state
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgQueryStates, err)
	}

	logger.FromContext(ctx).Debug(LogMsgSaveRead, "slot", slot, "recipes", len(states))
	return states, nil
}

// ListSlots returns every saved slot sorted by name
func (r *SaveRepository) ListSlots(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, querySlots)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgQuerySlots, err)
	}
	defer rows.Close()

	slots, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgQuerySlots, err)
	}
	return slots, nil
}
