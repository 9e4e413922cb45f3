package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/secretsanta/backend/internal/models"
	"go.uber.org/zap"
)

// gameStateRepository provides access to the single-row game_state table
type gameStateRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewGameStateRepository creates a new game state repository
func NewGameStateRepository(db *sql.DB, logger *zap.Logger) *gameStateRepository {
	return &gameStateRepository{
		db:     db,
		logger: logger,
	}
}

// Get returns the shuffled flag together with its version token
func (r *gameStateRepository) Get(ctx context.Context) (bool, int, error) {
	query := `SELECT is_shuffled, version FROM game_state WHERE id = 1`

	var shuffled bool
	var version int
	err := r.db.QueryRowContext(ctx, query).Scan(&shuffled, &version)
	if err != nil {
		r.logger.Error("failed to get game state", zap.Error(err))
		return false, 0, fmt.Errorf("failed to get game state: %w", err)
	}

	return shuffled, version, nil
}

// SetShuffled marks the game as shuffled, but only if the state has not been
// touched since the caller read version. A concurrent shuffle or reset bumps
// the version and makes this write fail with ErrShuffleConflict.
func (r *gameStateRepository) SetShuffled(ctx context.Context, version int) error {
	query := `
		UPDATE game_state
		SET is_shuffled = TRUE, version = version + 1
		WHERE id = 1 AND version = ?
	`

	result, err := r.db.ExecContext(ctx, query, version)
	if err != nil {
		r.logger.Error("failed to set shuffled flag", zap.Error(err))
		return fmt.Errorf("failed to set shuffled flag: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return models.ErrShuffleConflict
	}

	return nil
}

// Reset unconditionally clears the shuffled flag
func (r *gameStateRepository) Reset(ctx context.Context) error {
	query := `
		UPDATE game_state
		SET is_shuffled = FALSE, version = version + 1
		WHERE id = 1
	`

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		r.logger.Error("failed to reset game state", zap.Error(err))
		return fmt.Errorf("failed to reset game state: %w", err)
	}

	return nil
}
