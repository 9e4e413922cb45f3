package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/secretsanta/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupGameStateTestRepository creates a game state repository with a mock database
func setupGameStateTestRepository(t *testing.T) (*gameStateRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewGameStateRepository(db, zap.NewNop())

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestGameStateRepository_Get(t *testing.T) {
	tests := []struct {
		name            string
		setupMock       func(sqlmock.Sqlmock)
		expectedFlag    bool
		expectedVersion int
		expectedError   bool
	}{
		{
			name: "not shuffled",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT is_shuffled, version FROM game_state`).
					WillReturnRows(sqlmock.NewRows([]string{"is_shuffled", "version"}).AddRow(false, 0))
			},
		},
		{
			name: "shuffled",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT is_shuffled, version FROM game_state`).
					WillReturnRows(sqlmock.NewRows([]string{"is_shuffled", "version"}).AddRow(true, 7))
			},
			expectedFlag:    true,
			expectedVersion: 7,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT is_shuffled, version FROM game_state`).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupGameStateTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			shuffled, version, err := repo.Get(context.Background())

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedFlag, shuffled)
				assert.Equal(t, tt.expectedVersion, version)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGameStateRepository_SetShuffled(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupGameStateTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`UPDATE game_state`).
			WithArgs(3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SetShuffled(context.Background(), 3)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("version changed", func(t *testing.T) {
		repo, mock, cleanup := setupGameStateTestRepository(t)
		defer cleanup()

		// No row matches the stale version
		mock.ExpectExec(`UPDATE game_state`).
			WithArgs(3).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SetShuffled(context.Background(), 3)

		assert.ErrorIs(t, err, models.ErrShuffleConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		repo, mock, cleanup := setupGameStateTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`UPDATE game_state`).
			WithArgs(3).
			WillReturnError(errors.New("database error"))

		err := repo.SetShuffled(context.Background(), 3)

		assert.Error(t, err)
		assert.NotErrorIs(t, err, models.ErrShuffleConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGameStateRepository_Reset(t *testing.T) {
	repo, mock, cleanup := setupGameStateTestRepository(t)
	defer cleanup()

	mock.ExpectExec(`UPDATE game_state`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Reset(context.Background())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
