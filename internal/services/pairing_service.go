package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/secretsanta/backend/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// PairingUserRepository is the interface that wraps the User table access the
// pairing engine needs
type PairingUserRepository interface {
	// Method GetParticipants retrieves the full roster of participant users.
	//
	// If some error occurs during the query, the error will be returned together with "nil" value.
	GetParticipants(ctx context.Context) ([]models.User, error)
	// Method GetByID retrieves a user by ID.
	//
	// If user with such ID does not exist, models.ErrNotFound will be returned together with "nil" value.
	GetByID(ctx context.Context, userID int) (*models.User, error)
	// Method UpdateAssignment sets or clears the recipient reference for a giver.
	//
	// "assignedToID" parameter is nil to clear the assignment.
	//
	// If some error occurs during the update, the error will be returned.
	UpdateAssignment(ctx context.Context, userID int, assignedToID *int) error
	// Method ClearAssignments nulls every assignment reference.
	//
	// If some error occurs during the update, the error will be returned.
	ClearAssignments(ctx context.Context) error
}

// GameStateRepository is the interface that wraps the shuffled-flag access
type GameStateRepository interface {
	// Method Get returns the shuffled flag together with its version token.
	//
	// If some error occurs during the query, the error will be returned.
	Get(ctx context.Context) (bool, int, error)
	// Method SetShuffled marks the game as shuffled if the version still matches.
	//
	// If the version changed since the read, models.ErrShuffleConflict will be returned.
	SetShuffled(ctx context.Context, version int) error
	// Method Reset unconditionally clears the shuffled flag.
	//
	// If some error occurs during the update, the error will be returned.
	Reset(ctx context.Context) error
}

// pairingService implements the pairing engine: it turns the roster into a
// single cycle of gift assignments and gates roster mutation around that
type pairingService struct {
	userRepo      PairingUserRepository
	gameStateRepo GameStateRepository
	logger        *zap.Logger

	mu   sync.Mutex
	rand *rand.Rand
}

// NewPairingService creates a new pairing service
func NewPairingService(
	userRepo PairingUserRepository,
	gameStateRepo GameStateRepository,
	logger *zap.Logger,
) *pairingService {
	source := rand.NewSource(time.Now().UnixNano())
	return &pairingService{
		userRepo:      userRepo,
		gameStateRepo: gameStateRepo,
		logger:        logger,
		rand:          rand.New(source),
	}
}

// Shuffle snapshots the roster, permutes it uniformly at random and persists
// the resulting single-cycle assignments, then flips the shuffled flag.
//
// The n assignment writes are issued concurrently; a concurrent reader may
// observe a partially assigned roster while the flag is still false. If any
// write fails, assignments already written are not rolled back and the flag
// stays false. The flag commit is guarded by the version read at the start, so
// a second shuffle or reset racing this one fails with ErrShuffleConflict
// instead of silently corrupting the cycle.
func (s *pairingService) Shuffle(ctx context.Context) error {
	shuffled, version, err := s.gameStateRepo.Get(ctx)
	if err != nil {
		return err
	}
	if shuffled {
		return models.ErrRosterLocked
	}

	participants, err := s.userRepo.GetParticipants(ctx)
	if err != nil {
		return err
	}
	if len(participants) < 2 {
		return models.ErrInsufficientParticipants
	}

	// Fisher-Yates: uniform over all n! orderings
	s.mu.Lock()
	s.rand.Shuffle(len(participants), func(i, j int) {
		participants[i], participants[j] = participants[j], participants[i]
	})
	s.mu.Unlock()

	// Walk the permuted order as one cycle: each participant gifts the next,
	// the last gifts the first. A single cycle over n >= 2 has no fixed points.
	g, gctx := errgroup.WithContext(ctx)
	for i := range participants {
		giverID := participants[i].ID
		recipientID := participants[(i+1)%len(participants)].ID
		g.Go(func() error {
			return s.userRepo.UpdateAssignment(gctx, giverID, &recipientID)
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error("shuffle aborted mid-write, roster may hold a partial cycle", zap.Error(err))
		return fmt.Errorf("failed to persist assignments: %w", err)
	}

	if err := s.gameStateRepo.SetShuffled(ctx, version); err != nil {
		return err
	}

	s.logger.Info("roster shuffled", zap.Int("participants", len(participants)))
	return nil
}

// Reset clears every assignment and the shuffled flag. It has no precondition
// and is safe to call when already reset.
func (s *pairingService) Reset(ctx context.Context) error {
	if err := s.userRepo.ClearAssignments(ctx); err != nil {
		return err
	}

	if err := s.gameStateRepo.Reset(ctx); err != nil {
		return err
	}

	s.logger.Info("game reset, assignments cleared")
	return nil
}

// AssignmentFor resolves the recipient assigned to the given user. A nil
// assignment reference and a reference to a deleted user both read as
// "no assignment", returned as (nil, nil).
func (s *pairingService) AssignmentFor(ctx context.Context, userID int) (*models.UserPublic, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.AssignedToID == nil {
		return nil, nil
	}

	recipient, err := s.userRepo.GetByID(ctx, *user.AssignedToID)
	if errors.Is(err, models.ErrNotFound) {
		// Dangling reference left behind by a deletion
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return recipient.Public(), nil
}

// IsShuffled reports whether assignments are currently live
func (s *pairingService) IsShuffled(ctx context.Context) (bool, error) {
	shuffled, _, err := s.gameStateRepo.Get(ctx)
	return shuffled, err
}
