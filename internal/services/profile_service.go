package services

import (
	"context"

	"github.com/secretsanta/backend/internal/models"
	"go.uber.org/zap"
)

// ProfileUserRepository is the interface that wraps the User table access the
// participant profile operations need
type ProfileUserRepository interface {
	// Method GetByID retrieves a user by ID.
	//
	// If user with such ID does not exist, models.ErrNotFound will be returned together with "nil" value.
	GetByID(ctx context.Context, userID int) (*models.User, error)
	// Method UpdateWishlist overwrites the wishlist text for the given user.
	//
	// If user with such ID does not exist, models.ErrNotFound will be returned.
	UpdateWishlist(ctx context.Context, userID int, wishlist string) error
}

// profileService implements the participant-facing profile operations
type profileService struct {
	userRepo ProfileUserRepository
	logger   *zap.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(userRepo ProfileUserRepository, logger *zap.Logger) *profileService {
	return &profileService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Me returns the authenticated user's own record
func (s *profileService) Me(ctx context.Context, userID int) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// SetWishlist overwrites the owner's wishlist. The core imposes no length
// limit; the request size middleware bounds the payload.
func (s *profileService) SetWishlist(ctx context.Context, userID int, wishlist string) error {
	if err := s.userRepo.UpdateWishlist(ctx, userID, wishlist); err != nil {
		return err
	}

	s.logger.Info("wishlist updated", zap.Int("userID", userID))
	return nil
}
