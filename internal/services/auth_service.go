package services

import (
	"context"
	"errors"

	"github.com/secretsanta/backend/internal/auth"
	"github.com/secretsanta/backend/internal/models"
	"go.uber.org/zap"
)

// AuthUserRepository is the interface that wraps the User table access the
// session layer needs
type AuthUserRepository interface {
	// Method GetByUsername retrieves a user by exact, case-sensitive username.
	//
	// If user with such username does not exist, models.ErrNotFound will be returned together with "nil" value.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// Method GetByID retrieves a user by ID.
	//
	// If user with such ID does not exist, models.ErrNotFound will be returned together with "nil" value.
	GetByID(ctx context.Context, userID int) (*models.User, error)
}

// authService implements the session layer on top of exact credential matching
type authService struct {
	userRepo       AuthUserRepository
	tokenGenerator *auth.TokenGenerator
	logger         *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo AuthUserRepository,
	tokenGenerator *auth.TokenGenerator,
	logger *zap.Logger,
) *authService {
	return &authService{
		userRepo:       userRepo,
		tokenGenerator: tokenGenerator,
		logger:         logger,
	}
}

// Login authenticates a user. Both fields must match exactly, byte for byte;
// credentials are opaque strings and no normalization or hashing is applied.
// Any mismatch reads as models.ErrNoMatch.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (string, string, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if errors.Is(err, models.ErrNotFound) {
		return "", "", models.ErrNoMatch
	}
	if err != nil {
		return "", "", err
	}

	if user.Password != req.Password {
		return "", "", models.ErrNoMatch
	}

	s.logger.Info("user logged in", zap.Int("userID", user.ID))
	return s.tokenGenerator.GenerateTokens(user.ID, int(user.Role))
}

// Refresh exchanges a valid refresh token for a fresh token pair. The user
// record is re-fetched so a deleted user's refresh token stops working.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	userID, err := s.tokenGenerator.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", "", err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if errors.Is(err, models.ErrNotFound) {
		return "", "", models.ErrNoMatch
	}
	if err != nil {
		return "", "", err
	}

	return s.tokenGenerator.GenerateTokens(user.ID, int(user.Role))
}
