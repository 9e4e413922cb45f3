package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/secretsanta/backend/internal/models"
	"go.uber.org/zap"
)

// RosterUserRepository is the interface that wraps the User table access the
// admin roster operations need
type RosterUserRepository interface {
	// Method Create inserts a new user into the database.
	//
	// If the username already exists, models.ErrDuplicateUsername will be returned.
	// If some other error occurs during user creation, the error will be returned.
	Create(ctx context.Context, user *models.User) error
	// Method GetByID retrieves a user by ID.
	//
	// If user with such ID does not exist, models.ErrNotFound will be returned together with "nil" value.
	GetByID(ctx context.Context, userID int) (*models.User, error)
	// Method GetAll retrieves every user.
	//
	// If some error occurs during the query, the error will be returned together with "nil" value.
	GetAll(ctx context.Context) ([]models.User, error)
	// Method Delete deletes a user by ID.
	//
	// If user with such ID does not exist, models.ErrNotFound will be returned.
	Delete(ctx context.Context, userID int) error
	// Method ExistsByUsername checks if a user with such username exists (case-sensitive).
	//
	// If some error occurs during check, the error will be returned together with "false" value.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// rosterService implements the admin roster operations
type rosterService struct {
	userRepo      RosterUserRepository
	gameStateRepo GameStateRepository
	logger        *zap.Logger
}

// NewRosterService creates a new roster service
func NewRosterService(
	userRepo RosterUserRepository,
	gameStateRepo GameStateRepository,
	logger *zap.Logger,
) *rosterService {
	return &rosterService{
		userRepo:      userRepo,
		gameStateRepo: gameStateRepo,
		logger:        logger,
	}
}

// CreateParticipant adds a participant to the roster. Creation is rejected
// while assignments are live.
func (s *rosterService) CreateParticipant(ctx context.Context, req *models.CreateParticipantRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, fmt.Errorf("username cannot be empty")
	}
	if req.Password == "" {
		return nil, fmt.Errorf("password cannot be empty")
	}

	shuffled, _, err := s.gameStateRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if shuffled {
		return nil, models.ErrRosterLocked
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.ErrDuplicateUsername
	}

	user := &models.User{
		Username: username,
		Password: req.Password,
		Role:     models.RoleParticipant,
		Wishlist: "",
	}

	// The unique key still backstops the existence check against a racing create
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("participant created", zap.Int("userID", user.ID), zap.String("username", user.Username))
	return user, nil
}

// DeleteParticipant removes a participant from the roster. Deletion is
// rejected while assignments are live, and the administrator is never
// deletable. Assignments pointing at the deleted participant are left
// dangling; reads tolerate them.
func (s *rosterService) DeleteParticipant(ctx context.Context, userID int) error {
	shuffled, _, err := s.gameStateRepo.Get(ctx)
	if err != nil {
		return err
	}
	if shuffled {
		return models.ErrRosterLocked
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsAdmin() {
		return models.ErrCannotDeleteAdmin
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	s.logger.Info("participant deleted", zap.Int("userID", userID))
	return nil
}

// ListUsers returns the full roster as list items
func (s *rosterService) ListUsers(ctx context.Context) ([]models.UserListItem, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]models.UserListItem, len(users))
	for i, user := range users {
		list[i] = models.UserListItem{
			ID:       user.ID,
			Username: user.Username,
			Role:     user.Role,
			Assigned: user.AssignedToID != nil,
		}
	}

	return list, nil
}
