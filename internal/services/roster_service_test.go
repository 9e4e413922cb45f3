package services

import (
	"context"
	"testing"

	"github.com/secretsanta/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// mockRosterUserRepository is a mock implementation of RosterUserRepository
type mockRosterUserRepository struct {
	users        []models.User
	user         *models.User
	exists       bool
	err          error
	createErr    error
	deleteErr    error
	existsErr    error
	createdUser  *models.User
	deletedID    int
	deleteCalled bool
}

func (m *mockRosterUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = 7
	m.createdUser = user
	return nil
}

func (m *mockRosterUserRepository) GetByID(ctx context.Context, userID int) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.user == nil {
		return nil, models.ErrNotFound
	}
	return m.user, nil
}

func (m *mockRosterUserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.users, nil
}

func (m *mockRosterUserRepository) Delete(ctx context.Context, userID int) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleteCalled = true
	m.deletedID = userID
	return nil
}

func (m *mockRosterUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	return m.exists, nil
}

func TestRosterService_CreateParticipant(t *testing.T) {
	tests := []struct {
		name          string
		req           *models.CreateParticipantRequest
		userRepo      *mockRosterUserRepository
		gameState     *mockGameStateRepository
		expectedError error
		expectAnyErr  bool
	}{
		{
			name:      "success",
			req:       &models.CreateParticipantRequest{Username: "dave", Password: "x"},
			userRepo:  &mockRosterUserRepository{},
			gameState: &mockGameStateRepository{},
		},
		{
			name:          "roster locked",
			req:           &models.CreateParticipantRequest{Username: "dave", Password: "x"},
			userRepo:      &mockRosterUserRepository{},
			gameState:     &mockGameStateRepository{shuffled: true},
			expectedError: models.ErrRosterLocked,
		},
		{
			name:          "duplicate username",
			req:           &models.CreateParticipantRequest{Username: "dave", Password: "x"},
			userRepo:      &mockRosterUserRepository{exists: true},
			gameState:     &mockGameStateRepository{},
			expectedError: models.ErrDuplicateUsername,
		},
		{
			name:          "duplicate username regardless of password",
			req:           &models.CreateParticipantRequest{Username: "dave", Password: "completely-different"},
			userRepo:      &mockRosterUserRepository{exists: true},
			gameState:     &mockGameStateRepository{},
			expectedError: models.ErrDuplicateUsername,
		},
		{
			name:         "empty username",
			req:          &models.CreateParticipantRequest{Username: "   ", Password: "x"},
			userRepo:     &mockRosterUserRepository{},
			gameState:    &mockGameStateRepository{},
			expectAnyErr: true,
		},
		{
			name:         "empty password",
			req:          &models.CreateParticipantRequest{Username: "dave", Password: ""},
			userRepo:     &mockRosterUserRepository{},
			gameState:    &mockGameStateRepository{},
			expectAnyErr: true,
		},
		{
			name:          "create error passes through",
			req:           &models.CreateParticipantRequest{Username: "dave", Password: "x"},
			userRepo:      &mockRosterUserRepository{createErr: models.ErrDuplicateUsername},
			gameState:     &mockGameStateRepository{},
			expectedError: models.ErrDuplicateUsername,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewRosterService(tt.userRepo, tt.gameState, zaptest.NewLogger(t))

			user, err := service.CreateParticipant(context.Background(), tt.req)

			switch {
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			case tt.expectAnyErr:
				assert.Error(t, err)
				assert.Nil(t, user)
			default:
				require.NoError(t, err)
				assert.Equal(t, 7, user.ID)
				assert.Equal(t, models.RoleParticipant, user.Role)
				assert.Empty(t, user.Wishlist)
				assert.Nil(t, user.AssignedToID)
			}
		})
	}
}

func TestRosterService_CreateParticipant_AfterReset(t *testing.T) {
	// Locked while shuffled, permitted again after reset
	userRepo := &mockRosterUserRepository{}
	gameState := &mockGameStateRepository{shuffled: true, version: 1}
	service := NewRosterService(userRepo, gameState, zaptest.NewLogger(t))

	req := &models.CreateParticipantRequest{Username: "dave", Password: "x"}

	_, err := service.CreateParticipant(context.Background(), req)
	assert.ErrorIs(t, err, models.ErrRosterLocked)

	require.NoError(t, gameState.Reset(context.Background()))

	user, err := service.CreateParticipant(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "dave", user.Username)
}

func TestRosterService_DeleteParticipant(t *testing.T) {
	tests := []struct {
		name          string
		userRepo      *mockRosterUserRepository
		gameState     *mockGameStateRepository
		expectedError error
	}{
		{
			name:      "success",
			userRepo:  &mockRosterUserRepository{user: &models.User{ID: 4, Role: models.RoleParticipant}},
			gameState: &mockGameStateRepository{},
		},
		{
			name:          "roster locked",
			userRepo:      &mockRosterUserRepository{user: &models.User{ID: 4, Role: models.RoleParticipant}},
			gameState:     &mockGameStateRepository{shuffled: true},
			expectedError: models.ErrRosterLocked,
		},
		{
			name:          "not found",
			userRepo:      &mockRosterUserRepository{},
			gameState:     &mockGameStateRepository{},
			expectedError: models.ErrNotFound,
		},
		{
			name:          "administrator is not deletable",
			userRepo:      &mockRosterUserRepository{user: &models.User{ID: 1, Role: models.RoleAdmin}},
			gameState:     &mockGameStateRepository{},
			expectedError: models.ErrCannotDeleteAdmin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewRosterService(tt.userRepo, tt.gameState, zaptest.NewLogger(t))

			err := service.DeleteParticipant(context.Background(), 4)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.False(t, tt.userRepo.deleteCalled)
			} else {
				require.NoError(t, err)
				assert.True(t, tt.userRepo.deleteCalled)
				assert.Equal(t, 4, tt.userRepo.deletedID)
			}
		})
	}
}

func TestRosterService_ListUsers(t *testing.T) {
	assignedTo := 3
	userRepo := &mockRosterUserRepository{
		users: []models.User{
			{ID: 1, Username: "admin", Role: models.RoleAdmin},
			{ID: 2, Username: "alice", Role: models.RoleParticipant, AssignedToID: &assignedTo},
			{ID: 3, Username: "bob", Role: models.RoleParticipant},
		},
	}
	service := NewRosterService(userRepo, &mockGameStateRepository{}, zaptest.NewLogger(t))

	list, err := service.ListUsers(context.Background())

	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, models.UserListItem{ID: 1, Username: "admin", Role: models.RoleAdmin}, list[0])
	assert.Equal(t, models.UserListItem{ID: 2, Username: "alice", Role: models.RoleParticipant, Assigned: true}, list[1])
	assert.Equal(t, models.UserListItem{ID: 3, Username: "bob", Role: models.RoleParticipant}, list[2])
}
