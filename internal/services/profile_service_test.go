package services

import (
	"context"
	"testing"

	"github.com/secretsanta/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// mockProfileUserRepository is a mock implementation of ProfileUserRepository
type mockProfileUserRepository struct {
	user        *models.User
	err         error
	updateErr   error
	wishlist    string
	wishlistFor int
}

func (m *mockProfileUserRepository) GetByID(ctx context.Context, userID int) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.user == nil || m.user.ID != userID {
		return nil, models.ErrNotFound
	}
	return m.user, nil
}

func (m *mockProfileUserRepository) UpdateWishlist(ctx context.Context, userID int, wishlist string) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.wishlistFor = userID
	m.wishlist = wishlist
	return nil
}

func TestProfileService_Me(t *testing.T) {
	alice := &models.User{ID: 2, Username: "alice", Role: models.RoleParticipant, Wishlist: "socks"}

	t.Run("success", func(t *testing.T) {
		service := NewProfileService(&mockProfileUserRepository{user: alice}, zaptest.NewLogger(t))

		user, err := service.Me(context.Background(), 2)

		require.NoError(t, err)
		assert.Equal(t, alice, user)
	})

	t.Run("not found", func(t *testing.T) {
		service := NewProfileService(&mockProfileUserRepository{}, zaptest.NewLogger(t))

		user, err := service.Me(context.Background(), 2)

		assert.ErrorIs(t, err, models.ErrNotFound)
		assert.Nil(t, user)
	})
}

func TestProfileService_SetWishlist(t *testing.T) {
	t.Run("overwrites unconditionally", func(t *testing.T) {
		repo := &mockProfileUserRepository{}
		service := NewProfileService(repo, zaptest.NewLogger(t))

		err := service.SetWishlist(context.Background(), 2, "a red bicycle")

		require.NoError(t, err)
		assert.Equal(t, 2, repo.wishlistFor)
		assert.Equal(t, "a red bicycle", repo.wishlist)
	})

	t.Run("empty text is a valid overwrite", func(t *testing.T) {
		repo := &mockProfileUserRepository{wishlist: "old"}
		service := NewProfileService(repo, zaptest.NewLogger(t))

		err := service.SetWishlist(context.Background(), 2, "")

		require.NoError(t, err)
		assert.Empty(t, repo.wishlist)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		repo := &mockProfileUserRepository{updateErr: assert.AnError}
		service := NewProfileService(repo, zaptest.NewLogger(t))

		err := service.SetWishlist(context.Background(), 2, "anything")

		assert.ErrorIs(t, err, assert.AnError)
	})
}
