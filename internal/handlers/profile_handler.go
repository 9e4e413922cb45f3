package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secretsanta/backend/internal/auth"
	"github.com/secretsanta/backend/internal/models"
	"go.uber.org/zap"
)

// ProfileService is the interface that wraps methods for participant profile operations.
type ProfileService interface {
	// Method Me returns the authenticated user's own record.
	//
	// If user with such ID does not exist, models.ErrNotFound will be returned together with "nil" value.
	Me(ctx context.Context, userID int) (*models.User, error)
	// Method SetWishlist overwrites the owner's wishlist text.
	//
	// If user with such ID does not exist, models.ErrNotFound will be returned.
	SetWishlist(ctx context.Context, userID int, wishlist string) error
}

// AssignmentService is the interface that wraps the assignment read the
// participant view needs.
type AssignmentService interface {
	// Method AssignmentFor resolves the recipient assigned to the given user.
	//
	// A nil assignment and a dangling reference both return (nil, nil), never an error.
	AssignmentFor(ctx context.Context, userID int) (*models.UserPublic, error)
}

// ProfileHandler handles participant-facing HTTP requests
type ProfileHandler struct {
	BaseHandler
	profileService    ProfileService
	assignmentService AssignmentService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(
	profileService ProfileService,
	assignmentService AssignmentService,
	logger *zap.Logger,
) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:       BaseHandler{Logger: logger},
		profileService:    profileService,
		assignmentService: assignmentService,
	}
}

// RegisterRoutes registers all profile handler routes
func (h *ProfileHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/profile", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.GetProfile)
		r.Put("/wishlist", h.UpdateWishlist)
		r.Get("/assignment", h.GetAssignment)
	})
}

// GetProfile handles GET /profile
// @Summary Get own profile
// @Description Get the authenticated user's profile (id, username, role, wishlist).
// @Tags profile
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.User "User profile"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 404 {object} map[string]string "User not found"
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := h.profileService.Me(r.Context(), userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			h.RespondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.Logger.Error("failed to get profile", zap.Int("userID", userID), zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, user)
}

// UpdateWishlist handles PUT /profile/wishlist
// @Summary Update wishlist
// @Description Overwrite the authenticated user's wishlist text.
// @Tags profile
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.UpdateWishlistRequest true "Wishlist text"
// @Success 200 {object} map[string]string "Wishlist updated"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Authentication required"
// @Router /profile/wishlist [put]
func (h *ProfileHandler) UpdateWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.UpdateWishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.profileService.SetWishlist(r.Context(), userID, req.Wishlist); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			h.RespondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.Logger.Error("failed to update wishlist", zap.Int("userID", userID), zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "wishlist updated"})
}

// GetAssignment handles GET /profile/assignment
// @Summary Get own assignment
// @Description Get the recipient assigned to the authenticated user, if any. Returns assigned=false when no assignment exists.
// @Tags profile
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.AssignmentResponse "Assignment"
// @Failure 401 {object} map[string]string "Authentication required"
// @Router /profile/assignment [get]
func (h *ProfileHandler) GetAssignment(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	recipient, err := h.assignmentService.AssignmentFor(r.Context(), userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			h.RespondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.Logger.Error("failed to get assignment", zap.Int("userID", userID), zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, models.AssignmentResponse{
		Assigned:  recipient != nil,
		Recipient: recipient,
	})
}
