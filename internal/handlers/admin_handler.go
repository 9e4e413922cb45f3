package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/secretsanta/backend/internal/models"
	"go.uber.org/zap"
)

// RosterService is the interface that wraps methods for admin roster operations.
type RosterService interface {
	// Method CreateParticipant adds a participant to the roster.
	//
	// "req" parameter contains username and password.
	//
	// If the roster is locked, models.ErrRosterLocked will be returned.
	// If the username already exists, models.ErrDuplicateUsername will be returned.
	CreateParticipant(ctx context.Context, req *models.CreateParticipantRequest) (*models.User, error)
	// Method DeleteParticipant removes a participant from the roster.
	//
	// If the roster is locked, models.ErrRosterLocked will be returned.
	// If no user with such ID exists, models.ErrNotFound will be returned.
	// If the target is the administrator, models.ErrCannotDeleteAdmin will be returned.
	DeleteParticipant(ctx context.Context, userID int) error
	// Method ListUsers returns the full roster as list items.
	//
	// If some error occurs during the query, the error will be returned together with "nil" value.
	ListUsers(ctx context.Context) ([]models.UserListItem, error)
}

// PairingService is the interface that wraps the pairing engine operations.
type PairingService interface {
	// Method Shuffle computes and persists a derangement over the roster and
	// flips the shuffled flag.
	//
	// With fewer than 2 participants, models.ErrInsufficientParticipants will be returned.
	// If the roster is already shuffled, models.ErrRosterLocked will be returned.
	// If a concurrent shuffle or reset won the race, models.ErrShuffleConflict will be returned.
	Shuffle(ctx context.Context) error
	// Method Reset clears every assignment and the shuffled flag. Unconditional.
	Reset(ctx context.Context) error
	// Method IsShuffled reports whether assignments are currently live.
	IsShuffled(ctx context.Context) (bool, error)
}

// AdminHandler handles admin-facing HTTP requests
type AdminHandler struct {
	BaseHandler
	rosterService  RosterService
	pairingService PairingService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	rosterService RosterService,
	pairingService PairingService,
	logger *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		BaseHandler:    BaseHandler{Logger: logger},
		rosterService:  rosterService,
		pairingService: pairingService,
	}
}

// RegisterRoutes registers all admin handler routes
// Note: This assumes the router is already scoped to /api/v1
func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Get("/users", h.ListUsers)
		r.Post("/users", h.CreateParticipant)
		r.Delete("/users/{id}", h.DeleteParticipant)
		r.Get("/game", h.GetGameState)
		r.Post("/game/shuffle", h.Shuffle)
		r.Post("/game/reset", h.Reset)
	})
}

// ListUsers handles GET /admin/users
// @Summary List users
// @Description Get the full roster including the administrator.
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.UserListItem "Roster"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.rosterService.ListUsers(r.Context())
	if err != nil {
		h.Logger.Error("failed to list users", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, users)
}

// CreateParticipant handles POST /admin/users
// @Summary Create participant
// @Description Add a participant to the roster. Rejected while assignments are live.
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.CreateParticipantRequest true "Participant credentials"
// @Success 201 {object} models.UserListItem "Participant created"
// @Failure 400 {object} map[string]string "Invalid request body or duplicate username"
// @Failure 409 {object} map[string]string "Roster is locked"
// @Router /admin/users [post]
func (h *AdminHandler) CreateParticipant(w http.ResponseWriter, r *http.Request) {
	var req models.CreateParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" {
		h.RespondError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := h.rosterService.CreateParticipant(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrRosterLocked):
			h.RespondError(w, http.StatusConflict, err.Error())
		case errors.Is(err, models.ErrDuplicateUsername):
			h.RespondError(w, http.StatusBadRequest, err.Error())
		default:
			h.Logger.Error("failed to create participant", zap.Error(err))
			h.RespondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	h.RespondJSON(w, http.StatusCreated, models.UserListItem{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
}

// DeleteParticipant handles DELETE /admin/users/{id}
// @Summary Delete participant
// @Description Remove a participant from the roster. Rejected while assignments are live.
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string "Participant deleted"
// @Failure 400 {object} map[string]string "Invalid id or target is the administrator"
// @Failure 404 {object} map[string]string "User not found"
// @Failure 409 {object} map[string]string "Roster is locked"
// @Router /admin/users/{id} [delete]
func (h *AdminHandler) DeleteParticipant(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.rosterService.DeleteParticipant(r.Context(), userID); err != nil {
		switch {
		case errors.Is(err, models.ErrRosterLocked):
			h.RespondError(w, http.StatusConflict, err.Error())
		case errors.Is(err, models.ErrNotFound):
			h.RespondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, models.ErrCannotDeleteAdmin):
			h.RespondError(w, http.StatusBadRequest, err.Error())
		default:
			h.Logger.Error("failed to delete participant", zap.Int("userID", userID), zap.Error(err))
			h.RespondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "participant deleted"})
}

// GetGameState handles GET /admin/game
// @Summary Get game state
// @Description Report whether assignments are currently live.
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.GameStateResponse "Game state"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/game [get]
func (h *AdminHandler) GetGameState(w http.ResponseWriter, r *http.Request) {
	shuffled, err := h.pairingService.IsShuffled(r.Context())
	if err != nil {
		h.Logger.Error("failed to get game state", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, models.GameStateResponse{IsShuffled: shuffled})
}

// Shuffle handles POST /admin/game/shuffle
// @Summary Shuffle the roster
// @Description Compute and persist a random giver-to-recipient cycle over the roster and lock it.
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]string "Roster shuffled"
// @Failure 400 {object} map[string]string "Fewer than 2 participants"
// @Failure 409 {object} map[string]string "Already shuffled or concurrent shuffle"
// @Router /admin/game/shuffle [post]
func (h *AdminHandler) Shuffle(w http.ResponseWriter, r *http.Request) {
	if err := h.pairingService.Shuffle(r.Context()); err != nil {
		switch {
		case errors.Is(err, models.ErrInsufficientParticipants):
			h.RespondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, models.ErrRosterLocked), errors.Is(err, models.ErrShuffleConflict):
			h.RespondError(w, http.StatusConflict, err.Error())
		default:
			h.Logger.Error("failed to shuffle roster", zap.Error(err))
			h.RespondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "roster shuffled"})
}

// Reset handles POST /admin/game/reset
// @Summary Reset the game
// @Description Clear every assignment and unlock the roster.
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]string "Game reset"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/game/reset [post]
func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.pairingService.Reset(r.Context()); err != nil {
		h.Logger.Error("failed to reset game", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "game reset"})
}
