package models

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateParticipantRequest represents an admin request to add a participant
type CreateParticipantRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateWishlistRequest represents a participant's wishlist overwrite
type UpdateWishlistRequest struct {
	Wishlist string `json:"wishlist"`
}

// UserListItem is a roster entry in the admin user list
type UserListItem struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Assigned bool   `json:"assigned"`
}

// GameStateResponse reports whether assignments are live
type GameStateResponse struct {
	IsShuffled bool `json:"is_shuffled"`
}

// AssignmentResponse carries the recipient view for a giver, or no recipient
// when no assignment exists
type AssignmentResponse struct {
	Assigned  bool        `json:"assigned"`
	Recipient *UserPublic `json:"recipient,omitempty"`
}
