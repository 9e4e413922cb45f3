package models

type Role int

// Role constants
const (
	RoleParticipant Role = 1
	RoleAdmin       Role = 2
)

// User represents a participant or administrator in the gift exchange
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"` // Never serialize credentials
	Role     Role   `json:"role"`
	Wishlist string `json:"wishlist"`
	// AssignedToID is a weak reference to the recipient this user gifts.
	// There is no foreign key behind it; a dangling value is read as "no assignment".
	AssignedToID *int `json:"assigned_to_id,omitempty"`
}

// IsAdmin reports whether the user has the administrator role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserPublic is the view of a user exposed to their giver: no credentials, no assignment
type UserPublic struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Wishlist string `json:"wishlist"`
}

// Public returns the credential-free view of the user
func (u *User) Public() *UserPublic {
	return &UserPublic{
		ID:       u.ID,
		Username: u.Username,
		Wishlist: u.Wishlist,
	}
}
