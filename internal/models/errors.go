package models

import "errors"

// Typed failures surfaced by the service layer. Handlers classify them with
// errors.Is; anything else is treated as a store failure and propagated as-is.
var (
	// ErrNotFound is returned when a lookup by id resolves to nothing.
	ErrNotFound = errors.New("user not found")
	// ErrNoMatch is returned when authentication finds no exact credential match.
	ErrNoMatch = errors.New("invalid credentials")
	// ErrDuplicateUsername is returned when creating a user whose username
	// already exists (case-sensitive).
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrInsufficientParticipants is returned when a shuffle is requested with
	// fewer than two participants on the roster.
	ErrInsufficientParticipants = errors.New("at least 2 participants are required to shuffle")
	// ErrRosterLocked is returned when a roster mutation or re-shuffle is
	// attempted while assignments are live.
	ErrRosterLocked = errors.New("roster is locked: assignments have been shuffled")
	// ErrShuffleConflict is returned when the game state changed between the
	// shuffle's snapshot and its commit (a concurrent shuffle or reset won).
	ErrShuffleConflict = errors.New("game state changed during shuffle")
	// ErrCannotDeleteAdmin is returned when a delete targets the administrator.
	ErrCannotDeleteAdmin = errors.New("the administrator account cannot be deleted")
)
