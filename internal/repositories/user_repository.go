package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/secretsanta/backend/internal/models"
	"go.uber.org/zap"
)

// mysqlDuplicateEntry is the MySQL error number for unique key violations
const mysqlDuplicateEntry = 1062

// userRepository provides access to the users table
type userRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, logger *zap.Logger) *userRepository {
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, password, role, wishlist)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, user.Username, user.Password, user.Role, user.Wishlist)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return models.ErrDuplicateUsername
		}
		r.logger.Error("failed to create user", zap.Error(err))
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get last insert id", zap.Error(err))
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	user.ID = int(id)
	return nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, userID int) (*models.User, error) {
	query := `
		SELECT id, username, password, role, wishlist, assigned_to_id
		FROM users
		WHERE id = ?
	`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&user.ID,
		&user.Username,
		&user.Password,
		&user.Role,
		&user.Wishlist,
		&user.AssignedToID,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to get user by id", zap.Error(err), zap.Int("userID", userID))
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// GetByUsername retrieves a user by exact, case-sensitive username
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	// BINARY forces a case-sensitive match regardless of column collation
	query := `
		SELECT id, username, password, role, wishlist, assigned_to_id
		FROM users
		WHERE BINARY username = ?
		LIMIT 1
	`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.Password,
		&user.Role,
		&user.Wishlist,
		&user.AssignedToID,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to get user by username", zap.Error(err), zap.String("username", username))
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user, nil
}

// GetAll retrieves every user ordered by id
func (r *userRepository) GetAll(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT id, username, password, role, wishlist, assigned_to_id
		FROM users
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to list users", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

// GetParticipants retrieves the roster: every user with the participant role
func (r *userRepository) GetParticipants(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT id, username, password, role, wishlist, assigned_to_id
		FROM users
		WHERE role = ?
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, models.RoleParticipant)
	if err != nil {
		r.logger.Error("failed to list participants", zap.Error(err))
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

// Delete removes a user by ID. Assignments pointing at the deleted user are
// left in place; read paths tolerate the dangling reference.
func (r *userRepository) Delete(ctx context.Context, userID int) error {
	query := `DELETE FROM users WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		r.logger.Error("failed to delete user", zap.Error(err), zap.Int("userID", userID))
		return fmt.Errorf("failed to delete user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return models.ErrNotFound
	}

	return nil
}

// UpdateWishlist overwrites the wishlist text for the given user
func (r *userRepository) UpdateWishlist(ctx context.Context, userID int, wishlist string) error {
	query := `UPDATE users SET wishlist = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, wishlist, userID)
	if err != nil {
		r.logger.Error("failed to update wishlist", zap.Error(err), zap.Int("userID", userID))
		return fmt.Errorf("failed to update wishlist: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		// MySQL reports 0 affected rows for no-op updates too, so confirm
		// the user actually exists before reporting not found
		if _, err := r.GetByID(ctx, userID); err != nil {
			return err
		}
	}

	return nil
}

// UpdateAssignment sets or clears the giver's recipient reference
func (r *userRepository) UpdateAssignment(ctx context.Context, userID int, assignedToID *int) error {
	query := `UPDATE users SET assigned_to_id = ? WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, assignedToID, userID); err != nil {
		r.logger.Error("failed to update assignment", zap.Error(err), zap.Int("userID", userID))
		return fmt.Errorf("failed to update assignment: %w", err)
	}

	return nil
}

// ClearAssignments nulls every assignment reference
func (r *userRepository) ClearAssignments(ctx context.Context) error {
	query := `UPDATE users SET assigned_to_id = NULL WHERE assigned_to_id IS NOT NULL`

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		r.logger.Error("failed to clear assignments", zap.Error(err))
		return fmt.Errorf("failed to clear assignments: %w", err)
	}

	return nil
}

// CountUsers returns the total number of users
func (r *userRepository) CountUsers(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM users`

	var count int
	if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		r.logger.Error("failed to count users", zap.Error(err))
		return 0, fmt.Errorf("failed to count users: %w", err)
	}

	return count, nil
}

// ExistsByUsername checks if a user exists with the given username (case-sensitive)
func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS(SELECT * FROM users WHERE BINARY username = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, username).Scan(&exists); err != nil {
		r.logger.Error("failed to check username existence", zap.Error(err), zap.String("username", username))
		return false, fmt.Errorf("failed to check username existence: %w", err)
	}

	return exists, nil
}

// scanUsers reads user rows into a slice
func scanUsers(rows *sql.Rows) ([]models.User, error) {
	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Password,
			&user.Role,
			&user.Wishlist,
			&user.AssignedToID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user rows: %w", err)
	}

	return users, nil
}
