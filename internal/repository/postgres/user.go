package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"saves/internal/domain"
	"saves/internal/domain/models"
	"saves/internal/domain/repositories"
)

// PostgresUserRepository implements the UserRepository interface
type PostgresUserRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewUserRepository creates a new user repository
func NewUserRepository(config *RepositoryConfig) repositories.UserRepository {
	return &PostgresUserRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a profile row. The username unique constraint is the only
// guard against races; a violation surfaces as ConflictError.
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, username, name, image, is_public, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at
	`, r.tables.Users)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		user.ID,
		strings.ToLower(user.Username),
		user.Name,
		user.Image,
		user.IsPublic,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      "username already taken",
				ResourceType: "user",
			}
		}
		return fmt.Errorf("create user: %w", err)
	}

	user.Username = strings.ToLower(user.Username)
	return nil
}

// GetByID retrieves a profile by user ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT id, username, name, image, is_public, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Users)

	var user models.User
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.Name,
		&user.Image,
		&user.IsPublic,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

// GetByUsername retrieves a profile by username, case-insensitively
func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT id, username, name, image, is_public, created_at, updated_at
		FROM %s
		WHERE username = $1
	`, r.tables.Users)

	var user models.User
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, strings.ToLower(username)).Scan(
		&user.ID,
		&user.Username,
		&user.Name,
		&user.Image,
		&user.IsPublic,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("user %q: %w", username, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}

	return &user, nil
}

// Update applies a partial profile update; nil fields keep their value
func (r *PostgresUserRepository) Update(ctx context.Context, id string, update *repositories.UserUpdate) error {
	var username *string
	if update.Username != nil {
		lower := strings.ToLower(*update.Username)
		username = &lower
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET name = COALESCE($1, name),
		    username = COALESCE($2, username),
		    is_public = COALESCE($3, is_public),
		    updated_at = NOW()
		WHERE id = $4
	`, r.tables.Users)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, update.Name, username, update.IsPublic, id)
	if err != nil {
		if IsPgDuplicateError(err) {
			// Lost the username race; resolved after the fact, not pre-checked
			return &domain.ConflictError{
				Message:      "username already taken",
				ResourceType: "user",
			}
		}
		return fmt.Errorf("update user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// UsernameExists reports whether a username is taken
func (r *PostgresUserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (SELECT 1 FROM %s WHERE username = $1)
	`, r.tables.Users)

	var exists bool
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, strings.ToLower(username)).Scan(&exists); err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}

	return exists, nil
}
