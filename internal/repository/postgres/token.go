package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"saves/internal/domain"
	"saves/internal/domain/models"
	"saves/internal/domain/repositories"
)

// PostgresExtensionTokenRepository implements the ExtensionTokenRepository interface
type PostgresExtensionTokenRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewExtensionTokenRepository creates a new extension token repository
func NewExtensionTokenRepository(config *RepositoryConfig) repositories.ExtensionTokenRepository {
	return &PostgresExtensionTokenRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create persists a freshly issued token
func (r *PostgresExtensionTokenRepository) Create(ctx context.Context, token *models.ExtensionToken) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (token, user_id, revoked, last_used_collection_id, created_at)
		VALUES ($1, $2, false, NULL, NOW())
		RETURNING id, created_at
	`, r.tables.ExtensionTokens)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, token.Token, token.UserID).
		Scan(&token.ID, &token.CreatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			// uuid collision; practically unreachable but the constraint is there
			return fmt.Errorf("extension token: %w", domain.ErrConflict)
		}
		return fmt.Errorf("create extension token: %w", err)
	}

	return nil
}

// GetByToken retrieves a token record by its opaque value
func (r *PostgresExtensionTokenRepository) GetByToken(ctx context.Context, token string) (*models.ExtensionToken, error) {
	query := fmt.Sprintf(`
		SELECT id, token, user_id, revoked, last_used_collection_id, created_at
		FROM %s
		WHERE token = $1
	`, r.tables.ExtensionTokens)

	var record models.ExtensionToken
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, token).Scan(
		&record.ID,
		&record.Token,
		&record.UserID,
		&record.Revoked,
		&record.LastUsedCollectionID,
		&record.CreatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("extension token: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get extension token: %w", err)
	}

	return &record, nil
}

// RevokeAllForUser marks every token of a user revoked
func (r *PostgresExtensionTokenRepository) RevokeAllForUser(ctx context.Context, userID string) (int, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET revoked = true
		WHERE user_id = $1 AND revoked = false
	`, r.tables.ExtensionTokens)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("revoke extension tokens: %w", err)
	}

	return int(result.RowsAffected()), nil
}

// SetLastUsedCollection updates the last-used folder cache on a token
func (r *PostgresExtensionTokenRepository) SetLastUsedCollection(ctx context.Context, id string, collectionID *string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET last_used_collection_id = $1
		WHERE id = $2
	`, r.tables.ExtensionTokens)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, collectionID, id)
	if err != nil {
		return fmt.Errorf("set last used collection: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("extension token %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
