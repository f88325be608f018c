package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"saves/internal/domain"
	"saves/internal/domain/models"
	"saves/internal/domain/repositories"
)

// PostgresCollectionRepository implements the CollectionRepository interface
type PostgresCollectionRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewCollectionRepository creates a new collection repository
func NewCollectionRepository(config *RepositoryConfig) repositories.CollectionRepository {
	return &PostgresCollectionRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const collectionColumns = "id, name, visibility, type, parent_id, user_id, created_at, updated_at"

func scanCollection(row interface{ Scan(...interface{}) error }) (*models.Collection, error) {
	var c models.Collection
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Visibility,
		&c.Type,
		&c.ParentID,
		&c.UserID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create creates a new collection
func (r *PostgresCollectionRepository) Create(ctx context.Context, collection *models.Collection) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, visibility, type, parent_id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`, r.tables.Collections)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		collection.Name,
		collection.Visibility,
		collection.Type,
		collection.ParentID,
		collection.UserID,
	).Scan(&collection.ID, &collection.CreatedAt, &collection.UpdatedAt)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("%w: invalid parent folder", domain.ErrValidation)
		}
		return fmt.Errorf("create collection: %w", err)
	}

	return nil
}

// GetByID retrieves a collection by ID regardless of owner
func (r *PostgresCollectionRepository) GetByID(ctx context.Context, id string) (*models.Collection, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, collectionColumns, r.tables.Collections)

	executor := GetExecutor(ctx, r.pool)
	collection, err := scanCollection(executor.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("collection %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get collection: %w", err)
	}

	return collection, nil
}

// GetOwned retrieves a collection owned by userID
func (r *PostgresCollectionRepository) GetOwned(ctx context.Context, id, userID string) (*models.Collection, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, collectionColumns, r.tables.Collections)

	executor := GetExecutor(ctx, r.pool)
	collection, err := scanCollection(executor.QueryRow(ctx, query, id, userID))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("collection %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get owned collection: %w", err)
	}

	return collection, nil
}

// ListChildren lists immediate child folders of parentID for an owner,
// filtered to type USER, optionally public only, oldest first
func (r *PostgresCollectionRepository) ListChildren(ctx context.Context, userID string, parentID *string, publicOnly bool) ([]models.Collection, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1
		  AND type = 'USER'
		  AND parent_id IS NOT DISTINCT FROM $2
	`, collectionColumns, r.tables.Collections)

	args := []interface{}{userID, parentID}
	if publicOnly {
		query += ` AND visibility = 'PUBLIC'`
	}
	query += ` ORDER BY created_at ASC`

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list collection children: %w", err)
	}
	defer rows.Close()

	collections := []models.Collection{}
	for rows.Next() {
		collection, err := scanCollection(rows)
		if err != nil {
			return nil, fmt.Errorf("scan collection: %w", err)
		}
		collections = append(collections, *collection)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate collections: %w", err)
	}

	return collections, nil
}

// GetAllByUser retrieves all USER collections of a user as a flat list
func (r *PostgresCollectionRepository) GetAllByUser(ctx context.Context, userID string) ([]models.Collection, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1 AND type = 'USER'
		ORDER BY created_at ASC
	`, collectionColumns, r.tables.Collections)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("get all collections: %w", err)
	}
	defer rows.Close()

	collections := []models.Collection{}
	for rows.Next() {
		collection, err := scanCollection(rows)
		if err != nil {
			return nil, fmt.Errorf("scan collection: %w", err)
		}
		collections = append(collections, *collection)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate collections: %w", err)
	}

	return collections, nil
}
