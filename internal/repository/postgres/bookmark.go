package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"saves/internal/domain"
	"saves/internal/domain/models"
	"saves/internal/domain/repositories"
)

// PostgresBookmarkRepository implements the BookmarkRepository interface
type PostgresBookmarkRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewBookmarkRepository creates a new bookmark repository
func NewBookmarkRepository(config *RepositoryConfig) repositories.BookmarkRepository {
	return &PostgresBookmarkRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const bookmarkColumns = "id, url, domain, title, favicon_url, user_id, collection_id, is_archived, created_at"

func scanBookmark(row interface{ Scan(...interface{}) error }) (*models.Bookmark, error) {
	var b models.Bookmark
	err := row.Scan(
		&b.ID,
		&b.URL,
		&b.Domain,
		&b.Title,
		&b.FaviconURL,
		&b.UserID,
		&b.CollectionID,
		&b.IsArchived,
		&b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserts a single bookmark
func (r *PostgresBookmarkRepository) Create(ctx context.Context, bookmark *models.Bookmark) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (url, domain, title, favicon_url, user_id, collection_id, is_archived, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, false, NOW())
		RETURNING id, created_at
	`, r.tables.Bookmarks)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		bookmark.URL,
		bookmark.Domain,
		bookmark.Title,
		bookmark.FaviconURL,
		bookmark.UserID,
		bookmark.CollectionID,
	).Scan(&bookmark.ID, &bookmark.CreatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("bookmark %q: %w", bookmark.URL, domain.ErrConflict)
		}
		return fmt.Errorf("create bookmark: %w", err)
	}

	return nil
}

// CreateMany bulk-inserts bookmarks, skipping (user, url) duplicates
func (r *PostgresBookmarkRepository) CreateMany(ctx context.Context, bookmarks []models.Bookmark) (int, error) {
	if len(bookmarks) == 0 {
		return 0, nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (url, domain, title, favicon_url, user_id, collection_id, is_archived, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, false, NOW())
		ON CONFLICT (user_id, url) DO NOTHING
	`, r.tables.Bookmarks)

	executor := GetExecutor(ctx, r.pool)
	created := 0
	for i := range bookmarks {
		b := &bookmarks[i]
		result, err := executor.Exec(ctx, query,
			b.URL,
			b.Domain,
			b.Title,
			b.FaviconURL,
			b.UserID,
			b.CollectionID,
		)
		if err != nil {
			return created, fmt.Errorf("create bookmarks: %w", err)
		}
		created += int(result.RowsAffected())
	}

	return created, nil
}

// ListByCollection lists non-archived bookmarks of a user in a collection,
// newest first
func (r *PostgresBookmarkRepository) ListByCollection(ctx context.Context, userID string, collectionID *string) ([]models.Bookmark, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1
		  AND collection_id IS NOT DISTINCT FROM $2
		  AND is_archived = false
		ORDER BY created_at DESC
	`, bookmarkColumns, r.tables.Bookmarks)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID, collectionID)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	defer rows.Close()

	bookmarks := []models.Bookmark{}
	for rows.Next() {
		bookmark, err := scanBookmark(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bookmark: %w", err)
		}
		bookmarks = append(bookmarks, *bookmark)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookmarks: %w", err)
	}

	return bookmarks, nil
}

// FindByURL finds a non-archived bookmark by canonical URL, or nil
func (r *PostgresBookmarkRepository) FindByURL(ctx context.Context, userID, url string) (*models.Bookmark, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1 AND url = $2 AND is_archived = false
	`, bookmarkColumns, r.tables.Bookmarks)

	executor := GetExecutor(ctx, r.pool)
	bookmark, err := scanBookmark(executor.QueryRow(ctx, query, userID, url))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find bookmark by url: %w", err)
	}

	return bookmark, nil
}

// Move re-files a non-archived bookmark into another collection
func (r *PostgresBookmarkRepository) Move(ctx context.Context, id, userID string, collectionID *string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET collection_id = $1
		WHERE id = $2 AND user_id = $3 AND is_archived = false
	`, r.tables.Bookmarks)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, collectionID, id, userID)
	if err != nil {
		return fmt.Errorf("move bookmark: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("bookmark %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Archive soft-deletes a bookmark
func (r *PostgresBookmarkRepository) Archive(ctx context.Context, id, userID string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET is_archived = true
		WHERE id = $1 AND user_id = $2 AND is_archived = false
	`, r.tables.Bookmarks)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("archive bookmark: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("bookmark %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Delete hard-deletes a bookmark
func (r *PostgresBookmarkRepository) Delete(ctx context.Context, id, userID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Bookmarks)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("bookmark %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
