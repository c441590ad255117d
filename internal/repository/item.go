package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vknyazev/passvault/internal/models"
)

// itemColumns is the canonical column list scanned by scanItem.
const itemColumns = `id, vault_id, user_id, type, name, favorite, data, created_at, updated_at`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (models.Item, error) {
	var it models.Item
	err := row.Scan(&it.ID, &it.VaultID, &it.UserID, &it.Type, &it.Name,
		&it.Favorite, &it.Data, &it.CreatedAt, &it.UpdatedAt)
	return it, err
}

// PostgresItemRepository implements item persistence against a PostgreSQL
// database.
type PostgresItemRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresItemRepository creates a new PostgresItemRepository using the
// provided *sql.DB.
func NewPostgresItemRepository(db *sql.DB) *PostgresItemRepository {
	return &PostgresItemRepository{DB: db}
}

// GetByVault fetches all items in the given vault belonging to the given
// user, oldest first.
func (r *PostgresItemRepository) GetByVault(ctx context.Context, vaultID, userID string) ([]models.Item, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+itemColumns+` FROM items
		WHERE vault_id = $1 AND user_id = $2 ORDER BY created_at, id
	`, vaultID, userID)
	if err != nil {
		return nil, fmt.Errorf("get items by vault: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// Create inserts a new item.
func (r *PostgresItemRepository) Create(ctx context.Context, item *models.Item) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO items (id, vault_id, user_id, type, name, favorite, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, item.ID, item.VaultID, item.UserID, item.Type, item.Name,
		item.Favorite, string(item.Data), item.CreatedAt, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByIDAndUser fetches a single item by id, scoped to the owning user.
// Returns ErrNotFound when the item is absent or owned by someone else.
func (r *PostgresItemRepository) GetByIDAndUser(ctx context.Context, id, userID string) (*models.Item, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+itemColumns+` FROM items WHERE id = $1 AND user_id = $2
	`, id, userID)

	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

// Update rewrites the mutable columns of an item. The caller is expected
// to have verified ownership and refreshed UpdatedAt.
func (r *PostgresItemRepository) Update(ctx context.Context, item *models.Item) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE items SET type = $1, name = $2, favorite = $3, data = $4, updated_at = $5
		WHERE id = $6 AND user_id = $7
	`, item.Type, item.Name, item.Favorite, string(item.Data), item.UpdatedAt,
		item.ID, item.UserID)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// Delete removes an item by id. Association rows go with it via the
// ON DELETE CASCADE constraint.
func (r *PostgresItemRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// GetByFolder fetches all items linked to the given folder that belong to
// the given user. The user predicate is a defensive double-check on top of
// the folder ownership check done by the caller.
func (r *PostgresItemRepository) GetByFolder(ctx context.Context, folderID, userID string) ([]models.Item, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT i.id, i.vault_id, i.user_id, i.type, i.name, i.favorite, i.data, i.created_at, i.updated_at
		FROM items i
		JOIN item_folders f ON i.id = f.item_id
		WHERE f.folder_id = $1 AND i.user_id = $2 ORDER BY i.created_at, i.id
	`, folderID, userID)
	if err != nil {
		return nil, fmt.Errorf("get items by folder: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// Search fetches the user's items whose name contains query as a substring.
// An empty query matches every item. itemType, when non-empty, is an exact
// filter on the type column.
func (r *PostgresItemRepository) Search(ctx context.Context, userID, query, itemType string) ([]models.Item, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if itemType != "" {
		rows, err = r.DB.QueryContext(ctx, `
			SELECT `+itemColumns+` FROM items
			WHERE user_id = $1 AND name LIKE '%' || $2 || '%' AND type = $3
			ORDER BY created_at, id
		`, userID, query, itemType)
	} else {
		rows, err = r.DB.QueryContext(ctx, `
			SELECT `+itemColumns+` FROM items
			WHERE user_id = $1 AND name LIKE '%' || $2 || '%'
			ORDER BY created_at, id
		`, userID, query)
	}
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

func collectItems(rows *sql.Rows) ([]models.Item, error) {
	var items []models.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
