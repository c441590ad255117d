package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vknyazev/passvault/internal/models"
)

// PostgresFolderRepository implements folder and item-folder association
// persistence against a PostgreSQL database.
type PostgresFolderRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresFolderRepository creates a new PostgresFolderRepository using
// the provided *sql.DB.
func NewPostgresFolderRepository(db *sql.DB) *PostgresFolderRepository {
	return &PostgresFolderRepository{DB: db}
}

// GetByUser fetches all folders owned by the given user, oldest first.
func (r *PostgresFolderRepository) GetByUser(ctx context.Context, userID string) ([]models.Folder, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, name, created_at, updated_at FROM folders
		WHERE user_id = $1 ORDER BY created_at, id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("get folders by user: %w", err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var f models.Folder
		if err := rows.Scan(&f.ID, &f.UserID, &f.Name, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

// Create inserts a new folder.
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO folders (id, user_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, folder.ID, folder.UserID, folder.Name, folder.CreatedAt, folder.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert folder: %w", err)
	}
	return nil
}

// GetByIDAndUser fetches a single folder by id, scoped to the owning user.
// Returns ErrNotFound when the folder is absent or owned by someone else.
func (r *PostgresFolderRepository) GetByIDAndUser(ctx context.Context, id, userID string) (*models.Folder, error) {
	var f models.Folder
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, name, created_at, updated_at FROM folders
		WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(&f.ID, &f.UserID, &f.Name, &f.CreatedAt, &f.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get folder: %w", err)
	}
	return &f, nil
}

// AddItem links an item to a folder. The insert is idempotent: the
// composite primary key plus ON CONFLICT DO NOTHING makes a duplicate add
// a no-op even under concurrent requests. Returns true if a new link was
// created, false if the pair was already associated.
func (r *PostgresFolderRepository) AddItem(ctx context.Context, itemID, folderID string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO item_folders (item_id, folder_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, itemID, folderID)
	if err != nil {
		return false, fmt.Errorf("insert association: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return rows > 0, nil
}

// RemoveItem unlinks an item from a folder. Removing an absent association
// is not an error.
func (r *PostgresFolderRepository) RemoveItem(ctx context.Context, itemID, folderID string) error {
	_, err := r.DB.ExecContext(ctx, `
		DELETE FROM item_folders WHERE item_id = $1 AND folder_id = $2
	`, itemID, folderID)
	if err != nil {
		return fmt.Errorf("delete association: %w", err)
	}
	return nil
}
