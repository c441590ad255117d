package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vknyazev/passvault/internal/models"
)

// PostgresVaultRepository implements vault persistence against a PostgreSQL
// database.
type PostgresVaultRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresVaultRepository creates a new PostgresVaultRepository using the
// provided *sql.DB.
func NewPostgresVaultRepository(db *sql.DB) *PostgresVaultRepository {
	return &PostgresVaultRepository{DB: db}
}

// GetByUser fetches all vaults owned by the given user, oldest first.
func (r *PostgresVaultRepository) GetByUser(ctx context.Context, userID string) ([]models.Vault, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, name, created_at, updated_at FROM vaults
		WHERE user_id = $1 ORDER BY created_at, id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("get vaults by user: %w", err)
	}
	defer rows.Close()

	var vaults []models.Vault
	for rows.Next() {
		var v models.Vault
		if err := rows.Scan(&v.ID, &v.UserID, &v.Name, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		vaults = append(vaults, v)
	}
	return vaults, rows.Err()
}

// Create inserts a new vault.
func (r *PostgresVaultRepository) Create(ctx context.Context, vault *models.Vault) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO vaults (id, user_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, vault.ID, vault.UserID, vault.Name, vault.CreatedAt, vault.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert vault: %w", err)
	}
	return nil
}

// GetByIDAndUser fetches a single vault by id, scoped to the owning user.
// Returns ErrNotFound when the vault is absent or owned by someone else.
func (r *PostgresVaultRepository) GetByIDAndUser(ctx context.Context, id, userID string) (*models.Vault, error) {
	var v models.Vault
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, name, created_at, updated_at FROM vaults
		WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(&v.ID, &v.UserID, &v.Name, &v.CreatedAt, &v.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get vault: %w", err)
	}
	return &v, nil
}
