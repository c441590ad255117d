package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/vknyazev/passvault/internal/models"
)

func setupVaultMock(t *testing.T) (*PostgresVaultRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresVaultRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func TestVaultGetByUser_Success(t *testing.T) {
	repo, mock, cleanup := setupVaultMock(t)
	defer cleanup()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "name", "created_at", "updated_at"}).
		AddRow("v1", "u1", "My Vault", now, now).
		AddRow("v2", "u1", "Work", now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, name, created_at, updated_at FROM vaults WHERE user_id = $1 ORDER BY created_at, id`)).
		WithArgs("u1").
		WillReturnRows(rows)

	vaults, err := repo.GetByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vaults) != 2 {
		t.Errorf("expected 2 vaults, got %d", len(vaults))
	}
	if vaults[0].ID != "v1" || vaults[1].Name != "Work" {
		t.Errorf("unexpected vaults returned: %+v", vaults)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestVaultCreate_Success(t *testing.T) {
	repo, mock, cleanup := setupVaultMock(t)
	defer cleanup()

	now := time.Now()
	vault := &models.Vault{ID: "v1", UserID: "u1", Name: "Work", CreatedAt: now, UpdatedAt: now}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO vaults (id, user_id, name, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`)).
		WithArgs(vault.ID, vault.UserID, vault.Name, vault.CreatedAt, vault.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), vault); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestVaultCreate_Error(t *testing.T) {
	repo, mock, cleanup := setupVaultMock(t)
	defer cleanup()

	now := time.Now()
	vault := &models.Vault{ID: "v1", UserID: "u1", Name: "Work", CreatedAt: now, UpdatedAt: now}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO vaults`)).
		WithArgs(vault.ID, vault.UserID, vault.Name, vault.CreatedAt, vault.UpdatedAt).
		WillReturnError(errors.New("insert failed"))

	if err := repo.Create(context.Background(), vault); err == nil {
		t.Errorf("expected error, got nil")
	}
}

func TestVaultGetByIDAndUser_Found(t *testing.T) {
	repo, mock, cleanup := setupVaultMock(t)
	defer cleanup()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "name", "created_at", "updated_at"}).
		AddRow("v1", "u1", "My Vault", now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, name, created_at, updated_at FROM vaults WHERE id = $1 AND user_id = $2`)).
		WithArgs("v1", "u1").
		WillReturnRows(rows)

	vault, err := repo.GetByIDAndUser(context.Background(), "v1", "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vault.Name != "My Vault" {
		t.Errorf("unexpected vault returned: %+v", vault)
	}
}

func TestVaultGetByIDAndUser_WrongOwner(t *testing.T) {
	repo, mock, cleanup := setupVaultMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, name, created_at, updated_at FROM vaults WHERE id = $1 AND user_id = $2`)).
		WithArgs("v1", "intruder").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "created_at", "updated_at"}))

	_, err := repo.GetByIDAndUser(context.Background(), "v1", "intruder")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
