package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/vknyazev/passvault/internal/models"
	"github.com/vknyazev/passvault/internal/repository"
	"github.com/vknyazev/passvault/internal/service"
)

type mockItemRepo struct {
	GetByVaultFunc     func(ctx context.Context, vaultID, userID string) ([]models.Item, error)
	CreateFunc         func(ctx context.Context, item *models.Item) error
	GetByIDAndUserFunc func(ctx context.Context, id, userID string) (*models.Item, error)
	UpdateFunc         func(ctx context.Context, item *models.Item) error
	DeleteFunc         func(ctx context.Context, id string) error
	GetByFolderFunc    func(ctx context.Context, folderID, userID string) ([]models.Item, error)
	SearchFunc         func(ctx context.Context, userID, query, itemType string) ([]models.Item, error)
}

func (m *mockItemRepo) GetByVault(ctx context.Context, vaultID, userID string) ([]models.Item, error) {
	return m.GetByVaultFunc(ctx, vaultID, userID)
}
func (m *mockItemRepo) Create(ctx context.Context, item *models.Item) error {
	return m.CreateFunc(ctx, item)
}
func (m *mockItemRepo) GetByIDAndUser(ctx context.Context, id, userID string) (*models.Item, error) {
	return m.GetByIDAndUserFunc(ctx, id, userID)
}
func (m *mockItemRepo) Update(ctx context.Context, item *models.Item) error {
	return m.UpdateFunc(ctx, item)
}
func (m *mockItemRepo) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}
func (m *mockItemRepo) GetByFolder(ctx context.Context, folderID, userID string) ([]models.Item, error) {
	return m.GetByFolderFunc(ctx, folderID, userID)
}
func (m *mockItemRepo) Search(ctx context.Context, userID, query, itemType string) ([]models.Item, error) {
	return m.SearchFunc(ctx, userID, query, itemType)
}

type mockVaultRepo struct {
	GetByUserFunc      func(ctx context.Context, userID string) ([]models.Vault, error)
	CreateFunc         func(ctx context.Context, vault *models.Vault) error
	GetByIDAndUserFunc func(ctx context.Context, id, userID string) (*models.Vault, error)
}

func (m *mockVaultRepo) GetByUser(ctx context.Context, userID string) ([]models.Vault, error) {
	return m.GetByUserFunc(ctx, userID)
}
func (m *mockVaultRepo) Create(ctx context.Context, vault *models.Vault) error {
	return m.CreateFunc(ctx, vault)
}
func (m *mockVaultRepo) GetByIDAndUser(ctx context.Context, id, userID string) (*models.Vault, error) {
	return m.GetByIDAndUserFunc(ctx, id, userID)
}

func ownVault(vaultID, userID string) *mockVaultRepo {
	return &mockVaultRepo{
		GetByIDAndUserFunc: func(_ context.Context, id, uid string) (*models.Vault, error) {
			if id == vaultID && uid == userID {
				return &models.Vault{ID: id, UserID: uid}, nil
			}
			return nil, repository.ErrNotFound
		},
	}
}

func TestListByVault_VaultNotOwned(t *testing.T) {
	items := &mockItemRepo{
		GetByVaultFunc: func(context.Context, string, string) ([]models.Item, error) {
			t.Fatal("item store must not be touched when the vault check fails")
			return nil, nil
		},
	}
	svc := service.NewItemService(items, ownVault("v1", "owner"))

	_, err := svc.ListByVault(context.Background(), "intruder", "v1")
	if !errors.Is(err, service.ErrVaultNotFound) {
		t.Fatalf("ListByVault error = %v; want ErrVaultNotFound", err)
	}
}

func TestCreate_SetsDefaultsAndOwner(t *testing.T) {
	var created *models.Item
	items := &mockItemRepo{
		CreateFunc: func(_ context.Context, item *models.Item) error {
			created = item
			return nil
		},
	}
	svc := service.NewItemService(items, ownVault("v1", "u1"))

	payload := json.RawMessage(`{"u":"a","p":"b"}`)
	item, err := svc.Create(context.Background(), "u1", "v1", "login", "site", payload, false)
	if err != nil {
		t.Fatalf("Create error = %v", err)
	}

	if created != item {
		t.Errorf("repository received a different item")
	}
	if item.ID == "" || item.UserID != "u1" || item.VaultID != "v1" {
		t.Errorf("unexpected item: %+v", item)
	}
	if item.Favorite {
		t.Errorf("favorite must default to false")
	}
	if string(item.Data) != `{"u":"a","p":"b"}` {
		t.Errorf("payload was reshaped: %s", item.Data)
	}
}

func TestUpdate_FavoriteFalseOnlyTouchesFavorite(t *testing.T) {
	stored := models.Item{
		ID: "i1", VaultID: "v1", UserID: "u1", Type: "login", Name: "site",
		Favorite: true, Data: json.RawMessage(`{"u":"a"}`),
		UpdatedAt: time.Now().Add(-time.Hour),
	}
	before := stored.UpdatedAt

	var written *models.Item
	items := &mockItemRepo{
		GetByIDAndUserFunc: func(context.Context, string, string) (*models.Item, error) {
			if written != nil {
				return written, nil // re-read after the write
			}
			cp := stored
			return &cp, nil
		},
		UpdateFunc: func(_ context.Context, item *models.Item) error {
			written = item
			return nil
		},
	}
	svc := service.NewItemService(items, ownVault("v1", "u1"))

	fav := false
	got, err := svc.Update(context.Background(), "u1", "i1", service.ItemPatch{Favorite: &fav})
	if err != nil {
		t.Fatalf("Update error = %v", err)
	}

	if got.Favorite {
		t.Errorf("favorite=false patch was ignored")
	}
	if got.Type != "login" || got.Name != "site" || string(got.Data) != `{"u":"a"}` {
		t.Errorf("fields other than favorite changed: %+v", got)
	}
	if !got.UpdatedAt.After(before) {
		t.Errorf("updated_at was not refreshed")
	}
}

func TestUpdate_AbsentFieldsKeepStoredValues(t *testing.T) {
	stored := models.Item{
		ID: "i1", UserID: "u1", Type: "login", Name: "site",
		Data: json.RawMessage(`{"u":"a"}`),
	}

	var written *models.Item
	items := &mockItemRepo{
		GetByIDAndUserFunc: func(context.Context, string, string) (*models.Item, error) {
			if written != nil {
				return written, nil
			}
			cp := stored
			return &cp, nil
		},
		UpdateFunc: func(_ context.Context, item *models.Item) error {
			written = item
			return nil
		},
	}
	svc := service.NewItemService(items, ownVault("v1", "u1"))

	got, err := svc.Update(context.Background(), "u1", "i1", service.ItemPatch{Name: "renamed"})
	if err != nil {
		t.Fatalf("Update error = %v", err)
	}

	if got.Name != "renamed" {
		t.Errorf("name patch not applied: %+v", got)
	}
	if got.Type != "login" || string(got.Data) != `{"u":"a"}` || got.Favorite {
		t.Errorf("absent fields changed: %+v", got)
	}
}

func TestUpdate_NotOwned(t *testing.T) {
	items := &mockItemRepo{
		GetByIDAndUserFunc: func(context.Context, string, string) (*models.Item, error) {
			return nil, repository.ErrNotFound
		},
	}
	svc := service.NewItemService(items, ownVault("v1", "u1"))

	_, err := svc.Update(context.Background(), "intruder", "i1", service.ItemPatch{Name: "x"})
	if !errors.Is(err, service.ErrItemNotFound) {
		t.Fatalf("Update error = %v; want ErrItemNotFound", err)
	}
}

func TestDelete_OwnershipVerifiedFirst(t *testing.T) {
	deleted := false
	items := &mockItemRepo{
		GetByIDAndUserFunc: func(_ context.Context, id, userID string) (*models.Item, error) {
			if userID != "u1" {
				return nil, repository.ErrNotFound
			}
			return &models.Item{ID: id, UserID: userID}, nil
		},
		DeleteFunc: func(context.Context, string) error {
			deleted = true
			return nil
		},
	}
	svc := service.NewItemService(items, ownVault("v1", "u1"))

	if err := svc.Delete(context.Background(), "intruder", "i1"); !errors.Is(err, service.ErrItemNotFound) {
		t.Fatalf("Delete error = %v; want ErrItemNotFound", err)
	}
	if deleted {
		t.Fatal("delete must not run for a non-owner")
	}

	if err := svc.Delete(context.Background(), "u1", "i1"); err != nil {
		t.Fatalf("Delete error = %v", err)
	}
	if !deleted {
		t.Fatal("delete did not run for the owner")
	}
}

func TestSearch_PassesFiltersThrough(t *testing.T) {
	items := &mockItemRepo{
		SearchFunc: func(_ context.Context, userID, query, itemType string) ([]models.Item, error) {
			if userID != "u1" || query != "git" || itemType != "login" {
				t.Errorf("unexpected search args: %q %q %q", userID, query, itemType)
			}
			return []models.Item{{ID: "i1"}}, nil
		},
	}
	svc := service.NewItemService(items, ownVault("v1", "u1"))

	got, err := svc.Search(context.Background(), "u1", "git", "login")
	if err != nil {
		t.Fatalf("Search error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "i1" {
		t.Errorf("unexpected result: %+v", got)
	}
}
