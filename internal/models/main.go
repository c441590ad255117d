// Package models defines the core data structures for users, vaults,
// items and folders.
package models

import (
	"encoding/json"
	"time"
)

// DefaultVaultName is the name of the vault created together with every
// new user.
const DefaultVaultName = "My Vault"

// User represents an application user with credentials.
type User struct {
	// ID is the unique identifier for the user.
	ID string `json:"id"`
	// Email is the login email, unique across users.
	Email string `json:"email"`
	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized into API responses.
	PasswordHash string `json:"-"`
	// CreatedAt is when the user registered.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is when the user record last changed.
	UpdatedAt time.Time `json:"updated_at"`
}

// Vault is a named container of items owned by exactly one user.
type Vault struct {
	// ID is the unique identifier for the vault.
	ID string `json:"id"`
	// UserID is the owning user.
	UserID string `json:"user_id"`
	// Name is the user-chosen vault name.
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Item is a secret record stored inside a vault. UserID duplicates the
// vault's owner so ownership checks need a single lookup.
type Item struct {
	// ID is the unique identifier for the item.
	ID string `json:"id"`
	// VaultID is the vault containing the item.
	VaultID string `json:"vault_id"`
	// UserID is the owning user, always equal to the vault's owner.
	UserID string `json:"user_id"`
	// Type tags the kind of item ("login", "note", ...).
	Type string `json:"type"`
	// Name is the display name items are searched by.
	Name string `json:"name"`
	// Favorite marks the item as pinned by the user.
	Favorite bool `json:"favorite"`
	// Data is the structured secret payload. It is stored serialized and
	// only ever contains JSON this system wrote itself.
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Folder is a user-defined label items can be linked to, independent of
// vault membership.
type Folder struct {
	// ID is the unique identifier for the folder.
	ID string `json:"id"`
	// UserID is the owning user.
	UserID string `json:"user_id"`
	// Name is the user-chosen folder name.
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ItemType defines well-known item type identifiers. The type field is
// free-form; these are the values the bundled clients use.
type ItemType string

const (
	// LoginItem represents a credential with username and password.
	LoginItem ItemType = "login"
	// NoteItem represents a free-text secure note.
	NoteItem ItemType = "note"
	// CardItem represents stored card information.
	CardItem ItemType = "card"
)
