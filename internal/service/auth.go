// Package service provides business logic for authentication, vaults,
// items and folders, delegating persistence to repository interfaces.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vknyazev/passvault/internal/auth"
	"github.com/vknyazev/passvault/internal/models"
	"github.com/vknyazev/passvault/internal/repository"
)

// UserRepository defines the persistence operations required by the
// authentication service.
type UserRepository interface {
	// EmailExists returns true if a user with the given email exists.
	EmailExists(ctx context.Context, email string) (bool, error)
	// CreateWithVault atomically creates a user together with their
	// default vault.
	CreateWithVault(ctx context.Context, user *models.User, vault *models.Vault) error
	// GetByEmail fetches a user by email, repository.ErrNotFound if absent.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByID fetches a user by id, repository.ErrNotFound if absent.
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// AuthService implements registration, login and bearer-credential
// resolution.
type AuthService struct {
	repo       UserRepository
	jwtSecret  []byte
	tokenTTL   time.Duration
	bcryptCost int
}

// NewAuthService constructs an AuthService. secret signs session tokens,
// ttl bounds their validity, cost is the bcrypt work factor.
func NewAuthService(repo UserRepository, secret []byte, ttl time.Duration, cost int) *AuthService {
	return &AuthService{repo: repo, jwtSecret: secret, tokenTTL: ttl, bcryptCost: cost}
}

// Register creates a new user with a hashed password and their default
// "My Vault" vault. Returns ErrEmailTaken if the email is registered.
func (s *AuthService) Register(ctx context.Context, email, password string) (*models.User, error) {
	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	vault := &models.Vault{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Name:      models.DefaultVaultName,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateWithVault(ctx, user, vault); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the email/password pair and returns a session token plus
// the user profile. Unknown email and wrong password both return
// ErrInvalidCredentials; bcrypt's comparison is constant-time.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ResolveToken maps a bearer token to the user it was issued for. Every
// failure mode (bad signature, expiry, unknown user, store error) comes
// back as a plain error; the auth middleware treats them all as 401.
func (s *AuthService) ResolveToken(ctx context.Context, token string) (*models.User, error) {
	userID, err := auth.ParseUserID(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, userID)
}
