package service

import "errors"

// Sentinel errors returned by the services. Handlers match them with
// errors.Is to pick the response status; anything else is an internal error.
var (
	// ErrEmailTaken signals a registration attempt with an already
	// registered email.
	ErrEmailTaken = errors.New("user already exists")

	// ErrInvalidCredentials signals a failed login. Unknown email and
	// wrong password both map here so the two cases are
	// indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Ownership / lookup errors. A record owned by another user is
	// reported exactly like an absent one.
	ErrVaultNotFound  = errors.New("vault not found")
	ErrItemNotFound   = errors.New("item not found")
	ErrFolderNotFound = errors.New("folder not found")
)
