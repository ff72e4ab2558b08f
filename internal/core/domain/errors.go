package domain

import "errors"

// Storage-level conflicts reported by repositories when a unique constraint rejects a write.
var (
	ErrDuplicateUsername = errors.New("username already taken")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrDuplicateWallet   = errors.New("user already owns a wallet")
)
