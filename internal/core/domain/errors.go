package domain

import "errors"

// Authentication / authorization.
var (
	ErrUnauthenticated    = errors.New("missing credentials")
	ErrInvalidCredential  = errors.New("invalid credential")
	ErrExpiredCredential  = errors.New("expired credential")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials") // login failure, deliberately generic
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
)

// Business records.
var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrDuplicateEmployee = errors.New("employee already exists")
	ErrInvalidInput      = errors.New("invalid input")
)

// Snapshot engine / catalog.
var (
	ErrArtifactNotFound   = errors.New("snapshot artifact not found")
	ErrSnapshotInProgress = errors.New("snapshot already running")
)
