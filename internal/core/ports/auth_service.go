package ports

import (
	"context"
	"time"

	"github.com/staffhub/workforce-system/internal/core/domain"
)

// IssuedCredential is a freshly signed session credential plus the metadata
// callers need to set cookies and schedule revocation.
type IssuedCredential struct {
	Token     string
	TokenID   string
	ExpiresAt time.Time
}

type AuthService interface {
	Register(ctx context.Context, email, password, fullName string, role domain.Role, tenantID string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*IssuedCredential, *domain.User, error)
	// Logout revokes the presented credential's token id until its expiry.
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
}
