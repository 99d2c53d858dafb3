package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/staffhub/workforce-system/internal/core/domain"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = user.Email
	}
	r.users[copy.Email] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

type stubRevocationStore struct {
	revoked map[string]time.Time
	err     error
}

func newStubRevocationStore() *stubRevocationStore {
	return &stubRevocationStore{revoked: make(map[string]time.Time)}
}

func (s *stubRevocationStore) Revoke(_ context.Context, tokenID string, until time.Time) error {
	if s.err != nil {
		return s.err
	}
	s.revoked[tokenID] = until
	return nil
}

func (s *stubRevocationStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, ok := s.revoked[tokenID]
	return ok, nil
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newStubRevocationStore(), "secret", time.Hour)

	user, err := svc.Register(context.Background(), "alice@example.com", "pass1234", "Alice", domain.RoleHR, "t1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user == nil {
		t.Fatalf("expected user, got nil")
	}
	if user.PasswordHash == "pass1234" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass1234")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleHR {
		t.Fatalf("unexpected role: %s", user.Role)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newStubRevocationStore(), "secret", time.Hour)

	if _, err := svc.Register(context.Background(), "", "pass", "", domain.RoleClient, ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob@example.com", "pass", "Bob", domain.Role("superuser"), ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for role outside the closed set, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newStubRevocationStore(), "secret", time.Hour)

	if _, err := svc.Register(context.Background(), "carol@example.com", "s3cret99", "Carol", domain.RoleAdmin, ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	cred, user, err := svc.Login(context.Background(), "carol@example.com", "s3cret99")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if cred == nil || cred.Token == "" || cred.TokenID == "" {
		t.Fatalf("expected issued credential, got %+v", cred)
	}
	if user == nil || user.Email != "carol@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(cred.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != "admin" {
		t.Fatalf("unexpected role claim: %v", claims["role"])
	}
	if claims["jti"] != cred.TokenID {
		t.Fatalf("jti claim does not match issued token id")
	}
}

// Wrong email and wrong password must be indistinguishable to the caller.
func TestAuthService_Login_GenericFailure(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newStubRevocationStore(), "secret", time.Hour)

	if _, err := svc.Register(context.Background(), "dave@example.com", "rightpass", "Dave", domain.RoleEmployee, ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "nobody@example.com", "rightpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "dave@example.com", "wrongpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
}

// A credential issued with 24h validity is accepted just before expiry and
// rejected just after.
func TestAuthService_CredentialExpiryBoundary(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newStubRevocationStore(), "secret", 24*time.Hour)

	if _, err := svc.Register(context.Background(), "erin@example.com", "pass1234", "Erin", domain.RoleClient, ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	cred, _, err := svc.Login(context.Background(), "erin@example.com", "pass1234")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	issuedAt := time.Now()
	parseAt := func(now time.Time) error {
		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(cred.Token, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte("secret"), nil
		}, jwt.WithTimeFunc(func() time.Time { return now }))
		return err
	}

	if err := parseAt(issuedAt.Add(23*time.Hour + 59*time.Minute)); err != nil {
		t.Fatalf("credential should be valid at T+23h59m: %v", err)
	}
	if err := parseAt(issuedAt.Add(24*time.Hour + time.Minute)); !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("credential should be expired at T+24h01m, got %v", err)
	}
}

func TestAuthService_Logout_RevokesUntilExpiry(t *testing.T) {
	repo := newStubUserRepo()
	revocations := newStubRevocationStore()
	svc := NewAuthService(repo, revocations, "secret", time.Hour)

	expiresAt := time.Now().Add(time.Hour)
	if err := svc.Logout(context.Background(), "tok42", expiresAt); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	until, ok := revocations.revoked["tok42"]
	if !ok {
		t.Fatalf("token id was not revoked")
	}
	if !until.Equal(expiresAt) {
		t.Fatalf("revocation should last until credential expiry")
	}

	// Empty token id is a no-op, not an error.
	if err := svc.Logout(context.Background(), "", expiresAt); err != nil {
		t.Fatalf("logout with empty token id should be a no-op: %v", err)
	}
}
