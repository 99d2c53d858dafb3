package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/staffhub/workforce-system/internal/api/metrics"
	"github.com/staffhub/workforce-system/internal/core/domain"
)

// CookieName is the cookie-based credential carrier. The cookie is checked
// first; the Authorization bearer header is the fallback.
const CookieName = "workforce_token"

// Context keys set by Auth on success.
const (
	ContextIdentity  = "identity"
	ContextTokenID   = "token_id"
	ContextExpiresAt = "expires_at"
)

// RevocationChecker reports whether a credential's token id has been revoked.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Auth validates the signed session credential and injects the resolved
// Identity into the request context. Rejections surface as domain sentinels;
// the central error handler maps expired and invalid credentials to the same
// response, so the distinction lives only in logs and metrics.
func Auth(jwtSecret string, revocations RevocationChecker, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := extractCredential(c)
			if !ok {
				metrics.AuthRejectionsTotal.WithLabelValues("unauthenticated").Inc()
				return domain.ErrUnauthenticated
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				reason := "invalid"
				rejection := domain.ErrInvalidCredential
				if errors.Is(err, jwt.ErrTokenExpired) {
					reason = "expired"
					rejection = domain.ErrExpiredCredential
				}
				metrics.AuthRejectionsTotal.WithLabelValues(reason).Inc()
				log.Debug().Str("reason", reason).Str("path", c.Path()).Msg("credential rejected")
				return rejection
			}

			tokenID, _ := claims["jti"].(string)
			if revocations != nil && tokenID != "" {
				revoked, err := revocations.IsRevoked(c.Request().Context(), tokenID)
				if err != nil {
					log.Warn().Err(err).Msg("revocation check failed, allowing credential")
				} else if revoked {
					metrics.AuthRejectionsTotal.WithLabelValues("revoked").Inc()
					return domain.ErrInvalidCredential
				}
			}

			identity := domain.Identity{
				UserID:   stringClaim(claims, "user_id"),
				Email:    stringClaim(claims, "email"),
				Role:     domain.Role(stringClaim(claims, "role")),
				TenantID: stringClaim(claims, "tenant_id"),
			}

			c.Set(ContextIdentity, identity)
			c.Set(ContextTokenID, tokenID)
			if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
				c.Set(ContextExpiresAt, exp.Time)
			}

			return next(c)
		}
	}
}

// extractCredential pulls the raw credential from the cookie carrier first,
// falling back to the Authorization bearer header.
func extractCredential(c echo.Context) (string, bool) {
	if cookie, err := c.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}

	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func stringClaim(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}
