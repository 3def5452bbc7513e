package auth

import (
	"errors"
	"strconv"
	"strings"

	"github.com/fleetline/taller/internal/auth/domain"
	"github.com/fleetline/taller/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/fx"
)

var Module = fx.Module("auth",
	fx.Provide(NewVerifier),
)

// JWTVerifier validates HMAC-signed access tokens minted by the identity
// service and extracts the caller's role.
type JWTVerifier struct {
	secret []byte
}

func NewVerifier(cfg config.Config) domain.Verifier {
	return &JWTVerifier{secret: []byte(cfg.AuthJWTSecret)}
}

func (v *JWTVerifier) Verify(token string) (domain.CurrentUser, error) {
	if len(v.secret) == 0 {
		return domain.CurrentUser{}, domain.ErrInvalidToken
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.CurrentUser{}, domain.ErrTokenExpired
		}
		return domain.CurrentUser{}, domain.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return domain.CurrentUser{}, domain.ErrInvalidToken
	}

	user := domain.CurrentUser{}
	if sub, err := claims.GetSubject(); err == nil {
		if id, err := strconv.ParseInt(strings.TrimSpace(sub), 10, 64); err == nil {
			user.ID = id
		}
	}
	if email, ok := claims["email"].(string); ok {
		user.Email = email
	}
	role, ok := claims["role"].(string)
	if !ok {
		return domain.CurrentUser{}, domain.ErrInvalidToken
	}
	switch domain.Role(strings.ToUpper(strings.TrimSpace(role))) {
	case domain.RoleAdmin, domain.RoleRevisor, domain.RoleMechanic, domain.RoleClient:
		user.Role = domain.Role(strings.ToUpper(strings.TrimSpace(role)))
	default:
		return domain.CurrentUser{}, domain.ErrInvalidToken
	}

	return user, nil
}
