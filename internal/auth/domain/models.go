// Package domain defines the identity the transport layer hands to services.
package domain

import "errors"

// Role is the coarse authorization role carried by an access token.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleRevisor  Role = "REVISOR"
	RoleMechanic Role = "MECHANIC"
	RoleClient   Role = "CLIENT"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleRevisor, RoleMechanic, RoleClient:
		return true
	}
	return false
}

// CurrentUser is an already-authenticated caller.
type CurrentUser struct {
	ID    int64
	Email string
	Role  Role
}

// Verifier turns a bearer token into a CurrentUser. Token issuance lives
// outside this service.
type Verifier interface {
	Verify(token string) (CurrentUser, error)
}

var (
	ErrInvalidToken = errors.New("invalid_token")
	ErrTokenExpired = errors.New("token_expired")
)
