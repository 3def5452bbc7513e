package server

import (
	"strings"

	"github.com/gin-gonic/gin"

	authdomain "github.com/fleetline/taller/internal/auth/domain"
)

const currentUserKey = "current_user"

// AuthRequired verifies the bearer token and stashes the caller on the
// gin context for role gates and handlers.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		user, err := s.verifier.Verify(token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

func (s *Server) RequireRole(roles ...authdomain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		AbortWithError(c, ErrForbidden)
	}
}

func CurrentUser(c *gin.Context) (authdomain.CurrentUser, bool) {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return authdomain.CurrentUser{}, false
	}
	user, ok := value.(authdomain.CurrentUser)
	return user, ok
}

func bearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
