package app

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"library_backend/models"
)

// Context keys set by AuthRequired for downstream handlers.
const (
	CtxUserID   = "userID"
	CtxUsername = "username"
	CtxRole     = "role"
	CtxToken    = "authToken" // raw bearer token, empty for basic auth
)

// AuthRequired parses the Authorization header, verifies the
// credential and attaches the acting identity to the context.
func AuthRequired(auth *Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		cred, err := ParseAuthorization(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"success": false, "message": err.Error()})
			return
		}

		u, err := auth.Verify(c.Request.Context(), cred)
		if err != nil {
			msg := ErrInvalidCredentials.Error()
			if errors.Is(err, ErrBadAuthorization) {
				msg = err.Error()
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"success": false, "message": msg})
			return
		}

		c.Set(CtxUserID, u.ID)
		c.Set(CtxUsername, u.Username)
		c.Set(CtxRole, u.Role)
		c.Set(CtxToken, cred.Token)
		c.Next()
	}
}

// RequireRoles allows the request through only when the acting user's
// role is in the allow-list. Composable around any handler group.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		v, ok := c.Get(CtxRole)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"success": false, "message": "unauthorized"})
			return
		}
		role, _ := v.(models.Role)
		if _, ok := allowed[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, H{"success": false, "message": "you do not have permission to access this resource"})
			return
		}
		c.Next()
	}
}

// CurrentUser pulls the identity set by AuthRequired out of the context.
func CurrentUser(c *gin.Context) (id uint, role models.Role, ok bool) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return 0, "", false
	}
	id, _ = v.(uint)
	if r, exists := c.Get(CtxRole); exists {
		role, _ = r.(models.Role)
	}
	return id, role, true
}
