package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library_backend/app"
	"library_backend/session"
)

type AuthController struct{ *Srv }

func GetAuthController(s *Srv) *AuthController { return &AuthController{Srv: s} }

// POST /auth/login
// Exchanges username/password for an opaque bearer token.
func (ac *AuthController) Login(c *gin.Context) {
	var in struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	u, err := ac.Auth.Verify(c.Request.Context(), app.Credential{
		Scheme:   app.SchemeBasic,
		Username: in.Username,
		Password: in.Password,
	})
	if err != nil {
		fail(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token := session.NewTokenID()
	if err := ac.Tokens.Create(c.Request.Context(), token, u.ID); err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	_ = ac.Repo.TouchUserLogin(c.Request.Context(), u.ID)

	ok(c, http.StatusOK, app.H{"token": token, "user": u})
}

// POST /auth/logout
// Revokes the bearer token the request was made with. A basic-auth
// logout has nothing to revoke and just succeeds.
func (ac *AuthController) Logout(c *gin.Context) {
	if v, exists := c.Get(app.CtxToken); exists {
		if token, _ := v.(string); token != "" {
			_ = ac.Tokens.Delete(c.Request.Context(), token)
		}
	}
	c.JSON(http.StatusOK, app.H{"success": true, "message": "logged out"})
}
