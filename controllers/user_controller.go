package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"library_backend/app"
	"library_backend/db"
	"library_backend/models"
)

type UserController struct{ *Srv }

func GetUserController(s *Srv) *UserController { return &UserController{Srv: s} }

// GET /user/?page=&per_page=&username=&email=&role=
func (uc *UserController) ListUsers(c *gin.Context) {
	page, perPage := pageParams(c)
	f := db.UserFilter{
		Username: c.Query("username"),
		Email:    c.Query("email"),
		Page:     page,
		PerPage:  perPage,
	}
	if s := c.Query("role"); s != "" {
		role, ok := models.ParseRole(s)
		if !ok {
			fail(c, http.StatusBadRequest, "unknown role: "+s)
			return
		}
		f.Role = role
	}

	res, err := uc.Repo.ListUsers(c.Request.Context(), f)
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	paginated(c, res.Users, res.Total, page, perPage)
}

// GET /user/:id
func (uc *UserController) GetUser(c *gin.Context) {
	id, okID := idParam(c, "id")
	if !okID {
		return
	}
	u, err := uc.Repo.FindUserByID(c.Request.Context(), id)
	if err != nil {
		fail(c, http.StatusNotFound, "user not found")
		return
	}
	ok(c, http.StatusOK, u)
}

// POST /user/
// Creates an account. Without a supplied password an 8-character
// random one is generated and mailed to the new user.
func (uc *UserController) CreateUser(c *gin.Context) {
	var in struct {
		FullName string `json:"full_name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Username string `json:"username" binding:"required"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	role := models.RoleUser
	if in.Role != "" {
		parsed, okRole := models.ParseRole(in.Role)
		if !okRole {
			fail(c, http.StatusBadRequest, "unknown role: "+in.Role)
			return
		}
		role = parsed
	}

	password := in.Password
	if password == "" {
		generated, err := models.RandomPassword()
		if err != nil {
			fail(c, http.StatusInternalServerError, err.Error())
			return
		}
		password = generated
	}

	u := &models.User{
		FullName: in.FullName,
		Email:    in.Email,
		Username: in.Username,
		Role:     role,
	}
	if err := u.SetPassword(password); err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	if err := uc.Repo.CreateUser(c.Request.Context(), u); err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	// Fire-and-forget: a failed notice is logged, the account stays.
	if err := uc.Mailer.SendRegistration(u.Email, u.FullName, u.Username, password); err != nil {
		log.Printf("registration mail for %s failed: %v", u.Email, err)
	}

	ok(c, http.StatusCreated, u)
}

// PUT /user/:id
func (uc *UserController) UpdateUser(c *gin.Context) {
	id, okID := idParam(c, "id")
	if !okID {
		return
	}
	uc.patchUser(c, id, models.AdminPatch)
}

// DELETE /user/:id
// Hard delete. Admin accounts are protected, and admins cannot delete
// themselves through this route.
func (uc *UserController) DeleteUser(c *gin.Context) {
	id, okID := idParam(c, "id")
	if !okID {
		return
	}
	actorID, _, _ := app.CurrentUser(c)
	if actorID == id {
		fail(c, http.StatusBadRequest, "cannot delete yourself")
		return
	}

	target, err := uc.Repo.FindUserByID(c.Request.Context(), id)
	if err != nil {
		fail(c, http.StatusNotFound, "user not found")
		return
	}
	if target.Role == models.RoleAdmin {
		fail(c, http.StatusForbidden, "cannot delete an admin")
		return
	}

	if err := uc.Repo.DeleteUserByID(c.Request.Context(), id); err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	_ = uc.Tokens.RevokeAllForUser(c.Request.Context(), id)
	c.JSON(http.StatusOK, app.H{"success": true, "message": "user deleted"})
}

// GET /user/me
func (uc *UserController) Me(c *gin.Context) {
	id, _, exists := app.CurrentUser(c)
	if !exists {
		fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	u, err := uc.Repo.FindUserByID(c.Request.Context(), id)
	if err != nil {
		fail(c, http.StatusNotFound, "user not found")
		return
	}
	ok(c, http.StatusOK, u)
}

// PUT /user/me
// Self-service update: profile fields for everyone, the full field
// set when the actor is an admin.
func (uc *UserController) UpdateMe(c *gin.Context) {
	id, role, exists := app.CurrentUser(c)
	if !exists {
		fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	uc.patchUser(c, id, models.PatchPolicyFor(role))
}

// DELETE /user/me
// Soft-disable rather than hard delete, so loan history keeps its
// borrower reference. All live tokens are revoked.
func (uc *UserController) DeleteMe(c *gin.Context) {
	id, _, exists := app.CurrentUser(c)
	if !exists {
		fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := uc.Repo.DisableUser(c.Request.Context(), id); err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	_ = uc.Tokens.RevokeAllForUser(c.Request.Context(), id)
	c.JSON(http.StatusOK, app.H{"success": true, "message": "account disabled"})
}

func (uc *UserController) patchUser(c *gin.Context, id uint, policy models.PatchPolicy) {
	var patch models.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	u, err := uc.Repo.FindUserByID(c.Request.Context(), id)
	if err != nil {
		fail(c, http.StatusNotFound, "user not found")
		return
	}
	if err := policy(u, patch); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := uc.Repo.SaveUser(c.Request.Context(), u); err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	ok(c, http.StatusOK, u)
}
