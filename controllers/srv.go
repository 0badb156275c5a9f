package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"library_backend/app"
	"library_backend/db"
	"library_backend/files"
	"library_backend/mail"
	"library_backend/session"
)

// Srv bundles the dependencies shared by all controllers.
type Srv struct {
	Repo    *db.Repo
	Auth    *app.Authenticator
	Tokens  session.Store
	Uploads *files.Store
	Mailer  mail.Mailer
	Cfg     app.Config
}

func GetSrv(a *app.App) *Srv {
	repo := db.NewRepo(a.DB)
	return &Srv{
		Repo:    repo,
		Auth:    app.NewAuthenticator(repo, a.Tokens()),
		Tokens:  a.Tokens(),
		Uploads: a.Uploads(),
		Mailer:  a.Mailer(),
		Cfg:     a.Config,
	}
}

// --- response helpers ---

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, app.H{"success": false, "message": msg})
}

func ok(c *gin.Context, status int, data interface{}) {
	c.JSON(status, app.H{"success": true, "data": data})
}

// paginated wraps a page of rows in the list envelope.
func paginated(c *gin.Context, data interface{}, total int64, page, perPage int) {
	pages := int((total + int64(perPage) - 1) / int64(perPage))
	c.JSON(http.StatusOK, app.H{
		"success":      true,
		"data":         data,
		"total":        total,
		"pages":        pages,
		"current_page": page,
		"per_page":     perPage,
	})
}

func pageParams(c *gin.Context) (page, perPage int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "10"))
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 || perPage > 100 {
		perPage = 10
	}
	return page, perPage
}

// idParam parses the numeric id path segment, replying 400 on garbage.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
