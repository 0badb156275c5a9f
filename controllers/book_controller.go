package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"library_backend/app"
	"library_backend/db"
	"library_backend/files"
	"library_backend/models"
)

// defaultLoanPeriod applies when a borrow request carries no due date.
const defaultLoanPeriod = 14 * 24 * time.Hour

type BookController struct{ *Srv }

func NewBookController(s *Srv) *BookController { return &BookController{Srv: s} }

// GET /book/?page=&per_page=&title=&author=&genre=
func (bc *BookController) ListBooks(c *gin.Context) {
	page, perPage := pageParams(c)
	res, err := bc.Repo.ListBooks(c.Request.Context(), db.BookFilter{
		Title:   c.Query("title"),
		Author:  c.Query("author"),
		Genre:   c.Query("genre"),
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	paginated(c, res.Books, res.Total, page, perPage)
}

// GET /book/:id
func (bc *BookController) GetBook(c *gin.Context) {
	id, okID := idParam(c, "id")
	if !okID {
		return
	}
	b, err := bc.Repo.FindBookByID(c.Request.Context(), id)
	if err != nil {
		fail(c, http.StatusNotFound, "book not found")
		return
	}
	ok(c, http.StatusOK, b)
}

// POST /book/
// Multipart create: title, author, description, isbn and an image
// file are required, genre is optional.
func (bc *BookController) CreateBook(c *gin.Context) {
	title := strings.TrimSpace(c.PostForm("title"))
	author := strings.TrimSpace(c.PostForm("author"))
	description := strings.TrimSpace(c.PostForm("description"))
	isbn := strings.TrimSpace(c.PostForm("isbn"))
	if title == "" || author == "" || description == "" || isbn == "" {
		fail(c, http.StatusBadRequest, "title, author, description and isbn are required")
		return
	}

	fh, err := c.FormFile("image")
	if err != nil {
		fail(c, http.StatusBadRequest, "image file is required")
		return
	}
	imagePath, err := bc.Uploads.Save(fh)
	if err != nil {
		if errors.Is(err, files.ErrExtensionNotAllowed) {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	b := &models.Book{
		Title:       title,
		Author:      author,
		Genre:       strings.TrimSpace(c.PostForm("genre")),
		Description: description,
		Image:       imagePath,
		ISBN:        isbn,
		Available:   true,
	}
	if err := bc.Repo.CreateBook(c.Request.Context(), b); err != nil {
		// Duplicate isbn lands here as a store uniqueness violation.
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	ok(c, http.StatusCreated, b)
}

// PUT /book/:id
// Partial multipart update, with an optional replacement image.
func (bc *BookController) UpdateBook(c *gin.Context) {
	id, okID := idParam(c, "id")
	if !okID {
		return
	}
	b, err := bc.Repo.FindBookByID(c.Request.Context(), id)
	if err != nil {
		fail(c, http.StatusNotFound, "book not found")
		return
	}

	if v := strings.TrimSpace(c.PostForm("title")); v != "" {
		b.Title = v
	}
	if v := strings.TrimSpace(c.PostForm("author")); v != "" {
		b.Author = v
	}
	if v := strings.TrimSpace(c.PostForm("genre")); v != "" {
		b.Genre = v
	}
	if v := strings.TrimSpace(c.PostForm("description")); v != "" {
		b.Description = v
	}
	if v := strings.TrimSpace(c.PostForm("isbn")); v != "" {
		b.ISBN = v
	}
	if fh, err := c.FormFile("image"); err == nil {
		imagePath, err := bc.Uploads.Save(fh)
		if err != nil {
			if errors.Is(err, files.ErrExtensionNotAllowed) {
				fail(c, http.StatusBadRequest, err.Error())
				return
			}
			fail(c, http.StatusInternalServerError, err.Error())
			return
		}
		b.Image = imagePath
	}

	if err := bc.Repo.SaveBook(c.Request.Context(), b); err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	ok(c, http.StatusOK, b)
}

// DELETE /book/:id
func (bc *BookController) DeleteBook(c *gin.Context) {
	id, okID := idParam(c, "id")
	if !okID {
		return
	}
	if _, err := bc.Repo.FindBookByID(c.Request.Context(), id); err != nil {
		fail(c, http.StatusNotFound, "book not found")
		return
	}
	if err := bc.Repo.DeleteBookByID(c.Request.Context(), id); err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, app.H{"success": true, "message": "book deleted"})
}

// GET /book/images/:filename
// Public image streaming; content type comes from the file extension.
func (bc *BookController) GetImage(c *gin.Context) {
	p, err := bc.Uploads.Path(c.Param("filename"))
	if err != nil {
		fail(c, http.StatusNotFound, "image not found")
		return
	}
	c.File(p)
}

// PUT /barrow/:id
// Borrow a book. Already-borrowed books are a conflict, the
// availability check-and-set happens at the store layer.
func (bc *BookController) Borrow(c *gin.Context) {
	id, okID := idParam(c, "id")
	if !okID {
		return
	}
	userID, _, exists := app.CurrentUser(c)
	if !exists {
		fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var in struct {
		BorrowedUntil string `json:"borrowed_until"`
	}
	_ = c.ShouldBindJSON(&in)

	until := time.Now().UTC().Add(defaultLoanPeriod)
	if in.BorrowedUntil != "" {
		parsed, err := parseDate(in.BorrowedUntil)
		if err != nil {
			fail(c, http.StatusBadRequest, "invalid borrowed_until date")
			return
		}
		until = parsed
	}

	b, err := bc.Repo.BorrowBook(c.Request.Context(), id, userID, until)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			fail(c, http.StatusNotFound, "book not found")
		case errors.Is(err, db.ErrAlreadyBorrowed):
			fail(c, http.StatusConflict, err.Error())
		default:
			fail(c, http.StatusInternalServerError, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, b)
}

// PUT /return/:id
// Return a book. Admins may return on anyone's behalf.
func (bc *BookController) Return(c *gin.Context) {
	id, okID := idParam(c, "id")
	if !okID {
		return
	}
	userID, role, exists := app.CurrentUser(c)
	if !exists {
		fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	b, err := bc.Repo.ReturnBook(c.Request.Context(), id, userID, role == models.RoleAdmin)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			fail(c, http.StatusNotFound, "book not found")
		case errors.Is(err, db.ErrNotBorrower):
			fail(c, http.StatusForbidden, err.Error())
		default:
			fail(c, http.StatusInternalServerError, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, b)
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
