package db

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"library_backend/models"
)

var (
	ErrAlreadyBorrowed = errors.New("book already borrowed")
	ErrNotBorrower     = errors.New("book is borrowed by another user")
)

// Books

func (r *Repo) CreateBook(ctx context.Context, b *models.Book) error {
	return r.DB.WithContext(ctx).Create(b).Error
}

func (r *Repo) FindBookByID(ctx context.Context, id uint) (*models.Book, error) {
	var b models.Book
	if err := r.DB.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *Repo) SaveBook(ctx context.Context, b *models.Book) error {
	return r.DB.WithContext(ctx).Save(b).Error
}

func (r *Repo) DeleteBookByID(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.Book{}, "id = ?", id).Error
}

// BookFilter narrows and pages the catalog listing. All three text
// filters are case-insensitive substring matches.
type BookFilter struct {
	Title   string
	Author  string
	Genre   string
	Page    int
	PerPage int
}

type ListBooksResult struct {
	Books []models.Book `json:"books"`
	Total int64         `json:"total"`
}

func (r *Repo) ListBooks(ctx context.Context, f BookFilter) (ListBooksResult, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PerPage <= 0 || f.PerPage > 100 {
		f.PerPage = 10
	}

	like := func(q string) string { return "%" + strings.ToLower(strings.TrimSpace(q)) + "%" }
	tx := r.DB.WithContext(ctx).Model(&models.Book{})
	if strings.TrimSpace(f.Title) != "" {
		tx = tx.Where("LOWER(title) LIKE ?", like(f.Title))
	}
	if strings.TrimSpace(f.Author) != "" {
		tx = tx.Where("LOWER(author) LIKE ?", like(f.Author))
	}
	if strings.TrimSpace(f.Genre) != "" {
		tx = tx.Where("LOWER(genre) LIKE ?", like(f.Genre))
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return ListBooksResult{}, err
	}

	var books []models.Book
	if err := tx.
		Order("created_at DESC").
		Offset((f.Page - 1) * f.PerPage).
		Limit(f.PerPage).
		Find(&books).Error; err != nil {
		return ListBooksResult{}, err
	}
	return ListBooksResult{Books: books, Total: total}, nil
}

// BorrowBook marks a book borrowed. The availability flip is a
// compare-and-swap (UPDATE ... WHERE available = TRUE) inside a
// transaction, so two concurrent borrows cannot both win.
func (r *Repo) BorrowBook(ctx context.Context, bookID, userID uint, until time.Time) (*models.Book, error) {
	var b models.Book
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Book{}).
			Where("id = ? AND available = ?", bookID, true).
			Updates(map[string]interface{}{
				"available":      false,
				"borrowed_by":    userID,
				"borrowed_until": until,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Either the book does not exist or someone holds it.
			var n int64
			if err := tx.Model(&models.Book{}).Where("id = ?", bookID).Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return gorm.ErrRecordNotFound
			}
			return ErrAlreadyBorrowed
		}
		return tx.First(&b, "id = ?", bookID).Error
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ReturnBook clears the borrower, due date and availability flag in
// one transaction. Returning an already-available book is a no-op.
// Non-admins may only return books they borrowed themselves.
func (r *Repo) ReturnBook(ctx context.Context, bookID, actorID uint, actorIsAdmin bool) (*models.Book, error) {
	var b models.Book
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&b, "id = ?", bookID).Error; err != nil {
			return err
		}
		if b.Available {
			return nil
		}
		if !actorIsAdmin && (b.BorrowedBy == nil || *b.BorrowedBy != actorID) {
			return ErrNotBorrower
		}
		if err := tx.Model(&models.Book{}).
			Where("id = ?", bookID).
			Updates(map[string]interface{}{
				"available":      true,
				"borrowed_by":    nil,
				"borrowed_until": nil,
			}).Error; err != nil {
			return err
		}
		return tx.First(&b, "id = ?", bookID).Error
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}
