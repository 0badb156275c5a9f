package db

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"library_backend/models"
)

type Repo struct{ DB *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{DB: db} }

// Users

func (r *Repo) CreateUser(ctx context.Context, u *models.User) error {
	return r.DB.WithContext(ctx).Create(u).Error
}

func (r *Repo) FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repo) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repo) SaveUser(ctx context.Context, u *models.User) error {
	return r.DB.WithContext(ctx).Save(u).Error
}

func (r *Repo) DeleteUserByID(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.User{}, "id = ?", id).Error
}

// DisableUser soft-deletes an account: the row stays for loan history,
// the user can no longer authenticate.
func (r *Repo) DisableUser(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("disabled", true).Error
}

func (r *Repo) TouchUserLogin(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_login_at": gorm.Expr("CURRENT_TIMESTAMP"),
			"last_seen_at":  gorm.Expr("CURRENT_TIMESTAMP"),
		}).Error
}

func (r *Repo) TouchUserSeen(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("last_seen_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
}

// UserFilter narrows and pages a user listing. Username and Email are
// case-insensitive substring matches, Role is exact.
type UserFilter struct {
	Username string
	Email    string
	Role     models.Role
	Page     int
	PerPage  int
}

type ListUsersResult struct {
	Users []models.User `json:"users"`
	Total int64         `json:"total"`
}

func (r *Repo) ListUsers(ctx context.Context, f UserFilter) (ListUsersResult, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PerPage <= 0 || f.PerPage > 100 {
		f.PerPage = 10
	}

	tx := r.DB.WithContext(ctx).Model(&models.User{})
	if q := strings.TrimSpace(f.Username); q != "" {
		tx = tx.Where("LOWER(username) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	if q := strings.TrimSpace(f.Email); q != "" {
		tx = tx.Where("LOWER(email) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	if f.Role != "" {
		tx = tx.Where("role = ?", f.Role)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return ListUsersResult{}, err
	}

	var users []models.User
	if err := tx.
		Order("created_at DESC").
		Offset((f.Page - 1) * f.PerPage).
		Limit(f.PerPage).
		Find(&users).Error; err != nil {
		return ListUsersResult{}, err
	}
	return ListUsersResult{Users: users, Total: total}, nil
}
