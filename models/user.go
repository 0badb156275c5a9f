package models

import (
	"crypto/rand"
	"errors"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role is the access tier attached to every user.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleGuest Role = "guest"
)

// ParseRole maps a raw string onto a known role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleUser, RoleGuest:
		return Role(s), true
	}
	return "", false
}

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	FullName string `gorm:"size:120;not null" json:"full_name"`
	Email    string `gorm:"size:255;index;not null" json:"email"`
	Username string `gorm:"uniqueIndex;size:80;not null" json:"username"`
	Password string `gorm:"size:255;not null" json:"-"`
	Role     Role   `gorm:"size:20;not null;default:'user'" json:"role"`

	// Disabled marks a soft-deleted account. Disabled users keep their
	// row but can no longer authenticate.
	Disabled bool `gorm:"not null;default:false" json:"disabled"`

	LastLoginAt *time.Time `gorm:"index" json:"last_login_at,omitempty"`
	LastSeenAt  *time.Time `gorm:"index" json:"last_seen_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// SetPassword stores a bcrypt hash of plain; the plaintext is never kept.
func (u *User) SetPassword(plain string) error {
	if plain == "" {
		return errors.New("password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

// CheckPassword reports whether plain matches the stored hash.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}

const (
	passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*()-_=+"
	passwordLength   = 8
)

// RandomPassword generates the fallback password used when an admin
// creates an account without supplying one.
func RandomPassword() (string, error) {
	out := make([]byte, passwordLength)
	max := big.NewInt(int64(len(passwordAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = passwordAlphabet[n.Int64()]
	}
	return string(out), nil
}
