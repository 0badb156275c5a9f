package app

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"library_backend/db"
	"library_backend/models"
)

// BootstrapAdmin creates the initial admin account when it does not
// exist yet, so a fresh deployment is usable without manual SQL.
func BootstrapAdmin(ctx context.Context, cfg Config, repo *db.Repo) {
	if cfg.AdminUsername == "" {
		return
	}

	_, err := repo.FindUserByUsername(ctx, cfg.AdminUsername)
	if err == nil {
		log.Printf("admin user %q already exists", cfg.AdminUsername)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("bootstrap admin lookup failed: %v", err)
		return
	}

	admin := &models.User{
		FullName: cfg.AdminFullName,
		Email:    cfg.AdminEmail,
		Username: cfg.AdminUsername,
		Role:     models.RoleAdmin,
	}
	if err := admin.SetPassword(cfg.AdminPassword); err != nil {
		log.Printf("bootstrap admin password failed: %v", err)
		return
	}
	if err := repo.CreateUser(ctx, admin); err != nil {
		log.Printf("bootstrap admin create failed: %v", err)
		return
	}
	log.Printf("[BOOTSTRAP] admin user %q created", cfg.AdminUsername)
}
