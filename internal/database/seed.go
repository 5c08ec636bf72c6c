package database

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/unievent/unievent-backend/internal/config"
	"github.com/unievent/unievent-backend/internal/models"
)

// SeedAdmin creates the default administrator account if it does not exist.
// Operational bootstrap, idempotent, outside the authorization engine.
func SeedAdmin(db *gorm.DB, cfg *config.Config) error {
	var existing models.User
	err := db.Where("email = ?", cfg.AdminEmail).First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return fmt.Errorf("admin lookup failed: %w", err)
	}

	if cfg.AdminPassword == "" {
		slog.Warn("ADMIN_PASSWORD not set, skipping admin bootstrap")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := models.User{
		ID:           uuid.New(),
		Username:     cfg.AdminUsername,
		Email:        cfg.AdminEmail,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		FirstName:    "Admin",
		LastName:     "User",
		IsActive:     true,
	}

	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	slog.Info("default admin created", "username", admin.Username)
	return nil
}
