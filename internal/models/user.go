package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles. Admin is never assignable through public registration.
const (
	RoleStudent = "student"
	RoleSociety = "society"
	RoleAdmin   = "admin"
)

// User is an account in the directory. Accounts are never hard-deleted:
// deactivation flips IsActive and blocks subsequent logins.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"size:80;not null;uniqueIndex" json:"username"`
	Email        string    `gorm:"size:120;not null;uniqueIndex" json:"-"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:20;not null;default:'student';index" json:"role"`

	FirstName    string `gorm:"size:50" json:"first_name"`
	LastName     string `gorm:"size:50" json:"last_name"`
	Bio          string `gorm:"type:text" json:"bio"`
	ProfileImage string `gorm:"size:500" json:"profile_image"`

	IsActive  bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
