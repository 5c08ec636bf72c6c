package models

import (
	"time"

	"github.com/google/uuid"
)

// Society is an organizing body. Each society is owned by exactly one user
// and each user owns at most one society (unique user_id).
type Society struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`

	Name        string `gorm:"size:150;not null;uniqueIndex" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	LogoURL     string `gorm:"size:500" json:"logo_url"`
	CoverImage  string `gorm:"size:500" json:"cover_image"`

	Email           string `gorm:"size:120" json:"email"`
	WhatsappNumber  string `gorm:"size:20" json:"whatsapp_number"`
	InstagramHandle string `gorm:"size:100" json:"instagram_handle"`
	Website         string `gorm:"size:500" json:"website"`

	IsVerified  bool `gorm:"not null;default:false;index" json:"is_verified"`
	IsActive    bool `gorm:"not null;default:true;index" json:"is_active"`
	MemberCount int  `gorm:"not null;default:0" json:"member_count"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Owner User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
