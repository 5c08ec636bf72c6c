package models

import (
	"time"

	"github.com/google/uuid"
)

// DeletedCommentPlaceholder replaces the content of soft-deleted comments
// in every serialized form, for every reader.
const DeletedCommentPlaceholder = "[deleted]"

// Comment is user feedback on an event. Deletion is logical: the row stays
// so ids and ordering remain stable for clients holding references.
type Comment struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	EventID uuid.UUID `gorm:"type:uuid;not null;index" json:"event_id"`

	Content string `gorm:"type:text;not null" json:"-"`

	IsApproved bool `gorm:"not null;default:true;index" json:"is_approved"`
	IsDeleted  bool `gorm:"not null;default:false;index" json:"is_deleted"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Author User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Event  Event `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
}
