package models

import (
	"time"

	"github.com/google/uuid"
)

// EventLike is the (user, event) toggle-set. The composite primary key is
// the mechanism that rejects duplicate pairs under concurrent toggles.
type EventLike struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	EventID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"event_id"`
	CreatedAt time.Time `json:"created_at"`

	User  User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Event Event `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName keeps the junction table name explicit.
func (EventLike) TableName() string {
	return "event_likes"
}
