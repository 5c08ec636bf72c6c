package models

import (
	"time"

	"github.com/google/uuid"
)

// Event is a published activity owned by exactly one society.
type Event struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SocietyID uuid.UUID `gorm:"type:uuid;not null;index" json:"society_id"`

	Title            string `gorm:"size:200;not null;index" json:"title"`
	Description      string `gorm:"type:text;not null" json:"description"`
	ShortDescription string `gorm:"size:500" json:"short_description"`
	Category         string `gorm:"size:50;index" json:"category"`

	EventDate time.Time `gorm:"not null;index" json:"event_date"`
	StartTime string    `gorm:"size:20" json:"start_time"`
	EndTime   string    `gorm:"size:20" json:"end_time"`

	Venue          string `gorm:"size:300" json:"venue"`
	Poster         string `gorm:"size:500" json:"poster"`
	GoogleFormLink string `gorm:"size:500" json:"google_form_link"`

	IsPublished bool `gorm:"not null;default:true;index" json:"is_published"`
	ViewCount   int  `gorm:"not null;default:0" json:"view_count"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Organizer Society `gorm:"foreignKey:SocietyID;constraint:OnDelete:CASCADE" json:"-"`
}

// IsUpcoming is derived at read time, never stored.
func (e *Event) IsUpcoming() bool {
	return e.EventDate.After(time.Now().UTC())
}
