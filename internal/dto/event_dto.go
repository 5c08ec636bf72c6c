package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/unievent/unievent-backend/internal/models"
)

type CreateEventRequest struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	ShortDescription string `json:"short_description"`
	Category         string `json:"category"`
	EventDate        string `json:"event_date"`
	StartTime        string `json:"start_time"`
	EndTime          string `json:"end_time"`
	Venue            string `json:"venue"`
	Poster           string `json:"poster"`
	GoogleFormLink   string `json:"google_form_link"`
}

type UpdateEventRequest struct {
	Title            *string `json:"title"`
	Description      *string `json:"description"`
	ShortDescription *string `json:"short_description"`
	Category         *string `json:"category"`
	EventDate        *string `json:"event_date"`
	StartTime        *string `json:"start_time"`
	EndTime          *string `json:"end_time"`
	Venue            *string `json:"venue"`
	Poster           *string `json:"poster"`
	GoogleFormLink   *string `json:"google_form_link"`
}

type EventResponse struct {
	ID               uuid.UUID         `json:"id"`
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	ShortDescription string            `json:"short_description,omitempty"`
	Category         string            `json:"category,omitempty"`
	EventDate        time.Time         `json:"event_date"`
	StartTime        string            `json:"start_time,omitempty"`
	EndTime          string            `json:"end_time,omitempty"`
	Venue            string            `json:"venue,omitempty"`
	Poster           string            `json:"poster,omitempty"`
	GoogleFormLink   string            `json:"google_form_link,omitempty"`
	IsPublished      bool              `json:"is_published"`
	ViewCount        int               `json:"view_count"`
	IsUpcoming       bool              `json:"is_upcoming"`
	LikesCount       int64             `json:"likes_count"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
	Organizer        *SocietyResponse  `json:"organizer,omitempty"`
	Comments         []CommentResponse `json:"comments,omitempty"`
	CommentsCount    *int64            `json:"comments_count,omitempty"`
}

func NewEventResponse(e *models.Event, likes int64) EventResponse {
	return EventResponse{
		ID:               e.ID,
		Title:            e.Title,
		Description:      e.Description,
		ShortDescription: e.ShortDescription,
		Category:         e.Category,
		EventDate:        e.EventDate,
		StartTime:        e.StartTime,
		EndTime:          e.EndTime,
		Venue:            e.Venue,
		Poster:           e.Poster,
		GoogleFormLink:   e.GoogleFormLink,
		IsPublished:      e.IsPublished,
		ViewCount:        e.ViewCount,
		IsUpcoming:       e.IsUpcoming(),
		LikesCount:       likes,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

type LikeResponse struct {
	Message    string `json:"message"`
	Liked      bool   `json:"liked"`
	TotalLikes int64  `json:"total_likes"`
}

type Pagination struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
	Pages   int64 `json:"pages"`
}

func NewPagination(page, perPage int, total int64) Pagination {
	pages := (total + int64(perPage) - 1) / int64(perPage)
	return Pagination{Page: page, PerPage: perPage, Total: total, Pages: pages}
}
