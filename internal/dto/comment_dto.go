package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/unievent/unievent-backend/internal/models"
)

type CreateCommentRequest struct {
	Content string `json:"content"`
}

type CommentResponse struct {
	ID         uuid.UUID     `json:"id"`
	EventID    uuid.UUID     `json:"event_id"`
	Content    string        `json:"content"`
	IsApproved bool          `json:"is_approved"`
	IsDeleted  bool          `json:"is_deleted"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
	Author     *UserResponse `json:"author,omitempty"`
	Event      *EventRef     `json:"event,omitempty"`
}

type EventRef struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

// NewCommentResponse is the single serialization path for comments.
// Soft-deleted comments always carry the placeholder content and no author
// attribution, regardless of who is asking.
func NewCommentResponse(cm *models.Comment, author *models.User) CommentResponse {
	resp := CommentResponse{
		ID:         cm.ID,
		EventID:    cm.EventID,
		Content:    cm.Content,
		IsApproved: cm.IsApproved,
		IsDeleted:  cm.IsDeleted,
		CreatedAt:  cm.CreatedAt,
		UpdatedAt:  cm.UpdatedAt,
	}

	if cm.IsDeleted {
		resp.Content = models.DeletedCommentPlaceholder
		return resp
	}

	if author != nil {
		a := NewUserResponse(author, false)
		resp.Author = &a
	}
	return resp
}
