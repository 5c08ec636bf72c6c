package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/unievent/unievent-backend/internal/apperrors"
	"github.com/unievent/unievent-backend/internal/authz"
	"github.com/unievent/unievent-backend/internal/identity"
	"github.com/unievent/unievent-backend/internal/models"
)

// ModerationService handles the admin review of comment approval flags.
type ModerationService struct {
	db *gorm.DB
}

func NewModerationService(db *gorm.DB) *ModerationService {
	return &ModerationService{db: db}
}

// ListUnapproved returns comments awaiting review, oldest first.
func (s *ModerationService) ListUnapproved(p identity.Principal, page, perPage int) ([]models.Comment, int64, error) {
	if d := authz.Decide(p, authz.CommentModerate, authz.Resource{}); !d.Allowed {
		return nil, 0, apperrors.Authorization(d.Reason, "Admin access required")
	}

	page, perPage = ClampPage(page, perPage, 20)

	var total int64
	if err := s.db.Model(&models.Comment{}).
		Where("is_approved = ? AND is_deleted = ?", false, false).
		Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}

	var comments []models.Comment
	err := s.db.Preload("Author").Preload("Event").
		Where("is_approved = ? AND is_deleted = ?", false, false).
		Order("created_at ASC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&comments).Error
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return comments, total, nil
}

// SetApproval flips a comment's approval flag.
func (s *ModerationService) SetApproval(p identity.Principal, commentID uuid.UUID, approved bool) (*models.Comment, error) {
	if d := authz.Decide(p, authz.CommentModerate, authz.Resource{}); !d.Allowed {
		return nil, apperrors.Authorization(d.Reason, "Admin access required")
	}

	var comment models.Comment
	if err := s.db.First(&comment, "id = ?", commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("comment_not_found", "Comment not found")
		}
		return nil, apperrors.Internal(err)
	}

	if err := s.db.Model(&comment).Update("is_approved", approved).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	comment.IsApproved = approved
	return &comment, nil
}
