package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/unievent/unievent-backend/internal/apperrors"
	"github.com/unievent/unievent-backend/internal/authz"
	"github.com/unievent/unievent-backend/internal/dto"
	"github.com/unievent/unievent-backend/internal/identity"
	"github.com/unievent/unievent-backend/internal/models"
)

// InteractionService coordinates the likes toggle-set and comment
// lifecycle.
type InteractionService struct {
	db *gorm.DB
}

func NewInteractionService(db *gorm.DB) *InteractionService {
	return &InteractionService{db: db}
}

// ToggleLike flips the principal's membership in the event's like set and
// returns the post-toggle state. The flip and the count read run in one
// transaction, so the returned total is never a stale pre-toggle snapshot.
// A concurrent duplicate insert surfacing as a unique-constraint violation
// means the pair is already in the desired state and is treated as such.
func (s *InteractionService) ToggleLike(p identity.Principal, eventID uuid.UUID) (*dto.LikeResponse, error) {
	if d := authz.Decide(p, authz.EventLike, authz.Resource{}); !d.Allowed {
		return nil, apperrors.Authorization(d.Reason, "Authentication required")
	}

	var event models.Event
	if err := s.db.First(&event, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("event_not_found", "Event or user not found")
		}
		return nil, apperrors.Internal(err)
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", p.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user_not_found", "Event or user not found")
		}
		return nil, apperrors.Internal(err)
	}

	var resp dto.LikeResponse
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND event_id = ?", p.UserID, eventID).Delete(&models.EventLike{})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected > 0 {
			resp.Liked = false
			resp.Message = "Event unliked"
		} else {
			// ON CONFLICT DO NOTHING: losing a race against an identical
			// insert leaves the pair present, which is the desired state.
			like := models.EventLike{UserID: p.UserID, EventID: eventID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
				return err
			}
			resp.Liked = true
			resp.Message = "Event liked"
		}

		return tx.Model(&models.EventLike{}).
			Where("event_id = ?", eventID).
			Count(&resp.TotalLikes).Error
	})
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &resp, nil
}

// CreateComment posts a comment on an event.
func (s *InteractionService) CreateComment(p identity.Principal, eventID uuid.UUID, req *dto.CreateCommentRequest) (*models.Comment, error) {
	if d := authz.Decide(p, authz.CommentCreate, authz.Resource{}); !d.Allowed {
		return nil, apperrors.Authorization(d.Reason, "Authentication required")
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperrors.Validation("missing_fields", "Missing required fields: content")
	}
	if len(content) > 1000 {
		return nil, apperrors.Validation("content_too_long", "Comment must be at most 1000 characters")
	}

	var event models.Event
	if err := s.db.First(&event, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("event_not_found", "Event not found")
		}
		return nil, apperrors.Internal(err)
	}

	comment := models.Comment{
		ID:         uuid.New(),
		UserID:     p.UserID,
		EventID:    eventID,
		Content:    content,
		IsApproved: true,
	}

	if err := s.db.Create(&comment).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return &comment, nil
}

// ListComments returns approved, non-deleted comments for an event, newest
// first, with authors preloaded for serialization.
func (s *InteractionService) ListComments(eventID uuid.UUID, page, perPage int) ([]models.Comment, int64, error) {
	var event models.Event
	if err := s.db.First(&event, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, apperrors.NotFound("event_not_found", "Event not found")
		}
		return nil, 0, apperrors.Internal(err)
	}

	page, perPage = ClampPage(page, perPage, 20)

	base := s.db.Model(&models.Comment{}).
		Where("event_id = ? AND is_approved = ? AND is_deleted = ?", eventID, true, false)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}

	var comments []models.Comment
	err := s.db.Preload("Author").
		Where("event_id = ? AND is_approved = ? AND is_deleted = ?", eventID, true, false).
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&comments).Error
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return comments, total, nil
}

// ListUserComments returns a user's non-deleted comments, newest first,
// with events preloaded.
func (s *InteractionService) ListUserComments(userID uuid.UUID, page, perPage int) ([]models.Comment, int64, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, apperrors.NotFound("user_not_found", "User not found")
		}
		return nil, 0, apperrors.Internal(err)
	}

	page, perPage = ClampPage(page, perPage, 20)

	var total int64
	if err := s.db.Model(&models.Comment{}).
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}

	var comments []models.Comment
	err := s.db.Preload("Event").
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&comments).Error
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return comments, total, nil
}

// DeleteComment soft-deletes: the row stays, and every subsequent
// serialization substitutes the placeholder and drops attribution.
func (s *InteractionService) DeleteComment(p identity.Principal, commentID uuid.UUID) error {
	var comment models.Comment
	if err := s.db.First(&comment, "id = ?", commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("comment_not_found", "Comment not found")
		}
		return apperrors.Internal(err)
	}

	if d := authz.Decide(p, authz.CommentDelete, authz.Resource{OwnerUserID: comment.UserID}); !d.Allowed {
		return apperrors.Authorization(d.Reason, "Unauthorized to delete this comment")
	}

	if err := s.db.Model(&comment).Update("is_deleted", true).Error; err != nil {
		return apperrors.Internal(err)
	}
	return nil
}
