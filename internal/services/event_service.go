package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/unievent/unievent-backend/internal/apperrors"
	"github.com/unievent/unievent-backend/internal/authz"
	"github.com/unievent/unievent-backend/internal/dto"
	"github.com/unievent/unievent-backend/internal/identity"
	"github.com/unievent/unievent-backend/internal/models"
)

// EventService owns event CRUD and the listing/search/trending queries.
type EventService struct {
	db *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db}
}

// EventWithLikes pairs an event with its current like count for listings.
type EventWithLikes struct {
	Event     models.Event
	LikeCount int64
}

// EventDetail is the full read shape for a single event.
type EventDetail struct {
	Event     models.Event
	Organizer models.Society
	LikeCount int64
	Comments  []models.Comment
}

var eventDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseEventDate accepts ISO-8601 timestamps; a bare date is normalized to
// midnight.
func ParseEventDate(s string) (time.Time, error) {
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.New("unparseable date")
}

// Create publishes a new event for the principal's society.
func (s *EventService) Create(p identity.Principal, req *dto.CreateEventRequest) (*models.Event, error) {
	if d := authz.Decide(p, authz.EventCreate, authz.Resource{}); !d.Allowed {
		switch d.Reason {
		case authz.ReasonSocietyRoleRequired:
			return nil, apperrors.Authorization(d.Reason, "Only societies can create events")
		case authz.ReasonSocietyProfileRequired:
			return nil, apperrors.Authorization(d.Reason, "User must have a society profile to create events")
		default:
			return nil, apperrors.Authorization(d.Reason, "Authentication required")
		}
	}

	var missing []string
	if strings.TrimSpace(req.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(req.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(req.EventDate) == "" {
		missing = append(missing, "event_date")
	}
	if strings.TrimSpace(req.Venue) == "" {
		missing = append(missing, "venue")
	}
	if len(missing) > 0 {
		return nil, apperrors.Validation("missing_fields",
			"Missing required fields: "+strings.Join(missing, ", "))
	}

	eventDate, err := ParseEventDate(req.EventDate)
	if err != nil {
		return nil, apperrors.Validation("invalid_date", "Invalid date format. Use ISO format (YYYY-MM-DD HH:MM:SS)")
	}

	event := models.Event{
		ID:               uuid.New(),
		SocietyID:        *p.SocietyID,
		Title:            strings.TrimSpace(req.Title),
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Category:         req.Category,
		EventDate:        eventDate,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		Venue:            req.Venue,
		Poster:           req.Poster,
		GoogleFormLink:   req.GoogleFormLink,
		IsPublished:      true,
	}

	if err := s.db.Create(&event).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return &event, nil
}

// Get loads the full detail view and bumps the view counter. Existence is
// the only gate: reads are open to everyone including Anonymous.
func (s *EventService) Get(id uuid.UUID) (*EventDetail, error) {
	event, err := s.find(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(event).Update("view_count", gorm.Expr("view_count + 1")).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	event.ViewCount++

	var organizer models.Society
	if err := s.db.First(&organizer, "id = ?", event.SocietyID).Error; err != nil {
		return nil, apperrors.Internal(err)
	}

	likes, err := s.likeCount(id)
	if err != nil {
		return nil, err
	}

	var comments []models.Comment
	if err := s.db.Preload("Author").
		Where("event_id = ? AND is_approved = ? AND is_deleted = ?", id, true, false).
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		return nil, apperrors.Internal(err)
	}

	return &EventDetail{
		Event:     *event,
		Organizer: organizer,
		LikeCount: likes,
		Comments:  comments,
	}, nil
}

// Update applies a partial update. Existence is checked before ownership,
// so non-owners get Forbidden only for events that exist.
func (s *EventService) Update(p identity.Principal, id uuid.UUID, req *dto.UpdateEventRequest) (*models.Event, error) {
	event, err := s.find(id)
	if err != nil {
		return nil, err
	}

	if d := authz.Decide(p, authz.EventUpdate, authz.Resource{OwnerSocietyID: event.SocietyID}); !d.Allowed {
		return nil, apperrors.Authorization(d.Reason,
			"Forbidden. Only the society that created this event can update it")
	}

	if req.Title != nil {
		event.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.ShortDescription != nil {
		event.ShortDescription = *req.ShortDescription
	}
	if req.Category != nil {
		event.Category = *req.Category
	}
	if req.EventDate != nil {
		eventDate, err := ParseEventDate(*req.EventDate)
		if err != nil {
			return nil, apperrors.Validation("invalid_date", "Invalid date format")
		}
		event.EventDate = eventDate
	}
	if req.StartTime != nil {
		event.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		event.EndTime = *req.EndTime
	}
	if req.Venue != nil {
		event.Venue = *req.Venue
	}
	if req.Poster != nil {
		event.Poster = *req.Poster
	}
	if req.GoogleFormLink != nil {
		event.GoogleFormLink = *req.GoogleFormLink
	}

	if err := s.db.Save(event).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return event, nil
}

// Delete removes an event and its comments and likes in one transaction.
func (s *EventService) Delete(p identity.Principal, id uuid.UUID) error {
	event, err := s.find(id)
	if err != nil {
		return err
	}

	if d := authz.Decide(p, authz.EventDelete, authz.Resource{OwnerSocietyID: event.SocietyID}); !d.Allowed {
		return apperrors.Authorization(d.Reason, "Forbidden. Only admin or event owner can delete")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&models.EventLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(event).Error
	})
	if err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *EventService) find(id uuid.UUID) (*models.Event, error) {
	var event models.Event
	if err := s.db.First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("event_not_found", "Event not found")
		}
		return nil, apperrors.Internal(err)
	}
	return &event, nil
}

func (s *EventService) likeCount(eventID uuid.UUID) (int64, error) {
	var count int64
	if err := s.db.Model(&models.EventLike{}).Where("event_id = ?", eventID).Count(&count).Error; err != nil {
		return 0, apperrors.Internal(err)
	}
	return count, nil
}
