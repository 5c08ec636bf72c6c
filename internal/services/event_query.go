package services

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/unievent/unievent-backend/internal/apperrors"
	"github.com/unievent/unievent-backend/internal/models"
)

// Listing read shapes. All are published-only, side-effect-free and safe
// for anonymous callers.

const (
	searchResultCap     = 20
	defaultUpcomingCap  = 10
	defaultUpcomingDays = 30
	defaultTrendingCap  = 10
)

// ListFilter narrows the main event listing.
type ListFilter struct {
	Category  string
	SocietyID *uuid.UUID
	Page      int
	PerPage   int
}

// List returns published events, newest event_date first, paginated.
func (s *EventService) List(f ListFilter) ([]EventWithLikes, int64, error) {
	page, perPage := ClampPage(f.Page, f.PerPage, 10)

	query := s.db.Model(&models.Event{}).Where("is_published = ?", true)
	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}
	if f.SocietyID != nil {
		query = query.Where("society_id = ?", *f.SocietyID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}

	var events []models.Event
	if err := query.Order("event_date DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&events).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}

	withLikes, err := s.attachLikes(events)
	if err != nil {
		return nil, 0, err
	}
	return withLikes, total, nil
}

// Search matches a case-insensitive substring against title or description.
// Queries shorter than two characters are rejected; results cap at 20.
func (s *EventService) Search(q, category string, societyID *uuid.UUID) ([]EventWithLikes, error) {
	q = strings.TrimSpace(q)
	if len(q) < 2 {
		return nil, apperrors.Validation("query_too_short", "Search query must be at least 2 characters")
	}

	pattern := "%" + strings.ToLower(q) + "%"
	query := s.db.Where("is_published = ?", true).
		Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if societyID != nil {
		query = query.Where("society_id = ?", *societyID)
	}

	var events []models.Event
	if err := query.Order("event_date DESC").Limit(searchResultCap).Find(&events).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return s.attachLikes(events)
}

// Upcoming returns published events inside [now, now+days], soonest first.
func (s *EventService) Upcoming(days, limit int) ([]EventWithLikes, error) {
	if days <= 0 {
		days = defaultUpcomingDays
	}
	if limit <= 0 {
		limit = defaultUpcomingCap
	}

	now := time.Now().UTC()
	until := now.AddDate(0, 0, days)

	var events []models.Event
	err := s.db.Where("is_published = ?", true).
		Where("event_date >= ? AND event_date <= ?", now, until).
		Order("event_date ASC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return s.attachLikes(events)
}

// Trending ranks published events by current like count, ties broken by a
// stable id order.
func (s *EventService) Trending(limit int) ([]EventWithLikes, error) {
	if limit <= 0 {
		limit = defaultTrendingCap
	}

	type row struct {
		models.Event
		LikeCount int64
	}

	var rows []row
	err := s.db.Raw(`
		SELECT events.*, COUNT(event_likes.user_id) AS like_count
		FROM events
		LEFT JOIN event_likes ON event_likes.event_id = events.id
		WHERE events.is_published = ?
		GROUP BY events.id
		ORDER BY like_count DESC, events.id
		LIMIT ?`, true, limit).Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	result := make([]EventWithLikes, 0, len(rows))
	for _, r := range rows {
		result = append(result, EventWithLikes{Event: r.Event, LikeCount: r.LikeCount})
	}
	return result, nil
}

// BySociety lists a society's published events, newest event_date first.
func (s *EventService) BySociety(societyID uuid.UUID, page, perPage int) ([]EventWithLikes, int64, error) {
	var society models.Society
	if err := s.db.First(&society, "id = ?", societyID).Error; err != nil {
		return nil, 0, apperrors.NotFound("society_not_found", "Society not found")
	}

	return s.List(ListFilter{SocietyID: &societyID, Page: page, PerPage: perPage})
}

func (s *EventService) attachLikes(events []models.Event) ([]EventWithLikes, error) {
	result := make([]EventWithLikes, len(events))
	if len(events) == 0 {
		return result, nil
	}

	ids := make([]uuid.UUID, len(events))
	for i, e := range events {
		ids[i] = e.ID
		result[i] = EventWithLikes{Event: e}
	}

	type likeRow struct {
		EventID uuid.UUID
		Count   int64
	}
	var rows []likeRow
	err := s.db.Model(&models.EventLike{}).
		Select("event_id, COUNT(*) as count").
		Where("event_id IN ?", ids).
		Group("event_id").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, r := range rows {
		counts[r.EventID] = r.Count
	}
	for i := range result {
		result[i].LikeCount = counts[result[i].Event.ID]
	}
	return result, nil
}
