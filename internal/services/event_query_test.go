package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unievent/unievent-backend/internal/apperrors"
	"github.com/unievent/unievent-backend/internal/models"
)

func TestListPublishedOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewEventService(db)

	owner := seedUser(t, db, "owner", models.RoleSociety)
	society := seedSociety(t, db, owner, "Chess Club")

	seedEvent(t, db, society, "Visible", time.Now().UTC().Add(24*time.Hour))
	draft := seedEvent(t, db, society, "Draft", time.Now().UTC().Add(48*time.Hour))
	require.NoError(t, db.Model(draft).Update("is_published", false).Error)

	events, total, err := svc.List(ListFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, events, 1)
	assert.Equal(t, "Visible", events[0].Event.Title)
}

func TestListCategoryFilterAndOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewEventService(db)

	owner := seedUser(t, db, "owner", models.RoleSociety)
	society := seedSociety(t, db, owner, "Chess Club")

	now := time.Now().UTC()
	seedEvent(t, db, society, "Earlier", now.Add(24*time.Hour))
	later := seedEvent(t, db, society, "Later", now.Add(72*time.Hour))
	require.NoError(t, db.Model(later).Update("category", "tech").Error)

	events, total, err := svc.List(ListFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, "Later", events[0].Event.Title)
	assert.Equal(t, "Earlier", events[1].Event.Title)

	events, total, err = svc.List(ListFilter{Category: "tech"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Later", events[0].Event.Title)
}

func TestListPaginationClamp(t *testing.T) {
	db := newTestDB(t)
	svc := NewEventService(db)

	owner := seedUser(t, db, "owner", models.RoleSociety)
	society := seedSociety(t, db, owner, "Chess Club")
	for i := 0; i < 3; i++ {
		seedEvent(t, db, society, "Event", time.Now().UTC().Add(time.Duration(i+1)*24*time.Hour))
	}

	// per_page above the cap is clamped, not rejected.
	events, total, err := svc.List(ListFilter{Page: 1, PerPage: 500})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, events, 3)

	events, _, err = svc.List(ListFilter{Page: 2, PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, events, 1)

	// Out-of-range pages are empty, not errors.
	events, _, err = svc.List(ListFilter{Page: 99, PerPage: 2})
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestSearch(t *testing.T) {
	db := newTestDB(t)
	svc := NewEventService(db)

	owner := seedUser(t, db, "owner", models.RoleSociety)
	society := seedSociety(t, db, owner, "Chess Club")
	seedEvent(t, db, society, "Hackathon 2026", time.Now().UTC().Add(24*time.Hour))
	seedEvent(t, db, society, "Movie Night", time.Now().UTC().Add(48*time.Hour))

	_, err := svc.Search("a", "", nil)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "query_too_short", appErr.Code)

	_, err = svc.Search("  h  ", "", nil)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	results, err := svc.Search("hack", "", nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Hackathon 2026", results[0].Event.Title)

	// Case-insensitive, matches description too.
	results, err = svc.Search("HACK", "", nil)
	require.NoError(t, err)
	assert.Len(t, results, 1)

	results, err = svc.Search("description of Movie", "", nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Movie Night", results[0].Event.Title)

	results, err = svc.Search("karaoke", "", nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestUpcomingWindow(t *testing.T) {
	db := newTestDB(t)
	svc := NewEventService(db)

	owner := seedUser(t, db, "owner", models.RoleSociety)
	society := seedSociety(t, db, owner, "Chess Club")

	now := time.Now().UTC()
	seedEvent(t, db, society, "Past", now.Add(-24*time.Hour))
	seedEvent(t, db, society, "Tomorrow", now.Add(24*time.Hour))
	seedEvent(t, db, society, "Next week", now.Add(7*24*time.Hour))
	seedEvent(t, db, society, "Far future", now.Add(90*24*time.Hour))

	events, err := svc.Upcoming(30, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Tomorrow", events[0].Event.Title)
	assert.Equal(t, "Next week", events[1].Event.Title)

	events, err = svc.Upcoming(0, 0)
	require.NoError(t, err)
	assert.Len(t, events, 2)

	events, err = svc.Upcoming(120, 10)
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestTrendingOrdersByLikes(t *testing.T) {
	db := newTestDB(t)
	svc := NewEventService(db)
	interactions := NewInteractionService(db)

	owner := seedUser(t, db, "owner", models.RoleSociety)
	society := seedSociety(t, db, owner, "Chess Club")

	seedEvent(t, db, society, "Cold", time.Now().UTC().Add(24*time.Hour))
	hot := seedEvent(t, db, society, "Hot", time.Now().UTC().Add(48*time.Hour))

	for _, name := range []string{"fan1", "fan2"} {
		fan := seedUser(t, db, name, models.RoleStudent)
		_, err := interactions.ToggleLike(principalFor(db, fan), hot.ID)
		require.NoError(t, err)
	}

	events, err := svc.Trending(10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Hot", events[0].Event.Title)
	assert.EqualValues(t, 2, events[0].LikeCount)
	assert.Equal(t, "Cold", events[1].Event.Title)
	assert.EqualValues(t, 0, events[1].LikeCount)
}

func TestBySociety(t *testing.T) {
	db := newTestDB(t)
	svc := NewEventService(db)

	owner := seedUser(t, db, "owner", models.RoleSociety)
	society := seedSociety(t, db, owner, "Chess Club")
	rival := seedUser(t, db, "rival", models.RoleSociety)
	other := seedSociety(t, db, rival, "Debate Club")

	seedEvent(t, db, society, "Ours", time.Now().UTC().Add(24*time.Hour))
	seedEvent(t, db, other, "Theirs", time.Now().UTC().Add(24*time.Hour))

	events, total, err := svc.BySociety(society.ID, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, events, 1)
	assert.Equal(t, "Ours", events[0].Event.Title)

	_, _, err = svc.BySociety(owner.ID, 1, 10)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestClampPage(t *testing.T) {
	page, perPage := ClampPage(0, 0, 10)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, perPage)

	page, perPage = ClampPage(-5, 1000, 10)
	assert.Equal(t, 1, page)
	assert.Equal(t, MaxPerPage, perPage)

	page, perPage = ClampPage(3, 25, 10)
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, perPage)
}
