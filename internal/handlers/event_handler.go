package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/unievent/unievent-backend/internal/apperrors"
	"github.com/unievent/unievent-backend/internal/dto"
	"github.com/unievent/unievent-backend/internal/identity"
	"github.com/unievent/unievent-backend/internal/services"
)

// EventHandler serves the event CRUD, listing and interaction endpoints.
type EventHandler struct {
	events       *services.EventService
	interactions *services.InteractionService
	societies    *services.SocietyService
	resolver     *identity.Resolver
}

func NewEventHandler(events *services.EventService, interactions *services.InteractionService, societies *services.SocietyService, resolver *identity.Resolver) *EventHandler {
	return &EventHandler{events: events, interactions: interactions, societies: societies, resolver: resolver}
}

func (h *EventHandler) Create(c *fiber.Ctx) error {
	p := h.resolver.Resolve(c)

	var req dto.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	event, err := h.events.Create(p, &req)
	if err != nil {
		return writeError(c, err)
	}

	resp := dto.NewEventResponse(event, 0)
	if society, err := h.societies.Get(event.SocietyID); err == nil {
		s := dto.NewSocietyResponse(society)
		resp.Organizer = &s
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Event created successfully",
		"event":   resp,
	})
}

func (h *EventHandler) List(c *fiber.Ctx) error {
	filter := services.ListFilter{
		Category: c.Query("category"),
		Page:     c.QueryInt("page", 1),
		PerPage:  c.QueryInt("per_page", 10),
	}
	if sid := c.Query("society_id"); sid != "" {
		id, err := uuid.Parse(sid)
		if err != nil {
			return writeError(c, apperrors.Validation("invalid_id", "Invalid society ID"))
		}
		filter.SocietyID = &id
	}

	events, total, err := h.events.List(filter)
	if err != nil {
		return writeError(c, err)
	}

	page, perPage := services.ClampPage(filter.Page, filter.PerPage, 10)
	pagination := dto.NewPagination(page, perPage, total)

	return c.JSON(fiber.Map{
		"total":        pagination.Total,
		"pages":        pagination.Pages,
		"current_page": pagination.Page,
		"per_page":     pagination.PerPage,
		"data":         h.eventList(events),
	})
}

func (h *EventHandler) Search(c *fiber.Ctx) error {
	var societyID *uuid.UUID
	if sid := c.Query("society_id"); sid != "" {
		id, err := uuid.Parse(sid)
		if err != nil {
			return writeError(c, apperrors.Validation("invalid_id", "Invalid society ID"))
		}
		societyID = &id
	}

	q := c.Query("q")
	events, err := h.events.Search(q, c.Query("category"), societyID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"query":         q,
		"results_count": len(events),
		"data":          h.eventList(events),
	})
}

func (h *EventHandler) Upcoming(c *fiber.Ctx) error {
	days := c.QueryInt("days", 30)
	limit := c.QueryInt("limit", 10)

	events, err := h.events.Upcoming(days, limit)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"days_ahead":    days,
		"results_count": len(events),
		"data":          h.eventList(events),
	})
}

func (h *EventHandler) Trending(c *fiber.Ctx) error {
	events, err := h.events.Trending(c.QueryInt("limit", 10))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"results_count": len(events),
		"data":          h.eventList(events),
	})
}

func (h *EventHandler) BySociety(c *fiber.Ctx) error {
	societyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return writeError(c, apperrors.Validation("invalid_id", "Invalid society ID"))
	}

	events, total, err := h.events.BySociety(societyID, c.QueryInt("page", 1), c.QueryInt("per_page", 10))
	if err != nil {
		return writeError(c, err)
	}

	society, err := h.societies.Get(societyID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"society":      dto.NewSocietyResponse(society),
		"events_count": total,
		"data":         h.eventList(events),
	})
}

func (h *EventHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return writeError(c, apperrors.Validation("invalid_id", "Invalid event ID"))
	}

	detail, err := h.events.Get(id)
	if err != nil {
		return writeError(c, err)
	}

	resp := dto.NewEventResponse(&detail.Event, detail.LikeCount)
	organizer := dto.NewSocietyResponse(&detail.Organizer)
	resp.Organizer = &organizer

	comments := make([]dto.CommentResponse, 0, len(detail.Comments))
	for i := range detail.Comments {
		comments = append(comments, dto.NewCommentResponse(&detail.Comments[i], &detail.Comments[i].Author))
	}
	resp.Comments = comments
	count := int64(len(comments))
	resp.CommentsCount = &count

	return c.JSON(resp)
}

func (h *EventHandler) Update(c *fiber.Ctx) error {
	p := h.resolver.Resolve(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return writeError(c, apperrors.Validation("invalid_id", "Invalid event ID"))
	}

	var req dto.UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	event, err := h.events.Update(p, id, &req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Event updated successfully",
		"event":   dto.NewEventResponse(event, 0),
	})
}

func (h *EventHandler) Delete(c *fiber.Ctx) error {
	p := h.resolver.Resolve(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return writeError(c, apperrors.Validation("invalid_id", "Invalid event ID"))
	}

	if err := h.events.Delete(p, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Event deleted successfully"})
}

// ToggleLike flips the caller's like on an event.
func (h *EventHandler) ToggleLike(c *fiber.Ctx) error {
	p := h.resolver.Resolve(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return writeError(c, apperrors.Validation("invalid_id", "Invalid event ID"))
	}

	resp, err := h.interactions.ToggleLike(p, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

func (h *EventHandler) CreateComment(c *fiber.Ctx) error {
	p := h.resolver.Resolve(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return writeError(c, apperrors.Validation("invalid_id", "Invalid event ID"))
	}

	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	comment, err := h.interactions.CreateComment(p, id, &req)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Comment posted successfully",
		"comment": dto.NewCommentResponse(comment, nil),
	})
}

func (h *EventHandler) ListComments(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return writeError(c, apperrors.Validation("invalid_id", "Invalid event ID"))
	}

	page := c.QueryInt("page", 1)
	perPage := c.QueryInt("per_page", 20)

	comments, total, err := h.interactions.ListComments(id, page, perPage)
	if err != nil {
		return writeError(c, err)
	}

	out := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, dto.NewCommentResponse(&comments[i], &comments[i].Author))
	}

	return c.JSON(fiber.Map{
		"total":    total,
		"page":     page,
		"per_page": perPage,
		"comments": out,
	})
}

func (h *EventHandler) DeleteComment(c *fiber.Ctx) error {
	p := h.resolver.Resolve(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return writeError(c, apperrors.Validation("invalid_id", "Invalid comment ID"))
	}

	if err := h.interactions.DeleteComment(p, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Comment deleted successfully"})
}

func (h *EventHandler) eventList(events []services.EventWithLikes) []dto.EventResponse {
	out := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		resp := dto.NewEventResponse(&events[i].Event, events[i].LikeCount)
		if society, err := h.societies.Get(events[i].Event.SocietyID); err == nil {
			s := dto.NewSocietyResponse(society)
			resp.Organizer = &s
		}
		out = append(out, resp)
	}
	return out
}
