package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/unievent/unievent-backend/internal/apperrors"
	"github.com/unievent/unievent-backend/internal/dto"
	"github.com/unievent/unievent-backend/internal/identity"
	"github.com/unievent/unievent-backend/internal/services"
)

// ModerationHandler serves the admin comment-review panel.
type ModerationHandler struct {
	moderation *services.ModerationService
	resolver   *identity.Resolver
}

func NewModerationHandler(moderation *services.ModerationService, resolver *identity.Resolver) *ModerationHandler {
	return &ModerationHandler{moderation: moderation, resolver: resolver}
}

func (h *ModerationHandler) ListComments(c *fiber.Ctx) error {
	p := h.resolver.Resolve(c)

	page := c.QueryInt("page", 1)
	perPage := c.QueryInt("per_page", 20)

	comments, total, err := h.moderation.ListUnapproved(p, page, perPage)
	if err != nil {
		return writeError(c, err)
	}

	out := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		resp := dto.NewCommentResponse(&comments[i], &comments[i].Author)
		resp.Event = &dto.EventRef{ID: comments[i].Event.ID, Title: comments[i].Event.Title}
		out = append(out, resp)
	}

	return c.JSON(fiber.Map{
		"total":    total,
		"page":     page,
		"per_page": perPage,
		"comments": out,
	})
}

func (h *ModerationHandler) ActionComment(c *fiber.Ctx) error {
	p := h.resolver.Resolve(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return writeError(c, apperrors.Validation("invalid_id", "Invalid comment ID"))
	}

	var req struct {
		Approved *bool `json:"approved"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if req.Approved == nil {
		return writeError(c, apperrors.Validation("missing_fields", "Missing required fields: approved"))
	}

	comment, err := h.moderation.SetApproval(p, id, *req.Approved)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Comment updated",
		"comment": dto.NewCommentResponse(comment, nil),
	})
}
