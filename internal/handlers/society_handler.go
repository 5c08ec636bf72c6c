package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/unievent/unievent-backend/internal/apperrors"
	"github.com/unievent/unievent-backend/internal/dto"
	"github.com/unievent/unievent-backend/internal/identity"
	"github.com/unievent/unievent-backend/internal/services"
)

// SocietyHandler serves society registration, profiles and admin actions.
type SocietyHandler struct {
	societies *services.SocietyService
	resolver  *identity.Resolver
}

func NewSocietyHandler(societies *services.SocietyService, resolver *identity.Resolver) *SocietyHandler {
	return &SocietyHandler{societies: societies, resolver: resolver}
}

func (h *SocietyHandler) Register(c *fiber.Ctx) error {
	p := h.resolver.Resolve(c)

	var req dto.RegisterSocietyRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	society, err := h.societies.Register(p, &req)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Society registered successfully",
		"society": dto.NewSocietyResponse(society),
	})
}

func (h *SocietyHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	perPage := c.QueryInt("per_page", 20)

	societies, total, err := h.societies.List(page, perPage)
	if err != nil {
		return writeError(c, err)
	}

	out := make([]dto.SocietyResponse, 0, len(societies))
	for i := range societies {
		out = append(out, dto.NewSocietyResponse(&societies[i]))
	}

	return c.JSON(fiber.Map{
		"total":    total,
		"page":     page,
		"per_page": perPage,
		"data":     out,
	})
}

func (h *SocietyHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return writeError(c, apperrors.Validation("invalid_id", "Invalid society ID"))
	}

	society, err := h.societies.Get(id)
	if err != nil {
		return writeError(c, err)
	}

	resp := dto.NewSocietyResponse(society)
	if count, err := h.societies.EventCount(id); err == nil {
		resp.EventCount = &count
	}

	return c.JSON(fiber.Map{"society": resp})
}

// UpdateMine updates the society owned by the caller.
func (h *SocietyHandler) UpdateMine(c *fiber.Ctx) error {
	p := h.resolver.Resolve(c)
	if p.SocietyID == nil {
		return writeError(c, apperrors.NotFound("society_not_found", "Society not found"))
	}

	var req dto.UpdateSocietyRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	society, err := h.societies.Update(p, *p.SocietyID, &req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Society updated successfully",
		"society": dto.NewSocietyResponse(society),
	})
}

func (h *SocietyHandler) Delete(c *fiber.Ctx) error {
	p := h.resolver.Resolve(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return writeError(c, apperrors.Validation("invalid_id", "Invalid society ID"))
	}

	if err := h.societies.Delete(p, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Society deleted successfully"})
}

// Verify sets the admin-only verification flag.
func (h *SocietyHandler) Verify(c *fiber.Ctx) error {
	p := h.resolver.Resolve(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return writeError(c, apperrors.Validation("invalid_id", "Invalid society ID"))
	}

	var req struct {
		Verified *bool `json:"verified"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	verified := true
	if req.Verified != nil {
		verified = *req.Verified
	}

	society, err := h.societies.SetVerified(p, id, verified)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Society verification updated",
		"society": dto.NewSocietyResponse(society),
	})
}
