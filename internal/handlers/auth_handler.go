package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/unievent/unievent-backend/internal/apperrors"
	"github.com/unievent/unievent-backend/internal/authz"
	"github.com/unievent/unievent-backend/internal/dto"
	"github.com/unievent/unievent-backend/internal/identity"
	"github.com/unievent/unievent-backend/internal/models"
	"github.com/unievent/unievent-backend/internal/services"
)

// AuthHandler serves registration, login and user self-service endpoints.
type AuthHandler struct {
	auth         *services.AuthService
	societies    *services.SocietyService
	interactions *services.InteractionService
	resolver     *identity.Resolver
}

func NewAuthHandler(auth *services.AuthService, societies *services.SocietyService, interactions *services.InteractionService, resolver *identity.Resolver) *AuthHandler {
	return &AuthHandler{auth: auth, societies: societies, interactions: interactions, resolver: resolver}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	user, err := h.auth.Register(&req)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    dto.NewUserResponse(user, false),
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	token, user, err := h.auth.Login(&req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(dto.LoginResponse{
		Message:     "Login successful",
		AccessToken: token,
		TokenType:   "Bearer",
		User:        h.userWithSociety(user),
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	p := h.resolver.Resolve(c)
	if !p.Authenticated {
		return writeError(c, apperrors.Authentication("auth_required", "Unauthorized"))
	}

	user, err := h.auth.GetUser(p.UserID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{"user": h.userWithSociety(user)})
}

// GetUser is the public profile endpoint; emails stay private.
func (h *AuthHandler) GetUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return writeError(c, apperrors.Validation("invalid_id", "Invalid user ID"))
	}

	user, err := h.auth.PublicProfile(id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{"user": dto.NewUserResponse(user, false)})
}

func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	p := h.resolver.Resolve(c)
	if !p.Authenticated {
		return writeError(c, apperrors.Authentication("auth_required", "Unauthorized"))
	}
	return h.updateProfile(c, p, p.UserID)
}

// UpdateByID is the legacy variant: the path id must match the principal.
func (h *AuthHandler) UpdateByID(c *fiber.Ctx) error {
	p := h.resolver.Resolve(c)
	if !p.Authenticated {
		return writeError(c, apperrors.Authentication("auth_required", "Unauthorized"))
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return writeError(c, apperrors.Validation("invalid_id", "Invalid user ID"))
	}
	if d := authz.Decide(p, authz.UserModify, authz.Resource{OwnerUserID: id}); !d.Allowed {
		return writeError(c, apperrors.Authorization(d.Reason, "Unauthorized to update this profile"))
	}

	return h.updateProfile(c, p, id)
}

func (h *AuthHandler) updateProfile(c *fiber.Ctx, p identity.Principal, targetID uuid.UUID) error {
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	user, err := h.auth.UpdateProfile(p, targetID, &req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"user":    dto.NewUserResponse(user, true),
	})
}

func (h *AuthHandler) DeleteMe(c *fiber.Ctx) error {
	p := h.resolver.Resolve(c)
	if !p.Authenticated {
		return writeError(c, apperrors.Authentication("auth_required", "Unauthorized"))
	}

	if err := h.auth.Deactivate(p, p.UserID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Account deactivated successfully"})
}

// DeleteByID is the legacy variant: the path id must match the principal.
func (h *AuthHandler) DeleteByID(c *fiber.Ctx) error {
	p := h.resolver.Resolve(c)
	if !p.Authenticated {
		return writeError(c, apperrors.Authentication("auth_required", "Unauthorized"))
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return writeError(c, apperrors.Validation("invalid_id", "Invalid user ID"))
	}
	if d := authz.Decide(p, authz.UserModify, authz.Resource{OwnerUserID: id}); !d.Allowed {
		return writeError(c, apperrors.Authorization(d.Reason, "Unauthorized to delete this account"))
	}

	if err := h.auth.Deactivate(p, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Account deactivated successfully"})
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	p := h.resolver.Resolve(c)
	if !p.Authenticated {
		return writeError(c, apperrors.Authentication("auth_required", "Unauthorized"))
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	if err := h.auth.ChangePassword(p, p.UserID, &req); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password changed successfully"})
}

// UserComments lists a user's comments publicly, excluding deleted ones.
func (h *AuthHandler) UserComments(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return writeError(c, apperrors.Validation("invalid_id", "Invalid user ID"))
	}

	page := c.QueryInt("page", 1)
	perPage := c.QueryInt("per_page", 20)

	comments, total, err := h.interactions.ListUserComments(id, page, perPage)
	if err != nil {
		return writeError(c, err)
	}

	out := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		resp := dto.NewCommentResponse(&comments[i], nil)
		resp.Event = &dto.EventRef{ID: comments[i].Event.ID, Title: comments[i].Event.Title}
		out = append(out, resp)
	}

	return c.JSON(fiber.Map{
		"total_comments": total,
		"page":           page,
		"per_page":       perPage,
		"comments":       out,
	})
}

func (h *AuthHandler) userWithSociety(user *models.User) dto.UserResponse {
	resp := dto.NewUserResponse(user, true)
	if user.Role == models.RoleSociety {
		if society, err := h.societies.GetByOwner(user.ID); err == nil {
			s := dto.NewSocietyResponse(society)
			resp.Society = &s
		}
	}
	return resp
}
