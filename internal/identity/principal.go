// Package identity resolves the acting principal for a request from the
// verified JWT in the Fiber context.
package identity

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/unievent/unievent-backend/internal/models"
)

// Principal is the resolved identity, role and ownership context of the
// caller for one request. The zero value is the anonymous principal.
type Principal struct {
	UserID        uuid.UUID
	Username      string
	Role          string
	SocietyID     *uuid.UUID
	Authenticated bool
}

// Anonymous is the principal for unauthenticated callers.
func Anonymous() Principal {
	return Principal{}
}

func (p Principal) IsAdmin() bool {
	return p.Authenticated && p.Role == models.RoleAdmin
}

func (p Principal) IsSociety() bool {
	return p.Authenticated && p.Role == models.RoleSociety
}

// OwnsSociety reports whether the principal owns the given society.
func (p Principal) OwnsSociety(societyID uuid.UUID) bool {
	return p.SocietyID != nil && *p.SocietyID == societyID
}

// Resolver turns JWT claims into a Principal backed by current store state.
type Resolver struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// Resolve fails closed: a missing or malformed claim yields Anonymous,
// never an error. Role and society ownership are re-read from the store on
// every call rather than trusted from the token, so long-lived credentials
// with stale role claims cannot authorize resource-mutating actions.
func (r *Resolver) Resolve(c *fiber.Ctx) Principal {
	userID, err := userIDFromToken(c)
	if err != nil {
		return Anonymous()
	}
	return r.ResolveUser(userID)
}

// ResolveUser resolves a principal directly from a user id.
func (r *Resolver) ResolveUser(userID uuid.UUID) Principal {
	var user models.User
	if err := r.db.First(&user, "id = ?", userID).Error; err != nil {
		return Anonymous()
	}
	if !user.IsActive {
		return Anonymous()
	}

	p := Principal{
		UserID:        user.ID,
		Username:      user.Username,
		Role:          user.Role,
		Authenticated: true,
	}

	var society models.Society
	if err := r.db.First(&society, "user_id = ?", user.ID).Error; err == nil {
		id := society.ID
		p.SocietyID = &id
	}

	return p
}

func userIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return uuid.Nil, errors.New("no token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}

	return uuid.Parse(sub)
}
