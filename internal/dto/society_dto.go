package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/unievent/unievent-backend/internal/models"
)

type RegisterSocietyRequest struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	LogoURL         string `json:"logo_url"`
	CoverImage      string `json:"cover_image"`
	Email           string `json:"email"`
	WhatsappNumber  string `json:"whatsapp_number"`
	InstagramHandle string `json:"instagram_handle"`
	Website         string `json:"website"`
}

type UpdateSocietyRequest struct {
	Description     *string `json:"description"`
	LogoURL         *string `json:"logo_url"`
	CoverImage      *string `json:"cover_image"`
	Email           *string `json:"email"`
	WhatsappNumber  *string `json:"whatsapp_number"`
	InstagramHandle *string `json:"instagram_handle"`
	Website         *string `json:"website"`
}

type SocietyResponse struct {
	ID              uuid.UUID     `json:"id"`
	Name            string        `json:"name"`
	Description     string        `json:"description,omitempty"`
	LogoURL         string        `json:"logo_url,omitempty"`
	CoverImage      string        `json:"cover_image,omitempty"`
	Email           string        `json:"email,omitempty"`
	WhatsappNumber  string        `json:"whatsapp_number,omitempty"`
	InstagramHandle string        `json:"instagram_handle,omitempty"`
	Website         string        `json:"website,omitempty"`
	IsVerified      bool          `json:"is_verified"`
	IsActive        bool          `json:"is_active"`
	MemberCount     int           `json:"member_count"`
	EventCount      *int64        `json:"event_count,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	Owner           *UserResponse `json:"owner,omitempty"`
}

func NewSocietyResponse(s *models.Society) SocietyResponse {
	return SocietyResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		LogoURL:         s.LogoURL,
		CoverImage:      s.CoverImage,
		Email:           s.Email,
		WhatsappNumber:  s.WhatsappNumber,
		InstagramHandle: s.InstagramHandle,
		Website:         s.Website,
		IsVerified:      s.IsVerified,
		IsActive:        s.IsActive,
		MemberCount:     s.MemberCount,
		CreatedAt:       s.CreatedAt,
	}
}
