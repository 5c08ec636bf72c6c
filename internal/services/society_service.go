package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/unievent/unievent-backend/internal/apperrors"
	"github.com/unievent/unievent-backend/internal/authz"
	"github.com/unievent/unievent-backend/internal/dto"
	"github.com/unievent/unievent-backend/internal/identity"
	"github.com/unievent/unievent-backend/internal/models"
)

// SocietyService owns society registration, profile management and the
// cascading teardown of a society's subtree.
type SocietyService struct {
	db *gorm.DB
}

func NewSocietyService(db *gorm.DB) *SocietyService {
	return &SocietyService{db: db}
}

// Register creates a society owned by the principal and promotes a student
// account to the society role in the same transaction. One society per
// user, globally unique name.
func (s *SocietyService) Register(p identity.Principal, req *dto.RegisterSocietyRequest) (*models.Society, error) {
	if !p.Authenticated {
		return nil, apperrors.Authorization(authz.ReasonAuthRequired, "Authentication required")
	}
	if p.Role == models.RoleAdmin {
		return nil, apperrors.Validation("invalid_role", "Admin accounts cannot register societies")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Validation("missing_fields", "Missing required fields: name")
	}
	if len(name) > 150 {
		return nil, apperrors.Validation("invalid_name", "Society name must be at most 150 characters")
	}

	if p.SocietyID != nil {
		return nil, apperrors.Conflict("society_exists", "User already owns a society")
	}

	var taken models.Society
	if err := s.db.Where("name = ?", name).First(&taken).Error; err == nil {
		return nil, apperrors.Conflict("society_name_taken", "Society name already exists")
	}

	society := models.Society{
		ID:              uuid.New(),
		UserID:          p.UserID,
		Name:            name,
		Description:     strings.TrimSpace(req.Description),
		LogoURL:         req.LogoURL,
		CoverImage:      req.CoverImage,
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		WhatsappNumber:  req.WhatsappNumber,
		InstagramHandle: req.InstagramHandle,
		Website:         req.Website,
		IsActive:        true,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&society).Error; err != nil {
			return err
		}
		if p.Role == models.RoleStudent {
			if err := tx.Model(&models.User{}).Where("id = ?", p.UserID).
				Update("role", models.RoleSociety).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("society_name_taken", "Society name already exists")
		}
		return nil, apperrors.Internal(err)
	}

	return &society, nil
}

// Get loads a society by id.
func (s *SocietyService) Get(id uuid.UUID) (*models.Society, error) {
	var society models.Society
	if err := s.db.First(&society, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("society_not_found", "Society not found")
		}
		return nil, apperrors.Internal(err)
	}
	return &society, nil
}

// GetByOwner loads the society owned by a user, if any.
func (s *SocietyService) GetByOwner(userID uuid.UUID) (*models.Society, error) {
	var society models.Society
	if err := s.db.First(&society, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("society_not_found", "Society not found")
		}
		return nil, apperrors.Internal(err)
	}
	return &society, nil
}

// List returns active societies, newest first, paginated.
func (s *SocietyService) List(page, perPage int) ([]models.Society, int64, error) {
	page, perPage = ClampPage(page, perPage, 20)

	var total int64
	if err := s.db.Model(&models.Society{}).Where("is_active = ?", true).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal(err)
	}

	var societies []models.Society
	err := s.db.Where("is_active = ?", true).
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&societies).Error
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return societies, total, nil
}

// Update modifies the principal's own society profile.
func (s *SocietyService) Update(p identity.Principal, id uuid.UUID, req *dto.UpdateSocietyRequest) (*models.Society, error) {
	society, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if d := authz.Decide(p, authz.SocietyUpdate, authz.Resource{SocietyID: society.ID}); !d.Allowed {
		return nil, apperrors.Authorization(d.Reason, "Only the society owner can update this profile")
	}

	if req.Description != nil {
		society.Description = strings.TrimSpace(*req.Description)
	}
	if req.LogoURL != nil {
		society.LogoURL = *req.LogoURL
	}
	if req.CoverImage != nil {
		society.CoverImage = *req.CoverImage
	}
	if req.Email != nil {
		society.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.WhatsappNumber != nil {
		society.WhatsappNumber = *req.WhatsappNumber
	}
	if req.InstagramHandle != nil {
		society.InstagramHandle = *req.InstagramHandle
	}
	if req.Website != nil {
		society.Website = *req.Website
	}

	if err := s.db.Save(society).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return society, nil
}

// SetVerified flips the admin-settable verification flag.
func (s *SocietyService) SetVerified(p identity.Principal, id uuid.UUID, verified bool) (*models.Society, error) {
	society, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if d := authz.Decide(p, authz.SocietyVerify, authz.Resource{SocietyID: society.ID}); !d.Allowed {
		return nil, apperrors.Authorization(d.Reason, "Admin access required")
	}

	if err := s.db.Model(society).Update("is_verified", verified).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	society.IsVerified = verified
	return society, nil
}

// Delete removes a society and cascades to its events and, transitively,
// those events' comments and likes, in one transaction. No orphaned
// references survive.
func (s *SocietyService) Delete(p identity.Principal, id uuid.UUID) error {
	society, err := s.Get(id)
	if err != nil {
		return err
	}

	if d := authz.Decide(p, authz.SocietyDelete, authz.Resource{SocietyID: society.ID}); !d.Allowed {
		return apperrors.Authorization(d.Reason, "Only admin or the society owner can delete this society")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		eventIDs := func() *gorm.DB {
			return tx.Session(&gorm.Session{NewDB: true}).
				Model(&models.Event{}).Select("id").Where("society_id = ?", id)
		}
		if err := tx.Where("event_id IN (?)", eventIDs()).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id IN (?)", eventIDs()).Delete(&models.EventLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("society_id = ?", id).Delete(&models.Event{}).Error; err != nil {
			return err
		}
		return tx.Delete(society).Error
	})
	if err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// EventCount returns the number of events a society has published.
func (s *SocietyService) EventCount(id uuid.UUID) (int64, error) {
	var count int64
	if err := s.db.Model(&models.Event{}).Where("society_id = ?", id).Count(&count).Error; err != nil {
		return 0, apperrors.Internal(err)
	}
	return count, nil
}
