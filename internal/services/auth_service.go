package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/unievent/unievent-backend/internal/apperrors"
	"github.com/unievent/unievent-backend/internal/authz"
	"github.com/unievent/unievent-backend/internal/config"
	"github.com/unievent/unievent-backend/internal/dto"
	"github.com/unievent/unievent-backend/internal/identity"
	"github.com/unievent/unievent-backend/internal/models"
)

var (
	usernameRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	emailRe    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// AuthService owns registration, login and user self-service.
type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// Register creates a new account. Only the student and society roles are
// accepted; admin is never assignable here.
func (s *AuthService) Register(req *dto.RegisterRequest) (*models.User, error) {
	var missing []string
	if strings.TrimSpace(req.Username) == "" {
		missing = append(missing, "username")
	}
	if strings.TrimSpace(req.Email) == "" {
		missing = append(missing, "email")
	}
	if req.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, apperrors.Validation("missing_fields",
			"Missing required fields: "+strings.Join(missing, ", "))
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !emailRe.MatchString(email) {
		return nil, apperrors.Validation("invalid_email", "Invalid email format")
	}

	if len(req.Password) < 6 {
		return nil, apperrors.Validation("weak_password", "Password must be at least 6 characters long")
	}

	username := strings.TrimSpace(req.Username)
	if len(username) < 3 || len(username) > 80 {
		return nil, apperrors.Validation("invalid_username", "Username must be between 3 and 80 characters")
	}
	if !usernameRe.MatchString(username) {
		return nil, apperrors.Validation("invalid_username",
			"Username can only contain letters, numbers, hyphens, and underscores")
	}

	role := strings.ToLower(req.Role)
	if role == "" {
		role = models.RoleStudent
	}
	if role != models.RoleStudent && role != models.RoleSociety {
		return nil, apperrors.Validation("invalid_role", `Invalid role. Must be either "student" or "society"`)
	}

	var existing models.User
	if err := s.db.Where("username = ?", username).First(&existing).Error; err == nil {
		return nil, apperrors.Conflict("username_taken", "Username already exists")
	}
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, apperrors.Conflict("email_taken", "Email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to hash password: %w", err))
	}

	user := models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		IsActive:     true,
	}

	if err := s.db.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("username_taken", "Username or email already exists")
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to create user: %w", err))
	}

	return &user, nil
}

// Login verifies credentials and issues a signed access token. Bad username
// and bad password fail identically; deactivated accounts fail distinctly.
func (s *AuthService) Login(req *dto.LoginRequest) (string, *models.User, error) {
	if req.Username == "" || req.Password == "" {
		return "", nil, apperrors.Validation("missing_fields", "Missing username or password")
	}

	var user models.User
	if err := s.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		return "", nil, apperrors.Authentication("invalid_credentials", "Invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, apperrors.Authentication("invalid_credentials", "Invalid username or password")
	}

	if !user.IsActive {
		return "", nil, apperrors.Authorization("account_deactivated", "This account has been deactivated")
	}

	token, err := s.GenerateToken(&user)
	if err != nil {
		return "", nil, apperrors.Internal(err)
	}

	return token, &user, nil
}

// GenerateToken signs an HS256 access token carrying id, role and username.
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"role":     user.Role,
		"username": user.Username,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(s.cfg.JWTExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// GetUser loads a user by id.
func (s *AuthService) GetUser(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user_not_found", "User not found")
		}
		return nil, apperrors.Internal(err)
	}
	return &user, nil
}

// PublicProfile loads a user for public display. Inactive accounts are not
// publicly visible.
func (s *AuthService) PublicProfile(id uuid.UUID) (*models.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.Authorization("account_inactive", "User account is inactive")
	}
	return user, nil
}

// UpdateProfile updates the target user's profile fields. The principal
// must be the account owner.
func (s *AuthService) UpdateProfile(p identity.Principal, targetID uuid.UUID, req *dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetUser(targetID)
	if err != nil {
		return nil, err
	}

	if d := authz.Decide(p, authz.UserModify, authz.Resource{OwnerUserID: user.ID}); !d.Allowed {
		return nil, apperrors.Authorization(d.Reason, "Unauthorized to update this profile")
	}

	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Bio != nil {
		user.Bio = strings.TrimSpace(*req.Bio)
	}
	if req.ProfileImage != nil {
		user.ProfileImage = strings.TrimSpace(*req.ProfileImage)
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return user, nil
}

// ChangePassword verifies the old password before setting a new one.
func (s *AuthService) ChangePassword(p identity.Principal, targetID uuid.UUID, req *dto.ChangePasswordRequest) error {
	user, err := s.GetUser(targetID)
	if err != nil {
		return err
	}

	if d := authz.Decide(p, authz.UserModify, authz.Resource{OwnerUserID: user.ID}); !d.Allowed {
		return apperrors.Authorization(d.Reason, "Unauthorized to change this password")
	}

	if req.OldPassword == "" || req.NewPassword == "" {
		return apperrors.Validation("missing_fields", "Missing old_password or new_password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return apperrors.Authentication("incorrect_password", "Current password is incorrect")
	}

	if len(req.NewPassword) < 6 {
		return apperrors.Validation("weak_password", "Password must be at least 6 characters long")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Internal(err)
	}

	user.PasswordHash = string(hash)
	if err := s.db.Save(user).Error; err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// Deactivate soft-deletes the account. The row stays; login is refused
// afterwards with the deactivated signal.
func (s *AuthService) Deactivate(p identity.Principal, targetID uuid.UUID) error {
	user, err := s.GetUser(targetID)
	if err != nil {
		return err
	}

	if d := authz.Decide(p, authz.UserModify, authz.Resource{OwnerUserID: user.ID}); !d.Allowed {
		return apperrors.Authorization(d.Reason, "Unauthorized to delete this account")
	}

	if err := s.db.Model(user).Update("is_active", false).Error; err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
