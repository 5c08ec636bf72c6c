package services

import (
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unievent/unievent-backend/internal/apperrors"
	"github.com/unievent/unievent-backend/internal/dto"
	"github.com/unievent/unievent-backend/internal/models"
)

func TestRegister(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	user, err := svc.Register(&dto.RegisterRequest{
		Username: "alice",
		Email:    "Alice@Example.COM",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, models.RoleStudent, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "secret1", user.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	tests := []struct {
		name string
		req  dto.RegisterRequest
		code string
	}{
		{"missing everything", dto.RegisterRequest{}, "missing_fields"},
		{"missing password", dto.RegisterRequest{Username: "bob", Email: "bob@x.com"}, "missing_fields"},
		{"bad email", dto.RegisterRequest{Username: "bob", Email: "not-an-email", Password: "secret1"}, "invalid_email"},
		{"short password", dto.RegisterRequest{Username: "bob", Email: "bob@x.com", Password: "12345"}, "weak_password"},
		{"short username", dto.RegisterRequest{Username: "ab", Email: "bob@x.com", Password: "secret1"}, "invalid_username"},
		{"long username", dto.RegisterRequest{Username: strings.Repeat("a", 81), Email: "bob@x.com", Password: "secret1"}, "invalid_username"},
		{"username with spaces", dto.RegisterRequest{Username: "bob smith", Email: "bob@x.com", Password: "secret1"}, "invalid_username"},
		{"admin role rejected", dto.RegisterRequest{Username: "bob", Email: "bob@x.com", Password: "secret1", Role: "admin"}, "invalid_role"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(&tt.req)
			require.Error(t, err)
			appErr, ok := apperrors.As(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.KindValidation, appErr.Kind)
			assert.Equal(t, tt.code, appErr.Code)
		})
	}
}

func TestRegisterDuplicates(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(&dto.RegisterRequest{Username: "alice", Email: "alice@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Register(&dto.RegisterRequest{Username: "alice", Email: "other@x.com", Password: "secret1"})
	require.True(t, apperrors.IsKind(err, apperrors.KindConflict))

	_, err = svc.Register(&dto.RegisterRequest{Username: "alice2", Email: "ALICE@x.com", Password: "secret1"})
	require.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	cfg := testConfig()
	svc := NewAuthService(db, cfg)

	_, err := svc.Register(&dto.RegisterRequest{Username: "alice", Email: "alice@x.com", Password: "secret1"})
	require.NoError(t, err)

	token, user, err := svc.Login(&dto.LoginRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, user.ID.String(), claims["sub"])
	assert.Equal(t, models.RoleStudent, claims["role"])
	assert.Equal(t, "alice", claims["username"])
}

func TestLoginInvalidCredentials(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(&dto.RegisterRequest{Username: "alice", Email: "alice@x.com", Password: "secret1"})
	require.NoError(t, err)

	// Unknown username and wrong password fail identically.
	_, _, err = svc.Login(&dto.LoginRequest{Username: "nobody", Password: "secret1"})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindAuthentication, appErr.Kind)
	assert.Equal(t, "invalid_credentials", appErr.Code)

	_, _, err = svc.Login(&dto.LoginRequest{Username: "alice", Password: "wrong"})
	appErr, ok = apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindAuthentication, appErr.Kind)
	assert.Equal(t, "invalid_credentials", appErr.Code)
}

func TestLoginDeactivatedAccount(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	user, err := svc.Register(&dto.RegisterRequest{Username: "alice", Email: "alice@x.com", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(principalFor(db, user), user.ID))

	_, _, err = svc.Login(&dto.LoginRequest{Username: "alice", Password: "secret1"})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindAuthorization, appErr.Kind)
	assert.Equal(t, "account_deactivated", appErr.Code)
}

func TestUpdateProfile(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	alice := seedUser(t, db, "alice", models.RoleStudent)
	bob := seedUser(t, db, "bob", models.RoleStudent)

	first := "Alice"
	bio := "hello"
	updated, err := svc.UpdateProfile(principalFor(db, alice), alice.ID, &dto.UpdateProfileRequest{
		FirstName: &first,
		Bio:       &bio,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice", updated.FirstName)
	assert.Equal(t, "hello", updated.Bio)

	_, err = svc.UpdateProfile(principalFor(db, bob), alice.ID, &dto.UpdateProfileRequest{Bio: &bio})
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthorization))
}

func TestChangePassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	user, err := svc.Register(&dto.RegisterRequest{Username: "alice", Email: "alice@x.com", Password: "secret1"})
	require.NoError(t, err)
	p := principalFor(db, user)

	err = svc.ChangePassword(p, user.ID, &dto.ChangePasswordRequest{OldPassword: "wrong", NewPassword: "newsecret"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthentication))

	err = svc.ChangePassword(p, user.ID, &dto.ChangePasswordRequest{OldPassword: "secret1", NewPassword: "short"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	require.NoError(t, svc.ChangePassword(p, user.ID, &dto.ChangePasswordRequest{OldPassword: "secret1", NewPassword: "newsecret"}))

	_, _, err = svc.Login(&dto.LoginRequest{Username: "alice", Password: "secret1"})
	require.Error(t, err)
	_, _, err = svc.Login(&dto.LoginRequest{Username: "alice", Password: "newsecret"})
	require.NoError(t, err)
}

func TestDeactivateKeepsRow(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	alice := seedUser(t, db, "alice", models.RoleStudent)
	bob := seedUser(t, db, "bob", models.RoleStudent)

	err := svc.Deactivate(principalFor(db, bob), alice.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthorization))

	require.NoError(t, svc.Deactivate(principalFor(db, alice), alice.ID))

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", alice.ID).Error)
	assert.False(t, stored.IsActive)

	_, err = svc.PublicProfile(alice.ID)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "account_inactive", appErr.Code)
}
