package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/unievent/unievent-backend/internal/config"
	"github.com/unievent/unievent-backend/internal/identity"
	"github.com/unievent/unievent-backend/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Society{},
		&models.Event{},
		&models.Comment{},
		&models.EventLike{},
	))

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret: "test-secret",
		JWTExpiry: 720 * time.Hour,
	}
}

func seedUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        username + "@x.com",
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedSociety(t *testing.T, db *gorm.DB, owner *models.User, name string) *models.Society {
	t.Helper()

	society := models.Society{
		ID:       uuid.New(),
		UserID:   owner.ID,
		Name:     name,
		IsActive: true,
	}
	require.NoError(t, db.Create(&society).Error)
	return &society
}

func seedEvent(t *testing.T, db *gorm.DB, society *models.Society, title string, eventDate time.Time) *models.Event {
	t.Helper()

	event := models.Event{
		ID:          uuid.New(),
		SocietyID:   society.ID,
		Title:       title,
		Description: "description of " + title,
		EventDate:   eventDate,
		Venue:       "Main Hall",
		IsPublished: true,
	}
	require.NoError(t, db.Create(&event).Error)
	return &event
}

func principalFor(db *gorm.DB, user *models.User) identity.Principal {
	return identity.NewResolver(db).ResolveUser(user.ID)
}
