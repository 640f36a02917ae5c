package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/radaiko/ReadRiser/internal/models"
	"github.com/radaiko/ReadRiser/internal/store"
	"gorm.io/gorm"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed opening in-memory sqlite database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed getting sql.DB from gorm: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	err = db.AutoMigrate(
		&models.User{},
		&models.File{},
		&models.ShareEvent{},
	)
	if err != nil {
		t.Fatalf("failed automigrating models: %v", err)
	}

	return db
}

func newTestStores(t *testing.T) (*store.GormUsers, *store.GormFiles, *gorm.DB) {
	t.Helper()
	db := setupServiceTestDB(t)
	return store.NewGormUsers(db), store.NewGormFiles(db), db
}

func seedUser(t *testing.T, db *gorm.DB, username string, role models.Role, parentID *uuid.UUID) *models.User {
	t.Helper()

	user := &models.User{
		Username:    username,
		DisplayName: username,
		Role:        role,
		ParentID:    parentID,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed seeding user %s: %v", username, err)
	}
	return user
}
