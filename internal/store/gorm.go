package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/radaiko/ReadRiser/internal/models"
	"gorm.io/gorm"
)

type GormUsers struct {
	DB *gorm.DB
}

func NewGormUsers(db *gorm.DB) *GormUsers {
	return &GormUsers{DB: db}
}

func (s *GormUsers) All(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.DB.WithContext(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *GormUsers) ByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormUsers) ByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).First(&user, "LOWER(username) = LOWER(?)", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormUsers) Save(ctx context.Context, user *models.User) error {
	return s.DB.WithContext(ctx).Save(user).Error
}

func (s *GormUsers) Delete(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Delete(&models.User{}, "id = ?", id).Error
}

type GormFiles struct {
	DB *gorm.DB
}

func NewGormFiles(db *gorm.DB) *GormFiles {
	return &GormFiles{DB: db}
}

func historyOrdered(db *gorm.DB) *gorm.DB {
	return db.Order("shared_at ASC, id ASC")
}

func (s *GormFiles) All(ctx context.Context) ([]models.File, error) {
	var files []models.File
	err := s.DB.WithContext(ctx).
		Preload("SharingHistory", historyOrdered).
		Order("uploaded_at ASC").
		Find(&files).Error
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (s *GormFiles) ByID(ctx context.Context, id uuid.UUID) (*models.File, error) {
	var file models.File
	err := s.DB.WithContext(ctx).
		Preload("SharingHistory", historyOrdered).
		First(&file, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// Save upserts the file row and inserts any history entries appended since
// the record was loaded, in one transaction. Existing history rows are never
// touched.
func (s *GormFiles) Save(ctx context.Context, file *models.File) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("SharingHistory").Save(file).Error; err != nil {
			return err
		}
		for i := range file.SharingHistory {
			event := &file.SharingHistory[i]
			if event.ID != uuid.Nil {
				continue
			}
			event.FileID = file.ID
			if err := tx.Create(event).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *GormFiles) Delete(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Delete(&models.File{}, "id = ?", id).Error
}
