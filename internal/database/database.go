package database

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/radaiko/ReadRiser/internal/config"
	"github.com/radaiko/ReadRiser/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(cfg config.DBConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host,
			cfg.Port,
			cfg.User,
			cfg.Password,
			cfg.Name,
			cfg.SSLMode,
		)
		dialector = postgres.Open(dsn)
	case "sqlite", "":
		dialector = sqlite.Open(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown db driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	if err := seedAdminUser(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.File{},
		&models.ShareEvent{},
	)
}

// seedAdminUser bootstraps the first admin when the users table is empty.
// Without it nobody could create anyone: only existing users may create users.
func seedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	admin := models.User{
		Username:    "admin",
		DisplayName: "System Admin",
		Role:        models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	// the bootstrap admin records itself as its own creator
	return db.Model(&admin).Update("created_by", admin.ID).Error
}
