package config

import (
	"fmt"

	"github.com/acr-platform/api-go/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.Admin{}, &models.Report{}, &models.Evidence{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return db, nil
}

// SeedAdmin creates the configured admin account if it does not exist yet,
// so a fresh deployment is usable without a manual setup step.
func SeedAdmin(db *gorm.DB, cfg *Config) error {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.Admin{}).Where("username = ?", cfg.AdminUsername).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check for existing admin: %w", err)
	}
	if count > 0 {
		return nil
	}

	admin := &models.Admin{
		Username: cfg.AdminUsername,
		Email:    cfg.AdminEmail,
	}
	if err := admin.SetPassword(cfg.AdminPassword); err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	Logger.Infow("created default admin account", "username", cfg.AdminUsername)
	return nil
}
