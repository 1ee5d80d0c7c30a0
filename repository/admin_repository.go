package repository

import (
	"context"
	"fmt"

	"github.com/acr-platform/api-go/models"
	"gorm.io/gorm"
)

type AdminRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.Admin, error)
}

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) FindByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&admin).Error; err != nil {
		if translated := translate(err); translated == ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query admin: %w", err)
	}
	return &admin, nil
}
