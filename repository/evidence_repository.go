package repository

import (
	"context"
	"fmt"

	"github.com/acr-platform/api-go/models"
	"gorm.io/gorm"
)

type EvidenceRepository interface {
	// FindForReport looks up an evidence row scoped to its owning report,
	// so a citizen can never touch another report's files.
	FindForReport(ctx context.Context, id, reportID uint) (*models.Evidence, error)
	Delete(ctx context.Context, id uint) error
}

type evidenceRepository struct {
	db *gorm.DB
}

func NewEvidenceRepository(db *gorm.DB) EvidenceRepository {
	return &evidenceRepository{db: db}
}

func (r *evidenceRepository) FindForReport(ctx context.Context, id, reportID uint) (*models.Evidence, error) {
	var evidence models.Evidence
	err := r.db.WithContext(ctx).Where("id = ? AND report_id = ?", id, reportID).First(&evidence).Error
	if err != nil {
		if translated := translate(err); translated == ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query evidence: %w", err)
	}
	return &evidence, nil
}

func (r *evidenceRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Evidence{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete evidence: %w", err)
	}
	return nil
}
