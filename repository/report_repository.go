package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/acr-platform/api-go/models"
	"gorm.io/gorm"
)

// ReportFilter holds the admin dashboard/export criteria. All supplied
// fields are AND-ed together; date strings that fail to parse as
// YYYY-MM-DD are ignored.
type ReportFilter struct {
	Status   string
	Type     string
	DateFrom string
	DateTo   string
}

// ReportCounts are global KPIs computed over the whole table,
// independent of any filter.
type ReportCounts struct {
	Total    int64
	Pending  int64
	Reviewed int64
	Resolved int64
}

type ReportRepository interface {
	CreateWithEvidence(ctx context.Context, report *models.Report, evidence []models.Evidence) error
	FindByCode(ctx context.Context, code string) (*models.Report, error)
	FindByID(ctx context.Context, id uint) (*models.Report, error)
	UpdateWithEvidence(ctx context.Context, report *models.Report, newEvidence []models.Evidence) error
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter ReportFilter, page, pageSize int) ([]models.Report, int64, error)
	ListAll(ctx context.Context, filter ReportFilter) ([]models.Report, error)
	Counts(ctx context.Context) (*ReportCounts, error)
	DistinctTypes(ctx context.Context) ([]string, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

// CreateWithEvidence inserts the report and its evidence rows in one
// transaction. A report-code collision surfaces as ErrDuplicateCode.
func (r *reportRepository) CreateWithEvidence(ctx context.Context, report *models.Report, evidence []models.Evidence) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Evidence").Create(report).Error; err != nil {
			return err
		}
		for i := range evidence {
			evidence[i].ReportID = report.ID
			if err := tx.Create(&evidence[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if translated := translate(err); translated == ErrDuplicateCode {
			return ErrDuplicateCode
		}
		return fmt.Errorf("failed to create report: %w", err)
	}
	report.Evidence = append(report.Evidence, evidence...)
	return nil
}

func (r *reportRepository) FindByCode(ctx context.Context, code string) (*models.Report, error) {
	var report models.Report
	err := r.db.WithContext(ctx).Preload("Evidence").Where("report_code = ?", code).First(&report).Error
	if err != nil {
		if translated := translate(err); translated == ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query report by code: %w", err)
	}
	return &report, nil
}

func (r *reportRepository) FindByID(ctx context.Context, id uint) (*models.Report, error) {
	var report models.Report
	err := r.db.WithContext(ctx).Preload("Evidence").First(&report, id).Error
	if err != nil {
		if translated := translate(err); translated == ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query report by id: %w", err)
	}
	return &report, nil
}

// UpdateWithEvidence saves the edited report fields and inserts any new
// evidence rows in one transaction.
func (r *reportRepository) UpdateWithEvidence(ctx context.Context, report *models.Report, newEvidence []models.Evidence) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"corruption_type": report.CorruptionType,
			"description":     report.Description,
			"location":        report.Location,
		}
		if err := tx.Model(&models.Report{}).Where("id = ?", report.ID).Updates(updates).Error; err != nil {
			return err
		}
		for i := range newEvidence {
			newEvidence[i].ReportID = report.ID
			if err := tx.Create(&newEvidence[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to update report: %w", err)
	}
	return nil
}

func (r *reportRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := r.db.WithContext(ctx).Model(&models.Report{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": status})
	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the report and its evidence rows in one transaction.
// Backing files are the caller's responsibility, after this succeeds.
func (r *reportRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("report_id = ?", id).Delete(&models.Evidence{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Report{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err == ErrNotFound {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	return nil
}

func (r *reportRepository) List(ctx context.Context, filter ReportFilter, page, pageSize int) ([]models.Report, int64, error) {
	query := applyFilter(r.db.WithContext(ctx).Model(&models.Report{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reports: %w", err)
	}

	if page < 1 {
		page = 1
	}
	var reports []models.Report
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&reports).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, total, nil
}

func (r *reportRepository) ListAll(ctx context.Context, filter ReportFilter) ([]models.Report, error) {
	var reports []models.Report
	err := applyFilter(r.db.WithContext(ctx).Model(&models.Report{}), filter).
		Preload("Evidence").
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

func (r *reportRepository) Counts(ctx context.Context) (*ReportCounts, error) {
	counts := &ReportCounts{}
	db := r.db.WithContext(ctx)

	if err := db.Model(&models.Report{}).Count(&counts.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count reports: %w", err)
	}
	byStatus := []struct {
		status string
		dest   *int64
	}{
		{models.StatusPending, &counts.Pending},
		{models.StatusReviewed, &counts.Reviewed},
		{models.StatusResolved, &counts.Resolved},
	}
	for _, sc := range byStatus {
		if err := db.Model(&models.Report{}).Where("status = ?", sc.status).Count(sc.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to count %s reports: %w", sc.status, err)
		}
	}
	return counts, nil
}

func (r *reportRepository) DistinctTypes(ctx context.Context) ([]string, error) {
	var types []string
	err := r.db.WithContext(ctx).Model(&models.Report{}).
		Distinct().Order("corruption_type").Pluck("corruption_type", &types).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list corruption types: %w", err)
	}
	return types, nil
}

func applyFilter(db *gorm.DB, filter ReportFilter) *gorm.DB {
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		db = db.Where("corruption_type = ?", filter.Type)
	}
	if filter.DateFrom != "" {
		if from, err := time.Parse("2006-01-02", filter.DateFrom); err == nil {
			db = db.Where("created_at >= ?", from)
		}
	}
	if filter.DateTo != "" {
		if to, err := time.Parse("2006-01-02", filter.DateTo); err == nil {
			db = db.Where("created_at <= ?", to)
		}
	}
	return db
}
