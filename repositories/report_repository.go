package repositories

import (
	"forum-api/models"

	"gorm.io/gorm"
)

type ReportRepository interface {
	Create(report *models.Report) error
	GetByID(id uint) (*models.Report, error)
	Update(report *models.Report) error
	GetList(status models.ReportStatus, params models.ListParams) ([]models.Report, int64, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(report *models.Report) error {
	return r.db.Create(report).Error
}

func (r *reportRepository) GetByID(id uint) (*models.Report, error) {
	var report models.Report
	err := r.db.Preload("Reporter").Preload("TargetUser").Preload("TargetPost").
		First(&report, id).Error
	return &report, err
}

func (r *reportRepository) Update(report *models.Report) error {
	return r.db.Save(report).Error
}

func (r *reportRepository) GetList(status models.ReportStatus, params models.ListParams) ([]models.Report, int64, error) {
	var reports []models.Report
	var total int64

	query := r.db.Model(&models.Report{}).Preload("Reporter").Preload("TargetUser")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	query.Count(&total)

	offset := (params.Page - 1) * params.Limit
	err := query.Order("created_at desc").Offset(offset).Limit(params.Limit).
		Find(&reports).Error
	return reports, total, err
}
