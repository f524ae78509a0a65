package repositories

import (
	"forum-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BadgeRepository interface {
	CreateWithAudit(badge *models.Badge, audit *models.TagAudit) error
	GetByID(id uint) (*models.Badge, error)
	GetByName(name string) (*models.Badge, error)
	GetAll() ([]models.Badge, error)
	DeleteWithAudit(id uint, audit *models.TagAudit) error
	Award(userID, badgeID uint) error
	Revoke(userID, badgeID uint) error
	GetListByUser(userID uint) ([]models.UserBadge, error)
}

type badgeRepository struct {
	db *gorm.DB
}

func NewBadgeRepository(db *gorm.DB) BadgeRepository {
	return &badgeRepository{db: db}
}

func (r *badgeRepository) CreateWithAudit(badge *models.Badge, audit *models.TagAudit) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(badge).Error; err != nil {
			return err
		}
		audit.NewValue = badge.Name
		return tx.Create(audit).Error
	})
}

func (r *badgeRepository) GetByID(id uint) (*models.Badge, error) {
	var badge models.Badge
	err := r.db.First(&badge, id).Error
	return &badge, err
}

func (r *badgeRepository) GetByName(name string) (*models.Badge, error) {
	var badge models.Badge
	err := r.db.Where("name = ?", name).First(&badge).Error
	return &badge, err
}

func (r *badgeRepository) GetAll() ([]models.Badge, error) {
	var badges []models.Badge
	err := r.db.Order("name asc").Find(&badges).Error
	return badges, err
}

func (r *badgeRepository) DeleteWithAudit(id uint, audit *models.TagAudit) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Badge{}, id).Error; err != nil {
			return err
		}
		return tx.Create(audit).Error
	})
}

func (r *badgeRepository) Award(userID, badgeID uint) error {
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.UserBadge{UserID: userID, BadgeID: badgeID}).Error
}

func (r *badgeRepository) Revoke(userID, badgeID uint) error {
	return r.db.Where("user_id = ? AND badge_id = ?", userID, badgeID).
		Delete(&models.UserBadge{}).Error
}

func (r *badgeRepository) GetListByUser(userID uint) ([]models.UserBadge, error) {
	var badges []models.UserBadge
	err := r.db.Where("user_id = ?", userID).
		Preload("Badge").
		Find(&badges).Error
	return badges, err
}
