package repositories

import (
	"forum-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PermissionRepository interface {
	GetByUserID(userID uint) (*models.ModeratorPermission, error)
	Save(grant *models.ModeratorPermission) error
	EnsureDefault(userID uint) error
	DeleteByUserID(userID uint) error
}

type permissionRepository struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) PermissionRepository {
	return &permissionRepository{db: db}
}

func (r *permissionRepository) GetByUserID(userID uint) (*models.ModeratorPermission, error) {
	var grant models.ModeratorPermission
	err := r.db.Where("user_id = ?", userID).First(&grant).Error
	return &grant, err
}

func (r *permissionRepository) Save(grant *models.ModeratorPermission) error {
	return r.db.Save(grant).Error
}

// EnsureDefault creates an all-false grant row if none exists. Idempotent.
func (r *permissionRepository) EnsureDefault(userID uint) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&models.ModeratorPermission{UserID: userID}).Error
}

func (r *permissionRepository) DeleteByUserID(userID uint) error {
	return r.db.Where("user_id = ?", userID).
		Delete(&models.ModeratorPermission{}).Error
}
