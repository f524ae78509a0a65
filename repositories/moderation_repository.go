package repositories

import (
	"time"

	"forum-api/models"

	"gorm.io/gorm"
)

type ModerationRepository interface {
	AppendRecord(record *models.BanRecord) error
	ApplyAction(record *models.BanRecord, isBanned bool, bannedUntil *time.Time) error
	ListRecords(targetUserID uint) ([]models.BanRecord, error)
}

type moderationRepository struct {
	db *gorm.DB
}

func NewModerationRepository(db *gorm.DB) ModerationRepository {
	return &moderationRepository{db: db}
}

func (r *moderationRepository) AppendRecord(record *models.BanRecord) error {
	return r.db.Create(record).Error
}

// ApplyAction mutates the target's live ban projection and appends the audit
// record in one transaction, so readers never observe one without the other.
func (r *moderationRepository) ApplyAction(record *models.BanRecord, isBanned bool, bannedUntil *time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).
			Where("id = ?", record.TargetUserID).
			Updates(map[string]interface{}{
				"is_banned":    isBanned,
				"banned_until": bannedUntil,
			}).Error; err != nil {
			return err
		}
		return tx.Create(record).Error
	})
}

func (r *moderationRepository) ListRecords(targetUserID uint) ([]models.BanRecord, error) {
	var records []models.BanRecord
	err := r.db.Where("target_user_id = ?", targetUserID).
		Preload("Actor").
		Order("created_at desc").
		Find(&records).Error
	return records, err
}
