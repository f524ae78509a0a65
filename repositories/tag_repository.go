package repositories

import (
	"errors"

	"forum-api/models"

	"gorm.io/gorm"
)

type TagRepository interface {
	CreateWithAudit(tag *models.Tag, audit *models.TagAudit) error
	UpdateWithAudit(tag *models.Tag, audit *models.TagAudit) error
	DeleteWithAudit(id uint, audit *models.TagAudit) error
	GetByID(id uint) (*models.Tag, error)
	GetByName(name string) (*models.Tag, error)
	GetAll() ([]models.Tag, error)
	GetOrCreateByNames(actorID uint, names []string) ([]models.Tag, error)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) CreateWithAudit(tag *models.Tag, audit *models.TagAudit) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(tag).Error; err != nil {
			return err
		}
		audit.NewValue = tag.Name
		return tx.Create(audit).Error
	})
}

func (r *tagRepository) UpdateWithAudit(tag *models.Tag, audit *models.TagAudit) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(tag).Error; err != nil {
			return err
		}
		return tx.Create(audit).Error
	})
}

func (r *tagRepository) DeleteWithAudit(id uint, audit *models.TagAudit) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Tag{}, id).Error; err != nil {
			return err
		}
		return tx.Create(audit).Error
	})
}

func (r *tagRepository) GetByID(id uint) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.First(&tag, id).Error
	return &tag, err
}

func (r *tagRepository) GetByName(name string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.Where("name = ?", name).First(&tag).Error
	return &tag, err
}

func (r *tagRepository) GetAll() ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.Order("name asc").Find(&tags).Error
	return tags, err
}

// GetOrCreateByNames resolves names to tag rows, creating the missing ones.
// Implicit creates go through the same tag+audit transaction as explicit
// catalog creates, attributed to the actor who supplied the name.
func (r *tagRepository) GetOrCreateByNames(actorID uint, names []string) ([]models.Tag, error) {
	var tags []models.Tag
	for _, name := range names {
		var tag models.Tag
		err := r.db.Where("name = ?", name).First(&tag).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tag = models.Tag{Name: name}
			audit := &models.TagAudit{ActorID: actorID, EntityType: "tag"}
			if err := r.CreateWithAudit(&tag, audit); err != nil {
				return nil, err
			}
		} else if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
