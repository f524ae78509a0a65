package repositories

import (
	"forum-api/models"

	"gorm.io/gorm"
)

type TopicRepository interface {
	Create(topic *models.Topic, audit *models.TopicTagAudit) error
	GetByID(id uint) (*models.Topic, error)
	GetList(params models.ListParams) ([]models.Topic, int64, error)
	Delete(id uint) error
	ReplaceTags(topic *models.Topic, tags []models.Tag, audit *models.TopicTagAudit) error
}

type topicRepository struct {
	db *gorm.DB
}

func NewTopicRepository(db *gorm.DB) TopicRepository {
	return &topicRepository{db: db}
}

// Create inserts the topic and, when it carries an initial tag set, the
// topic-tag audit row in the same transaction. audit may be nil.
func (r *topicRepository) Create(topic *models.Topic, audit *models.TopicTagAudit) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(topic).Error; err != nil {
			return err
		}
		if audit == nil {
			return nil
		}
		audit.TopicID = topic.ID
		return tx.Create(audit).Error
	})
}

func (r *topicRepository) GetByID(id uint) (*models.Topic, error) {
	var topic models.Topic
	err := r.db.Preload("Author").Preload("Category").Preload("Tags").
		First(&topic, id).Error
	return &topic, err
}

func (r *topicRepository) GetList(params models.ListParams) ([]models.Topic, int64, error) {
	var topics []models.Topic
	var total int64

	query := r.db.Model(&models.Topic{}).Preload("Author").Preload("Tags")
	query.Count(&total)

	offset := (params.Page - 1) * params.Limit
	err := query.Order("created_at desc").Offset(offset).Limit(params.Limit).
		Find(&topics).Error
	return topics, total, err
}

func (r *topicRepository) Delete(id uint) error {
	return r.db.Delete(&models.Topic{}, id).Error
}

// ReplaceTags swaps the topic's tag set and appends the audit row together.
func (r *topicRepository) ReplaceTags(topic *models.Topic, tags []models.Tag, audit *models.TopicTagAudit) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(topic).Association("Tags").Replace(tags); err != nil {
			return err
		}
		return tx.Create(audit).Error
	})
}
