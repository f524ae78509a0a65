package repositories

import (
	"forum-api/models"

	"gorm.io/gorm"
)

type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id uint) (*models.Post, error)
	GetListByTopic(topicID uint, params models.ListParams) ([]models.Post, int64, error)
	Update(post *models.Post) error
	Delete(id uint) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *postRepository) GetByID(id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.Preload("Author").First(&post, id).Error
	return &post, err
}

func (r *postRepository) GetListByTopic(topicID uint, params models.ListParams) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	query := r.db.Model(&models.Post{}).Where("topic_id = ?", topicID).
		Preload("Author")
	query.Count(&total)

	offset := (params.Page - 1) * params.Limit
	err := query.Order("created_at asc").Offset(offset).Limit(params.Limit).
		Find(&posts).Error
	return posts, total, err
}

func (r *postRepository) Update(post *models.Post) error {
	return r.db.Save(post).Error
}

func (r *postRepository) Delete(id uint) error {
	return r.db.Delete(&models.Post{}, id).Error
}
