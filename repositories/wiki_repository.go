package repositories

import (
	"forum-api/models"

	"gorm.io/gorm"
)

type WikiRepository interface {
	Create(article *models.WikiArticle) error
	GetByID(id uint) (*models.WikiArticle, error)
	GetBySlug(slug string) (*models.WikiArticle, error)
	GetList(params models.ListParams) ([]models.WikiArticle, int64, error)
	UpdateWithSnapshot(article *models.WikiArticle, snapshot *models.WikiArticleHistory) error
	Delete(id uint) error
	GetHistory(articleID uint) ([]models.WikiArticleHistory, error)
	GetHistoryEntry(articleID, historyID uint) (*models.WikiArticleHistory, error)
}

type wikiRepository struct {
	db *gorm.DB
}

func NewWikiRepository(db *gorm.DB) WikiRepository {
	return &wikiRepository{db: db}
}

func (r *wikiRepository) Create(article *models.WikiArticle) error {
	return r.db.Create(article).Error
}

func (r *wikiRepository) GetByID(id uint) (*models.WikiArticle, error) {
	var article models.WikiArticle
	err := r.db.Preload("UpdatedBy").First(&article, id).Error
	return &article, err
}

func (r *wikiRepository) GetBySlug(slug string) (*models.WikiArticle, error) {
	var article models.WikiArticle
	err := r.db.Preload("UpdatedBy").Where("slug = ?", slug).First(&article).Error
	return &article, err
}

func (r *wikiRepository) GetList(params models.ListParams) ([]models.WikiArticle, int64, error) {
	var articles []models.WikiArticle
	var total int64

	query := r.db.Model(&models.WikiArticle{})
	query.Count(&total)

	offset := (params.Page - 1) * params.Limit
	err := query.Order("title asc").Offset(offset).Limit(params.Limit).
		Find(&articles).Error
	return articles, total, err
}

// UpdateWithSnapshot writes the pre-update snapshot and the new state in one
// transaction; a history row without its matching update never appears.
func (r *wikiRepository) UpdateWithSnapshot(article *models.WikiArticle, snapshot *models.WikiArticleHistory) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(snapshot).Error; err != nil {
			return err
		}
		return tx.Save(article).Error
	})
}

func (r *wikiRepository) Delete(id uint) error {
	return r.db.Delete(&models.WikiArticle{}, id).Error
}

func (r *wikiRepository) GetHistory(articleID uint) ([]models.WikiArticleHistory, error) {
	var history []models.WikiArticleHistory
	err := r.db.Where("article_id = ?", articleID).
		Preload("EditedBy").
		Order("created_at desc").
		Find(&history).Error
	return history, err
}

func (r *wikiRepository) GetHistoryEntry(articleID, historyID uint) (*models.WikiArticleHistory, error) {
	var entry models.WikiArticleHistory
	err := r.db.Where("article_id = ? AND id = ?", articleID, historyID).
		First(&entry).Error
	return &entry, err
}
