package repositories

import (
	"forum-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReactionRepository interface {
	CreateWithAudit(reaction *models.Reaction, audit *models.TagAudit) error
	GetByID(id uint) (*models.Reaction, error)
	GetByName(name string) (*models.Reaction, error)
	GetAll() ([]models.Reaction, error)
	DeleteWithAudit(id uint, audit *models.TagAudit) error
	AddToPost(postID, reactionID, userID uint) error
	RemoveFromPost(postID, reactionID, userID uint) error
	GetListByPost(postID uint) ([]models.PostReaction, error)
}

type reactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) CreateWithAudit(reaction *models.Reaction, audit *models.TagAudit) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(reaction).Error; err != nil {
			return err
		}
		audit.NewValue = reaction.Name
		return tx.Create(audit).Error
	})
}

func (r *reactionRepository) GetByID(id uint) (*models.Reaction, error) {
	var reaction models.Reaction
	err := r.db.First(&reaction, id).Error
	return &reaction, err
}

func (r *reactionRepository) GetByName(name string) (*models.Reaction, error) {
	var reaction models.Reaction
	err := r.db.Where("name = ?", name).First(&reaction).Error
	return &reaction, err
}

func (r *reactionRepository) GetAll() ([]models.Reaction, error) {
	var reactions []models.Reaction
	err := r.db.Order("name asc").Find(&reactions).Error
	return reactions, err
}

func (r *reactionRepository) DeleteWithAudit(id uint, audit *models.TagAudit) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Reaction{}, id).Error; err != nil {
			return err
		}
		return tx.Create(audit).Error
	})
}

func (r *reactionRepository) AddToPost(postID, reactionID, userID uint) error {
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.PostReaction{PostID: postID, ReactionID: reactionID, UserID: userID}).Error
}

func (r *reactionRepository) RemoveFromPost(postID, reactionID, userID uint) error {
	return r.db.Where("post_id = ? AND reaction_id = ? AND user_id = ?", postID, reactionID, userID).
		Delete(&models.PostReaction{}).Error
}

func (r *reactionRepository) GetListByPost(postID uint) ([]models.PostReaction, error) {
	var reactions []models.PostReaction
	err := r.db.Where("post_id = ?", postID).
		Preload("Reaction").
		Find(&reactions).Error
	return reactions, err
}
