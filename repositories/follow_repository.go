package repositories

import (
	"forum-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowRepository interface {
	FollowTopic(userID, topicID uint) error
	UnfollowTopic(userID, topicID uint) error
	TopicFollowerIDs(topicID uint) ([]uint, error)
	FollowUser(followerID, followeeID uint) error
	UnfollowUser(followerID, followeeID uint) error
	UserFollowerIDs(followeeID uint) ([]uint, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) FollowTopic(userID, topicID uint) error {
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.TopicFollow{UserID: userID, TopicID: topicID}).Error
}

func (r *followRepository) UnfollowTopic(userID, topicID uint) error {
	return r.db.Where("user_id = ? AND topic_id = ?", userID, topicID).
		Delete(&models.TopicFollow{}).Error
}

func (r *followRepository) TopicFollowerIDs(topicID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.TopicFollow{}).Where("topic_id = ?", topicID).
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *followRepository) FollowUser(followerID, followeeID uint) error {
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.UserFollow{FollowerID: followerID, FolloweeID: followeeID}).Error
}

func (r *followRepository) UnfollowUser(followerID, followeeID uint) error {
	return r.db.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.UserFollow{}).Error
}

func (r *followRepository) UserFollowerIDs(followeeID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.UserFollow{}).Where("followee_id = ?", followeeID).
		Pluck("follower_id", &ids).Error
	return ids, err
}
