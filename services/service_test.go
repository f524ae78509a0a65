package services

import (
	"fmt"
	"strings"
	"testing"

	"forum-api/config"
	"forum-api/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database per test. The shared-cache DSN
// keeps gorm's connection pool pointed at the same store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatal("failed to open test database:", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatal("failed to migrate test database:", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string, role models.UserRole) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
		Role:     role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatal("failed to seed user:", err)
	}
	return user
}

func grantCapabilities(t *testing.T, db *gorm.DB, userID uint, set models.CapabilitySet) {
	t.Helper()
	grant := &models.ModeratorPermission{UserID: userID}
	grant.Apply(set)
	if err := db.Create(grant).Error; err != nil {
		t.Fatal("failed to seed permissions:", err)
	}
}

func seedTopic(t *testing.T, db *gorm.DB, authorID uint, title string) *models.Topic {
	t.Helper()
	topic := &models.Topic{AuthorID: authorID, Title: title}
	if err := db.Create(topic).Error; err != nil {
		t.Fatal("failed to seed topic:", err)
	}
	return topic
}

func seedPost(t *testing.T, db *gorm.DB, topicID, authorID uint, content string) *models.Post {
	t.Helper()
	post := &models.Post{TopicID: topicID, AuthorID: authorID, Content: content}
	if err := db.Create(post).Error; err != nil {
		t.Fatal("failed to seed post:", err)
	}
	return post
}

func notificationsFor(t *testing.T, db *gorm.DB, recipientID uint) []models.Notification {
	t.Helper()
	var notifications []models.Notification
	if err := db.Where("recipient_id = ?", recipientID).Find(&notifications).Error; err != nil {
		t.Fatal("failed to load notifications:", err)
	}
	return notifications
}

func banRecordsFor(t *testing.T, db *gorm.DB, targetID uint) []models.BanRecord {
	t.Helper()
	var records []models.BanRecord
	if err := db.Where("target_user_id = ?", targetID).Order("id").Find(&records).Error; err != nil {
		t.Fatal("failed to load ban records:", err)
	}
	return records
}
