package config

import (
	"fmt"
	"log"
	"os"

	"forum-api/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitDB() *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USER", "forum"),
		getEnv("DB_PASSWORD", "forum"),
		getEnv("DB_NAME", "forum_db"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	return db
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.ModeratorPermission{},
		&models.BanRecord{},
		&models.Category{},
		&models.Topic{},
		&models.Post{},
		&models.Tag{},
		&models.TagAudit{},
		&models.TopicTagAudit{},
		&models.TopicFollow{},
		&models.UserFollow{},
		&models.Report{},
		&models.Notification{},
		&models.DirectMessage{},
		&models.Reaction{},
		&models.PostReaction{},
		&models.Badge{},
		&models.UserBadge{},
		&models.WikiArticle{},
		&models.WikiArticleHistory{},
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
