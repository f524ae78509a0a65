package services

import (
	"testing"

	"forum-api/apperr"
	"forum-api/models"
	"forum-api/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTopicService(db *gorm.DB) TopicService {
	return NewTopicService(
		repositories.NewTopicRepository(db),
		repositories.NewTagRepository(db),
		repositories.NewCategoryRepository(db),
		repositories.NewFollowRepository(db),
		repositories.NewUserRepository(db),
		newPermissionService(db),
	)
}

func TestCreateTopicResolvesTags(t *testing.T) {
	db := newTestDB(t)
	svc := newTopicService(db)

	author := seedUser(t, db, "alice", models.RoleUser)
	topic, err := svc.Create(author, models.CreateTopicRequest{
		Title: "introductions",
		Tags:  []string{"welcome", "meta"},
	})
	require.NoError(t, err)
	assert.Len(t, topic.Tags, 2)

	// Reusing a tag name must not duplicate the tag row.
	_, err = svc.Create(author, models.CreateTopicRequest{Title: "second", Tags: []string{"meta"}})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Tag{}).Where("name = ?", "meta").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestFollowTopicIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newTopicService(db)

	author := seedUser(t, db, "alice", models.RoleUser)
	follower := seedUser(t, db, "bob", models.RoleUser)
	topic := seedTopic(t, db, author.ID, "general")

	require.NoError(t, svc.Follow(follower, topic.ID))
	require.NoError(t, svc.Follow(follower, topic.ID))

	var count int64
	require.NoError(t, db.Model(&models.TopicFollow{}).
		Where("user_id = ? AND topic_id = ?", follower.ID, topic.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count, "double follow must not create a second row")

	require.NoError(t, svc.Unfollow(follower, topic.ID))
	require.NoError(t, db.Model(&models.TopicFollow{}).
		Where("user_id = ? AND topic_id = ?", follower.ID, topic.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestFollowUserRejectsSelf(t *testing.T) {
	db := newTestDB(t)
	svc := newTopicService(db)

	user := seedUser(t, db, "alice", models.RoleUser)
	err := svc.FollowUser(user, user.ID)
	assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
}

func TestSetTagsAuthorization(t *testing.T) {
	db := newTestDB(t)
	svc := newTopicService(db)

	author := seedUser(t, db, "alice", models.RoleUser)
	bystander := seedUser(t, db, "bob", models.RoleUser)
	tagger := seedUser(t, db, "tagger", models.RoleModerator)
	grantCapabilities(t, db, tagger.ID, models.CapabilitySet{models.CapManageTags: true})
	topic := seedTopic(t, db, author.ID, "general")

	_, err := svc.SetTags(bystander, topic.ID, []string{"offtopic"})
	assert.True(t, apperr.IsCode(err, apperr.CodeForbidden))

	updated, err := svc.SetTags(tagger, topic.ID, []string{"offtopic"})
	require.NoError(t, err)
	require.Len(t, updated.Tags, 1)
	assert.Equal(t, "offtopic", updated.Tags[0].Name)
}

func TestSetTagsWritesAuditRow(t *testing.T) {
	db := newTestDB(t)
	svc := newTopicService(db)

	author := seedUser(t, db, "alice", models.RoleUser)
	topic, err := svc.Create(author, models.CreateTopicRequest{Title: "general", Tags: []string{"old"}})
	require.NoError(t, err)

	_, err = svc.SetTags(author, topic.ID, []string{"new"})
	require.NoError(t, err)

	var audits []models.TopicTagAudit
	require.NoError(t, db.Where("topic_id = ?", topic.ID).Order("id").Find(&audits).Error)
	require.Len(t, audits, 2)
	assert.Equal(t, "", audits[0].OldValue)
	assert.Equal(t, "old", audits[0].NewValue)
	assert.Equal(t, "old", audits[1].OldValue)
	assert.Equal(t, "new", audits[1].NewValue)
	for _, audit := range audits {
		assert.Equal(t, author.ID, audit.ActorID)
	}
}

func TestImplicitTagCreationIsAudited(t *testing.T) {
	db := newTestDB(t)
	svc := newTopicService(db)

	author := seedUser(t, db, "alice", models.RoleUser)
	topic, err := svc.Create(author, models.CreateTopicRequest{
		Title: "introductions",
		Tags:  []string{"welcome", "meta"},
	})
	require.NoError(t, err)

	var audits []models.TagAudit
	require.NoError(t, db.Where("entity_type = ?", "tag").Order("id").Find(&audits).Error)
	require.Len(t, audits, 2)
	assert.Equal(t, "welcome", audits[0].NewValue)
	assert.Equal(t, "meta", audits[1].NewValue)
	for _, audit := range audits {
		assert.Equal(t, author.ID, audit.ActorID)
	}

	var topicAudit models.TopicTagAudit
	require.NoError(t, db.Where("topic_id = ?", topic.ID).First(&topicAudit).Error)
	assert.Equal(t, author.ID, topicAudit.ActorID)
	assert.Equal(t, "welcome,meta", topicAudit.NewValue)

	// Retagging with a fresh name audits the implicit create too; reusing
	// an existing name does not.
	_, err = svc.SetTags(author, topic.ID, []string{"meta", "fresh"})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.TagAudit{}).Where("entity_type = ?", "tag").Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestDeleteTopicAuthorization(t *testing.T) {
	db := newTestDB(t)
	svc := newTopicService(db)

	author := seedUser(t, db, "alice", models.RoleUser)
	bystander := seedUser(t, db, "bob", models.RoleUser)
	janitor := seedUser(t, db, "janitor", models.RoleModerator)
	grantCapabilities(t, db, janitor.ID, models.CapabilitySet{models.CapDeletePosts: true})

	topic := seedTopic(t, db, author.ID, "general")
	assert.True(t, apperr.IsCode(svc.Delete(bystander, topic.ID), apperr.CodeForbidden))
	assert.NoError(t, svc.Delete(janitor, topic.ID))

	own := seedTopic(t, db, author.ID, "another")
	assert.NoError(t, svc.Delete(author, own.ID))
}
