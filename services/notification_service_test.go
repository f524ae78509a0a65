package services

import (
	"encoding/json"
	"strings"
	"testing"

	"forum-api/models"
	"forum-api/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newNotificationService(db *gorm.DB) NotificationService {
	return NewNotificationService(
		repositories.NewNotificationRepository(db),
		repositories.NewFollowRepository(db),
		repositories.NewUserRepository(db),
	)
}

func TestFanOutPostExcludesActor(t *testing.T) {
	db := newTestDB(t)
	svc := newNotificationService(db)
	follows := repositories.NewFollowRepository(db)

	actor := seedUser(t, db, "alice", models.RoleUser)
	follower := seedUser(t, db, "bob", models.RoleUser)
	topic := seedTopic(t, db, actor.ID, "general")

	// The actor follows their own topic; they still get nothing.
	require.NoError(t, follows.FollowTopic(actor.ID, topic.ID))
	require.NoError(t, follows.FollowTopic(follower.ID, topic.ID))

	post := seedPost(t, db, topic.ID, actor.ID, "hello")
	svc.FanOutPost(actor, topic, post, nil)

	assert.Empty(t, notificationsFor(t, db, actor.ID))

	got := notificationsFor(t, db, follower.ID)
	require.Len(t, got, 1)
	assert.Equal(t, models.NotifyFollowedTopicPost, got[0].Type)
}

func TestFanOutPostSelfReplyProducesNothing(t *testing.T) {
	db := newTestDB(t)
	svc := newNotificationService(db)

	actor := seedUser(t, db, "alice", models.RoleUser)
	topic := seedTopic(t, db, actor.ID, "general")
	parent := seedPost(t, db, topic.ID, actor.ID, "first")
	reply := seedPost(t, db, topic.ID, actor.ID, "second")

	svc.FanOutPost(actor, topic, reply, parent)
	assert.Empty(t, notificationsFor(t, db, actor.ID))
}

// A reply to a user who also follows the replier fires two independent
// rules; the recipient gets one notification from each, undeduplicated.
func TestReplyFanOutDeliversBothRules(t *testing.T) {
	db := newTestDB(t)
	svc := newNotificationService(db)
	follows := repositories.NewFollowRepository(db)

	replier := seedUser(t, db, "alice", models.RoleUser)
	author := seedUser(t, db, "bob", models.RoleUser)
	topic := seedTopic(t, db, author.ID, "general")
	parent := seedPost(t, db, topic.ID, author.ID, "original")

	require.NoError(t, follows.FollowUser(author.ID, replier.ID))

	reply := seedPost(t, db, topic.ID, replier.ID, "response")
	svc.FanOutPost(replier, topic, reply, parent)

	got := notificationsFor(t, db, author.ID)
	require.Len(t, got, 2)
	types := map[models.NotificationType]int{}
	for _, n := range got {
		types[n.Type]++
	}
	assert.Equal(t, 1, types[models.NotifyCommentReply])
	assert.Equal(t, 1, types[models.NotifyFollowedUserPost])

	assert.Empty(t, notificationsFor(t, db, replier.ID))
}

func TestFanOutMessageTruncatesSnippet(t *testing.T) {
	db := newTestDB(t)
	svc := newNotificationService(db)

	sender := seedUser(t, db, "alice", models.RoleUser)
	recipient := seedUser(t, db, "bob", models.RoleUser)

	message := &models.DirectMessage{
		SenderID:    sender.ID,
		RecipientID: recipient.ID,
		Content:     strings.Repeat("héllo ", 50),
	}
	require.NoError(t, db.Create(message).Error)

	svc.FanOutMessage(sender, message)

	got := notificationsFor(t, db, recipient.ID)
	require.Len(t, got, 1)
	assert.Equal(t, models.NotifyMessage, got[0].Type)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(got[0].Payload, &body))
	snippet, ok := body["snippet"].(string)
	require.True(t, ok)
	assert.Len(t, []rune(snippet), 140)
}

func TestFanOutMessageSkipsSelf(t *testing.T) {
	db := newTestDB(t)
	svc := newNotificationService(db)

	sender := seedUser(t, db, "alice", models.RoleUser)
	message := &models.DirectMessage{SenderID: sender.ID, RecipientID: sender.ID, Content: "note"}

	svc.FanOutMessage(sender, message)
	assert.Empty(t, notificationsFor(t, db, sender.ID))
}

func TestFanOutReportNotifiesStaffExceptReporter(t *testing.T) {
	db := newTestDB(t)
	svc := newNotificationService(db)

	admin := seedUser(t, db, "root", models.RoleAdmin)
	otherMod := seedUser(t, db, "mod", models.RoleModerator)
	reporter := seedUser(t, db, "snitch", models.RoleModerator)
	bystander := seedUser(t, db, "bob", models.RoleUser)

	report := &models.Report{ReporterID: reporter.ID, Reason: "spam", Status: models.ReportOpen}
	require.NoError(t, db.Create(report).Error)

	svc.FanOutReport(reporter, report)

	assert.Len(t, notificationsFor(t, db, admin.ID), 1)
	assert.Len(t, notificationsFor(t, db, otherMod.ID), 1)
	assert.Empty(t, notificationsFor(t, db, reporter.ID))
	assert.Empty(t, notificationsFor(t, db, bystander.ID))
}

func TestMarkReadScopedToRecipient(t *testing.T) {
	db := newTestDB(t)
	svc := newNotificationService(db)

	owner := seedUser(t, db, "alice", models.RoleUser)
	intruder := seedUser(t, db, "bob", models.RoleUser)

	notification := &models.Notification{RecipientID: owner.ID, Type: models.NotifyMessage, Payload: []byte("{}")}
	require.NoError(t, db.Create(notification).Error)

	// Another user cannot mark someone else's notification.
	require.NoError(t, svc.MarkRead(intruder, notification.ID))
	var stored models.Notification
	require.NoError(t, db.First(&stored, notification.ID).Error)
	assert.False(t, stored.IsRead)

	require.NoError(t, svc.MarkRead(owner, notification.ID))
	require.NoError(t, db.First(&stored, notification.ID).Error)
	assert.True(t, stored.IsRead)

	count, err := svc.CountUnread(owner)
	require.NoError(t, err)
	assert.Zero(t, count)
}
