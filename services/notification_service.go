package services

import (
	"encoding/json"

	"forum-api/apperr"
	"forum-api/models"
	"forum-api/repositories"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// messageSnippetLimit caps the content preview carried in a message
// notification payload.
const messageSnippetLimit = 140

type NotificationService interface {
	FanOutPost(actor *models.User, topic *models.Topic, post *models.Post, parent *models.Post)
	FanOutMessage(actor *models.User, message *models.DirectMessage)
	FanOutReport(actor *models.User, report *models.Report)
	GetList(user *models.User, params models.ListParams) ([]models.Notification, int64, error)
	CountUnread(user *models.User) (int64, error)
	MarkRead(user *models.User, notificationID uint) error
	MarkAllRead(user *models.User) error
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	followRepo       repositories.FollowRepository
	userRepo         repositories.UserRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository, followRepo repositories.FollowRepository, userRepo repositories.UserRepository) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		followRepo:       followRepo,
		userRepo:         userRepo,
	}
}

func payload(v interface{}) datatypes.JSON {
	raw, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(raw)
}

// FanOutPost runs the reply, topic-follower and author-follower rules for
// one new post. The rules are independent and non-exclusive: the same
// recipient may legitimately get one notification from each. A failing rule
// is logged and never blocks the others or the post itself.
func (s *notificationService) FanOutPost(actor *models.User, topic *models.Topic, post *models.Post, parent *models.Post) {
	if parent != nil && parent.AuthorID != actor.ID {
		err := s.notificationRepo.Create(&models.Notification{
			RecipientID: parent.AuthorID,
			Type:        models.NotifyCommentReply,
			Payload: payload(map[string]interface{}{
				"topic_id":       topic.ID,
				"post_id":        post.ID,
				"parent_post_id": parent.ID,
				"actor_id":       actor.ID,
				"actor_username": actor.Username,
			}),
		})
		if err != nil {
			logrus.WithError(err).WithField("post_id", post.ID).
				Warn("comment_reply fan-out failed")
		}
	}

	s.fanOutToFollowers(actor, models.NotifyFollowedTopicPost, map[string]interface{}{
		"topic_id":       topic.ID,
		"topic_title":    topic.Title,
		"post_id":        post.ID,
		"actor_id":       actor.ID,
		"actor_username": actor.Username,
	}, func() ([]uint, error) {
		return s.followRepo.TopicFollowerIDs(topic.ID)
	})

	s.fanOutToFollowers(actor, models.NotifyFollowedUserPost, map[string]interface{}{
		"topic_id":       topic.ID,
		"post_id":        post.ID,
		"actor_id":       actor.ID,
		"actor_username": actor.Username,
	}, func() ([]uint, error) {
		return s.followRepo.UserFollowerIDs(actor.ID)
	})
}

func (s *notificationService) fanOutToFollowers(actor *models.User, kind models.NotificationType, body map[string]interface{}, followers func() ([]uint, error)) {
	ids, err := followers()
	if err != nil {
		logrus.WithError(err).WithField("type", kind).Warn("follower lookup failed")
		return
	}
	var notifications []models.Notification
	for _, id := range ids {
		if id == actor.ID {
			continue
		}
		notifications = append(notifications, models.Notification{
			RecipientID: id,
			Type:        kind,
			Payload:     payload(body),
		})
	}
	if err := s.notificationRepo.CreateBatch(notifications); err != nil {
		logrus.WithError(err).WithField("type", kind).Warn("follower fan-out failed")
	}
}

func (s *notificationService) FanOutMessage(actor *models.User, message *models.DirectMessage) {
	if message.RecipientID == actor.ID {
		return
	}
	snippet := message.Content
	if runes := []rune(snippet); len(runes) > messageSnippetLimit {
		snippet = string(runes[:messageSnippetLimit])
	}
	err := s.notificationRepo.Create(&models.Notification{
		RecipientID: message.RecipientID,
		Type:        models.NotifyMessage,
		Payload: payload(map[string]interface{}{
			"message_id":      message.ID,
			"sender_id":       actor.ID,
			"sender_username": actor.Username,
			"snippet":         snippet,
		}),
	})
	if err != nil {
		logrus.WithError(err).WithField("message_id", message.ID).
			Warn("message fan-out failed")
	}
}

// FanOutReport notifies every admin and moderator except the reporter.
func (s *notificationService) FanOutReport(actor *models.User, report *models.Report) {
	ids, err := s.userRepo.ListStaffIDs(actor.ID)
	if err != nil {
		logrus.WithError(err).WithField("report_id", report.ID).
			Warn("staff lookup for report fan-out failed")
		return
	}
	body := map[string]interface{}{
		"report_id":         report.ID,
		"reporter_id":       actor.ID,
		"reporter_username": actor.Username,
		"reason":            report.Reason,
	}
	var notifications []models.Notification
	for _, id := range ids {
		notifications = append(notifications, models.Notification{
			RecipientID: id,
			Type:        models.NotifyReport,
			Payload:     payload(body),
		})
	}
	if err := s.notificationRepo.CreateBatch(notifications); err != nil {
		logrus.WithError(err).WithField("report_id", report.ID).
			Warn("report fan-out failed")
	}
}

func (s *notificationService) GetList(user *models.User, params models.ListParams) ([]models.Notification, int64, error) {
	notifications, total, err := s.notificationRepo.GetListByRecipient(user.ID, params)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.CodeInternal, "failed to load notifications", err)
	}
	return notifications, total, nil
}

func (s *notificationService) CountUnread(user *models.User) (int64, error) {
	count, err := s.notificationRepo.CountUnread(user.ID)
	if err != nil {
		return 0, apperr.Wrap(apperr.CodeInternal, "failed to count notifications", err)
	}
	return count, nil
}

func (s *notificationService) MarkRead(user *models.User, notificationID uint) error {
	if err := s.notificationRepo.MarkRead(user.ID, notificationID); err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to mark notification read", err)
	}
	return nil
}

func (s *notificationService) MarkAllRead(user *models.User) error {
	if err := s.notificationRepo.MarkAllRead(user.ID); err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to mark notifications read", err)
	}
	return nil
}
