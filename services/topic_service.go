package services

import (
	"errors"
	"strings"

	"forum-api/apperr"
	"forum-api/models"
	"forum-api/repositories"

	"gorm.io/gorm"
)

type TopicService interface {
	Create(caller *models.User, req models.CreateTopicRequest) (*models.Topic, error)
	Get(id uint) (*models.Topic, error)
	GetList(params models.ListParams) ([]models.Topic, int64, error)
	Delete(caller *models.User, topicID uint) error
	SetTags(caller *models.User, topicID uint, tagNames []string) (*models.Topic, error)
	Follow(caller *models.User, topicID uint) error
	Unfollow(caller *models.User, topicID uint) error
	FollowUser(caller *models.User, targetID uint) error
	UnfollowUser(caller *models.User, targetID uint) error
}

type topicService struct {
	topicRepo    repositories.TopicRepository
	tagRepo      repositories.TagRepository
	categoryRepo repositories.CategoryRepository
	followRepo   repositories.FollowRepository
	userRepo     repositories.UserRepository
	permissions  PermissionService
}

func NewTopicService(topicRepo repositories.TopicRepository, tagRepo repositories.TagRepository, categoryRepo repositories.CategoryRepository, followRepo repositories.FollowRepository, userRepo repositories.UserRepository, permissions PermissionService) TopicService {
	return &topicService{
		topicRepo:    topicRepo,
		tagRepo:      tagRepo,
		categoryRepo: categoryRepo,
		followRepo:   followRepo,
		userRepo:     userRepo,
		permissions:  permissions,
	}
}

func (s *topicService) Create(caller *models.User, req models.CreateTopicRequest) (*models.Topic, error) {
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(*req.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("category not found")
			}
			return nil, apperr.Wrap(apperr.CodeInternal, "failed to load category", err)
		}
	}

	tags, err := s.tagRepo.GetOrCreateByNames(caller.ID, req.Tags)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to resolve tags", err)
	}

	topic := &models.Topic{
		AuthorID:   caller.ID,
		CategoryID: req.CategoryID,
		Title:      req.Title,
		Tags:       tags,
	}
	var audit *models.TopicTagAudit
	if len(tags) > 0 {
		audit = &models.TopicTagAudit{
			ActorID:  caller.ID,
			NewValue: joinTagNames(tags),
		}
	}
	if err := s.topicRepo.Create(topic, audit); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to create topic", err)
	}
	return s.Get(topic.ID)
}

func (s *topicService) Get(id uint) (*models.Topic, error) {
	topic, err := s.topicRepo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("topic not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load topic", err)
	}
	return topic, nil
}

func (s *topicService) GetList(params models.ListParams) ([]models.Topic, int64, error) {
	topics, total, err := s.topicRepo.GetList(params)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.CodeInternal, "failed to load topics", err)
	}
	return topics, total, nil
}

func (s *topicService) Delete(caller *models.User, topicID uint) error {
	topic, err := s.Get(topicID)
	if err != nil {
		return err
	}
	if topic.AuthorID != caller.ID && !s.permissions.IsPrivileged(caller, models.CapDeletePosts) {
		return apperr.Forbidden("not allowed to delete this topic")
	}
	if err := s.topicRepo.Delete(topicID); err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to delete topic", err)
	}
	return nil
}

// SetTags replaces the topic's tag set; the old and new sets land in the
// audit trail in the same transaction as the change.
func (s *topicService) SetTags(caller *models.User, topicID uint, tagNames []string) (*models.Topic, error) {
	topic, err := s.Get(topicID)
	if err != nil {
		return nil, err
	}
	if topic.AuthorID != caller.ID && !s.permissions.IsPrivileged(caller, models.CapManageTags) {
		return nil, apperr.Forbidden("not allowed to retag this topic")
	}

	tags, err := s.tagRepo.GetOrCreateByNames(caller.ID, tagNames)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to resolve tags", err)
	}

	audit := &models.TopicTagAudit{
		ActorID:  caller.ID,
		TopicID:  topic.ID,
		OldValue: joinTagNames(topic.Tags),
		NewValue: strings.Join(tagNames, ","),
	}
	if err := s.topicRepo.ReplaceTags(topic, tags, audit); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to replace tags", err)
	}
	return s.Get(topicID)
}

func (s *topicService) Follow(caller *models.User, topicID uint) error {
	if _, err := s.Get(topicID); err != nil {
		return err
	}
	if err := s.followRepo.FollowTopic(caller.ID, topicID); err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to follow topic", err)
	}
	return nil
}

func (s *topicService) Unfollow(caller *models.User, topicID uint) error {
	if err := s.followRepo.UnfollowTopic(caller.ID, topicID); err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to unfollow topic", err)
	}
	return nil
}

func (s *topicService) FollowUser(caller *models.User, targetID uint) error {
	if targetID == caller.ID {
		return apperr.Validation("cannot follow yourself")
	}
	if _, err := s.userRepo.GetByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("user not found")
		}
		return apperr.Wrap(apperr.CodeInternal, "failed to load user", err)
	}
	if err := s.followRepo.FollowUser(caller.ID, targetID); err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to follow user", err)
	}
	return nil
}

func (s *topicService) UnfollowUser(caller *models.User, targetID uint) error {
	if err := s.followRepo.UnfollowUser(caller.ID, targetID); err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to unfollow user", err)
	}
	return nil
}

func joinTagNames(tags []models.Tag) string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return strings.Join(names, ",")
}
