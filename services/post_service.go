package services

import (
	"errors"

	"forum-api/apperr"
	"forum-api/models"
	"forum-api/repositories"

	"gorm.io/gorm"
)

type PostService interface {
	Create(caller *models.User, req models.CreatePostRequest) (*models.Post, error)
	Get(id uint) (*models.Post, error)
	GetListByTopic(topicID uint, params models.ListParams) ([]models.Post, int64, error)
	Edit(caller *models.User, postID uint, content string) (*models.Post, error)
	Delete(caller *models.User, postID uint) error
}

type postService struct {
	postRepo      repositories.PostRepository
	topicRepo     repositories.TopicRepository
	permissions   PermissionService
	notifications NotificationService
}

func NewPostService(postRepo repositories.PostRepository, topicRepo repositories.TopicRepository, permissions PermissionService, notifications NotificationService) PostService {
	return &postService{
		postRepo:      postRepo,
		topicRepo:     topicRepo,
		permissions:   permissions,
		notifications: notifications,
	}
}

func (s *postService) Create(caller *models.User, req models.CreatePostRequest) (*models.Post, error) {
	topic, err := s.topicRepo.GetByID(req.TopicID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("topic not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load topic", err)
	}

	var parent *models.Post
	if req.ParentID != nil {
		parent, err = s.postRepo.GetByID(*req.ParentID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("parent post not found")
		}
		if err != nil {
			return nil, apperr.Wrap(apperr.CodeInternal, "failed to load parent post", err)
		}
		if parent.TopicID != topic.ID {
			return nil, apperr.Validation("parent post belongs to a different topic")
		}
	}

	post := &models.Post{
		TopicID:  topic.ID,
		AuthorID: caller.ID,
		ParentID: req.ParentID,
		Content:  req.Content,
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to create post", err)
	}

	// Best-effort; a fan-out failure never unwinds the post.
	s.notifications.FanOutPost(caller, topic, post, parent)

	return s.Get(post.ID)
}

func (s *postService) Get(id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("post not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load post", err)
	}
	return post, nil
}

func (s *postService) GetListByTopic(topicID uint, params models.ListParams) ([]models.Post, int64, error) {
	posts, total, err := s.postRepo.GetListByTopic(topicID, params)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.CodeInternal, "failed to load posts", err)
	}
	return posts, total, nil
}

// Edit is author-only; roles and capabilities do not override authorship.
func (s *postService) Edit(caller *models.User, postID uint, content string) (*models.Post, error) {
	post, err := s.Get(postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != caller.ID {
		return nil, apperr.Forbidden("only the author can edit a post")
	}
	post.Content = content
	if err := s.postRepo.Update(post); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to update post", err)
	}
	return post, nil
}

func (s *postService) Delete(caller *models.User, postID uint) error {
	post, err := s.Get(postID)
	if err != nil {
		return err
	}
	if post.AuthorID != caller.ID && !s.permissions.IsPrivileged(caller, models.CapDeletePosts) {
		return apperr.Forbidden("not allowed to delete this post")
	}
	if err := s.postRepo.Delete(postID); err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to delete post", err)
	}
	return nil
}
