package services

import (
	"errors"

	"forum-api/apperr"
	"forum-api/models"
	"forum-api/repositories"

	"gorm.io/gorm"
)

type ReactionService interface {
	Create(caller *models.User, req models.CreateReactionRequest) (*models.Reaction, error)
	Delete(caller *models.User, reactionID uint) error
	GetAll() ([]models.Reaction, error)
	AddToPost(caller *models.User, postID, reactionID uint) error
	RemoveFromPost(caller *models.User, postID, reactionID uint) error
	GetListByPost(postID uint) ([]models.PostReaction, error)
}

type reactionService struct {
	reactionRepo repositories.ReactionRepository
	postRepo     repositories.PostRepository
	permissions  PermissionService
}

func NewReactionService(reactionRepo repositories.ReactionRepository, postRepo repositories.PostRepository, permissions PermissionService) ReactionService {
	return &reactionService{
		reactionRepo: reactionRepo,
		postRepo:     postRepo,
		permissions:  permissions,
	}
}

func (s *reactionService) requireManageReactions(caller *models.User) error {
	if !s.permissions.IsPrivileged(caller, models.CapManageReactions) {
		return apperr.Forbidden("missing capability: can_manage_reactions")
	}
	return nil
}

func (s *reactionService) Create(caller *models.User, req models.CreateReactionRequest) (*models.Reaction, error) {
	if err := s.requireManageReactions(caller); err != nil {
		return nil, err
	}
	if _, err := s.reactionRepo.GetByName(req.Name); err == nil {
		return nil, apperr.Conflict("reaction already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to check reaction", err)
	}

	reaction := &models.Reaction{Name: req.Name, ImageURL: req.ImageURL}
	audit := &models.TagAudit{ActorID: caller.ID, EntityType: "reaction"}
	if err := s.reactionRepo.CreateWithAudit(reaction, audit); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to create reaction", err)
	}
	return reaction, nil
}

func (s *reactionService) Delete(caller *models.User, reactionID uint) error {
	if err := s.requireManageReactions(caller); err != nil {
		return err
	}
	reaction, err := s.reactionRepo.GetByID(reactionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("reaction not found")
	}
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to load reaction", err)
	}

	audit := &models.TagAudit{ActorID: caller.ID, EntityType: "reaction", OldValue: reaction.Name}
	if err := s.reactionRepo.DeleteWithAudit(reactionID, audit); err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to delete reaction", err)
	}
	return nil
}

func (s *reactionService) GetAll() ([]models.Reaction, error) {
	reactions, err := s.reactionRepo.GetAll()
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load reactions", err)
	}
	return reactions, nil
}

// AddToPost is idempotent; reacting twice with the same reaction is a no-op.
func (s *reactionService) AddToPost(caller *models.User, postID, reactionID uint) error {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("post not found")
		}
		return apperr.Wrap(apperr.CodeInternal, "failed to load post", err)
	}
	if _, err := s.reactionRepo.GetByID(reactionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("reaction not found")
		}
		return apperr.Wrap(apperr.CodeInternal, "failed to load reaction", err)
	}
	if err := s.reactionRepo.AddToPost(postID, reactionID, caller.ID); err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to add reaction", err)
	}
	return nil
}

func (s *reactionService) RemoveFromPost(caller *models.User, postID, reactionID uint) error {
	if err := s.reactionRepo.RemoveFromPost(postID, reactionID, caller.ID); err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to remove reaction", err)
	}
	return nil
}

func (s *reactionService) GetListByPost(postID uint) ([]models.PostReaction, error) {
	reactions, err := s.reactionRepo.GetListByPost(postID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load reactions", err)
	}
	return reactions, nil
}
