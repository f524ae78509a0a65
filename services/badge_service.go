package services

import (
	"errors"

	"forum-api/apperr"
	"forum-api/models"
	"forum-api/repositories"

	"gorm.io/gorm"
)

type BadgeService interface {
	Create(caller *models.User, req models.CreateBadgeRequest) (*models.Badge, error)
	Delete(caller *models.User, badgeID uint) error
	GetAll() ([]models.Badge, error)
	Award(caller *models.User, userID, badgeID uint) error
	Revoke(caller *models.User, userID, badgeID uint) error
	GetListByUser(caller *models.User, userID uint) ([]models.UserBadge, error)
}

type badgeService struct {
	badgeRepo   repositories.BadgeRepository
	userRepo    repositories.UserRepository
	permissions PermissionService
}

func NewBadgeService(badgeRepo repositories.BadgeRepository, userRepo repositories.UserRepository, permissions PermissionService) BadgeService {
	return &badgeService{
		badgeRepo:   badgeRepo,
		userRepo:    userRepo,
		permissions: permissions,
	}
}

// Badges share the can_manage_tags capability with tags and categories.
func (s *badgeService) requireManageBadges(caller *models.User) error {
	if !s.permissions.IsPrivileged(caller, models.CapManageTags) {
		return apperr.Forbidden("missing capability: can_manage_tags")
	}
	return nil
}

func (s *badgeService) Create(caller *models.User, req models.CreateBadgeRequest) (*models.Badge, error) {
	if err := s.requireManageBadges(caller); err != nil {
		return nil, err
	}
	if _, err := s.badgeRepo.GetByName(req.Name); err == nil {
		return nil, apperr.Conflict("badge already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to check badge", err)
	}

	badge := &models.Badge{Name: req.Name, Description: req.Description, ImageURL: req.ImageURL}
	audit := &models.TagAudit{ActorID: caller.ID, EntityType: "badge"}
	if err := s.badgeRepo.CreateWithAudit(badge, audit); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to create badge", err)
	}
	return badge, nil
}

func (s *badgeService) Delete(caller *models.User, badgeID uint) error {
	if err := s.requireManageBadges(caller); err != nil {
		return err
	}
	badge, err := s.badgeRepo.GetByID(badgeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("badge not found")
	}
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to load badge", err)
	}

	audit := &models.TagAudit{ActorID: caller.ID, EntityType: "badge", OldValue: badge.Name}
	if err := s.badgeRepo.DeleteWithAudit(badgeID, audit); err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to delete badge", err)
	}
	return nil
}

func (s *badgeService) GetAll() ([]models.Badge, error) {
	badges, err := s.badgeRepo.GetAll()
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load badges", err)
	}
	return badges, nil
}

func (s *badgeService) Award(caller *models.User, userID, badgeID uint) error {
	if err := s.requireManageBadges(caller); err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("user not found")
		}
		return apperr.Wrap(apperr.CodeInternal, "failed to load user", err)
	}
	if _, err := s.badgeRepo.GetByID(badgeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("badge not found")
		}
		return apperr.Wrap(apperr.CodeInternal, "failed to load badge", err)
	}
	if err := s.badgeRepo.Award(userID, badgeID); err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to award badge", err)
	}
	return nil
}

func (s *badgeService) Revoke(caller *models.User, userID, badgeID uint) error {
	if err := s.requireManageBadges(caller); err != nil {
		return err
	}
	if err := s.badgeRepo.Revoke(userID, badgeID); err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to revoke badge", err)
	}
	return nil
}

// GetListByUser honors hide_badges for everyone except the owner and staff.
func (s *badgeService) GetListByUser(caller *models.User, userID uint) ([]models.UserBadge, error) {
	target, err := s.userRepo.GetByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load user", err)
	}

	if target.HideBadges && caller.ID != target.ID &&
		caller.Role != models.RoleAdmin && caller.Role != models.RoleModerator {
		return []models.UserBadge{}, nil
	}

	badges, err := s.badgeRepo.GetListByUser(userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load badges", err)
	}
	return badges, nil
}
