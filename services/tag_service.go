package services

import (
	"errors"

	"forum-api/apperr"
	"forum-api/models"
	"forum-api/repositories"

	"gorm.io/gorm"
)

type TagService interface {
	Create(caller *models.User, req models.CreateTagRequest) (*models.Tag, error)
	Update(caller *models.User, tagID uint, req models.UpdateTagRequest) (*models.Tag, error)
	Delete(caller *models.User, tagID uint) error
	Get(id uint) (*models.Tag, error)
	GetAll() ([]models.Tag, error)
	CreateCategory(caller *models.User, req models.CreateCategoryRequest) (*models.Category, error)
	DeleteCategory(caller *models.User, categoryID uint) error
	GetCategories() ([]models.Category, error)
}

type tagService struct {
	tagRepo      repositories.TagRepository
	categoryRepo repositories.CategoryRepository
	permissions  PermissionService
}

func NewTagService(tagRepo repositories.TagRepository, categoryRepo repositories.CategoryRepository, permissions PermissionService) TagService {
	return &tagService{
		tagRepo:      tagRepo,
		categoryRepo: categoryRepo,
		permissions:  permissions,
	}
}

func (s *tagService) requireManageTags(caller *models.User) error {
	if !s.permissions.IsPrivileged(caller, models.CapManageTags) {
		return apperr.Forbidden("missing capability: can_manage_tags")
	}
	return nil
}

func (s *tagService) Create(caller *models.User, req models.CreateTagRequest) (*models.Tag, error) {
	if err := s.requireManageTags(caller); err != nil {
		return nil, err
	}
	if _, err := s.tagRepo.GetByName(req.Name); err == nil {
		return nil, apperr.Conflict("tag already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to check tag", err)
	}

	tag := &models.Tag{Name: req.Name}
	audit := &models.TagAudit{ActorID: caller.ID, EntityType: "tag"}
	if err := s.tagRepo.CreateWithAudit(tag, audit); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to create tag", err)
	}
	return tag, nil
}

func (s *tagService) Update(caller *models.User, tagID uint, req models.UpdateTagRequest) (*models.Tag, error) {
	if err := s.requireManageTags(caller); err != nil {
		return nil, err
	}
	tag, err := s.Get(tagID)
	if err != nil {
		return nil, err
	}

	audit := &models.TagAudit{
		ActorID:    caller.ID,
		EntityType: "tag",
		OldValue:   tag.Name,
		NewValue:   req.Name,
	}
	tag.Name = req.Name
	if err := s.tagRepo.UpdateWithAudit(tag, audit); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to update tag", err)
	}
	return tag, nil
}

func (s *tagService) Delete(caller *models.User, tagID uint) error {
	if err := s.requireManageTags(caller); err != nil {
		return err
	}
	tag, err := s.Get(tagID)
	if err != nil {
		return err
	}

	audit := &models.TagAudit{ActorID: caller.ID, EntityType: "tag", OldValue: tag.Name}
	if err := s.tagRepo.DeleteWithAudit(tagID, audit); err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to delete tag", err)
	}
	return nil
}

func (s *tagService) Get(id uint) (*models.Tag, error) {
	tag, err := s.tagRepo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("tag not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load tag", err)
	}
	return tag, nil
}

func (s *tagService) GetAll() ([]models.Tag, error) {
	tags, err := s.tagRepo.GetAll()
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load tags", err)
	}
	return tags, nil
}

// Categories share the can_manage_tags gate.
func (s *tagService) CreateCategory(caller *models.User, req models.CreateCategoryRequest) (*models.Category, error) {
	if err := s.requireManageTags(caller); err != nil {
		return nil, err
	}
	if _, err := s.categoryRepo.GetByName(req.Name); err == nil {
		return nil, apperr.Conflict("category already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to check category", err)
	}

	category := &models.Category{Name: req.Name, Description: req.Description}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to create category", err)
	}
	return category, nil
}

func (s *tagService) DeleteCategory(caller *models.User, categoryID uint) error {
	if err := s.requireManageTags(caller); err != nil {
		return err
	}
	if _, err := s.categoryRepo.GetByID(categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("category not found")
		}
		return apperr.Wrap(apperr.CodeInternal, "failed to load category", err)
	}
	if err := s.categoryRepo.Delete(categoryID); err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to delete category", err)
	}
	return nil
}

func (s *tagService) GetCategories() ([]models.Category, error) {
	categories, err := s.categoryRepo.GetAll()
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load categories", err)
	}
	return categories, nil
}
