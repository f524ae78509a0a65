package services

import (
	"errors"

	"forum-api/apperr"
	"forum-api/models"
	"forum-api/repositories"

	"gorm.io/gorm"
)

type WikiService interface {
	Create(caller *models.User, req models.CreateWikiArticleRequest) (*models.WikiArticle, error)
	GetBySlug(slug string) (*models.WikiArticle, error)
	GetList(params models.ListParams) ([]models.WikiArticle, int64, error)
	Update(caller *models.User, articleID uint, req models.UpdateWikiArticleRequest) (*models.WikiArticle, error)
	Delete(caller *models.User, articleID uint) error
	Rollback(caller *models.User, articleID, historyID uint) (*models.WikiArticle, error)
	GetHistory(articleID uint) ([]models.WikiArticleHistory, error)
}

type wikiService struct {
	wikiRepo repositories.WikiRepository
}

func NewWikiService(wikiRepo repositories.WikiRepository) WikiService {
	return &wikiService{wikiRepo: wikiRepo}
}

// Wiki mutations are role-gated: any moderator or admin may edit,
// independent of the can_edit_wiki capability (that flag only gates wiki
// file uploads).
func requireWikiEditor(caller *models.User) error {
	if caller.Role != models.RoleAdmin && caller.Role != models.RoleModerator {
		return apperr.Forbidden("moderator role required")
	}
	return nil
}

func (s *wikiService) Create(caller *models.User, req models.CreateWikiArticleRequest) (*models.WikiArticle, error) {
	if err := requireWikiEditor(caller); err != nil {
		return nil, err
	}
	if _, err := s.wikiRepo.GetBySlug(req.Slug); err == nil {
		return nil, apperr.Conflict("slug already in use")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to check slug", err)
	}

	article := &models.WikiArticle{
		Slug:        req.Slug,
		Title:       req.Title,
		Content:     req.Content,
		UpdatedByID: caller.ID,
	}
	if err := s.wikiRepo.Create(article); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to create article", err)
	}
	return article, nil
}

func (s *wikiService) GetBySlug(slug string) (*models.WikiArticle, error) {
	article, err := s.wikiRepo.GetBySlug(slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("article not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load article", err)
	}
	return article, nil
}

func (s *wikiService) GetList(params models.ListParams) ([]models.WikiArticle, int64, error) {
	articles, total, err := s.wikiRepo.GetList(params)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.CodeInternal, "failed to load articles", err)
	}
	return articles, total, nil
}

func (s *wikiService) getByID(articleID uint) (*models.WikiArticle, error) {
	article, err := s.wikiRepo.GetByID(articleID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("article not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load article", err)
	}
	return article, nil
}

// Update snapshots the pre-update state into history before applying the
// change, in one transaction.
func (s *wikiService) Update(caller *models.User, articleID uint, req models.UpdateWikiArticleRequest) (*models.WikiArticle, error) {
	if err := requireWikiEditor(caller); err != nil {
		return nil, err
	}
	article, err := s.getByID(articleID)
	if err != nil {
		return nil, err
	}

	snapshot := snapshotOf(article)
	article.Title = req.Title
	article.Content = req.Content
	article.UpdatedByID = caller.ID
	if err := s.wikiRepo.UpdateWithSnapshot(article, snapshot); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to update article", err)
	}
	return article, nil
}

func (s *wikiService) Delete(caller *models.User, articleID uint) error {
	if err := requireWikiEditor(caller); err != nil {
		return err
	}
	if _, err := s.getByID(articleID); err != nil {
		return err
	}
	if err := s.wikiRepo.Delete(articleID); err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to delete article", err)
	}
	return nil
}

// Rollback applies a history snapshot as the new current state. The
// pre-rollback state is snapshotted first, so a rollback can itself be
// rolled back.
func (s *wikiService) Rollback(caller *models.User, articleID, historyID uint) (*models.WikiArticle, error) {
	if err := requireWikiEditor(caller); err != nil {
		return nil, err
	}
	article, err := s.getByID(articleID)
	if err != nil {
		return nil, err
	}
	entry, err := s.wikiRepo.GetHistoryEntry(articleID, historyID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("history entry not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load history entry", err)
	}

	snapshot := snapshotOf(article)
	article.Title = entry.Title
	article.Content = entry.Content
	article.UpdatedByID = caller.ID
	if err := s.wikiRepo.UpdateWithSnapshot(article, snapshot); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to roll back article", err)
	}
	return article, nil
}

func (s *wikiService) GetHistory(articleID uint) ([]models.WikiArticleHistory, error) {
	if _, err := s.getByID(articleID); err != nil {
		return nil, err
	}
	history, err := s.wikiRepo.GetHistory(articleID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load history", err)
	}
	return history, nil
}

func snapshotOf(article *models.WikiArticle) *models.WikiArticleHistory {
	return &models.WikiArticleHistory{
		ArticleID:  article.ID,
		Title:      article.Title,
		Content:    article.Content,
		EditedByID: article.UpdatedByID,
	}
}
