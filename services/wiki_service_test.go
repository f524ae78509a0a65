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

func newWikiService(db *gorm.DB) WikiService {
	return NewWikiService(repositories.NewWikiRepository(db))
}

func seedArticle(t *testing.T, db *gorm.DB, svc WikiService, editor *models.User, slug string) *models.WikiArticle {
	t.Helper()
	article, err := svc.Create(editor, models.CreateWikiArticleRequest{
		Slug:    slug,
		Title:   "Original title",
		Content: "original content",
	})
	require.NoError(t, err)
	return article
}

// Wiki edits are gated by role alone; the can_edit_wiki capability does not
// open this door for a plain user.
func TestWikiMutationsAreRoleGated(t *testing.T) {
	db := newTestDB(t)
	svc := newWikiService(db)

	user := seedUser(t, db, "alice", models.RoleUser)
	grantCapabilities(t, db, user.ID, models.CapabilitySet{models.CapEditWiki: true})
	mod := seedUser(t, db, "mod", models.RoleModerator)

	_, err := svc.Create(user, models.CreateWikiArticleRequest{Slug: "rules", Title: "Rules"})
	assert.True(t, apperr.IsCode(err, apperr.CodeForbidden))

	// A moderator with no capabilities at all may still edit.
	_, err = svc.Create(mod, models.CreateWikiArticleRequest{Slug: "rules", Title: "Rules"})
	assert.NoError(t, err)
}

func TestWikiCreateRejectsDuplicateSlug(t *testing.T) {
	db := newTestDB(t)
	svc := newWikiService(db)

	mod := seedUser(t, db, "mod", models.RoleModerator)
	seedArticle(t, db, svc, mod, "rules")

	_, err := svc.Create(mod, models.CreateWikiArticleRequest{Slug: "rules", Title: "Again"})
	assert.True(t, apperr.IsCode(err, apperr.CodeConflict))
}

func TestWikiUpdateSnapshotsPriorState(t *testing.T) {
	db := newTestDB(t)
	svc := newWikiService(db)

	mod := seedUser(t, db, "mod", models.RoleModerator)
	article := seedArticle(t, db, svc, mod, "rules")

	updated, err := svc.Update(mod, article.ID, models.UpdateWikiArticleRequest{
		Title:   "New title",
		Content: "new content",
	})
	require.NoError(t, err)
	assert.Equal(t, "New title", updated.Title)

	history, err := svc.GetHistory(article.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Original title", history[0].Title)
	assert.Equal(t, "original content", history[0].Content)
}

func TestWikiRollbackSnapshotsCurrentStateFirst(t *testing.T) {
	db := newTestDB(t)
	svc := newWikiService(db)

	mod := seedUser(t, db, "mod", models.RoleModerator)
	article := seedArticle(t, db, svc, mod, "rules")

	_, err := svc.Update(mod, article.ID, models.UpdateWikiArticleRequest{
		Title:   "Second title",
		Content: "second content",
	})
	require.NoError(t, err)

	history, err := svc.GetHistory(article.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)

	rolled, err := svc.Rollback(mod, article.ID, history[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Original title", rolled.Title)
	assert.Equal(t, "original content", rolled.Content)

	// The rollback itself left a snapshot, so it can be undone too.
	history, err = svc.GetHistory(article.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)

	titles := []string{history[0].Title, history[1].Title}
	assert.Contains(t, titles, "Second title")
}

func TestWikiRollbackRejectsForeignHistoryEntry(t *testing.T) {
	db := newTestDB(t)
	svc := newWikiService(db)

	mod := seedUser(t, db, "mod", models.RoleModerator)
	first := seedArticle(t, db, svc, mod, "rules")
	second := seedArticle(t, db, svc, mod, "faq")

	_, err := svc.Update(mod, first.ID, models.UpdateWikiArticleRequest{Title: "Edited", Content: "x"})
	require.NoError(t, err)

	history, err := svc.GetHistory(first.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)

	_, err = svc.Rollback(mod, second.ID, history[0].ID)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestWikiReadsArePublic(t *testing.T) {
	db := newTestDB(t)
	svc := newWikiService(db)

	mod := seedUser(t, db, "mod", models.RoleModerator)
	seedArticle(t, db, svc, mod, "rules")

	article, err := svc.GetBySlug("rules")
	require.NoError(t, err)
	assert.Equal(t, "Original title", article.Title)

	_, err = svc.GetBySlug("missing")
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}
