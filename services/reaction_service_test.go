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

func newReactionService(db *gorm.DB) ReactionService {
	return NewReactionService(
		repositories.NewReactionRepository(db),
		repositories.NewPostRepository(db),
		newPermissionService(db),
	)
}

func TestReactionCatalogRequiresCapability(t *testing.T) {
	db := newTestDB(t)
	svc := newReactionService(db)

	user := seedUser(t, db, "alice", models.RoleUser)
	mod := seedUser(t, db, "mod", models.RoleModerator)
	grantCapabilities(t, db, mod.ID, models.CapabilitySet{models.CapManageReactions: true})

	_, err := svc.Create(user, models.CreateReactionRequest{Name: "thumbsup"})
	assert.True(t, apperr.IsCode(err, apperr.CodeForbidden))

	reaction, err := svc.Create(mod, models.CreateReactionRequest{Name: "thumbsup"})
	require.NoError(t, err)

	var audit models.TagAudit
	require.NoError(t, db.Where("entity_type = ?", "reaction").First(&audit).Error)
	assert.Equal(t, mod.ID, audit.ActorID)

	require.NoError(t, svc.Delete(mod, reaction.ID))
}

func TestAddReactionToPostIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newReactionService(db)

	mod := seedUser(t, db, "mod", models.RoleModerator)
	grantCapabilities(t, db, mod.ID, models.CapabilitySet{models.CapManageReactions: true})
	reaction, err := svc.Create(mod, models.CreateReactionRequest{Name: "thumbsup"})
	require.NoError(t, err)

	author := seedUser(t, db, "alice", models.RoleUser)
	reactor := seedUser(t, db, "bob", models.RoleUser)
	topic := seedTopic(t, db, author.ID, "general")
	post := seedPost(t, db, topic.ID, author.ID, "nice")

	require.NoError(t, svc.AddToPost(reactor, post.ID, reaction.ID))
	require.NoError(t, svc.AddToPost(reactor, post.ID, reaction.ID))

	reactions, err := svc.GetListByPost(post.ID)
	require.NoError(t, err)
	assert.Len(t, reactions, 1)

	require.NoError(t, svc.RemoveFromPost(reactor, post.ID, reaction.ID))
	reactions, err = svc.GetListByPost(post.ID)
	require.NoError(t, err)
	assert.Empty(t, reactions)
}

func TestAddReactionValidatesTargets(t *testing.T) {
	db := newTestDB(t)
	svc := newReactionService(db)

	user := seedUser(t, db, "alice", models.RoleUser)
	err := svc.AddToPost(user, 9999, 9999)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}
