package services

import (
	"strings"
	"testing"

	"forum-api/apperr"
	"forum-api/models"
	"forum-api/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newReportService(db *gorm.DB) ReportService {
	return NewReportService(
		repositories.NewReportRepository(db),
		repositories.NewPostRepository(db),
		repositories.NewUserRepository(db),
		newNotificationService(db),
	)
}

func TestFileReportValidatesReasonLength(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(db)

	reporter := seedUser(t, db, "alice", models.RoleUser)
	target := seedUser(t, db, "bob", models.RoleUser)

	// Length is counted in runes, so a two-character multibyte reason is
	// still too short even at six bytes.
	for _, reason := range []string{"ab", "  ab  ", "ああ", strings.Repeat("x", 501)} {
		_, err := svc.File(reporter, models.FileReportRequest{UserID: &target.ID, Reason: reason})
		assert.True(t, apperr.IsCode(err, apperr.CodeValidation), reason)
	}

	// Trimming happens before the length check.
	report, err := svc.File(reporter, models.FileReportRequest{UserID: &target.ID, Reason: "  abc  "})
	require.NoError(t, err)
	assert.Equal(t, "abc", report.Reason)

	_, err = svc.File(reporter, models.FileReportRequest{UserID: &target.ID, Reason: "あいう"})
	assert.NoError(t, err)
}

func TestFileReportRequiresExactlyOneTarget(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(db)

	reporter := seedUser(t, db, "alice", models.RoleUser)
	author := seedUser(t, db, "bob", models.RoleUser)
	topic := seedTopic(t, db, author.ID, "general")
	post := seedPost(t, db, topic.ID, author.ID, "offensive")

	_, err := svc.File(reporter, models.FileReportRequest{Reason: "spam content"})
	assert.True(t, apperr.IsCode(err, apperr.CodeValidation))

	_, err = svc.File(reporter, models.FileReportRequest{
		PostID: &post.ID,
		UserID: &author.ID,
		Reason: "spam content",
	})
	assert.True(t, apperr.IsCode(err, apperr.CodeValidation))

	var count int64
	require.NoError(t, db.Model(&models.Report{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestFileReportOnPostDerivesTargetUser(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(db)

	reporter := seedUser(t, db, "alice", models.RoleUser)
	author := seedUser(t, db, "bob", models.RoleUser)
	topic := seedTopic(t, db, author.ID, "general")
	post := seedPost(t, db, topic.ID, author.ID, "offensive")

	report, err := svc.File(reporter, models.FileReportRequest{PostID: &post.ID, Reason: "offensive content"})
	require.NoError(t, err)
	require.NotNil(t, report.TargetPostID)
	assert.Equal(t, post.ID, *report.TargetPostID)
	require.NotNil(t, report.TargetUserID)
	assert.Equal(t, author.ID, *report.TargetUserID)
	assert.Equal(t, models.ReportOpen, report.Status)
}

func TestFileReportRejectsSelfReport(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(db)

	reporter := seedUser(t, db, "alice", models.RoleUser)

	_, err := svc.File(reporter, models.FileReportRequest{UserID: &reporter.ID, Reason: "testing"})
	assert.True(t, apperr.IsCode(err, apperr.CodeValidation))

	var count int64
	require.NoError(t, db.Model(&models.Report{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestFileReportContextPostMustBelongToTarget(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(db)

	reporter := seedUser(t, db, "alice", models.RoleUser)
	target := seedUser(t, db, "bob", models.RoleUser)
	other := seedUser(t, db, "carol", models.RoleUser)
	topic := seedTopic(t, db, other.ID, "general")
	foreignPost := seedPost(t, db, topic.ID, other.ID, "unrelated")

	_, err := svc.File(reporter, models.FileReportRequest{
		UserID:        &target.ID,
		ContextPostID: &foreignPost.ID,
		Reason:        "harassment",
	})
	assert.True(t, apperr.IsCode(err, apperr.CodeValidation))

	ownPost := seedPost(t, db, topic.ID, target.ID, "by target")
	report, err := svc.File(reporter, models.FileReportRequest{
		UserID:        &target.ID,
		ContextPostID: &ownPost.ID,
		Reason:        "harassment",
	})
	require.NoError(t, err)
	require.NotNil(t, report.ContextPostID)
	assert.Equal(t, ownPost.ID, *report.ContextPostID)
}

func TestSetStatusStampsAndClearsResolver(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(db)

	reporter := seedUser(t, db, "alice", models.RoleUser)
	target := seedUser(t, db, "bob", models.RoleUser)
	mod := seedUser(t, db, "mod", models.RoleModerator)

	report, err := svc.File(reporter, models.FileReportRequest{UserID: &target.ID, Reason: "spamming"})
	require.NoError(t, err)

	reviewed, err := svc.SetStatus(mod, report.ID, models.ReportReviewed)
	require.NoError(t, err)
	require.NotNil(t, reviewed.ResolvedByID)
	assert.Equal(t, mod.ID, *reviewed.ResolvedByID)
	assert.NotNil(t, reviewed.ResolvedAt)

	// Reopening clears the resolver stamp.
	reopened, err := svc.SetStatus(mod, report.ID, models.ReportOpen)
	require.NoError(t, err)
	assert.Nil(t, reopened.ResolvedByID)
	assert.Nil(t, reopened.ResolvedAt)
}

func TestSetStatusRejectsUnknownStatusAndPlainUsers(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(db)

	reporter := seedUser(t, db, "alice", models.RoleUser)
	target := seedUser(t, db, "bob", models.RoleUser)
	mod := seedUser(t, db, "mod", models.RoleModerator)

	report, err := svc.File(reporter, models.FileReportRequest{UserID: &target.ID, Reason: "spamming"})
	require.NoError(t, err)

	_, err = svc.SetStatus(mod, report.ID, models.ReportStatus("escalated"))
	assert.True(t, apperr.IsCode(err, apperr.CodeValidation))

	_, err = svc.SetStatus(reporter, report.ID, models.ReportReviewed)
	assert.True(t, apperr.IsCode(err, apperr.CodeForbidden))
}

func TestGetListIsStaffOnly(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(db)

	user := seedUser(t, db, "alice", models.RoleUser)
	mod := seedUser(t, db, "mod", models.RoleModerator)

	_, _, err := svc.GetList(user, "", models.ListParams{Page: 1, Limit: 20})
	assert.True(t, apperr.IsCode(err, apperr.CodeForbidden))

	_, _, err = svc.GetList(mod, "", models.ListParams{Page: 1, Limit: 20})
	assert.NoError(t, err)
}
