package services

import (
	"errors"
	"strings"
	"time"

	"forum-api/apperr"
	"forum-api/models"
	"forum-api/repositories"

	"gorm.io/gorm"
)

const (
	reportReasonMin = 3
	reportReasonMax = 500
)

type ReportService interface {
	File(caller *models.User, req models.FileReportRequest) (*models.Report, error)
	SetStatus(caller *models.User, reportID uint, status models.ReportStatus) (*models.Report, error)
	GetList(caller *models.User, status models.ReportStatus, params models.ListParams) ([]models.Report, int64, error)
}

type reportService struct {
	reportRepo    repositories.ReportRepository
	postRepo      repositories.PostRepository
	userRepo      repositories.UserRepository
	notifications NotificationService
}

func NewReportService(reportRepo repositories.ReportRepository, postRepo repositories.PostRepository, userRepo repositories.UserRepository, notifications NotificationService) ReportService {
	return &reportService{
		reportRepo:    reportRepo,
		postRepo:      postRepo,
		userRepo:      userRepo,
		notifications: notifications,
	}
}

// File validates the report before any persistence: trimmed reason length in
// [3,500], exactly one primary target, no self-reports, and a context post
// that actually belongs to the reported user.
func (s *reportService) File(caller *models.User, req models.FileReportRequest) (*models.Report, error) {
	reason := strings.TrimSpace(req.Reason)
	if n := len([]rune(reason)); n < reportReasonMin || n > reportReasonMax {
		return nil, apperr.Validation("reason must be between 3 and 500 characters")
	}

	report := &models.Report{
		ReporterID: caller.ID,
		Reason:     reason,
		Status:     models.ReportOpen,
	}

	switch {
	case req.PostID != nil && req.UserID != nil:
		return nil, apperr.Validation("post_id and user_id are mutually exclusive")
	case req.PostID != nil:
		post, err := s.postRepo.GetByID(*req.PostID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("post not found")
		}
		if err != nil {
			return nil, apperr.Wrap(apperr.CodeInternal, "failed to load post", err)
		}
		report.TargetPostID = &post.ID
		report.TargetUserID = &post.AuthorID
	case req.UserID != nil:
		if *req.UserID == caller.ID {
			return nil, apperr.Validation("cannot report yourself")
		}
		target, err := s.userRepo.GetByID(*req.UserID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		if err != nil {
			return nil, apperr.Wrap(apperr.CodeInternal, "failed to load user", err)
		}
		report.TargetUserID = &target.ID

		if req.ContextPostID != nil {
			context, err := s.postRepo.GetByID(*req.ContextPostID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("context post not found")
			}
			if err != nil {
				return nil, apperr.Wrap(apperr.CodeInternal, "failed to load context post", err)
			}
			if context.AuthorID != target.ID {
				return nil, apperr.Validation("context post does not belong to the reported user")
			}
			report.ContextPostID = &context.ID
		}
	default:
		return nil, apperr.Validation("either post_id or user_id is required")
	}

	if err := s.reportRepo.Create(report); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to create report", err)
	}

	// Best-effort; the report stands even if no staff gets notified.
	s.notifications.FanOutReport(caller, report)

	return report, nil
}

// SetStatus allows any transition between the three states. Leaving open
// stamps the resolver; returning to open clears it.
func (s *reportService) SetStatus(caller *models.User, reportID uint, status models.ReportStatus) (*models.Report, error) {
	if caller.Role != models.RoleAdmin && caller.Role != models.RoleModerator {
		return nil, apperr.Forbidden("moderator role required")
	}
	if !status.Valid() {
		return nil, apperr.Validation("invalid report status: " + string(status))
	}

	report, err := s.reportRepo.GetByID(reportID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("report not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load report", err)
	}

	report.Status = status
	if status == models.ReportOpen {
		report.ResolvedByID = nil
		report.ResolvedAt = nil
	} else {
		now := time.Now()
		report.ResolvedByID = &caller.ID
		report.ResolvedAt = &now
	}

	if err := s.reportRepo.Update(report); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to update report", err)
	}
	return report, nil
}

func (s *reportService) GetList(caller *models.User, status models.ReportStatus, params models.ListParams) ([]models.Report, int64, error) {
	if caller.Role != models.RoleAdmin && caller.Role != models.RoleModerator {
		return nil, 0, apperr.Forbidden("moderator role required")
	}
	if status != "" && !status.Valid() {
		return nil, 0, apperr.Validation("invalid report status: " + string(status))
	}
	reports, total, err := s.reportRepo.GetList(status, params)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.CodeInternal, "failed to load reports", err)
	}
	return reports, total, nil
}
