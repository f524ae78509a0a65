package services

import (
	"errors"
	"time"

	"forum-api/apperr"
	"forum-api/models"
	"forum-api/repositories"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ModerationService interface {
	Warn(caller *models.User, targetID uint, reason string) (*models.BanRecord, error)
	Mute(caller *models.User, targetID uint, reason string, minutes int) (*models.BanRecord, error)
	Ban(caller *models.User, targetID uint, reason string, days int) (*models.BanRecord, error)
	Unban(caller *models.User, targetID uint, reason string) (*models.BanRecord, error)
	History(caller *models.User, targetID uint) ([]models.BanRecord, error)
	ExpireElapsedBan(user *models.User) (bool, error)
}

type moderationService struct {
	userRepo       repositories.UserRepository
	moderationRepo repositories.ModerationRepository
	permissions    PermissionService
}

func NewModerationService(userRepo repositories.UserRepository, moderationRepo repositories.ModerationRepository, permissions PermissionService) ModerationService {
	return &moderationService{
		userRepo:       userRepo,
		moderationRepo: moderationRepo,
		permissions:    permissions,
	}
}

// loadTarget checks the caller's gate and the admin-immunity guard before
// any mutation happens.
func (s *moderationService) loadTarget(caller *models.User, targetID uint, guardAdmin bool) (*models.User, error) {
	if !s.permissions.IsPrivileged(caller, models.CapBanUsers) {
		return nil, apperr.Forbidden("missing capability: can_ban_users")
	}
	target, err := s.userRepo.GetByID(targetID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load user", err)
	}
	if guardAdmin && target.Role == models.RoleAdmin {
		return nil, apperr.Forbidden("cannot moderate an admin")
	}
	return target, nil
}

// Warn is advisory-only: it appends an audit record and leaves the target's
// ban state untouched.
func (s *moderationService) Warn(caller *models.User, targetID uint, reason string) (*models.BanRecord, error) {
	target, err := s.loadTarget(caller, targetID, true)
	if err != nil {
		return nil, err
	}
	record := &models.BanRecord{
		TargetUserID: target.ID,
		ActorID:      caller.ID,
		Action:       models.ActionWarn,
		Reason:       reason,
	}
	if err := s.moderationRepo.AppendRecord(record); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to record warning", err)
	}
	return record, nil
}

// Mute stores as a time-boxed ban; only the audit action distinguishes it.
func (s *moderationService) Mute(caller *models.User, targetID uint, reason string, minutes int) (*models.BanRecord, error) {
	if minutes <= 0 {
		return nil, apperr.Validation("minutes must be a positive integer")
	}
	target, err := s.loadTarget(caller, targetID, true)
	if err != nil {
		return nil, err
	}
	until := time.Now().Add(time.Duration(minutes) * time.Minute)
	record := &models.BanRecord{
		TargetUserID:   target.ID,
		ActorID:        caller.ID,
		Action:         models.ActionMute,
		Reason:         reason,
		EffectiveUntil: &until,
	}
	if err := s.moderationRepo.ApplyAction(record, true, &until); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to mute user", err)
	}
	return record, nil
}

// Ban with days == 0 is permanent (banned_until stays null).
func (s *moderationService) Ban(caller *models.User, targetID uint, reason string, days int) (*models.BanRecord, error) {
	if days < 0 {
		return nil, apperr.Validation("days must not be negative")
	}
	target, err := s.loadTarget(caller, targetID, true)
	if err != nil {
		return nil, err
	}
	var until *time.Time
	if days > 0 {
		t := time.Now().Add(time.Duration(days) * 24 * time.Hour)
		until = &t
	}
	record := &models.BanRecord{
		TargetUserID:   target.ID,
		ActorID:        caller.ID,
		Action:         models.ActionBan,
		Reason:         reason,
		EffectiveUntil: until,
	}
	if err := s.moderationRepo.ApplyAction(record, true, until); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to ban user", err)
	}
	return record, nil
}

// Unban is idempotent: it clears the projection and appends its audit row
// regardless of the prior state.
func (s *moderationService) Unban(caller *models.User, targetID uint, reason string) (*models.BanRecord, error) {
	target, err := s.loadTarget(caller, targetID, false)
	if err != nil {
		return nil, err
	}
	record := &models.BanRecord{
		TargetUserID: target.ID,
		ActorID:      caller.ID,
		Action:       models.ActionUnban,
		Reason:       reason,
	}
	if err := s.moderationRepo.ApplyAction(record, false, nil); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to unban user", err)
	}
	return record, nil
}

func (s *moderationService) History(caller *models.User, targetID uint) ([]models.BanRecord, error) {
	if !s.permissions.IsPrivileged(caller, models.CapBanUsers) {
		return nil, apperr.Forbidden("missing capability: can_ban_users")
	}
	records, err := s.moderationRepo.ListRecords(targetID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load moderation history", err)
	}
	return records, nil
}

// ExpireElapsedBan lazily clears a timed ban whose deadline has passed. A
// permanent ban (nil BannedUntil) never expires. Called on the request path
// before any ban check; mutates user in place when it fires.
func (s *moderationService) ExpireElapsedBan(user *models.User) (bool, error) {
	if !user.IsBanned || user.BannedUntil == nil || user.BannedUntil.After(time.Now()) {
		return false, nil
	}
	if err := s.userRepo.ClearBan(user.ID); err != nil {
		return false, apperr.Wrap(apperr.CodeInternal, "failed to clear expired ban", err)
	}
	user.IsBanned = false
	user.BannedUntil = nil
	logrus.WithField("user_id", user.ID).Info("expired ban cleared")
	return true, nil
}
