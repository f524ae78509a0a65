package services

import (
	"errors"

	"forum-api/apperr"
	"forum-api/models"
	"forum-api/repositories"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type PermissionService interface {
	HasCapability(user *models.User, cap models.Capability) bool
	IsPrivileged(user *models.User, cap models.Capability) bool
	GetPermissions(caller *models.User, targetID uint) (*models.ModeratorPermission, error)
	SetPermissions(caller *models.User, targetID uint, set models.CapabilitySet) (*models.User, error)
	SetRole(caller *models.User, targetID uint, role models.UserRole) (*models.User, error)
}

type permissionService struct {
	userRepo       repositories.UserRepository
	permissionRepo repositories.PermissionRepository
}

func NewPermissionService(userRepo repositories.UserRepository, permissionRepo repositories.PermissionRepository) PermissionService {
	return &permissionService{userRepo: userRepo, permissionRepo: permissionRepo}
}

// HasCapability reads the grant row fresh on every call so a mid-flight
// grant change is always honored. Denies on any ambiguity: a moderator
// without a grant row holds nothing, and a store error reads as false.
func (s *permissionService) HasCapability(user *models.User, cap models.Capability) bool {
	if !cap.Valid() {
		return false
	}
	switch user.Role {
	case models.RoleAdmin:
		return true
	case models.RoleModerator:
		grant, err := s.permissionRepo.GetByUserID(user.ID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				logrus.WithError(err).WithField("user_id", user.ID).
					Warn("capability lookup failed, denying")
			}
			return false
		}
		return grant.Has(cap)
	}
	return false
}

// IsPrivileged is the single admin-or-capability predicate used by every
// gated action.
func (s *permissionService) IsPrivileged(user *models.User, cap models.Capability) bool {
	return s.HasCapability(user, cap)
}

func (s *permissionService) GetPermissions(caller *models.User, targetID uint) (*models.ModeratorPermission, error) {
	if caller.Role != models.RoleAdmin {
		return nil, apperr.Forbidden("admin role required")
	}
	grant, err := s.permissionRepo.GetByUserID(targetID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.ModeratorPermission{UserID: targetID}, nil
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load permissions", err)
	}
	return grant, nil
}

// SetPermissions overwrites the target's full capability set and promotes a
// plain user to moderator. Admins keep their role and their implicit
// all-capabilities regardless of the written row.
func (s *permissionService) SetPermissions(caller *models.User, targetID uint, set models.CapabilitySet) (*models.User, error) {
	if caller.Role != models.RoleAdmin {
		return nil, apperr.Forbidden("admin role required")
	}
	for cap := range set {
		if !cap.Valid() {
			return nil, apperr.Validation("unknown capability: " + string(cap))
		}
	}

	target, err := s.userRepo.GetByID(targetID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load user", err)
	}

	grant, err := s.permissionRepo.GetByUserID(targetID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		grant = &models.ModeratorPermission{UserID: targetID}
	} else if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load permissions", err)
	}
	grant.Apply(set)
	if err := s.permissionRepo.Save(grant); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to save permissions", err)
	}

	if target.Role == models.RoleUser {
		if err := s.userRepo.UpdateRole(targetID, models.RoleModerator); err != nil {
			return nil, apperr.Wrap(apperr.CodeInternal, "failed to promote user", err)
		}
		target.Role = models.RoleModerator
	}
	return target, nil
}

func (s *permissionService) SetRole(caller *models.User, targetID uint, role models.UserRole) (*models.User, error) {
	if caller.Role != models.RoleAdmin {
		return nil, apperr.Forbidden("admin role required")
	}
	if !role.Valid() {
		return nil, apperr.Validation("invalid role: " + string(role))
	}

	target, err := s.userRepo.GetByID(targetID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load user", err)
	}

	if role == models.RoleModerator {
		if err := s.permissionRepo.EnsureDefault(targetID); err != nil {
			return nil, apperr.Wrap(apperr.CodeInternal, "failed to create permission row", err)
		}
	} else {
		if err := s.permissionRepo.DeleteByUserID(targetID); err != nil {
			return nil, apperr.Wrap(apperr.CodeInternal, "failed to delete permission row", err)
		}
	}

	if err := s.userRepo.UpdateRole(targetID, role); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to update role", err)
	}
	target.Role = role
	return target, nil
}
