package permission

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/activity"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/record"
	"github.com/cmlabs-hris/hrms-engine/internal/pkg/validator"
)

type PermissionServiceImpl struct {
	store record.Store
	auth.PermissionRepository
	activityService activity.ActivityService
	now             func() time.Time
}

// GrantPermissions implements auth.PermissionService. The stored grant is
// replaced, not merged.
func (s *PermissionServiceImpl) GrantPermissions(ctx context.Context, req auth.GrantPermissionsRequest) (auth.PermissionGrantResponse, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return auth.PermissionGrantResponse{}, err
	}
	if !actor.IsAdmin() {
		return auth.PermissionGrantResponse{}, auth.ErrForbidden
	}
	if err := validateGrant(req); err != nil {
		return auth.PermissionGrantResponse{}, err
	}

	var saved auth.PermissionGrant
	err = s.store.Atomically(ctx, func(ctx context.Context) error {
		grant, err := s.PermissionRepository.GetGrant(ctx, req.UserID)
		if err != nil {
			return err
		}

		grant.UserID = req.UserID
		grant.Permissions = req.Permissions
		grant.GrantedBy = actor.UserID
		grant.UpdatedAt = s.now().UTC()

		saved, err = s.PermissionRepository.SaveGrant(ctx, grant)
		if err != nil {
			return err
		}

		return s.activityService.Log(ctx, activity.LogEntry{
			Action:   activity.ActionPermissionsGranted,
			Actor:    actor,
			TargetID: req.UserID,
			Details:  map[string]any{"permissions": req.Permissions},
		})
	})
	if err != nil {
		return auth.PermissionGrantResponse{}, fmt.Errorf("failed to grant permissions: %w", err)
	}

	return toResponse(saved), nil
}

// GetPermissions implements auth.PermissionService.
func (s *PermissionServiceImpl) GetPermissions(ctx context.Context, userID string) (auth.PermissionGrantResponse, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return auth.PermissionGrantResponse{}, err
	}
	if !actor.IsAdmin() && actor.UserID != userID {
		return auth.PermissionGrantResponse{}, auth.ErrForbidden
	}

	grant, err := s.PermissionRepository.GetGrant(ctx, userID)
	if err != nil {
		return auth.PermissionGrantResponse{}, fmt.Errorf("failed to get permissions: %w", err)
	}
	return toResponse(grant), nil
}

// Allowed implements auth.PermissionService.
func (s *PermissionServiceImpl) Allowed(ctx context.Context, actor auth.Actor, permission auth.Permission) (bool, error) {
	if auth.HasPermission(actor.Role, permission) {
		return true, nil
	}

	grant, err := s.PermissionRepository.GetGrant(ctx, actor.UserID)
	if err != nil {
		return false, fmt.Errorf("failed to get permissions: %w", err)
	}
	return grant.Has(permission), nil
}

func validateGrant(req auth.GrantPermissionsRequest) error {
	var errs validator.ValidationErrors

	if !validator.IsValidIdentifier(req.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: auth.ErrUserIDRequired.Error(),
		})
	}
	for _, p := range req.Permissions {
		if !p.Valid() {
			errs = append(errs, validator.ValidationError{
				Field:   "permissions",
				Message: fmt.Sprintf("unknown permission %q", p),
			})
		}
	}

	return errs.OrNil()
}

func toResponse(grant auth.PermissionGrant) auth.PermissionGrantResponse {
	resp := auth.PermissionGrantResponse{
		UserID:      grant.UserID,
		Permissions: grant.Permissions,
		GrantedBy:   grant.GrantedBy,
	}
	if resp.Permissions == nil {
		resp.Permissions = []auth.Permission{}
	}
	if !grant.UpdatedAt.IsZero() {
		resp.UpdatedAt = grant.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func NewPermissionService(store record.Store, permissionRepository auth.PermissionRepository, activityService activity.ActivityService) auth.PermissionService {
	return &PermissionServiceImpl{
		store:                store,
		PermissionRepository: permissionRepository,
		activityService:      activityService,
		now:                  time.Now,
	}
}
