package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/activity"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/auth"
	"github.com/google/uuid"
)

const defaultListLimit = 100

type ActivityServiceImpl struct {
	activity.ActivityRepository
	now func() time.Time
}

// Log implements activity.ActivityService.
func (s *ActivityServiceImpl) Log(ctx context.Context, entry activity.LogEntry) error {
	a := activity.Activity{
		ID:         uuid.NewString(),
		Action:     entry.Action,
		ActorID:    entry.Actor.UserID,
		ActorName:  entry.Actor.Name,
		ActorRole:  string(entry.Actor.Role),
		TargetID:   entry.TargetID,
		TargetName: entry.TargetName,
		Department: entry.Department,
		Details:    entry.Details,
		Timestamp:  s.now().UTC(),
	}

	if err := s.ActivityRepository.Create(ctx, a); err != nil {
		return fmt.Errorf("failed to log %s: %w", entry.Action, err)
	}
	return nil
}

// ListActivities implements activity.ActivityService. Plain employees get an
// empty log; managers only see their own department.
func (s *ActivityServiceImpl) ListActivities(ctx context.Context, filter activity.ActivityFilter) ([]activity.ActivityResponse, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	responses := []activity.ActivityResponse{}
	if !auth.HasPermission(actor.Role, auth.PermissionActivityView) {
		return responses, nil
	}
	if !actor.IsAdmin() {
		filter.Department = actor.Department
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	items, err := s.ActivityRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	for _, a := range items {
		if filter.Action != "" && string(a.Action) != filter.Action {
			continue
		}
		if filter.Department != "" && a.Department != filter.Department {
			continue
		}
		if filter.TargetID != "" && a.TargetID != filter.TargetID {
			continue
		}
		responses = append(responses, activity.ToResponse(a))
		if len(responses) == limit {
			break
		}
	}
	return responses, nil
}

func NewActivityService(activityRepository activity.ActivityRepository) activity.ActivityService {
	return &ActivityServiceImpl{
		ActivityRepository: activityRepository,
		now:                time.Now,
	}
}
