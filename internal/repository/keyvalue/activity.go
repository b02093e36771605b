package keyvalue

import (
	"context"
	"fmt"
	"slices"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/activity"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/record"
)

type activityRepository struct {
	store record.Store
}

func NewActivityRepository(store record.Store) activity.ActivityRepository {
	return &activityRepository{store: store}
}

// Create implements activity.ActivityRepository.
func (r *activityRepository) Create(ctx context.Context, a activity.Activity) error {
	data, err := encode(a)
	if err != nil {
		return err
	}
	if err := r.store.Create(ctx, record.ActivityKey(a.Timestamp, a.ID), data); err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

// List implements activity.ActivityRepository.
func (r *activityRepository) List(ctx context.Context) ([]activity.Activity, error) {
	items, err := scan[activity.Activity](ctx, r.store, record.PrefixActivity, nil)
	if err != nil {
		return nil, err
	}
	slices.Reverse(items)
	return items, nil
}
