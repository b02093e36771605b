package activity

import "context"

type ActivityService interface {
	// Log writes an audit entry through ctx, so it joins any open atomic unit.
	Log(ctx context.Context, entry LogEntry) error
	ListActivities(ctx context.Context, filter ActivityFilter) ([]ActivityResponse, error)
}
