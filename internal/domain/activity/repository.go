package activity

import "context"

type ActivityRepository interface {
	Create(ctx context.Context, a Activity) error
	// List returns activities newest first.
	List(ctx context.Context) ([]Activity, error)
}
