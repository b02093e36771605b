package auth

import "context"

type PermissionRepository interface {
	// GetGrant returns an empty grant when none is stored.
	GetGrant(ctx context.Context, userID string) (PermissionGrant, error)
	SaveGrant(ctx context.Context, grant PermissionGrant) (PermissionGrant, error)
}
