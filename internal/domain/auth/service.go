package auth

import "context"

type PermissionService interface {
	GrantPermissions(ctx context.Context, req GrantPermissionsRequest) (PermissionGrantResponse, error)
	GetPermissions(ctx context.Context, userID string) (PermissionGrantResponse, error)
	// Allowed reports whether the actor holds permission through its role
	// or an explicit grant.
	Allowed(ctx context.Context, actor Actor, permission Permission) (bool, error)
}
