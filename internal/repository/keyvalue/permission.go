package keyvalue

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/record"
)

type permissionRepository struct {
	store record.Store
}

func NewPermissionRepository(store record.Store) auth.PermissionRepository {
	return &permissionRepository{store: store}
}

// GetGrant implements auth.PermissionRepository.
func (r *permissionRepository) GetGrant(ctx context.Context, userID string) (auth.PermissionGrant, error) {
	entry, err := r.store.Get(ctx, record.PermissionsKey(userID))
	if err != nil {
		if errors.Is(err, record.ErrNotFound) {
			return auth.PermissionGrant{UserID: userID, Permissions: []auth.Permission{}}, nil
		}
		return auth.PermissionGrant{}, fmt.Errorf("failed to get permissions: %w", err)
	}

	grant, err := decode[auth.PermissionGrant](entry)
	if err != nil {
		return auth.PermissionGrant{}, err
	}
	grant.Version = entry.Version
	return grant, nil
}

// SaveGrant implements auth.PermissionRepository.
func (r *permissionRepository) SaveGrant(ctx context.Context, grant auth.PermissionGrant) (auth.PermissionGrant, error) {
	key := record.PermissionsKey(grant.UserID)

	if grant.Version == 0 {
		data, err := encode(grant)
		if err != nil {
			return auth.PermissionGrant{}, err
		}
		if err := r.store.Create(ctx, key, data); err != nil {
			if errors.Is(err, record.ErrKeyExists) {
				return auth.PermissionGrant{}, fmt.Errorf("failed to save permissions: %w", record.ErrVersionConflict)
			}
			return auth.PermissionGrant{}, fmt.Errorf("failed to save permissions: %w", err)
		}
		grant.Version = 1
		return grant, nil
	}

	version, err := swap(ctx, r.store, key, grant.Version, grant)
	if err != nil {
		return auth.PermissionGrant{}, err
	}
	grant.Version = version
	return grant, nil
}
