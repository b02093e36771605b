package auth

type GrantPermissionsRequest struct {
	UserID      string       `json:"-"`
	Permissions []Permission `json:"permissions"`
}

type PermissionGrantResponse struct {
	UserID      string       `json:"user_id"`
	Permissions []Permission `json:"permissions"`
	GrantedBy   string       `json:"granted_by,omitempty"`
	UpdatedAt   string       `json:"updated_at,omitempty"`
}
