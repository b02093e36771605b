package auth

import "errors"

var (
	ErrUnauthorized   = errors.New("authentication required")
	ErrInvalidToken   = errors.New("invalid or expired token")
	ErrForbidden      = errors.New("insufficient permissions")
	ErrInvalidRole    = errors.New("invalid role")
	ErrUserIDRequired = errors.New("user_id is required")
)
