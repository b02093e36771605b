package employee

import "errors"

var (
	ErrEmployeeNotFound          = errors.New("employee not found")
	ErrEmployeeExists            = errors.New("employee already exists")
	ErrEmployeeAlreadySeparated  = errors.New("employee has already resigned or been terminated")
	ErrLifecycleStatusUnchanged  = errors.New("employee already has this lifecycle status")
	ErrInvalidLifecycleStatus    = errors.New("lifecycle status must be active, suspended, resigned or terminated")
	ErrSalaryChangeRequiresAdmin = errors.New("only admins can change role or salary")
)
