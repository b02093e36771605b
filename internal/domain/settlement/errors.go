package settlement

import "errors"

var (
	ErrOutsideDepartment  = errors.New("you can only process settlements for your department")
	ErrSettlementNotFound = errors.New("settlement not found")
	ErrSettlementExists   = errors.New("a settlement was already generated for this employee at this instant")
)
