package employee

import "context"

// EmployeeService is the employee-records collaborator. Besides plain
// reads and writes it owns the lifecycle transition that triggers a final
// settlement.
type EmployeeService interface {
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)
	ListEmployees(ctx context.Context, filter EmployeeFilter) ([]EmployeeResponse, error)
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// UpdateEmployee applies a partial update. A lifecycle_status that moves
	// the employee to resigned or terminated runs the same atomic transition
	// as UpdateLifecycle.
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (LifecycleResponse, error)
	UpdateLifecycle(ctx context.Context, req UpdateLifecycleRequest) (LifecycleResponse, error)
}
