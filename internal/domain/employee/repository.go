package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context) ([]Employee, error)
	// Create fails with ErrEmployeeExists when the id is taken.
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	// Update writes emp only if its Version is still current.
	Update(ctx context.Context, emp Employee) (Employee, error)
}
