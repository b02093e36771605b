package fixtures

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/employee"
)

// SeedEmployees inserts the default workforce, leaving employees that already
// exist untouched. It returns how many were created.
func SeedEmployees(ctx context.Context, repo employee.EmployeeRepository, now time.Time) (int, error) {
	created := 0
	for _, emp := range GetDefaultEmployees(now) {
		if _, err := repo.Create(ctx, emp); err != nil {
			if errors.Is(err, employee.ErrEmployeeExists) {
				continue
			}
			return created, fmt.Errorf("failed to seed employee %s: %w", emp.ID, err)
		}
		created++
	}
	return created, nil
}
