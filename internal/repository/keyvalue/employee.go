package keyvalue

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/record"
)

type employeeRepository struct {
	store record.Store
}

func NewEmployeeRepository(store record.Store) employee.EmployeeRepository {
	return &employeeRepository{store: store}
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	entry, err := r.store.Get(ctx, record.EmployeeKey(id))
	if err != nil {
		if errors.Is(err, record.ErrNotFound) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	emp, err := decode[employee.Employee](entry)
	if err != nil {
		return employee.Employee{}, err
	}
	emp.Version = entry.Version
	return emp, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepository) List(ctx context.Context) ([]employee.Employee, error) {
	return scan(ctx, r.store, record.PrefixEmployee, func(e *employee.Employee, v int64) { e.Version = v })
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	data, err := encode(newEmployee)
	if err != nil {
		return employee.Employee{}, err
	}

	if err := r.store.Create(ctx, record.EmployeeKey(newEmployee.ID), data); err != nil {
		if errors.Is(err, record.ErrKeyExists) {
			return employee.Employee{}, employee.ErrEmployeeExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	newEmployee.Version = 1
	return newEmployee, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepository) Update(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	version, err := swap(ctx, r.store, record.EmployeeKey(emp.ID), emp.Version, emp)
	if err != nil {
		return employee.Employee{}, err
	}
	emp.Version = version
	return emp, nil
}
