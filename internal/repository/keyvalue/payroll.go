package keyvalue

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/record"
)

type payrollRepository struct {
	store record.Store
}

func NewPayrollRepository(store record.Store) payroll.PayrollRepository {
	return &payrollRepository{store: store}
}

func withPayrollVersion(p *payroll.PayrollRecord, v int64) { p.Version = v }

// GetOvertime implements payroll.PayrollRepository.
func (r *payrollRepository) GetOvertime(ctx context.Context, employeeID string, year, month int) (payroll.OvertimeEntry, error) {
	entry, err := r.store.Get(ctx, record.OvertimeKey(employeeID, year, month))
	if err != nil {
		if errors.Is(err, record.ErrNotFound) {
			return payroll.OvertimeEntry{}, payroll.ErrOvertimeNotFound
		}
		return payroll.OvertimeEntry{}, fmt.Errorf("failed to get overtime: %w", err)
	}
	return decode[payroll.OvertimeEntry](entry)
}

// SaveOvertime implements payroll.PayrollRepository.
func (r *payrollRepository) SaveOvertime(ctx context.Context, entry payroll.OvertimeEntry) (payroll.OvertimeEntry, error) {
	data, err := encode(entry)
	if err != nil {
		return payroll.OvertimeEntry{}, err
	}
	if err := r.store.Set(ctx, record.OvertimeKey(entry.EmployeeID, entry.Year, entry.Month), data); err != nil {
		return payroll.OvertimeEntry{}, fmt.Errorf("failed to save overtime: %w", err)
	}
	return entry, nil
}

// Get implements payroll.PayrollRepository.
func (r *payrollRepository) Get(ctx context.Context, employeeID string, year, month int) (payroll.PayrollRecord, error) {
	entry, err := r.store.Get(ctx, record.PayrollKey(employeeID, year, month))
	if err != nil {
		if errors.Is(err, record.ErrNotFound) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	rec, err := decode[payroll.PayrollRecord](entry)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}
	rec.Version = entry.Version
	return rec, nil
}

// Save implements payroll.PayrollRepository.
func (r *payrollRepository) Save(ctx context.Context, rec payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	key := record.PayrollKey(rec.EmployeeID, rec.Year, rec.Month)

	if rec.Version == 0 {
		data, err := encode(rec)
		if err != nil {
			return payroll.PayrollRecord{}, err
		}
		if err := r.store.Create(ctx, key, data); err != nil {
			if errors.Is(err, record.ErrKeyExists) {
				// Another generation stored the month first.
				return payroll.PayrollRecord{}, fmt.Errorf("failed to create payroll record: %w", record.ErrVersionConflict)
			}
			return payroll.PayrollRecord{}, fmt.Errorf("failed to create payroll record: %w", err)
		}
		rec.Version = 1
		return rec, nil
	}

	version, err := swap(ctx, r.store, key, rec.Version, rec)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}
	rec.Version = version
	return rec, nil
}

// ListByEmployee implements payroll.PayrollRepository.
func (r *payrollRepository) ListByEmployee(ctx context.Context, employeeID string) ([]payroll.PayrollRecord, error) {
	return scan(ctx, r.store, record.PayrollEmployeePrefix(employeeID), withPayrollVersion)
}

// ListAll implements payroll.PayrollRepository.
func (r *payrollRepository) ListAll(ctx context.Context) ([]payroll.PayrollRecord, error) {
	return scan(ctx, r.store, record.PrefixPayroll, withPayrollVersion)
}
