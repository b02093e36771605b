package fixtures

import (
	"time"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/schedule"
	"github.com/shopspring/decimal"
)

// ==========================================
// HELPER FUNCTIONS
// ==========================================

func boolPtr(b bool) *bool { return &b }

// ==========================================
// DEFAULT EMPLOYEES
// ==========================================

// GetDefaultEmployees returns the demo workforce loaded by the seed command:
// one admin, one manager and a few employees covering every shift shape.
func GetDefaultEmployees(now time.Time) []employee.Employee {
	base := func(id, name, department string, role auth.Role, salary int64) employee.Employee {
		return employee.Employee{
			ID:                id,
			Name:              name,
			Email:             id + "@example.com",
			Department:        department,
			Role:              role,
			MonthlySalary:     decimal.NewFromInt(salary),
			ShiftType:         schedule.ShiftTypeFixed,
			ShiftStartTime:    "09:00",
			ShiftEndTime:      "17:00",
			WeeklyWorkingDays: schedule.WorkingDaysMonFri,
			AttendanceEnabled: boolPtr(true),
			LeaveEnabled:      boolPtr(true),
			LifecycleStatus:   employee.LifecycleActive,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
	}

	admin := base("admin", "Ayu Admin", "Management", auth.RoleAdmin, 15000000)

	manager := base("eng-manager", "Bima Manager", "Engineering", auth.RoleManager, 12000000)

	// Works Monday to Saturday with a later start.
	engineer := base("eng-001", "Citra Engineer", "Engineering", auth.RoleEmployee, 8000000)
	engineer.ShiftStartTime = "10:00"
	engineer.ShiftEndTime = "18:00"
	engineer.WeeklyWorkingDays = schedule.WorkingDaysMonSat

	// Custom shift: only the listed weekdays are working days.
	support := base("ops-001", "Dimas Support", "Operations", auth.RoleEmployee, 6000000)
	support.ShiftType = schedule.ShiftTypeCustom
	support.CustomShift = schedule.CustomShift{
		"monday":    {Start: "08:00", End: "16:00"},
		"wednesday": {Start: "12:00", End: "20:00"},
		"saturday":  {Start: "09:00", End: "13:00"},
	}

	return []employee.Employee{admin, manager, engineer, support}
}

// ActorFor builds the identity an employee acts under.
func ActorFor(emp employee.Employee) auth.Actor {
	return auth.Actor{
		UserID:     emp.ID,
		EmployeeID: emp.ID,
		Name:       emp.Name,
		Role:       emp.Role,
		Department: emp.Department,
	}
}
