package auth

type Permission string

const (
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionPayrollManage     Permission = "payroll.manage"
	PermissionEmployeeManage    Permission = "employee.manage"
	PermissionSettlementView    Permission = "settlement.view"
	PermissionActivityView      Permission = "activity.view"

	// PermissionMakePayments is never implied by a role other than admin; it
	// has to be granted per user.
	PermissionMakePayments Permission = "make_payments"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionAttendanceViewAll,
		PermissionPayrollManage,
		PermissionEmployeeManage,
		PermissionSettlementView,
		PermissionActivityView,
		PermissionMakePayments,
	},
	RoleManager: {
		PermissionAttendanceViewAll,
		PermissionSettlementView,
		PermissionActivityView,
	},
	RoleEmployee: {},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

func (p Permission) Valid() bool {
	switch p {
	case PermissionAttendanceViewAll, PermissionPayrollManage, PermissionEmployeeManage,
		PermissionSettlementView, PermissionActivityView, PermissionMakePayments:
		return true
	}
	return false
}
