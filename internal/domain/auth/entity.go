package auth

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID     string
	EmployeeID string
	Name       string
	Role       Role
	Department string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// ManagesDepartment reports whether a is a manager of department.
func (a Actor) ManagesDepartment(department string) bool {
	return a.Role == RoleManager && a.Department != "" && a.Department == department
}

// CanView reports whether a may read records belonging to the given employee.
func (a Actor) CanView(employeeID, department string) bool {
	if a.IsAdmin() || a.EmployeeID == employeeID {
		return true
	}
	return a.ManagesDepartment(department)
}

// CanManage reports whether a may change the lifecycle of, or settle, an
// employee of the given department.
func (a Actor) CanManage(department string) bool {
	return a.IsAdmin() || a.ManagesDepartment(department)
}

// PermissionGrant is an explicit per-user grant on top of role permissions.
type PermissionGrant struct {
	UserID      string       `json:"user_id"`
	Permissions []Permission `json:"permissions"`
	GrantedBy   string       `json:"granted_by"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Version     int64        `json:"-"`
}

func (g PermissionGrant) Has(permission Permission) bool {
	for _, p := range g.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}
