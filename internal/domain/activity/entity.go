package activity

import "time"

type Action string

const (
	ActionAttendanceCheckIn        Action = "attendance_checkin"
	ActionAttendanceCheckOut       Action = "attendance_checkout"
	ActionOvertimeRecorded         Action = "overtime_recorded"
	ActionPayrollGenerated         Action = "payroll_generated"
	ActionPayrollStatusUpdated     Action = "payroll_status_updated"
	ActionFinalSettlementGenerated Action = "final_settlement_generated"
	ActionEmployeeCreated          Action = "employee_created"
	ActionEmployeeUpdated          Action = "employee_updated"
	ActionEmployeeSuspended        Action = "employee_suspended"
	ActionEmployeeReactivated      Action = "employee_reactivated"
	ActionEmployeeResigned         Action = "employee_resigned"
	ActionEmployeeTerminated       Action = "employee_terminated"
	ActionPaymentMade              Action = "payment_made"
	ActionPermissionsGranted       Action = "permissions_granted"
)

type Activity struct {
	ID         string         `json:"id"`
	Action     Action         `json:"action"`
	ActorID    string         `json:"actor_id"`
	ActorName  string         `json:"actor_name,omitempty"`
	ActorRole  string         `json:"actor_role,omitempty"`
	TargetID   string         `json:"target_id,omitempty"`
	TargetName string         `json:"target_name,omitempty"`
	Department string         `json:"department,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
}
