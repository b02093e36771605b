package record

import (
	"fmt"
	"strings"
	"time"
)

const (
	PrefixEmployee    = "employee:"
	PrefixAttendance  = "attendance:"
	PrefixOvertime    = "overtime:"
	PrefixPayroll     = "payroll:"
	PrefixSettlement  = "settlement:"
	PrefixPayment     = "payment:"
	PrefixActivity    = "activity:"
	PrefixTrace       = "trace:"
	PrefixPermissions = "permissions:"

	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// ValidateKeyPart rejects identifiers that would break prefix scans.
func ValidateKeyPart(part string) error {
	if strings.TrimSpace(part) == "" || strings.Contains(part, ":") {
		return ErrInvalidKeyPart
	}
	return nil
}

func EmployeeKey(employeeID string) string {
	return PrefixEmployee + employeeID
}

// AttendanceKey takes the calendar date already formatted as YYYY-MM-DD in
// the business time zone.
func AttendanceKey(employeeID, date string) string {
	return AttendanceEmployeePrefix(employeeID) + date
}

func AttendanceEmployeePrefix(employeeID string) string {
	return PrefixAttendance + employeeID + ":"
}

// AttendanceMonthPrefix matches every attendance day of one employee in one month.
func AttendanceMonthPrefix(employeeID string, year, month int) string {
	return AttendanceEmployeePrefix(employeeID) + period(year, month) + "-"
}

func OvertimeKey(employeeID string, year, month int) string {
	return PrefixOvertime + employeeID + ":" + period(year, month)
}

func PayrollKey(employeeID string, year, month int) string {
	return PayrollEmployeePrefix(employeeID) + period(year, month)
}

func PayrollEmployeePrefix(employeeID string) string {
	return PrefixPayroll + employeeID + ":"
}

func SettlementKey(employeeID string, at time.Time) string {
	return SettlementEmployeePrefix(employeeID) + millis(at)
}

func SettlementEmployeePrefix(employeeID string) string {
	return PrefixSettlement + employeeID + ":"
}

func PaymentKey(employeeID string, at time.Time) string {
	return PaymentEmployeePrefix(employeeID) + millis(at)
}

func PaymentEmployeePrefix(employeeID string) string {
	return PrefixPayment + employeeID + ":"
}

func ActivityKey(at time.Time, id string) string {
	return PrefixActivity + millis(at) + ":" + id
}

func TraceKey(employeeID string, at time.Time) string {
	return TraceEmployeePrefix(employeeID) + millis(at)
}

func TraceEmployeePrefix(employeeID string) string {
	return PrefixTrace + employeeID + ":"
}

func PermissionsKey(userID string) string {
	return PrefixPermissions + userID
}

func period(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// millis is zero padded so lexical key order matches chronological order.
func millis(at time.Time) string {
	return fmt.Sprintf("%013d", at.UnixMilli())
}
