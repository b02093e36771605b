package payroll

import (
	"log/slog"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

var minutesPerHour = decimal.NewFromInt(60)

// Calculator is the pure payroll arithmetic for one employee-month.
type Calculator struct {
	policy payroll.Policy
}

func NewCalculator(policy payroll.Policy) *Calculator {
	defaults := payroll.DefaultPolicy()
	if !policy.NormalMonthHours.IsPositive() {
		slog.Warn("invalid normal month hours, using default", "value", policy.NormalMonthHours.String())
		policy.NormalMonthHours = defaults.NormalMonthHours
	}
	if policy.OvertimeMultiplier.IsNegative() {
		slog.Warn("invalid overtime multiplier, using default", "value", policy.OvertimeMultiplier.String())
		policy.OvertimeMultiplier = defaults.OvertimeMultiplier
	}
	return &Calculator{policy: policy}
}

// Calculate implements payroll.Calculator. Deductions are proportional to
// the minutes and the net is not clamped at zero.
func (c *Calculator) Calculate(in payroll.Input) payroll.Figures {
	hourly := in.BaseSalary.Div(c.policy.NormalMonthHours)
	overtimePay := in.OvertimeHours.Mul(hourly).Mul(c.policy.OvertimeMultiplier)
	lateDeduction := c.deduction(in.BaseSalary, in.LateMinutes)
	earlyDeduction := c.deduction(in.BaseSalary, in.EarlyDepartureMinutes)

	return payroll.Figures{
		HourlyRate:              hourly,
		OvertimePay:             overtimePay,
		LateDeduction:           lateDeduction,
		EarlyDepartureDeduction: earlyDeduction,
		NetPay:                  in.BaseSalary.Add(overtimePay).Sub(lateDeduction).Sub(earlyDeduction),
	}
}

// deduction is hourlyRate * minutes / 60, multiplied out before dividing so
// exact rates stay exact.
func (c *Calculator) deduction(base decimal.Decimal, minutes int) decimal.Decimal {
	if minutes <= 0 {
		return decimal.Zero
	}
	return base.Mul(decimal.NewFromInt(int64(minutes))).Div(c.policy.NormalMonthHours.Mul(minutesPerHour))
}
