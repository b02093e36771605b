package payroll

import (
	"testing"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculator_Calculate(t *testing.T) {
	calc := NewCalculator(payroll.DefaultPolicy())

	tests := []struct {
		name      string
		in        payroll.Input
		hourly    string
		overtime  string
		late      string
		early     string
		netPayStr string
	}{
		{
			name:      "scenario B: lateness only",
			in:        payroll.Input{BaseSalary: d("3200"), LateMinutes: 120},
			hourly:    "20",
			overtime:  "0",
			late:      "40",
			early:     "0",
			netPayStr: "3160",
		},
		{
			name:      "overtime at one and a half",
			in:        payroll.Input{BaseSalary: d("3200"), OvertimeHours: d("10")},
			hourly:    "20",
			overtime:  "300",
			late:      "0",
			early:     "0",
			netPayStr: "3500",
		},
		{
			name:      "fractional rate and minutes",
			in:        payroll.Input{BaseSalary: d("3000"), OvertimeHours: d("2.5"), LateMinutes: 45, EarlyDepartureMinutes: 15},
			hourly:    "18.75",
			overtime:  "70.3125",
			late:      "14.0625",
			early:     "4.6875",
			netPayStr: "3051.5625",
		},
		{
			name:      "deductions exceed pay",
			in:        payroll.Input{BaseSalary: d("1600"), LateMinutes: 6000, EarlyDepartureMinutes: 6000},
			hourly:    "10",
			overtime:  "0",
			late:      "1000",
			early:     "1000",
			netPayStr: "-400",
		},
		{
			name:      "no salary",
			in:        payroll.Input{BaseSalary: decimal.Zero, LateMinutes: 30},
			hourly:    "0",
			overtime:  "0",
			late:      "0",
			early:     "0",
			netPayStr: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.Calculate(tt.in)
			assert.True(t, got.HourlyRate.Equal(d(tt.hourly)), "hourly %s", got.HourlyRate)
			assert.True(t, got.OvertimePay.Equal(d(tt.overtime)), "overtime %s", got.OvertimePay)
			assert.True(t, got.LateDeduction.Equal(d(tt.late)), "late %s", got.LateDeduction)
			assert.True(t, got.EarlyDepartureDeduction.Equal(d(tt.early)), "early %s", got.EarlyDepartureDeduction)
			assert.True(t, got.NetPay.Equal(d(tt.netPayStr)), "net %s", got.NetPay)
		})
	}
}

func TestCalculator_PolicyInjection(t *testing.T) {
	calc := NewCalculator(payroll.Policy{NormalMonthHours: d("100"), OvertimeMultiplier: d("2")})

	got := calc.Calculate(payroll.Input{BaseSalary: d("1000"), OvertimeHours: d("1"), LateMinutes: 60})
	assert.True(t, got.HourlyRate.Equal(d("10")))
	assert.True(t, got.OvertimePay.Equal(d("20")))
	assert.True(t, got.LateDeduction.Equal(d("10")))

	fallback := NewCalculator(payroll.Policy{})
	assert.True(t, fallback.Calculate(payroll.Input{BaseSalary: d("3200")}).HourlyRate.Equal(d("20")))
}
