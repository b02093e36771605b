package record

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAttendanceKeys(t *testing.T) {
	key := AttendanceKey("emp-1", "2024-03-05")
	assert.Equal(t, "attendance:emp-1:2024-03-05", key)
	assert.True(t, strings.HasPrefix(key, AttendanceMonthPrefix("emp-1", 2024, 3)))
	assert.False(t, strings.HasPrefix(key, AttendanceMonthPrefix("emp-1", 2024, 4)))
	assert.False(t, strings.HasPrefix(key, AttendanceEmployeePrefix("emp")))
}

func TestPeriodKeysArePadded(t *testing.T) {
	assert.Equal(t, "payroll:emp-1:2024-03", PayrollKey("emp-1", 2024, 3))
	assert.Equal(t, "overtime:emp-1:2024-11", OvertimeKey("emp-1", 2024, 11))
}

func TestTimestampKeysSortChronologically(t *testing.T) {
	early := time.UnixMilli(999)
	late := time.UnixMilli(1_700_000_000_000)

	assert.Less(t, SettlementKey("e", early), SettlementKey("e", late))
	assert.Less(t, PaymentKey("e", early), PaymentKey("e", late))
}

func TestValidateKeyPart(t *testing.T) {
	assert.NoError(t, ValidateKeyPart("emp-1"))
	assert.ErrorIs(t, ValidateKeyPart(""), ErrInvalidKeyPart)
	assert.ErrorIs(t, ValidateKeyPart("  "), ErrInvalidKeyPart)
	assert.ErrorIs(t, ValidateKeyPart("a:b"), ErrInvalidKeyPart)
}
