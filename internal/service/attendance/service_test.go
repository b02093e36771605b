package attendance

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/activity"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/schedule"
	"github.com/cmlabs-hris/hrms-engine/internal/fixtures"
	"github.com/cmlabs-hris/hrms-engine/internal/repository/keyvalue"
	"github.com/cmlabs-hris/hrms-engine/internal/repository/memory"
	activityService "github.com/cmlabs-hris/hrms-engine/internal/service/activity"
	scheduleService "github.com/cmlabs-hris/hrms-engine/internal/service/schedule"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var (
	adminActor = auth.Actor{UserID: "admin", EmployeeID: "admin", Name: "Ayu", Role: auth.RoleAdmin, Department: "Management"}
	opsManager = auth.Actor{UserID: "ops-mgr", EmployeeID: "ops-mgr", Role: auth.RoleManager, Department: "ops"}
	engManager = auth.Actor{UserID: "eng-mgr", EmployeeID: "eng-mgr", Role: auth.RoleManager, Department: "eng"}
)

type testEnv struct {
	svc        *AttendanceServiceImpl
	repo       attendance.AttendanceRepository
	employees  employee.EmployeeRepository
	activities activity.ActivityService
}

func newTestEnv(t *testing.T, policy schedule.Policy) testEnv {
	t.Helper()

	store := memory.NewRecordStore()
	repo := keyvalue.NewAttendanceRepository(store)
	employees := keyvalue.NewEmployeeRepository(store)
	activities := activityService.NewActivityService(keyvalue.NewActivityRepository(store))

	svc := NewAttendanceService(store, repo, employees, scheduleService.NewResolver(policy), activities).(*AttendanceServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC) }

	return testEnv{svc: svc, repo: repo, employees: employees, activities: activities}
}

func (e testEnv) addEmployee(t *testing.T, id, department string, mutate func(*employee.Employee)) auth.Actor {
	t.Helper()

	emp := employee.Employee{
		ID:             id,
		Name:           "Employee " + id,
		Department:     department,
		Role:           auth.RoleEmployee,
		MonthlySalary:  decimal.NewFromInt(3200),
		ShiftType:      schedule.ShiftTypeFixed,
		ShiftStartTime: "09:00",
		ShiftEndTime:   "17:00",
	}
	if mutate != nil {
		mutate(&emp)
	}
	_, err := e.employees.Create(context.Background(), emp)
	require.NoError(t, err)

	return auth.Actor{UserID: id, EmployeeID: id, Name: emp.Name, Role: auth.RoleEmployee, Department: department}
}

func asActor(t *testing.T, actor auth.Actor) context.Context {
	t.Helper()

	ctx, err := fixtures.ContextAs(context.Background(), actor)
	require.NoError(t, err)
	return ctx
}

func at(hour, minute, second int) time.Time {
	return time.Date(2024, 1, 15, hour, minute, second, 0, time.UTC)
}

func TestCheckInCheckOut_ScenarioA(t *testing.T) {
	env := newTestEnv(t, schedule.DefaultPolicy())
	ctx := asActor(t, env.addEmployee(t, "e1", "ops", nil))

	lat, lng := -6.2, 106.8
	in, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{Timestamp: at(9, 20, 0), Latitude: &lat, Longitude: &lng})
	require.NoError(t, err)
	assert.Equal(t, 20, in.LateMinutes)
	assert.Equal(t, "2024-01-15", in.Date)
	assert.Equal(t, "09:00", in.ShiftStartTime)
	assert.Equal(t, "Office", in.Location)
	assert.Nil(t, in.TotalHours)
	assert.Nil(t, in.EarlyDepartureMinutes)
	assert.Equal(t, string(attendance.StatusPresent), in.Status)

	out, err := env.svc.CheckOut(ctx, attendance.CheckOutRequest{Timestamp: at(16, 45, 0)})
	require.NoError(t, err)
	require.NotNil(t, out.EarlyDepartureMinutes)
	assert.Equal(t, 15, *out.EarlyDepartureMinutes)
	require.NotNil(t, out.TotalHours)
	assert.Equal(t, "7.42", out.TotalHours.StringFixed(2))
	assert.Equal(t, 20, out.LateMinutes, "check-out keeps the lateness")

	logged, err := env.activities.ListActivities(asActor(t, adminActor), activity.ActivityFilter{TargetID: "e1"})
	require.NoError(t, err)
	actions := make([]string, 0, len(logged))
	for _, a := range logged {
		actions = append(actions, a.Action)
	}
	assert.ElementsMatch(t, []string{string(activity.ActionAttendanceCheckIn), string(activity.ActionAttendanceCheckOut)}, actions)
}

func TestCheckIn_LatenessBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		checkIn time.Time
		want    int
	}{
		{"well before start", at(8, 30, 0), 0},
		{"exactly at start", at(9, 0, 0), 0},
		{"inside first minute", at(9, 0, 59), 0},
		{"one minute late", at(9, 1, 0), 1},
		{"floored not rounded", at(9, 14, 59), 14},
		{"afternoon", at(13, 0, 0), 240},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, schedule.DefaultPolicy())
			ctx := asActor(t, env.addEmployee(t, "e1", "ops", nil))

			resp, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{Timestamp: tt.checkIn})
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.LateMinutes)
		})
	}
}

func TestCheckOut_EarlyDepartureAndHours(t *testing.T) {
	tests := []struct {
		name      string
		checkOut  time.Time
		wantEarly int
		wantHours string
	}{
		{"at shift end", at(17, 0, 0), 0, "8.00"},
		{"after shift end", at(18, 30, 0), 0, "9.50"},
		{"thirty seconds early", at(16, 59, 30), 0, "7.99"},
		{"one minute early", at(16, 59, 0), 1, "7.98"},
		{"lunch leave", at(12, 0, 0), 300, "3.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, schedule.DefaultPolicy())
			ctx := asActor(t, env.addEmployee(t, "e1", "ops", nil))

			_, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{Timestamp: at(9, 0, 0)})
			require.NoError(t, err)

			resp, err := env.svc.CheckOut(ctx, attendance.CheckOutRequest{Timestamp: tt.checkOut})
			require.NoError(t, err)
			assert.Equal(t, tt.wantEarly, *resp.EarlyDepartureMinutes)
			assert.Equal(t, tt.wantHours, resp.TotalHours.StringFixed(2))

			// Round trip: stored hours equal the elapsed time to 2 decimals.
			stored, err := env.repo.Get(context.Background(), "e1", "2024-01-15")
			require.NoError(t, err)
			elapsed := decimal.NewFromFloat(tt.checkOut.Sub(at(9, 0, 0)).Hours()).Round(2)
			assert.True(t, stored.TotalHours.Equal(elapsed), "got %s want %s", stored.TotalHours, elapsed)
		})
	}
}

func TestCheckIn_SecondCheckInIsRejected(t *testing.T) {
	env := newTestEnv(t, schedule.DefaultPolicy())
	ctx := asActor(t, env.addEmployee(t, "e1", "ops", nil))

	_, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{Timestamp: at(9, 5, 0)})
	require.NoError(t, err)

	_, err = env.svc.CheckIn(ctx, attendance.CheckInRequest{Timestamp: at(10, 0, 0)})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	stored, err := env.repo.Get(context.Background(), "e1", "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, 5, stored.LateMinutes)
	assert.True(t, stored.CheckIn.Equal(at(9, 5, 0)))

	logged, err := env.activities.ListActivities(asActor(t, adminActor), activity.ActivityFilter{})
	require.NoError(t, err)
	assert.Len(t, logged, 1, "the rejected check-in must not be logged")
}

// interleavingActivity runs hook once, while the first logged write is still
// uncommitted, to simulate a competing request finishing in between.
type interleavingActivity struct {
	activity.ActivityService
	hook func()
}

func (a *interleavingActivity) Log(ctx context.Context, entry activity.LogEntry) error {
	if hook := a.hook; hook != nil {
		a.hook = nil
		hook()
	}
	return a.ActivityService.Log(ctx, entry)
}

func TestCheckIn_ConcurrentCheckInIsConflict(t *testing.T) {
	env := newTestEnv(t, schedule.DefaultPolicy())
	actor := env.addEmployee(t, "e1", "ops", nil)

	var competingErr error
	env.svc.activityService = &interleavingActivity{
		ActivityService: env.activities,
		hook: func() {
			_, competingErr = env.svc.CheckIn(asActor(t, actor), attendance.CheckInRequest{Timestamp: at(9, 5, 0)})
		},
	}

	_, err := env.svc.CheckIn(asActor(t, actor), attendance.CheckInRequest{Timestamp: at(9, 20, 0)})
	require.NoError(t, competingErr)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	stored, err := env.repo.Get(context.Background(), "e1", "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, 5, stored.LateMinutes)
}

func TestCheckOut_WithoutCheckIn_ScenarioC(t *testing.T) {
	env := newTestEnv(t, schedule.DefaultPolicy())
	ctx := asActor(t, env.addEmployee(t, "e1", "ops", nil))

	_, err := env.svc.CheckOut(ctx, attendance.CheckOutRequest{Timestamp: at(17, 0, 0)})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)

	all, err := env.repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCheckOut_Twice(t *testing.T) {
	env := newTestEnv(t, schedule.DefaultPolicy())
	ctx := asActor(t, env.addEmployee(t, "e1", "ops", nil))

	_, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{Timestamp: at(9, 0, 0)})
	require.NoError(t, err)
	_, err = env.svc.CheckOut(ctx, attendance.CheckOutRequest{Timestamp: at(17, 0, 0)})
	require.NoError(t, err)

	_, err = env.svc.CheckOut(ctx, attendance.CheckOutRequest{Timestamp: at(18, 0, 0)})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)

	stored, err := env.repo.Get(context.Background(), "e1", "2024-01-15")
	require.NoError(t, err)
	assert.True(t, stored.CheckOut.Equal(at(17, 0, 0)))
}

func TestAttendanceDisabled(t *testing.T) {
	env := newTestEnv(t, schedule.DefaultPolicy())
	disabled := false
	ctx := asActor(t, env.addEmployee(t, "e1", "ops", func(e *employee.Employee) { e.AttendanceEnabled = &disabled }))

	_, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{Timestamp: at(9, 0, 0)})
	assert.ErrorIs(t, err, attendance.ErrAttendanceDisabled)

	// A record created before attendance was disabled still cannot be closed.
	_, err = env.repo.Create(context.Background(), attendance.Attendance{EmployeeID: "e1", Date: "2024-01-15", CheckIn: at(9, 0, 0), ShiftStartTime: "09:00", ShiftEndTime: "17:00"})
	require.NoError(t, err)
	_, err = env.svc.CheckOut(ctx, attendance.CheckOutRequest{Timestamp: at(17, 0, 0)})
	assert.ErrorIs(t, err, attendance.ErrAttendanceDisabled)
}

func TestCheckIn_IdentityRules(t *testing.T) {
	env := newTestEnv(t, schedule.DefaultPolicy())
	e1 := env.addEmployee(t, "e1", "ops", nil)
	env.addEmployee(t, "e2", "ops", nil)

	_, err := env.svc.CheckIn(context.Background(), attendance.CheckInRequest{EmployeeID: "e1", Timestamp: at(9, 0, 0)})
	assert.ErrorIs(t, err, auth.ErrUnauthorized)

	_, err = env.svc.CheckIn(asActor(t, e1), attendance.CheckInRequest{EmployeeID: "e2", Timestamp: at(9, 0, 0)})
	assert.ErrorIs(t, err, auth.ErrForbidden)

	_, err = env.svc.CheckIn(asActor(t, adminActor), attendance.CheckInRequest{EmployeeID: "e2", Timestamp: at(9, 0, 0)})
	assert.NoError(t, err)

	_, err = env.svc.CheckIn(asActor(t, adminActor), attendance.CheckInRequest{EmployeeID: "ghost", Timestamp: at(9, 0, 0)})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestCheckIn_UsesBusinessTimeZone(t *testing.T) {
	policy := schedule.DefaultPolicy()
	policy.Location = time.FixedZone("WIB", 7*60*60)
	env := newTestEnv(t, policy)
	ctx := asActor(t, env.addEmployee(t, "e1", "ops", nil))

	// 23:30 UTC on the 14th is 06:30 local on the 15th.
	resp, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{Timestamp: time.Date(2024, 1, 14, 23, 30, 0, 0, time.UTC)})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", resp.Date)
	assert.Equal(t, 0, resp.LateMinutes)

	// 02:20 UTC is 09:20 local.
	resp2, err := env.svc.CheckOut(ctx, attendance.CheckOutRequest{Timestamp: time.Date(2024, 1, 15, 2, 20, 0, 0, time.UTC)})
	require.NoError(t, err)
	assert.Equal(t, 460, *resp2.EarlyDepartureMinutes)
}

func TestCheckIn_CustomShiftWindow(t *testing.T) {
	env := newTestEnv(t, schedule.DefaultPolicy())
	ctx := asActor(t, env.addEmployee(t, "e1", "ops", func(e *employee.Employee) {
		e.ShiftType = schedule.ShiftTypeCustom
		// 2024-01-15 is a Monday.
		e.CustomShift = schedule.CustomShift{"monday": {Start: "13:00", End: "21:00"}}
	}))

	resp, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{Timestamp: at(13, 10, 0)})
	require.NoError(t, err)
	assert.Equal(t, "13:00", resp.ShiftStartTime)
	assert.Equal(t, "21:00", resp.ShiftEndTime)
	assert.Equal(t, 10, resp.LateMinutes)

	out, err := env.svc.CheckOut(ctx, attendance.CheckOutRequest{Timestamp: at(20, 0, 0)})
	require.NoError(t, err)
	assert.Equal(t, 60, *out.EarlyDepartureMinutes)
}

func TestGetAnalytics_GraceAdjusted(t *testing.T) {
	env := newTestEnv(t, schedule.DefaultPolicy())
	checkIns := map[string]time.Time{
		"late":   at(9, 20, 0),
		"grace":  at(9, 10, 0),
		"early":  at(8, 30, 0),
		"ontime": at(8, 50, 0),
	}
	for id, ts := range checkIns {
		actor := env.addEmployee(t, id, "ops", nil)
		_, err := env.svc.CheckIn(asActor(t, actor), attendance.CheckInRequest{Timestamp: ts})
		require.NoError(t, err)
	}
	other := env.addEmployee(t, "eng-1", "eng", nil)
	_, err := env.svc.CheckIn(asActor(t, other), attendance.CheckInRequest{Timestamp: at(11, 0, 0)})
	require.NoError(t, err)

	resp, err := env.svc.GetAnalytics(asActor(t, opsManager), "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, 15, resp.GraceMinutes)
	assert.Equal(t, 4, resp.TotalPresent)
	assert.Equal(t, 2, resp.OnTime)
	require.Len(t, resp.LateComers, 1)
	assert.Equal(t, "late", resp.LateComers[0].EmployeeID)
	assert.Equal(t, 20, resp.LateComers[0].Minutes)
	require.Len(t, resp.EarlyBirds, 1)
	assert.Equal(t, "early", resp.EarlyBirds[0].EmployeeID)
	assert.Equal(t, 30, resp.EarlyBirds[0].Minutes)

	// Raw lateness on the record is not grace adjusted.
	stored, err := env.repo.Get(context.Background(), "grace", "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, 10, stored.LateMinutes)

	all, err := env.svc.GetAnalytics(asActor(t, adminActor), "")
	require.NoError(t, err)
	assert.Equal(t, 5, all.TotalPresent)

	_, err = env.svc.GetAnalytics(asActor(t, other), "2024-01-15")
	assert.ErrorIs(t, err, auth.ErrForbidden)
}

func TestGetAnalytics_GraceBoundaryUsesSeconds(t *testing.T) {
	env := newTestEnv(t, schedule.DefaultPolicy())
	checkIns := map[string]time.Time{
		"late-by-seconds":  at(9, 15, 30),
		"early-by-seconds": at(8, 44, 30),
		"exactly-grace":    at(9, 15, 0),
		"exactly-early":    at(8, 45, 0),
	}
	for id, ts := range checkIns {
		actor := env.addEmployee(t, id, "ops", nil)
		_, err := env.svc.CheckIn(asActor(t, actor), attendance.CheckInRequest{Timestamp: ts})
		require.NoError(t, err)
	}

	resp, err := env.svc.GetAnalytics(asActor(t, opsManager), "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, 2, resp.OnTime)
	require.Len(t, resp.LateComers, 1)
	assert.Equal(t, "late-by-seconds", resp.LateComers[0].EmployeeID)
	assert.Equal(t, 15, resp.LateComers[0].Minutes)
	require.Len(t, resp.EarlyBirds, 1)
	assert.Equal(t, "early-by-seconds", resp.EarlyBirds[0].EmployeeID)
	assert.Equal(t, 15, resp.EarlyBirds[0].Minutes)
}

func TestQueries_Visibility(t *testing.T) {
	env := newTestEnv(t, schedule.DefaultPolicy())
	e1 := env.addEmployee(t, "e1", "ops", nil)
	e2 := env.addEmployee(t, "e2", "eng", nil)
	for _, actor := range []auth.Actor{e1, e2} {
		_, err := env.svc.CheckIn(asActor(t, actor), attendance.CheckInRequest{Timestamp: at(9, 0, 0)})
		require.NoError(t, err)
	}

	mine, err := env.svc.GetMyAttendance(asActor(t, e1), attendance.AttendanceFilter{})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "e1", mine[0].EmployeeID)

	_, err = env.svc.GetByEmployee(asActor(t, e1), "e2")
	assert.ErrorIs(t, err, auth.ErrForbidden)

	_, err = env.svc.GetByEmployeeAndDate(asActor(t, opsManager), "e2", "2024-01-15")
	assert.ErrorIs(t, err, auth.ErrForbidden)

	got, err := env.svc.GetByEmployeeAndDate(asActor(t, engManager), "e2", "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, "e2", got.EmployeeID)

	_, err = env.svc.GetByEmployeeAndDate(asActor(t, adminActor), "e2", "2024-01-16")
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)

	ops, err := env.svc.ListByDateRange(asActor(t, opsManager), attendance.AttendanceFilter{StartDate: "2024-01-01", EndDate: "2024-01-31"})
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, "e1", ops[0].EmployeeID)

	all, err := env.svc.ListByDateRange(asActor(t, adminActor), attendance.AttendanceFilter{StartDate: "2024-01-15", EndDate: "2024-01-15"})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	none, err := env.svc.ListByDateRange(asActor(t, adminActor), attendance.AttendanceFilter{StartDate: "2024-02-01"})
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = env.svc.ListByDateRange(asActor(t, e1), attendance.AttendanceFilter{EmployeeID: "e2"})
	assert.ErrorIs(t, err, auth.ErrForbidden)

	_, err = env.svc.ListByDateRange(asActor(t, adminActor), attendance.AttendanceFilter{StartDate: "2024-02-01", EndDate: "2024-01-01"})
	assert.Error(t, err)
}

func TestLocationTraces(t *testing.T) {
	env := newTestEnv(t, schedule.DefaultPolicy())
	e1 := env.addEmployee(t, "e1", "ops", nil)
	ctx := asActor(t, e1)

	points := []struct {
		ts       time.Time
		lat, lng float64
	}{
		{at(9, 0, 0), 0, 0},
		{at(10, 0, 0), 1, 0},
		{time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC), 5, 5},
	}
	for _, p := range points {
		_, err := env.svc.RecordLocationTrace(ctx, attendance.RecordTraceRequest{Timestamp: p.ts, Latitude: p.lat, Longitude: p.lng})
		require.NoError(t, err)
	}

	resp, err := env.svc.ListLocationTraces(ctx, "e1", "2024-01-15")
	require.NoError(t, err)
	assert.Len(t, resp.Traces, 2)
	assert.InDelta(t, 111195, resp.DistanceMeters, 50)

	_, err = env.svc.ListLocationTraces(asActor(t, engManager), "e1", "2024-01-15")
	assert.ErrorIs(t, err, auth.ErrForbidden)

	_, err = env.svc.RecordLocationTrace(ctx, attendance.RecordTraceRequest{Timestamp: at(11, 0, 0), Latitude: 91})
	assert.Error(t, err)
}

func TestExportAttendance(t *testing.T) {
	env := newTestEnv(t, schedule.DefaultPolicy())
	e1 := env.addEmployee(t, "e1", "ops", nil)
	ctx := asActor(t, e1)
	_, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{Timestamp: at(9, 20, 0)})
	require.NoError(t, err)
	_, err = env.svc.CheckOut(ctx, attendance.CheckOutRequest{Timestamp: at(16, 45, 0)})
	require.NoError(t, err)

	data, err := env.svc.ExportAttendance(asActor(t, adminActor), attendance.AttendanceFilter{StartDate: "2024-01-01", EndDate: "2024-01-31"})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Employee ID", rows[0][0])
	assert.Equal(t, "e1", rows[1][0])
	assert.Equal(t, "20", rows[1][8])
	assert.Equal(t, "15", rows[1][9])

	_, err = env.svc.ExportAttendance(ctx, attendance.AttendanceFilter{})
	assert.ErrorIs(t, err, auth.ErrForbidden)
}
