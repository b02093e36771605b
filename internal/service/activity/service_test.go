package activity

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/activity"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-engine/internal/fixtures"
	"github.com/cmlabs-hris/hrms-engine/internal/repository/keyvalue"
	"github.com/cmlabs-hris/hrms-engine/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *ActivityServiceImpl {
	t.Helper()

	svc := NewActivityService(keyvalue.NewActivityRepository(memory.NewRecordStore())).(*ActivityServiceImpl)
	clock := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return svc
}

func asActor(t *testing.T, actor auth.Actor) context.Context {
	t.Helper()

	ctx, err := fixtures.ContextAs(context.Background(), actor)
	require.NoError(t, err)
	return ctx
}

func seed(t *testing.T, svc *ActivityServiceImpl) {
	t.Helper()

	entries := []activity.LogEntry{
		{Action: activity.ActionAttendanceCheckIn, TargetID: "e1", Department: "ops"},
		{Action: activity.ActionAttendanceCheckIn, TargetID: "e2", Department: "eng"},
		{Action: activity.ActionPayrollGenerated, TargetID: "e1", Department: "ops"},
	}
	for _, entry := range entries {
		entry.Actor = auth.Actor{UserID: "admin", Role: auth.RoleAdmin}
		require.NoError(t, svc.Log(context.Background(), entry))
	}
}

func TestListActivities_Admin(t *testing.T) {
	svc := newTestService(t)
	seed(t, svc)

	items, err := svc.ListActivities(asActor(t, auth.Actor{UserID: "admin", Role: auth.RoleAdmin}), activity.ActivityFilter{})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, string(activity.ActionPayrollGenerated), items[0].Action, "newest first")
	assert.Equal(t, "admin", items[0].ActorID)
	assert.NotEmpty(t, items[0].ID)

	items, err = svc.ListActivities(asActor(t, auth.Actor{UserID: "admin", Role: auth.RoleAdmin}), activity.ActivityFilter{Action: string(activity.ActionAttendanceCheckIn), Limit: 1})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "e2", items[0].TargetID)
}

func TestListActivities_ManagerSeesOwnDepartment(t *testing.T) {
	svc := newTestService(t)
	seed(t, svc)

	items, err := svc.ListActivities(asActor(t, auth.Actor{UserID: "m1", Role: auth.RoleManager, Department: "ops"}), activity.ActivityFilter{Department: "eng"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, "ops", item.Department)
	}
}

func TestListActivities_EmployeeGetsNothing(t *testing.T) {
	svc := newTestService(t)
	seed(t, svc)

	items, err := svc.ListActivities(asActor(t, auth.Actor{UserID: "e1", Role: auth.RoleEmployee, Department: "ops"}), activity.ActivityFilter{})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestListActivities_RequiresIdentity(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ListActivities(context.Background(), activity.ActivityFilter{})
	assert.ErrorIs(t, err, auth.ErrUnauthorized)
}
