package payment

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/payment"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/settlement"
	"github.com/cmlabs-hris/hrms-engine/internal/fixtures"
	"github.com/cmlabs-hris/hrms-engine/internal/pkg/validator"
	"github.com/cmlabs-hris/hrms-engine/internal/repository/keyvalue"
	"github.com/cmlabs-hris/hrms-engine/internal/repository/memory"
	activityService "github.com/cmlabs-hris/hrms-engine/internal/service/activity"
	permissionService "github.com/cmlabs-hris/hrms-engine/internal/service/permission"
	settlementService "github.com/cmlabs-hris/hrms-engine/internal/service/settlement"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	adminActor = auth.Actor{UserID: "admin", EmployeeID: "admin", Role: auth.RoleAdmin, Department: "Management"}
	opsManager = auth.Actor{UserID: "ops-mgr", EmployeeID: "ops-mgr", Role: auth.RoleManager, Department: "ops"}
	staffActor = auth.Actor{UserID: "e1", EmployeeID: "e1", Role: auth.RoleEmployee, Department: "ops"}
)

type testEnv struct {
	svc         *PaymentServiceImpl
	payments    payment.PaymentRepository
	payrolls    payroll.PayrollRepository
	settlements *settlementService.SettlementServiceImpl
	permissions auth.PermissionService
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	store := memory.NewRecordStore()
	employees := keyvalue.NewEmployeeRepository(store)
	activities := activityService.NewActivityService(keyvalue.NewActivityRepository(store))

	env := testEnv{
		payments:    keyvalue.NewPaymentRepository(store),
		payrolls:    keyvalue.NewPayrollRepository(store),
		permissions: permissionService.NewPermissionService(store, keyvalue.NewPermissionRepository(store), activities),
	}
	env.settlements = settlementService.NewSettlementService(store, keyvalue.NewSettlementRepository(store),
		employees, env.payrolls, env.payments, activities)
	env.svc = NewPaymentService(store, env.payments, employees, env.permissions, env.settlements, activities).(*PaymentServiceImpl)

	clock := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	env.svc.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	for _, emp := range []employee.Employee{
		{ID: "e1", Name: "Dewi", Department: "ops", MonthlySalary: decimal.NewFromInt(3000)},
		{ID: "e2", Name: "Bayu", Department: "eng", MonthlySalary: decimal.NewFromInt(4000)},
	} {
		_, err := employees.Create(context.Background(), emp)
		require.NoError(t, err)
	}
	return env
}

func asActor(t *testing.T, actor auth.Actor) context.Context {
	t.Helper()

	ctx, err := fixtures.ContextAs(context.Background(), actor)
	require.NoError(t, err)
	return ctx
}

func amountPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestCreatePaymentAmounts(t *testing.T) {
	env := newTestEnv(t)
	ctx := asActor(t, adminActor)

	tests := []struct {
		name string
		req  payment.CreatePaymentRequest
		want int64
	}{
		{"full salary defaults to monthly salary", payment.CreatePaymentRequest{EmployeeID: "e1", Type: payment.TypeFullSalary}, 3000},
		{"half salary defaults to half", payment.CreatePaymentRequest{EmployeeID: "e1", Type: "Half_Salary"}, 1500},
		{"explicit amount wins", payment.CreatePaymentRequest{EmployeeID: "e1", Type: payment.TypeFullSalary, Amount: amountPtr(2800)}, 2800},
		{"advance", payment.CreatePaymentRequest{EmployeeID: "e1", Type: payment.TypeAdvance, Amount: amountPtr(500)}, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := env.svc.CreatePayment(ctx, tt.req)
			require.NoError(t, err)
			assert.True(t, decimal.NewFromInt(tt.want).Equal(resp.Amount), "amount %s", resp.Amount)
			assert.Equal(t, "2024-03", resp.Month)
			assert.Equal(t, "admin", resp.PaidBy)
			assert.False(t, resp.Deducted)
		})
	}

	stored, err := env.payments.ListByEmployee(context.Background(), "e1")
	require.NoError(t, err)
	assert.Len(t, stored, len(tests))
}

func TestCreatePaymentValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := asActor(t, adminActor)

	_, err := env.svc.CreatePayment(ctx, payment.CreatePaymentRequest{EmployeeID: "e1", Type: payment.TypeAdvance})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, payment.ErrAmountRequired.Error(), verrs.ToMap()["amount"])

	_, err = env.svc.CreatePayment(ctx, payment.CreatePaymentRequest{EmployeeID: "e1", Type: "bonus"})
	assert.ErrorAs(t, err, &verrs)

	_, err = env.svc.CreatePayment(ctx, payment.CreatePaymentRequest{EmployeeID: "ghost", Type: payment.TypeFullSalary})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestCreatePaymentRequiresGrant(t *testing.T) {
	env := newTestEnv(t)
	req := payment.CreatePaymentRequest{EmployeeID: "e1", Type: payment.TypeFullSalary}

	_, err := env.svc.CreatePayment(asActor(t, opsManager), req)
	assert.ErrorIs(t, err, auth.ErrForbidden)

	_, err = env.permissions.GrantPermissions(asActor(t, adminActor), auth.GrantPermissionsRequest{
		UserID:      opsManager.UserID,
		Permissions: []auth.Permission{auth.PermissionMakePayments},
	})
	require.NoError(t, err)

	resp, err := env.svc.CreatePayment(asActor(t, opsManager), req)
	require.NoError(t, err)
	assert.Equal(t, "ops-mgr", resp.PaidBy)
}

func TestFinalSettlementPayment(t *testing.T) {
	env := newTestEnv(t)
	ctx := asActor(t, adminActor)
	req := payment.CreatePaymentRequest{EmployeeID: "e1", Type: payment.TypeFinalSettlement}

	_, err := env.svc.CreatePayment(ctx, req)
	assert.ErrorIs(t, err, payment.ErrNoPendingSettlement)
	stored, err := env.payments.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stored)

	_, err = env.payrolls.Save(context.Background(), payroll.PayrollRecord{
		EmployeeID: "e1", Year: 2024, Month: 2, NetPay: decimal.NewFromInt(2750), Status: payroll.PayrollStatusApproved,
	})
	require.NoError(t, err)
	_, err = env.settlements.GenerateSettlement(ctx, "e1")
	require.NoError(t, err)

	resp, err := env.svc.CreatePayment(ctx, req)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(2750).Equal(resp.Amount))

	settlements, err := env.settlements.ListSettlementsByEmployee(ctx, "e1")
	require.NoError(t, err)
	require.Len(t, settlements, 1)
	assert.Equal(t, string(settlement.StatusPaid), settlements[0].Status)
	assert.NotNil(t, settlements[0].PaidAt)

	_, err = env.svc.CreatePayment(ctx, req)
	assert.ErrorIs(t, err, payment.ErrNoPendingSettlement)
}

func TestListPayments(t *testing.T) {
	env := newTestEnv(t)
	admin := asActor(t, adminActor)

	for _, req := range []payment.CreatePaymentRequest{
		{EmployeeID: "e1", Type: payment.TypeFullSalary},
		{EmployeeID: "e1", Type: payment.TypeAdvance, Amount: amountPtr(200)},
		{EmployeeID: "e2", Type: payment.TypeFullSalary},
	} {
		_, err := env.svc.CreatePayment(admin, req)
		require.NoError(t, err)
	}

	all, err := env.svc.ListPayments(admin, payment.PaymentFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	advances, err := env.svc.ListPayments(admin, payment.PaymentFilter{Type: string(payment.TypeAdvance)})
	require.NoError(t, err)
	assert.Len(t, advances, 1)

	ops, err := env.svc.ListPayments(asActor(t, opsManager), payment.PaymentFilter{})
	require.NoError(t, err)
	assert.Len(t, ops, 2)
	for _, p := range ops {
		assert.Equal(t, "ops", p.Department)
	}

	own, err := env.svc.ListPayments(asActor(t, staffActor), payment.PaymentFilter{})
	require.NoError(t, err)
	assert.Len(t, own, 2)

	_, err = env.svc.ListPayments(asActor(t, staffActor), payment.PaymentFilter{EmployeeID: "e2"})
	assert.ErrorIs(t, err, auth.ErrForbidden)
}
