package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hrms-engine/internal/config"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/schedule"
	"github.com/cmlabs-hris/hrms-engine/internal/fixtures"
	appHTTP "github.com/cmlabs-hris/hrms-engine/internal/handler/http"
	"github.com/cmlabs-hris/hrms-engine/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrms-engine/internal/repository"
	"github.com/cmlabs-hris/hrms-engine/internal/repository/keyvalue"
	activityService "github.com/cmlabs-hris/hrms-engine/internal/service/activity"
	attendanceService "github.com/cmlabs-hris/hrms-engine/internal/service/attendance"
	employeeService "github.com/cmlabs-hris/hrms-engine/internal/service/employee"
	paymentService "github.com/cmlabs-hris/hrms-engine/internal/service/payment"
	payrollService "github.com/cmlabs-hris/hrms-engine/internal/service/payroll"
	permissionService "github.com/cmlabs-hris/hrms-engine/internal/service/permission"
	scheduleService "github.com/cmlabs-hris/hrms-engine/internal/service/schedule"
	settlementService "github.com/cmlabs-hris/hrms-engine/internal/service/settlement"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := repository.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	employeeRepo := keyvalue.NewEmployeeRepository(store)
	attendanceRepo := keyvalue.NewAttendanceRepository(store)
	payrollRepo := keyvalue.NewPayrollRepository(store)
	settlementRepo := keyvalue.NewSettlementRepository(store)
	paymentRepo := keyvalue.NewPaymentRepository(store)
	activityRepo := keyvalue.NewActivityRepository(store)
	permissionRepo := keyvalue.NewPermissionRepository(store)

	if cfg.Store.Driver == config.StoreDriverMemory {
		created, err := fixtures.SeedEmployees(ctx, employeeRepo, time.Now())
		if err != nil {
			return err
		}
		slog.Info("seeded default employees", "count", created)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.AccessTokenTTL())

	activitySvc := activityService.NewActivityService(activityRepo)
	permissionSvc := permissionService.NewPermissionService(store, permissionRepo, activitySvc)
	resolver := scheduleService.NewResolver(schedule.Policy{
		DefaultStart:       cfg.Policy.DefaultShiftStart,
		DefaultEnd:         cfg.Policy.DefaultShiftEnd,
		DefaultWorkingDays: schedule.WorkingDays(cfg.Policy.DefaultWorkingDays),
		GraceMinutes:       cfg.Policy.GraceMinutes,
		Location:           cfg.Location(),
	})
	calculator := payrollService.NewCalculator(payroll.Policy{
		NormalMonthHours:   cfg.Policy.NormalMonthHours,
		OvertimeMultiplier: cfg.Policy.OvertimeMultiplier,
	})

	attendanceSvc := attendanceService.NewAttendanceService(store, attendanceRepo, employeeRepo, resolver, activitySvc)
	payrollSvc := payrollService.NewPayrollService(store, payrollRepo, employeeRepo, attendanceRepo, calculator, activitySvc)
	settlementSvc := settlementService.NewSettlementService(store, settlementRepo, employeeRepo, payrollRepo, paymentRepo, activitySvc)
	paymentSvc := paymentService.NewPaymentService(store, paymentRepo, employeeRepo, permissionSvc, settlementSvc, activitySvc)
	employeeSvc := employeeService.NewEmployeeService(store, employeeRepo, settlementSvc, activitySvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			Env:            cfg.App.Env,
			LogLevel:       cfg.SlogLevel(),
			AllowedOrigins: cfg.App.AllowedOrigins,
		},
		JWTService,
		appHTTP.Handlers{
			Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
			Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
			Employee:   appHTTP.NewEmployeeHandler(employeeSvc, settlementSvc),
			Settlement: appHTTP.NewSettlementHandler(settlementSvc),
			Payment:    appHTTP.NewPaymentHandler(paymentSvc),
			Activity:   appHTTP.NewActivityHandler(activitySvc),
			Permission: appHTTP.NewPermissionHandler(permissionSvc),
		},
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", server.Addr, "env", cfg.App.Env, "store", cfg.Store.Driver)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	slog.Info("shutting down")
	return server.Shutdown(shutdownCtx)
}
