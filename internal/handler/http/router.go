package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-engine/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hrms-engine/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	Env            string
	LogLevel       slog.Level
	AllowedOrigins []string
}

type Handlers struct {
	Attendance AttendanceHandler
	Payroll    PayrollHandler
	Employee   EmployeeHandler
	Settlement SettlementHandler
	Payment    PaymentHandler
	Activity   ActivityHandler
	Permission PermissionHandler
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       opts.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrms-engine"),
		slog.String("version", "v1.0.0"),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired)

		r.Route("/attendance", func(r chi.Router) {
			r.Post("/check-in", h.Attendance.CheckIn)
			r.Post("/check-out", h.Attendance.CheckOut)
			r.Get("/my", h.Attendance.GetMyAttendance)
			r.Get("/", h.Attendance.List)
			r.Get("/employees/{employeeID}", h.Attendance.GetByEmployee)
			r.Get("/employees/{employeeID}/{date}", h.Attendance.GetByEmployeeAndDate)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(auth.PermissionAttendanceViewAll))
				r.Get("/analytics", h.Attendance.Analytics)
				r.Get("/export", h.Attendance.Export)
			})

			r.Route("/traces", func(r chi.Router) {
				r.Post("/", h.Attendance.RecordTrace)
				r.Get("/{employeeID}/{date}", h.Attendance.ListTraces)
			})
		})

		r.Route("/payroll", func(r chi.Router) {
			r.Get("/", h.Payroll.List)
			r.Get("/{employeeID}/{year}/{month}", h.Payroll.Get)
			r.Get("/{employeeID}/{year}/{month}/payslip", h.Payroll.Payslip)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(auth.PermissionPayrollManage))
				r.Post("/overtime", h.Payroll.RecordOvertime)
				r.Post("/generate", h.Payroll.Generate)
				r.Put("/{employeeID}/{year}/{month}/status", h.Payroll.UpdateStatus)
			})
		})

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.Employee.List)
			r.With(middleware.RequirePermission(auth.PermissionEmployeeManage)).Post("/", h.Employee.Create)

			r.Route("/{employeeID}", func(r chi.Router) {
				r.Get("/", h.Employee.Get)
				r.Put("/", h.Employee.Update)
				r.Put("/lifecycle", h.Employee.UpdateLifecycle)
				r.Post("/final-settlement", h.Employee.GenerateSettlement)
				r.Get("/settlements", h.Settlement.ListByEmployee)
			})
		})

		r.Get("/settlements", h.Settlement.List)

		r.Route("/payments", func(r chi.Router) {
			r.Post("/", h.Payment.Create)
			r.Get("/", h.Payment.List)
		})

		r.Get("/activities", h.Activity.List)

		r.Route("/permissions/{userID}", func(r chi.Router) {
			r.Get("/", h.Permission.Get)
			r.With(middleware.RequireAdmin).Put("/", h.Permission.Grant)
		})
	})
	return r
}
