package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/unifin/internal/api/http/handlers"
	"github.com/spec-kit/unifin/internal/auth"
	"github.com/spec-kit/unifin/internal/domain"
	"github.com/spec-kit/unifin/internal/observability"
	"github.com/spec-kit/unifin/internal/session"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health       *handlers.HealthHandler
	Sessions     *handlers.SessionsHandler
	Wallet       *handlers.WalletHandler
	Auth         *handlers.AuthHandler
	Views        *handlers.ViewsHandler
	Fees         *handlers.FeesHandler
	Payroll      *handlers.PayrollHandler
	Funds        *handlers.FundsHandler
	Payments     *handlers.PaymentsHandler
	Scholarships *handlers.ScholarshipsHandler
	Registry     *handlers.RegistryHandler
	Transactions *handlers.TransactionsHandler

	SessionMiddleware *session.Middleware
	Guard             *auth.Guard
	Metrics           *observability.Metrics
}

// RegisterRoutes wires HTTP routes. Every feature endpoint sits behind the view it serves.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	app.Post("/sessions", cfg.Sessions.Create)
	app.Get("/views", cfg.Views.List)

	api := app.Group("", cfg.SessionMiddleware.Handle)
	view := func(name string) fiber.Handler {
		return session.RequireView(cfg.Guard, name, cfg.Metrics)
	}

	api.Get("/sessions/me", cfg.Sessions.Current)
	api.Delete("/sessions/me", cfg.Sessions.Delete)

	api.Get("/wallet", cfg.Wallet.Get)
	api.Post("/wallet/connect", cfg.Wallet.Connect)
	api.Post("/wallet/disconnect", cfg.Wallet.Disconnect)

	api.Post("/auth/login", cfg.Auth.Login)
	api.Post("/auth/logout", cfg.Auth.Logout)

	api.Get("/views/:name/authorize", cfg.Views.Authorize)

	api.Post("/fees", view(domain.ViewFeePayment), cfg.Fees.PayFee)
	api.Post("/fees/tuition", view(domain.ViewDashboard), cfg.Fees.PayTuition)
	api.Get("/fees/history", view(domain.ViewDashboard), cfg.Fees.History)

	api.Post("/payroll", view(domain.ViewPayroll), cfg.Payroll.Process)
	api.Post("/payroll/salary", view(domain.ViewPayroll), cfg.Payroll.SendSalary)
	api.Get("/payroll/balance", view(domain.ViewPayroll), cfg.Payroll.Balance)

	api.Post("/funds", view(domain.ViewFundAllocation), cfg.Funds.Allocate)
	api.Post("/payments", view(domain.ViewPayments), cfg.Payments.Send)

	api.Get("/scholarships/departments", cfg.Scholarships.Departments)
	api.Get("/scholarships/balance", view(domain.ViewScholarship), cfg.Scholarships.Balance)
	api.Post("/scholarships", view(domain.ViewScholarship), cfg.Scholarships.Submit)
	api.Get("/scholarships", view(domain.ViewAdminScholarship), cfg.Scholarships.List)
	api.Post("/scholarships/:id/approve", view(domain.ViewAdminReview), cfg.Scholarships.Approve)
	api.Post("/scholarships/:id/reject", view(domain.ViewAdminReview), cfg.Scholarships.Reject)

	api.Get("/students", view(domain.ViewAdminStudents), cfg.Registry.ListStudents)
	api.Post("/students", view(domain.ViewAdminRegister), cfg.Registry.RegisterStudent)
	api.Get("/students/:address", view(domain.ViewAdminStudents), cfg.Registry.GetStudent)
	api.Get("/employees", view(domain.ViewAdminEmployees), cfg.Registry.ListEmployees)
	api.Post("/employees", view(domain.ViewAdminAddEmployee), cfg.Registry.AddEmployee)

	api.Get("/transactions", view(domain.ViewTransactions), cfg.Transactions.Recent)
	api.Get("/admin/transactions", view(domain.ViewAdminTx), cfg.Transactions.CallLog)
}
