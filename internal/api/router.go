package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/ndewijer/Finance-Tracker-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Finance-Tracker-Backend/internal/api/middleware"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/config"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/finance"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/service"
)

// Services groups the services the router exposes.
type Services struct {
	System       *service.SystemService
	Sessions     *service.SessionService
	Transactions *service.TransactionService
	Alerts       *service.AlertService
	Admin        *service.AdminService
	Calculator   finance.LoanCalculator
}

// NewRouter creates and configures the HTTP router
func NewRouter(svcs Services, cfg *config.Config, log *logrus.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(log))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	requireSession := custommiddleware.RequireSession(svcs.Sessions)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svcs.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/auth", func(r chi.Router) {
			authHandler := handlers.NewAuthHandler(svcs.Sessions)
			r.Post("/login", authHandler.Login)
			r.Post("/signup", authHandler.Signup)
			r.Post("/logout", authHandler.Logout)
			r.With(requireSession).Get("/me", authHandler.Me)
		})

		r.Route("/loan", func(r chi.Router) {
			loanHandler := handlers.NewLoanHandler(svcs.Calculator)
			r.Get("/calculate", loanHandler.Calculate)
			r.Get("/schedule", loanHandler.Schedule)
		})

		r.Route("/transaction", func(r chi.Router) {
			r.Use(requireSession)
			transactionHandler := handlers.NewTransactionHandler(svcs.Transactions)
			r.Get("/", transactionHandler.AllTransactions)
			r.Post("/", transactionHandler.CreateTransaction)
			r.Get("/summary", transactionHandler.Summary)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
				r.Put("/", transactionHandler.UpdateTransaction)
				r.Delete("/", transactionHandler.DeleteTransaction)
			})
		})

		r.Route("/alerts", func(r chi.Router) {
			alertHandler := handlers.NewAlertHandler(svcs.Alerts)
			r.Get("/", alertHandler.Alerts)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(requireSession)
			r.Use(custommiddleware.RequireAdmin)
			adminHandler := handlers.NewAdminHandler(svcs.Admin)
			r.Get("/stats", adminHandler.Stats)
		})
	})

	return r
}
