package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/peoplebase/hrm-backend-go/internal/config"
	"github.com/peoplebase/hrm-backend-go/internal/handler/http/middleware"
	"github.com/peoplebase/hrm-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	userHandler UserHandler,
	profileHandler ProfileHandler,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	payrollHandler PayrollHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "peoplebase-hrm"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			r.Post("/verify-email", authHandler.VerifyEmail)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Get("/auth/me", authHandler.Me)

			// Admin only
			r.Route("/users", func(r chi.Router) {
				r.With(middleware.RequireManager).Get("/", userHandler.List)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Patch("/{id}/role", userHandler.UpdateRole)
					r.Delete("/{id}", userHandler.Delete)
				})
			})

			r.Route("/profiles", func(r chi.Router) {
				r.With(middleware.RequireManager).Get("/", profileHandler.List)

				r.Route("/my", func(r chi.Router) {
					r.Get("/", profileHandler.GetMy)
					r.Patch("/", profileHandler.UpdateMyPersonal)
				})

				r.Route("/{employeeID}", func(r chi.Router) {
					r.Get("/", profileHandler.Get)
					r.Patch("/", profileHandler.UpdatePersonal)
					r.With(middleware.RequireManager).Patch("/job", profileHandler.UpdateJob)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
				r.Get("/my", attendanceHandler.GetMy)
				r.Get("/employee/{employeeID}", attendanceHandler.GetByEmployee)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/", attendanceHandler.List)
					r.Patch("/{id}/status", attendanceHandler.SetStatus)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", leaveHandler.Apply)
				r.Get("/my", leaveHandler.GetMy)
				r.Get("/my/balance", leaveHandler.MyBalance)
				r.Get("/balance/{employeeID}", leaveHandler.Balance)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/", leaveHandler.List)
					r.Patch("/{id}/decision", leaveHandler.Decide)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/my", payrollHandler.GetMy)
				r.Get("/employee/{employeeID}", payrollHandler.GetByEmployee)
				r.Get("/employee/{employeeID}/history", payrollHandler.History)
				r.Get("/{id}/payslip", payrollHandler.Payslip)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/", payrollHandler.List)
					r.Put("/", payrollHandler.Upsert)
				})
			})
		})
	})

	return r
}
