package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/peoplebase/hrm-backend-go/internal/config"
	appHTTP "github.com/peoplebase/hrm-backend-go/internal/handler/http"
	"github.com/peoplebase/hrm-backend-go/internal/pkg/database"
	"github.com/peoplebase/hrm-backend-go/internal/pkg/db"
	"github.com/peoplebase/hrm-backend-go/internal/pkg/email"
	"github.com/peoplebase/hrm-backend-go/internal/pkg/jwt"
	"github.com/peoplebase/hrm-backend-go/internal/repository/postgresql"
	attendanceService "github.com/peoplebase/hrm-backend-go/internal/service/attendance"
	authService "github.com/peoplebase/hrm-backend-go/internal/service/auth"
	leaveService "github.com/peoplebase/hrm-backend-go/internal/service/leave"
	payrollService "github.com/peoplebase/hrm-backend-go/internal/service/payroll"
	profileService "github.com/peoplebase/hrm-backend-go/internal/service/profile"
	userService "github.com/peoplebase/hrm-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Invalid config:", err)
		os.Exit(1)
	}

	pool, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error connecting to database:", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.Migrate(context.Background(), pool); err != nil {
		fmt.Fprintln(os.Stderr, "Error applying migrations:", err)
		os.Exit(1)
	}

	userRepo := postgresql.NewUserRepository(pool)
	profileRepo := postgresql.NewProfileRepository(pool)
	attendanceRepo := postgresql.NewAttendanceRepository(pool)
	leaveRepo := postgresql.NewLeaveRepository(pool)
	payrollRepo := postgresql.NewPayrollRepository(pool)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(pool)
	verificationTokenRepo := postgresql.NewVerificationTokenRepository(pool)

	// Expired refresh tokens are dead rows; purge at boot, non-fatal
	if err := refreshTokenRepo.DeleteExpired(context.Background()); err != nil {
		slog.Warn("Failed to purge expired refresh tokens", "error", err)
	}

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	emailSvc, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing email service:", err)
		os.Exit(1)
	}

	authSvc := authService.NewAuthService(pool, cfg, userRepo, profileRepo, refreshTokenRepo, verificationTokenRepo, jwtSvc, emailSvc)
	userSvc := userService.NewUserService(pool, userRepo, profileRepo, attendanceRepo, leaveRepo, payrollRepo, refreshTokenRepo)
	profileSvc := profileService.NewProfileService(profileRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, cfg.Leave)
	payrollSvc := payrollService.NewPayrollService(payrollRepo, profileRepo, cfg.Payroll)

	router := appHTTP.NewRouter(
		cfg,
		jwtSvc,
		appHTTP.NewAuthHandler(jwtSvc, authSvc),
		appHTTP.NewUserHandler(userSvc),
		appHTTP.NewProfileHandler(profileSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewLeaveHandler(leaveSvc),
		appHTTP.NewPayrollHandler(payrollSvc),
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("Starting server", "addr", addr, "env", cfg.App.Env)
	if err := http.ListenAndServe(addr, router); err != nil {
		fmt.Fprintln(os.Stderr, "Server error:", err)
		os.Exit(1)
	}
}
