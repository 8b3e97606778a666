package user

import (
	"context"
	"fmt"

	"github.com/peoplebase/hrm-backend-go/internal/domain/attendance"
	"github.com/peoplebase/hrm-backend-go/internal/domain/auth"
	"github.com/peoplebase/hrm-backend-go/internal/domain/leave"
	"github.com/peoplebase/hrm-backend-go/internal/domain/payroll"
	"github.com/peoplebase/hrm-backend-go/internal/domain/profile"
	"github.com/peoplebase/hrm-backend-go/internal/domain/user"
	"github.com/peoplebase/hrm-backend-go/internal/pkg/database"
	"github.com/peoplebase/hrm-backend-go/internal/repository/postgresql"
	"github.com/peoplebase/hrm-backend-go/internal/service/authctx"
)

type UserServiceImpl struct {
	user.UserRepository
	profile.ProfileRepository
	attendance.AttendanceRepository
	leave.LeaveRepository
	payroll.PayrollRepository
	refreshTokens auth.RefreshTokenRepository

	// runTx wraps the multi-repository delete in a database transaction
	runTx func(ctx context.Context, fn func(txCtx context.Context) error) error
}

func NewUserService(
	db *database.DB,
	userRepo user.UserRepository,
	profileRepo profile.ProfileRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRepository,
	payrollRepo payroll.PayrollRepository,
	refreshTokens auth.RefreshTokenRepository,
) user.UserService {
	return &UserServiceImpl{
		UserRepository:       userRepo,
		ProfileRepository:    profileRepo,
		AttendanceRepository: attendanceRepo,
		LeaveRepository:      leaveRepo,
		PayrollRepository:    payrollRepo,
		refreshTokens:        refreshTokens,
		runTx: func(ctx context.Context, fn func(txCtx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
	}
}

// ListUsers implements user.UserService.
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]user.UserResponse, error) {
	actor, err := authctx.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !actor.IsManager() {
		return nil, user.ErrForbidden
	}

	accounts, err := s.UserRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, user.ToUserResponse(account))
	}

	return responses, nil
}

// UpdateRole implements user.UserService.
func (s *UserServiceImpl) UpdateRole(ctx context.Context, req user.UpdateRoleRequest) error {
	actor, err := authctx.FromContext(ctx)
	if err != nil {
		return err
	}
	if actor.Role != user.RoleAdmin {
		return user.ErrAdminPrivilegeRequired
	}

	if err := req.Validate(); err != nil {
		return err
	}

	if _, err := s.UserRepository.GetByID(ctx, req.UserID); err != nil {
		return err
	}

	return s.UserRepository.UpdateRole(ctx, req.UserID, user.Role(req.Role))
}

// DeleteUser implements user.UserService. The account and every record keyed
// by its employee id are removed in one transaction; there is no storage-level
// cascade across domains.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, userID string) error {
	actor, err := authctx.FromContext(ctx)
	if err != nil {
		return err
	}
	if actor.Role != user.RoleAdmin {
		return user.ErrAdminPrivilegeRequired
	}

	account, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	return s.runTx(ctx, func(txCtx context.Context) error {
		if err := s.PayrollRepository.DeleteByEmployeeID(txCtx, account.EmployeeID); err != nil {
			return err
		}
		if err := s.LeaveRepository.DeleteByEmployeeID(txCtx, account.EmployeeID); err != nil {
			return err
		}
		if err := s.AttendanceRepository.DeleteByEmployeeID(txCtx, account.EmployeeID); err != nil {
			return err
		}
		if err := s.ProfileRepository.DeleteByEmployeeID(txCtx, account.EmployeeID); err != nil {
			return err
		}
		if err := s.refreshTokens.RevokeAllForUser(txCtx, account.ID); err != nil {
			return err
		}
		return s.UserRepository.Delete(txCtx, account.ID)
	})
}
