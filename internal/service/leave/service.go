package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/peoplebase/hrm-backend-go/internal/config"
	"github.com/peoplebase/hrm-backend-go/internal/domain/leave"
	"github.com/peoplebase/hrm-backend-go/internal/service/authctx"
)

type LeaveServiceImpl struct {
	leave.LeaveRepository
	cfg config.LeaveConfig
}

func NewLeaveService(leaveRepo leave.LeaveRepository, cfg config.LeaveConfig) leave.LeaveService {
	return &LeaveServiceImpl{
		LeaveRepository: leaveRepo,
		cfg:             cfg,
	}
}

// Apply implements leave.LeaveService.
func (s *LeaveServiceImpl) Apply(ctx context.Context, req leave.ApplyRequest) (leave.LeaveResponse, error) {
	actor, err := authctx.FromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	start, _ := time.ParseInLocation("2006-01-02", req.StartDate, time.UTC)
	end, _ := time.ParseInLocation("2006-01-02", req.EndDate, time.UTC)

	if s.cfg.RejectOverlap {
		overlaps, err := s.LeaveRepository.HasApprovedOverlap(ctx, actor.EmployeeID, start, end)
		if err != nil {
			return leave.LeaveResponse{}, fmt.Errorf("failed to check leave overlap: %w", err)
		}
		if overlaps {
			return leave.LeaveResponse{}, leave.ErrOverlappingLeave
		}
	}

	created, err := s.LeaveRepository.Create(ctx, leave.LeaveRequest{
		EmployeeID: actor.EmployeeID,
		Type:       leave.Type(req.Type),
		StartDate:  start,
		EndDate:    end,
		Reason:     req.Reason,
		Status:     leave.StatusPending,
	})
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return leave.ToLeaveResponse(created), nil
}

// Decide implements leave.LeaveService. The repository only touches rows still
// pending, so the first of two concurrent decisions wins and the loser gets
// ErrNotPending.
func (s *LeaveServiceImpl) Decide(ctx context.Context, req leave.DecideRequest) (leave.LeaveResponse, error) {
	actor, err := authctx.FromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if !actor.IsManager() {
		return leave.LeaveResponse{}, leave.ErrUnauthorized
	}

	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	status := leave.StatusApproved
	if leave.Decision(req.Decision) == leave.DecisionReject {
		status = leave.StatusRejected
	}

	decided, err := s.LeaveRepository.Decide(ctx, req.ID, status, actor.EmployeeID, req.Comments)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	return leave.ToLeaveResponse(decided), nil
}

// Balance implements leave.LeaveService. Unpaid leave is not balance-tracked;
// days of an approved request are only counted inside the queried year.
func (s *LeaveServiceImpl) Balance(ctx context.Context, employeeID string, asOf time.Time) (leave.BalanceResponse, error) {
	actor, err := authctx.FromContext(ctx)
	if err != nil {
		return leave.BalanceResponse{}, err
	}

	if employeeID == "" {
		employeeID = actor.EmployeeID
	}
	if !actor.CanAccess(employeeID) {
		return leave.BalanceResponse{}, leave.ErrUnauthorized
	}

	year := leave.YearOf(asOf)

	tracked := []struct {
		leaveType leave.Type
		allotment int
	}{
		{leave.TypePaid, s.cfg.PaidAllotment},
		{leave.TypeSick, s.cfg.SickAllotment},
		{leave.TypeCasual, s.cfg.CasualAllotment},
	}

	balances := make([]leave.BalanceEntry, 0, len(tracked))
	for _, t := range tracked {
		approved, err := s.LeaveRepository.ApprovedInYear(ctx, employeeID, t.leaveType, year)
		if err != nil {
			return leave.BalanceResponse{}, fmt.Errorf("failed to aggregate %s leave: %w", t.leaveType, err)
		}

		used := 0
		for _, request := range approved {
			used += daysWithinYear(request, year)
		}

		balances = append(balances, leave.BalanceEntry{
			Type:      string(t.leaveType),
			Allotment: t.allotment,
			Used:      used,
			Remaining: t.allotment - used,
		})
	}

	return leave.BalanceResponse{
		EmployeeID: employeeID,
		Year:       year,
		AsOf:       asOf.UTC().Format("2006-01-02"),
		Balances:   balances,
	}, nil
}

// GetMyLeaves implements leave.LeaveService.
func (s *LeaveServiceImpl) GetMyLeaves(ctx context.Context) ([]leave.LeaveResponse, error) {
	actor, err := authctx.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	return s.list(ctx, leave.ListFilter{EmployeeID: actor.EmployeeID})
}

// ListLeaves implements leave.LeaveService.
func (s *LeaveServiceImpl) ListLeaves(ctx context.Context, filter leave.ListFilter) ([]leave.LeaveResponse, error) {
	actor, err := authctx.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !actor.IsManager() {
		return nil, leave.ErrUnauthorized
	}

	return s.list(ctx, filter)
}

func (s *LeaveServiceImpl) list(ctx context.Context, filter leave.ListFilter) ([]leave.LeaveResponse, error) {
	requests, err := s.LeaveRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, leave.ToLeaveResponse(request))
	}

	return responses, nil
}

// daysWithinYear clamps a request's inclusive day count to one calendar year.
func daysWithinYear(request leave.LeaveRequest, year int) int {
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	start := request.StartDate
	if start.Before(yearStart) {
		start = yearStart
	}
	end := request.EndDate
	if end.After(yearEnd) {
		end = yearEnd
	}
	if end.Before(start) {
		return 0
	}

	return int(end.Sub(start).Hours()/24) + 1
}
