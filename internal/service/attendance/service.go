package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/peoplebase/hrm-backend-go/internal/domain/attendance"
	"github.com/peoplebase/hrm-backend-go/internal/service/authctx"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	now func() time.Time
}

func NewAttendanceService(attendanceRepo attendance.AttendanceRepository) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		now:                  time.Now,
	}
}

// CheckIn implements attendance.AttendanceService. The pre-check gives the
// common case a clean error; the storage unique constraint decides races.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context) (attendance.AttendanceResponse, error) {
	actor, err := authctx.FromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	checkIn := s.now().UTC()
	day := attendance.NormalizeDay(checkIn)

	existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, actor.EmployeeID, day)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to look up today's attendance: %w", err)
	}
	if existing != nil {
		return attendance.AttendanceResponse{}, attendance.ErrDuplicateCheckIn
	}

	record, err := s.AttendanceRepository.Create(ctx, attendance.Attendance{
		EmployeeID: actor.EmployeeID,
		Date:       day,
		CheckIn:    &checkIn,
		Status:     attendance.StatusPresent,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.AttendanceResponse{}, attendance.ErrDuplicateCheckIn
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return attendance.ToAttendanceResponse(record), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context) (attendance.AttendanceResponse, error) {
	actor, err := authctx.FromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	checkOut := s.now().UTC()
	day := attendance.NormalizeDay(checkOut)

	record, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, actor.EmployeeID, day)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to look up today's attendance: %w", err)
	}
	if record == nil || record.CheckIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNoCheckInFound
	}
	if record.CheckOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}
	if checkOut.Before(*record.CheckIn) {
		return attendance.AttendanceResponse{}, attendance.ErrCheckOutBeforeIn
	}

	if err := s.AttendanceRepository.SetCheckOut(ctx, record.ID, checkOut); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to set check-out: %w", err)
	}

	record.CheckOut = &checkOut
	return attendance.ToAttendanceResponse(*record), nil
}

// SetStatus implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) SetStatus(ctx context.Context, req attendance.UpdateStatusRequest) (attendance.AttendanceResponse, error) {
	actor, err := authctx.FromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !actor.IsManager() {
		return attendance.AttendanceResponse{}, attendance.ErrUnauthorized
	}

	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.AttendanceRepository.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	status := attendance.Status(req.Status)
	if err := s.AttendanceRepository.SetStatus(ctx, record.ID, status, req.Remarks); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to set attendance status: %w", err)
	}

	record.Status = status
	record.Remarks = req.Remarks
	return attendance.ToAttendanceResponse(record), nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.ListFilter) ([]attendance.AttendanceResponse, error) {
	actor, err := authctx.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	filter.EmployeeID = actor.EmployeeID
	return s.list(ctx, filter)
}

// GetEmployeeAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetEmployeeAttendance(ctx context.Context, filter attendance.ListFilter) ([]attendance.AttendanceResponse, error) {
	actor, err := authctx.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(filter.EmployeeID) {
		return nil, attendance.ErrUnauthorized
	}

	return s.list(ctx, filter)
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.ListFilter) ([]attendance.AttendanceResponse, error) {
	actor, err := authctx.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !actor.IsManager() {
		return nil, attendance.ErrUnauthorized
	}

	return s.list(ctx, filter)
}

func (s *AttendanceServiceImpl) list(ctx context.Context, filter attendance.ListFilter) ([]attendance.AttendanceResponse, error) {
	records, err := s.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, attendance.ToAttendanceResponse(record))
	}

	return responses, nil
}
