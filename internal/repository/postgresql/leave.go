package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/peoplebase/hrm-backend-go/internal/domain/leave"
	"github.com/peoplebase/hrm-backend-go/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}

const leaveColumns = `id, employee_id, leave_type, start_date, end_date, reason, status, approved_by, approver_comments, created_at, updated_at`

func scanLeave(row pgx.Row) (leave.LeaveRequest, error) {
	var l leave.LeaveRequest
	err := row.Scan(
		&l.ID, &l.EmployeeID, &l.Type, &l.StartDate, &l.EndDate, &l.Reason,
		&l.Status, &l.ApprovedBy, &l.ApproverComments, &l.CreatedAt, &l.UpdatedAt,
	)
	return l, err
}

// Create implements leave.LeaveRepository.
func (r *leaveRepository) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (id, employee_id, leave_type, start_date, end_date, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	request.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		request.ID,
		request.EmployeeID,
		request.Type,
		request.StartDate,
		request.EndDate,
		request.Reason,
		request.Status,
	).Scan(&request.CreatedAt, &request.UpdatedAt)

	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return request, nil
}

// GetByID implements leave.LeaveRepository.
func (r *leaveRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	l, err := scanLeave(q.QueryRow(ctx, `SELECT `+leaveColumns+` FROM leave_requests WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request by id: %w", err)
	}

	return l, nil
}

// List implements leave.LeaveRepository.
func (r *leaveRepository) List(ctx context.Context, filter leave.ListFilter) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveColumns + ` FROM leave_requests WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if filter.EmployeeID != "" {
		query += fmt.Sprintf(" AND employee_id = $%d", idx)
		args = append(args, filter.EmployeeID)
		idx++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", idx)
		args = append(args, filter.Status)
		idx++
	}
	query += " ORDER BY created_at DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request row: %w", err)
		}
		requests = append(requests, l)
	}

	return requests, rows.Err()
}

// Decide implements leave.LeaveRepository. The WHERE status = 'pending' guard
// makes the terminal transition atomic: the second of two concurrent
// decisions affects zero rows and reports ErrNotPending.
func (r *leaveRepository) Decide(ctx context.Context, id string, status leave.Status, approvedBy string, comments *string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, approved_by = $2, approver_comments = $3, updated_at = NOW()
		WHERE id = $4 AND status = $5
		RETURNING ` + leaveColumns

	l, err := scanLeave(q.QueryRow(ctx, query, status, approvedBy, comments, id, leave.StatusPending))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Either absent or already decided; let the caller disambiguate.
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return leave.LeaveRequest{}, getErr
			}
			return leave.LeaveRequest{}, leave.ErrNotPending
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to decide leave request: %w", err)
	}

	return l, nil
}

// ApprovedInYear implements leave.LeaveRepository.
func (r *leaveRepository) ApprovedInYear(ctx context.Context, employeeID string, leaveType leave.Type, year int) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	yearStart := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)

	query := `
		SELECT ` + leaveColumns + `
		FROM leave_requests
		WHERE employee_id = $1
		  AND leave_type = $2
		  AND status = $3
		  AND start_date <= $4
		  AND end_date >= $5
		ORDER BY start_date
	`

	rows, err := q.Query(ctx, query, employeeID, leaveType, leave.StatusApproved, yearEnd, yearStart)
	if err != nil {
		return nil, fmt.Errorf("failed to query approved leave: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request row: %w", err)
		}
		requests = append(requests, l)
	}

	return requests, rows.Err()
}

// HasApprovedOverlap implements leave.LeaveRepository.
func (r *leaveRepository) HasApprovedOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE employee_id = $1
			  AND status = $2
			  AND start_date <= $3
			  AND end_date >= $4
		)
	`, employeeID, leave.StatusApproved, end, start).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check leave overlap: %w", err)
	}

	return exists, nil
}

// DeleteByEmployeeID implements leave.LeaveRepository.
func (r *leaveRepository) DeleteByEmployeeID(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM leave_requests WHERE employee_id = $1`, employeeID); err != nil {
		return fmt.Errorf("failed to delete leave requests: %w", err)
	}

	return nil
}
