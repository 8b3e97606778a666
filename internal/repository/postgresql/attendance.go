package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/peoplebase/hrm-backend-go/internal/domain/attendance"
	"github.com/peoplebase/hrm-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `id, employee_id, date, check_in, check_out, status, remarks, created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.Date, &a.CheckIn, &a.CheckOut,
		&a.Status, &a.Remarks, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

// Create implements attendance.AttendanceRepository. A unique violation on
// (employee_id, date) is returned wrapped so callers can inspect the
// *pgconn.PgError and report a duplicate check-in.
func (r *attendanceRepository) Create(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (id, employee_id, date, check_in, check_out, status, remarks)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	record.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		record.ID,
		record.EmployeeID,
		record.Date,
		record.CheckIn,
		record.CheckOut,
		record.Status,
		record.Remarks,
	).Scan(&record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return record, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE id = $1`
	a, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by id: %w", err)
	}

	return a, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, day time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1 AND date = $2
		LIMIT 1
	`

	a, err := scanAttendance(q.QueryRow(ctx, query, employeeID, day))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // no record for that day
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &a, nil
}

// SetCheckOut implements attendance.AttendanceRepository.
func (r *attendanceRepository) SetCheckOut(ctx context.Context, id string, checkOut time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE attendances SET check_out = $1, updated_at = NOW() WHERE id = $2`,
		checkOut, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set check-out: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// SetStatus implements attendance.AttendanceRepository.
func (r *attendanceRepository) SetStatus(ctx context.Context, id string, status attendance.Status, remarks *string) error {
	q := GetQuerier(ctx, r.db)

	// Remarks are overwritten, not merged; a nil value clears them
	tag, err := q.Exec(ctx,
		`UPDATE attendances SET status = $1, remarks = $2, updated_at = NOW() WHERE id = $3`,
		status, remarks, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set attendance status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepository) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if filter.EmployeeID != "" {
		query += fmt.Sprintf(" AND employee_id = $%d", idx)
		args = append(args, filter.EmployeeID)
		idx++
	}
	if !filter.StartDate.IsZero() {
		query += fmt.Sprintf(" AND date >= $%d", idx)
		args = append(args, filter.StartDate)
		idx++
	}
	if !filter.EndDate.IsZero() {
		query += fmt.Sprintf(" AND date <= $%d", idx)
		args = append(args, filter.EndDate)
		idx++
	}
	query += " ORDER BY date DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		records = append(records, a)
	}

	return records, rows.Err()
}

// DeleteByEmployeeID implements attendance.AttendanceRepository.
func (r *attendanceRepository) DeleteByEmployeeID(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM attendances WHERE employee_id = $1`, employeeID); err != nil {
		return fmt.Errorf("failed to delete attendance records: %w", err)
	}

	return nil
}
