package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/peoplebase/hrm-backend-go/internal/domain/profile"
	"github.com/peoplebase/hrm-backend-go/internal/pkg/database"
)

type profileRepository struct {
	db *database.DB
}

func NewProfileRepository(db *database.DB) profile.ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `
	p.id, p.user_id, p.employee_id,
	p.first_name, p.last_name, p.date_of_birth, p.gender, p.phone, p.address,
	p.designation, p.department, p.joining_date, p.employment_type,
	p.annual_salary, p.created_at, p.updated_at`

func scanProfile(row pgx.Row) (profile.Profile, error) {
	var p profile.Profile
	err := row.Scan(
		&p.ID, &p.UserID, &p.EmployeeID,
		&p.FirstName, &p.LastName, &p.DateOfBirth, &p.Gender, &p.Phone, &p.Address,
		&p.Designation, &p.Department, &p.JoiningDate, &p.EmploymentType,
		&p.AnnualSalary, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// Create implements profile.ProfileRepository.
func (r *profileRepository) Create(ctx context.Context, newProfile profile.Profile) (profile.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employee_profiles (
			id, user_id, employee_id, first_name, last_name,
			date_of_birth, gender, phone, address,
			designation, department, joining_date, employment_type, annual_salary
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at, updated_at
	`

	newProfile.ID = uuid.NewString()
	if newProfile.EmploymentType == "" {
		newProfile.EmploymentType = profile.EmploymentFullTime
	}
	err := q.QueryRow(ctx, query,
		newProfile.ID,
		newProfile.UserID,
		newProfile.EmployeeID,
		newProfile.FirstName,
		newProfile.LastName,
		newProfile.DateOfBirth,
		newProfile.Gender,
		newProfile.Phone,
		newProfile.Address,
		newProfile.Designation,
		newProfile.Department,
		newProfile.JoiningDate,
		newProfile.EmploymentType,
		newProfile.AnnualSalary,
	).Scan(&newProfile.CreatedAt, &newProfile.UpdatedAt)

	if err != nil {
		return profile.Profile{}, fmt.Errorf("failed to create profile: %w", err)
	}

	return newProfile, nil
}

// GetByEmployeeID implements profile.ProfileRepository.
func (r *profileRepository) GetByEmployeeID(ctx context.Context, employeeID string) (profile.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + profileColumns + ` FROM employee_profiles p WHERE p.employee_id = $1`
	p, err := scanProfile(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.Profile{}, profile.ErrProfileNotFound
		}
		return profile.Profile{}, fmt.Errorf("failed to get profile by employee id: %w", err)
	}

	return p, nil
}

// GetByUserID implements profile.ProfileRepository.
func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (profile.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + profileColumns + ` FROM employee_profiles p WHERE p.user_id = $1`
	p, err := scanProfile(q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.Profile{}, profile.ErrProfileNotFound
		}
		return profile.Profile{}, fmt.Errorf("failed to get profile by user id: %w", err)
	}

	return p, nil
}

// List implements profile.ProfileRepository.
func (r *profileRepository) List(ctx context.Context) ([]profile.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + profileColumns + `, u.email, u.role
		FROM employee_profiles p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.employee_id
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []profile.Profile
	for rows.Next() {
		var p profile.Profile
		err := rows.Scan(
			&p.ID, &p.UserID, &p.EmployeeID,
			&p.FirstName, &p.LastName, &p.DateOfBirth, &p.Gender, &p.Phone, &p.Address,
			&p.Designation, &p.Department, &p.JoiningDate, &p.EmploymentType,
			&p.AnnualSalary, &p.CreatedAt, &p.UpdatedAt,
			&p.Email, &p.Role,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile row: %w", err)
		}
		profiles = append(profiles, p)
	}

	return profiles, rows.Err()
}

// UpdatePersonal implements profile.ProfileRepository.
func (r *profileRepository) UpdatePersonal(ctx context.Context, req profile.UpdatePersonalRequest) error {
	sets := []string{}
	args := []interface{}{}
	idx := 1

	appendSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if req.FirstName != nil {
		appendSet("first_name", *req.FirstName)
	}
	if req.LastName != nil {
		appendSet("last_name", *req.LastName)
	}
	if req.DateOfBirth != nil {
		appendSet("date_of_birth", *req.DateOfBirth)
	}
	if req.Gender != nil {
		appendSet("gender", *req.Gender)
	}
	if req.Phone != nil {
		appendSet("phone", *req.Phone)
	}
	if req.Address != nil {
		appendSet("address", *req.Address)
	}

	if len(sets) == 0 {
		return nil
	}

	return r.update(ctx, req.EmployeeID, sets, args, idx)
}

// UpdateJob implements profile.ProfileRepository.
func (r *profileRepository) UpdateJob(ctx context.Context, req profile.UpdateJobRequest) error {
	sets := []string{}
	args := []interface{}{}
	idx := 1

	appendSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if req.Designation != nil {
		appendSet("designation", *req.Designation)
	}
	if req.Department != nil {
		appendSet("department", *req.Department)
	}
	if req.JoiningDate != nil {
		appendSet("joining_date", *req.JoiningDate)
	}
	if req.EmploymentType != nil {
		appendSet("employment_type", *req.EmploymentType)
	}
	if req.AnnualSalary != nil {
		appendSet("annual_salary", *req.AnnualSalary)
	}

	if len(sets) == 0 {
		return nil
	}

	return r.update(ctx, req.EmployeeID, sets, args, idx)
}

func (r *profileRepository) update(ctx context.Context, employeeID string, sets []string, args []interface{}, idx int) error {
	q := GetQuerier(ctx, r.db)

	sets = append(sets, "updated_at = NOW()")
	query := fmt.Sprintf(
		"UPDATE employee_profiles SET %s WHERE employee_id = $%d",
		strings.Join(sets, ", "), idx,
	)
	args = append(args, employeeID)

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return profile.ErrProfileNotFound
	}

	return nil
}

// DeleteByEmployeeID implements profile.ProfileRepository.
func (r *profileRepository) DeleteByEmployeeID(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM employee_profiles WHERE employee_id = $1`, employeeID); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	return nil
}
