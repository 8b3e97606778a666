package payroll

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peoplebase/hrm-backend-go/internal/config"
	"github.com/peoplebase/hrm-backend-go/internal/domain/payroll"
	"github.com/peoplebase/hrm-backend-go/internal/domain/profile"
	"github.com/peoplebase/hrm-backend-go/internal/domain/user"
)

func actorContext(t *testing.T, employeeID string, role user.Role) context.Context {
	t.Helper()

	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id":     uuid.NewString(),
		"email":       employeeID + "@example.com",
		"employee_id": employeeID,
		"role":        string(role),
		"type":        "access",
	})
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), token, nil)
}

type fakePayrollRepo struct {
	records map[string]*payroll.PayrollRecord
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{records: make(map[string]*payroll.PayrollRecord)}
}

func (f *fakePayrollRepo) Create(_ context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	record.ID = uuid.NewString()
	f.records[record.ID] = &record
	return record, nil
}

func (f *fakePayrollRepo) Update(_ context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	if _, ok := f.records[record.ID]; !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollNotFound
	}
	f.records[record.ID] = &record
	return record, nil
}

func (f *fakePayrollRepo) GetByID(_ context.Context, id string) (payroll.PayrollRecord, error) {
	record, ok := f.records[id]
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollNotFound
	}
	return *record, nil
}

func (f *fakePayrollRepo) GetByEmployeeAndPeriod(_ context.Context, employeeID string, effectiveFrom time.Time) (*payroll.PayrollRecord, error) {
	for _, record := range f.records {
		if record.EmployeeID == employeeID && record.EffectiveFrom.Equal(effectiveFrom) {
			copied := *record
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakePayrollRepo) GetLatestByEmployee(_ context.Context, employeeID string) (payroll.PayrollRecord, error) {
	var latest *payroll.PayrollRecord
	for _, record := range f.records {
		if record.EmployeeID != employeeID {
			continue
		}
		if latest == nil || record.EffectiveFrom.After(latest.EffectiveFrom) {
			latest = record
		}
	}
	if latest == nil {
		return payroll.PayrollRecord{}, payroll.ErrPayrollNotFound
	}
	return *latest, nil
}

func (f *fakePayrollRepo) ListByEmployee(_ context.Context, employeeID string) ([]payroll.PayrollRecord, error) {
	var out []payroll.PayrollRecord
	for _, record := range f.records {
		if record.EmployeeID == employeeID {
			out = append(out, *record)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].EffectiveFrom.After(out[j].EffectiveFrom)
	})
	return out, nil
}

func (f *fakePayrollRepo) ListAll(_ context.Context) ([]payroll.PayrollRecord, error) {
	var out []payroll.PayrollRecord
	for _, record := range f.records {
		out = append(out, *record)
	}
	return out, nil
}

func (f *fakePayrollRepo) DeleteByEmployeeID(_ context.Context, employeeID string) error {
	for id, record := range f.records {
		if record.EmployeeID == employeeID {
			delete(f.records, id)
		}
	}
	return nil
}

type fakeProfileRepo struct {
	profiles map[string]profile.Profile
}

func newFakeProfileRepo(employeeIDs ...string) *fakeProfileRepo {
	f := &fakeProfileRepo{profiles: make(map[string]profile.Profile)}
	for _, id := range employeeIDs {
		f.profiles[id] = profile.Profile{
			ID:         uuid.NewString(),
			EmployeeID: id,
			FirstName:  "Test",
			LastName:   id,
		}
	}
	return f
}

func (f *fakeProfileRepo) Create(_ context.Context, p profile.Profile) (profile.Profile, error) {
	f.profiles[p.EmployeeID] = p
	return p, nil
}

func (f *fakeProfileRepo) GetByEmployeeID(_ context.Context, employeeID string) (profile.Profile, error) {
	p, ok := f.profiles[employeeID]
	if !ok {
		return profile.Profile{}, profile.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfileRepo) GetByUserID(_ context.Context, userID string) (profile.Profile, error) {
	for _, p := range f.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return profile.Profile{}, profile.ErrProfileNotFound
}

func (f *fakeProfileRepo) List(_ context.Context) ([]profile.Profile, error) {
	var out []profile.Profile
	for _, p := range f.profiles {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProfileRepo) UpdatePersonal(_ context.Context, _ profile.UpdatePersonalRequest) error {
	return nil
}

func (f *fakeProfileRepo) UpdateJob(_ context.Context, _ profile.UpdateJobRequest) error {
	return nil
}

func (f *fakeProfileRepo) DeleteByEmployeeID(_ context.Context, employeeID string) error {
	delete(f.profiles, employeeID)
	return nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestUpsertComputesNet(t *testing.T) {
	hrCtx := actorContext(t, "HR-001", user.RoleHR)
	svc := NewPayrollService(newFakePayrollRepo(), newFakeProfileRepo("EMP-001"), config.PayrollConfig{})

	resp, err := svc.Upsert(hrCtx, payroll.UpsertRequest{
		EmployeeID:    "EMP-001",
		BasicSalary:   dec("50000"),
		Allowances:    payroll.Allowances{HRA: dec("5000")},
		Deductions:    payroll.Deductions{Tax: dec("2000")},
		EffectiveFrom: "2026-03-01",
	})
	require.NoError(t, err)

	assert.True(t, resp.NetSalary.Equal(dec("53000")), "net = %s", resp.NetSalary)
	assert.True(t, resp.TotalAllowances.Equal(dec("5000")))
	assert.True(t, resp.TotalDeductions.Equal(dec("2000")))
}

func TestUpsertRecomputesNetOnUpdate(t *testing.T) {
	hrCtx := actorContext(t, "HR-001", user.RoleHR)
	repo := newFakePayrollRepo()
	svc := NewPayrollService(repo, newFakeProfileRepo("EMP-001"), config.PayrollConfig{})

	first, err := svc.Upsert(hrCtx, payroll.UpsertRequest{
		EmployeeID:    "EMP-001",
		BasicSalary:   dec("50000"),
		Allowances:    payroll.Allowances{HRA: dec("5000")},
		Deductions:    payroll.Deductions{Tax: dec("2000")},
		EffectiveFrom: "2026-03-01",
	})
	require.NoError(t, err)

	// Same period with a higher tax deduction updates in place
	second, err := svc.Upsert(hrCtx, payroll.UpsertRequest{
		EmployeeID:    "EMP-001",
		BasicSalary:   dec("50000"),
		Allowances:    payroll.Allowances{HRA: dec("5000")},
		Deductions:    payroll.Deductions{Tax: dec("3000")},
		EffectiveFrom: "2026-03-01",
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.NetSalary.Equal(dec("52000")), "net = %s", second.NetSalary)
	assert.Len(t, repo.records, 1)
}

func TestUpsertNegativeNetPolicy(t *testing.T) {
	hrCtx := actorContext(t, "HR-001", user.RoleHR)

	req := payroll.UpsertRequest{
		EmployeeID:    "EMP-001",
		BasicSalary:   dec("1000"),
		Deductions:    payroll.Deductions{Tax: dec("2000")},
		EffectiveFrom: "2026-03-01",
	}

	// Allowed by default
	svc := NewPayrollService(newFakePayrollRepo(), newFakeProfileRepo("EMP-001"), config.PayrollConfig{})
	resp, err := svc.Upsert(hrCtx, req)
	require.NoError(t, err)
	assert.True(t, resp.NetSalary.Equal(dec("-1000")))

	// Rejected when configured
	svc = NewPayrollService(newFakePayrollRepo(), newFakeProfileRepo("EMP-001"), config.PayrollConfig{RejectNegativeNet: true})
	_, err = svc.Upsert(hrCtx, req)
	assert.ErrorIs(t, err, payroll.ErrNegativeNetSalary)
}

// racingPayrollRepo sees no record for the period but hits the unique
// constraint on insert, as when two upserts for the same period land at once.
type racingPayrollRepo struct {
	*fakePayrollRepo
}

func (f *racingPayrollRepo) Create(_ context.Context, _ payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	return payroll.PayrollRecord{}, fmt.Errorf("failed to create payroll record: %w", &pgconn.PgError{Code: "23505"})
}

func TestUpsertConcurrentPeriodConflict(t *testing.T) {
	hrCtx := actorContext(t, "HR-001", user.RoleHR)
	repo := &racingPayrollRepo{fakePayrollRepo: newFakePayrollRepo()}
	svc := NewPayrollService(repo, newFakeProfileRepo("EMP-001"), config.PayrollConfig{})

	_, err := svc.Upsert(hrCtx, payroll.UpsertRequest{
		EmployeeID:    "EMP-001",
		BasicSalary:   dec("50000"),
		EffectiveFrom: "2026-03-01",
	})
	assert.ErrorIs(t, err, payroll.ErrPeriodConflict)
}

func TestUpsertRequiresManager(t *testing.T) {
	ctx := actorContext(t, "EMP-001", user.RoleEmployee)
	svc := NewPayrollService(newFakePayrollRepo(), newFakeProfileRepo("EMP-001"), config.PayrollConfig{})

	_, err := svc.Upsert(ctx, payroll.UpsertRequest{
		EmployeeID:    "EMP-001",
		BasicSalary:   dec("50000"),
		EffectiveFrom: "2026-03-01",
	})
	assert.ErrorIs(t, err, payroll.ErrUnauthorized)
}

func TestUpsertUnknownEmployee(t *testing.T) {
	hrCtx := actorContext(t, "HR-001", user.RoleHR)
	svc := NewPayrollService(newFakePayrollRepo(), newFakeProfileRepo(), config.PayrollConfig{})

	_, err := svc.Upsert(hrCtx, payroll.UpsertRequest{
		EmployeeID:    "EMP-404",
		BasicSalary:   dec("50000"),
		EffectiveFrom: "2026-03-01",
	})
	assert.ErrorIs(t, err, profile.ErrProfileNotFound)
}

func TestGetEmployeePayrollAuthorization(t *testing.T) {
	hrCtx := actorContext(t, "HR-001", user.RoleHR)
	repo := newFakePayrollRepo()
	svc := NewPayrollService(repo, newFakeProfileRepo("EMP-001"), config.PayrollConfig{})

	_, err := svc.Upsert(hrCtx, payroll.UpsertRequest{
		EmployeeID:    "EMP-001",
		BasicSalary:   dec("50000"),
		EffectiveFrom: "2026-03-01",
	})
	require.NoError(t, err)

	otherCtx := actorContext(t, "EMP-002", user.RoleEmployee)
	_, err = svc.GetEmployeePayroll(otherCtx, "EMP-001")
	assert.ErrorIs(t, err, payroll.ErrUnauthorized)

	ownerCtx := actorContext(t, "EMP-001", user.RoleEmployee)
	resp, err := svc.GetEmployeePayroll(ownerCtx, "EMP-001")
	require.NoError(t, err)
	assert.Equal(t, "EMP-001", resp.EmployeeID)
}

func TestGetMyPayrollReturnsLatest(t *testing.T) {
	hrCtx := actorContext(t, "HR-001", user.RoleHR)
	svc := NewPayrollService(newFakePayrollRepo(), newFakeProfileRepo("EMP-001"), config.PayrollConfig{})

	_, err := svc.Upsert(hrCtx, payroll.UpsertRequest{
		EmployeeID:    "EMP-001",
		BasicSalary:   dec("50000"),
		EffectiveFrom: "2026-02-01",
	})
	require.NoError(t, err)
	_, err = svc.Upsert(hrCtx, payroll.UpsertRequest{
		EmployeeID:    "EMP-001",
		BasicSalary:   dec("55000"),
		EffectiveFrom: "2026-03-01",
	})
	require.NoError(t, err)

	ownerCtx := actorContext(t, "EMP-001", user.RoleEmployee)
	resp, err := svc.GetMyPayroll(ownerCtx)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01", resp.EffectiveFrom)
	assert.True(t, resp.BasicSalary.Equal(dec("55000")))
}

func TestGetEmployeePayrollHistory(t *testing.T) {
	hrCtx := actorContext(t, "HR-001", user.RoleHR)
	svc := NewPayrollService(newFakePayrollRepo(), newFakeProfileRepo("EMP-001"), config.PayrollConfig{})

	for _, period := range []string{"2026-01-01", "2026-02-01", "2026-03-01"} {
		_, err := svc.Upsert(hrCtx, payroll.UpsertRequest{
			EmployeeID:    "EMP-001",
			BasicSalary:   dec("50000"),
			EffectiveFrom: period,
		})
		require.NoError(t, err)
	}

	ownerCtx := actorContext(t, "EMP-001", user.RoleEmployee)
	history, err := svc.GetEmployeePayrollHistory(ownerCtx, "EMP-001")
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "2026-03-01", history[0].EffectiveFrom)
	assert.Equal(t, "2026-01-01", history[2].EffectiveFrom)

	otherCtx := actorContext(t, "EMP-002", user.RoleEmployee)
	_, err = svc.GetEmployeePayrollHistory(otherCtx, "EMP-001")
	assert.ErrorIs(t, err, payroll.ErrUnauthorized)
}

func TestPayslip(t *testing.T) {
	hrCtx := actorContext(t, "HR-001", user.RoleHR)
	svc := NewPayrollService(newFakePayrollRepo(), newFakeProfileRepo("EMP-001"), config.PayrollConfig{})

	created, err := svc.Upsert(hrCtx, payroll.UpsertRequest{
		EmployeeID:    "EMP-001",
		BasicSalary:   dec("50000"),
		Allowances:    payroll.Allowances{HRA: dec("5000")},
		Deductions:    payroll.Deductions{Tax: dec("2000")},
		EffectiveFrom: "2026-03-01",
	})
	require.NoError(t, err)

	ownerCtx := actorContext(t, "EMP-001", user.RoleEmployee)
	pdfBytes, err := svc.Payslip(ownerCtx, created.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdfBytes, []byte("%PDF")))

	otherCtx := actorContext(t, "EMP-002", user.RoleEmployee)
	_, err = svc.Payslip(otherCtx, created.ID)
	assert.ErrorIs(t, err, payroll.ErrUnauthorized)
}
