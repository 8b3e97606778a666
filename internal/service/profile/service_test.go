package profile

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

type fakeProfileRepo struct {
	profiles map[string]*profile.Profile
}

func newFakeProfileRepo(employeeIDs ...string) *fakeProfileRepo {
	f := &fakeProfileRepo{profiles: make(map[string]*profile.Profile)}
	for _, id := range employeeIDs {
		f.profiles[id] = &profile.Profile{
			ID:             uuid.NewString(),
			UserID:         uuid.NewString(),
			EmployeeID:     id,
			FirstName:      "Test",
			LastName:       id,
			EmploymentType: profile.EmploymentFullTime,
		}
	}
	return f
}

func (f *fakeProfileRepo) Create(_ context.Context, p profile.Profile) (profile.Profile, error) {
	if _, ok := f.profiles[p.EmployeeID]; ok {
		return profile.Profile{}, profile.ErrProfileExists
	}
	p.ID = uuid.NewString()
	f.profiles[p.EmployeeID] = &p
	return p, nil
}

func (f *fakeProfileRepo) GetByEmployeeID(_ context.Context, employeeID string) (profile.Profile, error) {
	p, ok := f.profiles[employeeID]
	if !ok {
		return profile.Profile{}, profile.ErrProfileNotFound
	}
	return *p, nil
}

func (f *fakeProfileRepo) GetByUserID(_ context.Context, userID string) (profile.Profile, error) {
	for _, p := range f.profiles {
		if p.UserID == userID {
			return *p, nil
		}
	}
	return profile.Profile{}, profile.ErrProfileNotFound
}

func (f *fakeProfileRepo) List(_ context.Context) ([]profile.Profile, error) {
	var out []profile.Profile
	for _, p := range f.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProfileRepo) UpdatePersonal(_ context.Context, req profile.UpdatePersonalRequest) error {
	p, ok := f.profiles[req.EmployeeID]
	if !ok {
		return profile.ErrProfileNotFound
	}
	if req.FirstName != nil {
		p.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		p.LastName = *req.LastName
	}
	if req.Gender != nil {
		p.Gender = req.Gender
	}
	if req.Phone != nil {
		p.Phone = req.Phone
	}
	if req.Address != nil {
		p.Address = req.Address
	}
	return nil
}

func (f *fakeProfileRepo) UpdateJob(_ context.Context, req profile.UpdateJobRequest) error {
	p, ok := f.profiles[req.EmployeeID]
	if !ok {
		return profile.ErrProfileNotFound
	}
	if req.Designation != nil {
		p.Designation = req.Designation
	}
	if req.Department != nil {
		p.Department = req.Department
	}
	if req.EmploymentType != nil {
		p.EmploymentType = profile.EmploymentType(*req.EmploymentType)
	}
	if req.AnnualSalary != nil {
		p.AnnualSalary = *req.AnnualSalary
	}
	return nil
}

func (f *fakeProfileRepo) DeleteByEmployeeID(_ context.Context, employeeID string) error {
	delete(f.profiles, employeeID)
	return nil
}

func strPtr(s string) *string { return &s }

func TestGetMyProfile(t *testing.T) {
	svc := NewProfileService(newFakeProfileRepo("EMP-001"))

	ctx := actorContext(t, "EMP-001", user.RoleEmployee)
	resp, err := svc.GetMyProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "EMP-001", resp.EmployeeID)
}

func TestGetProfileAuthorization(t *testing.T) {
	svc := NewProfileService(newFakeProfileRepo("EMP-001"))

	otherCtx := actorContext(t, "EMP-002", user.RoleEmployee)
	_, err := svc.GetProfile(otherCtx, "EMP-001")
	assert.ErrorIs(t, err, profile.ErrUnauthorized)

	hrCtx := actorContext(t, "HR-001", user.RoleHR)
	resp, err := svc.GetProfile(hrCtx, "EMP-001")
	require.NoError(t, err)
	assert.Equal(t, "EMP-001", resp.EmployeeID)
}

func TestListProfilesRequiresManager(t *testing.T) {
	svc := NewProfileService(newFakeProfileRepo("EMP-001", "EMP-002"))

	ctx := actorContext(t, "EMP-001", user.RoleEmployee)
	_, err := svc.ListProfiles(ctx)
	assert.ErrorIs(t, err, profile.ErrUnauthorized)

	adminCtx := actorContext(t, "ADM-001", user.RoleAdmin)
	profiles, err := svc.ListProfiles(adminCtx)
	require.NoError(t, err)
	assert.Len(t, profiles, 2)
}

func TestUpdatePersonal(t *testing.T) {
	repo := newFakeProfileRepo("EMP-001")
	svc := NewProfileService(repo)

	ctx := actorContext(t, "EMP-001", user.RoleEmployee)
	resp, err := svc.UpdatePersonal(ctx, profile.UpdatePersonalRequest{
		Phone:   strPtr("+62-811-000-111"),
		Address: strPtr("Jl. Merdeka 1"),
	})
	require.NoError(t, err)

	require.NotNil(t, resp.Phone)
	assert.Equal(t, "+62-811-000-111", *resp.Phone)
	// Untouched fields keep their stored values
	assert.Equal(t, "Test", resp.FirstName)
}

func TestUpdatePersonalOtherEmployee(t *testing.T) {
	svc := NewProfileService(newFakeProfileRepo("EMP-001"))

	otherCtx := actorContext(t, "EMP-002", user.RoleEmployee)
	_, err := svc.UpdatePersonal(otherCtx, profile.UpdatePersonalRequest{
		EmployeeID: "EMP-001",
		Phone:      strPtr("+62-811-000-111"),
	})
	assert.ErrorIs(t, err, profile.ErrUnauthorized)

	hrCtx := actorContext(t, "HR-001", user.RoleHR)
	_, err = svc.UpdatePersonal(hrCtx, profile.UpdatePersonalRequest{
		EmployeeID: "EMP-001",
		Phone:      strPtr("+62-811-000-111"),
	})
	assert.NoError(t, err)
}

func TestUpdateJobRequiresManager(t *testing.T) {
	svc := NewProfileService(newFakeProfileRepo("EMP-001"))

	// The owning employee can never write job or salary fields
	ownerCtx := actorContext(t, "EMP-001", user.RoleEmployee)
	salary := decimal.RequireFromString("90000")
	_, err := svc.UpdateJob(ownerCtx, profile.UpdateJobRequest{
		EmployeeID:   "EMP-001",
		AnnualSalary: &salary,
	})
	assert.ErrorIs(t, err, profile.ErrUnauthorized)

	hrCtx := actorContext(t, "HR-001", user.RoleHR)
	resp, err := svc.UpdateJob(hrCtx, profile.UpdateJobRequest{
		EmployeeID:   "EMP-001",
		Designation:  strPtr("Senior Engineer"),
		AnnualSalary: &salary,
	})
	require.NoError(t, err)
	assert.True(t, resp.AnnualSalary.Equal(salary))
	require.NotNil(t, resp.Designation)
	assert.Equal(t, "Senior Engineer", *resp.Designation)
}

func TestUpdateJobValidation(t *testing.T) {
	svc := NewProfileService(newFakeProfileRepo("EMP-001"))

	hrCtx := actorContext(t, "HR-001", user.RoleHR)
	_, err := svc.UpdateJob(hrCtx, profile.UpdateJobRequest{
		EmployeeID:     "EMP-001",
		EmploymentType: strPtr("contractor"),
	})
	assert.Error(t, err)
}
