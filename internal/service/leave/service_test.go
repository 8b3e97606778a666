package leave

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peoplebase/hrm-backend-go/internal/config"
	"github.com/peoplebase/hrm-backend-go/internal/domain/leave"
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

type fakeLeaveRepo struct {
	requests map[string]*leave.LeaveRequest
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{requests: make(map[string]*leave.LeaveRequest)}
}

func (f *fakeLeaveRepo) Create(_ context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	request.ID = uuid.NewString()
	f.requests[request.ID] = &request
	return request, nil
}

func (f *fakeLeaveRepo) GetByID(_ context.Context, id string) (leave.LeaveRequest, error) {
	request, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return *request, nil
}

func (f *fakeLeaveRepo) List(_ context.Context, filter leave.ListFilter) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, request := range f.requests {
		if filter.EmployeeID != "" && request.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Status != "" && string(request.Status) != filter.Status {
			continue
		}
		out = append(out, *request)
	}
	return out, nil
}

func (f *fakeLeaveRepo) Decide(_ context.Context, id string, status leave.Status, approvedBy string, comments *string) (leave.LeaveRequest, error) {
	request, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	if request.Status != leave.StatusPending {
		return leave.LeaveRequest{}, leave.ErrNotPending
	}
	request.Status = status
	request.ApprovedBy = &approvedBy
	request.ApproverComments = comments
	return *request, nil
}

func (f *fakeLeaveRepo) ApprovedInYear(_ context.Context, employeeID string, leaveType leave.Type, year int) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, request := range f.requests {
		if request.EmployeeID != employeeID || request.Type != leaveType || request.Status != leave.StatusApproved {
			continue
		}
		if request.EndDate.Year() < year || request.StartDate.Year() > year {
			continue
		}
		out = append(out, *request)
	}
	return out, nil
}

func (f *fakeLeaveRepo) HasApprovedOverlap(_ context.Context, employeeID string, start, end time.Time) (bool, error) {
	for _, request := range f.requests {
		if request.EmployeeID != employeeID || request.Status != leave.StatusApproved {
			continue
		}
		if !request.EndDate.Before(start) && !request.StartDate.After(end) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLeaveRepo) DeleteByEmployeeID(_ context.Context, employeeID string) error {
	for id, request := range f.requests {
		if request.EmployeeID == employeeID {
			delete(f.requests, id)
		}
	}
	return nil
}

func testLeaveConfig() config.LeaveConfig {
	return config.LeaveConfig{
		PaidAllotment:   18,
		SickAllotment:   12,
		CasualAllotment: 10,
	}
}

func TestApply(t *testing.T) {
	ctx := actorContext(t, "EMP-001", user.RoleEmployee)
	svc := NewLeaveService(newFakeLeaveRepo(), testLeaveConfig())

	reason := "family trip"
	resp, err := svc.Apply(ctx, leave.ApplyRequest{
		Type:      "paid",
		StartDate: "2026-04-06",
		EndDate:   "2026-04-10",
		Reason:    &reason,
	})
	require.NoError(t, err)

	assert.Equal(t, "EMP-001", resp.EmployeeID)
	assert.Equal(t, string(leave.StatusPending), resp.Status)
	assert.Equal(t, 5, resp.Days)
}

func TestApplyInvalidRange(t *testing.T) {
	ctx := actorContext(t, "EMP-001", user.RoleEmployee)
	svc := NewLeaveService(newFakeLeaveRepo(), testLeaveConfig())

	_, err := svc.Apply(ctx, leave.ApplyRequest{
		Type:      "paid",
		StartDate: "2026-04-10",
		EndDate:   "2026-04-06",
	})
	assert.Error(t, err)
}

func TestApplyOverlapPolicy(t *testing.T) {
	ctx := actorContext(t, "EMP-001", user.RoleEmployee)
	hrCtx := actorContext(t, "HR-001", user.RoleHR)

	repo := newFakeLeaveRepo()
	cfg := testLeaveConfig()
	cfg.RejectOverlap = true
	svc := NewLeaveService(repo, cfg)

	first, err := svc.Apply(ctx, leave.ApplyRequest{
		Type:      "paid",
		StartDate: "2026-04-06",
		EndDate:   "2026-04-10",
	})
	require.NoError(t, err)

	_, err = svc.Decide(hrCtx, leave.DecideRequest{ID: first.ID, Decision: "approve"})
	require.NoError(t, err)

	// Intersects the approved range
	_, err = svc.Apply(ctx, leave.ApplyRequest{
		Type:      "sick",
		StartDate: "2026-04-09",
		EndDate:   "2026-04-12",
	})
	assert.ErrorIs(t, err, leave.ErrOverlappingLeave)

	// Pending requests never block, and disjoint ranges pass
	_, err = svc.Apply(ctx, leave.ApplyRequest{
		Type:      "sick",
		StartDate: "2026-04-13",
		EndDate:   "2026-04-14",
	})
	assert.NoError(t, err)
}

func TestApplyOverlapAllowedByDefault(t *testing.T) {
	ctx := actorContext(t, "EMP-001", user.RoleEmployee)
	hrCtx := actorContext(t, "HR-001", user.RoleHR)

	svc := NewLeaveService(newFakeLeaveRepo(), testLeaveConfig())

	first, err := svc.Apply(ctx, leave.ApplyRequest{
		Type:      "paid",
		StartDate: "2026-04-06",
		EndDate:   "2026-04-10",
	})
	require.NoError(t, err)
	_, err = svc.Decide(hrCtx, leave.DecideRequest{ID: first.ID, Decision: "approve"})
	require.NoError(t, err)

	_, err = svc.Apply(ctx, leave.ApplyRequest{
		Type:      "sick",
		StartDate: "2026-04-09",
		EndDate:   "2026-04-12",
	})
	assert.NoError(t, err)
}

func TestDecide(t *testing.T) {
	ctx := actorContext(t, "EMP-001", user.RoleEmployee)
	hrCtx := actorContext(t, "HR-001", user.RoleHR)

	repo := newFakeLeaveRepo()
	svc := NewLeaveService(repo, testLeaveConfig())

	created, err := svc.Apply(ctx, leave.ApplyRequest{
		Type:      "paid",
		StartDate: "2026-04-06",
		EndDate:   "2026-04-10",
	})
	require.NoError(t, err)

	comments := "enjoy"
	resp, err := svc.Decide(hrCtx, leave.DecideRequest{ID: created.ID, Decision: "approve", Comments: &comments})
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusApproved), resp.Status)
	require.NotNil(t, resp.ApprovedBy)
	assert.Equal(t, "HR-001", *resp.ApprovedBy)

	// A terminal request stays unchanged on a second decision
	_, err = svc.Decide(hrCtx, leave.DecideRequest{ID: created.ID, Decision: "reject"})
	assert.ErrorIs(t, err, leave.ErrNotPending)

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, stored.Status)
}

func TestDecideRequiresManager(t *testing.T) {
	ctx := actorContext(t, "EMP-001", user.RoleEmployee)
	svc := NewLeaveService(newFakeLeaveRepo(), testLeaveConfig())

	_, err := svc.Decide(ctx, leave.DecideRequest{ID: "x", Decision: "approve"})
	assert.ErrorIs(t, err, leave.ErrUnauthorized)
}

func TestBalance(t *testing.T) {
	ctx := actorContext(t, "EMP-001", user.RoleEmployee)
	hrCtx := actorContext(t, "HR-001", user.RoleHR)

	svc := NewLeaveService(newFakeLeaveRepo(), testLeaveConfig())

	created, err := svc.Apply(ctx, leave.ApplyRequest{
		Type:      "paid",
		StartDate: "2026-04-06",
		EndDate:   "2026-04-10",
	})
	require.NoError(t, err)
	_, err = svc.Decide(hrCtx, leave.DecideRequest{ID: created.ID, Decision: "approve"})
	require.NoError(t, err)

	// Pending and rejected requests do not consume balance
	pending, err := svc.Apply(ctx, leave.ApplyRequest{
		Type:      "paid",
		StartDate: "2026-06-01",
		EndDate:   "2026-06-02",
	})
	require.NoError(t, err)
	_, err = svc.Decide(hrCtx, leave.DecideRequest{ID: pending.ID, Decision: "reject"})
	require.NoError(t, err)

	resp, err := svc.Balance(ctx, "", time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, "EMP-001", resp.EmployeeID)
	assert.Equal(t, 2026, resp.Year)

	byType := make(map[string]leave.BalanceEntry)
	for _, entry := range resp.Balances {
		byType[entry.Type] = entry
	}

	assert.Equal(t, 5, byType["paid"].Used)
	assert.Equal(t, 13, byType["paid"].Remaining)
	assert.Equal(t, 0, byType["sick"].Used)
	assert.Equal(t, 12, byType["sick"].Remaining)
	assert.Equal(t, 10, byType["casual"].Remaining)

	// Unpaid leave is never balance-tracked
	_, tracked := byType["unpaid"]
	assert.False(t, tracked)
}

func TestBalanceClampsToYear(t *testing.T) {
	ctx := actorContext(t, "EMP-001", user.RoleEmployee)
	hrCtx := actorContext(t, "HR-001", user.RoleHR)

	svc := NewLeaveService(newFakeLeaveRepo(), testLeaveConfig())

	// Spans the year boundary: 3 days in 2026, 2 in 2027
	created, err := svc.Apply(ctx, leave.ApplyRequest{
		Type:      "paid",
		StartDate: "2026-12-29",
		EndDate:   "2027-01-02",
	})
	require.NoError(t, err)
	_, err = svc.Decide(hrCtx, leave.DecideRequest{ID: created.ID, Decision: "approve"})
	require.NoError(t, err)

	resp, err := svc.Balance(ctx, "", time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	for _, entry := range resp.Balances {
		if entry.Type == "paid" {
			assert.Equal(t, 3, entry.Used)
		}
	}

	resp, err = svc.Balance(ctx, "", time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	for _, entry := range resp.Balances {
		if entry.Type == "paid" {
			assert.Equal(t, 2, entry.Used)
		}
	}
}

func TestBalanceAuthorization(t *testing.T) {
	svc := NewLeaveService(newFakeLeaveRepo(), testLeaveConfig())

	otherCtx := actorContext(t, "EMP-002", user.RoleEmployee)
	_, err := svc.Balance(otherCtx, "EMP-001", time.Now())
	assert.ErrorIs(t, err, leave.ErrUnauthorized)

	hrCtx := actorContext(t, "HR-001", user.RoleHR)
	_, err = svc.Balance(hrCtx, "EMP-001", time.Now())
	assert.NoError(t, err)
}
