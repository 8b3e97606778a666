package leave

import (
	"context"
	"time"
)

// LeaveService defines the leave rule engine
type LeaveService interface {
	// Apply submits a pending request for the authenticated employee.
	// Overlap against approved leave is only rejected when configured.
	Apply(ctx context.Context, req ApplyRequest) (LeaveResponse, error)

	// Decide approves or rejects a pending request (admin/HR only); a
	// request already in a terminal state fails with ErrNotPending and is
	// left unchanged
	Decide(ctx context.Context, req DecideRequest) (LeaveResponse, error)

	// Balance reports remaining allotment per tracked leave type
	Balance(ctx context.Context, employeeID string, asOf time.Time) (BalanceResponse, error)

	// GetMyLeaves lists the authenticated employee's requests
	GetMyLeaves(ctx context.Context) ([]LeaveResponse, error)

	// ListLeaves lists requests across employees (admin/HR only)
	ListLeaves(ctx context.Context, filter ListFilter) ([]LeaveResponse, error)
}
