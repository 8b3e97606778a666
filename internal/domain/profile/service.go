package profile

import "context"

type ProfileService interface {
	// GetMyProfile returns the authenticated employee's profile
	GetMyProfile(ctx context.Context) (ProfileResponse, error)

	// GetProfile returns a profile by employee id (owner or admin/HR)
	GetProfile(ctx context.Context, employeeID string) (ProfileResponse, error)

	// ListProfiles returns every profile (admin/HR only)
	ListProfiles(ctx context.Context) ([]ProfileResponse, error)

	// UpdatePersonal updates personal fields (owner or admin/HR)
	UpdatePersonal(ctx context.Context, req UpdatePersonalRequest) (ProfileResponse, error)

	// UpdateJob updates job and compensation fields (admin/HR only)
	UpdateJob(ctx context.Context, req UpdateJobRequest) (ProfileResponse, error)
}
