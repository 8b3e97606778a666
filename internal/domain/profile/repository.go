package profile

import "context"

type ProfileRepository interface {
	Create(ctx context.Context, newProfile Profile) (Profile, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (Profile, error)
	GetByUserID(ctx context.Context, userID string) (Profile, error)
	List(ctx context.Context) ([]Profile, error)
	UpdatePersonal(ctx context.Context, req UpdatePersonalRequest) error
	UpdateJob(ctx context.Context, req UpdateJobRequest) error
	DeleteByEmployeeID(ctx context.Context, employeeID string) error
}
