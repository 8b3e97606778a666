package user

import "context"

type UserRepository interface {
	Create(ctx context.Context, newUser User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (User, error)
	ExistsByEmailOrEmployeeID(ctx context.Context, email, employeeID string) (bool, error)
	List(ctx context.Context) ([]User, error)
	UpdateRole(ctx context.Context, id string, role Role) error
	VerifyEmail(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
