// Package authctx extracts the authenticated actor from the verified JWT
// claims that the jwtauth middleware stores on the request context.
package authctx

import (
	"context"

	"github.com/go-chi/jwtauth/v5"

	"github.com/peoplebase/hrm-backend-go/internal/domain/auth"
	"github.com/peoplebase/hrm-backend-go/internal/domain/user"
)

// Actor is the authenticated principal every service authorizes against.
type Actor struct {
	UserID     string
	Email      string
	EmployeeID string
	Role       user.Role
}

// IsManager reports whether the actor may read and write other employees'
// records.
func (a Actor) IsManager() bool {
	return user.IsManagingRole(a.Role)
}

// CanAccess reports whether the actor may touch a record owned by the given
// employee.
func (a Actor) CanAccess(ownerEmployeeID string) bool {
	return user.CanAccess(a.EmployeeID, a.Role, ownerEmployeeID)
}

// FromContext reads the actor from the verified token claims. Only access
// tokens carry an identity; a refresh token on a protected route is rejected.
func FromContext(ctx context.Context) (Actor, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Actor{}, auth.ErrInvalidToken
	}

	tokenType, _ := claims["type"].(string)
	if tokenType != "access" {
		return Actor{}, auth.ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return Actor{}, auth.ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	employeeID, _ := claims["employee_id"].(string)
	role, _ := claims["role"].(string)

	return Actor{
		UserID:     userID,
		Email:      email,
		EmployeeID: employeeID,
		Role:       user.Role(role),
	}, nil
}
