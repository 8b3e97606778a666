package user

// IsManagingRole reports whether a role may read and write records owned by
// other employees.
func IsManagingRole(role Role) bool {
	return role == RoleAdmin || role == RoleHR
}

// CanAccess is the visibility predicate shared by the profile, attendance,
// leave and payroll services: an actor may touch a record when they own it or
// when they hold a managing role. Violations are authorization failures, never
// data errors.
func CanAccess(actorEmployeeID string, actorRole Role, ownerEmployeeID string) bool {
	if actorEmployeeID != "" && actorEmployeeID == ownerEmployeeID {
		return true
	}
	return IsManagingRole(actorRole)
}
