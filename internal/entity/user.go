package entity

import "github.com/go-openapi/strfmt"

// Role - closed set of user roles; scope filtering switches over it
type Role string

const (
	RoleAdministrator  Role = "Administrator"
	RoleSoftwareOwner  Role = "SoftwareOwner"
	RoleDepartmentHead Role = "DepartmentHead"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdministrator, RoleSoftwareOwner, RoleDepartmentHead:
		return true
	}
	return false
}

// User - an account that can view subscriptions and receive reminders
type User struct {
	// ID - user identifier in UUID format
	ID strfmt.UUID
	// Name - display name
	Name string
	// Email - primary delivery address for reminders
	Email string
	// Role - determines subscription visibility
	Role Role
	// DepartmentIDs - departments the user heads/belongs to
	DepartmentIDs []int64
}
