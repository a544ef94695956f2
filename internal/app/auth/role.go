package auth

import (
	"fmt"
)

var ErrInvalidRole = fmt.Errorf("invalid role")

// Role is the closed set of dashboard roles carried in the session token.
type Role string

const (
	RoleSuperAdmin Role = "super-admin"
	RoleAdmin      Role = "admin"
	RoleEmployee   Role = "employee"
)

func (role Role) String() string {
	return string(role)
}

func (role Role) Validate() error {
	switch role {
	case RoleSuperAdmin, RoleAdmin, RoleEmployee:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidRole, string(role))
	}
}
