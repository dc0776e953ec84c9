package auth

import "errors"

// Role represents an authorisation tier.
type Role string

const (
	// RoleObserver reads devices and routes. Wall panels and dashboards.
	RoleObserver Role = "observer"

	// RoleController may also report device connection events. Bluetooth
	// stacks, HDMI hot-plug agents and other event sources.
	RoleController Role = "controller"

	// RoleAdmin has everything a controller has plus the audit journal.
	RoleAdmin Role = "admin"
)

// ValidRoles is the set of roles a token may carry.
var ValidRoles = []Role{RoleObserver, RoleController, RoleAdmin}

// IsValidRole returns true if r is one of ValidRoles.
func IsValidRole(r Role) bool {
	for _, v := range ValidRoles {
		if r == v {
			return true
		}
	}
	return false
}

// Sentinel errors for auth operations.
var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrInvalidRole  = errors.New("invalid role")
	ErrForbidden    = errors.New("insufficient permissions")
)
