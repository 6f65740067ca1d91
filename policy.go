package staffauth

// Role is the closed set of roles an account can hold. Exactly one role is
// assigned per account; there is no role hierarchy, only the policy table
// below.
type Role string

const (
	// RoleAdmin is an exported constant or variable used by the authentication engine.
	RoleAdmin Role = "admin"
	// RoleHRManager is an exported constant or variable used by the authentication engine.
	RoleHRManager Role = "hr_manager"
	// RoleHROfficer is an exported constant or variable used by the authentication engine.
	RoleHROfficer Role = "hr_officer"
	// RoleManager is an exported constant or variable used by the authentication engine.
	RoleManager Role = "manager"
	// RoleEmployee is an exported constant or variable used by the authentication engine.
	RoleEmployee Role = "employee"
)

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleHRManager, RoleHROfficer, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// Operation names a privileged action gated by the role policy table.
type Operation string

const (
	// OpInviteCreate is an exported constant or variable used by the authentication engine.
	OpInviteCreate Operation = "invite.create"
	// OpRoleAssign is an exported constant or variable used by the authentication engine.
	OpRoleAssign Operation = "role.assign"
	// OpAccountDeactivate is an exported constant or variable used by the authentication engine.
	OpAccountDeactivate Operation = "account.deactivate"
)

// rolePolicy is the single authorization table consulted by Authorize.
// Call sites must not repeat inline role lists.
var rolePolicy = map[Operation][]Role{
	OpInviteCreate:      {RoleAdmin, RoleHRManager},
	OpRoleAssign:        {RoleAdmin},
	OpAccountDeactivate: {RoleAdmin, RoleHRManager},
}

// Authorize describes the authorize operation and its observable behavior.
//
// Authorize returns ErrForbidden when the role is not permitted to perform
// the operation, and nil otherwise. Unknown operations are always forbidden.
// The policy table is fixed at compile time, so no engine state is involved.
func Authorize(role Role, op Operation) error {
	allowed, ok := rolePolicy[op]
	if !ok {
		return ErrForbidden
	}
	for _, r := range allowed {
		if r == role {
			return nil
		}
	}
	return ErrForbidden
}
