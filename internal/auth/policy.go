// Package auth holds the authorization policy: the role vocabulary,
// the per-operation allowed-role table consulted at route
// registration, and the matrix deciding who may create accounts with
// which role. Everything here is a pure lookup; there is no role
// hierarchy — an operation admits exactly the roles its entry lists.
package auth

import "fmt"

// Application roles. The strings are stored verbatim in users.role
// and inside the JWT "role" claim.
const (
	RoleAdmin          = "admin"
	RoleModerator      = "moderator"
	RoleHatcheryMember = "hatchery_member"
)

// Operation names key the RouteRoles table. They exist so the role
// sets live in one declarative place instead of being scattered as
// string literals across handlers.
const (
	OpRegister         = "auth.register"
	OpBreedWrite       = "breeds.write"
	OpBreedRead        = "breeds.read"
	OpHatcheryManage   = "hatcheries.manage"
	OpHatcheryDelete   = "hatcheries.delete"
	OpFlockManage      = "flocks.manage"
	OpProductionManage = "production.manage"
)

// RouteRoles maps every privileged operation to its exact allowed-role
// set. Routers expand an entry into role-enforcing middleware; nothing
// else in the codebase decides access by comparing role strings.
var RouteRoles = map[string][]string{
	OpRegister:         {RoleAdmin, RoleModerator},
	OpBreedWrite:       {RoleAdmin},
	OpBreedRead:        {RoleAdmin},
	OpHatcheryManage:   {RoleAdmin, RoleModerator},
	OpHatcheryDelete:   {RoleAdmin},
	OpFlockManage:      {RoleAdmin, RoleModerator},
	OpProductionManage: {RoleAdmin, RoleModerator},
}

// AllowedRoles returns the role set registered for an operation. The
// second result is false for unknown operations; callers must treat
// that as deny, never as allow-all.
func AllowedRoles(op string) ([]string, bool) {
	roles, ok := RouteRoles[op]
	return roles, ok
}

// creationMatrix lists, per requester role, which roles that requester
// may hand out when registering a new account. Admins mint moderators
// and hatchery members; moderators mint hatchery members only. Nobody
// can create another admin through the API.
var creationMatrix = map[string][]string{
	RoleAdmin:     {RoleModerator, RoleHatcheryMember},
	RoleModerator: {RoleHatcheryMember},
}

// CanCreateRole reports whether a requester holding requesterRole may
// create a user with requestedRole. On deny it returns an error naming
// both roles so the handler can surface the exact refusal.
func CanCreateRole(requesterRole, requestedRole string) error {
	for _, r := range creationMatrix[requesterRole] {
		if r == requestedRole {
			return nil
		}
	}
	return fmt.Errorf("role %q cannot create a user with role %q", requesterRole, requestedRole)
}

// ValidRole reports whether the given string is a known role value.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleModerator, RoleHatcheryMember:
		return true
	}
	return false
}
