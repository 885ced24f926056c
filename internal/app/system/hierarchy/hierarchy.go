// internal/app/system/hierarchy/hierarchy.go
package hierarchy

// The club hierarchy is a single linear order. Promotion and demotion
// always move exactly one step along it; there are no branches and no
// skips. Keeping the order in one slice means the forward and backward
// transitions cannot drift apart.

// Role labels, lowest to highest.
const (
	RoleUser          = "USER"
	RoleMember        = "MEMBER"
	RoleCoreMember    = "COREMEMBER"
	RoleVicePresident = "VICEPRESIDENT"
	RolePresident     = "PRESIDENT"
	RoleAdmin         = "ADMIN"
)

// Roles is the full hierarchy in ascending order of rank.
var Roles = []string{
	RoleUser,
	RoleMember,
	RoleCoreMember,
	RoleVicePresident,
	RolePresident,
	RoleAdmin,
}

func indexOf(role string) int {
	for i, r := range Roles {
		if r == role {
			return i
		}
	}
	return -1
}

// Valid reports whether role is a member of the hierarchy.
func Valid(role string) bool {
	return indexOf(role) >= 0
}

// NextHigher returns the role one step above the given role.
// ok is false when the role is already at the top of the hierarchy
// (or is not a hierarchy role at all); that is a boundary, not an error.
func NextHigher(role string) (string, bool) {
	i := indexOf(role)
	if i < 0 || i >= len(Roles)-1 {
		return "", false
	}
	return Roles[i+1], true
}

// NextLower returns the role one step below the given role.
// ok is false at the bottom of the hierarchy.
func NextLower(role string) (string, bool) {
	i := indexOf(role)
	if i <= 0 {
		return "", false
	}
	return Roles[i-1], true
}
