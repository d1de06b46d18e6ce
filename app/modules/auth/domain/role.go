package authdomain

import "strings"

// Role represents a user's role for authorization purposes. The values match
// the seeded rows of the roles table.
type Role string

const (
	RoleAdmin      Role = "Admin"
	RoleClubLeader Role = "ClubLeader"
	RoleStudent    Role = "Student"
)

// IsValid checks if the role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleClubLeader, RoleStudent:
		return true
	default:
		return false
	}
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// ParseRole matches name against the known roles ignoring case.
func ParseRole(name string) (Role, bool) {
	for _, r := range []Role{RoleAdmin, RoleClubLeader, RoleStudent} {
		if strings.EqualFold(string(r), strings.TrimSpace(name)) {
			return r, true
		}
	}
	return "", false
}
