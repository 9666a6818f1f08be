package auth

import "fmt"

// Role is the closed set of caller roles. Ordinals are persisted, so the
// order of the constants must never change.
type Role uint8

const (
	RoleAdmin Role = iota
	RoleUploader
	RoleUser
)

// String returns the wire name of the role.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleUploader:
		return "uploader"
	default:
		return "user"
	}
}

// RoleFromString maps a wire name back to a role. Unknown names map to
// RoleUser on purpose: a stale or foreign token must never grant more than
// the lowest privilege.
func RoleFromString(s string) Role {
	switch s {
	case "admin":
		return RoleAdmin
	case "uploader":
		return RoleUploader
	default:
		return RoleUser
	}
}

// RoleFromOrdinal decodes a persisted role ordinal. Unlike RoleFromString
// this rejects unknown values: a bad ordinal in the store is corruption,
// not caller input.
func RoleFromOrdinal(v int) (Role, error) {
	if v < 0 || v > int(RoleUser) {
		return RoleUser, fmt.Errorf("unknown role ordinal %d", v)
	}
	return Role(v), nil
}
