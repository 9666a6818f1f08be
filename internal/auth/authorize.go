package auth

import "anidex.org/internal/apperrors"

// Requirement is the minimum role a mutating operation demands. Every
// lifecycle operation declares its requirement statically and runs the gate
// before any persistence side effect.
type Requirement int

const (
	AdminOnly Requirement = iota
	AdminOrUploader
)

// Authorize checks the identity's role against the requirement. It is a
// pure predicate; failure carries no detail beyond Unauthorized.
func Authorize(identity Identity, requirement Requirement) error {
	switch requirement {
	case AdminOnly:
		if identity.Role == RoleAdmin {
			return nil
		}
	case AdminOrUploader:
		if identity.Role == RoleAdmin || identity.Role == RoleUploader {
			return nil
		}
	}
	return apperrors.ErrUnauthorized
}
