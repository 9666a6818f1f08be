package auth

import (
	"context"
	"unicode/utf8"

	"anidex.org/internal/apperrors"
	"anidex.org/internal/ids"
)

const minDisplayNameLen = 4

// Identity is a caller known to the service. Optional fields use the empty
// string for "not set". RecoveryKey is derived lazily and is immutable once
// stored.
type Identity struct {
	ID             string
	DisplayName    string
	Role           Role
	MalProfile     string
	AnilistProfile string
	RecoveryKey    string
}

// NewIdentity creates a fresh User-role identity with a generated id.
func NewIdentity(displayName string) Identity {
	return Identity{
		ID:          ids.NewUUID(),
		DisplayName: displayName,
		Role:        RoleUser,
	}
}

// Validate runs the structural checks on the identity.
func (i Identity) Validate() error {
	var v apperrors.Violations
	if utf8.RuneCountInString(i.DisplayName) < minDisplayNameLen {
		v.Addf("display_name must be at least %d characters", minDisplayNameLen)
	}
	return v.Err()
}

// UserStore persists identities.
type UserStore interface {
	Create(ctx context.Context, identity Identity) error
	Find(ctx context.Context, id string) (Identity, error)
	SetRecoveryKey(ctx context.Context, id, key string) error
	FindByRecoveryKey(ctx context.Context, key string) (Identity, error)
}
