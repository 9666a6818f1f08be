package auth

import (
	"context"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/sha3"

	"anidex.org/internal/apperrors"
)

// Service issues, verifies and recovers caller identity. It holds no
// mutable state; the store handle and key material are fixed at startup so
// concurrent calls need no locking.
type Service struct {
	users     UserStore
	secret    []byte
	masterKey string
}

// NewService constructs the identity service. The signing secret is
// mandatory; the master key may be empty, which disables admin creation.
func NewService(users UserStore, secret, masterKey string) (*Service, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("auth: signing secret is required")
	}
	return &Service{users: users, secret: []byte(secret), masterKey: masterKey}, nil
}

// Issue creates a new User-role identity, persists it and returns its
// signed token.
func (s *Service) Issue(ctx context.Context, displayName string) (string, error) {
	identity := NewIdentity(displayName)
	if err := identity.Validate(); err != nil {
		return "", err
	}
	if err := s.users.Create(ctx, identity); err != nil {
		return "", apperrors.Unknown(err)
	}
	return signToken(identity, s.secret)
}

// IssueAdmin creates an Admin-role identity. The supplied master key must
// match the configured one byte for byte; on mismatch nothing is persisted.
func (s *Service) IssueAdmin(ctx context.Context, displayName, suppliedMasterKey string) (string, error) {
	if s.masterKey == "" ||
		subtle.ConstantTimeCompare([]byte(s.masterKey), []byte(suppliedMasterKey)) != 1 {
		return "", apperrors.ErrUnauthorized
	}
	identity := NewIdentity(displayName)
	identity.Role = RoleAdmin
	if err := identity.Validate(); err != nil {
		return "", err
	}
	if err := s.users.Create(ctx, identity); err != nil {
		return "", apperrors.Unknown(err)
	}
	return signToken(identity, s.secret)
}

// Resolve verifies a token and returns the identity encoded in it. It is
// pure: no store access, safe for concurrent use.
func (s *Service) Resolve(token string) (Identity, error) {
	return parseToken(token, s.secret)
}

// RecoveryKey returns the caller's recovery secret, deriving and persisting
// it on first use. The derivation is a one-way digest of the identity id,
// so repeated calls return the same value; once stored it is never written
// again.
func (s *Service) RecoveryKey(ctx context.Context, identityID string) (string, error) {
	stored, err := s.users.Find(ctx, identityID)
	if err != nil {
		return "", apperrors.Unknown(err)
	}
	if stored.RecoveryKey != "" {
		return stored.RecoveryKey, nil
	}
	key := deriveRecoveryKey(stored.ID)
	if err := s.users.SetRecoveryKey(ctx, stored.ID, key); err != nil {
		return "", apperrors.Unknown(err)
	}
	return key, nil
}

// Recover signs a fresh token for the identity whose stored recovery
// secret matches the given key.
func (s *Service) Recover(ctx context.Context, recoveryKey string) (string, error) {
	identity, err := s.users.FindByRecoveryKey(ctx, recoveryKey)
	if err != nil {
		return "", apperrors.Unknown(err)
	}
	return signToken(identity, s.secret)
}

func deriveRecoveryKey(id string) string {
	sum := sha3.Sum256([]byte(id))
	return hex.EncodeToString(sum[:])
}
