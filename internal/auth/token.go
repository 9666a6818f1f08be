package auth

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"anidex.org/internal/apperrors"
)

// Claims is the full identity encoded into a session token. Tokens are
// stateless: validity means "decodes and signature-verifies", there is no
// server-side session store and no expiry claim.
type Claims struct {
	ID             string `json:"id"`
	DisplayName    string `json:"display_name"`
	Role           string `json:"role"`
	MalProfile     string `json:"mal_profile,omitempty"`
	AnilistProfile string `json:"anilist_profile,omitempty"`
	jwt.RegisteredClaims
}

// signToken signs the identity claims with the shared HS256 secret. The
// same key and claim set always produce the same token.
func signToken(identity Identity, secret []byte) (string, error) {
	claims := Claims{
		ID:             identity.ID,
		DisplayName:    identity.DisplayName,
		Role:           identity.Role.String(),
		MalProfile:     identity.MalProfile,
		AnilistProfile: identity.AnilistProfile,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindUnknown, "could not sign token", err)
	}
	return signed, nil
}

// parseToken verifies the signature and decodes the identity. Any parse or
// verification failure is Unauthorized; the caller never learns why a token
// was rejected.
func parseToken(token string, secret []byte) (Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Identity{}, apperrors.ErrUnauthorized
	}
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, apperrors.ErrUnauthorized
		}
		return secret, nil
	})
	if err != nil {
		return Identity{}, apperrors.ErrUnauthorized
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return Identity{}, apperrors.ErrUnauthorized
	}
	if claims.ID == "" || claims.DisplayName == "" || claims.Role == "" {
		return Identity{}, apperrors.ErrUnauthorized
	}
	return Identity{
		ID:             claims.ID,
		DisplayName:    claims.DisplayName,
		Role:           RoleFromString(claims.Role),
		MalProfile:     claims.MalProfile,
		AnilistProfile: claims.AnilistProfile,
	}, nil
}
