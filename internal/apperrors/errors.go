// Package apperrors defines the error taxonomy shared by every service
// layer. Each error carries a Kind that the RPC facade maps to exactly one
// external status category.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	// KindUnknown wraps lower-level failures: store errors, signing
	// failures, external-call failures, serialization failures.
	KindUnknown Kind = iota
	// KindValidation reports structural field violations, aggregated.
	KindValidation
	// KindUnauthorized covers missing/invalid credentials, insufficient
	// role and master-key mismatch.
	KindUnauthorized
	// KindInvalidData reports semantically invalid but structurally
	// parseable input: bad enum bits, bad timestamps, bad URL prefixes.
	KindInvalidData
	// KindNotFound means the referenced entity is absent.
	KindNotFound
	// KindConflict means the identity embedded in an update request does
	// not match the persisted entity.
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindInvalidData:
		return "invalid_data"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Error is a kind-tagged error with an optional wrapped cause.
type Error struct {
	Kind  Kind
	Msg   string
	cause error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.cause != nil {
		return e.cause.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.cause }

var (
	// ErrNotFound is returned when a referenced entity is absent.
	ErrNotFound = &Error{Kind: KindNotFound, Msg: "entity not found"}
	// ErrUnauthorized is returned for any authentication or role failure.
	ErrUnauthorized = &Error{Kind: KindUnauthorized, Msg: "authentication failed"}
)

// New creates a kind-tagged error with a message.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf creates a kind-tagged error with a formatted message.
func Newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to a lower-level cause.
func Wrap(kind Kind, msg string, cause error) error {
	if cause == nil {
		return nil
	}
	return &Error{Kind: kind, Msg: msg, cause: cause}
}

// Unknown wraps any lower-level failure as KindUnknown.
func Unknown(cause error) error {
	if cause == nil {
		return nil
	}
	var e *Error
	if errors.As(cause, &e) {
		return cause
	}
	return &Error{Kind: KindUnknown, cause: cause}
}

// KindOf extracts the Kind from an error chain, defaulting to KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsNotFound reports whether err is a KindNotFound failure.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsUnauthorized reports whether err is a KindUnauthorized failure.
func IsUnauthorized(err error) bool { return KindOf(err) == KindUnauthorized }
