package catalog

import (
	"unicode/utf8"

	"anidex.org/internal/apperrors"
	"anidex.org/internal/auth"
)

// Source is a release variant of a series: a combination of presentation
// kinds with a selection priority.
type Source struct {
	ID       int64
	Name     string
	Kind     SourceKind
	Priority int32
}

// SourceDraft carries the caller-supplied fields for creation.
type SourceDraft struct {
	Name     string
	KindBits uint64
	Priority int32
}

// SourceEdit carries the caller-supplied fields for an update.
type SourceEdit struct {
	ID       int64
	Name     string
	KindBits uint64
	Priority int32
}

// NewSource authorizes the actor, decodes the kind bit set and builds a
// validated source.
func NewSource(draft SourceDraft, actor auth.Identity) (*Source, error) {
	if err := auth.Authorize(actor, auth.AdminOnly); err != nil {
		return nil, err
	}
	kind, err := SourceKindFromBits(draft.KindBits)
	if err != nil {
		return nil, err
	}
	source := &Source{
		Name:     draft.Name,
		Kind:     kind,
		Priority: draft.Priority,
	}
	if err := source.Validate(); err != nil {
		return nil, err
	}
	return source, nil
}

// ApplyEdit runs the update protocol on a fetched source.
func (s *Source) ApplyEdit(edit SourceEdit, actor auth.Identity) error {
	if err := auth.Authorize(actor, auth.AdminOnly); err != nil {
		return err
	}
	if s.ID == 0 {
		return apperrors.New(apperrors.KindUnknown, "entity id is not set")
	}
	if edit.ID != s.ID {
		return apperrors.New(apperrors.KindConflict, "entity id does not match the request")
	}
	kind, err := SourceKindFromBits(edit.KindBits)
	if err != nil {
		return err
	}
	s.Name = edit.Name
	s.Kind = kind
	s.Priority = edit.Priority
	return s.Validate()
}

// Validate runs the structural checks.
func (s *Source) Validate() error {
	var v apperrors.Violations
	if n := utf8.RuneCountInString(s.Name); n < 1 || n > 255 {
		v.Add("name must be between 1 and 255 characters")
	}
	return v.Err()
}
