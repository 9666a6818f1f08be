package catalog

import (
	"unicode/utf8"

	"anidex.org/internal/apperrors"
	"anidex.org/internal/auth"
)

// Season groups episodes of one series in broadcast order.
type Season struct {
	ID       int64
	Name     string
	CoverID  *string
	SeriesID int64
	Sequence int32
}

// SeasonDraft carries the caller-supplied fields for creation.
type SeasonDraft struct {
	Name     string
	CoverID  *string
	SeriesID int64
	Sequence int32
}

// SeasonEdit carries the caller-supplied fields for an update. The owning
// series is not editable.
type SeasonEdit struct {
	ID       int64
	Name     string
	CoverID  *string
	Sequence int32
}

// NewSeason authorizes the actor and builds a validated season.
func NewSeason(draft SeasonDraft, actor auth.Identity) (*Season, error) {
	if err := auth.Authorize(actor, auth.AdminOnly); err != nil {
		return nil, err
	}
	season := &Season{
		Name:     draft.Name,
		CoverID:  draft.CoverID,
		SeriesID: draft.SeriesID,
		Sequence: draft.Sequence,
	}
	if err := season.Validate(); err != nil {
		return nil, err
	}
	return season, nil
}

// ApplyEdit runs the update protocol on a fetched season.
func (s *Season) ApplyEdit(edit SeasonEdit, actor auth.Identity) error {
	if err := auth.Authorize(actor, auth.AdminOnly); err != nil {
		return err
	}
	if s.ID == 0 {
		return apperrors.New(apperrors.KindUnknown, "entity id is not set")
	}
	if edit.ID != s.ID {
		return apperrors.New(apperrors.KindConflict, "entity id does not match the request")
	}
	s.Name = edit.Name
	s.CoverID = edit.CoverID
	s.Sequence = edit.Sequence
	return s.Validate()
}

// Validate runs the structural checks.
func (s *Season) Validate() error {
	var v apperrors.Violations
	if n := utf8.RuneCountInString(s.Name); n < 1 || n > 255 {
		v.Add("name must be between 1 and 255 characters")
	}
	validateOptionalRef(s.CoverID, "cover_id", &v)
	return v.Err()
}
