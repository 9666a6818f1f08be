package catalog

import (
	"time"
	"unicode/utf8"

	"anidex.org/internal/apperrors"
	"anidex.org/internal/auth"
	"anidex.org/internal/query"
)

// Series is the top-level catalog entity. ID is zero until first persist.
type Series struct {
	ID          int64
	Titles      []Title
	TitleSearch string
	Synopsis    string
	ThumbnailID *string
	BannerID    *string
	IsHidden    bool
	IsNSFW      bool
	CreatedBy   string
	CreatedAt   time.Time
	Genre       Genre
	ReleaseDate time.Time
	Lists       []ListRef
}

// SeriesDraft carries the caller-supplied fields for creation. Enum bits
// and the release timestamp arrive raw and are decoded here.
type SeriesDraft struct {
	Titles           []TitleDraft
	Synopsis         string
	ThumbnailID      *string
	BannerID         *string
	IsHidden         bool
	IsNSFW           bool
	GenreBits        uint64
	ReleaseDateEpoch int64
	Lists            []ListRefDraft
}

// SeriesEdit carries the caller-supplied fields for an update. IsHidden and
// IsNSFW are absent from the update schema on purpose and stay untouched.
type SeriesEdit struct {
	ID               int64
	Titles           []TitleDraft
	Synopsis         string
	ThumbnailID      *string
	BannerID         *string
	GenreBits        uint64
	ReleaseDateEpoch int64
	Lists            []ListRefDraft
}

// NewSeries authorizes the actor, decodes the draft and builds a validated
// series with server-assigned fields.
func NewSeries(draft SeriesDraft, actor auth.Identity) (*Series, error) {
	if err := auth.Authorize(actor, auth.AdminOnly); err != nil {
		return nil, err
	}
	titles, err := titlesFromDrafts(draft.Titles)
	if err != nil {
		return nil, err
	}
	genre, err := GenreFromBits(draft.GenreBits)
	if err != nil {
		return nil, err
	}
	release, err := query.TimeFromEpoch(draft.ReleaseDateEpoch)
	if err != nil {
		return nil, err
	}
	lists, err := listRefsFromDrafts(draft.Lists)
	if err != nil {
		return nil, err
	}

	series := &Series{
		Titles:      titles,
		TitleSearch: titleSearch(titles),
		Synopsis:    draft.Synopsis,
		ThumbnailID: draft.ThumbnailID,
		BannerID:    draft.BannerID,
		IsHidden:    draft.IsHidden,
		IsNSFW:      draft.IsNSFW,
		CreatedBy:   actor.ID,
		CreatedAt:   time.Now().UTC(),
		Genre:       genre,
		ReleaseDate: release,
		Lists:       lists,
	}
	if err := series.Validate(); err != nil {
		return nil, err
	}
	return series, nil
}

// ApplyEdit runs the update protocol on a fetched series: authorize, match
// the embedded identity, replace the editable fields, re-validate.
func (s *Series) ApplyEdit(edit SeriesEdit, actor auth.Identity) error {
	if err := auth.Authorize(actor, auth.AdminOnly); err != nil {
		return err
	}
	if s.ID == 0 {
		return apperrors.New(apperrors.KindUnknown, "entity id is not set")
	}
	if edit.ID != s.ID {
		return apperrors.New(apperrors.KindConflict, "entity id does not match the request")
	}

	titles, err := titlesFromDrafts(edit.Titles)
	if err != nil {
		return err
	}
	genre, err := GenreFromBits(edit.GenreBits)
	if err != nil {
		return err
	}
	release, err := query.TimeFromEpoch(edit.ReleaseDateEpoch)
	if err != nil {
		return err
	}
	lists, err := listRefsFromDrafts(edit.Lists)
	if err != nil {
		return err
	}

	s.Titles = titles
	s.TitleSearch = titleSearch(titles)
	s.Synopsis = edit.Synopsis
	s.ThumbnailID = edit.ThumbnailID
	s.BannerID = edit.BannerID
	s.Genre = genre
	s.ReleaseDate = release
	s.Lists = lists

	return s.Validate()
}

// Validate runs the structural checks, aggregating every violation.
func (s *Series) Validate() error {
	var v apperrors.Violations
	validateTitles(s.Titles, &v)
	if n := utf8.RuneCountInString(s.Synopsis); n < 1 || n > 4000 {
		v.Add("synopsis must be between 1 and 4000 characters")
	}
	validateOptionalRef(s.ThumbnailID, "thumbnail_id", &v)
	validateOptionalRef(s.BannerID, "banner_id", &v)
	validateListRefs(s.Lists, &v)
	return v.Err()
}

// validateOptionalRef checks an optional asset reference: absent is fine,
// present-but-empty is not.
func validateOptionalRef(ref *string, field string, v *apperrors.Violations) {
	if ref == nil {
		return
	}
	if n := utf8.RuneCountInString(*ref); n < 1 || n > 255 {
		v.Addf("%s must be between 1 and 255 characters", field)
	}
}
