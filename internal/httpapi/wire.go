package httpapi

import (
	"anidex.org/internal/catalog"
)

// Wire shapes for the catalog entities. Enum-like values travel as raw
// integers (ordinals and bit sets) and timestamps as epoch seconds.

type titlePayload struct {
	Name      string `json:"name"`
	TitleType int32  `json:"title_type"`
	IsMain    bool   `json:"is_main"`
}

type listRefPayload struct {
	List     int32  `json:"list"`
	IDInList string `json:"id_in_list"`
}

type seriesPayload struct {
	ID          int64            `json:"id"`
	Titles      []titlePayload   `json:"titles"`
	TitleSearch string           `json:"title_search"`
	Synopsis    string           `json:"synopsis"`
	ThumbnailID *string          `json:"thumbnail_id,omitempty"`
	BannerID    *string          `json:"banner_id,omitempty"`
	IsHidden    bool             `json:"is_hidden"`
	IsNSFW      bool             `json:"is_nsfw"`
	CreatedBy   string           `json:"created_by"`
	CreatedAt   int64            `json:"created_at"`
	Genre       uint64           `json:"genre"`
	ReleaseDate int64            `json:"release_date"`
	Lists       []listRefPayload `json:"lists"`
}

type seasonPayload struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	CoverID  *string `json:"cover_id,omitempty"`
	SeriesID int64   `json:"series_id"`
	Sequence int32   `json:"sequence"`
}

type sourcePayload struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	SourceType uint64 `json:"source_type"`
	Priority   int32  `json:"priority"`
}

type episodePayload struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	CoverID  *string `json:"cover_id,omitempty"`
	SeasonID int64   `json:"season_id"`
	SourceID int64   `json:"source_id"`
	MediaID  *string `json:"media_id,omitempty"`
	FileName *string `json:"file_name,omitempty"`
	IsNSFW   bool    `json:"is_nsfw"`
	Sequence int32   `json:"sequence"`
}

func titleDrafts(payloads []titlePayload) []catalog.TitleDraft {
	drafts := make([]catalog.TitleDraft, 0, len(payloads))
	for _, p := range payloads {
		drafts = append(drafts, catalog.TitleDraft{Name: p.Name, Type: p.TitleType, IsMain: p.IsMain})
	}
	return drafts
}

func listRefDrafts(payloads []listRefPayload) []catalog.ListRefDraft {
	drafts := make([]catalog.ListRefDraft, 0, len(payloads))
	for _, p := range payloads {
		drafts = append(drafts, catalog.ListRefDraft{Provider: p.List, ExternalID: p.IDInList})
	}
	return drafts
}

func seriesToWire(s *catalog.Series) seriesPayload {
	titles := make([]titlePayload, 0, len(s.Titles))
	for _, t := range s.Titles {
		titles = append(titles, titlePayload{Name: t.Name, TitleType: int32(t.Type), IsMain: t.IsMain})
	}
	lists := make([]listRefPayload, 0, len(s.Lists))
	for _, l := range s.Lists {
		lists = append(lists, listRefPayload{List: int32(l.Provider), IDInList: l.ExternalID})
	}
	return seriesPayload{
		ID:          s.ID,
		Titles:      titles,
		TitleSearch: s.TitleSearch,
		Synopsis:    s.Synopsis,
		ThumbnailID: s.ThumbnailID,
		BannerID:    s.BannerID,
		IsHidden:    s.IsHidden,
		IsNSFW:      s.IsNSFW,
		CreatedBy:   s.CreatedBy,
		CreatedAt:   s.CreatedAt.Unix(),
		Genre:       s.Genre.Bits(),
		ReleaseDate: s.ReleaseDate.Unix(),
		Lists:       lists,
	}
}

func seasonToWire(s *catalog.Season) seasonPayload {
	return seasonPayload{
		ID:       s.ID,
		Name:     s.Name,
		CoverID:  s.CoverID,
		SeriesID: s.SeriesID,
		Sequence: s.Sequence,
	}
}

func sourceToWire(s *catalog.Source) sourcePayload {
	return sourcePayload{
		ID:         s.ID,
		Name:       s.Name,
		SourceType: s.Kind.Bits(),
		Priority:   s.Priority,
	}
}

func episodeToWire(e *catalog.Episode) episodePayload {
	return episodePayload{
		ID:       e.ID,
		Name:     e.Name,
		CoverID:  e.CoverID,
		SeasonID: e.SeasonID,
		SourceID: e.SourceID,
		MediaID:  e.MediaID,
		FileName: e.FileName,
		IsNSFW:   e.IsNSFW,
		Sequence: e.Sequence,
	}
}
