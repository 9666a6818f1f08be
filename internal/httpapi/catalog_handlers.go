package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"anidex.org/internal/audit"
	"anidex.org/internal/catalog"
)

type createSeriesRequest struct {
	Titles      []titlePayload   `json:"titles"`
	Synopsis    string           `json:"synopsis"`
	ThumbnailID *string          `json:"thumbnail_id"`
	BannerID    *string          `json:"banner_id"`
	IsHidden    bool             `json:"is_hidden"`
	IsNSFW      bool             `json:"is_nsfw"`
	Genre       uint64           `json:"genre"`
	ReleaseDate int64            `json:"release_date"`
	Lists       []listRefPayload `json:"lists"`
}

type editSeriesRequest struct {
	ID          int64            `json:"id"`
	Titles      []titlePayload   `json:"titles"`
	Synopsis    string           `json:"synopsis"`
	ThumbnailID *string          `json:"thumbnail_id"`
	BannerID    *string          `json:"banner_id"`
	Genre       uint64           `json:"genre"`
	ReleaseDate int64            `json:"release_date"`
	Lists       []listRefPayload `json:"lists"`
}

type createSeasonRequest struct {
	Name     string  `json:"name"`
	CoverID  *string `json:"cover_id"`
	SeriesID int64   `json:"series_id"`
	Sequence int32   `json:"sequence"`
}

type editSeasonRequest struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	CoverID  *string `json:"cover_id"`
	Sequence int32   `json:"sequence"`
}

type createSourceRequest struct {
	Name       string `json:"name"`
	SourceType uint64 `json:"source_type"`
	Priority   int32  `json:"priority"`
}

type editSourceRequest struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	SourceType uint64 `json:"source_type"`
	Priority   int32  `json:"priority"`
}

type createEpisodeRequest struct {
	CoverID  *string `json:"cover_id"`
	SeasonID int64   `json:"season_id"`
	SourceID int64   `json:"source_id"`
	IsNSFW   bool    `json:"is_nsfw"`
	Sequence int32   `json:"sequence"`
}

type updateEpisodeRequest struct {
	ID       string  `json:"id"`
	CoverID  *string `json:"cover_id"`
	MediaURL *string `json:"media_url"`
	Sequence int32   `json:"sequence"`
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

// --- series ---

func (a *API) handleCreateSeries(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing identity")
		return
	}
	var req createSeriesRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	id, err := a.series.Create(r.Context(), catalog.SeriesDraft{
		Titles:           titleDrafts(req.Titles),
		Synopsis:         req.Synopsis,
		ThumbnailID:      req.ThumbnailID,
		BannerID:         req.BannerID,
		IsHidden:         req.IsHidden,
		IsNSFW:           req.IsNSFW,
		GenreBits:        req.Genre,
		ReleaseDateEpoch: req.ReleaseDate,
		Lists:            listRefDrafts(req.Lists),
	}, identity)
	if err != nil {
		handleAppError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "series.created", map[string]any{"series_id": id})
	writeJSON(w, http.StatusOK, map[string]any{"id": id})
}

func (a *API) handleGetSeries(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "id must be a positive integer")
		return
	}
	series, err := a.series.Get(r.Context(), id)
	if err != nil {
		handleAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, seriesToWire(series))
}

func (a *API) handleSearchSeries(w http.ResponseWriter, r *http.Request) {
	filter, err := seriesFilterFromQuery(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	result, err := a.series.Search(r.Context(), filter)
	if err != nil {
		handleAppError(w, r, err)
		return
	}
	payload := make([]seriesPayload, 0, len(result))
	for i := range result {
		payload = append(payload, seriesToWire(&result[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"series": payload})
}

func (a *API) handleEditSeries(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing identity")
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "id must be a positive integer")
		return
	}
	var req editSeriesRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	err := a.series.Edit(r.Context(), id, catalog.SeriesEdit{
		ID:               req.ID,
		Titles:           titleDrafts(req.Titles),
		Synopsis:         req.Synopsis,
		ThumbnailID:      req.ThumbnailID,
		BannerID:         req.BannerID,
		GenreBits:        req.Genre,
		ReleaseDateEpoch: req.ReleaseDate,
		Lists:            listRefDrafts(req.Lists),
	}, identity)
	if err != nil {
		handleAppError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "series.edited", map[string]any{"series_id": id})
	writeJSON(w, http.StatusOK, map[string]any{"id": id})
}

// --- seasons ---

func (a *API) handleCreateSeason(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing identity")
		return
	}
	var req createSeasonRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	id, err := a.seasons.Create(r.Context(), catalog.SeasonDraft{
		Name:     req.Name,
		CoverID:  req.CoverID,
		SeriesID: req.SeriesID,
		Sequence: req.Sequence,
	}, identity)
	if err != nil {
		handleAppError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "season.created", map[string]any{"season_id": id, "series_id": req.SeriesID})
	writeJSON(w, http.StatusOK, map[string]any{"id": id})
}

func (a *API) handleListSeasons(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "id must be a positive integer")
		return
	}
	seasons, err := a.seasons.ListBySeries(r.Context(), id)
	if err != nil {
		handleAppError(w, r, err)
		return
	}
	payload := make([]seasonPayload, 0, len(seasons))
	for i := range seasons {
		payload = append(payload, seasonToWire(&seasons[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"seasons": payload})
}

func (a *API) handleLastSeasonSequence(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "id must be a positive integer")
		return
	}
	last, err := a.seasons.LastSequence(r.Context(), id)
	if err != nil {
		handleAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"last_sequence": last})
}

func (a *API) handleEditSeason(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing identity")
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "id must be a positive integer")
		return
	}
	var req editSeasonRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	err := a.seasons.Edit(r.Context(), id, catalog.SeasonEdit{
		ID:       req.ID,
		Name:     req.Name,
		CoverID:  req.CoverID,
		Sequence: req.Sequence,
	}, identity)
	if err != nil {
		handleAppError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "season.edited", map[string]any{"season_id": id})
	writeJSON(w, http.StatusOK, map[string]any{"id": id})
}

// --- sources ---

func (a *API) handleCreateSource(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing identity")
		return
	}
	var req createSourceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	id, err := a.sources.Create(r.Context(), catalog.SourceDraft{
		Name:     req.Name,
		KindBits: req.SourceType,
		Priority: req.Priority,
	}, identity)
	if err != nil {
		handleAppError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "source.created", map[string]any{"source_id": id})
	writeJSON(w, http.StatusOK, map[string]any{"id": id})
}

func (a *API) handleGetSource(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "id must be a positive integer")
		return
	}
	source, err := a.sources.Get(r.Context(), id)
	if err != nil {
		handleAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sourceToWire(source))
}

func (a *API) handleSearchSources(w http.ResponseWriter, r *http.Request) {
	filter, err := sourceFilterFromQuery(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	result, err := a.sources.Search(r.Context(), filter)
	if err != nil {
		handleAppError(w, r, err)
		return
	}
	payload := make([]sourcePayload, 0, len(result))
	for i := range result {
		payload = append(payload, sourceToWire(&result[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"sources": payload})
}

func (a *API) handleListSourcesBySeason(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "id must be a positive integer")
		return
	}
	sources, err := a.sources.ListBySeason(r.Context(), id)
	if err != nil {
		handleAppError(w, r, err)
		return
	}
	payload := make([]sourcePayload, 0, len(sources))
	for i := range sources {
		payload = append(payload, sourceToWire(&sources[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"sources": payload})
}

func (a *API) handleEditSource(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing identity")
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "id must be a positive integer")
		return
	}
	var req editSourceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	err := a.sources.Edit(r.Context(), id, catalog.SourceEdit{
		ID:       req.ID,
		Name:     req.Name,
		KindBits: req.SourceType,
		Priority: req.Priority,
	}, identity)
	if err != nil {
		handleAppError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "source.edited", map[string]any{"source_id": id})
	writeJSON(w, http.StatusOK, map[string]any{"id": id})
}

// --- episodes ---

func (a *API) handleCreateEpisode(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing identity")
		return
	}
	var req createEpisodeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	id, name, err := a.episodes.Create(r.Context(), catalog.EpisodeDraft{
		CoverID:  req.CoverID,
		SeasonID: req.SeasonID,
		SourceID: req.SourceID,
		IsNSFW:   req.IsNSFW,
		Sequence: req.Sequence,
	}, identity)
	if err != nil {
		handleAppError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "episode.created", map[string]any{"episode_id": id})
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "name": name})
}

func (a *API) handleListEpisodes(w http.ResponseWriter, r *http.Request) {
	seasonID, err := queryInt64(r, "season_id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	sourceID, err := queryInt64(r, "source_id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	episodes, err := a.episodes.ListBySeasonAndSource(r.Context(), seasonID, sourceID)
	if err != nil {
		handleAppError(w, r, err)
		return
	}
	payload := make([]episodePayload, 0, len(episodes))
	for i := range episodes {
		payload = append(payload, episodeToWire(&episodes[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"episodes": payload})
}

func (a *API) handleUpdateEpisode(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing identity")
		return
	}
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, r, http.StatusBadRequest, "id is required")
		return
	}
	var req updateEpisodeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	err := a.episodes.Update(r.Context(), id, catalog.EpisodeUpdate{
		ID:       req.ID,
		CoverID:  req.CoverID,
		MediaURL: req.MediaURL,
		Sequence: req.Sequence,
	}, identity)
	if err != nil {
		handleAppError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "episode.updated", map[string]any{"episode_id": id})
	writeJSON(w, http.StatusOK, map[string]any{"id": id})
}
