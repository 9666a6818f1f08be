package catalog

import (
	"context"

	"anidex.org/internal/apperrors"
	"anidex.org/internal/auth"
)

// The lifecycle services own no state; they orchestrate the entity
// constructors and stores, so concurrent calls need no coordination.

// SeriesService orchestrates the series lifecycle.
type SeriesService struct {
	store SeriesStore
}

// NewSeriesService constructs a SeriesService.
func NewSeriesService(store SeriesStore) *SeriesService {
	return &SeriesService{store: store}
}

// Create builds and persists a new series, returning its assigned id.
func (s *SeriesService) Create(ctx context.Context, draft SeriesDraft, actor auth.Identity) (int64, error) {
	series, err := NewSeries(draft, actor)
	if err != nil {
		return 0, err
	}
	id, err := s.store.Insert(ctx, series)
	if err != nil {
		return 0, apperrors.Unknown(err)
	}
	return id, nil
}

// Get fetches a series by id.
func (s *SeriesService) Get(ctx context.Context, id int64) (*Series, error) {
	series, err := s.store.Find(ctx, id)
	if err != nil {
		return nil, apperrors.Unknown(err)
	}
	return series, nil
}

// Search runs a filtered query.
func (s *SeriesService) Search(ctx context.Context, filter SeriesFilter) ([]Series, error) {
	result, err := s.store.Search(ctx, filter)
	if err != nil {
		return nil, apperrors.Unknown(err)
	}
	return result, nil
}

// Edit runs fetch-modify-validate-persist for a series. id is the fetch
// key; the edit carries its own embedded id and the two must agree.
func (s *SeriesService) Edit(ctx context.Context, id int64, edit SeriesEdit, actor auth.Identity) error {
	series, err := s.store.Find(ctx, id)
	if err != nil {
		return apperrors.Unknown(err)
	}
	if err := series.ApplyEdit(edit, actor); err != nil {
		return err
	}
	if err := s.store.Update(ctx, series); err != nil {
		return apperrors.Unknown(err)
	}
	return nil
}

// SeasonService orchestrates the season lifecycle.
type SeasonService struct {
	store SeasonStore
}

// NewSeasonService constructs a SeasonService.
func NewSeasonService(store SeasonStore) *SeasonService {
	return &SeasonService{store: store}
}

// Create builds and persists a new season, returning its assigned id.
func (s *SeasonService) Create(ctx context.Context, draft SeasonDraft, actor auth.Identity) (int64, error) {
	season, err := NewSeason(draft, actor)
	if err != nil {
		return 0, err
	}
	id, err := s.store.Insert(ctx, season)
	if err != nil {
		return 0, apperrors.Unknown(err)
	}
	return id, nil
}

// ListBySeries returns the seasons of a series.
func (s *SeasonService) ListBySeries(ctx context.Context, seriesID int64) ([]Season, error) {
	seasons, err := s.store.ListBySeries(ctx, seriesID)
	if err != nil {
		return nil, apperrors.Unknown(err)
	}
	return seasons, nil
}

// LastSequence returns the highest season sequence for a series, or zero
// when it has no seasons yet.
func (s *SeasonService) LastSequence(ctx context.Context, seriesID int64) (int32, error) {
	last, err := s.store.LastSequence(ctx, seriesID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return 0, nil
		}
		return 0, apperrors.Unknown(err)
	}
	return last, nil
}

// Edit runs fetch-modify-validate-persist for a season.
func (s *SeasonService) Edit(ctx context.Context, id int64, edit SeasonEdit, actor auth.Identity) error {
	season, err := s.store.Find(ctx, id)
	if err != nil {
		return apperrors.Unknown(err)
	}
	if err := season.ApplyEdit(edit, actor); err != nil {
		return err
	}
	if err := s.store.Update(ctx, season); err != nil {
		return apperrors.Unknown(err)
	}
	return nil
}

// SourceService orchestrates the source lifecycle.
type SourceService struct {
	store SourceStore
}

// NewSourceService constructs a SourceService.
func NewSourceService(store SourceStore) *SourceService {
	return &SourceService{store: store}
}

// Create builds and persists a new source, returning its assigned id.
func (s *SourceService) Create(ctx context.Context, draft SourceDraft, actor auth.Identity) (int64, error) {
	source, err := NewSource(draft, actor)
	if err != nil {
		return 0, err
	}
	id, err := s.store.Insert(ctx, source)
	if err != nil {
		return 0, apperrors.Unknown(err)
	}
	return id, nil
}

// Get fetches a source by id.
func (s *SourceService) Get(ctx context.Context, id int64) (*Source, error) {
	source, err := s.store.Find(ctx, id)
	if err != nil {
		return nil, apperrors.Unknown(err)
	}
	return source, nil
}

// Search runs a filtered query.
func (s *SourceService) Search(ctx context.Context, filter SourceFilter) ([]Source, error) {
	result, err := s.store.Search(ctx, filter)
	if err != nil {
		return nil, apperrors.Unknown(err)
	}
	return result, nil
}

// ListBySeason returns the sources that have episodes in a season.
func (s *SourceService) ListBySeason(ctx context.Context, seasonID int64) ([]Source, error) {
	sources, err := s.store.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, apperrors.Unknown(err)
	}
	return sources, nil
}

// Edit runs fetch-modify-validate-persist for a source.
func (s *SourceService) Edit(ctx context.Context, id int64, edit SourceEdit, actor auth.Identity) error {
	source, err := s.store.Find(ctx, id)
	if err != nil {
		return apperrors.Unknown(err)
	}
	if err := source.ApplyEdit(edit, actor); err != nil {
		return err
	}
	if err := s.store.Update(ctx, source); err != nil {
		return apperrors.Unknown(err)
	}
	return nil
}

// EpisodeService orchestrates the episode lifecycle, including external
// media resolution on update.
type EpisodeService struct {
	store EpisodeStore
	media MediaResolver
}

// NewEpisodeService constructs an EpisodeService.
func NewEpisodeService(store EpisodeStore, media MediaResolver) *EpisodeService {
	return &EpisodeService{store: store, media: media}
}

// Create builds and persists a new episode, returning its generated id and
// derived content name.
func (s *EpisodeService) Create(ctx context.Context, draft EpisodeDraft, actor auth.Identity) (id, name string, err error) {
	episode, err := NewEpisode(draft, actor)
	if err != nil {
		return "", "", err
	}
	if err := s.store.Insert(ctx, episode); err != nil {
		return "", "", apperrors.Unknown(err)
	}
	return episode.ID, episode.Name, nil
}

// Update runs fetch-modify-validate-persist for an episode. The episode is
// persisted only after any required media lookup succeeded.
func (s *EpisodeService) Update(ctx context.Context, id string, update EpisodeUpdate, actor auth.Identity) error {
	episode, err := s.store.Find(ctx, id)
	if err != nil {
		return apperrors.Unknown(err)
	}
	if err := episode.ApplyUpdate(ctx, update, actor, s.media); err != nil {
		return err
	}
	if err := s.store.Update(ctx, episode); err != nil {
		return apperrors.Unknown(err)
	}
	return nil
}

// ListBySeasonAndSource returns the episodes for one season/source pair.
func (s *EpisodeService) ListBySeasonAndSource(ctx context.Context, seasonID, sourceID int64) ([]Episode, error) {
	episodes, err := s.store.ListBySeasonAndSource(ctx, seasonID, sourceID)
	if err != nil {
		return nil, apperrors.Unknown(err)
	}
	return episodes, nil
}
