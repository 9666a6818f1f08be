package catalog

import "context"

// SeriesFilter is a sparse search filter: nil means "no constraint on this
// attribute", never "match empty".
type SeriesFilter struct {
	Title             *string
	Synopsis          *string
	IsNSFW            *bool
	GenreBits         *uint64
	StartReleaseEpoch *int64
	EndReleaseEpoch   *int64
}

// SourceFilter is the sparse search filter for sources.
type SourceFilter struct {
	Name     *string
	KindBits *uint64
	Priority *int32
}

// SeriesStore persists series.
type SeriesStore interface {
	Insert(ctx context.Context, series *Series) (int64, error)
	Find(ctx context.Context, id int64) (*Series, error)
	Search(ctx context.Context, filter SeriesFilter) ([]Series, error)
	Update(ctx context.Context, series *Series) error
}

// SeasonStore persists seasons.
type SeasonStore interface {
	Insert(ctx context.Context, season *Season) (int64, error)
	Find(ctx context.Context, id int64) (*Season, error)
	ListBySeries(ctx context.Context, seriesID int64) ([]Season, error)
	// LastSequence returns ErrNotFound when the series has no seasons.
	LastSequence(ctx context.Context, seriesID int64) (int32, error)
	Update(ctx context.Context, season *Season) error
}

// SourceStore persists sources.
type SourceStore interface {
	Insert(ctx context.Context, source *Source) (int64, error)
	Find(ctx context.Context, id int64) (*Source, error)
	Search(ctx context.Context, filter SourceFilter) ([]Source, error)
	ListBySeason(ctx context.Context, seasonID int64) ([]Source, error)
	Update(ctx context.Context, source *Source) error
}

// EpisodeStore persists episodes.
type EpisodeStore interface {
	Insert(ctx context.Context, episode *Episode) error
	Find(ctx context.Context, id string) (*Episode, error)
	ListBySeasonAndSource(ctx context.Context, seasonID, sourceID int64) ([]Episode, error)
	Update(ctx context.Context, episode *Episode) error
}
