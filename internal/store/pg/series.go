package pg

import (
	"context"
	"database/sql"
	"errors"

	"anidex.org/internal/apperrors"
	"anidex.org/internal/catalog"
	"anidex.org/internal/query"
)

const seriesColumns = `id, titles, title_search, synopsis, thumbnail_id, banner_id,
		is_hidden, is_nsfw, created_by, created_at, genre, release_date, lists`

// SeriesStore persists series rows. Titles and list references live in the
// row as serialized blobs.
type SeriesStore struct {
	db *sql.DB
}

var _ catalog.SeriesStore = (*SeriesStore)(nil)

func (s *SeriesStore) Insert(ctx context.Context, series *catalog.Series) (int64, error) {
	titles, err := catalog.EncodeTitles(series.Titles)
	if err != nil {
		return 0, err
	}
	lists, err := catalog.EncodeListRefs(series.Lists)
	if err != nil {
		return 0, err
	}

	var id int64
	err = s.db.QueryRowContext(ctx, `
		insert into series(titles, title_search, synopsis, thumbnail_id, banner_id,
			is_hidden, is_nsfw, created_by, created_at, genre, release_date, lists)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		returning id
	`, titles, series.TitleSearch, series.Synopsis, series.ThumbnailID, series.BannerID,
		series.IsHidden, series.IsNSFW, series.CreatedBy, series.CreatedAt,
		int64(series.Genre.Bits()), series.ReleaseDate, lists).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *SeriesStore) Find(ctx context.Context, id int64) (*catalog.Series, error) {
	row := s.db.QueryRowContext(ctx, `select `+seriesColumns+` from series where id = $1`, id)
	series, err := scanSeries(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return series, nil
}

func (s *SeriesStore) Search(ctx context.Context, filter catalog.SeriesFilter) ([]catalog.Series, error) {
	b := query.New()
	if filter.Title != nil {
		b.Contains("title_search", *filter.Title)
	}
	if filter.Synopsis != nil {
		b.Contains("synopsis", *filter.Synopsis)
	}
	if filter.IsNSFW != nil {
		b.Eq("is_nsfw", *filter.IsNSFW)
	}
	if filter.GenreBits != nil {
		b.Eq("genre", int64(*filter.GenreBits))
	}
	if filter.StartReleaseEpoch != nil {
		start, err := query.TimeFromEpoch(*filter.StartReleaseEpoch)
		if err != nil {
			return nil, err
		}
		b.GTE("release_date", start)
	}
	if filter.EndReleaseEpoch != nil {
		end, err := query.TimeFromEpoch(*filter.EndReleaseEpoch)
		if err != nil {
			return nil, err
		}
		b.LTE("release_date", end)
	}
	clause, args := b.Clause()

	rows, err := s.db.QueryContext(ctx, `select `+seriesColumns+` from series`+clause, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []catalog.Series
	for rows.Next() {
		series, err := scanSeries(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *series)
	}
	return result, rows.Err()
}

func (s *SeriesStore) Update(ctx context.Context, series *catalog.Series) error {
	titles, err := catalog.EncodeTitles(series.Titles)
	if err != nil {
		return err
	}
	lists, err := catalog.EncodeListRefs(series.Lists)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		update series
		set titles = $2, title_search = $3, synopsis = $4, thumbnail_id = $5,
			banner_id = $6, is_hidden = $7, is_nsfw = $8, genre = $9,
			release_date = $10, lists = $11
		where id = $1
	`, series.ID, titles, series.TitleSearch, series.Synopsis, series.ThumbnailID,
		series.BannerID, series.IsHidden, series.IsNSFW, int64(series.Genre.Bits()),
		series.ReleaseDate, lists)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSeries(row rowScanner) (*catalog.Series, error) {
	var series catalog.Series
	var titles, lists string
	var genre int64
	if err := row.Scan(&series.ID, &titles, &series.TitleSearch, &series.Synopsis,
		&series.ThumbnailID, &series.BannerID, &series.IsHidden, &series.IsNSFW,
		&series.CreatedBy, &series.CreatedAt, &genre, &series.ReleaseDate, &lists); err != nil {
		return nil, err
	}

	var err error
	if series.Titles, err = catalog.DecodeTitles(titles); err != nil {
		return nil, err
	}
	if series.Lists, err = catalog.DecodeListRefs(lists); err != nil {
		return nil, err
	}
	if series.Genre, err = catalog.GenreFromBits(uint64(genre)); err != nil {
		return nil, err
	}
	return &series, nil
}
