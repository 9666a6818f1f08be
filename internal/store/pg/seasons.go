package pg

import (
	"context"
	"database/sql"
	"errors"

	"anidex.org/internal/apperrors"
	"anidex.org/internal/catalog"
)

// SeasonStore persists season rows.
type SeasonStore struct {
	db *sql.DB
}

var _ catalog.SeasonStore = (*SeasonStore)(nil)

func (s *SeasonStore) Insert(ctx context.Context, season *catalog.Season) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		insert into seasons(name, cover_id, series_id, sequence)
		values ($1, $2, $3, $4)
		returning id
	`, season.Name, season.CoverID, season.SeriesID, season.Sequence).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *SeasonStore) Find(ctx context.Context, id int64) (*catalog.Season, error) {
	var season catalog.Season
	err := s.db.QueryRowContext(ctx, `
		select id, name, cover_id, series_id, sequence from seasons where id = $1
	`, id).Scan(&season.ID, &season.Name, &season.CoverID, &season.SeriesID, &season.Sequence)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &season, nil
}

func (s *SeasonStore) ListBySeries(ctx context.Context, seriesID int64) ([]catalog.Season, error) {
	rows, err := s.db.QueryContext(ctx, `
		select id, name, cover_id, series_id, sequence
		from seasons where series_id = $1
		order by sequence asc
	`, seriesID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []catalog.Season
	for rows.Next() {
		var season catalog.Season
		if err := rows.Scan(&season.ID, &season.Name, &season.CoverID, &season.SeriesID, &season.Sequence); err != nil {
			return nil, err
		}
		result = append(result, season)
	}
	return result, rows.Err()
}

func (s *SeasonStore) LastSequence(ctx context.Context, seriesID int64) (int32, error) {
	var last sql.NullInt32
	err := s.db.QueryRowContext(ctx, `
		select max(sequence) from seasons where series_id = $1
	`, seriesID).Scan(&last)
	if err != nil {
		return 0, err
	}
	// max over zero rows is null, not an empty result set.
	if !last.Valid {
		return 0, apperrors.ErrNotFound
	}
	return last.Int32, nil
}

func (s *SeasonStore) Update(ctx context.Context, season *catalog.Season) error {
	res, err := s.db.ExecContext(ctx, `
		update seasons set name = $2, cover_id = $3, sequence = $4 where id = $1
	`, season.ID, season.Name, season.CoverID, season.Sequence)
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
