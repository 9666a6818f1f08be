package pg

import (
	"context"
	"database/sql"
	"errors"

	"anidex.org/internal/apperrors"
	"anidex.org/internal/catalog"
)

const episodeColumns = `id, name, cover_id, season_id, source_id, media_id, file_name, is_nsfw, sequence`

// EpisodeStore persists episode rows.
type EpisodeStore struct {
	db *sql.DB
}

var _ catalog.EpisodeStore = (*EpisodeStore)(nil)

func (s *EpisodeStore) Insert(ctx context.Context, episode *catalog.Episode) error {
	_, err := s.db.ExecContext(ctx, `
		insert into episodes(id, name, cover_id, season_id, source_id, is_nsfw, sequence)
		values ($1, $2, $3, $4, $5, $6, $7)
	`, episode.ID, episode.Name, episode.CoverID, episode.SeasonID, episode.SourceID,
		episode.IsNSFW, episode.Sequence)
	return err
}

func (s *EpisodeStore) Find(ctx context.Context, id string) (*catalog.Episode, error) {
	row := s.db.QueryRowContext(ctx, `select `+episodeColumns+` from episodes where id = $1`, id)
	episode, err := scanEpisode(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return episode, nil
}

func (s *EpisodeStore) ListBySeasonAndSource(ctx context.Context, seasonID, sourceID int64) ([]catalog.Episode, error) {
	rows, err := s.db.QueryContext(ctx, `
		select `+episodeColumns+`
		from episodes
		where season_id = $1 and source_id = $2
		order by sequence asc
	`, seasonID, sourceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []catalog.Episode
	for rows.Next() {
		episode, err := scanEpisode(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *episode)
	}
	return result, rows.Err()
}

func (s *EpisodeStore) Update(ctx context.Context, episode *catalog.Episode) error {
	res, err := s.db.ExecContext(ctx, `
		update episodes
		set cover_id = $2, media_id = $3, file_name = $4, sequence = $5
		where id = $1
	`, episode.ID, episode.CoverID, episode.MediaID, episode.FileName, episode.Sequence)
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

func scanEpisode(row rowScanner) (*catalog.Episode, error) {
	var episode catalog.Episode
	if err := row.Scan(&episode.ID, &episode.Name, &episode.CoverID, &episode.SeasonID,
		&episode.SourceID, &episode.MediaID, &episode.FileName, &episode.IsNSFW,
		&episode.Sequence); err != nil {
		return nil, err
	}
	return &episode, nil
}
