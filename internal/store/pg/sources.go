package pg

import (
	"context"
	"database/sql"
	"errors"

	"anidex.org/internal/apperrors"
	"anidex.org/internal/catalog"
	"anidex.org/internal/query"
)

// SourceStore persists source rows.
type SourceStore struct {
	db *sql.DB
}

var _ catalog.SourceStore = (*SourceStore)(nil)

func (s *SourceStore) Insert(ctx context.Context, source *catalog.Source) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		insert into sources(name, kind, priority)
		values ($1, $2, $3)
		returning id
	`, source.Name, int64(source.Kind.Bits()), source.Priority).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *SourceStore) Find(ctx context.Context, id int64) (*catalog.Source, error) {
	row := s.db.QueryRowContext(ctx, `
		select id, name, kind, priority from sources where id = $1
	`, id)
	source, err := scanSource(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return source, nil
}

func (s *SourceStore) Search(ctx context.Context, filter catalog.SourceFilter) ([]catalog.Source, error) {
	b := query.New()
	if filter.KindBits != nil {
		b.Eq("kind", int64(*filter.KindBits))
	}
	if filter.Name != nil {
		b.Contains("name", *filter.Name)
	}
	if filter.Priority != nil {
		b.Eq("priority", *filter.Priority)
	}
	clause, args := b.Clause()

	rows, err := s.db.QueryContext(ctx, `select id, name, kind, priority from sources`+clause, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSources(rows)
}

// ListBySeason reaches sources through the episodes that link them to the
// season: a source with no episodes there does not show up.
func (s *SourceStore) ListBySeason(ctx context.Context, seasonID int64) ([]catalog.Source, error) {
	rows, err := s.db.QueryContext(ctx, `
		select s.id, s.name, s.kind, s.priority
		from episodes e
		join sources s on e.source_id = s.id
		where e.season_id = $1
		group by s.id, s.name, s.kind, s.priority
	`, seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSources(rows)
}

func (s *SourceStore) Update(ctx context.Context, source *catalog.Source) error {
	res, err := s.db.ExecContext(ctx, `
		update sources set name = $2, kind = $3, priority = $4 where id = $1
	`, source.ID, source.Name, int64(source.Kind.Bits()), source.Priority)
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

func scanSource(row rowScanner) (*catalog.Source, error) {
	var source catalog.Source
	var kind int64
	if err := row.Scan(&source.ID, &source.Name, &kind, &source.Priority); err != nil {
		return nil, err
	}
	decoded, err := catalog.SourceKindFromBits(uint64(kind))
	if err != nil {
		return nil, err
	}
	source.Kind = decoded
	return &source, nil
}

func collectSources(rows *sql.Rows) ([]catalog.Source, error) {
	var result []catalog.Source
	for rows.Next() {
		source, err := scanSource(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *source)
	}
	return result, rows.Err()
}
