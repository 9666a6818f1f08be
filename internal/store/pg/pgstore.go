// Package pg implements the persistence interfaces on PostgreSQL through
// database/sql with the pgx stdlib driver.
package pg

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type Store struct {
	db *sql.DB
}

func Open(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	// Tuned pool defaults; adjust under load tests
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(15 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return &Store{db: db}, nil
}

// NewStore wraps an existing handle, mainly for tests.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) DB() *sql.DB { return s.db }

// Ping verifies connectivity for readiness probes.
func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

// Users returns the identity store view.
func (s *Store) Users() *UserStore { return &UserStore{db: s.db} }

// Series returns the series store view.
func (s *Store) Series() *SeriesStore { return &SeriesStore{db: s.db} }

// Seasons returns the season store view.
func (s *Store) Seasons() *SeasonStore { return &SeasonStore{db: s.db} }

// Sources returns the source store view.
func (s *Store) Sources() *SourceStore { return &SourceStore{db: s.db} }

// Episodes returns the episode store view.
func (s *Store) Episodes() *EpisodeStore { return &EpisodeStore{db: s.db} }
