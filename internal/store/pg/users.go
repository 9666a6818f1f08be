package pg

import (
	"context"
	"database/sql"
	"errors"

	"anidex.org/internal/apperrors"
	"anidex.org/internal/auth"
)

// UserStore persists identities. Roles are stored as their numeric ordinal
// and decoded through the role vocabulary on the way out, so an unknown
// ordinal in the table surfaces as an error instead of a silent downgrade.
type UserStore struct {
	db *sql.DB
}

var _ auth.UserStore = (*UserStore)(nil)

func (s *UserStore) Create(ctx context.Context, identity auth.Identity) error {
	_, err := s.db.ExecContext(ctx, `
		insert into users(id, display_name, role)
		values ($1, $2, $3)
	`, identity.ID, identity.DisplayName, int16(identity.Role))
	return err
}

func (s *UserStore) Find(ctx context.Context, id string) (auth.Identity, error) {
	row := s.db.QueryRowContext(ctx, `
		select id, display_name, role, coalesce(recovery_key, '')
		from users where id = $1
	`, id)
	return scanIdentity(row)
}

func (s *UserStore) SetRecoveryKey(ctx context.Context, id, key string) error {
	res, err := s.db.ExecContext(ctx, `
		update users set recovery_key = $2 where id = $1
	`, id, key)
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

func (s *UserStore) FindByRecoveryKey(ctx context.Context, key string) (auth.Identity, error) {
	row := s.db.QueryRowContext(ctx, `
		select id, display_name, role, coalesce(recovery_key, '')
		from users where recovery_key = $1
	`, key)
	return scanIdentity(row)
}

func scanIdentity(row *sql.Row) (auth.Identity, error) {
	var identity auth.Identity
	var role int
	err := row.Scan(&identity.ID, &identity.DisplayName, &role, &identity.RecoveryKey)
	if errors.Is(err, sql.ErrNoRows) {
		return auth.Identity{}, apperrors.ErrNotFound
	}
	if err != nil {
		return auth.Identity{}, err
	}
	identity.Role, err = auth.RoleFromOrdinal(role)
	if err != nil {
		return auth.Identity{}, err
	}
	return identity, nil
}
