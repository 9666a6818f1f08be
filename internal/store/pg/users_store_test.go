package pg

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"anidex.org/internal/apperrors"
	"anidex.org/internal/auth"
)

func TestUserStoreFind(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery("select id, display_name, role, coalesce").
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "display_name", "role", "recovery_key"}).
			AddRow("u-1", "Keiko", 1, ""))

	identity, err := store.Users().Find(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if identity.Role != auth.RoleUploader {
		t.Fatalf("expected uploader, got %v", identity.Role)
	}
	if identity.RecoveryKey != "" {
		t.Fatalf("expected empty recovery key, got %q", identity.RecoveryKey)
	}
}

func TestUserStoreFindRejectsBadRoleOrdinal(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery("select id, display_name, role, coalesce").
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "display_name", "role", "recovery_key"}).
			AddRow("u-1", "Keiko", 9, ""))

	if _, err := store.Users().Find(context.Background(), "u-1"); err == nil {
		t.Fatal("expected error for unknown role ordinal")
	}
}

func TestUserStoreFindMissing(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery("select id, display_name, role, coalesce").
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	_, err := store.Users().Find(context.Background(), "nope")
	if !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUserStoreSetRecoveryKeyMissing(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectExec("update users set recovery_key").
		WithArgs("nope", "key").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.Users().SetRecoveryKey(context.Background(), "nope", "key")
	if !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSeasonStoreLastSequence(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery(`select max\(sequence\) from seasons`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(nil))

	_, err := store.Seasons().LastSequence(context.Background(), 3)
	if !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found for empty series, got %v", err)
	}

	mock.ExpectQuery(`select max\(sequence\) from seasons`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(4))

	last, err := store.Seasons().LastSequence(context.Background(), 3)
	if err != nil {
		t.Fatalf("LastSequence: %v", err)
	}
	if last != 4 {
		t.Fatalf("expected 4, got %d", last)
	}
}
