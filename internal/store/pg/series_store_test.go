package pg

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"anidex.org/internal/apperrors"
	"anidex.org/internal/catalog"
)

func newMock(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(db), mock
}

func seriesRow(id int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "titles", "title_search", "synopsis", "thumbnail_id", "banner_id",
		"is_hidden", "is_nsfw", "created_by", "created_at", "genre", "release_date", "lists",
	}).AddRow(
		id,
		`[{"name":"Mononoke","title_type":0,"is_main":true}]`,
		"Mononoke", "A medicine seller.", nil, nil,
		false, false, "admin-1", time.Now().UTC(), int64(32),
		time.Date(2007, 7, 12, 0, 0, 0, 0, time.UTC),
		`[{"list":0,"id_in_list":"2246"}]`,
	)
}

func TestSeriesStoreFind(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery("select id, titles, .* from series where id = \\$1").
		WithArgs(int64(7)).
		WillReturnRows(seriesRow(7))

	series, err := store.Series().Find(context.Background(), 7)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if series.ID != 7 || len(series.Titles) != 1 || !series.Genre.Has(catalog.GenreDrama) {
		t.Fatalf("unexpected series: %+v", series)
	}
	if len(series.Lists) != 1 || series.Lists[0].ExternalID != "2246" {
		t.Fatalf("unexpected lists: %+v", series.Lists)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSeriesStoreFindMissing(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery("select id, titles, .* from series where id = \\$1").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := store.Series().Find(context.Background(), 99)
	if !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSeriesStoreSearchEmptyFilterHasNoWhere(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery("from series$").
		WillReturnRows(seriesRow(1))

	result, err := store.Series().Search(context.Background(), catalog.SeriesFilter{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("expected 1 row, got %d", len(result))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSeriesStoreSearchFilterOrder(t *testing.T) {
	store, mock := newMock(t)

	title := "mono"
	nsfw := false
	start := int64(1180000000)

	mock.ExpectQuery(`from series where title_search like \$1 and is_nsfw = \$2 and release_date >= \$3$`).
		WithArgs("%mono%", false, sqlmock.AnyArg()).
		WillReturnRows(seriesRow(1))

	_, err := store.Series().Search(context.Background(), catalog.SeriesFilter{
		Title:             &title,
		IsNSFW:            &nsfw,
		StartReleaseEpoch: &start,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSeriesStoreSearchBadEpoch(t *testing.T) {
	store, _ := newMock(t)

	bad := int64(1) << 62
	_, err := store.Series().Search(context.Background(), catalog.SeriesFilter{StartReleaseEpoch: &bad})
	if apperrors.KindOf(err) != apperrors.KindInvalidData {
		t.Fatalf("expected invalid data, got %v", err)
	}
}

func TestSeriesStoreUpdateMissing(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectExec("update series").
		WillReturnResult(sqlmock.NewResult(0, 0))

	series := &catalog.Series{
		ID:     42,
		Titles: []catalog.Title{{Name: "X", IsMain: true}},
		Lists:  []catalog.ListRef{{ExternalID: "1"}},
	}
	err := store.Series().Update(context.Background(), series)
	if !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
