package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anidex.org/internal/apperrors"
	"anidex.org/internal/auth"
)

func adminActor() auth.Identity {
	return auth.Identity{ID: "admin-1", DisplayName: "Keiko", Role: auth.RoleAdmin}
}

func validSeriesDraft() SeriesDraft {
	return SeriesDraft{
		Titles: []TitleDraft{
			{Name: "Hagane no Renkinjutsushi", Type: 0, IsMain: true},
			{Name: "Fullmetal Alchemist", Type: 1},
		},
		Synopsis:         "Two brothers search for a way back.",
		GenreBits:        (GenreAction | GenreAdventure).Bits(),
		ReleaseDateEpoch: time.Date(2009, 4, 5, 0, 0, 0, 0, time.UTC).Unix(),
		Lists:            []ListRefDraft{{Provider: 0, ExternalID: "5114"}},
	}
}

func TestNewSeries(t *testing.T) {
	actor := adminActor()
	series, err := NewSeries(validSeriesDraft(), actor)
	require.NoError(t, err)

	assert.Zero(t, series.ID)
	assert.Equal(t, "Hagane no Renkinjutsushi_Fullmetal Alchemist", series.TitleSearch)
	assert.Equal(t, actor.ID, series.CreatedBy)
	assert.False(t, series.CreatedAt.IsZero())
	assert.True(t, series.Genre.Has(GenreAdventure))
	assert.Equal(t, 2009, series.ReleaseDate.Year())
}

func TestNewSeriesRejectsNonAdmin(t *testing.T) {
	for _, role := range []auth.Role{auth.RoleUploader, auth.RoleUser} {
		actor := auth.Identity{ID: "u-1", DisplayName: "Nora", Role: role}
		_, err := NewSeries(validSeriesDraft(), actor)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized, "role %s", role)
	}
}

func TestNewSeriesValidation(t *testing.T) {
	t.Run("no main title", func(t *testing.T) {
		draft := validSeriesDraft()
		draft.Titles = []TitleDraft{
			{Name: "One", Type: 0},
			{Name: "Two", Type: 1},
		}
		_, err := NewSeries(draft, adminActor())
		require.Error(t, err)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
		assert.Contains(t, err.Error(), "main")
	})

	t.Run("empty titles", func(t *testing.T) {
		draft := validSeriesDraft()
		draft.Titles = nil
		_, err := NewSeries(draft, adminActor())
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	})

	t.Run("unknown genre bit", func(t *testing.T) {
		draft := validSeriesDraft()
		draft.GenreBits = 1 << 40
		_, err := NewSeries(draft, adminActor())
		assert.Equal(t, apperrors.KindInvalidData, apperrors.KindOf(err))
	})

	t.Run("release date out of range", func(t *testing.T) {
		draft := validSeriesDraft()
		draft.ReleaseDateEpoch = 1 << 62
		_, err := NewSeries(draft, adminActor())
		assert.Equal(t, apperrors.KindInvalidData, apperrors.KindOf(err))
	})

	t.Run("violations aggregate", func(t *testing.T) {
		draft := validSeriesDraft()
		draft.Titles = []TitleDraft{{Name: "One", Type: 0}}
		draft.Synopsis = ""
		_, err := NewSeries(draft, adminActor())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "main")
		assert.Contains(t, err.Error(), "synopsis")
	})
}

func TestSeriesApplyEdit(t *testing.T) {
	actor := adminActor()
	series, err := NewSeries(validSeriesDraft(), actor)
	require.NoError(t, err)
	series.ID = 5
	series.IsHidden = true

	edit := SeriesEdit{
		ID: 5,
		Titles: []TitleDraft{
			{Name: "Renamed", Type: 1, IsMain: true},
		},
		Synopsis:         "Rewritten synopsis.",
		GenreBits:        GenreDrama.Bits(),
		ReleaseDateEpoch: series.ReleaseDate.Unix(),
		Lists:            []ListRefDraft{{Provider: 1, ExternalID: "5114"}},
	}
	require.NoError(t, series.ApplyEdit(edit, actor))

	assert.Equal(t, "Renamed", series.TitleSearch)
	assert.Equal(t, GenreDrama, series.Genre)
	// Fields absent from the edit schema survive unchanged.
	assert.True(t, series.IsHidden)
	assert.Equal(t, actor.ID, series.CreatedBy)
}

func TestSeriesApplyEditIDMismatch(t *testing.T) {
	actor := adminActor()
	series, err := NewSeries(validSeriesDraft(), actor)
	require.NoError(t, err)
	series.ID = 5

	before := *series
	edit := SeriesEdit{ID: 6, Titles: []TitleDraft{{Name: "X", IsMain: true}}, Synopsis: "s",
		GenreBits: GenreDrama.Bits(), Lists: []ListRefDraft{{ExternalID: "1"}}}
	err = series.ApplyEdit(edit, actor)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	assert.Equal(t, before.TitleSearch, series.TitleSearch)
	assert.Equal(t, before.Synopsis, series.Synopsis)
}

func TestSeriesApplyEditUnpersisted(t *testing.T) {
	actor := adminActor()
	series, err := NewSeries(validSeriesDraft(), actor)
	require.NoError(t, err)

	err = series.ApplyEdit(SeriesEdit{ID: 0}, actor)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnknown, apperrors.KindOf(err))
}
