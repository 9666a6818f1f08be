package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anidex.org/internal/apperrors"
)

func TestEmptyBuilderMatchesAllRows(t *testing.T) {
	clause, args := New().Clause()
	assert.Empty(t, clause)
	assert.Nil(t, args)
	assert.True(t, New().Empty())
}

func TestContainsWrapsBothSides(t *testing.T) {
	clause, args := New().Contains("title_search", "Na").Clause()
	assert.Equal(t, " where title_search like $1", clause)
	require.Len(t, args, 1)
	assert.Equal(t, "%Na%", args[0])
}

func TestRangeBoundsAreIndependent(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)

	clause, args := New().GTE("release_date", start).LTE("release_date", end).Clause()
	assert.Equal(t, " where release_date >= $1 and release_date <= $2", clause)
	assert.Equal(t, []any{start, end}, args)

	clause, args = New().GTE("release_date", start).Clause()
	assert.Equal(t, " where release_date >= $1", clause)
	assert.Equal(t, []any{start}, args)
}

func TestClauseOrderIsDeterministic(t *testing.T) {
	build := func() (string, []any) {
		return New().
			Contains("title_search", "Na").
			Eq("is_nsfw", false).
			Eq("genre", int64(3)).
			Clause()
	}
	firstClause, firstArgs := build()
	secondClause, secondArgs := build()
	assert.Equal(t, firstClause, secondClause)
	assert.Equal(t, firstArgs, secondArgs)
	assert.Equal(t, " where title_search like $1 and is_nsfw = $2 and genre = $3", firstClause)
}

func TestTimeFromEpoch(t *testing.T) {
	got, err := TimeFromEpoch(0)
	require.NoError(t, err)
	assert.Equal(t, time.Unix(0, 0).UTC(), got)

	_, err = TimeFromEpoch(1 << 60)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidData, apperrors.KindOf(err))

	_, err = TimeFromEpoch(-1 << 60)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidData, apperrors.KindOf(err))
}
