package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anidex.org/internal/apperrors"
)

func TestGenreFromBits(t *testing.T) {
	g, err := GenreFromBits(0)
	require.NoError(t, err)
	assert.Equal(t, GenreNone, g)

	g, err = GenreFromBits((GenreAction | GenreSciFi).Bits())
	require.NoError(t, err)
	assert.True(t, g.Has(GenreAction))
	assert.True(t, g.Has(GenreSciFi))
	assert.False(t, g.Has(GenreComedy))

	_, err = GenreFromBits(uint64(GenreHentai) << 1)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidData, apperrors.KindOf(err))

	// One known bit plus one unknown bit must still fail, not be masked.
	_, err = GenreFromBits(GenreAction.Bits() | uint64(GenreHentai)<<3)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidData, apperrors.KindOf(err))
}

func TestSourceKindFromBits(t *testing.T) {
	k, err := SourceKindFromBits((SourceRaw | SourceEnglishSub).Bits())
	require.NoError(t, err)
	assert.Equal(t, SourceRaw|SourceEnglishSub, k)

	_, err = SourceKindFromBits(1 << 10)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidData, apperrors.KindOf(err))

	k, err = SourceKindFromBits(0)
	require.NoError(t, err)
	assert.Equal(t, SourceKindNone, k)
}

func TestTitleTypeFromInt(t *testing.T) {
	tt, err := TitleTypeFromInt(1)
	require.NoError(t, err)
	assert.Equal(t, TitleTypeEnglish, tt)

	_, err = TitleTypeFromInt(9)
	assert.Equal(t, apperrors.KindInvalidData, apperrors.KindOf(err))

	_, err = ListProviderFromInt(-1)
	assert.Equal(t, apperrors.KindInvalidData, apperrors.KindOf(err))
}
