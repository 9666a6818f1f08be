package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitlesCodecRoundTrip(t *testing.T) {
	titles := []Title{
		{Name: "Shingeki no Kyojin", Type: TitleTypeRomaji, IsMain: true},
		{Name: "Attack on Titan", Type: TitleTypeEnglish},
	}

	blob, err := EncodeTitles(titles)
	require.NoError(t, err)
	assert.Contains(t, blob, `"title_type"`)

	decoded, err := DecodeTitles(blob)
	require.NoError(t, err)
	assert.Equal(t, titles, decoded)
}

func TestListRefsCodecRoundTrip(t *testing.T) {
	refs := []ListRef{
		{Provider: ListMyAnimeList, ExternalID: "16498"},
		{Provider: ListAniList, ExternalID: "53390"},
	}

	blob, err := EncodeListRefs(refs)
	require.NoError(t, err)

	decoded, err := DecodeListRefs(blob)
	require.NoError(t, err)
	assert.Equal(t, refs, decoded)
}

func TestDecodeTitlesRejectsGarbage(t *testing.T) {
	_, err := DecodeTitles("{not json")
	assert.Error(t, err)
}
