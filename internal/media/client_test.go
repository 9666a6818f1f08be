package media

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anidex.org/internal/apperrors"
)

func TestMediaID(t *testing.T) {
	c := NewClient()

	id, err := c.MediaID("https://open.lbry.com/@chan:7/ep-01:f")
	require.NoError(t, err)
	assert.Equal(t, "@chan:7/ep-01:f", id)

	for _, url := range []string{
		"https://example.com/@chan:7/ep-01:f",
		"https://open.lbry.com/",
		"",
	} {
		_, err := c.MediaID(url)
		require.Error(t, err, "url %q", url)
		assert.Equal(t, apperrors.KindInvalidData, apperrors.KindOf(err))
	}
}

func TestFileName(t *testing.T) {
	const page = `<html><head>
<script type="application/ld+json">{"@type":"VideoObject","contentUrl":"https://player.odycdn.com/v6/streams/abc/ep-01.mp4"}</script>
</head><body></body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/@chan:7/ep-01:f", r.URL.Path)
		fmt.Fprint(w, page)
	}))
	defer srv.Close()

	c := NewClient(WithBases("share://", srv.URL+"/"))
	name, err := c.FileName(context.Background(), "@chan:7/ep-01:f")
	require.NoError(t, err)
	assert.Equal(t, "https://player.odycdn.com/v6/streams/abc/ep-01.mp4", name)
}

func TestFileNameFailures(t *testing.T) {
	tests := []struct {
		name string
		page string
		code int
	}{
		{name: "no structured data", page: "<html></html>", code: http.StatusOK},
		{name: "garbage json", page: `<script type="application/ld+json">{nope</script>`, code: http.StatusOK},
		{name: "missing contentUrl", page: `<script type="application/ld+json">{"name":"x"}</script>`, code: http.StatusOK},
		{name: "not found", page: "", code: http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.code)
				fmt.Fprint(w, tc.page)
			}))
			defer srv.Close()

			c := NewClient(WithBases("share://", srv.URL+"/"))
			_, err := c.FileName(context.Background(), "some-id")
			require.Error(t, err)
			assert.Equal(t, apperrors.KindUnknown, apperrors.KindOf(err))
			// Callers see the generic message, not host internals.
			assert.Equal(t, "media lookup failed", err.Error())
		})
	}
}

func TestFileNameMultilineBlock(t *testing.T) {
	const page = "<script type=\"application/ld+json\">\n{\n  \"contentUrl\": \"https://cdn.example/f.mp4\"\n}\n</script>"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, page)
	}))
	defer srv.Close()

	c := NewClient(WithBases("share://", srv.URL+"/"))
	name, err := c.FileName(context.Background(), "id")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/f.mp4", name)
}
