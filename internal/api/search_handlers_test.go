package api

import (
	"encoding/json/v2"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fakeCatalogResponse = `{
	"resultCount": 2,
	"results": [
		{
			"wrapperType": "track",
			"kind": "song",
			"trackName": "Dreams",
			"artistName": "Fleetwood Mac",
			"collectionName": "Rumours",
			"artworkUrl100": "https://example.com/art/100x100bb.jpg"
		},
		{
			"wrapperType": "track",
			"kind": "song",
			"trackName": "Dreams",
			"artistName": "The Cranberries",
			"artworkUrl100": "https://example.com/cran/100x100bb.jpg"
		}
	]
}`

func TestSearchSongs(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "dreams", r.URL.Query().Get("term"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(fakeCatalogResponse))
	}))
	defer upstream.Close()

	ts := newTestServer(t, upstream.URL)

	resp := ts.api.Get("/api/v1/search?q=dreams")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[SearchSongsResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	require.Equal(t, 2, envelope.Data.Count)
	assert.Equal(t, "Fleetwood Mac", envelope.Data.Results[0].Artist)
	assert.Equal(t, "Rumours", envelope.Data.Results[0].Album)
	// No album in the catalog reads as a single, artwork is upsized.
	assert.Equal(t, "Single", envelope.Data.Results[1].Album)
	assert.Equal(t, "https://example.com/cran/600x600bb.jpg", envelope.Data.Results[1].Artwork)
}

func TestSearchSongs_ShortQuery(t *testing.T) {
	called := false
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))
	defer upstream.Close()

	ts := newTestServer(t, upstream.URL)

	resp := ts.api.Get("/api/v1/search?q=d")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[SearchSongsResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.Equal(t, 0, envelope.Data.Count)
	assert.False(t, called, "short queries must not hit the catalog")
}

func TestSearchSongs_UpstreamFailureReturnsEmpty(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	ts := newTestServer(t, upstream.URL)

	// Lookup failures are absorbed so fans can fall back to free text.
	resp := ts.api.Get("/api/v1/search?q=dreams")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[SearchSongsResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, 0, envelope.Data.Count)
}
