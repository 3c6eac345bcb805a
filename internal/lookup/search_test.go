package lookup

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const sampleResponse = `{
	"resultCount": 3,
	"results": [
		{
			"wrapperType": "track",
			"kind": "song",
			"trackName": "Dreams",
			"artistName": "Fleetwood Mac",
			"collectionName": "Rumours",
			"artworkUrl100": "https://example.com/art/100x100bb.jpg",
			"releaseDate": "1977-02-04T12:00:00Z"
		},
		{
			"wrapperType": "track",
			"kind": "song",
			"trackName": "Lonely Single",
			"artistName": "Some Artist",
			"collectionName": "",
			"artworkUrl60": "https://example.com/art2/60x60bb.jpg"
		},
		{
			"wrapperType": "collection",
			"kind": "",
			"trackName": "",
			"artistName": "Fleetwood Mac",
			"collectionName": "Rumours"
		}
	]
}`

func TestSearch_MapsResults(t *testing.T) {
	var gotQuery atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery.Store(r.URL.Query())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleResponse))
	}))
	defer server.Close()

	client := NewClient(server.URL, testLogger())
	results := client.Search(context.Background(), "dreams")

	require.Len(t, results, 2)

	assert.Equal(t, "Dreams", results[0].Song)
	assert.Equal(t, "Fleetwood Mac", results[0].Artist)
	assert.Equal(t, "Rumours", results[0].Album)
	assert.Equal(t, "https://example.com/art/600x600bb.jpg", results[0].Artwork)
	assert.Equal(t, 1977, results[0].Year)

	// Missing album falls back to "Single"; 60px artwork still gets upsized.
	assert.Equal(t, "Single", results[1].Album)
	assert.Equal(t, "https://example.com/art2/600x600bb.jpg", results[1].Artwork)
	assert.Zero(t, results[1].Year)

	query, ok := gotQuery.Load().(url.Values)
	require.True(t, ok)
	assert.Equal(t, "dreams", query.Get("term"))
	assert.Equal(t, "music", query.Get("media"))
	assert.Equal(t, "song", query.Get("entity"))
	assert.Equal(t, "10", query.Get("limit"))
}

func TestSearch_ShortQuerySkipsAPICall(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	client := NewClient(server.URL, testLogger())

	for _, query := range []string{"", "a", " a ", "  "} {
		results := client.Search(context.Background(), query)
		assert.NotNil(t, results)
		assert.Empty(t, results)
	}
	assert.Zero(t, calls.Load())
}

func TestSearch_UpstreamErrorAbsorbed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway timeout", http.StatusGatewayTimeout)
	}))
	defer server.Close()

	client := NewClient(server.URL, testLogger())
	results := client.Search(context.Background(), "dreams")

	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestSearch_MalformedResponseAbsorbed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(server.URL, testLogger())
	results := client.Search(context.Background(), "dreams")

	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestUpsizeArtworkURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"thumbnail", "https://example.com/a/100x100bb.jpg", "https://example.com/a/600x600bb.jpg"},
		{"small", "https://example.com/a/60x60bb.jpg", "https://example.com/a/600x600bb.jpg"},
		{"no size suffix", "https://example.com/a/cover.jpg", "https://example.com/a/cover.jpg"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UpsizeArtworkURL(tt.in))
		})
	}
}
