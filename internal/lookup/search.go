package lookup

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

const (
	defaultLimit = 10

	// minQueryLength is the shortest query worth sending upstream.
	// Shorter queries return far too much noise to be useful.
	minQueryLength = 2
)

// artworkSize is the size requested from iTunes in place of the
// thumbnail the API returns. iTunes serves the largest available size
// up to the requested one.
const artworkSize = "600x600bb.jpg"

// sizePattern matches iTunes artwork size patterns like "100x100bb.jpg"
var sizePattern = regexp.MustCompile(`/\d+x\d+bb\.jpg$`)

// UpsizeArtworkURL transforms an iTunes artwork URL from the thumbnail
// size to one suitable for the request cards.
func UpsizeArtworkURL(artworkURL string) string {
	if artworkURL == "" {
		return ""
	}
	return sizePattern.ReplaceAllString(artworkURL, "/"+artworkSize)
}

// Search looks up songs matching the query. Lookup problems never reach
// the fan: any upstream failure is logged and absorbed into an empty
// result list, leaving the free-text path available.
func (c *Client) Search(ctx context.Context, query string) []SongResult {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < minQueryLength {
		return []SongResult{}
	}

	results, err := c.search(ctx, query)
	if err != nil {
		c.logger.Warn("song lookup failed",
			"query", query,
			"error", err,
		)
		return []SongResult{}
	}
	return results
}

// search performs the actual API call.
func (c *Client) search(ctx context.Context, query string) ([]SongResult, error) {
	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	params := url.Values{}
	params.Set("term", query)
	params.Set("media", "music")
	params.Set("entity", "song")
	params.Set("limit", fmt.Sprintf("%d", defaultLimit))

	searchURL := c.baseURL + "?" + params.Encode()

	c.logger.Debug("searching iTunes",
		"query", query,
		"url", searchURL,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search failed: status %d", resp.StatusCode)
	}

	var searchResp searchResponse
	if err := json.UnmarshalRead(resp.Body, &searchResp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	c.logger.Debug("iTunes search results",
		"query", query,
		"count", searchResp.ResultCount,
	)

	results := make([]SongResult, 0, len(searchResp.Results))
	for i := range searchResp.Results {
		r := &searchResp.Results[i]
		// Only include songs
		if r.WrapperType != "track" || r.Kind != "song" {
			continue
		}

		album := r.CollectionName
		if album == "" {
			album = "Single"
		}

		artworkURL := r.ArtworkURL100
		if artworkURL == "" {
			artworkURL = r.ArtworkURL60
		}

		results = append(results, SongResult{
			Song:    r.TrackName,
			Artist:  r.ArtistName,
			Album:   album,
			Artwork: UpsizeArtworkURL(artworkURL),
			Year:    releaseYear(r.ReleaseDate),
		})
	}

	return results, nil
}

// releaseYear pulls the year out of an iTunes release date like
// "1977-02-04T12:00:00Z". Zero when absent or malformed.
func releaseYear(releaseDate string) int {
	if len(releaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(releaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}
