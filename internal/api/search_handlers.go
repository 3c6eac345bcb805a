package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/arohamusic/encore-server/internal/lookup"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchSongs",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search songs",
		Description: "Looks up songs in the iTunes catalog. Lookup failures return an empty result set so the fan can still submit free text.",
		Tags:        []string{"Search"},
	}, s.handleSearchSongs)
}

// === DTOs ===

// SearchSongsInput contains the search query.
type SearchSongsInput struct {
	Query string `query:"q" doc:"Search terms; queries under two characters return nothing"`
}

// SearchSongsResponse contains catalog matches.
type SearchSongsResponse struct {
	Results []lookup.SongResult `json:"results" doc:"Matching songs"`
	Count   int                 `json:"count" doc:"Number of results returned"`
}

// SearchSongsOutput wraps the search response for Huma.
type SearchSongsOutput struct {
	Body SearchSongsResponse
}

// === Handlers ===

func (s *Server) handleSearchSongs(ctx context.Context, input *SearchSongsInput) (*SearchSongsOutput, error) {
	results := s.services.Lookup.Search(ctx, input.Query)

	return &SearchSongsOutput{
		Body: SearchSongsResponse{
			Results: results,
			Count:   len(results),
		},
	}, nil
}
