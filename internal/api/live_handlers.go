package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/arohamusic/encore-server/internal/domain"
)

func (s *Server) registerLiveRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getLiveStatus",
		Method:      http.MethodGet,
		Path:        "/api/v1/live",
		Summary:     "Get live status",
		Description: "Returns whether the band is currently taking requests",
		Tags:        []string{"Live"},
	}, s.handleGetLiveStatus)

	huma.Register(s.api, huma.Operation{
		OperationID: "setLiveStatus",
		Method:      http.MethodPut,
		Path:        "/api/v1/live",
		Summary:     "Set live status",
		Description: "Sets the live flag to an explicit value",
		Tags:        []string{"Live"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSetLiveStatus)

	huma.Register(s.api, huma.Operation{
		OperationID: "toggleLiveStatus",
		Method:      http.MethodPost,
		Path:        "/api/v1/live/toggle",
		Summary:     "Toggle live status",
		Description: "Flips the live flag and returns the new state",
		Tags:        []string{"Live"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleToggleLiveStatus)
}

// === DTOs ===

// LiveStatusOutput wraps the live status for Huma.
type LiveStatusOutput struct {
	Body domain.LiveStatus
}

// SetLiveRequest is the request body for setting the live flag.
type SetLiveRequest struct {
	IsLive bool `json:"is_live" doc:"Whether the band is taking requests"`
}

// SetLiveInput contains parameters for setting the live flag.
type SetLiveInput struct {
	Authorization string `header:"Authorization"`
	Body          SetLiveRequest
}

// ToggleLiveInput contains parameters for toggling the live flag.
type ToggleLiveInput struct {
	Authorization string `header:"Authorization"`
}

// === Handlers ===

func (s *Server) handleGetLiveStatus(ctx context.Context, _ *struct{}) (*LiveStatusOutput, error) {
	status, err := s.services.Live.Status(ctx)
	if err != nil {
		return nil, err
	}

	return &LiveStatusOutput{Body: *status}, nil
}

func (s *Server) handleSetLiveStatus(ctx context.Context, input *SetLiveInput) (*LiveStatusOutput, error) {
	if _, err := s.authenticateOperator(input.Authorization); err != nil {
		return nil, err
	}

	status, err := s.services.Live.Set(ctx, input.Body.IsLive)
	if err != nil {
		return nil, err
	}

	return &LiveStatusOutput{Body: *status}, nil
}

func (s *Server) handleToggleLiveStatus(ctx context.Context, input *ToggleLiveInput) (*LiveStatusOutput, error) {
	if _, err := s.authenticateOperator(input.Authorization); err != nil {
		return nil, err
	}

	status, err := s.services.Live.Toggle(ctx)
	if err != nil {
		return nil, err
	}

	return &LiveStatusOutput{Body: *status}, nil
}
