package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/arohamusic/encore-server/internal/domain"
	"github.com/arohamusic/encore-server/internal/service"
)

func (s *Server) registerRequestRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "submitRequest",
		Method:      http.MethodPost,
		Path:        "/api/v1/requests",
		Summary:     "Submit song request",
		Description: "Submits a fan's song request. Rejected while the band is offline or once the device quota is spent.",
		Tags:        []string{"Requests"},
	}, s.handleSubmitRequest)

	huma.Register(s.api, huma.Operation{
		OperationID: "listRequests",
		Method:      http.MethodGet,
		Path:        "/api/v1/requests",
		Summary:     "List song requests",
		Description: "Returns the request queue, newest first, optionally filtered by status",
		Tags:        []string{"Requests"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListRequests)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateRequestStatus",
		Method:      http.MethodPatch,
		Path:        "/api/v1/requests/{id}/status",
		Summary:     "Update request status",
		Description: "Moves a request through pending, playing, and played",
		Tags:        []string{"Requests"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateRequestStatus)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteRequest",
		Method:        http.MethodDelete,
		Path:          "/api/v1/requests/{id}",
		Summary:       "Delete request",
		Description:   "Removes a request from the queue permanently",
		Tags:          []string{"Requests"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteRequest)

	huma.Register(s.api, huma.Operation{
		OperationID: "clearPlayedRequests",
		Method:      http.MethodPost,
		Path:        "/api/v1/requests/clear-played",
		Summary:     "Clear played requests",
		Description: "Removes every played request in one sweep, typically between sets",
		Tags:        []string{"Requests"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleClearPlayed)
}

// === DTOs ===

// SubmitRequestInput wraps a fan submission for Huma. The device ID header
// feeds the per-device quota; clients without one are keyed by IP.
type SubmitRequestInput struct {
	XDeviceID string `header:"X-Device-ID"`
	Body      service.SubmitRequest
}

// RequestOutput wraps a single song request for Huma.
type RequestOutput struct {
	Body domain.SongRequest
}

// ListRequestsInput contains parameters for listing requests.
type ListRequestsInput struct {
	Authorization string `header:"Authorization"`
	Status        string `query:"status" doc:"Filter by status (pending, playing, played)"`
}

// ListRequestsResponse contains the request queue. PendingCount always
// covers the whole queue so the console badge survives status filtering.
type ListRequestsResponse struct {
	Requests     []domain.SongRequest `json:"requests" doc:"Requests, newest first"`
	Count        int                  `json:"count" doc:"Number of requests returned"`
	PendingCount int                  `json:"pending_count" doc:"Number of pending requests in the whole queue"`
}

// ListRequestsOutput wraps the queue response for Huma.
type ListRequestsOutput struct {
	Body ListRequestsResponse
}

// UpdateStatusRequest is the request body for a status change.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending playing played" doc:"New status"`
}

// UpdateRequestStatusInput contains parameters for updating a request.
type UpdateRequestStatusInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Request ID"`
	Body          UpdateStatusRequest
}

// DeleteRequestInput contains parameters for deleting a request.
type DeleteRequestInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Request ID"`
}

// DeleteRequestOutput is empty; a successful delete returns 204.
type DeleteRequestOutput struct{}

// ClearPlayedInput contains parameters for clearing played requests.
type ClearPlayedInput struct {
	Authorization string `header:"Authorization"`
}

// ClearPlayedResponse reports how many requests were removed.
type ClearPlayedResponse struct {
	Removed int `json:"removed" doc:"Number of played requests removed"`
}

// ClearPlayedOutput wraps the clear response for Huma.
type ClearPlayedOutput struct {
	Body ClearPlayedResponse
}

// === Handlers ===

func (s *Server) handleSubmitRequest(ctx context.Context, input *SubmitRequestInput) (*RequestOutput, error) {
	req := input.Body
	req.DeviceKey = deviceKey(ctx, input.XDeviceID)

	created, err := s.services.Requests.Submit(ctx, req)
	if err != nil {
		return nil, err
	}

	return &RequestOutput{Body: *created}, nil
}

func (s *Server) handleListRequests(ctx context.Context, input *ListRequestsInput) (*ListRequestsOutput, error) {
	if _, err := s.authenticateOperator(input.Authorization); err != nil {
		return nil, err
	}

	requests, err := s.services.Requests.List(ctx, input.Status)
	if err != nil {
		return nil, err
	}

	pending := 0
	if input.Status == "" || input.Status == string(domain.StatusPending) {
		for _, r := range requests {
			if r.Status == domain.StatusPending {
				pending++
			}
		}
	} else {
		pendingRequests, err := s.services.Requests.List(ctx, string(domain.StatusPending))
		if err != nil {
			return nil, err
		}
		pending = len(pendingRequests)
	}

	return &ListRequestsOutput{
		Body: ListRequestsResponse{
			Requests:     requests,
			Count:        len(requests),
			PendingCount: pending,
		},
	}, nil
}

func (s *Server) handleUpdateRequestStatus(ctx context.Context, input *UpdateRequestStatusInput) (*RequestOutput, error) {
	if _, err := s.authenticateOperator(input.Authorization); err != nil {
		return nil, err
	}

	updated, err := s.services.Requests.UpdateStatus(ctx, input.ID, input.Body.Status)
	if err != nil {
		return nil, err
	}

	return &RequestOutput{Body: *updated}, nil
}

func (s *Server) handleDeleteRequest(ctx context.Context, input *DeleteRequestInput) (*DeleteRequestOutput, error) {
	if _, err := s.authenticateOperator(input.Authorization); err != nil {
		return nil, err
	}

	if err := s.services.Requests.Delete(ctx, input.ID); err != nil {
		return nil, err
	}

	return &DeleteRequestOutput{}, nil
}

func (s *Server) handleClearPlayed(ctx context.Context, input *ClearPlayedInput) (*ClearPlayedOutput, error) {
	if _, err := s.authenticateOperator(input.Authorization); err != nil {
		return nil, err
	}

	removed, err := s.services.Requests.ClearPlayed(ctx)
	if err != nil {
		return nil, err
	}

	return &ClearPlayedOutput{
		Body: ClearPlayedResponse{Removed: removed},
	}, nil
}
