// Package service implements the business rules of the song-request
// pipeline on top of the store, quota, and auth building blocks.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/arohamusic/encore-server/internal/domain"
	domainerrors "github.com/arohamusic/encore-server/internal/errors"
	"github.com/arohamusic/encore-server/internal/ratelimit"
	"github.com/arohamusic/encore-server/internal/store"
	"github.com/arohamusic/encore-server/internal/validation"
)

// RequestService handles fan submissions and operator queue management.
type RequestService struct {
	store     *store.Store
	quota     *ratelimit.Quota
	validator *validation.Validator
	logger    *slog.Logger
}

// NewRequestService creates a new request service.
func NewRequestService(s *store.Store, quota *ratelimit.Quota, v *validation.Validator, logger *slog.Logger) *RequestService {
	return &RequestService{
		store:     s,
		quota:     quota,
		validator: v,
		logger:    logger,
	}
}

// SubmitRequest contains a fan's submission. Artist, album, and artwork
// are empty on the free-text path and filled in when the fan picked a
// search result.
type SubmitRequest struct {
	Song      string `json:"song" validate:"required,max=200"`
	Artist    string `json:"artist,omitempty" validate:"max=200"`
	Album     string `json:"album,omitempty" validate:"max=200"`
	Artwork   string `json:"artwork,omitempty" validate:"omitempty,url,max=2048"`
	FanName   string `json:"fan_name,omitempty" validate:"max=100"`
	DeviceKey string `json:"-"` // Extracted from request by handler
}

// Submit runs a fan submission through the gates and persists it.
// The live gate is checked before the quota gate, and only submissions
// that actually land are charged against the device's quota.
func (s *RequestService) Submit(ctx context.Context, req SubmitRequest) (*domain.SongRequest, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	live, err := s.store.GetLiveStatus(ctx)
	if err != nil {
		return nil, domainerrors.Persistence("could not check live status").WithCause(err)
	}
	if !live.IsLive {
		return nil, domainerrors.NotLive("the band is not taking requests right now")
	}

	if !s.quota.Allow(ctx, req.DeviceKey) {
		return nil, domainerrors.RateLimited("request limit reached, try again in a bit")
	}

	request := domain.NewSongRequest(req.Song, req.Artist, req.Album, req.Artwork, req.FanName)
	if err := s.store.CreateRequest(ctx, request); err != nil {
		return nil, domainerrors.Persistence("could not save your request").WithCause(err)
	}

	s.quota.RecordSuccess(ctx, req.DeviceKey)

	s.logger.Info("song request submitted",
		"request_id", request.ID,
		"song", request.Song,
		"artist", request.Artist,
		"fan_name", request.FanName,
	)

	return request, nil
}

// List returns the queue newest first. An empty status means no filter.
func (s *RequestService) List(ctx context.Context, status string) ([]domain.SongRequest, error) {
	filter := store.RequestFilter{}
	if status != "" {
		rs := domain.RequestStatus(status)
		if !rs.Valid() {
			return nil, domainerrors.Validationf("unknown status %q", status)
		}
		filter.Status = rs
	}

	requests, err := s.store.ListRequests(ctx, filter)
	if err != nil {
		return nil, domainerrors.Persistence("could not load requests").WithCause(err)
	}
	return requests, nil
}

// UpdateStatus moves a request through the set. Repeating the current
// status succeeds without effect; anything else must be a legal
// transition or the call fails with a conflict.
func (s *RequestService) UpdateStatus(ctx context.Context, requestID, status string) (*domain.SongRequest, error) {
	next := domain.RequestStatus(status)
	if !next.Valid() {
		return nil, domainerrors.Validationf("unknown status %q", status)
	}

	current, err := s.store.GetRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, store.ErrRequestNotFound) {
			return nil, domainerrors.NotFoundf("request %s not found", requestID)
		}
		return nil, domainerrors.Persistence("could not load request").WithCause(err)
	}

	if !current.Status.CanTransitionTo(next) {
		return nil, domainerrors.Conflict(fmt.Sprintf("cannot move request from %s to %s", current.Status, next))
	}

	updated, err := s.store.UpdateRequestStatus(ctx, requestID, next)
	if err != nil {
		if errors.Is(err, store.ErrRequestNotFound) {
			return nil, domainerrors.NotFoundf("request %s not found", requestID)
		}
		return nil, domainerrors.Persistence("could not update request").WithCause(err)
	}

	return updated, nil
}

// Delete removes a request from the queue for good.
func (s *RequestService) Delete(ctx context.Context, requestID string) error {
	if err := s.store.DeleteRequest(ctx, requestID); err != nil {
		if errors.Is(err, store.ErrRequestNotFound) {
			return domainerrors.NotFoundf("request %s not found", requestID)
		}
		return domainerrors.Persistence("could not delete request").WithCause(err)
	}

	s.logger.Info("song request deleted", "request_id", requestID)
	return nil
}

// ClearPlayed sweeps every played request out of the queue.
func (s *RequestService) ClearPlayed(ctx context.Context) (int, error) {
	removed, err := s.store.ClearPlayed(ctx)
	if err != nil {
		return 0, domainerrors.Persistence("could not clear played requests").WithCause(err)
	}

	if removed > 0 {
		s.logger.Info("cleared played requests", "count", removed)
	}
	return removed, nil
}
