package service

import (
	"context"
	"log/slog"

	"github.com/arohamusic/encore-server/internal/domain"
	domainerrors "github.com/arohamusic/encore-server/internal/errors"
	"github.com/arohamusic/encore-server/internal/store"
)

// LiveService owns the singleton live flag.
type LiveService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewLiveService creates a new live status service.
func NewLiveService(s *store.Store, logger *slog.Logger) *LiveService {
	return &LiveService{store: s, logger: logger}
}

// Status returns the current live flag.
func (s *LiveService) Status(ctx context.Context) (*domain.LiveStatus, error) {
	status, err := s.store.GetLiveStatus(ctx)
	if err != nil {
		return nil, domainerrors.Persistence("could not read live status").WithCause(err)
	}
	return status, nil
}

// Set writes the live flag explicitly.
func (s *LiveService) Set(ctx context.Context, isLive bool) (*domain.LiveStatus, error) {
	status, err := s.store.SetLiveStatus(ctx, isLive)
	if err != nil {
		return nil, domainerrors.Persistence("could not update live status").WithCause(err)
	}

	s.logger.Info("live status set", "is_live", status.IsLive)
	return status, nil
}

// Toggle flips the live flag. This is a read-then-write, not an atomic
// swap: two operators toggling in the same instant can double-flip and
// land back where they started. With one person running the console
// that trade is fine, and the console re-renders from the broadcast
// either way.
func (s *LiveService) Toggle(ctx context.Context) (*domain.LiveStatus, error) {
	current, err := s.store.GetLiveStatus(ctx)
	if err != nil {
		return nil, domainerrors.Persistence("could not read live status").WithCause(err)
	}

	status, err := s.store.SetLiveStatus(ctx, !current.IsLive)
	if err != nil {
		return nil, domainerrors.Persistence("could not update live status").WithCause(err)
	}

	s.logger.Info("live status toggled", "is_live", status.IsLive)
	return status, nil
}
