package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/arohamusic/encore-server/internal/domain"
	"github.com/arohamusic/encore-server/internal/sse"
)

const keyLiveStatus = "live:status"

// GetLiveStatus retrieves the live flag.
// A missing record reads as offline, so a fresh database never accepts
// fan submissions until an operator flips the switch.
func (s *Store) GetLiveStatus(ctx context.Context) (*domain.LiveStatus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var status domain.LiveStatus

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyLiveStatus))
		if errors.Is(err, badger.ErrKeyNotFound) {
			status = domain.LiveStatus{IsLive: false}
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &status)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("get live status: %w", err)
	}

	return &status, nil
}

// SetLiveStatus writes the live flag and broadcasts the change.
func (s *Store) SetLiveStatus(ctx context.Context, isLive bool) (*domain.LiveStatus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	status := domain.LiveStatus{
		IsLive:    isLive,
		UpdatedAt: time.Now().UTC(),
	}

	if err := s.set([]byte(keyLiveStatus), &status); err != nil {
		return nil, fmt.Errorf("set live status: %w", err)
	}

	s.eventEmitter.Emit(sse.NewLiveChangedEvent(status))

	return &status, nil
}
