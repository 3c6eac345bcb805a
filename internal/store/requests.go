package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/arohamusic/encore-server/internal/domain"
	"github.com/arohamusic/encore-server/internal/id"
	"github.com/arohamusic/encore-server/internal/sse"
)

const requestPrefix = "request:"

// ErrRequestNotFound is returned when a song request is not found in the store.
var ErrRequestNotFound = errors.New("song request not found")

// RequestFilter narrows ListRequests. The zero value matches everything.
type RequestFilter struct {
	Status domain.RequestStatus
}

// CreateRequest persists a new song request. The ID, creation timestamp,
// and pending status are assigned here regardless of what the caller set,
// so clients cannot forge ordering or skip the queue.
func (s *Store) CreateRequest(ctx context.Context, request *domain.SongRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	requestID, err := id.Generate("req")
	if err != nil {
		return fmt.Errorf("generate request ID: %w", err)
	}

	request.ID = requestID
	request.CreatedAt = time.Now().UTC()
	request.Status = domain.StatusPending

	key := []byte(requestPrefix + request.ID)
	if err := s.set(key, request); err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	s.eventEmitter.Emit(sse.NewRequestCreatedEvent(request))
	s.emitQueueSnapshot(ctx)

	return nil
}

// GetRequest retrieves a song request by ID.
func (s *Store) GetRequest(ctx context.Context, requestID string) (*domain.SongRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := []byte(requestPrefix + requestID)

	var request domain.SongRequest
	if err := s.get(key, &request); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("get request: %w", err)
	}

	return &request, nil
}

// ListRequests returns song requests newest first, optionally filtered by
// status. An empty store yields an empty (non-nil) slice so callers can
// tell "no requests" apart from "not loaded yet".
func (s *Store) ListRequests(ctx context.Context, filter RequestFilter) ([]domain.SongRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	requests := make([]domain.SongRequest, 0)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(requestPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var request domain.SongRequest
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &request)
			})
			if err != nil {
				return err
			}

			if filter.Status != "" && request.Status != filter.Status {
				continue
			}
			requests = append(requests, request)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}

	// Newest first. IDs break timestamp ties so the order is stable.
	sort.Slice(requests, func(i, j int) bool {
		if !requests[i].CreatedAt.Equal(requests[j].CreatedAt) {
			return requests[i].CreatedAt.After(requests[j].CreatedAt)
		}
		return requests[i].ID > requests[j].ID
	})

	return requests, nil
}

// UpdateRequestStatus sets a request's status and returns the updated
// request. Setting the current status again is a no-op success, so
// repeated operator taps do not fail or re-broadcast.
func (s *Store) UpdateRequestStatus(ctx context.Context, requestID string, status domain.RequestStatus) (*domain.SongRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := []byte(requestPrefix + requestID)

	var request domain.SongRequest
	var changed bool

	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrRequestNotFound
		}
		if err != nil {
			return err
		}

		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &request)
		}); err != nil {
			return err
		}

		if request.Status == status {
			return nil
		}

		request.Status = status
		changed = true

		data, err := json.Marshal(&request)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		return txn.Set(key, data)
	})
	if err != nil {
		if errors.Is(err, ErrRequestNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update request status: %w", err)
	}

	if changed {
		s.eventEmitter.Emit(sse.NewRequestUpdatedEvent(&request))
		s.emitQueueSnapshot(ctx)
	}

	return &request, nil
}

// DeleteRequest permanently removes a request from the queue.
func (s *Store) DeleteRequest(ctx context.Context, requestID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := []byte(requestPrefix + requestID)

	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); errors.Is(err, badger.ErrKeyNotFound) {
			return ErrRequestNotFound
		} else if err != nil {
			return err
		}
		return txn.Delete(key)
	})
	if err != nil {
		if errors.Is(err, ErrRequestNotFound) {
			return err
		}
		return fmt.Errorf("delete request: %w", err)
	}

	s.eventEmitter.Emit(sse.NewRequestDeletedEvent(requestID))
	s.emitQueueSnapshot(ctx)

	return nil
}

// ClearPlayed deletes every played request and returns how many were removed.
// Used by the operator console to sweep the queue between sets.
func (s *Store) ClearPlayed(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	played, err := s.ListRequests(ctx, RequestFilter{Status: domain.StatusPlayed})
	if err != nil {
		return 0, err
	}
	if len(played) == 0 {
		return 0, nil
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		for _, request := range played {
			if err := txn.Delete([]byte(requestPrefix + request.ID)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("clear played requests: %w", err)
	}

	for _, request := range played {
		s.eventEmitter.Emit(sse.NewRequestDeletedEvent(request.ID))
	}
	s.emitQueueSnapshot(ctx)

	return len(played), nil
}

// emitQueueSnapshot broadcasts the full current queue. Clients rebuild
// their view from snapshots, so a failure here is logged and dropped
// rather than failing the mutation that triggered it.
func (s *Store) emitQueueSnapshot(ctx context.Context) {
	requests, err := s.ListRequests(ctx, RequestFilter{})
	if err != nil {
		if s.logger != nil {
			s.logger.Error("failed to build queue snapshot", "error", err)
		}
		return
	}
	s.eventEmitter.Emit(sse.NewRequestsSnapshotEvent(requests))
}
