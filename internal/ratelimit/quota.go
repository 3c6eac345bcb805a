package ratelimit

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Quota defaults. Five requests an hour is generous for a genuine fan and
// stingy for someone trying to flood the queue.
const (
	DefaultQuotaLimit  = 5
	DefaultQuotaWindow = time.Hour
)

// AttemptStore records successful submission timestamps per device key.
// Implementations prune entries older than the window they are asked about.
type AttemptStore interface {
	// CountSince returns how many recorded attempts for key are at or
	// after the cutoff.
	CountSince(ctx context.Context, key string, cutoff time.Time) (int, error)
	// Record stores one attempt for key at the given time.
	Record(ctx context.Context, key string, at time.Time) error
}

// MemoryAttemptStore is an in-process AttemptStore. Timestamps outside the
// asked-about window are pruned lazily on read, so idle devices cost
// nothing and busy ones hold at most a window's worth of entries.
type MemoryAttemptStore struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
}

// NewMemoryAttemptStore creates an empty in-memory attempt store.
func NewMemoryAttemptStore() *MemoryAttemptStore {
	return &MemoryAttemptStore{
		attempts: make(map[string][]time.Time),
	}
}

// CountSince implements AttemptStore. Pruning happens here: everything
// before the cutoff is discarded while counting.
func (m *MemoryAttemptStore) CountSince(_ context.Context, key string, cutoff time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	recorded := m.attempts[key]
	kept := recorded[:0]
	for _, at := range recorded {
		if !at.Before(cutoff) {
			kept = append(kept, at)
		}
	}

	if len(kept) == 0 {
		delete(m.attempts, key)
	} else {
		m.attempts[key] = kept
	}

	return len(kept), nil
}

// Record implements AttemptStore.
func (m *MemoryAttemptStore) Record(_ context.Context, key string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts[key] = append(m.attempts[key], at)
	return nil
}

// Quota enforces a rolling-window cap on successful song submissions per
// device. Only submissions that actually landed count against the cap;
// rejected attempts are free, so a fan blocked at the live gate is not
// also burning quota.
type Quota struct {
	store  AttemptStore
	logger *slog.Logger
	limit  int
	window time.Duration

	// now is swappable for tests.
	now func() time.Time
}

// NewQuota creates a Quota over the given attempt store.
// Non-positive limit or window fall back to the defaults.
func NewQuota(store AttemptStore, limit int, window time.Duration, logger *slog.Logger) *Quota {
	if limit <= 0 {
		limit = DefaultQuotaLimit
	}
	if window <= 0 {
		window = DefaultQuotaWindow
	}
	return &Quota{
		store:  store,
		logger: logger,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Allow reports whether the device may submit another request right now.
// The quota protects a song queue, not a vault: if the attempt store
// fails we log and let the request through rather than locking fans out.
func (q *Quota) Allow(ctx context.Context, key string) bool {
	count, err := q.store.CountSince(ctx, key, q.now().Add(-q.window))
	if err != nil {
		q.logger.Warn("quota lookup failed, failing open",
			"key", key,
			"error", err,
		)
		return true
	}
	return count < q.limit
}

// Remaining returns how many submissions the device has left in the
// current window. Store failures read as a full allowance.
func (q *Quota) Remaining(ctx context.Context, key string) int {
	count, err := q.store.CountSince(ctx, key, q.now().Add(-q.window))
	if err != nil {
		return q.limit
	}
	if count >= q.limit {
		return 0
	}
	return q.limit - count
}

// RecordSuccess charges one submission against the device's quota.
// Call this only after the request has been persisted.
func (q *Quota) RecordSuccess(ctx context.Context, key string) {
	if err := q.store.Record(ctx, key, q.now()); err != nil {
		q.logger.Warn("failed to record quota attempt",
			"key", key,
			"error", err,
		)
	}
}
