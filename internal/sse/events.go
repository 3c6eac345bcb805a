// Package sse implements Server-Sent Events for pushing request queue and
// live status changes to the fan page and the operator console.
package sse

import (
	"time"

	"github.com/arohamusic/encore-server/internal/domain"
)

// SSE is one-directional by design. Fans and operators mutate state through
// the REST surface; the stream only pushes the resulting snapshots back out.

// EventType represents the type of SSE Event.
type EventType string

const (
	// EventRequestCreated represents a new song request entering the queue.
	EventRequestCreated EventType = "request.created"
	// EventRequestUpdated represents a status change on an existing request.
	EventRequestUpdated EventType = "request.updated"
	// EventRequestDeleted represents a request being removed from the queue.
	EventRequestDeleted EventType = "request.deleted"

	// EventRequestsSnapshot carries the full current queue, newest first.
	// Sent on connect and after every mutation so clients never have to
	// reconcile incremental diffs against local state.
	EventRequestsSnapshot EventType = "requests.snapshot"

	// EventLiveChanged represents the live flag being toggled.
	EventLiveChanged EventType = "live.changed"

	// EventLiveStatus carries the current live flag. Sent once on connect so
	// clients can render the gate before any toggle happens.
	EventLiveStatus EventType = "live.status"

	// EventHeartbeat represents a connection keepalive event.
	EventHeartbeat EventType = "heartbeat"
)

// Event represents an SSE event to be sent to clients.
// The Data field contains the event payload as a JSON object for direct deserialization.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
	Type      EventType `json:"type"`
}

// RequestEventData is the data payload for request created/updated events.
type RequestEventData struct {
	Request *domain.SongRequest `json:"request"`
}

// RequestDeletedEventData is the data payload for request delete events.
type RequestDeletedEventData struct {
	DeletedAt time.Time `json:"deleted_at"`
	RequestID string    `json:"request_id"`
}

// RequestsSnapshotEventData is the data payload for queue snapshot events.
type RequestsSnapshotEventData struct {
	Requests []domain.SongRequest `json:"requests"`
	Count    int                  `json:"count"`
}

// LiveChangedEventData is the data payload for live status events.
type LiveChangedEventData struct {
	UpdatedAt time.Time `json:"updated_at"`
	IsLive    bool      `json:"is_live"`
}

// HeartbeatEventData is the data payload for heartbeat events.
type HeartbeatEventData struct {
	ServerTime time.Time `json:"server_time"`
}

// NewRequestCreatedEvent creates an event for a newly submitted request.
func NewRequestCreatedEvent(request *domain.SongRequest) Event {
	return Event{
		Type:      EventRequestCreated,
		Timestamp: time.Now(),
		Data:      RequestEventData{Request: request},
	}
}

// NewRequestUpdatedEvent creates an event for a request status change.
func NewRequestUpdatedEvent(request *domain.SongRequest) Event {
	return Event{
		Type:      EventRequestUpdated,
		Timestamp: time.Now(),
		Data:      RequestEventData{Request: request},
	}
}

// NewRequestDeletedEvent creates an event for a deleted request.
func NewRequestDeletedEvent(requestID string) Event {
	now := time.Now()
	return Event{
		Type:      EventRequestDeleted,
		Timestamp: now,
		Data: RequestDeletedEventData{
			RequestID: requestID,
			DeletedAt: now,
		},
	}
}

// NewRequestsSnapshotEvent creates a full queue snapshot event.
func NewRequestsSnapshotEvent(requests []domain.SongRequest) Event {
	return Event{
		Type:      EventRequestsSnapshot,
		Timestamp: time.Now(),
		Data: RequestsSnapshotEventData{
			Requests: requests,
			Count:    len(requests),
		},
	}
}

// NewLiveChangedEvent creates an event for a live flag change.
func NewLiveChangedEvent(status domain.LiveStatus) Event {
	return Event{
		Type:      EventLiveChanged,
		Timestamp: time.Now(),
		Data: LiveChangedEventData{
			IsLive:    status.IsLive,
			UpdatedAt: status.UpdatedAt,
		},
	}
}

// NewLiveStatusEvent creates a connect-time event with the current live flag.
func NewLiveStatusEvent(status domain.LiveStatus) Event {
	return Event{
		Type:      EventLiveStatus,
		Timestamp: time.Now(),
		Data: LiveChangedEventData{
			IsLive:    status.IsLive,
			UpdatedAt: status.UpdatedAt,
		},
	}
}

// NewHeartbeatEvent creates a heartbeat event.
func NewHeartbeatEvent() Event {
	now := time.Now()
	return Event{
		Type:      EventHeartbeat,
		Timestamp: now,
		Data:      HeartbeatEventData{ServerTime: now},
	}
}
