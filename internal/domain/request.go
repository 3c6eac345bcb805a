// Package domain contains the core data model for the Encore song-request pipeline.
package domain

import "time"

// Sentinel values applied when a fan submits without picking a search result.
const (
	// CustomRequestArtist marks free-text submissions with no matched song.
	CustomRequestArtist = "Custom Request"
	// AnonymousFan is the fan name recorded when the fan leaves theirs blank.
	AnonymousFan = "Anonymous"
)

// RequestStatus tracks a song request through the set.
type RequestStatus string

const (
	// StatusPending is the only status a request can be created in.
	StatusPending RequestStatus = "pending"
	// StatusPlaying means the band is performing the request now.
	StatusPlaying RequestStatus = "playing"
	// StatusPlayed means the request has been performed.
	StatusPlayed RequestStatus = "played"
)

// Valid reports whether s is one of the known statuses.
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPlaying, StatusPlayed:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status change from s to next is
// allowed. The reachable edges are pending->playing, pending->played,
// playing->played, and played->pending (replay). Setting the same status
// again is allowed so repeated operator taps stay idempotent.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case StatusPending:
		return next == StatusPlaying || next == StatusPlayed
	case StatusPlaying:
		return next == StatusPlayed
	case StatusPlayed:
		return next == StatusPending
	}
	return false
}

// SongRequest is a fan's song request as stored in the shared collection.
// CreatedAt is server-assigned at creation time and drives newest-first
// ordering in the operator console and backstage display.
type SongRequest struct {
	ID        string        `json:"id"`
	Song      string        `json:"song"`
	Artist    string        `json:"artist"`
	Album     string        `json:"album,omitempty"`
	Artwork   string        `json:"artwork,omitempty"`
	FanName   string        `json:"fan_name"`
	Status    RequestStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// NewSongRequest builds a pending request from fan input, applying the
// free-text defaults. The ID and CreatedAt are assigned by the store.
func NewSongRequest(song, artist, album, artwork, fanName string) *SongRequest {
	if artist == "" {
		artist = CustomRequestArtist
	}
	if fanName == "" {
		fanName = AnonymousFan
	}
	return &SongRequest{
		Song:    song,
		Artist:  artist,
		Album:   album,
		Artwork: artwork,
		FanName: fanName,
		Status:  StatusPending,
	}
}
