package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from RequestStatus
		to   RequestStatus
		want bool
	}{
		{"pending to playing", StatusPending, StatusPlaying, true},
		{"pending to played", StatusPending, StatusPlayed, true},
		{"playing to played", StatusPlaying, StatusPlayed, true},
		{"played to pending (replay)", StatusPlayed, StatusPending, true},
		{"played to playing is not reachable", StatusPlayed, StatusPlaying, false},
		{"playing to pending is not reachable", StatusPlaying, StatusPending, false},
		{"same status is idempotent", StatusPlaying, StatusPlaying, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestRequestStatusValid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusPlaying.Valid())
	assert.True(t, StatusPlayed.Valid())
	assert.False(t, RequestStatus("queued").Valid())
	assert.False(t, RequestStatus("").Valid())
}

func TestNewSongRequest_Defaults(t *testing.T) {
	t.Run("free-text submission", func(t *testing.T) {
		req := NewSongRequest("Kesariya", "", "", "", "")
		assert.Equal(t, "Kesariya", req.Song)
		assert.Equal(t, CustomRequestArtist, req.Artist)
		assert.Equal(t, AnonymousFan, req.FanName)
		assert.Empty(t, req.Artwork)
		assert.Equal(t, StatusPending, req.Status)
	})

	t.Run("matched search result", func(t *testing.T) {
		req := NewSongRequest("Kesariya", "Arijit Singh", "Brahmastra", "https://img/600x600bb.jpg", "Riya")
		assert.Equal(t, "Arijit Singh", req.Artist)
		assert.Equal(t, "Riya", req.FanName)
		assert.Equal(t, StatusPending, req.Status)
	})
}
