package domain

import "time"

// LiveStatus is the singleton flag gating fan submissions.
// Absence of the record reads as offline; the flag only becomes true
// after an operator's first explicit toggle.
type LiveStatus struct {
	IsLive    bool      `json:"is_live"`
	UpdatedAt time.Time `json:"updated_at"`
}
