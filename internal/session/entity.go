package session

import (
	"time"

	"github.com/saulo-duarte/yt-study-api/internal/aiclient"
)

type Status string

const (
	StatusReady      Status = "READY"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
)

type Session struct {
	ID        string    `json:"sessionId"`
	VideoID   string    `json:"videoId"`
	VideoURL  string    `json:"videoUrl"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`

	// Transcript caches what the AI service returned, segment timing included.
	Transcript aiclient.Transcript `json:"-"`
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
