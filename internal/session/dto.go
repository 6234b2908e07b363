package session

type CreateSessionRequest struct {
	YoutubeURL string `json:"youtubeUrl"`
	VideoURL   string `json:"videoUrl"`
}

// URL returns whichever of the two accepted field names was sent.
func (r CreateSessionRequest) URL() string {
	if r.YoutubeURL != "" {
		return r.YoutubeURL
	}
	return r.VideoURL
}

type SessionResponse struct {
	Success   bool   `json:"success"`
	SessionID string `json:"sessionId"`
	VideoID   string `json:"videoId"`
	VideoURL  string `json:"videoUrl"`
	Status    Status `json:"status"`
	Message   string `json:"message,omitempty"`
}

type TranscriptResponse struct {
	Success        bool        `json:"success"`
	SessionID      string      `json:"sessionId"`
	VideoID        string      `json:"videoId"`
	Transcript     interface{} `json:"transcript"`
	Status         Status      `json:"status"`
	Degraded       bool        `json:"degraded,omitempty"`
	UpstreamStatus string      `json:"upstreamStatus,omitempty"`
}

type SummaryResponse struct {
	Success        bool   `json:"success"`
	SessionID      string `json:"sessionId"`
	VideoID        string `json:"videoId"`
	Summary        string `json:"summary"`
	Status         Status `json:"status"`
	Degraded       bool   `json:"degraded,omitempty"`
	UpstreamStatus string `json:"upstreamStatus,omitempty"`
}
