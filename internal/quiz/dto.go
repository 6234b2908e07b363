package quiz

import "encoding/json"

type GenerateRequest struct {
	VideoURL  string `json:"videoUrl"`
	SessionID string `json:"sessionId"`
	Language  string `json:"language"`
}

type GenerateResponse struct {
	Success        bool       `json:"success"`
	VideoURL       string     `json:"videoUrl"`
	Questions      []Question `json:"questions"`
	Message        string     `json:"message"`
	Degraded       bool       `json:"degraded,omitempty"`
	UpstreamStatus string     `json:"upstreamStatus,omitempty"`
}

type EvaluateRequest struct {
	SessionID string          `json:"sessionId"`
	Answer    json.RawMessage `json:"answer"`
	Questions []Question      `json:"questions,omitempty"`
}

type QuestionResult struct {
	Index    int  `json:"index"`
	Selected *int `json:"selected"`
	Correct  int  `json:"correct"`
	IsRight  bool `json:"isCorrect"`
}

type EvaluateResponse struct {
	Score      int              `json:"score"`
	Feedback   string           `json:"feedback"`
	Correct    *int             `json:"correct,omitempty"`
	Total      *int             `json:"total,omitempty"`
	Percentage *float64         `json:"percentage,omitempty"`
	Results    []QuestionResult `json:"results,omitempty"`
}
