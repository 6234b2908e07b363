package aiclient

import "strings"

type Segment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Transcript is either a list of timed segments or a single block of text,
// depending on what the AI service produced.
type Transcript struct {
	Segments []Segment
	Text     string
}

func (t Transcript) Empty() bool {
	return len(t.Segments) == 0 && strings.TrimSpace(t.Text) == ""
}

// String flattens the transcript into plain text.
func (t Transcript) String() string {
	if len(t.Segments) == 0 {
		return t.Text
	}
	parts := make([]string, 0, len(t.Segments))
	for _, s := range t.Segments {
		if text := strings.TrimSpace(s.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// Value is what handlers send back to clients: segments when available,
// plain text otherwise.
func (t Transcript) Value() interface{} {
	if len(t.Segments) > 0 {
		return t.Segments
	}
	if t.Text != "" {
		return t.Text
	}
	return []Segment{}
}

type QuizQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Correct  int      `json:"correct"`
}
