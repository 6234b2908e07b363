package aiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const noSummary = "No summary available"

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func decodeTranscript(raw json.RawMessage) (Transcript, error) {
	if isNull(raw) {
		return Transcript{}, nil
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return Transcript{Text: text}, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return Transcript{}, fmt.Errorf("%w: transcript is neither text nor a list", ErrMalformedResponse)
	}
	segments := make([]Segment, 0, len(items))
	for _, item := range items {
		var seg Segment
		if err := json.Unmarshal(item, &seg); err == nil {
			segments = append(segments, seg)
			continue
		}
		var line string
		if err := json.Unmarshal(item, &line); err != nil {
			return Transcript{}, fmt.Errorf("%w: unexpected transcript segment %s", ErrMalformedResponse, snippet(string(item)))
		}
		segments = append(segments, Segment{Text: line})
	}
	return Transcript{Segments: segments}, nil
}

func decodeSummary(raw json.RawMessage) (string, error) {
	if isNull(raw) {
		return noSummary, nil
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		if strings.TrimSpace(text) == "" {
			return noSummary, nil
		}
		return text, nil
	}

	var structured struct {
		Paragraph string   `json:"paragraph"`
		Bullets   []string `json:"bullets"`
	}
	if err := json.Unmarshal(raw, &structured); err != nil {
		return "", fmt.Errorf("%w: summary is neither text nor an object", ErrMalformedResponse)
	}
	var sb strings.Builder
	sb.WriteString(strings.TrimSpace(structured.Paragraph))
	for _, bullet := range structured.Bullets {
		if bullet = strings.TrimSpace(bullet); bullet == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("- ")
		sb.WriteString(bullet)
	}
	if sb.Len() == 0 {
		return noSummary, nil
	}
	return sb.String(), nil
}

// optionIndex accepts 1, "1" or "B" and stores a 0-based index.
type optionIndex int

func (o *optionIndex) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		*o = optionIndex(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	idx, ok := letterIndex(s)
	if !ok {
		return fmt.Errorf("invalid option reference %q", s)
	}
	*o = optionIndex(idx)
	return nil
}

func letterIndex(s string) (int, bool) {
	s = strings.TrimSpace(strings.Trim(strings.TrimSpace(s), "()."))
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	if len(s) == 0 {
		return 0, false
	}
	c := s[0]
	switch {
	case c >= 'A' && c <= 'Z':
		return int(c - 'A'), true
	case c >= 'a' && c <= 'z':
		return int(c - 'a'), true
	}
	return 0, false
}

type wireQuestion struct {
	Question      string      `json:"question"`
	Text          string      `json:"text"`
	Options       []string    `json:"options"`
	Correct       optionIndex `json:"correct"`
	CorrectAnswer optionIndex `json:"correct_answer"`
}

func decodeQuestions(raw json.RawMessage) ([]QuizQuestion, error) {
	if isNull(raw) {
		return []QuizQuestion{}, nil
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		cleaned := cleanJSON(text)
		if strings.HasPrefix(cleaned, "[") {
			return decodeQuestions(json.RawMessage(cleaned))
		}
		return ParseMCQText(text), nil
	}

	var wire []wireQuestion
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("%w: questions: %v", ErrMalformedResponse, err)
	}
	out := make([]QuizQuestion, 0, len(wire))
	for _, w := range wire {
		q := QuizQuestion{Question: w.Question, Options: w.Options, Correct: int(w.Correct)}
		if q.Question == "" {
			q.Question = w.Text
		}
		if q.Correct == 0 && w.CorrectAnswer != 0 {
			q.Correct = int(w.CorrectAnswer)
		}
		if !q.answerable() {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

// answerable reports whether q has text, at least two options and a correct
// index that points at one of them.
func (q QuizQuestion) answerable() bool {
	return strings.TrimSpace(q.Question) != "" && len(q.Options) >= 2 &&
		q.Correct >= 0 && q.Correct < len(q.Options)
}

// cleanJSON strips the markdown fences models like to wrap JSON in.
func cleanJSON(raw string) string {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(strings.Trim(clean, "`"))
}

var (
	mcqQuestionLine = regexp.MustCompile(`^(?:Q(?:uestion)?\s*)?\d+\s*[.):]\s*(.+)$`)
	mcqOptionLine   = regexp.MustCompile(`^([A-Da-d])\s*[).:]\s*(.+)$`)
	mcqAnswerLine   = regexp.MustCompile(`(?i)^(?:correct\s+)?answer\s*:\s*\(?([A-Da-d])\b`)
	mcqSectionEnd   = regexp.MustCompile(`(?i)^descriptive\s+questions`)
)

// ParseMCQText reads the plain-text MCQ block produced by the AI service:
//
//	1. Question
//	   A) option
//	   ...
//	   Correct Answer: B
//
// Incomplete questions are dropped.
func ParseMCQText(text string) []QuizQuestion {
	var (
		out     []QuizQuestion
		current *QuizQuestion
	)
	flush := func() {
		if current != nil && current.answerable() {
			out = append(out, *current)
		}
		current = nil
	}

	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(strings.ReplaceAll(rawLine, "*", ""))
		if line == "" {
			continue
		}
		if mcqSectionEnd.MatchString(line) {
			break
		}
		if m := mcqAnswerLine.FindStringSubmatch(line); m != nil {
			if current != nil {
				idx, _ := letterIndex(m[1])
				current.Correct = idx
			}
			continue
		}
		if m := mcqOptionLine.FindStringSubmatch(line); m != nil && current != nil {
			current.Options = append(current.Options, strings.TrimSpace(m[2]))
			continue
		}
		if m := mcqQuestionLine.FindStringSubmatch(line); m != nil {
			flush()
			current = &QuizQuestion{Question: strings.TrimSpace(m[1]), Correct: -1}
		}
	}
	flush()

	if out == nil {
		return []QuizQuestion{}
	}
	return out
}
