package quiz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/saulo-duarte/yt-study-api/internal/aiclient"
)

type Question struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Correct  int      `json:"correct"`
}

func fromUpstream(qs []aiclient.QuizQuestion) []Question {
	out := make([]Question, 0, len(qs))
	for _, q := range qs {
		out = append(out, Question{Question: q.Question, Options: q.Options, Correct: q.Correct})
	}
	return out
}

// AnswerSet maps a question index to the selected option index. Indexes are
// never checked against the question list or the option count.
type AnswerSet map[int]int

// UnmarshalJSON accepts either a positional array (null entries mean "not
// answered") or an object keyed by question index. Selections may be option
// indexes or letters.
func (a *AnswerSet) UnmarshalJSON(data []byte) error {
	set, _, err := ParseAnswers(data)
	if err != nil {
		return err
	}
	*a = set
	return nil
}

// Indexes returns the answered question indexes in ascending order.
func (a AnswerSet) Indexes() []int {
	out := make([]int, 0, len(a))
	for i := range a {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// ParseAnswers decodes an answer payload and reports how many entries were
// submitted, counting unanswered array slots.
func ParseAnswers(data []byte) (AnswerSet, int, error) {
	data = bytes.TrimSpace(data)
	set := AnswerSet{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return set, 0, nil
	}

	switch data[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, 0, fmt.Errorf("answers: %w", err)
		}
		for i, raw := range items {
			selected, ok, err := parseSelection(raw)
			if err != nil {
				return nil, 0, fmt.Errorf("answer %d: %w", i, err)
			}
			if ok {
				set[i] = selected
			}
		}
		return set, len(items), nil
	case '{':
		var items map[string]json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, 0, fmt.Errorf("answers: %w", err)
		}
		for key, raw := range items {
			idx, err := strconv.Atoi(strings.TrimSpace(key))
			if err != nil {
				return nil, 0, fmt.Errorf("answer key %q is not a question index", key)
			}
			selected, ok, err := parseSelection(raw)
			if err != nil {
				return nil, 0, fmt.Errorf("answer %s: %w", key, err)
			}
			if ok {
				set[idx] = selected
			}
		}
		return set, len(items), nil
	default:
		return nil, 0, fmt.Errorf("answers must be an array or an object")
	}
}

func parseSelection(raw json.RawMessage) (int, bool, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false, nil
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		if n != math.Trunc(n) || n < math.MinInt32 || n > math.MaxInt32 {
			return 0, false, fmt.Errorf("selection %s is not an option index", string(raw))
		}
		return int(n), true, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false, fmt.Errorf("unsupported selection %s", string(raw))
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true, nil
	}
	if len(s) == 1 {
		c := strings.ToUpper(s)[0]
		if c >= 'A' && c <= 'Z' {
			return int(c - 'A'), true, nil
		}
	}
	return 0, false, fmt.Errorf("unsupported selection %q", s)
}

type Score struct {
	Correct    int     `json:"correct"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// Grade counts answers that match the correct option.
func Grade(questions []Question, answers AnswerSet) Score {
	score := Score{Total: len(questions)}
	for i, q := range questions {
		if selected, ok := answers[i]; ok && selected == q.Correct {
			score.Correct++
		}
	}
	if score.Total > 0 {
		score.Percentage = math.Round(float64(score.Correct) * 100 / float64(score.Total))
	}
	return score
}

// Attempt is the last quiz generated or evaluated for a session.
type Attempt struct {
	SessionID string     `json:"sessionId"`
	VideoURL  string     `json:"videoUrl"`
	Questions []Question `json:"questions"`
	Answers   AnswerSet  `json:"answers,omitempty"`
	Score     *Score     `json:"score,omitempty"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
