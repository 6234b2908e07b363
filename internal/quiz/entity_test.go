package quiz_test

import (
	"encoding/json"
	"testing"

	"github.com/saulo-duarte/yt-study-api/internal/quiz"
)

func TestParseAnswers(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		want      quiz.AnswerSet
		submitted int
		wantErr   bool
	}{
		{"Array", `[1,0,2]`, quiz.AnswerSet{0: 1, 1: 0, 2: 2}, 3, false},
		{"ArrayWithGaps", `[null,2,null]`, quiz.AnswerSet{1: 2}, 3, false},
		{"Letters", `["b","C"]`, quiz.AnswerSet{0: 1, 1: 2}, 2, false},
		{"Object", `{"0":1,"3":"A"}`, quiz.AnswerSet{0: 1, 3: 0}, 2, false},
		{"OutOfBoundsKept", `[7]`, quiz.AnswerSet{0: 7}, 1, false},
		{"Null", `null`, quiz.AnswerSet{}, 0, false},
		{"BadKey", `{"x":1}`, nil, 0, true},
		{"WholeFloat", `[2.0]`, quiz.AnswerSet{0: 2}, 1, false},
		{"BadSelection", `[true]`, nil, 0, true},
		{"Fractional", `[1.5]`, nil, 0, true},
		{"Huge", `[1e300]`, nil, 0, true},
		{"HugeNegative", `{"0":-1e20}`, nil, 0, true},
		{"Scalar", `3`, nil, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, submitted, err := quiz.ParseAnswers([]byte(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAnswers error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if submitted != tt.submitted {
				t.Errorf("submitted = %d, want %d", submitted, tt.submitted)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("answer %d = %d, want %d", k, got[k], v)
				}
			}
		})
	}
}

func TestAnswerSetUnmarshal(t *testing.T) {
	var payload struct {
		Answers quiz.AnswerSet `json:"answers"`
	}
	if err := json.Unmarshal([]byte(`{"answers":{"0":1}}`), &payload); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if payload.Answers[0] != 1 {
		t.Errorf("unexpected answers %v", payload.Answers)
	}
	if idx := payload.Answers.Indexes(); len(idx) != 1 || idx[0] != 0 {
		t.Errorf("unexpected indexes %v", idx)
	}
}

func TestGrade(t *testing.T) {
	questions := quiz.FallbackQuestions()

	tests := []struct {
		name    string
		answers quiz.AnswerSet
		want    quiz.Score
	}{
		{"AllCorrect", quiz.AnswerSet{0: 0, 1: 1}, quiz.Score{Correct: 2, Total: 2, Percentage: 100}},
		{"HalfCorrect", quiz.AnswerSet{0: 0, 1: 3}, quiz.Score{Correct: 1, Total: 2, Percentage: 50}},
		{"NoAnswers", quiz.AnswerSet{}, quiz.Score{Correct: 0, Total: 2, Percentage: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := quiz.Grade(questions, tt.answers); got != tt.want {
				t.Errorf("Grade = %+v, want %+v", got, tt.want)
			}
		})
	}

	if got := quiz.Grade(nil, quiz.AnswerSet{0: 1}); got.Total != 0 || got.Percentage != 0 {
		t.Errorf("empty quiz graded as %+v", got)
	}
}
