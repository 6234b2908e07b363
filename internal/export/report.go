// Package export turns a quiz, the user's answers and their score into a
// downloadable PDF report.
package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/saulo-duarte/yt-study-api/internal/quiz"
)

const (
	ReportTitle    = "YouTube Video Quiz Report"
	MsgNoData      = "No quiz data available. Please generate and complete a quiz first."
	MsgParseError  = "Error parsing quiz data. Please ensure you have completed the quiz first."
	MarkSelected   = " ✓"
	MarkCorrect    = " (Correct)"
	separatorWidth = 50
)

type Payload struct {
	Questions []quiz.Question
	Answers   quiz.AnswerSet
	Score     *quiz.Score
}

type LineKind int

const (
	KindTitle LineKind = iota
	KindSeparator
	KindResult
	KindQuestion
	KindOption
	KindNotice
	KindFooter
	KindBlank
)

type Line struct {
	Kind LineKind
	Text string
}

// BuildReport lays out the report. A nil payload means the quiz data could
// not be decoded.
func BuildReport(p *Payload, generatedAt string) []Line {
	lines := []Line{
		{Kind: KindTitle, Text: ReportTitle},
		{Kind: KindSeparator, Text: strings.Repeat("=", separatorWidth)},
		{Kind: KindBlank},
	}

	switch {
	case p == nil:
		lines = append(lines, Line{Kind: KindNotice, Text: MsgParseError})
	case len(p.Questions) == 0:
		lines = append(lines, Line{Kind: KindNotice, Text: MsgNoData})
	default:
		lines = append(lines, Line{Kind: KindResult, Text: resultLine(p.Score)}, Line{Kind: KindBlank})
		for i, q := range p.Questions {
			lines = append(lines, Line{Kind: KindQuestion, Text: fmt.Sprintf("Question %d: %s", i+1, q.Question)})
			selected, answered := p.Answers[i]
			for j, opt := range q.Options {
				text := fmt.Sprintf("%s) %s", optionLetter(j), opt)
				if answered && selected == j {
					text += MarkSelected
				}
				if j == q.Correct {
					text += MarkCorrect
				}
				lines = append(lines, Line{Kind: KindOption, Text: text})
			}
			lines = append(lines, Line{Kind: KindBlank})
		}
	}

	return append(lines, Line{Kind: KindBlank}, Line{Kind: KindFooter, Text: "Generated on: " + generatedAt})
}

func resultLine(score *quiz.Score) string {
	if score == nil {
		return "Quiz Results: Not completed"
	}
	pct := strconv.FormatFloat(score.Percentage, 'f', -1, 64)
	return fmt.Sprintf("Quiz Results: %d/%d (%s%%)", score.Correct, score.Total, pct)
}

// optionLetter maps 0 to A, 25 to Z, 26 to AA.
func optionLetter(i int) string {
	letter := string(rune('A' + i%26))
	if i >= 26 {
		return optionLetter(i/26-1) + letter
	}
	return letter
}

// Text joins the report lines the way they appear in the document.
func Text(lines []Line) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l.Text)
		b.WriteByte('\n')
	}
	return b.String()
}
