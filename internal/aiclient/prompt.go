package aiclient

import (
	"fmt"
	"strings"
)

const askSystemPrompt = "Answer only from video content."

// BuildAskPrompt frames the user's question with whatever transcript excerpts
// are available. Without excerpts the question is sent as is.
func BuildAskPrompt(question, videoContext string) string {
	question = strings.TrimSpace(question)
	videoContext = strings.TrimSpace(videoContext)
	if videoContext == "" {
		return question
	}
	return fmt.Sprintf(
		"Video transcript excerpts:\n%s\n\n"+
			"Using only the excerpts above, answer the question below. "+
			"If the excerpts do not contain the answer, say so.\n\n"+
			"Question: %s",
		videoContext, question,
	)
}
