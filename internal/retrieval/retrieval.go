// Package retrieval picks the transcript passages most relevant to a chat
// question before it is sent to the LLM.
package retrieval

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/saulo-duarte/yt-study-api/internal/aiclient"
)

const (
	DefaultMaxWords = 150
	DefaultTopK     = 5
)

type Chunk struct {
	Text      string
	StartTime float64
	EndTime   float64
}

// ChunkTranscript groups segments into chunks of roughly maxWords words.
// Plain-text transcripts are split on word count alone.
func ChunkTranscript(t aiclient.Transcript, maxWords int) []Chunk {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}
	segments := t.Segments
	if len(segments) == 0 && strings.TrimSpace(t.Text) != "" {
		segments = []aiclient.Segment{{Text: t.Text}}
	}

	var (
		chunks []Chunk
		words  []string
		start  float64
		open   bool
	)
	for _, seg := range segments {
		for _, word := range strings.Fields(seg.Text) {
			if !open {
				start = seg.Start
				open = true
			}
			words = append(words, word)
			if len(words) >= maxWords {
				chunks = append(chunks, Chunk{
					Text:      strings.Join(words, " "),
					StartTime: round2(start),
					EndTime:   round2(seg.Start + seg.Duration),
				})
				words = nil
				open = false
			}
		}
	}
	if len(words) > 0 {
		chunks = append(chunks, Chunk{
			Text:      strings.Join(words, " "),
			StartTime: round2(start),
			EndTime:   round2(start + 5),
		})
	}
	return chunks
}

// TopK ranks chunks by how many distinct query words they share. Ties keep
// transcript order.
func TopK(chunks []Chunk, query string, k int) []Chunk {
	if k <= 0 {
		k = DefaultTopK
	}
	queryWords := wordSet(query)

	type scored struct {
		score int
		chunk Chunk
	}
	ranked := make([]scored, 0, len(chunks))
	for _, c := range chunks {
		score := 0
		for w := range wordSet(c.Text) {
			if _, ok := queryWords[w]; ok {
				score++
			}
		}
		ranked = append(ranked, scored{score: score, chunk: c})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	if len(ranked) > k {
		ranked = ranked[:k]
	}
	out := make([]Chunk, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.chunk)
	}
	return out
}

// Context renders chunks the way the prompt expects them.
func Context(chunks []Chunk) string {
	parts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		parts = append(parts, fmt.Sprintf("[%.2f - %.2f]\n%s", c.StartTime, c.EndTime, c.Text))
	}
	return strings.Join(parts, "\n\n")
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = struct{}{}
	}
	return set
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
