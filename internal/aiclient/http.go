package aiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/saulo-duarte/yt-study-api/internal/config"
)

const (
	DefaultTimeout = 30 * time.Second
	// one retry on top of the first attempt
	maxAttempts  = 2
	maxBodyBytes = 4 << 20
)

// do runs fn once per attempt, each attempt bounded by timeout, retrying a
// single time on retryable failures.
func do(ctx context.Context, op string, timeout time.Duration, fn func(ctx context.Context) error) error {
	log := config.WithContext(ctx)
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		err = fn(attemptCtx)
		cancel()
		if err == nil {
			return nil
		}
		if ctx.Err() != nil || !retryable(err) || attempt == maxAttempts {
			break
		}
		log.WithError(err).WithField("op", op).Warn("Upstream call failed, retrying once")
	}
	return classify(ctx, op, err)
}

type serviceClient struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

func newServiceClient(baseURL string, timeout time.Duration, httpClient *http.Client) *serviceClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &serviceClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		timeout:    timeout,
	}
}

func (c *serviceClient) post(ctx context.Context, op, path string, body interface{}, out interface{}) error {
	return do(ctx, op, c.timeout, func(ctx context.Context) error {
		return c.postOnce(ctx, path, body, out)
	})
}

func (c *serviceClient) postOnce(ctx context.Context, path string, body interface{}, out interface{}) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return &statusError{StatusCode: resp.StatusCode, Body: snippet(string(payload))}
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%w: %v (body: %s)", ErrMalformedResponse, err, snippet(string(payload)))
	}
	return nil
}

type videoRequest struct {
	VideoID  string `json:"video_id"`
	URL      string `json:"url,omitempty"`
	Language string `json:"language"`
}

func (c *serviceClient) transcript(ctx context.Context, videoID, lang string) (Transcript, error) {
	var resp struct {
		Transcript json.RawMessage `json:"transcript"`
	}
	if err := c.post(ctx, "transcript", "/transcript", videoRequest{VideoID: videoID, Language: lang}, &resp); err != nil {
		return Transcript{}, err
	}
	t, err := decodeTranscript(resp.Transcript)
	if err != nil {
		return Transcript{}, classify(ctx, "transcript", err)
	}
	return t, nil
}

func (c *serviceClient) summary(ctx context.Context, videoID, lang string) (string, error) {
	var resp struct {
		Summary json.RawMessage `json:"summary"`
	}
	if err := c.post(ctx, "summary", "/summarize", videoRequest{VideoID: videoID, Language: lang}, &resp); err != nil {
		return "", err
	}
	s, err := decodeSummary(resp.Summary)
	if err != nil {
		return "", classify(ctx, "summary", err)
	}
	return s, nil
}

func (c *serviceClient) questions(ctx context.Context, videoID, videoURL, lang string) ([]QuizQuestion, error) {
	var resp struct {
		Questions json.RawMessage `json:"questions"`
	}
	req := videoRequest{VideoID: videoID, URL: videoURL, Language: lang}
	if err := c.post(ctx, "questions", "/questions", req, &resp); err != nil {
		return nil, err
	}
	qs, err := decodeQuestions(resp.Questions)
	if err != nil {
		return nil, classify(ctx, "questions", err)
	}
	return qs, nil
}

func snippet(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}
