// Package aiclient talks to the external AI service that transcribes,
// summarizes and writes quiz questions, and to the LLM that answers chat
// questions. Every call has a per-attempt timeout and one retry.
package aiclient

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"
)

type Client interface {
	Transcript(ctx context.Context, videoID, language string) (Transcript, error)
	Summary(ctx context.Context, videoID, language string) (string, error)
	QuizQuestions(ctx context.Context, videoID, videoURL, language string) ([]QuizQuestion, error)
	Ask(ctx context.Context, question, videoContext string) (string, error)
}

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

type client struct {
	service  *serviceClient
	provider Provider
	timeout  time.Duration
}

func New(cfg Config, provider Provider) Client {
	return &client{
		service:  newServiceClient(cfg.BaseURL, cfg.Timeout, cfg.HTTPClient),
		provider: provider,
		timeout:  cfg.Timeout,
	}
}

func (c *client) Transcript(ctx context.Context, videoID, language string) (Transcript, error) {
	return c.service.transcript(ctx, videoID, language)
}

func (c *client) Summary(ctx context.Context, videoID, language string) (string, error) {
	return c.service.summary(ctx, videoID, language)
}

func (c *client) QuizQuestions(ctx context.Context, videoID, videoURL, language string) ([]QuizQuestion, error) {
	return c.service.questions(ctx, videoID, videoURL, language)
}

func (c *client) Ask(ctx context.Context, question, videoContext string) (string, error) {
	if c.provider == nil {
		return "", classify(ctx, "ask", ErrMissingCredential)
	}
	user := BuildAskPrompt(question, videoContext)

	var answer string
	err := do(ctx, "ask", c.timeout, func(ctx context.Context) error {
		reply, err := c.provider.SendPrompt(ctx, askSystemPrompt, user)
		if err != nil {
			return err
		}
		if strings.TrimSpace(reply) == "" {
			return errors.New("empty answer")
		}
		answer = reply
		return nil
	})
	if err != nil {
		return "", err
	}
	return answer, nil
}
