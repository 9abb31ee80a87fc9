package assistant

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Poll cadence for run completion: a fixed 5s interval with a hard ceiling
// of 60 attempts (5 minutes).
const (
	pollInterval    = 5 * time.Second
	pollMaxAttempts = 60
)

// ErrRunTimeout is returned when a run does not reach a terminal state
// within the polling ceiling.
var ErrRunTimeout = errors.New("assistant run did not complete in time")

// runRetriever is the slice of the OpenAI client the poll loop needs.
type runRetriever interface {
	RetrieveRun(ctx context.Context, threadID, runID string) (openai.Run, error)
}

// Client wraps the hosted OpenAI Assistants API for thread-based chat.
type Client struct {
	api *openai.Client
}

// NewClient creates an assistant client with an explicit API key.
func NewClient(apiKey string) *Client {
	return &Client{api: openai.NewClient(apiKey)}
}

// CreateThread starts a new empty conversation thread.
func (c *Client) CreateThread(ctx context.Context) (string, error) {
	thread, err := c.api.CreateThread(ctx, openai.ThreadRequest{})
	if err != nil {
		return "", fmt.Errorf("creating thread: %w", err)
	}
	return thread.ID, nil
}

// AddMessage appends a user message to a thread.
func (c *Client) AddMessage(ctx context.Context, threadID, content string) error {
	_, err := c.api.CreateMessage(ctx, threadID, openai.MessageRequest{
		Role:    openai.ChatMessageRoleUser,
		Content: content,
	})
	if err != nil {
		return fmt.Errorf("adding message to thread %s: %w", threadID, err)
	}
	return nil
}

// StartRun launches the assistant on a thread and returns the run id.
func (c *Client) StartRun(ctx context.Context, threadID, assistantID string) (string, error) {
	run, err := c.api.CreateRun(ctx, threadID, openai.RunRequest{
		AssistantID: assistantID,
	})
	if err != nil {
		return "", fmt.Errorf("starting run on thread %s: %w", threadID, err)
	}
	return run.ID, nil
}

// WaitForRun polls the run at a fixed interval until it reaches a terminal
// state or the attempt ceiling is hit.
func (c *Client) WaitForRun(ctx context.Context, threadID, runID string) error {
	return waitForRun(ctx, c.api, threadID, runID, pollInterval, pollMaxAttempts)
}

func waitForRun(ctx context.Context, api runRetriever, threadID, runID string, interval time.Duration, maxAttempts int) error {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		run, err := api.RetrieveRun(ctx, threadID, runID)
		if err != nil {
			return fmt.Errorf("retrieving run %s: %w", runID, err)
		}

		switch run.Status {
		case openai.RunStatusCompleted:
			return nil
		case openai.RunStatusFailed, openai.RunStatusCancelled, openai.RunStatusExpired:
			return fmt.Errorf("run %s ended with status %s", runID, run.Status)
		case openai.RunStatusRequiresAction:
			return fmt.Errorf("run %s requires tool action, which is not supported", runID)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
	return ErrRunTimeout
}

// LatestAssistantMessage returns the newest assistant reply on a thread.
func (c *Client) LatestAssistantMessage(ctx context.Context, threadID string) (string, error) {
	limit := 20
	order := "desc"
	msgs, err := c.api.ListMessage(ctx, threadID, &limit, &order, nil, nil, nil)
	if err != nil {
		return "", fmt.Errorf("listing messages on thread %s: %w", threadID, err)
	}

	for _, msg := range msgs.Messages {
		if msg.Role != openai.ChatMessageRoleAssistant {
			continue
		}
		for _, part := range msg.Content {
			if part.Text != nil {
				return part.Text.Value, nil
			}
		}
	}
	return "", errors.New("thread has no assistant reply")
}

// ListAssistants returns the hosted assistants available for import.
func (c *Client) ListAssistants(ctx context.Context) ([]openai.Assistant, error) {
	limit := 100
	list, err := c.api.ListAssistants(ctx, &limit, nil, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("listing assistants: %w", err)
	}
	return list.Assistants, nil
}

// SendMessage runs one chat round-trip: ensure a thread, append the user
// message, run the assistant, wait for completion and fetch the reply.
// Returns the reply and the thread id for follow-up turns.
func (c *Client) SendMessage(ctx context.Context, assistantID, threadID, message string) (string, string, error) {
	if threadID == "" {
		id, err := c.CreateThread(ctx)
		if err != nil {
			return "", "", err
		}
		threadID = id
	}

	if err := c.AddMessage(ctx, threadID, message); err != nil {
		return "", threadID, err
	}

	runID, err := c.StartRun(ctx, threadID, assistantID)
	if err != nil {
		return "", threadID, err
	}

	if err := c.WaitForRun(ctx, threadID, runID); err != nil {
		return "", threadID, err
	}

	reply, err := c.LatestAssistantMessage(ctx, threadID)
	if err != nil {
		return "", threadID, err
	}
	return reply, threadID, nil
}
