package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

type fakeRuns struct {
	statuses []openai.RunStatus
	err      error
	calls    int
}

func (f *fakeRuns) RetrieveRun(ctx context.Context, threadID, runID string) (openai.Run, error) {
	if f.err != nil {
		return openai.Run{}, f.err
	}
	status := f.statuses[len(f.statuses)-1]
	if f.calls < len(f.statuses) {
		status = f.statuses[f.calls]
	}
	f.calls++
	return openai.Run{ID: runID, Status: status}, nil
}

func TestWaitForRunCompletes(t *testing.T) {
	runs := &fakeRuns{statuses: []openai.RunStatus{
		openai.RunStatusQueued,
		openai.RunStatusInProgress,
		openai.RunStatusCompleted,
	}}

	err := waitForRun(context.Background(), runs, "thread_1", "run_1", time.Millisecond, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if runs.calls != 3 {
		t.Fatalf("expected 3 polls, got %d", runs.calls)
	}
}

func TestWaitForRunHitsAttemptCeiling(t *testing.T) {
	runs := &fakeRuns{statuses: []openai.RunStatus{openai.RunStatusInProgress}}

	err := waitForRun(context.Background(), runs, "thread_1", "run_1", time.Millisecond, 5)
	if !errors.Is(err, ErrRunTimeout) {
		t.Fatalf("expected ErrRunTimeout, got %v", err)
	}
	if runs.calls != 5 {
		t.Fatalf("expected exactly 5 polls, got %d", runs.calls)
	}
}

func TestWaitForRunTerminalFailure(t *testing.T) {
	runs := &fakeRuns{statuses: []openai.RunStatus{openai.RunStatusFailed}}

	err := waitForRun(context.Background(), runs, "thread_1", "run_1", time.Millisecond, 10)
	if err == nil {
		t.Fatal("expected error for failed run")
	}
	if runs.calls != 1 {
		t.Fatalf("expected polling to stop on terminal state, got %d polls", runs.calls)
	}
}

func TestWaitForRunRespectsContextCancel(t *testing.T) {
	runs := &fakeRuns{statuses: []openai.RunStatus{openai.RunStatusInProgress}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := waitForRun(ctx, runs, "thread_1", "run_1", time.Second, 10)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestWaitForRunPropagatesRetrieveError(t *testing.T) {
	runs := &fakeRuns{err: errors.New("api unavailable")}

	err := waitForRun(context.Background(), runs, "thread_1", "run_1", time.Millisecond, 10)
	if err == nil {
		t.Fatal("expected retrieve error to propagate")
	}
}
