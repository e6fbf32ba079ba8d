package assistant

import (
	"context"
	"errors"
	"testing"
)

// scriptedFetch is what the fake returns for one GetRun call.
type scriptedFetch struct {
	status    RunStatus
	calls     []ToolCall
	lastError string
}

// fakeThreadAPI implements ThreadAPI with a scripted status sequence.
// The last script entry repeats once the script is exhausted.
type fakeThreadAPI struct {
	script   []scriptedFetch
	fetches  int
	submits  [][]ToolOutput
	reply    string
	hasReply bool

	getErrAt  int // 1-based fetch index at which GetRun fails (0 = never)
	getErr    error
	submitErr error
	listErr   error
}

func (f *fakeThreadAPI) CreateThread(context.Context) (string, error) {
	return "thread_1", nil
}

func (f *fakeThreadAPI) AddUserMessage(context.Context, string, string) error {
	return nil
}

func (f *fakeThreadAPI) StartRun(context.Context, string) (*Run, error) {
	return &Run{ID: "run_1", Status: StatusQueued}, nil
}

func (f *fakeThreadAPI) GetRun(_ context.Context, _, runID string) (*Run, error) {
	f.fetches++
	if f.getErrAt != 0 && f.fetches >= f.getErrAt {
		return nil, f.getErr
	}
	i := f.fetches - 1
	if i >= len(f.script) {
		i = len(f.script) - 1
	}
	s := f.script[i]
	return &Run{ID: runID, Status: s.status, PendingCalls: s.calls, LastError: s.lastError}, nil
}

func (f *fakeThreadAPI) SubmitToolOutputs(_ context.Context, _, _ string, outputs []ToolOutput) error {
	if f.submitErr != nil {
		return f.submitErr
	}
	f.submits = append(f.submits, outputs)
	return nil
}

func (f *fakeThreadAPI) LatestAssistantText(context.Context, string) (string, bool, error) {
	if f.listErr != nil {
		return "", false, f.listErr
	}
	return f.reply, f.hasReply, nil
}

func newTestPoller(api ThreadAPI) *Poller {
	return &Poller{API: api, Interval: 0, MaxAttempts: DefaultMaxAttempts}
}

func TestAwaitCompletedRun(t *testing.T) {
	api := &fakeThreadAPI{
		script: []scriptedFetch{
			{status: StatusQueued},
			{status: StatusInProgress},
			{status: StatusCompleted},
		},
		reply:    "Office hours are 9-5【1†source】",
		hasReply: true,
	}

	text, err := newTestPoller(api).Await(context.Background(), "thread_1", &Run{ID: "run_1", Status: StatusQueued})
	if err != nil {
		t.Fatalf("Await failed: %v", err)
	}
	if text != "Office hours are 9-5【1†source】" {
		t.Errorf("unexpected reply: %q", text)
	}
	if api.fetches != 3 {
		t.Errorf("expected 3 status fetches, got %d", api.fetches)
	}
}

func TestAwaitBoundedPolling(t *testing.T) {
	api := &fakeThreadAPI{
		script: []scriptedFetch{{status: StatusInProgress}},
	}

	_, err := newTestPoller(api).Await(context.Background(), "thread_1", &Run{ID: "run_1", Status: StatusQueued})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if api.fetches != DefaultMaxAttempts {
		t.Errorf("expected exactly %d status fetches, got %d", DefaultMaxAttempts, api.fetches)
	}
}

func TestAwaitApprovesToolCalls(t *testing.T) {
	api := &fakeThreadAPI{
		script: []scriptedFetch{
			{status: StatusInProgress},
			{status: StatusRequiresAction, calls: []ToolCall{
				{ID: "a", Name: "lookup_office_hours"},
				{ID: "b", Name: "lookup_building"},
			}},
			{status: StatusInProgress},
			{status: StatusInProgress},
			{status: StatusCompleted},
		},
		reply:    "Office hours are 9-5",
		hasReply: true,
	}

	text, err := newTestPoller(api).Await(context.Background(), "thread_1", &Run{ID: "run_1", Status: StatusQueued})
	if err != nil {
		t.Fatalf("Await failed: %v", err)
	}
	if text != "Office hours are 9-5" {
		t.Errorf("unexpected reply: %q", text)
	}

	if len(api.submits) != 1 {
		t.Fatalf("expected one approval batch, got %d", len(api.submits))
	}
	batch := api.submits[0]
	if len(batch) != 2 {
		t.Fatalf("expected 2 approvals, got %d", len(batch))
	}
	if batch[0].ToolCallID != "a" || batch[1].ToolCallID != "b" {
		t.Errorf("call IDs not preserved: %+v", batch)
	}
	for _, out := range batch {
		if out.Output != `{"results": "Approved"}` {
			t.Errorf("unexpected approval payload: %q", out.Output)
		}
	}
}

func TestAwaitRunFailed(t *testing.T) {
	api := &fakeThreadAPI{
		script: []scriptedFetch{
			{status: StatusFailed, lastError: "rate limit exceeded"},
		},
	}

	_, err := newTestPoller(api).Await(context.Background(), "thread_1", &Run{ID: "run_1", Status: StatusQueued})
	var runErr *RunError
	if !errors.As(err, &runErr) {
		t.Fatalf("expected *RunError, got %v", err)
	}
	if runErr.Status != StatusFailed {
		t.Errorf("expected failed status, got %s", runErr.Status)
	}
	if runErr.Detail != "rate limit exceeded" {
		t.Errorf("expected provider detail, got %q", runErr.Detail)
	}
}

func TestAwaitTransportErrorStopsPolling(t *testing.T) {
	transportErr := errors.New("connection reset")
	api := &fakeThreadAPI{
		script:   []scriptedFetch{{status: StatusInProgress}},
		getErrAt: 2,
		getErr:   transportErr,
	}

	_, err := newTestPoller(api).Await(context.Background(), "thread_1", &Run{ID: "run_1", Status: StatusQueued})
	if !errors.Is(err, transportErr) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if api.fetches != 2 {
		t.Errorf("polling should stop at the failing fetch, got %d fetches", api.fetches)
	}
}

func TestAwaitNoAssistantMessage(t *testing.T) {
	api := &fakeThreadAPI{
		script: []scriptedFetch{{status: StatusCompleted}},
	}

	_, err := newTestPoller(api).Await(context.Background(), "thread_1", &Run{ID: "run_1", Status: StatusQueued})
	if !errors.Is(err, ErrNoReply) {
		t.Fatalf("expected ErrNoReply, got %v", err)
	}
}

func TestAwaitTerminalOnEntry(t *testing.T) {
	api := &fakeThreadAPI{reply: "Hello", hasReply: true}

	text, err := newTestPoller(api).Await(context.Background(), "thread_1", &Run{ID: "run_1", Status: StatusCompleted})
	if err != nil {
		t.Fatalf("Await failed: %v", err)
	}
	if text != "Hello" {
		t.Errorf("unexpected reply: %q", text)
	}
	if api.fetches != 0 {
		t.Errorf("terminal run should not be re-fetched, got %d fetches", api.fetches)
	}
}
