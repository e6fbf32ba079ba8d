// Package assistant drives a provider-side assistant run from submission to a
// terminal state: thread creation, message submission, run polling, tool-call
// approval and final message retrieval.
package assistant

import "context"

// RunStatus is the provider-reported state of a run.
type RunStatus string

const (
	StatusQueued         RunStatus = "queued"
	StatusInProgress     RunStatus = "in_progress"
	StatusRequiresAction RunStatus = "requires_action"
	StatusCompleted      RunStatus = "completed"
	StatusFailed         RunStatus = "failed"
	StatusCancelled      RunStatus = "cancelled"
	StatusExpired        RunStatus = "expired"
)

// Terminal reports whether the run has finished and will not transition again.
func (s RunStatus) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCancelled, StatusExpired:
		return true
	}
	return false
}

// ToolCall is a pending provider-requested function invocation that blocks a
// run until an output is submitted for it.
type ToolCall struct {
	ID   string
	Name string
}

// ToolOutput is the result submitted back for one tool call.
type ToolOutput struct {
	ToolCallID string
	Output     string
}

// Run is the orchestrator's view of a provider run.
type Run struct {
	ID           string
	Status       RunStatus
	PendingCalls []ToolCall // populated while Status is requires_action
	LastError    string     // provider last_error.message when present
}

// ThreadAPI is the transport surface the orchestrator and poller consume.
// Implementations issue single requests with no retries; errors bubble up.
type ThreadAPI interface {
	// CreateThread creates a new conversation thread and returns its ID.
	CreateThread(ctx context.Context) (string, error)

	// AddUserMessage appends a user message to the thread.
	AddUserMessage(ctx context.Context, threadID, text string) error

	// StartRun starts an assistant run against the thread.
	StartRun(ctx context.Context, threadID string) (*Run, error)

	// GetRun fetches the current state of a run.
	GetRun(ctx context.Context, threadID, runID string) (*Run, error)

	// SubmitToolOutputs submits one batch of tool outputs for a paused run.
	SubmitToolOutputs(ctx context.Context, threadID, runID string, outputs []ToolOutput) error

	// LatestAssistantText returns the text of the most recent assistant
	// message on the thread. ok is false when no assistant message exists.
	LatestAssistantText(ctx context.Context, threadID string) (text string, ok bool, err error)
}
