package assistant

import (
	"context"
	"time"

	"github.com/klai4444/Receptionist/internal/logging"
)

const (
	// DefaultMaxAttempts bounds the number of status fetches per run.
	DefaultMaxAttempts = 30
	// DefaultInterval is the delay before each status fetch.
	DefaultInterval = time.Second
)

// Poller drives a run through its state machine until a terminal state.
// It performs one transition per tick: sleep, fetch status, and when the run
// pauses for tool outputs, approve and resubmit. The loop is bounded by
// MaxAttempts so a stuck run can never block a send forever.
type Poller struct {
	API         ThreadAPI
	Interval    time.Duration
	MaxAttempts int
}

// NewPoller creates a poller with the default interval and attempt budget.
func NewPoller(api ThreadAPI) *Poller {
	return &Poller{
		API:         api,
		Interval:    DefaultInterval,
		MaxAttempts: DefaultMaxAttempts,
	}
}

// Await polls run until it reaches a terminal state and returns the most
// recent assistant message text.
//
// Failure modes map to distinct errors: *RunError for failed/cancelled/expired
// runs, ErrTimeout when the attempt budget is exhausted, ErrNoReply when a
// completed run has no assistant message, and the underlying transport error
// when any fetch or submit inside the loop fails (polling stops immediately).
func (p *Poller) Await(ctx context.Context, threadID string, run *Run) (string, error) {
	interval := p.Interval
	if interval < 0 {
		interval = 0
	}
	maxAttempts := p.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	current := run
	for attempts := 0; !current.Status.Terminal() && attempts < maxAttempts; attempts++ {
		next, err := p.step(ctx, threadID, current, interval)
		if err != nil {
			return "", err
		}
		current = next
	}

	switch current.Status {
	case StatusCompleted:
		text, ok, err := p.API.LatestAssistantText(ctx, threadID)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", ErrNoReply
		}
		return text, nil
	case StatusFailed, StatusCancelled, StatusExpired:
		return "", &RunError{Status: current.Status, Detail: current.LastError}
	default:
		return "", ErrTimeout
	}
}

// step performs a single polling transition: wait out the interval, fetch the
// run, and resolve a requires_action pause by submitting approvals for every
// pending tool call in one batch. After a successful submit the run is treated
// as in_progress again so the terminal check never observes requires_action.
func (p *Poller) step(ctx context.Context, threadID string, run *Run, interval time.Duration) (*Run, error) {
	if err := sleep(ctx, interval); err != nil {
		return nil, err
	}

	current, err := p.API.GetRun(ctx, threadID, run.ID)
	if err != nil {
		return nil, err
	}

	if current.Status == StatusRequiresAction {
		outputs := ApproveAll(current.PendingCalls)
		logging.Infof("run %s paused for %d tool call(s), submitting approvals", current.ID, len(outputs))
		if err := p.API.SubmitToolOutputs(ctx, threadID, current.ID, outputs); err != nil {
			return nil, err
		}
		current.Status = StatusInProgress
		current.PendingCalls = nil
	}

	return current, nil
}

// sleep waits for d or until the context is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
