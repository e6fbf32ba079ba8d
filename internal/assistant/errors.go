package assistant

import (
	"errors"
	"fmt"

	"github.com/openai/openai-go"
)

var (
	// ErrTimeout means the attempt budget ran out before the run reached a
	// terminal status.
	ErrTimeout = errors.New("run did not finish within the polling budget")

	// ErrNoReply means the run completed but the thread holds no assistant
	// message.
	ErrNoReply = errors.New("run completed without an assistant message")
)

// RunError describes a run that ended in failed, cancelled or expired.
type RunError struct {
	Status RunStatus
	Detail string // provider last_error.message, may be empty
}

func (e *RunError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("run %s: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("run %s", e.Status)
}

// ProviderErrorText renders a transport error for display. When the error
// carries a structured provider error the text is composed from the HTTP
// status and the provider message, otherwise the raw error text is used.
func ProviderErrorText(err error) string {
	var apierr *openai.Error
	if errors.As(err, &apierr) && apierr.Message != "" {
		return fmt.Sprintf("OpenAI error (%d): %s", apierr.StatusCode, apierr.Message)
	}
	return err.Error()
}
