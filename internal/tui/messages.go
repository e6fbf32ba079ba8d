package tui

import "github.com/klai4444/Receptionist/internal/chat"

// transcriptMsg carries one finalized transcript message from the
// orchestrator's renderer callback into the Bubble Tea loop.
type transcriptMsg struct {
	Message chat.Message
}

// sendDoneMsg signals that a SendMessage call has returned and the input can
// be re-enabled.
type sendDoneMsg struct {
	Err error
}
