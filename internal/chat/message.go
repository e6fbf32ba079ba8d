// Package chat owns the conversation: the visible transcript, the lazy
// provider thread, and the orchestration of one run per user turn.
package chat

import (
	"time"

	"github.com/klai4444/Receptionist/internal/speech"
)

// Sender identifies who authored a transcript message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one entry in the visible transcript. Immutable once appended
// except for the audio handle, which is attached when synthesis finishes.
type Message struct {
	ID     int64
	Text   string
	Sender Sender
	Audio  *speech.Clip
}

// Renderer receives finalized messages for display.
type Renderer interface {
	Append(Message)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(Message)

// Append calls f(m).
func (f RendererFunc) Append(m Message) { f(m) }

// transcript holds the in-memory message history for one chat screen.
// IDs are timestamp-derived and strictly increasing.
type transcript struct {
	messages []Message
	lastID   int64
}

func (t *transcript) append(sender Sender, text string, audio *speech.Clip) Message {
	id := time.Now().UnixMilli()
	if id <= t.lastID {
		id = t.lastID + 1
	}
	t.lastID = id

	msg := Message{ID: id, Text: text, Sender: sender, Audio: audio}
	t.messages = append(t.messages, msg)
	return msg
}
