package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/klai4444/Receptionist/internal/assistant"
	"github.com/klai4444/Receptionist/internal/logging"
	"github.com/klai4444/Receptionist/internal/speech"
)

// User-facing failure texts. Every failure class gets its own message so a
// turn is never dropped silently; all of them leave the session usable.
const (
	msgConnectFailed = "Sorry, I couldn't reach the receptionist service. Please check your connection and try again."
	msgRetryLater    = "Something went wrong while processing your request. Please try again later."
	msgTimeout       = "The assistant is taking too long to respond. Please try again later."
	msgNoReply       = "I didn't get a response. Please try asking again."
)

var (
	// ErrEmptyMessage is returned when the trimmed input is empty.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrBusy is returned when a run is already in flight for this session.
	ErrBusy = errors.New("a run is already in progress")
)

// Synthesizer is the speech contract the orchestrator drives. Synthesis
// fails soft: an error just means the bot message carries no audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (*speech.Clip, error)
}

// Orchestrator owns one conversation session: it lazily creates the provider
// thread on first send, submits each user turn as a run, drives the run to a
// terminal state and appends exactly one bot message (reply or error text)
// per turn. At most one run is in flight at a time.
type Orchestrator struct {
	api      assistant.ThreadAPI
	poller   *assistant.Poller
	synth    Synthesizer // optional
	renderer Renderer    // optional

	transcript transcript
	threadID   string
	busy       bool
}

// NewOrchestrator creates an orchestrator for one chat screen.
func NewOrchestrator(api assistant.ThreadAPI, poller *assistant.Poller, synth Synthesizer, renderer Renderer) *Orchestrator {
	return &Orchestrator{
		api:      api,
		poller:   poller,
		synth:    synth,
		renderer: renderer,
	}
}

// Busy reports whether a run is currently in flight.
func (o *Orchestrator) Busy() bool {
	return o.busy
}

// Messages returns the transcript so far.
func (o *Orchestrator) Messages() []Message {
	return o.transcript.messages
}

// ThreadID returns the provider thread ID, or "" before the first
// successful send.
func (o *Orchestrator) ThreadID() string {
	return o.threadID
}

// SendMessage submits one user turn and blocks until the corresponding bot
// message (reply or error substitute) has been appended. It returns an error
// only for precondition violations; run and transport failures surface as
// bot messages instead. The busy flag is cleared on every exit path.
func (o *Orchestrator) SendMessage(ctx context.Context, text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ErrEmptyMessage
	}
	if o.busy {
		return ErrBusy
	}
	o.busy = true
	defer func() { o.busy = false }()

	o.append(SenderUser, trimmed, nil)

	threadID, err := o.ensureThread(ctx)
	if err != nil {
		logging.Errorf("thread creation failed: %v", err)
		o.append(SenderBot, msgConnectFailed, nil)
		return nil
	}

	if err := o.api.AddUserMessage(ctx, threadID, trimmed); err != nil {
		logging.Errorf("message submission failed: %v", err)
		o.append(SenderBot, assistant.ProviderErrorText(err), nil)
		return nil
	}

	run, err := o.api.StartRun(ctx, threadID)
	if err != nil {
		logging.Errorf("run start failed: %v", err)
		o.append(SenderBot, assistant.ProviderErrorText(err), nil)
		return nil
	}

	reply, err := o.poller.Await(ctx, threadID, run)
	if err != nil {
		o.append(SenderBot, failureText(err), nil)
		return nil
	}

	reply = assistant.StripCitations(reply)

	var clip *speech.Clip
	if o.synth != nil {
		clip, err = o.synth.Synthesize(ctx, reply)
		if err != nil {
			logging.Warnf("speech synthesis failed: %v", err)
			clip = nil
		}
	}

	o.append(SenderBot, reply, clip)
	return nil
}

// ensureThread returns the cached thread ID, creating the thread on first
// use. A failed creation is retried lazily on the next send.
func (o *Orchestrator) ensureThread(ctx context.Context) (string, error) {
	if o.threadID != "" {
		return o.threadID, nil
	}
	id, err := o.api.CreateThread(ctx)
	if err != nil {
		return "", err
	}
	o.threadID = id
	logging.Infof("created thread %s", id)
	return id, nil
}

func (o *Orchestrator) append(sender Sender, text string, audio *speech.Clip) {
	msg := o.transcript.append(sender, text, audio)
	if o.renderer != nil {
		o.renderer.Append(msg)
	}
}

// failureText maps a polling outcome to its user-facing message.
func failureText(err error) string {
	var runErr *assistant.RunError
	switch {
	case errors.Is(err, assistant.ErrTimeout):
		return msgTimeout
	case errors.Is(err, assistant.ErrNoReply):
		return msgNoReply
	case errors.As(err, &runErr):
		if runErr.Detail != "" {
			return "The assistant run " + string(runErr.Status) + ": " + runErr.Detail
		}
		return "The assistant run " + string(runErr.Status) + ". Please try again."
	default:
		// Transport error mid-poll: the loop stopped, nothing to recover.
		logging.Errorf("polling failed: %v", err)
		return msgRetryLater
	}
}
