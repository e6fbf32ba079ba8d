// Package tui renders the receptionist chat screen: a scrolling transcript,
// a text input that is disabled while a run is in flight, and optional
// spoken replies.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/klai4444/Receptionist/internal/assistant"
	"github.com/klai4444/Receptionist/internal/chat"
	"github.com/klai4444/Receptionist/internal/speech"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2563eb"))
	userStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2563eb"))
	botStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#10b981"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
	sepStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

// Model is the chat screen Bubble Tea model.
type Model struct {
	orch  *chat.Orchestrator
	synth *speech.Synthesizer // nil when speech is unavailable

	input    textarea.Model
	viewport viewport.Model
	spin     spinner.Model

	events   chan chat.Message
	messages []chat.Message
	busy     bool
	width    int
	height   int
}

// New wires an orchestrator to a fresh chat screen. synth may be nil.
func New(api assistant.ThreadAPI, poller *assistant.Poller, synth *speech.Synthesizer) Model {
	events := make(chan chat.Message, 8)

	var s chat.Synthesizer
	if synth != nil {
		s = synth
	}
	orch := chat.NewOrchestrator(api, poller, s, chat.RendererFunc(func(m chat.Message) {
		events <- m
	}))

	ta := textarea.New()
	ta.Placeholder = "Type a message..."
	ta.Prompt = "> "
	ta.ShowLineNumbers = false
	ta.SetHeight(1)
	ta.CharLimit = 2000
	ta.Focus()

	vp := viewport.New(80, 20)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		orch:     orch,
		synth:    synth,
		input:    ta,
		viewport: vp,
		spin:     sp,
		events:   events,
	}
}

// Init starts the transcript listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.waitForMessage())
}

// Update handles Bubble Tea messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(msg.Width - 4)
		m.viewport.Width = msg.Width - 2
		m.viewport.Height = max(msg.Height-7, 4)
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case transcriptMsg:
		m.messages = append(m.messages, msg.Message)
		m.refreshViewport()
		if msg.Message.Sender == chat.SenderBot && msg.Message.Audio != nil && m.synth != nil {
			m.synth.Play(msg.Message.Audio)
		}
		return m, m.waitForMessage()

	case sendDoneMsg:
		m.busy = false
		return m, m.input.Focus()

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		if m.synth != nil {
			m.synth.Stop()
		}
		return m, tea.Quit

	case "ctrl+s":
		if m.synth != nil {
			m.synth.SetEnabled(!m.synth.Enabled())
		}
		return m, nil

	case "enter":
		// Sending is disabled while a run is outstanding: one run per
		// session at a time.
		if m.busy {
			return m, nil
		}
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return m, nil
		}
		m.input.Reset()
		m.busy = true
		return m, tea.Batch(m.send(text), m.spin.Tick)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// send runs the full turn (thread, run, polling) off the UI loop.
func (m Model) send(text string) tea.Cmd {
	orch := m.orch
	return func() tea.Msg {
		return sendDoneMsg{Err: orch.SendMessage(context.Background(), text)}
	}
}

// waitForMessage blocks until the orchestrator appends a transcript message.
func (m Model) waitForMessage() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		return transcriptMsg{Message: <-events}
	}
}

func (m *Model) refreshViewport() {
	m.viewport.SetContent(m.renderConversation())
	m.viewport.GotoBottom()
}

func (m Model) renderConversation() string {
	if len(m.messages) == 0 {
		return hintStyle.Render("Virtual receptionist, anytime, anywhere, anyone.")
	}

	var sections []string
	for _, msg := range m.messages {
		label := botStyle.Render("Receptionist:")
		if msg.Sender == chat.SenderUser {
			label = userStyle.Render("You:")
		}
		sections = append(sections, label, msg.Text, "")
	}
	return strings.Join(sections, "\n")
}

// View renders the chat screen.
func (m Model) View() string {
	title := titleStyle.Render("Receptionist")
	if m.synth != nil && m.synth.Enabled() {
		title += hintStyle.Render("  (speech on)")
	}

	separator := sepStyle.Render(strings.Repeat("─", max(m.width-2, 10)))

	status := m.input.View()
	if m.busy {
		status = m.spin.View() + hintStyle.Render(" thinking...")
	}

	hints := hintStyle.Render("enter: send · ctrl+s: toggle speech · esc: quit")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		m.viewport.View(),
		separator,
		status,
		hints,
	)
}
