package speech

import (
	"fmt"
	"os/exec"
	"runtime"
	"sync"
)

// Player owns the single audio playback slot. Starting a new clip kills the
// process playing the previous one, so two clips never sound at once.
type Player struct {
	mu      sync.Mutex
	current *exec.Cmd
	playing string // clip ID currently playing, for tests and status
}

// NewPlayer creates an idle player.
func NewPlayer() *Player {
	return &Player{}
}

// Play starts playback of the clip, stopping the previous one first.
func (p *Player) Play(clip *Clip) error {
	cmd, err := playbackCommand(clip.Path)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()

	if err := cmd.Start(); err != nil {
		return err
	}
	p.current = cmd
	p.playing = clip.ID

	// Reap the process when playback finishes on its own.
	go func() {
		cmd.Wait()
		p.mu.Lock()
		if p.current == cmd {
			p.current = nil
			p.playing = ""
		}
		p.mu.Unlock()
	}()

	return nil
}

// Stop stops any current playback. Idempotent.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

// Playing returns the ID of the clip currently playing, or "".
func (p *Player) Playing() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

func (p *Player) stopLocked() {
	if p.current != nil && p.current.Process != nil {
		p.current.Process.Kill()
	}
	p.current = nil
	p.playing = ""
}

// playbackCommand builds the platform playback process. Replaceable in tests.
var playbackCommand = defaultPlaybackCommand

func defaultPlaybackCommand(path string) (*exec.Cmd, error) {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("afplay", path), nil
	case "linux":
		return exec.Command("mpg123", "-q", path), nil
	case "windows":
		return exec.Command("cmd", "/c", "start", "/wait", path), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}
