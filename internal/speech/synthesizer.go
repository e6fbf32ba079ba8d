// Package speech converts finalized bot text to audio and plays it through a
// single playback slot: starting a new clip always stops the previous one.
package speech

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Clip is a handle to one synthesized audio file.
type Clip struct {
	ID   string
	Path string
}

// Synthesizer produces mp3 clips from bot text via the provider's
// text-to-speech endpoint. A global on/off flag gates synthesis; disabling it
// also stops any clip currently playing.
type Synthesizer struct {
	api     openai.Client
	voice   string
	dir     string
	enabled atomic.Bool
	player  *Player
}

// NewSynthesizer creates a synthesizer writing clips under dir.
func NewSynthesizer(apiKey, voice, dir string, enabled bool) *Synthesizer {
	if voice == "" {
		voice = "nova"
	}
	s := &Synthesizer{
		api:    openai.NewClient(option.WithAPIKey(apiKey)),
		voice:  voice,
		dir:    dir,
		player: NewPlayer(),
	}
	s.enabled.Store(enabled)
	return s
}

// Enabled reports whether synthesis is currently attempted.
func (s *Synthesizer) Enabled() bool {
	return s.enabled.Load()
}

// SetEnabled toggles synthesis. Turning it off stops playback immediately.
func (s *Synthesizer) SetEnabled(on bool) {
	s.enabled.Store(on)
	if !on {
		s.player.Stop()
	}
}

// Synthesize converts text to an audio clip. Returns (nil, nil) when speech
// is disabled; a transport error means the caller's message simply has no
// audio attached.
func (s *Synthesizer) Synthesize(ctx context.Context, text string) (*Clip, error) {
	if !s.enabled.Load() || text == "" {
		return nil, nil
	}

	resp, err := s.api.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model: openai.SpeechModelTTS1,
		Voice: openai.AudioSpeechNewParamsVoice(s.voice),
		Input: text,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, err
	}

	id := uuid.New().String()
	path := filepath.Join(s.dir, fmt.Sprintf("reply_%s.mp3", id))
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(file, resp.Body); err != nil {
		file.Close()
		os.Remove(path)
		return nil, err
	}
	if err := file.Close(); err != nil {
		return nil, err
	}

	return &Clip{ID: id, Path: path}, nil
}

// Play starts playback of the clip, stopping any previous clip first.
// No-op when speech has been toggled off.
func (s *Synthesizer) Play(clip *Clip) error {
	if clip == nil || !s.enabled.Load() {
		return nil
	}
	return s.player.Play(clip)
}

// Stop stops any current playback.
func (s *Synthesizer) Stop() {
	s.player.Stop()
}
