package main

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/klai4444/Receptionist/internal/assistant"
	"github.com/klai4444/Receptionist/internal/logging"
	"github.com/klai4444/Receptionist/internal/speech"
	"github.com/klai4444/Receptionist/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the receptionist chat screen",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.APIKey == "" {
			return fmt.Errorf("no API key configured: set OPENAI_API_KEY or api_key in config.yaml")
		}
		if cfg.AssistantID == "" {
			return fmt.Errorf("no assistant configured: set RECEPTIONIST_ASSISTANT_ID or assistant_id in config.yaml")
		}
		if err := cfg.EnsureDataDir(); err != nil {
			return err
		}

		// Log lines would corrupt the alternate screen.
		logging.Disable()
		defer logging.Enable()

		client := assistant.NewClient(cfg.APIKey, cfg.AssistantID)
		poller := &assistant.Poller{
			API:         client,
			Interval:    cfg.Run.PollInterval(),
			MaxAttempts: cfg.Run.MaxPollAttempts,
		}
		synth := speech.NewSynthesizer(
			cfg.APIKey,
			cfg.Speech.Voice,
			filepath.Join(cfg.DataDir, "audio"),
			cfg.Speech.Enabled,
		)

		program := tea.NewProgram(tui.New(client, poller, synth), tea.WithAltScreen())
		_, err = program.Run()
		return err
	},
}
