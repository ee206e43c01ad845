package cli

import (
	"github.com/spf13/cobra"

	"quiz-player/internal/config"
	"quiz-player/internal/tui"
)

// NewPlayCmd plays the quiz in the terminal.
func NewPlayCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play the quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			b, err := openBackends(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer b.Close()
			return tui.Run(cmd.Context(), contentSource(cfg, b), engineOptions(cfg)...)
		},
	}
}
