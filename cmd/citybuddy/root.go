package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/citybuddy/internal/ui"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "citybuddy.yaml"

// flags shared by every command
type rootFlags struct {
	configPath string
	dbPath     string
}

// newRootCmd builds the command tree. It runs the terminal UI when called without a subcommand.
func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "citybuddy",
		Short: "CityBuddy - your Toronto city guide",
		Long: `CityBuddy helps newcomers, students and visitors find their way around Toronto:
places to eat and explore, emergency services, roommate matches and a chat assistant.

Run without arguments to start the interactive terminal app.
Set GOOGLE_MAPS_API_KEY and GEMINI_API_KEY for live results.`,
		SilenceUsage: true,
		RunE: withApp(flags, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			p := tea.NewProgram(ui.NewModel(a.guide, a.profiles, a.logger), tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running application: %w", err)
			}
			return nil
		}),
	}

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", defaultConfigPath, "Path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&flags.dbPath, "db", "", "Path to the profile database (overrides config)")

	rootCmd.AddCommand(
		newRecommendCmd(flags),
		newEmergencyCmd(flags),
		newRoommatesCmd(flags),
		newChatCmd(flags),
		newProfileCmd(flags),
		newMapCmd(flags),
		newConfigCmd(flags),
	)

	return rootCmd
}

// runFunc is a command body that receives the wired app
type runFunc func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error

// withApp wires the app for the duration of one command
func withApp(flags *rootFlags, fn runFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		a, err := newApp(ctx, flags.configPath, flags.dbPath)
		if err != nil {
			return err
		}
		defer a.Close()

		return fn(ctx, a, cmd, args)
	}
}
