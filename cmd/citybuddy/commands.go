package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ngmaloney/citybuddy/internal/catalog"
	"github.com/ngmaloney/citybuddy/internal/config"
	"github.com/ngmaloney/citybuddy/internal/models"
	"github.com/ngmaloney/citybuddy/internal/places"
	"github.com/spf13/cobra"
)

// requestTimeout bounds the network calls of a single command
const requestTimeout = 30 * time.Second

func newRecommendCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "recommend [category]",
		Short: "List places near you for a category",
		Long: `Lists places near your postal code, nearest first.

Categories: food, nightlife, parks, events, shopping, culture.
Display names such as "Food & Restaurants" and "things to do" work too.`,
		Args: cobra.MinimumNArgs(1),
		RunE: withApp(flags, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(ctx, requestTimeout)
			defer cancel()

			category := strings.Join(args, " ")
			result := a.guide.Recommendations(ctx, category)
			location := a.guide.Location(ctx)

			title := category
			if interest, ok := catalog.Normalize(category); ok {
				title = catalog.DisplayName(interest)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s near %s (source: %s)\n\n", title, location.PostalCode, result.Source.Label())
			if len(result.Items) == 0 {
				fmt.Fprintln(out, "Nothing found nearby.")
				return nil
			}
			for i, r := range result.Items {
				writeRecommendation(out, i+1, r, location.PostalCode)
			}
			return nil
		}),
	}
}

func writeRecommendation(w io.Writer, n int, r models.Recommendation, postalCode string) {
	fmt.Fprintf(w, "%d. %s (%s)\n", n, r.Name, r.Distance)
	if r.Address != "" {
		fmt.Fprintf(w, "   %s\n", r.Address)
	}
	if r.Description != "" {
		fmt.Fprintf(w, "   %s\n", r.Description)
	}
	fmt.Fprintf(w, "   %s\n\n", places.SearchURL(r.Name, postalCode))
}

func newEmergencyCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "emergency",
		Short: "List hospitals, clinics and police stations near you",
		Args:  cobra.NoArgs,
		RunE: withApp(flags, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(ctx, requestTimeout)
			defer cancel()

			result := a.guide.EmergencyServices(ctx)
			location := a.guide.Location(ctx)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "In an emergency call 911.")
			fmt.Fprintf(out, "Services near %s (source: %s)\n\n", location.PostalCode, result.Source.Label())
			for _, s := range result.Items {
				fmt.Fprintf(out, "[%s] %s (%s)\n", strings.ToUpper(string(s.Type)), s.Name, s.Distance)
				fmt.Fprintf(out, "   %s\n", s.Address)
				if s.Phone != "" {
					fmt.Fprintf(out, "   Phone: %s\n", s.Phone)
				}
				fmt.Fprintf(out, "   %s\n\n", places.DirectionsURL(location.Location, s.Address))
			}
			return nil
		}),
	}
}

func newRoommatesCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roommates",
		Short: "List potential roommates",
		Args:  cobra.NoArgs,
		RunE: withApp(flags, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, r := range a.guide.Roommates() {
				pets := "no pets"
				if r.Pets {
					pets = "pet friendly"
				}
				fmt.Fprintf(out, "%s  %s - %s, %s budget, %s, %s\n", r.ID, r.Name, r.Location, r.Budget, r.Schedule, pets)
				fmt.Fprintf(out, "   %s\n", r.Bio)
			}
			return nil
		}),
	}

	var agreement bool
	match := &cobra.Command{
		Use:   "match [id]",
		Short: "Score your compatibility with a roommate",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(flags, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			roommate, ok := catalog.RoommateByID(args[0])
			if !ok {
				return fmt.Errorf("no roommate with id %q", args[0])
			}

			ctx, cancel := context.WithTimeout(ctx, requestTimeout)
			defer cancel()

			out := cmd.OutOrStdout()
			score := a.guide.Compatibility(ctx, roommate)
			fmt.Fprintf(out, "%s: %d%% match\n%s\n", roommate.Name, score.Score, score.Summary)

			if agreement {
				fmt.Fprintf(out, "\nRoommate agreement\n\n%s\n", a.guide.Agreement(ctx, roommate))
			}
			return nil
		}),
	}
	match.Flags().BoolVar(&agreement, "agreement", false, "Also draft a roommate agreement")

	cmd.AddCommand(match)
	return cmd
}

func newChatCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "chat [message]",
		Short: "Ask the city guide a question",
		Args:  cobra.MinimumNArgs(1),
		RunE: withApp(flags, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(ctx, requestTimeout)
			defer cancel()

			fmt.Fprintln(cmd.OutOrStdout(), a.guide.Chat(ctx, strings.Join(args, " ")))
			return nil
		}),
	}
}

func newProfileCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or reset your stored profile",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the stored profile as JSON",
		Args:  cobra.NoArgs,
		RunE: withApp(flags, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			p, err := a.profiles.GetProfile(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if p == nil {
				fmt.Fprintln(out, "No profile yet. Run citybuddy to complete onboarding.")
				return nil
			}

			data, err := json.MarshalIndent(p, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding profile: %w", err)
			}
			fmt.Fprintln(out, string(data))
			fmt.Fprintf(out, "Onboarding: %s\n", a.profiles.State(ctx))
			return nil
		}),
	}

	restart := &cobra.Command{
		Use:   "restart",
		Short: "Run onboarding again on next start, keeping your answers as defaults",
		Args:  cobra.NoArgs,
		RunE: withApp(flags, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			if err := a.profiles.RestartOnboarding(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Onboarding will run on next start.")
			return nil
		}),
	}

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Delete the stored profile",
		Args:  cobra.NoArgs,
		RunE: withApp(flags, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			if err := a.profiles.Reset(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Profile deleted.")
			return nil
		}),
	}

	cmd.AddCommand(show, restart, reset)
	return cmd
}

func newConfigCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force && fileExists(flags.configPath) {
				return fmt.Errorf("%s already exists (use --force to overwrite)", flags.configPath)
			}
			if err := config.DefaultConfig().Save(flags.configPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", flags.configPath)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	cmd.AddCommand(initCmd)
	return cmd
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func newMapCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "map",
		Short: "Print map links for your location",
		Args:  cobra.NoArgs,
		RunE: withApp(flags, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(ctx, requestTimeout)
			defer cancel()

			location := a.guide.Location(ctx)
			coords := location.Coordinates

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", location.Location, location.PostalCode)
			fmt.Fprintf(out, "Coordinates: %.4f, %.4f\n", coords.Latitude, coords.Longitude)
			fmt.Fprintf(out, "Map:   %s\n", places.EmbedURL(a.cfg.Maps.APIKey, location.PostalCode, 0))
			fmt.Fprintf(out, "Embed: %s\n", places.OpenStreetMapEmbedURL(coords.Latitude, coords.Longitude))
			return nil
		}),
	}
}
