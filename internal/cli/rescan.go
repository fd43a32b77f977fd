package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/transitdesk/lostfound-backend/internal/app"
)

func rescanCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "rescan [reference]",
		Short: "Re-run matching for an existing lost or found report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(ctx context.Context, a *app.App) error {
				claims, err := a.Engine.Rescan(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to rescan %s: %w", args[0], err)
				}

				out := cmd.OutOrStdout()
				if len(claims) == 0 {
					fmt.Fprintf(out, "No new matches for %s.\n", args[0])
					return nil
				}
				fmt.Fprintf(out, "%s %d new claim(s) for %s:\n", okMark(), len(claims), args[0])
				for _, c := range claims {
					fmt.Fprintf(out, "  %s  %s ↔ %s  %s\n", c.ID, c.LostReference, c.FoundReference,
						color.New(color.FgHiMagenta).Sprint(c.MatchConfidence))
				}
				return nil
			})
		},
	}
}
