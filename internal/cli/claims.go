package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/transitdesk/lostfound-backend/internal/app"
	"github.com/transitdesk/lostfound-backend/internal/domain/valueobject"
	"github.com/transitdesk/lostfound-backend/internal/models"
)

func claimsCmd(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claims",
		Short: "Review and resolve claims",
	}

	cmd.AddCommand(claimsListCmd(open))
	cmd.AddCommand(claimsResolveCmd(open, "approve", valueobject.DecisionApprove))
	cmd.AddCommand(claimsResolveCmd(open, "reject", valueobject.DecisionReject))
	return cmd
}

func claimsListCmd(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List claims",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses, _ := cmd.Flags().GetStringSlice("status")
			limit, _ := cmd.Flags().GetInt("limit")

			return withApp(cmd, open, func(ctx context.Context, a *app.App) error {
				claims, err := a.ClaimSvc.ListClaims(ctx, statuses, models.Page{Limit: limit})
				if err != nil {
					return fmt.Errorf("failed to list claims: %w", err)
				}

				out := cmd.OutOrStdout()
				if len(claims) == 0 {
					fmt.Fprintln(out, "No claims found.")
					return nil
				}

				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tLOST\tFOUND\tCONFIDENCE\tSTATUS")
				for _, c := range claims {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.LostReference, c.FoundReference, c.MatchConfidence, statusLabel(c.Status))
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().StringSlice("status", nil, "filter by status (repeatable or comma separated)")
	cmd.Flags().Int("limit", 0, "maximum number of claims (0 = all)")
	return cmd
}

func claimsResolveCmd(open Opener, use string, decision valueobject.ClaimDecision) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " [claim-id]",
		Short: strings.ToUpper(use[:1]) + use[1:] + " a requested claim",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid claim id %q", args[0])
			}
			actor, _ := cmd.Flags().GetString("actor")

			return withApp(cmd, open, func(ctx context.Context, a *app.App) error {
				identity := models.Identity{UserID: actor, Role: models.RoleStaff}
				claim, err := a.ClaimSvc.ResolveClaim(ctx, identity, id, decision)
				if err != nil {
					return fmt.Errorf("failed to %s claim: %w", use, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s claim %s is now %s\n", okMark(), claim.ID, statusLabel(claim.Status))
				return nil
			})
		},
	}
	cmd.Flags().String("actor", "lfctl", "staff identifier recorded on the claim")
	return cmd
}

func okMark() string {
	return color.New(color.FgHiGreen).Sprint("✓")
}

// statusLabel раскрашивает статус заявки.
func statusLabel(status string) string {
	switch valueobject.ClaimStatus(status) {
	case valueobject.ClaimStatusApproved:
		return color.New(color.FgHiGreen).Sprint(status)
	case valueobject.ClaimStatusRejected:
		return color.New(color.FgRed).Sprint(status)
	case valueobject.ClaimStatusClaimRequested:
		return color.New(color.FgYellow).Sprint(status)
	default:
		return color.New(color.FgCyan).Sprint(status)
	}
}
