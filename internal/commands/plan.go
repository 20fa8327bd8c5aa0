package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	portssvc "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/services"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/dto"
	"github.com/spf13/cobra"
)

func newPlanCommand(runtime Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Subscription and plan administration",
	}

	var (
		ownerID      string
		planType     string
		status       string
		expiry       string
		storageLimit int64
	)
	set := &cobra.Command{
		Use:   "set",
		Short: "Change a tenant's plan, subscription status, expiry or storage quota",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			var req dto.UpdatePlanRequest
			if flags.Changed("plan") {
				p := domain.PlanType(planType)
				req.PlanType = &p
			}
			if flags.Changed("status") {
				s := domain.SubscriptionStatus(status)
				req.SubscriptionStatus = &s
			}
			if flags.Changed("expiry") {
				t, err := time.Parse("2006-01-02", expiry)
				if err != nil {
					return fmt.Errorf("invalid --expiry %q, expected YYYY-MM-DD", expiry)
				}
				req.SubscriptionExpiry = &t
			}
			if flags.Changed("storage-limit") {
				req.StorageLimitBytes = &storageLimit
			}
			if req == (dto.UpdatePlanRequest{}) {
				return fmt.Errorf("nothing to change: pass at least one of --plan, --status, --expiry, --storage-limit")
			}

			return withServices(cmd, runtime, func(ctx context.Context, svc *portssvc.ServiceContainer) error {
				profile, err := svc.Profile.UpdatePlan(ctx, ownerID, req)
				if err != nil {
					return fmt.Errorf("updating plan: %w", err)
				}
				return printJSON(cmd.OutOrStdout(), dto.ToProfileResponse(profile))
			})
		},
	}
	set.Flags().StringVar(&ownerID, "owner", "", "tenant owner id (required)")
	set.Flags().StringVar(&planType, "plan", "", "plan type: free or pro")
	set.Flags().StringVar(&status, "status", "", "subscription status: trial, active, expired or cancelled")
	set.Flags().StringVar(&expiry, "expiry", "", "subscription expiry as YYYY-MM-DD")
	set.Flags().Int64Var(&storageLimit, "storage-limit", 0, "receipt storage quota in bytes")
	_ = set.MarkFlagRequired("owner")

	cmd.AddCommand(set)
	return cmd
}
