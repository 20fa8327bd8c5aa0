package commands

import (
	"context"
	"fmt"

	portssvc "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/services"
	"github.com/spf13/cobra"
)

func newPettyCashCommand(runtime Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pettycash",
		Short: "Petty cash ledger maintenance",
	}

	var ownerID string
	rebalance := &cobra.Command{
		Use:   "rebalance",
		Short: "Recompute every running balance of a tenant's float",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, runtime, func(ctx context.Context, svc *portssvc.ServiceContainer) error {
				fixed, err := svc.PettyCash.Rebalance(ctx, ownerID)
				if err != nil {
					return fmt.Errorf("rebalancing petty cash: %w", err)
				}
				balance, err := svc.PettyCash.CurrentBalance(ctx, ownerID)
				if err != nil {
					return fmt.Errorf("reading petty cash balance: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "corrected %d entries, balance %s\n", fixed, balance.StringFixed(2))
				return nil
			})
		},
	}
	rebalance.Flags().StringVar(&ownerID, "owner", "", "tenant owner id (required)")
	_ = rebalance.MarkFlagRequired("owner")

	cmd.AddCommand(rebalance)
	return cmd
}

func newReportCommand(runtime Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Financial reports",
	}

	var ownerID, month string
	audit := &cobra.Command{
		Use:   "audit",
		Short: "Print the monthly audit report as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, runtime, func(ctx context.Context, svc *portssvc.ServiceContainer) error {
				report, err := svc.Reporting.BuildAuditReport(ctx, ownerID, month)
				if err != nil {
					return fmt.Errorf("building audit report: %w", err)
				}
				return printJSON(cmd.OutOrStdout(), report)
			})
		},
	}
	audit.Flags().StringVar(&ownerID, "owner", "", "tenant owner id (required)")
	audit.Flags().StringVar(&month, "month", "", "month as YYYY-MM (default current month)")
	_ = audit.MarkFlagRequired("owner")

	cmd.AddCommand(audit)
	return cmd
}

func newInsightsCommand(runtime Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Derived spending insights",
	}

	var ownerID string
	alerts := &cobra.Command{
		Use:   "alerts",
		Short: "Print the current spending alerts as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, runtime, func(ctx context.Context, svc *portssvc.ServiceContainer) error {
				list, err := svc.Insights.GetAlerts(ctx, ownerID)
				if err != nil {
					return fmt.Errorf("computing alerts: %w", err)
				}
				return printJSON(cmd.OutOrStdout(), list)
			})
		},
	}
	alerts.Flags().StringVar(&ownerID, "owner", "", "tenant owner id (required)")
	_ = alerts.MarkFlagRequired("owner")

	cmd.AddCommand(alerts)
	return cmd
}
