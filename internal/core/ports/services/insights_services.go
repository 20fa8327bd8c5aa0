package services

import (
	"context"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
)

// PlanLimitSvc evaluates free-tier ceilings.
type PlanLimitSvc interface {
	GetUsage(ctx context.Context, ownerID string) (*domain.PlanUsage, error)

	// EnsureAllowed returns ErrPlanLimitReached when resource is at its ceiling.
	EnsureAllowed(ctx context.Context, ownerID string, resource domain.PlanResource) error
}

// InsightsSvc derives alerts and overview figures from the record store.
type InsightsSvc interface {
	GetAlerts(ctx context.Context, ownerID string) ([]domain.Alert, error)
	GetVariance(ctx context.Context, ownerID string) ([]domain.CategoryVariance, error)
	GetDashboard(ctx context.Context, ownerID string) (*domain.Dashboard, error)
}

// ReportingSvc builds monthly audit reports.
type ReportingSvc interface {
	// BuildAuditReport accepts a YYYY-MM month; empty selects the current month.
	BuildAuditReport(ctx context.Context, ownerID, month string) (*domain.AuditReport, error)
}
