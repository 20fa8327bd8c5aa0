package dto

import "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"

// AuditReportParams selects the report month as YYYY-MM; empty means the current month.
type AuditReportParams struct {
	Month string `form:"month" binding:"omitempty,month_year"`
}

// AlertsResponse wraps the derived alerts.
type AlertsResponse struct {
	Alerts []domain.Alert `json:"alerts"`
}

// VarianceResponse wraps the per-category variance chart.
type VarianceResponse struct {
	Month      string                    `json:"month"`
	Categories []domain.CategoryVariance `json:"categories"`
}
