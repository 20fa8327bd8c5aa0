package domain

import "github.com/shopspring/decimal"

// AlertType classifies a spending alert.
type AlertType string

const (
	AlertSpendingSpike    AlertType = "spending_spike"
	AlertFrequentRepairs  AlertType = "frequent_repairs"
	AlertUnnecessarySpend AlertType = "unnecessary_expense"
)

// AlertSeverity orders alerts for display.
type AlertSeverity string

const (
	SeverityHigh   AlertSeverity = "high"
	SeverityMedium AlertSeverity = "medium"
	SeverityLow    AlertSeverity = "low"
)

// Alert is a derived, unpersisted warning. ID is deterministic so repeated
// computations over the same data yield the same identities.
type Alert struct {
	ID             string           `json:"id"`
	Type           AlertType        `json:"type"`
	Severity       AlertSeverity    `json:"severity"`
	Category       *ExpenseCategory `json:"category,omitempty"`
	Title          string           `json:"title"`
	Message        string           `json:"message"`
	PercentageOver *int64           `json:"percentageOver,omitempty"`
	Amount         decimal.Decimal  `json:"amount"`
	Baseline       decimal.Decimal  `json:"baseline"`
	Count          int              `json:"count,omitempty"`
}

// CategoryVariance is one bar of the variance chart.
type CategoryVariance struct {
	Category ExpenseCategory `json:"category"`
	Current  decimal.Decimal `json:"current"`
	Average  decimal.Decimal `json:"average"`
	Variance int64           `json:"variance"`
}

// Dashboard is the tenant overview.
type Dashboard struct {
	Month            string          `json:"month"`
	CurrencyCode     string          `json:"currencyCode"`
	ActiveMembers    int             `json:"activeMembers"`
	TotalMembers     int             `json:"totalMembers"`
	TotalDues        decimal.Decimal `json:"totalDues"`
	MonthRevenue     decimal.Decimal `json:"monthRevenue"`
	MonthExpenses    decimal.Decimal `json:"monthExpenses"`
	PettyCashBalance decimal.Decimal `json:"pettyCashBalance"`
	AlertCount       int             `json:"alertCount"`
	ExpiringMembers  int             `json:"expiringMembers"`
	Usage            PlanUsage       `json:"usage"`
}
