package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryStatus is the manifest state of one staff member for a month.
type SalaryStatus string

const (
	SalaryPaid    SalaryStatus = "paid"
	SalaryPending SalaryStatus = "pending"
)

// SalaryManifestEntry joins a staff member against the month's payment, if any.
type SalaryManifestEntry struct {
	StaffID    string          `json:"staffID"`
	StaffName  string          `json:"staffName"`
	Role       string          `json:"role"`
	BaseSalary decimal.Decimal `json:"baseSalary"`
	Status     SalaryStatus    `json:"status"`
	PaidAmount decimal.Decimal `json:"paidAmount"`
	PaidAt     *time.Time      `json:"paidAt,omitempty"`
}

// CategoryShare is one slice of the category breakdown.
type CategoryShare struct {
	Category   ExpenseCategory `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage int64           `json:"percentage"`
}

// PettyCashSummary totals petty cash activity for a month.
type PettyCashSummary struct {
	TotalRefills   decimal.Decimal `json:"totalRefills"`
	TotalExpenses  decimal.Decimal `json:"totalExpenses"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	EntryCount     int             `json:"entryCount"`
}

// AuditReport is the monthly profit and loss summary.
type AuditReport struct {
	Month              string                `json:"month"`
	MonthLabel         string                `json:"monthLabel"`
	PeriodStart        time.Time             `json:"periodStart"`
	PeriodEnd          time.Time             `json:"periodEnd"`
	TotalRevenue       decimal.Decimal       `json:"totalRevenue"`
	TotalVariableCosts decimal.Decimal       `json:"totalVariableCosts"`
	RentCost           decimal.Decimal       `json:"rentCost"`
	SalaryManifest     []SalaryManifestEntry `json:"salaryManifest"`
	TotalSalariesPaid  decimal.Decimal       `json:"totalSalariesPaid"`
	TotalFixedCosts    decimal.Decimal       `json:"totalFixedCosts"`
	CategoryBreakdown  []CategoryShare       `json:"categoryBreakdown"`
	NetProfit          decimal.Decimal       `json:"netProfit"`
	PettyCash          PettyCashSummary      `json:"pettyCashSummary"`
}
