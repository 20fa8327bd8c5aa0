package accounting

import (
	"fmt"
	"strings"
	"time"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Alert thresholds.
var (
	spikeThreshold       = decimal.NewFromFloat(1.15)
	unnecessaryThreshold = decimal.NewFromFloat(0.05)
	three                = decimal.NewFromInt(3)
)

const (
	repairWindowDays      = 7
	repairCountThreshold  = 4
	highSeverityPercent   = 50
	unnecessaryKeywordOne = "miscellaneous"
	unnecessaryKeywordTwo = "snack"
)

// TrailingAverage is the mean category spend over the three months before month.
func TrailingAverage(expenses []domain.Expense, month domain.Month) map[domain.ExpenseCategory]decimal.Decimal {
	sums := make(map[domain.ExpenseCategory]decimal.Decimal, len(domain.ExpenseCategories))
	for k := 1; k <= 3; k++ {
		for cat, amount := range SpendByCategory(expenses, month.AddMonths(-k)) {
			sums[cat] = sums[cat].Add(amount)
		}
	}
	avg := make(map[domain.ExpenseCategory]decimal.Decimal, len(sums))
	for cat, sum := range sums {
		avg[cat] = sum.Div(three)
	}
	return avg
}

// ComputeAlerts derives the alert set for the calendar month containing now.
func ComputeAlerts(expenses []domain.Expense, transactions []domain.Transaction, now time.Time) []domain.Alert {
	month := domain.MonthOf(now)
	alerts := spendingSpikes(expenses, month)
	if a := frequentRepairs(expenses, now); a != nil {
		alerts = append(alerts, *a)
	}
	if a := unnecessarySpend(expenses, transactions, month); a != nil {
		alerts = append(alerts, *a)
	}
	return alerts
}

func spendingSpikes(expenses []domain.Expense, month domain.Month) []domain.Alert {
	current := SpendByCategory(expenses, month)
	averages := TrailingAverage(expenses, month)

	var alerts []domain.Alert
	for _, cat := range domain.ExpenseCategories {
		avg := averages[cat]
		spend := current[cat]
		if !avg.IsPositive() || !spend.GreaterThan(avg.Mul(spikeThreshold)) {
			continue
		}
		over := RoundedPercent(spend.Sub(avg), avg)
		severity := domain.SeverityMedium
		if over >= highSeverityPercent {
			severity = domain.SeverityHigh
		}
		category := cat
		alerts = append(alerts, domain.Alert{
			ID:             "spending-" + string(cat),
			Type:           domain.AlertSpendingSpike,
			Severity:       severity,
			Category:       &category,
			Title:          fmt.Sprintf("%s spending is up %d%%", titleCase(string(cat)), over),
			Message:        fmt.Sprintf("Spent %s this month against a 3-month average of %s.", spend.StringFixed(2), avg.StringFixed(2)),
			PercentageOver: &over,
			Amount:         spend,
			Baseline:       avg,
		})
	}
	return alerts
}

// RepairWindow is the trailing seven calendar days ending with the day of now,
// as [from, until). The bounds only move at midnight, so alerts computed at
// any time of day agree.
func RepairWindow(now time.Time) (from, until time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return today.AddDate(0, 0, 1-repairWindowDays), today.AddDate(0, 0, 1)
}

func frequentRepairs(expenses []domain.Expense, now time.Time) *domain.Alert {
	from, until := RepairWindow(now)
	count := 0
	total := decimal.Zero
	for _, e := range expenses {
		if e.Category != domain.CategoryMaintenance || e.Date.Before(from) || !e.Date.Before(until) {
			continue
		}
		count++
		total = total.Add(e.Amount)
	}
	if count < repairCountThreshold {
		return nil
	}
	category := domain.CategoryMaintenance
	return &domain.Alert{
		ID:       "frequent-repairs",
		Type:     domain.AlertFrequentRepairs,
		Severity: domain.SeverityMedium,
		Category: &category,
		Title:    "Frequent repairs",
		Message:  fmt.Sprintf("%d maintenance expenses in the last 7 days totalling %s.", count, total.StringFixed(2)),
		Amount:   total,
		Count:    count,
	}
}

// IsDiscretionary reports whether an expense counts towards the unnecessary spend alert.
func IsDiscretionary(e domain.Expense) bool {
	if e.Category == domain.CategoryOther {
		return true
	}
	desc := strings.ToLower(e.Description)
	return strings.Contains(desc, unnecessaryKeywordOne) || strings.Contains(desc, unnecessaryKeywordTwo)
}

func unnecessarySpend(expenses []domain.Expense, transactions []domain.Transaction, month domain.Month) *domain.Alert {
	revenue := SumPayments(transactions, month)
	if !revenue.IsPositive() {
		return nil
	}
	spend := SumExpenses(expenses, func(e domain.Expense) bool {
		return month.Contains(e.Date) && IsDiscretionary(e)
	})
	if !spend.GreaterThan(revenue.Mul(unnecessaryThreshold)) {
		return nil
	}
	pct := RoundedPercent(spend, revenue)
	return &domain.Alert{
		ID:             "unnecessary-expenses",
		Type:           domain.AlertUnnecessarySpend,
		Severity:       domain.SeverityLow,
		Title:          "Discretionary spending is high",
		Message:        fmt.Sprintf("Miscellaneous spending of %s is %d%% of this month's revenue.", spend.StringFixed(2), pct),
		PercentageOver: &pct,
		Amount:         spend,
		Baseline:       revenue,
	}
}

// VarianceChart compares each category's month-to-date spend with its trailing average.
func VarianceChart(expenses []domain.Expense, now time.Time) []domain.CategoryVariance {
	month := domain.MonthOf(now)
	current := SpendByCategory(expenses, month)
	averages := TrailingAverage(expenses, month)

	out := make([]domain.CategoryVariance, 0, len(domain.ExpenseCategories))
	for _, cat := range domain.ExpenseCategories {
		spend := current[cat]
		avg := averages[cat]
		if spend.IsZero() && avg.IsZero() {
			continue
		}
		var variance int64
		switch {
		case avg.IsPositive():
			variance = RoundedPercent(spend.Sub(avg), avg)
		case spend.IsPositive():
			variance = 100
		}
		out = append(out, domain.CategoryVariance{
			Category: cat,
			Current:  spend,
			Average:  RoundHalfUp(avg),
			Variance: variance,
		})
	}
	return out
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
