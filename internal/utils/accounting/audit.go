package accounting

import (
	"sort"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AuditInput is the raw record set a monthly report is built from. The slices
// may contain records outside Month; they are filtered here.
type AuditInput struct {
	Month          domain.Month
	Transactions   []domain.Transaction
	Expenses       []domain.Expense
	Staff          []domain.Staff
	SalaryPayments []domain.SalaryPayment
	PettyCash      []domain.PettyCashTransaction
}

// BuildAuditReport produces the monthly profit and loss summary. Empty input
// yields a zero-valued report.
func BuildAuditReport(in AuditInput) domain.AuditReport {
	month := in.Month
	inMonth := func(e domain.Expense) bool { return month.Contains(e.Date) }

	revenue := SumPayments(in.Transactions, month)
	rent := SumExpenses(in.Expenses, func(e domain.Expense) bool {
		return inMonth(e) && e.Category == domain.CategoryRent
	})
	variable := SumExpenses(in.Expenses, func(e domain.Expense) bool {
		return inMonth(e) && e.Category != domain.CategoryRent && e.Category != domain.CategorySalaries
	})

	manifest := BuildSalaryManifest(in.Staff, in.SalaryPayments, month)
	salaries := decimal.Zero
	for _, row := range manifest {
		salaries = salaries.Add(row.PaidAmount)
	}
	fixed := rent.Add(salaries)

	return domain.AuditReport{
		Month:              month.Key(),
		MonthLabel:         month.Label(),
		PeriodStart:        month.Start(),
		PeriodEnd:          month.End(),
		TotalRevenue:       revenue,
		TotalVariableCosts: variable,
		RentCost:           rent,
		SalaryManifest:     manifest,
		TotalSalariesPaid:  salaries,
		TotalFixedCosts:    fixed,
		CategoryBreakdown:  CategoryBreakdown(in.Expenses, salaries, month),
		NetProfit:          revenue.Sub(fixed).Sub(variable),
		PettyCash:          SummarizePettyCash(in.PettyCash, month),
	}
}

// BuildSalaryManifest lists every staff member with the month's payment status.
// When several payments share a key the latest one wins.
func BuildSalaryManifest(staff []domain.Staff, payments []domain.SalaryPayment, month domain.Month) []domain.SalaryManifestEntry {
	label := month.Label()
	byKey := make(map[string]domain.SalaryPayment, len(payments))
	for _, p := range payments {
		if p.MonthYear != label {
			continue
		}
		key := domain.SalaryKey(p.StaffID, p.MonthYear)
		if prev, ok := byKey[key]; ok && prev.PaidAt.After(p.PaidAt) {
			continue
		}
		byKey[key] = p
	}

	manifest := make([]domain.SalaryManifestEntry, 0, len(staff))
	for _, s := range staff {
		row := domain.SalaryManifestEntry{
			StaffID:    s.StaffID,
			StaffName:  s.Name,
			Role:       s.Role,
			BaseSalary: s.BaseSalary,
			Status:     domain.SalaryPending,
			PaidAmount: decimal.Zero,
		}
		if p, ok := byKey[domain.SalaryKey(s.StaffID, label)]; ok {
			paidAt := p.PaidAt
			row.Status = domain.SalaryPaid
			row.PaidAmount = p.Amount
			row.PaidAt = &paidAt
		}
		manifest = append(manifest, row)
	}
	sort.SliceStable(manifest, func(i, j int) bool {
		return manifest[i].StaffName < manifest[j].StaffName
	})
	return manifest
}

// CategoryBreakdown splits the month's costs by category. The salaries bucket
// is the paid payroll rather than salaries-category expenses, so the shares
// cover exactly the fixed and variable cost totals.
func CategoryBreakdown(expenses []domain.Expense, salariesPaid decimal.Decimal, month domain.Month) []domain.CategoryShare {
	amounts := SpendByCategory(expenses, month)
	amounts[domain.CategorySalaries] = salariesPaid

	total := decimal.Zero
	for _, cat := range domain.ExpenseCategories {
		total = total.Add(amounts[cat])
	}

	shares := make([]domain.CategoryShare, 0, len(domain.ExpenseCategories))
	for _, cat := range domain.ExpenseCategories {
		amount := amounts[cat]
		if amount.IsZero() {
			continue
		}
		shares = append(shares, domain.CategoryShare{
			Category:   cat,
			Amount:     amount,
			Percentage: RoundedPercent(amount, total),
		})
	}
	return shares
}

// SummarizePettyCash totals the month's petty cash entries. The closing
// balance is that of the latest entry dated in the month, or zero.
func SummarizePettyCash(entries []domain.PettyCashTransaction, month domain.Month) domain.PettyCashSummary {
	summary := domain.PettyCashSummary{
		TotalRefills:   decimal.Zero,
		TotalExpenses:  decimal.Zero,
		ClosingBalance: decimal.Zero,
	}
	var inMonth []domain.PettyCashTransaction
	for _, e := range entries {
		if !month.Contains(e.Date) {
			continue
		}
		inMonth = append(inMonth, e)
		switch e.Type {
		case domain.PettyCashRefill:
			summary.TotalRefills = summary.TotalRefills.Add(e.Amount)
		case domain.PettyCashExpense:
			summary.TotalExpenses = summary.TotalExpenses.Add(e.Amount)
		}
	}
	summary.EntryCount = len(inMonth)
	if latest := LatestPettyCash(inMonth); latest != nil {
		summary.ClosingBalance = latest.BalanceAfter
	}
	return summary
}
