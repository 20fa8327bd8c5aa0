package accounting

import (
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	half    = decimal.NewFromFloat(0.5)
	hundred = decimal.NewFromInt(100)
)

// RoundHalfUp rounds to the nearest integer with halves going towards +Inf,
// so -2.5 becomes -2 and 2.5 becomes 3.
func RoundHalfUp(d decimal.Decimal) decimal.Decimal {
	return d.Add(half).Floor()
}

// RoundedPercent returns round(part/whole*100). A zero whole yields 0.
func RoundedPercent(part, whole decimal.Decimal) int64 {
	if whole.IsZero() {
		return 0
	}
	return RoundHalfUp(part.Div(whole).Mul(hundred)).IntPart()
}

// SumExpenses adds up expense amounts matching keep. A nil keep matches all.
func SumExpenses(expenses []domain.Expense, keep func(domain.Expense) bool) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		if keep == nil || keep(e) {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// SumPayments adds up payment-type transactions dated within month.
func SumPayments(transactions []domain.Transaction, month domain.Month) decimal.Decimal {
	total := decimal.Zero
	for _, t := range transactions {
		if t.IsPayment() && month.Contains(t.Date) {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// SpendByCategory groups expenses dated within month by category.
func SpendByCategory(expenses []domain.Expense, month domain.Month) map[domain.ExpenseCategory]decimal.Decimal {
	out := make(map[domain.ExpenseCategory]decimal.Decimal, len(domain.ExpenseCategories))
	for _, e := range expenses {
		if !month.Contains(e.Date) {
			continue
		}
		out[e.Category] = out[e.Category].Add(e.Amount)
	}
	return out
}

// TotalDues sums positive member balances.
func TotalDues(members []domain.Member) decimal.Decimal {
	total := decimal.Zero
	for _, m := range members {
		if m.Balance.IsPositive() {
			total = total.Add(m.Balance)
		}
	}
	return total
}
