package accounting

import (
	"fmt"
	"sort"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/apperrors"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// pettyCashBefore orders entries by date, then creation time.
func pettyCashBefore(a, b domain.PettyCashTransaction) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.Before(b.Date)
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

// SortPettyCash orders entries oldest first. Entries with identical date and
// creation time keep their relative order.
func SortPettyCash(entries []domain.PettyCashTransaction) {
	sort.SliceStable(entries, func(i, j int) bool {
		return pettyCashBefore(entries[i], entries[j])
	})
}

// LatestPettyCash returns the most recent entry, or nil for an empty ledger.
// On a full tie the later element of the slice wins.
func LatestPettyCash(entries []domain.PettyCashTransaction) *domain.PettyCashTransaction {
	var latest *domain.PettyCashTransaction
	for i := range entries {
		if latest == nil || !pettyCashBefore(entries[i], *latest) {
			latest = &entries[i]
		}
	}
	return latest
}

// CurrentPettyCashBalance is the balance_after of the latest entry, or zero.
func CurrentPettyCashBalance(entries []domain.PettyCashTransaction) decimal.Decimal {
	if latest := LatestPettyCash(entries); latest != nil {
		return latest.BalanceAfter
	}
	return decimal.Zero
}

// NextPettyCashBalance applies one entry to current. Expenses larger than the
// float fail with ErrInsufficientBalance.
func NextPettyCashBalance(current decimal.Decimal, kind domain.PettyCashType, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: petty cash amount must be positive", apperrors.ErrValidation)
	}
	switch kind {
	case domain.PettyCashRefill:
		return current.Add(amount), nil
	case domain.PettyCashExpense:
		if amount.GreaterThan(current) {
			return decimal.Zero, fmt.Errorf("%w: requested %s, available %s", apperrors.ErrInsufficientBalance, amount.StringFixed(2), current.StringFixed(2))
		}
		return current.Sub(amount), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: unknown petty cash type %q", apperrors.ErrValidation, kind)
	}
}

// RechainPettyCash recomputes BalanceAfter for entries (already sorted oldest
// first) starting from opening. It returns the indexes whose balance changed.
// The slice is left untouched when any balance would go negative.
func RechainPettyCash(opening decimal.Decimal, entries []domain.PettyCashTransaction) ([]int, error) {
	balances := make([]decimal.Decimal, len(entries))
	running := opening
	for i, e := range entries {
		next, err := NextPettyCashBalance(running, e.Type, e.Amount)
		if err != nil {
			return nil, fmt.Errorf("entry %s on %s: %w", e.ID, e.Date.Format("2006-01-02"), err)
		}
		balances[i] = next
		running = next
	}

	var changed []int
	for i := range entries {
		if !entries[i].BalanceAfter.Equal(balances[i]) {
			entries[i].BalanceAfter = balances[i]
			changed = append(changed, i)
		}
	}
	return changed, nil
}
