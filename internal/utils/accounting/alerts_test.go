package accounting_test

import (
	"testing"
	"time"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alertNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func expense(cat domain.ExpenseCategory, amount int64, date time.Time, desc string) domain.Expense {
	return domain.Expense{Category: cat, Amount: dec(amount), Date: date, Description: desc}
}

func payment(amount int64, date time.Time) domain.Transaction {
	return domain.Transaction{Type: domain.TransactionPayment, Amount: dec(amount), Date: date}
}

func groceriesHistory(current int64) []domain.Expense {
	return []domain.Expense{
		expense(domain.CategoryGroceries, 100, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), "rice"),
		expense(domain.CategoryGroceries, 100, time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC), "rice"),
		expense(domain.CategoryGroceries, 100, time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC), "rice"),
		expense(domain.CategoryGroceries, current, time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC), "rice"),
	}
}

func findAlert(alerts []domain.Alert, id string) *domain.Alert {
	for i := range alerts {
		if alerts[i].ID == id {
			return &alerts[i]
		}
	}
	return nil
}

func TestComputeAlerts_SpendingSpikeAbove15Percent(t *testing.T) {
	alerts := accounting.ComputeAlerts(groceriesHistory(116), nil, alertNow)

	spike := findAlert(alerts, "spending-groceries")
	require.NotNil(t, spike)
	assert.Equal(t, domain.AlertSpendingSpike, spike.Type)
	require.NotNil(t, spike.PercentageOver)
	assert.Equal(t, int64(16), *spike.PercentageOver)
	assert.Equal(t, domain.SeverityMedium, spike.Severity)
}

func TestComputeAlerts_NoSpikeAt14Percent(t *testing.T) {
	alerts := accounting.ComputeAlerts(groceriesHistory(114), nil, alertNow)
	assert.Nil(t, findAlert(alerts, "spending-groceries"))
}

func TestComputeAlerts_NoSpikeAtExactThreshold(t *testing.T) {
	alerts := accounting.ComputeAlerts(groceriesHistory(115), nil, alertNow)
	assert.Nil(t, findAlert(alerts, "spending-groceries"))
}

func TestComputeAlerts_NoSpikeWithoutHistory(t *testing.T) {
	expenses := []domain.Expense{expense(domain.CategoryUtilities, 900, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), "power")}
	assert.Empty(t, accounting.ComputeAlerts(expenses, nil, alertNow))
}

func TestComputeAlerts_FrequentRepairs(t *testing.T) {
	var expenses []domain.Expense
	for d := 0; d < 4; d++ {
		expenses = append(expenses, expense(domain.CategoryMaintenance, 20, alertNow.Add(-time.Duration(d)*24*time.Hour), "tap"))
	}
	// Outside the trailing week.
	expenses = append(expenses, expense(domain.CategoryMaintenance, 20, alertNow.Add(-8*24*time.Hour), "fan"))

	alert := findAlert(accounting.ComputeAlerts(expenses, nil, alertNow), "frequent-repairs")
	require.NotNil(t, alert)
	assert.Equal(t, 4, alert.Count)

	alert = findAlert(accounting.ComputeAlerts(expenses[1:], nil, alertNow), "frequent-repairs")
	assert.Nil(t, alert)
}

func TestComputeAlerts_FrequentRepairsStableAcrossTheDay(t *testing.T) {
	day := func(d, hour int) time.Time { return time.Date(2025, 6, d, hour, 0, 0, 0, time.UTC) }
	expenses := []domain.Expense{
		expense(domain.CategoryMaintenance, 20, day(9, 0), "tap"),
		expense(domain.CategoryMaintenance, 20, day(11, 0), "fan"),
		expense(domain.CategoryMaintenance, 20, day(13, 0), "sink"),
		expense(domain.CategoryMaintenance, 20, day(15, 0), "door"),
	}

	for _, now := range []time.Time{day(15, 0), day(15, 12), day(15, 23)} {
		alert := findAlert(accounting.ComputeAlerts(expenses, nil, now), "frequent-repairs")
		require.NotNil(t, alert, now.String())
		assert.Equal(t, 4, alert.Count)
	}

	// June 9 drops out at midnight.
	assert.Nil(t, findAlert(accounting.ComputeAlerts(expenses, nil, day(16, 0)), "frequent-repairs"))
}

func TestIsDiscretionary_CashWithdrawalCounts(t *testing.T) {
	withdrawal := domain.Expense{
		Category:    domain.CategoryOther,
		Description: domain.CashWithdrawalDescription("weekly float"),
		Amount:      dec(500),
	}
	assert.True(t, accounting.IsDiscretionary(withdrawal))
	assert.False(t, accounting.IsDiscretionary(expense(domain.CategoryGroceries, 500, alertNow, "Cash Withdrawal")))
}

func TestRepairWindow(t *testing.T) {
	from, until := accounting.RepairWindow(time.Date(2025, 6, 15, 17, 30, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), until)
}

func TestComputeAlerts_UnnecessaryExpenses(t *testing.T) {
	june := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	transactions := []domain.Transaction{payment(1000, june), payment(1000, june.AddDate(0, -1, 0))}

	tests := []struct {
		name     string
		expenses []domain.Expense
		wantPct  *int64
	}{
		{
			name:     "other category over 5 percent",
			expenses: []domain.Expense{expense(domain.CategoryOther, 60, june, "party")},
			wantPct:  ptr(int64(6)),
		},
		{
			name:     "snack keyword in groceries is counted",
			expenses: []domain.Expense{expense(domain.CategoryGroceries, 70, june, "Evening SNACKS")},
			wantPct:  ptr(int64(7)),
		},
		{
			name:     "exactly 5 percent does not fire",
			expenses: []domain.Expense{expense(domain.CategoryOther, 50, june, "misc")},
		},
		{
			name:     "previous month is ignored",
			expenses: []domain.Expense{expense(domain.CategoryOther, 500, june.AddDate(0, -1, 0), "miscellaneous")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alert := findAlert(accounting.ComputeAlerts(tt.expenses, transactions, alertNow), "unnecessary-expenses")
			if tt.wantPct == nil {
				assert.Nil(t, alert)
				return
			}
			require.NotNil(t, alert)
			assert.Equal(t, *tt.wantPct, *alert.PercentageOver)
		})
	}
}

func TestComputeAlerts_UnnecessaryNeedsRevenue(t *testing.T) {
	june := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	expenses := []domain.Expense{expense(domain.CategoryOther, 60, june, "party")}
	assert.Nil(t, findAlert(accounting.ComputeAlerts(expenses, nil, alertNow), "unnecessary-expenses"))
}

func TestVarianceChart(t *testing.T) {
	expenses := append(groceriesHistory(150),
		expense(domain.CategoryRent, 1000, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), "june rent"),
		expense(domain.CategoryUtilities, 10, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), "water"),
	)

	chart := accounting.VarianceChart(expenses, alertNow)
	require.Len(t, chart, 3)

	byCat := map[domain.ExpenseCategory]domain.CategoryVariance{}
	for _, row := range chart {
		byCat[row.Category] = row
	}

	assert.Equal(t, int64(50), byCat[domain.CategoryGroceries].Variance)
	assert.True(t, byCat[domain.CategoryGroceries].Average.Equal(dec(100)))
	assert.Equal(t, int64(100), byCat[domain.CategoryRent].Variance)
	// 10/3 rounds to 3 and the category dropped to zero spend.
	assert.True(t, byCat[domain.CategoryUtilities].Average.Equal(dec(3)))
	assert.Equal(t, int64(-100), byCat[domain.CategoryUtilities].Variance)
}

func TestRoundHalfUp(t *testing.T) {
	assert.True(t, accounting.RoundHalfUp(decimal.NewFromFloat(2.5)).Equal(dec(3)))
	assert.True(t, accounting.RoundHalfUp(decimal.NewFromFloat(-2.5)).Equal(dec(-2)))
	assert.True(t, accounting.RoundHalfUp(decimal.NewFromFloat(15.999)).Equal(dec(16)))
	assert.Equal(t, int64(0), accounting.RoundedPercent(dec(5), decimal.Zero))
}

func ptr[T any](v T) *T { return &v }
