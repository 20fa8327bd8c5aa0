package domain_test

import (
	"testing"
	"time"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonth(t *testing.T) {
	m, err := domain.ParseMonth("2025-03", nil)
	require.NoError(t, err)

	assert.Equal(t, 2025, m.Year)
	assert.Equal(t, time.March, m.Month)
	assert.Equal(t, "2025-03", m.Key())
	assert.Equal(t, "March 2025", m.Label())
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), m.Start())
	assert.Equal(t, time.Date(2025, 3, 31, 23, 59, 59, 999999999, time.UTC), m.End())

	_, err = domain.ParseMonth("March", nil)
	assert.Error(t, err)
}

func TestMonth_ContainsIsInclusive(t *testing.T) {
	m, _ := domain.ParseMonth("2025-02", nil)

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"first instant", time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), true},
		{"last day evening", time.Date(2025, 2, 28, 23, 59, 0, 0, time.UTC), true},
		{"next month", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), false},
		{"previous month", time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Contains(tt.at))
		})
	}
}

func TestMonth_AddMonthsCrossesYear(t *testing.T) {
	m, _ := domain.ParseMonth("2025-01", nil)

	assert.Equal(t, "2024-12", m.AddMonths(-1).Key())
	assert.Equal(t, "2024-10", m.AddMonths(-3).Key())
	assert.Equal(t, "2025-02", m.AddMonths(1).Key())
}

func TestMemberPlanExpiresWithin(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	soon := now.Add(48 * time.Hour)
	later := now.Add(30 * 24 * time.Hour)
	past := now.Add(-time.Hour)

	assert.True(t, domain.Member{PlanExpiryDate: &soon}.PlanExpiresWithin(now, 7*24*time.Hour))
	assert.False(t, domain.Member{PlanExpiryDate: &later}.PlanExpiresWithin(now, 7*24*time.Hour))
	assert.False(t, domain.Member{PlanExpiryDate: &past}.PlanExpiresWithin(now, 7*24*time.Hour))
	assert.False(t, domain.Member{}.PlanExpiresWithin(now, 7*24*time.Hour))
}
