package accounting_test

import (
	"testing"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/utils/accounting"
	"github.com/stretchr/testify/assert"
)

func TestEvaluatePlanUsage_FreeMembers(t *testing.T) {
	for count := int64(0); count <= 60; count++ {
		usage := accounting.EvaluatePlanUsage(domain.PlanFree, count, 0, 0)
		assert.Equal(t, count < 50, usage.CanAddMember(), "count %d", count)
		assert.Equal(t, int64(50), usage.Members.Limit)
		assert.Equal(t, count, usage.Members.Count)
	}
}

func TestEvaluatePlanUsage_FreeInvoicesAndReceipts(t *testing.T) {
	usage := accounting.EvaluatePlanUsage(domain.PlanFree, 0, 49, 10)
	assert.True(t, usage.CanIssueInvoice())
	assert.False(t, usage.CanUploadReceipt())
	assert.Equal(t, int64(10), usage.For(domain.ResourceReceipts).Limit)

	usage = accounting.EvaluatePlanUsage(domain.PlanFree, 0, 50, 9)
	assert.False(t, usage.CanIssueInvoice())
	assert.True(t, usage.CanUploadReceipt())
}

func TestEvaluatePlanUsage_ProIsUnlimited(t *testing.T) {
	for _, count := range []int64{0, 49, 50, 51, 10_000} {
		usage := accounting.EvaluatePlanUsage(domain.PlanPro, count, count, count)
		assert.True(t, usage.CanAddMember())
		assert.True(t, usage.CanIssueInvoice())
		assert.True(t, usage.CanUploadReceipt())
		assert.True(t, usage.Members.Unlimited)
		assert.Zero(t, usage.Members.Limit)
	}
}
