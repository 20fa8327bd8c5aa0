package accounting

import "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"

// EvaluatePlanUsage applies the free-tier ceilings. Pro tenants are unlimited.
func EvaluatePlanUsage(plan domain.PlanType, members, invoices, receipts int64) domain.PlanUsage {
	return domain.PlanUsage{
		Plan:     plan,
		Members:  evaluate(plan, domain.ResourceMembers, members, domain.FreeMemberLimit),
		Invoices: evaluate(plan, domain.ResourceInvoices, invoices, domain.FreeInvoiceLimit),
		Receipts: evaluate(plan, domain.ResourceReceipts, receipts, domain.FreeReceiptLimit),
	}
}

func evaluate(plan domain.PlanType, resource domain.PlanResource, count, limit int64) domain.ResourceUsage {
	if plan == domain.PlanPro {
		return domain.ResourceUsage{Resource: resource, Count: count, Unlimited: true, Allowed: true}
	}
	return domain.ResourceUsage{
		Resource: resource,
		Count:    count,
		Limit:    limit,
		Allowed:  count < limit,
	}
}
