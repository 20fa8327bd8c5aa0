package domain

// Free-tier resource ceilings.
const (
	FreeMemberLimit  = 50
	FreeInvoiceLimit = 50
	FreeReceiptLimit = 10
)

// PlanResource names a gated resource.
type PlanResource string

const (
	ResourceMembers  PlanResource = "members"
	ResourceInvoices PlanResource = "invoices"
	ResourceReceipts PlanResource = "receipts"
)

// ResourceUsage is the gate outcome for one resource. Limit is 0 when Unlimited.
type ResourceUsage struct {
	Resource  PlanResource `json:"resource"`
	Count     int64        `json:"count"`
	Limit     int64        `json:"limit"`
	Unlimited bool         `json:"unlimited"`
	Allowed   bool         `json:"allowed"`
}

// PlanUsage is the gate outcome for every resource of a tenant.
type PlanUsage struct {
	Plan     PlanType      `json:"plan"`
	Members  ResourceUsage `json:"members"`
	Invoices ResourceUsage `json:"invoices"`
	Receipts ResourceUsage `json:"receipts"`
}

// For returns the usage entry for r.
func (u PlanUsage) For(r PlanResource) ResourceUsage {
	switch r {
	case ResourceMembers:
		return u.Members
	case ResourceInvoices:
		return u.Invoices
	default:
		return u.Receipts
	}
}

func (u PlanUsage) CanAddMember() bool     { return u.Members.Allowed }
func (u PlanUsage) CanIssueInvoice() bool  { return u.Invoices.Allowed }
func (u PlanUsage) CanUploadReceipt() bool { return u.Receipts.Allowed }
