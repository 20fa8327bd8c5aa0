package mapping

import (
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/models"
)

// ToModelStaff converts a domain Staff to a model Staff
func ToModelStaff(d domain.Staff) models.Staff {
	return models.Staff{
		StaffID:     d.StaffID,
		OwnerID:     d.OwnerID,
		Name:        d.Name,
		Role:        d.Role,
		BaseSalary:  d.BaseSalary,
		Phone:       d.Phone,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainStaff converts a model Staff to a domain Staff
func ToDomainStaff(m models.Staff) domain.Staff {
	return domain.Staff{
		StaffID:     m.StaffID,
		OwnerID:     m.OwnerID,
		Name:        m.Name,
		Role:        m.Role,
		BaseSalary:  m.BaseSalary,
		Phone:       m.Phone,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainStaffSlice(ms []models.Staff) []domain.Staff {
	return toDomainSlice(ms, ToDomainStaff)
}

// ToModelSalaryPayment converts a domain SalaryPayment to a model SalaryPayment
func ToModelSalaryPayment(d domain.SalaryPayment) models.SalaryPayment {
	return models.SalaryPayment{
		PaymentID:   d.PaymentID,
		OwnerID:     d.OwnerID,
		StaffID:     d.StaffID,
		Amount:      d.Amount,
		MonthYear:   d.MonthYear,
		PaidAt:      d.PaidAt,
		Notes:       d.Notes,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSalaryPayment converts a model SalaryPayment to a domain SalaryPayment
func ToDomainSalaryPayment(m models.SalaryPayment) domain.SalaryPayment {
	return domain.SalaryPayment{
		PaymentID:   m.PaymentID,
		OwnerID:     m.OwnerID,
		StaffID:     m.StaffID,
		Amount:      m.Amount,
		MonthYear:   m.MonthYear,
		PaidAt:      m.PaidAt,
		Notes:       m.Notes,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainSalaryPaymentSlice(ms []models.SalaryPayment) []domain.SalaryPayment {
	return toDomainSlice(ms, ToDomainSalaryPayment)
}

// ToModelInventoryItem converts a domain InventoryItem to a model InventoryItem
func ToModelInventoryItem(d domain.InventoryItem) models.InventoryItem {
	return models.InventoryItem{
		ItemID:      d.ItemID,
		OwnerID:     d.OwnerID,
		ItemName:    d.ItemName,
		Quantity:    d.Quantity,
		Unit:        d.Unit,
		Description: d.Description,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInventoryItem converts a model InventoryItem to a domain InventoryItem
func ToDomainInventoryItem(m models.InventoryItem) domain.InventoryItem {
	return domain.InventoryItem{
		ItemID:      m.ItemID,
		OwnerID:     m.OwnerID,
		ItemName:    m.ItemName,
		Quantity:    m.Quantity,
		Unit:        m.Unit,
		Description: m.Description,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainInventoryItemSlice(ms []models.InventoryItem) []domain.InventoryItem {
	return toDomainSlice(ms, ToDomainInventoryItem)
}
