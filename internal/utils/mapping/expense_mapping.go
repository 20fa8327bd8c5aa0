package mapping

import (
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/models"
)

// ToModelExpense converts a domain Expense to a model Expense
func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:     d.ExpenseID,
		OwnerID:       d.OwnerID,
		Description:   d.Description,
		Amount:        d.Amount,
		Category:      string(d.Category),
		ExpenseDate:   d.Date,
		ReceiptURL:    d.ReceiptURL,
		FileSizeBytes: d.FileSizeBytes,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpense converts a model Expense to a domain Expense
func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:     m.ExpenseID,
		OwnerID:       m.OwnerID,
		Description:   m.Description,
		Amount:        m.Amount,
		Category:      domain.ExpenseCategory(m.Category),
		Date:          m.ExpenseDate,
		ReceiptURL:    m.ReceiptURL,
		FileSizeBytes: m.FileSizeBytes,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainExpenseSlice(ms []models.Expense) []domain.Expense {
	return toDomainSlice(ms, ToDomainExpense)
}

// ToModelPettyCash converts a domain PettyCashTransaction to its row
func ToModelPettyCash(d domain.PettyCashTransaction) models.PettyCashTransaction {
	return models.PettyCashTransaction{
		ID:              d.ID,
		OwnerID:         d.OwnerID,
		Amount:          d.Amount,
		Type:            string(d.Type),
		Description:     d.Description,
		BalanceAfter:    d.BalanceAfter,
		TxnDate:         d.Date,
		LinkedExpenseID: d.LinkedExpenseID,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPettyCash converts a petty cash row to a domain PettyCashTransaction
func ToDomainPettyCash(m models.PettyCashTransaction) domain.PettyCashTransaction {
	return domain.PettyCashTransaction{
		ID:              m.ID,
		OwnerID:         m.OwnerID,
		Amount:          m.Amount,
		Type:            domain.PettyCashType(m.Type),
		Description:     m.Description,
		BalanceAfter:    m.BalanceAfter,
		Date:            m.TxnDate,
		LinkedExpenseID: m.LinkedExpenseID,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainPettyCashSlice(ms []models.PettyCashTransaction) []domain.PettyCashTransaction {
	return toDomainSlice(ms, ToDomainPettyCash)
}
