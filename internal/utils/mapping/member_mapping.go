package mapping

import (
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/models"
)

// ToModelMember converts a domain Member to a model Member
func ToModelMember(d domain.Member) models.Member {
	return models.Member{
		MemberID:       d.MemberID,
		OwnerID:        d.OwnerID,
		Name:           d.Name,
		Phone:          d.Phone,
		MonthlyFee:     d.MonthlyFee,
		Balance:        d.Balance,
		Status:         string(d.Status),
		PlanExpiryDate: d.PlanExpiryDate,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainMember converts a model Member to a domain Member
func ToDomainMember(m models.Member) domain.Member {
	return domain.Member{
		MemberID:       m.MemberID,
		OwnerID:        m.OwnerID,
		Name:           m.Name,
		Phone:          m.Phone,
		MonthlyFee:     m.MonthlyFee,
		Balance:        m.Balance,
		Status:         domain.MemberStatus(m.Status),
		PlanExpiryDate: m.PlanExpiryDate,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainMemberSlice(ms []models.Member) []domain.Member {
	return toDomainSlice(ms, ToDomainMember)
}

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		OwnerID:       d.OwnerID,
		MemberID:      d.MemberID,
		Type:          string(d.Type),
		Amount:        d.Amount,
		TxnDate:       d.Date,
		Notes:         d.Notes,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		OwnerID:       m.OwnerID,
		MemberID:      m.MemberID,
		Type:          domain.TransactionType(m.Type),
		Amount:        m.Amount,
		Date:          m.TxnDate,
		Notes:         m.Notes,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	return toDomainSlice(ms, ToDomainTransaction)
}
