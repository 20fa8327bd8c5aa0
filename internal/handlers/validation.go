package handlers

import (
	"fmt"
	"sync"
	"time"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidatorsOnce sync.Once

// RegisterValidators installs the domain-specific binding tags on gin's
// validator. It is safe to call more than once.
func RegisterValidators() error {
	var err error
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
			return
		}
		validations := map[string]validator.Func{
			"member_status":    validateMemberStatus,
			"transaction_type": validateTransactionType,
			"expense_category": validateExpenseCategory,
			"month_year":       validateMonthYear,
		}
		for tag, fn := range validations {
			if err = v.RegisterValidation(tag, fn); err != nil {
				return
			}
		}
	})
	return err
}

func validateMemberStatus(fl validator.FieldLevel) bool {
	switch domain.MemberStatus(fl.Field().String()) {
	case domain.MemberActive, domain.MemberInactive:
		return true
	}
	return false
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch domain.TransactionType(fl.Field().String()) {
	case domain.TransactionPayment, domain.TransactionCharge:
		return true
	}
	return false
}

func validateExpenseCategory(fl validator.FieldLevel) bool {
	return domain.ExpenseCategory(fl.Field().String()).IsValid()
}

func validateMonthYear(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01", fl.Field().String())
	return err == nil
}
