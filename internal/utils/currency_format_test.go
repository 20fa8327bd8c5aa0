package utils_test

import (
	"testing"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCurrencyPrecision(t *testing.T) {
	assert.Equal(t, 2, utils.CurrencyPrecision("INR"))
	assert.Equal(t, 0, utils.CurrencyPrecision("JPY"))
	assert.Equal(t, 2, utils.CurrencyPrecision("??"))
}

func TestFormatWithPrecision(t *testing.T) {
	assert.Equal(t, "12.35", utils.FormatWithPrecision(decimal.RequireFromString("12.3456"), 2))
	assert.Equal(t, "12", utils.FormatWithPrecision(decimal.RequireFromString("12.3456"), 0))
}

func TestFormatMoney(t *testing.T) {
	out := utils.FormatMoney(decimal.RequireFromString("12.5"), "USD")
	assert.Contains(t, out, "$")
	assert.Contains(t, out, "12")

	assert.Equal(t, "NOT-A-CODE 12.50", utils.FormatMoney(decimal.RequireFromString("12.5"), "not-a-code"))
}
