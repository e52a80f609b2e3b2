package utils

import (
	"github.com/shopspring/decimal"
)

// MoneyPrecision is the number of decimals used for every amount in exports.
const MoneyPrecision = 2

// FormatMoney renders an amount with the export precision.
// Example: 12.3456 returns "12.35", -80 returns "-80.00".
func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(MoneyPrecision)
}
