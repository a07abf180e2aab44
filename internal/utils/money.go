package utils

import (
	"rehearsalrooms/internal/domain"
)

// FormatMoney keeps consistent decimal formatting for currency fields on
// rendered documents.
func FormatMoney(amount domain.Cents) string {
	return amount.String()
}
