package services

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"superstore-dashboard/internal/models"
)

func newPrinter() *message.Printer {
	return message.NewPrinter(language.English)
}

// FormatMoney renders a whole-dollar amount with thousands separators.
func FormatMoney(v float64) string {
	return newPrinter().Sprintf("$%.0f", v)
}

func FormatCount(n int) string {
	return newPrinter().Sprintf("%d", n)
}

// FormatDays renders an average duration, or models.NoValue when unknown.
func FormatDays(d *float64) string {
	if d == nil {
		return models.NoValue
	}
	return newPrinter().Sprintf("%.1f days", *d)
}
