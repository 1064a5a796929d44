package view

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var inrPrinter = message.NewPrinter(language.MustParse("en-IN"))

// INR formats whole rupees with Indian digit grouping and no fraction digits.
func INR(amount int) string {
	return inrPrinter.Sprintf("₹%d", amount)
}
