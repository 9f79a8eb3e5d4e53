package utils

import (
	"github.com/shopspring/decimal"
)

type InvoiceTotals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	TaxAmount decimal.Decimal `json:"tax_amount"`
	Discount  decimal.Decimal `json:"discount"`
	Total     decimal.Decimal `json:"total"`
}

var decimalOneHundred = decimal.NewFromInt(100)

// CalculateInvoiceTotals derives the four financial fields of an invoice
// from its item amounts, tax rate (percent) and flat discount.
//
// - subtotal is the left-to-right sum of item amounts
// - tax_amount = subtotal * rate / 100
// - total = subtotal + tax_amount - discount, floored at zero
//
// Pure and side-effect free; no input can make it fail. Malformed numeric
// inputs must be degraded to zero by the caller (see ParseLooseDecimal)
// before reaching this function.
func CalculateInvoiceTotals(amounts []decimal.Decimal, taxRate decimal.Decimal, discount decimal.Decimal) InvoiceTotals {
	subtotal := decimal.Zero
	for _, amount := range amounts {
		subtotal = subtotal.Add(amount)
	}

	taxAmount := subtotal.Mul(taxRate).Div(decimalOneHundred)

	total := subtotal.Add(taxAmount).Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return InvoiceTotals{
		Subtotal:  subtotal,
		TaxAmount: taxAmount,
		Discount:  discount,
		Total:     total,
	}
}

// CalculateItemAmount derives a line amount from quantity and rate.
// The amount field is never independently editable.
func CalculateItemAmount(quantity decimal.Decimal, rate decimal.Decimal) decimal.Decimal {
	return quantity.Mul(rate)
}
