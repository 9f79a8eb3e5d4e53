package utils

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func amounts(pairs ...[2]string) []decimal.Decimal {
	var out []decimal.Decimal
	for _, p := range pairs {
		out = append(out, CalculateItemAmount(d(p[0]), d(p[1])))
	}
	return out
}

func TestCalculateInvoiceTotals(t *testing.T) {
	cases := []struct {
		name     string
		amounts  []decimal.Decimal
		taxRate  string
		discount string
		subtotal string
		tax      string
		total    string
	}{
		{
			name:     "single item with tax",
			amounts:  amounts([2]string{"2", "100"}),
			taxRate:  "10",
			discount: "0",
			subtotal: "200",
			tax:      "20",
			total:    "220",
		},
		{
			name:     "two items with discount",
			amounts:  amounts([2]string{"1", "50"}, [2]string{"3", "10"}),
			taxRate:  "0",
			discount: "5",
			subtotal: "80",
			tax:      "0",
			total:    "75",
		},
		{
			name:     "total floored at zero",
			amounts:  amounts([2]string{"1", "10"}),
			taxRate:  "18",
			discount: "50",
			subtotal: "10",
			tax:      "1.8",
			total:    "0",
		},
		{
			name:     "no items",
			amounts:  nil,
			taxRate:  "10",
			discount: "0",
			subtotal: "0",
			tax:      "0",
			total:    "0",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			totals := CalculateInvoiceTotals(tc.amounts, d(tc.taxRate), d(tc.discount))
			if !totals.Subtotal.Equal(d(tc.subtotal)) {
				t.Fatalf("subtotal expected %s, got %s", tc.subtotal, totals.Subtotal)
			}
			if !totals.TaxAmount.Equal(d(tc.tax)) {
				t.Fatalf("tax_amount expected %s, got %s", tc.tax, totals.TaxAmount)
			}
			if !totals.Total.Equal(d(tc.total)) {
				t.Fatalf("total expected %s, got %s", tc.total, totals.Total)
			}
		})
	}
}

func TestCalculateInvoiceTotals_SubtotalOrderIndependent(t *testing.T) {
	forward := amounts([2]string{"2", "19.99"}, [2]string{"1", "0.01"}, [2]string{"7", "3"})
	backward := amounts([2]string{"7", "3"}, [2]string{"1", "0.01"}, [2]string{"2", "19.99"})

	a := CalculateInvoiceTotals(forward, d("10"), d("0"))
	b := CalculateInvoiceTotals(backward, d("10"), d("0"))
	if !a.Subtotal.Equal(b.Subtotal) {
		t.Fatalf("subtotal depends on item order: %s vs %s", a.Subtotal, b.Subtotal)
	}
	if !a.Subtotal.Equal(d("60.99")) {
		t.Fatalf("subtotal expected 60.99, got %s", a.Subtotal)
	}
}

func TestCalculateInvoiceTotals_TaxIsExact(t *testing.T) {
	// 0.1 + 0.2 style inputs that lose precision in binary floats.
	totals := CalculateInvoiceTotals(amounts([2]string{"1", "0.1"}, [2]string{"1", "0.2"}), d("7.5"), d("0"))
	if !totals.Subtotal.Equal(d("0.3")) {
		t.Fatalf("subtotal expected 0.3, got %s", totals.Subtotal)
	}
	if !totals.TaxAmount.Equal(d("0.0225")) {
		t.Fatalf("tax_amount expected 0.0225, got %s", totals.TaxAmount)
	}
}

func TestCalculateInvoiceTotals_DiscountAtBoundaryZeroesTotal(t *testing.T) {
	// discount == subtotal + tax leaves exactly zero, a larger discount floors.
	items := amounts([2]string{"1", "100"})
	exact := CalculateInvoiceTotals(items, d("10"), d("110"))
	if !exact.Total.Equal(d("0")) {
		t.Fatalf("total expected 0, got %s", exact.Total)
	}
	over := CalculateInvoiceTotals(items, d("10"), d("110.01"))
	if !over.Total.Equal(d("0")) {
		t.Fatalf("total expected floored 0, got %s", over.Total)
	}
}

func TestCalculateItemAmount(t *testing.T) {
	cases := []struct {
		quantity string
		rate     string
		expected string
	}{
		{"2", "100", "200"},
		{"0", "50", "0"},
		{"1.5", "10", "15"},
		{"3", "0.1", "0.3"},
	}
	for _, tc := range cases {
		got := CalculateItemAmount(d(tc.quantity), d(tc.rate))
		if !got.Equal(d(tc.expected)) {
			t.Fatalf("CalculateItemAmount(%s, %s) expected %s, got %s", tc.quantity, tc.rate, tc.expected, got)
		}
	}
}
