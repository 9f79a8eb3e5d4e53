package models_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/vyasarsoft/invoices_backend/models"
	"github.com/vyasarsoft/invoices_backend/utils"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestRecomputeDerivesAllFields(t *testing.T) {
	inv := models.Invoice{
		TaxRate:  d("10"),
		Discount: d("5"),
		Items: []models.InvoiceItem{
			{ItemId: "a", Quantity: d("2"), Rate: d("100")},
			{ItemId: "b", Quantity: d("1"), Rate: d("50"), Amount: d("999")},
		},
	}

	inv.Recompute()

	if !inv.Items[1].Amount.Equal(d("50")) {
		t.Fatalf("carried amount not recomputed, got %s", inv.Items[1].Amount)
	}
	if !inv.Subtotal.Equal(d("250")) {
		t.Fatalf("subtotal expected 250, got %s", inv.Subtotal)
	}
	if !inv.TaxAmount.Equal(d("25")) {
		t.Fatalf("tax_amount expected 25, got %s", inv.TaxAmount)
	}
	if !inv.Total.Equal(d("270")) {
		t.Fatalf("total expected 270, got %s", inv.Total)
	}
}

func TestDefaultInvoice(t *testing.T) {
	inv := models.DefaultInvoice(7)

	if !strings.HasPrefix(inv.InvoiceNumber, "INV-") {
		t.Fatalf("unexpected invoice number %s", inv.InvoiceNumber)
	}
	if inv.UserId != 7 {
		t.Fatalf("user id expected 7, got %d", inv.UserId)
	}
	if inv.Status != models.InvoiceStatusUnpaid {
		t.Fatalf("status expected unpaid, got %s", inv.Status)
	}
	if !inv.TaxRate.Equal(d("10")) {
		t.Fatalf("tax_rate expected 10, got %s", inv.TaxRate)
	}
	if len(inv.Items) != 1 {
		t.Fatalf("expected one blank item, got %d", len(inv.Items))
	}
	item := inv.Items[0]
	if item.ItemId == "" {
		t.Fatal("blank item has no id")
	}
	if !item.Quantity.Equal(d("1")) || !item.Rate.IsZero() {
		t.Fatalf("blank item expected qty 1 rate 0, got %+v", item)
	}
	if !inv.Total.IsZero() {
		t.Fatalf("fresh draft total expected 0, got %s", inv.Total)
	}
	if inv.PublicId == "" {
		t.Fatal("draft has no public id")
	}
}

func TestBuildInvoiceItems(t *testing.T) {
	items := models.BuildInvoiceItems([]models.NewInvoiceItem{
		{ItemId: "keep-me", Description: "first", Quantity: d("1"), Rate: d("10")},
		{Description: "second", Quantity: d("2"), Rate: d("20")},
	})

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ItemId != "keep-me" {
		t.Fatalf("existing item id replaced: %s", items[0].ItemId)
	}
	if items[1].ItemId == "" {
		t.Fatal("missing item id not assigned")
	}
	for i, item := range items {
		if item.Position != i {
			t.Fatalf("item %d has position %d", i, item.Position)
		}
	}
}

func TestParseInvoiceStatus(t *testing.T) {
	for _, s := range []string{"paid", "unpaid", "partial", "overdue"} {
		status, err := models.ParseInvoiceStatus(s)
		if err != nil {
			t.Fatalf("ParseInvoiceStatus(%q): %v", s, err)
		}
		if string(status) != s {
			t.Fatalf("ParseInvoiceStatus(%q) = %s", s, status)
		}
	}
	if _, err := models.ParseInvoiceStatus("cancelled"); err == nil {
		t.Fatal("expected error for unknown status")
	}
	if models.InvoiceStatus("draft").IsValid() {
		t.Fatal("draft must not be a valid status")
	}
}

func TestForPublicViewHidesOwner(t *testing.T) {
	inv := &models.Invoice{ID: 3, UserId: 7, InvoiceNumber: "INV-1001"}

	got := inv.ForPublicView(context.Background())
	if got.UserId != 7 {
		t.Fatalf("owner fetch changed user_id: %d", got.UserId)
	}

	ctx := utils.SetPublicViewInContext(context.Background(), true)
	got = inv.ForPublicView(ctx)
	if got.UserId != 0 {
		t.Fatalf("public view exposed user_id: %d", got.UserId)
	}
	if got.InvoiceNumber != "INV-1001" {
		t.Fatalf("public view lost invoice_number: %s", got.InvoiceNumber)
	}
}
