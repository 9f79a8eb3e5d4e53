package pdf

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vyasarsoft/invoices_backend/models"
)

func invoiceWithItems(n int) *models.Invoice {
	items := make([]models.InvoiceItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, models.InvoiceItem{
			ItemId:      fmt.Sprintf("item-%d", i),
			Position:    i,
			Description: fmt.Sprintf("service %d", i+1),
			Quantity:    decimal.NewFromInt(1),
			Rate:        decimal.NewFromInt(100),
		})
	}
	inv := &models.Invoice{
		InvoiceNumber: "INV-2001",
		Date:          time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		ToName:        "Acme Traders",
		ToEmail:       "billing@acme.example",
		TaxRate:       decimal.NewFromInt(10),
		Items:         items,
	}
	inv.Recompute()
	return inv
}

func TestChunkItems(t *testing.T) {
	cases := []struct {
		items  int
		chunks []int
	}{
		{0, []int{0}},
		{1, []int{1}},
		{5, []int{5}},
		{6, []int{5, 1}},
		{12, []int{5, 5, 2}},
	}
	for _, tc := range cases {
		got := chunkItems(invoiceWithItems(tc.items).Items, itemsPerPage)
		if len(got) != len(tc.chunks) {
			t.Fatalf("%d items: expected %d chunks, got %d", tc.items, len(tc.chunks), len(got))
		}
		for i, size := range tc.chunks {
			if len(got[i]) != size {
				t.Fatalf("%d items: chunk %d expected %d entries, got %d", tc.items, i, size, len(got[i]))
			}
		}
	}
}

func TestChunkItemsPreservesOrder(t *testing.T) {
	chunks := chunkItems(invoiceWithItems(12).Items, itemsPerPage)
	n := 0
	for _, chunk := range chunks {
		for _, item := range chunk {
			if item.Position != n {
				t.Fatalf("expected position %d, got %d", n, item.Position)
			}
			n++
		}
	}
	if n != 12 {
		t.Fatalf("expected 12 items across chunks, got %d", n)
	}
}

func TestRenderPageCounts(t *testing.T) {
	cases := []struct {
		items int
		pages int
	}{
		{0, 1},
		{1, 1},
		{5, 1},
		{6, 2},
		{12, 3},
	}
	r := NewRenderer(DefaultIssuer())
	for _, tc := range cases {
		doc := r.build(invoiceWithItems(tc.items))
		if err := doc.Error(); err != nil {
			t.Fatalf("%d items: build error: %v", tc.items, err)
		}
		if got := doc.PageCount(); got != tc.pages {
			t.Fatalf("%d items: expected %d pages, got %d", tc.items, tc.pages, got)
		}
	}
}

func TestRenderProducesPdf(t *testing.T) {
	r := NewRenderer(DefaultIssuer())
	content, err := r.Render(invoiceWithItems(7))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(content, []byte("%PDF")) {
		t.Fatal("output is not a PDF document")
	}
}

func TestFileName(t *testing.T) {
	inv := invoiceWithItems(1)
	if got := FileName(inv); got != "invoice-INV-2001.pdf" {
		t.Fatalf("unexpected file name %s", got)
	}
}
