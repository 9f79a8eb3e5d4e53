package models_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/vyasarsoft/invoices_backend/config"
	"github.com/vyasarsoft/invoices_backend/models"
	"github.com/vyasarsoft/invoices_backend/utils"
)

// End-to-end persistence flow against a real MySQL + Redis. Provide the
// usual DB_* / REDIS_ADDRESS env vars and set INTEGRATION_TESTS=1.
func TestInvoiceLifecycle_Integration(t *testing.T) {
	if strings.TrimSpace(os.Getenv("INTEGRATION_TESTS")) == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run integration tests (requires mysql and redis)")
	}

	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()
	models.MigrateTable()

	ctx := context.Background()

	user, err := models.CreateUser(ctx, &models.NewUser{
		Username: "itest-" + time.Now().Format("150405.000"),
		Email:    time.Now().Format("150405.000") + "@invoice.test",
		Password: "secret-password",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	ctx = utils.SetUserIdInContext(ctx, user.ID)
	ctx = utils.SetUsernameInContext(ctx, user.Username)

	created, err := models.CreateInvoice(ctx, &models.NewInvoice{
		InvoiceNumber: "INV-ITEST-1",
		Date:          time.Now(),
		FromName:      "Naresh Kumar M",
		FromEmail:     "vyasarnaresh@gmail.com",
		ToName:        "Acme Traders",
		ToEmail:       "billing@acme.example",
		TaxRate:       d("10"),
		Items: []models.NewInvoiceItem{
			{Description: "consulting", Quantity: d("2"), Rate: d("100")},
		},
	})
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	if !created.Total.Equal(d("220")) {
		t.Fatalf("total expected 220, got %s", created.Total)
	}

	fetched, err := models.GetInvoice(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetInvoice: %v", err)
	}
	if len(fetched.Items) != 1 || fetched.Items[0].Description != "consulting" {
		t.Fatalf("unexpected items %+v", fetched.Items)
	}

	// Not shared yet: the public path must not see it.
	if _, err := models.GetPublicInvoice(ctx, fetched.PublicId); err != utils.ErrorRecordNotFound {
		t.Fatalf("unshared invoice visible publicly: %v", err)
	}

	if _, err := models.MarkInvoicePublic(ctx, created.ID); err != nil {
		t.Fatalf("MarkInvoicePublic: %v", err)
	}
	public, err := models.GetPublicInvoice(ctx, fetched.PublicId)
	if err != nil {
		t.Fatalf("GetPublicInvoice: %v", err)
	}
	if public.InvoiceNumber != "INV-ITEST-1" {
		t.Fatalf("unexpected public invoice %s", public.InvoiceNumber)
	}

	if _, err := models.UpdateInvoiceStatus(ctx, created.ID, "paid"); err != nil {
		t.Fatalf("UpdateInvoiceStatus: %v", err)
	}

	listed, err := models.ListInvoices(ctx, models.InvoiceFilter{Status: "paid"})
	if err != nil {
		t.Fatalf("ListInvoices: %v", err)
	}
	found := false
	for _, inv := range listed {
		if inv.ID == created.ID {
			found = true
		}
	}
	if !found {
		t.Fatal("paid filter did not return the invoice")
	}

	if _, err := models.DeleteInvoice(ctx, created.ID); err != nil {
		t.Fatalf("DeleteInvoice: %v", err)
	}
	if _, err := models.GetInvoice(ctx, created.ID); err != utils.ErrorRecordNotFound {
		t.Fatalf("deleted invoice still readable: %v", err)
	}
}
