package mailer

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/vyasarsoft/invoices_backend/config"
	"github.com/vyasarsoft/invoices_backend/models"
	gomail "gopkg.in/gomail.v2"
)

type fakeSender struct {
	sent []*gomail.Message
}

func (f *fakeSender) DialAndSend(messages ...*gomail.Message) error {
	f.sent = append(f.sent, messages...)
	return nil
}

func testMailer() (*Mailer, *fakeSender) {
	cfg := config.MailConfig{
		Host:    "smtp.example.com",
		Port:    587,
		From:    "billing@example.com",
		BaseURL: "https://invoices.example.com",
	}
	sender := &fakeSender{}
	return NewWithSender(cfg, sender), sender
}

func testInvoice() *models.Invoice {
	return &models.Invoice{
		InvoiceNumber: "INV-3001",
		PublicId:      "0b6f1a52-8a43-4f5f-9f4c-0ff9a1f2b7d1",
		FromName:      "Naresh Kumar M",
		FromEmail:     "vyasarnaresh@gmail.com",
		ToName:        "Acme Traders",
		ToEmail:       "billing@acme.example",
		Total:         decimal.NewFromInt(220),
	}
}

func TestPublicURL(t *testing.T) {
	m, _ := testMailer()
	got := m.PublicURL(testInvoice())
	want := "https://invoices.example.com/public/invoices/0b6f1a52-8a43-4f5f-9f4c-0ff9a1f2b7d1"
	if got != want {
		t.Fatalf("PublicURL expected %s, got %s", want, got)
	}
}

func TestSendInvoiceLink(t *testing.T) {
	m, sender := testMailer()
	inv := testInvoice()

	if err := m.SendInvoiceLink(inv); err != nil {
		t.Fatal(err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(sender.sent))
	}

	msg := sender.sent[0]
	if got := msg.GetHeader("Subject"); len(got) != 1 || got[0] != "Invoice #INV-3001 from Naresh Kumar M" {
		t.Fatalf("unexpected subject %v", got)
	}
	if got := msg.GetHeader("To"); len(got) != 1 || got[0] != "billing@acme.example" {
		t.Fatalf("unexpected recipient %v", got)
	}
}

func TestSendInvoiceLinkRequiresRecipient(t *testing.T) {
	m, sender := testMailer()
	inv := testInvoice()
	inv.ToEmail = ""

	if err := m.SendInvoiceLink(inv); err == nil {
		t.Fatal("expected error for missing recipient")
	}
	if len(sender.sent) != 0 {
		t.Fatal("no message should be sent without a recipient")
	}
}

func TestPublicLinkBody(t *testing.T) {
	m, _ := testMailer()
	inv := testInvoice()

	body, err := renderPublicLinkBody(inv, m.PublicURL(inv))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"Invoice #INV-3001",
		"https://invoices.example.com/public/invoices/0b6f1a52-8a43-4f5f-9f4c-0ff9a1f2b7d1",
		"Naresh Kumar M",
		"Acme Traders",
		"220.00",
		"View Invoice",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q", want)
		}
	}
}
