// Package mailer delivers the public invoice link to a recipient over SMTP.
package mailer

import (
	"errors"
	"fmt"

	"github.com/vyasarsoft/invoices_backend/config"
	"github.com/vyasarsoft/invoices_backend/models"
	gomail "gopkg.in/gomail.v2"
)

type Sender interface {
	DialAndSend(messages ...*gomail.Message) error
}

type Mailer struct {
	cfg    config.MailConfig
	sender Sender
}

func New(cfg config.MailConfig) *Mailer {
	return &Mailer{cfg: cfg, sender: config.NewMailDialer(cfg)}
}

// NewWithSender injects a transport, used by tests.
func NewWithSender(cfg config.MailConfig, sender Sender) *Mailer {
	return &Mailer{cfg: cfg, sender: sender}
}

// PublicURL builds the shared read-only link for an invoice.
func (m *Mailer) PublicURL(invoice *models.Invoice) string {
	return fmt.Sprintf("%s/public/invoices/%s", m.cfg.BaseURL, invoice.PublicId)
}

// SendInvoiceLink mails the read-only link to the invoice recipient.
// The invoice must already be shared, the link is dead otherwise.
func (m *Mailer) SendInvoiceLink(invoice *models.Invoice) error {
	if invoice.ToEmail == "" {
		return errors.New("invoice has no recipient email")
	}

	body, err := renderPublicLinkBody(invoice, m.PublicURL(invoice))
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", msg.FormatAddress(m.cfg.From, "Invoice App"))
	msg.SetHeader("To", invoice.ToEmail)
	msg.SetHeader("Subject", fmt.Sprintf("Invoice #%s from %s", invoice.InvoiceNumber, invoice.FromName))
	msg.SetBody("text/html", body)

	return m.sender.DialAndSend(msg)
}
