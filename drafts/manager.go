// Package drafts holds the in-flight editing state of a single invoice.
// Every mutation runs a synchronous recompute before it returns, so a
// snapshot taken at any point carries consistent derived totals.
package drafts

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vyasarsoft/invoices_backend/models"
	"github.com/vyasarsoft/invoices_backend/utils"
)

// ItemField names the editable columns of a line item.
type ItemField string

const (
	ItemFieldDescription ItemField = "description"
	ItemFieldQuantity    ItemField = "quantity"
	ItemFieldRate        ItemField = "rate"
)

var itemFields = map[string]ItemField{
	"description": ItemFieldDescription,
	"quantity":    ItemFieldQuantity,
	"rate":        ItemFieldRate,
}

func ParseItemField(s string) (ItemField, bool) {
	field, ok := itemFields[s]
	return field, ok
}

// InvoicePatch carries a partial update. Nil fields are left untouched.
// Numeric fields arrive as strings because the editing surface sends
// whatever the user typed.
type InvoicePatch struct {
	InvoiceNumber *string    `json:"invoice_number"`
	Date          *time.Time `json:"date"`
	FromName      *string    `json:"from_name"`
	FromEmail     *string    `json:"from_email"`
	ToName        *string    `json:"to_name"`
	ToEmail       *string    `json:"to_email"`
	ToAddress     *string    `json:"to_address"`
	Status        *string    `json:"status"`
	TaxRate       *string    `json:"tax_rate"`
	Discount      *string    `json:"discount"`
}

// Session is the working copy of one invoice being edited.
type Session struct {
	invoice models.Invoice
}

func NewSession(invoice *models.Invoice) *Session {
	s := &Session{}
	s.Replace(invoice)
	return s
}

// Invoice returns a snapshot of the current state.
func (s *Session) Invoice() *models.Invoice {
	snapshot := s.invoice
	snapshot.Items = make([]models.InvoiceItem, len(s.invoice.Items))
	copy(snapshot.Items, s.invoice.Items)
	return &snapshot
}

// Replace swaps in a full invoice. Derived fields carried on the input
// are discarded and recomputed from the raw fields.
func (s *Session) Replace(invoice *models.Invoice) {
	s.invoice = *invoice
	s.invoice.Items = make([]models.InvoiceItem, len(invoice.Items))
	copy(s.invoice.Items, invoice.Items)
	s.recompute()
}

// Patch merges partial data into the draft. A tax rate outside 0..100 is
// dropped without error, matching how the editing surface treats it: the
// field keeps its previous value.
func (s *Session) Patch(patch InvoicePatch) {
	if patch.InvoiceNumber != nil {
		s.invoice.InvoiceNumber = *patch.InvoiceNumber
	}
	if patch.Date != nil {
		s.invoice.Date = *patch.Date
	}
	if patch.FromName != nil {
		s.invoice.FromName = *patch.FromName
	}
	if patch.FromEmail != nil {
		s.invoice.FromEmail = *patch.FromEmail
	}
	if patch.ToName != nil {
		s.invoice.ToName = *patch.ToName
	}
	if patch.ToEmail != nil {
		s.invoice.ToEmail = *patch.ToEmail
	}
	if patch.ToAddress != nil {
		s.invoice.ToAddress = *patch.ToAddress
	}
	if patch.Status != nil {
		if status, err := models.ParseInvoiceStatus(*patch.Status); err == nil {
			s.invoice.Status = status
		}
	}
	if patch.TaxRate != nil {
		rate, _ := utils.ParseLooseDecimal(*patch.TaxRate)
		if !rate.IsNegative() && !rate.GreaterThan(decimal.NewFromInt(100)) {
			s.invoice.TaxRate = rate
		}
	}
	if patch.Discount != nil {
		discount, _ := utils.ParseLooseDecimal(*patch.Discount)
		if !discount.IsNegative() {
			s.invoice.Discount = discount
		}
	}
	s.recompute()
}

// AddItem appends a blank line: quantity 1, rate 0.
func (s *Session) AddItem() models.InvoiceItem {
	item := models.InvoiceItem{
		ItemId:   uuid.New().String(),
		Position: len(s.invoice.Items),
		Quantity: decimal.NewFromInt(1),
	}
	s.invoice.Items = append(s.invoice.Items, item)
	s.recompute()
	return item
}

// RemoveItem deletes the line at index. An invoice always keeps at least
// one line, so removing the last remaining item is a no-op.
func (s *Session) RemoveItem(index int) error {
	if index < 0 || index >= len(s.invoice.Items) {
		return utils.ErrorItemIndexOutOfRange
	}
	if len(s.invoice.Items) == 1 {
		return nil
	}
	s.invoice.Items = append(s.invoice.Items[:index], s.invoice.Items[index+1:]...)
	for i := range s.invoice.Items {
		s.invoice.Items[i].Position = i
	}
	s.recompute()
	return nil
}

// UpdateItem sets one field of the line at index. Quantity and rate are
// parsed loosely, unparseable input becomes zero.
func (s *Session) UpdateItem(index int, field ItemField, value string) error {
	if index < 0 || index >= len(s.invoice.Items) {
		return utils.ErrorItemIndexOutOfRange
	}
	item := &s.invoice.Items[index]
	switch field {
	case ItemFieldDescription:
		item.Description = value
	case ItemFieldQuantity:
		item.Quantity, _ = utils.ParseLooseDecimal(value)
	case ItemFieldRate:
		item.Rate, _ = utils.ParseLooseDecimal(value)
	default:
		return utils.ErrorInvalidItemField
	}
	s.recompute()
	return nil
}

func (s *Session) recompute() {
	s.invoice.Recompute()
}
