package models

import "fmt"

// InvoiceStatus is an externally set label. It never changes totals and
// totals never change it.
type InvoiceStatus string

const (
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusUnpaid  InvoiceStatus = "unpaid"
	InvoiceStatusPartial InvoiceStatus = "partial"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

var invoiceStatuses = map[string]InvoiceStatus{
	"paid":    InvoiceStatusPaid,
	"unpaid":  InvoiceStatusUnpaid,
	"partial": InvoiceStatusPartial,
	"overdue": InvoiceStatusOverdue,
}

func ParseInvoiceStatus(s string) (InvoiceStatus, error) {
	status, ok := invoiceStatuses[s]
	if !ok {
		return "", fmt.Errorf("%s is not a valid InvoiceStatus", s)
	}
	return status, nil
}

func (s InvoiceStatus) IsValid() bool {
	_, ok := invoiceStatuses[string(s)]
	return ok
}
