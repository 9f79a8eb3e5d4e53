// Package pdf renders an invoice to an A4 document. Line items are laid
// out in fixed chunks of five per page; the payment, services and footer
// blocks are printed once, after the last chunk.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/vyasarsoft/invoices_backend/models"
	"github.com/vyasarsoft/invoices_backend/utils"
)

const itemsPerPage = 5

const (
	leftMargin = 15.0
	pageWidth  = 180.0
)

type Renderer struct {
	issuer IssuerProfile
}

func NewRenderer(issuer IssuerProfile) *Renderer {
	return &Renderer{issuer: issuer}
}

// FileName returns the download name for an invoice document.
func FileName(invoice *models.Invoice) string {
	return fmt.Sprintf("invoice-%s.pdf", invoice.InvoiceNumber)
}

// chunkItems splits items into runs of at most size. An empty input
// yields a single empty chunk so the document always has one page.
func chunkItems(items []models.InvoiceItem, size int) [][]models.InvoiceItem {
	if len(items) == 0 {
		return [][]models.InvoiceItem{{}}
	}
	var chunks [][]models.InvoiceItem
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks
}

// Render produces the finished PDF bytes.
func (r *Renderer) Render(invoice *models.Invoice) ([]byte, error) {
	pdf := r.build(invoice)
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Renderer) build(invoice *models.Invoice) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(leftMargin, 15, 15)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 6, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	chunks := chunkItems(invoice.Items, itemsPerPage)
	for chunkIndex, chunk := range chunks {
		pdf.AddPage()
		r.renderLetterhead(pdf)
		r.renderInvoiceBand(pdf)
		r.renderBillTo(pdf, invoice)
		r.renderItemTable(pdf, chunk, chunkIndex*itemsPerPage)

		if chunkIndex == len(chunks)-1 {
			r.renderTotals(pdf, invoice)
			r.renderServices(pdf)
			r.renderFooter(pdf)
		}
	}

	return pdf
}

func (r *Renderer) renderLetterhead(pdf *gofpdf.Fpdf) {
	top := pdf.GetY()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(110, 7, r.issuer.Name)
	pdf.Ln(7)
	pdf.SetFont("Arial", "B", 9)
	pdf.Cell(110, 5, r.issuer.Pan)
	pdf.Ln(5)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(110, 5, r.issuer.Branches)

	pdf.SetXY(leftMargin+110, top)
	pdf.SetFont("Arial", "B", 9)
	for i, line := range r.issuer.HeadOffice {
		if i == 1 {
			pdf.SetFont("Arial", "", 9)
		}
		pdf.CellFormat(70, 5, line, "", 0, "R", false, 0, "")
		pdf.SetXY(leftMargin+110, top+float64(i+1)*5)
	}

	pdf.SetXY(leftMargin, top+22)
}

func (r *Renderer) renderInvoiceBand(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 4
	pdf.SetFillColor(250, 204, 21)
	pdf.Rect(leftMargin, y, 105, 12, "F")
	pdf.Rect(leftMargin+145, y, 35, 12, "F")
	pdf.SetFont("Arial", "B", 24)
	pdf.SetXY(leftMargin+105, y)
	pdf.CellFormat(40, 12, "INVOICE", "", 0, "C", false, 0, "")
	pdf.SetXY(leftMargin, y+18)
}

func (r *Renderer) renderBillTo(pdf *gofpdf.Fpdf, invoice *models.Invoice) {
	top := pdf.GetY()

	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(110, 5, "Invoice to:")
	pdf.Ln(5)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(110, 5, invoice.ToName)
	pdf.Ln(5)
	pdf.Cell(110, 5, invoice.ToEmail)
	pdf.Ln(5)
	address := invoice.ToAddress
	if address == "" {
		address = r.issuer.FallbackAddr
	}
	pdf.MultiCell(110, 5, address, "", "L", false)

	pdf.SetXY(leftMargin+110, top)
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(70, 5, fmt.Sprintf("Invoice Number: #%s", invoice.InvoiceNumber), "", 0, "R", false, 0, "")
	pdf.SetXY(leftMargin+110, top+5)
	pdf.CellFormat(70, 5, fmt.Sprintf("Invoice Date: %s", invoice.Date.Format("2006-01-02")), "", 0, "R", false, 0, "")

	pdf.SetXY(leftMargin, top+28)
}

func (r *Renderer) renderItemTable(pdf *gofpdf.Fpdf, chunk []models.InvoiceItem, offset int) {
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(229, 231, 235)
	pdf.CellFormat(12, 8, "SL.", "1", 0, "L", true, 0, "")
	pdf.CellFormat(88, 8, "Item Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(28, 8, "Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(32, 8, "Total", "1", 0, "R", true, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 9)
	for i, item := range chunk {
		pdf.CellFormat(12, 8, fmt.Sprintf("%02d", offset+i+1), "1", 0, "L", false, 0, "")
		pdf.CellFormat(88, 8, item.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(28, 8, formatMoney(item.Rate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 8, item.Quantity.String(), "1", 0, "C", false, 0, "")
		pdf.CellFormat(32, 8, formatMoney(item.Amount), "1", 0, "R", false, 0, "")
		pdf.Ln(8)
	}
	pdf.Ln(6)
}

func (r *Renderer) renderTotals(pdf *gofpdf.Fpdf, invoice *models.Invoice) {
	top := pdf.GetY()

	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(100, 5, "Payment Info:")
	pdf.Ln(5)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(100, 5, fmt.Sprintf("Account: %s", r.issuer.AccountNo))
	pdf.Ln(5)
	pdf.Cell(100, 5, fmt.Sprintf("A/C Name: %s", r.issuer.AccountName))
	pdf.Ln(5)
	pdf.Cell(100, 5, fmt.Sprintf("Bank Details: %s", r.issuer.BankName))
	pdf.Ln(5)
	pdf.Cell(100, 5, fmt.Sprintf("IFSC Code: %s", r.issuer.IfscCode))

	y := top
	pdf.SetXY(leftMargin+115, y)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(35, 6, "Sub Total:")
	pdf.CellFormat(30, 6, formatMoney(invoice.Subtotal), "", 0, "R", false, 0, "")
	y += 6
	if !invoice.Discount.IsZero() {
		pdf.SetXY(leftMargin+115, y)
		pdf.Cell(35, 6, "Discount:")
		pdf.CellFormat(30, 6, "-"+formatMoney(invoice.Discount), "", 0, "R", false, 0, "")
		y += 6
	}
	pdf.SetXY(leftMargin+115, y)
	pdf.SetFillColor(253, 224, 71)
	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(35, 6, "Tax:", "", 0, "L", true, 0, "")
	pdf.CellFormat(30, 6, invoice.TaxRate.String()+"%", "", 0, "R", true, 0, "")
	y += 8
	pdf.SetXY(leftMargin+115, y)
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(35, 6, "Total:")
	pdf.CellFormat(30, 6, formatMoney(invoice.Total), "", 0, "R", false, 0, "")

	pdf.SetXY(leftMargin, top+32)
}

func (r *Renderer) renderServices(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(100, 6, "Accounting Tax & Other Services:")
	pdf.Ln(7)

	top := pdf.GetY()
	rows := 0
	for _, column := range r.issuer.Services {
		if len(column) > rows {
			rows = len(column)
		}
	}
	pdf.SetDrawColor(150, 150, 150)
	pdf.Rect(leftMargin, top, pageWidth, float64(rows)*5+6, "D")
	pdf.SetDrawColor(0, 0, 0)

	pdf.SetFont("Arial", "", 8)
	for col, column := range r.issuer.Services {
		x := leftMargin + 4 + float64(col)*60
		for row, service := range column {
			pdf.SetXY(x, top+3+float64(row)*5)
			pdf.Cell(56, 5, "- "+service)
		}
	}

	pdf.SetXY(leftMargin, top+float64(rows)*5+10)
}

func (r *Renderer) renderFooter(pdf *gofpdf.Fpdf) {
	pdf.SetFillColor(250, 204, 21)
	pdf.Rect(leftMargin, pdf.GetY(), pageWidth, 1, "F")
	pdf.Ln(4)

	top := pdf.GetY()
	pdf.SetFont("Arial", "B", 8)
	pdf.Cell(60, 4, r.issuer.Phone)
	pdf.Ln(4)
	pdf.SetFont("Arial", "", 8)
	pdf.Cell(60, 4, r.issuer.Email)

	pdf.SetFont("Arial", "I", 8)
	for i, quote := range r.issuer.Quotes {
		pdf.SetXY(leftMargin+60, top+float64(i)*4)
		pdf.CellFormat(60, 4, quote, "", 0, "C", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 8)
	pdf.SetXY(leftMargin+120, top)
	pdf.CellFormat(60, 4, r.issuer.ThanksNote, "", 0, "R", false, 0, "")
	pdf.SetFont("Arial", "", 8)
	pdf.SetXY(leftMargin+120, top+4)
	pdf.CellFormat(60, 4, "Terms & Conditions -", "", 0, "R", false, 0, "")
	pdf.SetXY(leftMargin+120, top+8)
	pdf.CellFormat(60, 4, r.issuer.CreditTerms, "", 0, "R", false, 0, "")
}

func formatMoney(d decimal.Decimal) string {
	return "Rs. " + utils.FormatGrouped(d, 2)
}
