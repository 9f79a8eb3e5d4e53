package mailer

import (
	"bytes"
	"html/template"

	"github.com/vyasarsoft/invoices_backend/models"
)

var publicLinkTemplate = template.Must(template.New("publicLink").Parse(`
<html>
<body style="margin:0; padding:0; font-family: 'Helvetica', 'Arial', sans-serif; background-color:#f4f4f4; color:#333;">
  <table width="100%" cellpadding="0" cellspacing="0" style="padding:40px 0;">
    <tr>
      <td align="center">
        <table width="600" cellpadding="0" cellspacing="0" style="background-color:#ffffff; border-radius:8px; overflow:hidden;">
          <tr>
            <td style="background-color:#1a73e8; padding:20px; text-align:center; color:#fff;">
              <h1 style="margin:0; font-size:24px;">Invoice #{{.Invoice.InvoiceNumber}}</h1>
            </td>
          </tr>
          <tr>
            <td style="padding:30px;">
              <p style="margin:0 0 10px;"><strong>From:</strong> {{.Invoice.FromName}} ({{.Invoice.FromEmail}})</p>
              <p style="margin:0 0 10px;"><strong>To:</strong> {{.Invoice.ToName}} ({{.Invoice.ToEmail}})</p>
              <p style="margin:0 0 20px;"><strong>Total Amount:</strong> Rs. {{.Total}}</p>
              <p style="margin:0 0 20px;">You can view and download your invoice by clicking the button below:</p>
              <p style="text-align:center; margin:30px 0;">
                <a href="{{.PublicURL}}" style="display:inline-block; padding:14px 28px; background-color:#1a73e8; color:#fff; text-decoration:none; font-weight:bold; border-radius:6px; font-size:16px;">View Invoice</a>
              </p>
              <p style="margin:20px 0 0; font-size:14px; color:#555;">
                If the button does not work, copy and paste this link into your browser:<br>
                <a href="{{.PublicURL}}" style="color:#1a73e8;">{{.PublicURL}}</a>
              </p>
            </td>
          </tr>
          <tr>
            <td style="border-top:1px solid #e0e0e0;"></td>
          </tr>
          <tr>
            <td style="padding:20px; text-align:center; font-size:12px; color:#888;">
              Powered by <strong>BillSmith Invoice</strong>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>
`))

type publicLinkData struct {
	Invoice   *models.Invoice
	Total     string
	PublicURL string
}

func renderPublicLinkBody(invoice *models.Invoice, publicURL string) (string, error) {
	var buf bytes.Buffer
	err := publicLinkTemplate.Execute(&buf, publicLinkData{
		Invoice:   invoice,
		Total:     invoice.Total.StringFixed(2),
		PublicURL: publicURL,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
