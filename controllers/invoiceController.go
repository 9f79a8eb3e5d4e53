package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/bsm/redislock"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/vyasarsoft/invoices_backend/config"
	"github.com/vyasarsoft/invoices_backend/drafts"
	"github.com/vyasarsoft/invoices_backend/mailer"
	"github.com/vyasarsoft/invoices_backend/models"
	"github.com/vyasarsoft/invoices_backend/pdf"
	"github.com/vyasarsoft/invoices_backend/utils"
)

var logger = config.GetLogger()

// requestFields tags log entries with the request identity so entries
// from concurrent edits can be told apart.
func requestFields(c *gin.Context, fields logrus.Fields) logrus.Fields {
	ctx := c.Request.Context()
	if correlationId, ok := utils.GetCorrelationIdFromContext(ctx); ok {
		fields["correlation_id"] = correlationId
	}
	if username, ok := utils.GetUsernameFromContext(ctx); ok {
		fields["username"] = username
	}
	return fields
}

func invoiceId(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid invoice id", err)
		return 0, false
	}
	return id, true
}

// obtainInvoiceLock serializes concurrent edits of the same invoice across
// instances. Best-effort: if redis is unavailable or the lock cannot be
// obtained, the edit proceeds; the database transaction still protects
// row consistency.
func obtainInvoiceLock(c *gin.Context, id int) *redislock.Lock {
	locker := config.GetRedisLock()
	if locker == nil {
		return nil
	}
	lock, err := locker.Obtain(c.Request.Context(), fmt.Sprintf("lock:invoice:%d", id), 30*time.Second, nil)
	if err == redislock.ErrNotObtained {
		logger.WithFields(requestFields(c, logrus.Fields{
			"field":      "obtainInvoiceLock",
			"invoice_id": id,
		})).Warn("could not obtain redis lock; proceeding without redis lock")
		return nil
	} else if err != nil {
		logger.WithFields(requestFields(c, logrus.Fields{
			"field":      "obtainInvoiceLock",
			"invoice_id": id,
		})).Warn("error obtaining redis lock; proceeding without redis lock: " + err.Error())
		return nil
	}
	return lock
}

func releaseInvoiceLock(c *gin.Context, lock *redislock.Lock) {
	if lock == nil {
		return
	}
	if err := lock.Release(c.Request.Context()); err != nil {
		logger.WithFields(requestFields(c, logrus.Fields{
			"field": "releaseInvoiceLock",
		})).Warn("failed to release redis lock: " + err.Error())
	}
}

func ListInvoices(c *gin.Context) {
	var filter models.InvoiceFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid filter", err)
		return
	}

	invoices, err := models.ListInvoices(c.Request.Context(), filter)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "failed to list invoices", err)
		return
	}

	utils.Success(c, "ok", invoices)
}

// NewInvoiceDraft returns an unsaved editing draft: timestamp based
// number, 10% tax, one blank line.
func NewInvoiceDraft(c *gin.Context) {
	userId, _ := utils.GetUserIdFromContext(c.Request.Context())
	utils.Success(c, "ok", models.DefaultInvoice(userId))
}

func CreateInvoice(c *gin.Context) {
	var input models.NewInvoice
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	invoice, err := models.CreateInvoice(c.Request.Context(), &input)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "failed to create invoice", err)
		return
	}

	utils.Success(c, "invoice created", invoice)
}

func GetInvoice(c *gin.Context) {
	id, ok := invoiceId(c)
	if !ok {
		return
	}

	invoice, err := models.GetInvoice(c.Request.Context(), id)
	if err != nil {
		utils.Error(c, http.StatusNotFound, "invoice not found", err)
		return
	}

	utils.Success(c, "ok", invoice)
}

type updateInvoiceRequest struct {
	drafts.InvoicePatch
	Items *[]models.NewInvoiceItem `json:"items"`
}

// UpdateInvoice merges a partial payload into the stored invoice and
// recomputes every derived field before persisting. When items are sent
// they replace the stored lines wholesale.
func UpdateInvoice(c *gin.Context) {
	id, ok := invoiceId(c)
	if !ok {
		return
	}

	var input updateInvoiceRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	lock := obtainInvoiceLock(c, id)
	defer releaseInvoiceLock(c, lock)

	invoice, err := models.GetInvoice(c.Request.Context(), id)
	if err != nil {
		utils.Error(c, http.StatusNotFound, "invoice not found", err)
		return
	}

	session := drafts.NewSession(invoice)
	if input.Items != nil {
		replacement := *session.Invoice()
		replacement.Items = models.BuildInvoiceItems(*input.Items)
		session.Replace(&replacement)
	}
	session.Patch(input.InvoicePatch)

	saved, err := models.SaveInvoice(c.Request.Context(), session.Invoice())
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "failed to update invoice", err)
		return
	}

	utils.Success(c, "invoice updated", saved)
}

func UpdateInvoiceStatus(c *gin.Context) {
	id, ok := invoiceId(c)
	if !ok {
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	invoice, err := models.UpdateInvoiceStatus(c.Request.Context(), id, input.Status)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "failed to update status", err)
		return
	}

	utils.Success(c, "status updated", invoice)
}

// DeleteInvoice removes the invoice after the caller confirmed. The list
// the client shows is only updated from the response, never ahead of it.
func DeleteInvoice(c *gin.Context) {
	id, ok := invoiceId(c)
	if !ok {
		return
	}

	lock := obtainInvoiceLock(c, id)
	defer releaseInvoiceLock(c, lock)

	invoice, err := models.DeleteInvoice(c.Request.Context(), id)
	if err != nil {
		utils.Error(c, http.StatusNotFound, "failed to delete invoice", err)
		return
	}

	utils.Success(c, "invoice deleted", invoice)
}

func AddInvoiceItem(c *gin.Context) {
	id, ok := invoiceId(c)
	if !ok {
		return
	}

	lock := obtainInvoiceLock(c, id)
	defer releaseInvoiceLock(c, lock)

	invoice, err := models.GetInvoice(c.Request.Context(), id)
	if err != nil {
		utils.Error(c, http.StatusNotFound, "invoice not found", err)
		return
	}

	session := drafts.NewSession(invoice)
	session.AddItem()

	saved, err := models.SaveInvoice(c.Request.Context(), session.Invoice())
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "failed to add item", err)
		return
	}

	utils.Success(c, "item added", saved)
}

func UpdateInvoiceItem(c *gin.Context) {
	id, ok := invoiceId(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid item index", err)
		return
	}

	var input struct {
		Field string `json:"field" binding:"required"`
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	field, ok := drafts.ParseItemField(input.Field)
	if !ok {
		utils.Error(c, http.StatusBadRequest, "invalid item field", utils.ErrorInvalidItemField)
		return
	}

	lock := obtainInvoiceLock(c, id)
	defer releaseInvoiceLock(c, lock)

	invoice, err := models.GetInvoice(c.Request.Context(), id)
	if err != nil {
		utils.Error(c, http.StatusNotFound, "invoice not found", err)
		return
	}

	session := drafts.NewSession(invoice)
	if err := session.UpdateItem(index, field, input.Value); err != nil {
		utils.Error(c, http.StatusBadRequest, "failed to update item", err)
		return
	}

	saved, err := models.SaveInvoice(c.Request.Context(), session.Invoice())
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "failed to update item", err)
		return
	}

	utils.Success(c, "item updated", saved)
}

func RemoveInvoiceItem(c *gin.Context) {
	id, ok := invoiceId(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid item index", err)
		return
	}

	lock := obtainInvoiceLock(c, id)
	defer releaseInvoiceLock(c, lock)

	invoice, err := models.GetInvoice(c.Request.Context(), id)
	if err != nil {
		utils.Error(c, http.StatusNotFound, "invoice not found", err)
		return
	}

	session := drafts.NewSession(invoice)
	if err := session.RemoveItem(index); err != nil {
		utils.Error(c, http.StatusBadRequest, "failed to remove item", err)
		return
	}

	saved, err := models.SaveInvoice(c.Request.Context(), session.Invoice())
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "failed to remove item", err)
		return
	}

	utils.Success(c, "item removed", saved)
}

func DownloadInvoicePdf(c *gin.Context) {
	id, ok := invoiceId(c)
	if !ok {
		return
	}

	invoice, err := models.GetInvoice(c.Request.Context(), id)
	if err != nil {
		utils.Error(c, http.StatusNotFound, "invoice not found", err)
		return
	}

	writeInvoicePdf(c, invoice)
}

func writeInvoicePdf(c *gin.Context, invoice *models.Invoice) {
	renderer := pdf.NewRenderer(pdf.DefaultIssuer())
	content, err := renderer.Render(invoice)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to render pdf", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", pdf.FileName(invoice)))
	c.Data(http.StatusOK, "application/pdf", content)
}

// SendInvoice emails the public link to the invoice recipient. Sharing is
// implied: the invoice is flagged public before the mail goes out.
func SendInvoice(c *gin.Context) {
	id, ok := invoiceId(c)
	if !ok {
		return
	}

	invoice, err := models.MarkInvoicePublic(c.Request.Context(), id)
	if err != nil {
		utils.Error(c, http.StatusNotFound, "invoice not found", err)
		return
	}

	m := mailer.New(config.GetMailConfig())
	if err := m.SendInvoiceLink(invoice); err != nil {
		config.LogError(logger, "controllers", "SendInvoice", "send", map[string]interface{}{"invoice_id": id}, err)
		utils.Error(c, http.StatusBadGateway, "failed to send invoice email", err)
		return
	}

	utils.Success(c, "invoice sent", gin.H{"public_url": m.PublicURL(invoice)})
}

func ExportInvoices(c *gin.Context) {
	var filter models.InvoiceFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid filter", err)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=invoices.xlsx")
	if err := models.ExportInvoicesExcel(c.Request.Context(), filter, c.Writer); err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to export invoices", err)
		return
	}
}
