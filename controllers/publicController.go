package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vyasarsoft/invoices_backend/models"
	"github.com/vyasarsoft/invoices_backend/utils"
)

// GetPublicInvoice serves the shared read-only snapshot. An unknown or
// unshared public id is an empty page, not an error.
func GetPublicInvoice(c *gin.Context) {
	publicId := c.Param("publicId")

	invoice, err := models.GetPublicInvoice(c.Request.Context(), publicId)
	if err != nil {
		if err == utils.ErrorRecordNotFound {
			utils.Success(c, "ok", nil)
			return
		}
		utils.Error(c, http.StatusInternalServerError, "failed to load invoice", err)
		return
	}

	utils.Success(c, "ok", invoice)
}

func DownloadPublicInvoicePdf(c *gin.Context) {
	publicId := c.Param("publicId")

	invoice, err := models.GetPublicInvoice(c.Request.Context(), publicId)
	if err != nil {
		utils.Error(c, http.StatusNotFound, "invoice not found", err)
		return
	}

	writeInvoicePdf(c, invoice)
}
