package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vyasarsoft/invoices_backend/models"
	"github.com/vyasarsoft/invoices_backend/utils"
)

func GetDashboard(c *gin.Context) {
	summary, err := models.GetDashboardSummary(c.Request.Context())
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "failed to load dashboard", err)
		return
	}

	utils.Success(c, "ok", summary)
}
