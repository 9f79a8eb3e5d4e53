package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/vyasarsoft/invoices_backend/models"
	"github.com/vyasarsoft/invoices_backend/utils"
)

func Register(c *gin.Context) {
	var input models.NewUser
	if err := c.ShouldBindJSON(&input); err != nil {
		if verr, ok := err.(validator.ValidationErrors); ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": utils.ProcessValidationErrors(verr)})
			return
		}
		utils.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	user, err := models.CreateUser(c.Request.Context(), &input)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "failed to register", err)
		return
	}

	utils.Success(c, "registered", user)
}

func Login(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	info, err := models.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		utils.Error(c, http.StatusUnauthorized, "login failed", err)
		return
	}

	utils.Success(c, "logged in", info)
}

func Me(c *gin.Context) {
	userId, _ := utils.GetUserIdFromContext(c.Request.Context())

	user, err := models.GetUser(c.Request.Context(), userId)
	if err != nil {
		utils.Error(c, http.StatusNotFound, "user not found", err)
		return
	}

	utils.Success(c, "ok", user)
}
