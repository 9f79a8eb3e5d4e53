package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/vyasarsoft/invoices_backend/controllers"
	"github.com/vyasarsoft/invoices_backend/middlewares"
)

func SetupRoutes(r *gin.Engine) {

	r.Use(middlewares.AuthMiddleware())

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", controllers.Register)
			auth.POST("/login", controllers.Login)
		}

		protected := api.Group("/", middlewares.RequireAuth())
		protected.GET("/auth/me", controllers.Me)

		invoices := protected.Group("/invoices")
		{
			invoices.GET("", controllers.ListInvoices)
			invoices.GET("/new", controllers.NewInvoiceDraft)
			invoices.GET("/export", controllers.ExportInvoices)
			invoices.POST("", controllers.CreateInvoice)
			invoices.GET("/:id", controllers.GetInvoice)
			invoices.PUT("/:id", controllers.UpdateInvoice)
			invoices.PATCH("/:id/status", controllers.UpdateInvoiceStatus)
			invoices.DELETE("/:id", controllers.DeleteInvoice)
			invoices.POST("/:id/items", controllers.AddInvoiceItem)
			invoices.PUT("/:id/items/:index", controllers.UpdateInvoiceItem)
			invoices.DELETE("/:id/items/:index", controllers.RemoveInvoiceItem)
			invoices.GET("/:id/pdf", controllers.DownloadInvoicePdf)
			invoices.POST("/:id/send", controllers.SendInvoice)
		}

		protected.GET("/dashboard", controllers.GetDashboard)
	}

	public := r.Group("/public", middlewares.PublicViewMiddleware())
	{
		public.GET("/invoices/:publicId", controllers.GetPublicInvoice)
		public.GET("/invoices/:publicId/pdf", controllers.DownloadPublicInvoicePdf)
	}
}
