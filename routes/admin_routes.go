package routes

import (
	"github.com/acr-platform/api-go/config"
	"github.com/acr-platform/api-go/controllers"
	"github.com/acr-platform/api-go/middleware"
	"github.com/gin-gonic/gin"
)

func SetupAdminRoutes(r *gin.Engine, adminController *controllers.AdminController, cfg *config.Config) {
	admin := r.Group("/admin")
	admin.GET("/login", adminController.ShowLogin)
	admin.POST("/login", adminController.Login)

	protected := admin.Group("")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		protected.GET("/logout", adminController.Logout)
		protected.GET("/dashboard", adminController.Dashboard)
		protected.GET("/report/:id", adminController.ViewReport)
		protected.POST("/report/:id/update_status", adminController.UpdateStatus)
		protected.POST("/report/:id/delete", adminController.DeleteReport)
		protected.GET("/export", adminController.Export)
		protected.GET("/uploads/:filename", adminController.DownloadEvidence)
	}
}
