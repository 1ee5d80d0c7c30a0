package routes

import (
	"github.com/acr-platform/api-go/config"
	"github.com/acr-platform/api-go/controllers"
	"github.com/acr-platform/api-go/middleware"
	"github.com/acr-platform/api-go/repository"
	"github.com/acr-platform/api-go/storage"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, store *storage.Store, cfg *config.Config, log *zap.SugaredLogger) {
	reports := repository.NewReportRepository(db)
	evidence := repository.NewEvidenceRepository(db)
	admins := repository.NewAdminRepository(db)

	citizenController := controllers.NewCitizenController(reports, evidence, store, cfg, log)
	adminController := controllers.NewAdminController(admins, reports, store, cfg, log)

	r.Use(middleware.RequestID())

	SetupCitizenRoutes(r, citizenController)
	SetupAdminRoutes(r, adminController, cfg)
}
