package routes

import (
	"github.com/acr-platform/api-go/controllers"
	"github.com/gin-gonic/gin"
)

func SetupCitizenRoutes(r *gin.Engine, citizenController *controllers.CitizenController) {
	r.GET("/", citizenController.Index)
	r.GET("/report", citizenController.ShowReportForm)
	r.POST("/report", citizenController.SubmitReport)
	r.GET("/success/:code", citizenController.Success)
	r.GET("/track", citizenController.ShowTrackForm)
	r.POST("/track", citizenController.TrackReport)

	// The report code in the URL acts as a bearer secret for
	// self-service management.
	r.GET("/manage/:code", citizenController.ManageReport)
	r.POST("/manage/:code", citizenController.ManageReportPost)
}
