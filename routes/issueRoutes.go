package routes

import (
	"citysense-be/controllers"

	"github.com/gin-gonic/gin"
)

// IssueRoutes sets up the issue and dashboard routes
func IssueRoutes(api *gin.RouterGroup, ic *controllers.IssueController, requireAuth, rateLimit gin.HandlerFunc) {
	issue := api.Group("/issues")
	{
		issue.POST("", requireAuth, rateLimit, ic.CreateIssue)
		issue.GET("", ic.GetAllIssues)
		issue.GET("/:id", ic.GetIssue)
		issue.GET("/:id/history", ic.GetIssueHistory)
		issue.PATCH("/:id/status", requireAuth, ic.UpdateIssueStatus)
	}

	dashboard := api.Group("/dashboard")
	{
		dashboard.GET("/stats", ic.GetStatistics)
		dashboard.GET("/markers", ic.GetMarkers)
	}
}

// AdminRoutes sets up the admin dashboard routes
func AdminRoutes(api *gin.RouterGroup, ac *controllers.AdminController, requireAuth, adminOnly gin.HandlerFunc) {
	admin := api.Group("/admin", requireAuth, adminOnly)
	{
		admin.GET("/stats", ac.GetAdminStatistics)
		admin.GET("/issues", ac.GetAdminIssues)
		admin.GET("/export", ac.ExportIssues)
	}
}
