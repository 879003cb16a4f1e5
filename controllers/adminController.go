package controllers

import (
	"net/http"

	"citysense-be/projections"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const exportBaseName = "city_sense_issues_export"

// AdminController serves the admin dashboard. All routes sit behind
// AdminOnly.
type AdminController struct {
	dashboard *projections.Dashboard
	logger    *zap.Logger
}

func NewAdminController(dashboard *projections.Dashboard, logger *zap.Logger) *AdminController {
	return &AdminController{dashboard: dashboard, logger: logger}
}

// GetAdminStatistics returns total, pending, today and high-priority counts.
func (ac *AdminController) GetAdminStatistics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": ac.dashboard.AdminStats()})
}

// GetAdminIssues lists issues for triage.
func (ac *AdminController) GetAdminIssues(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "issues": ac.dashboard.Issues(filter)})
}

// ExportIssues downloads every issue as CSV (default) or XLSX.
func (ac *AdminController) ExportIssues(c *gin.Context) {
	snapshot := ac.dashboard.Snapshot()

	var (
		data        []byte
		err         error
		contentType string
		filename    string
	)
	switch format := c.DefaultQuery("format", "csv"); format {
	case "csv":
		data, err = projections.ExportCSV(snapshot)
		contentType = "text/csv"
		filename = exportBaseName + ".csv"
	case "xlsx":
		data, err = projections.ExportXLSX(snapshot)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		filename = exportBaseName + ".xlsx"
	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Unsupported export format"})
		return
	}
	if err != nil {
		ac.logger.Error("export failed", zap.Error(err))
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}
