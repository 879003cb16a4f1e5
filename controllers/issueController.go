package controllers

import (
	"net/http"

	"citysense-be/middlewares"
	"citysense-be/models"
	"citysense-be/projections"
	"citysense-be/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IssueController serves the citizen-facing issue endpoints.
type IssueController struct {
	issues    *store.IssueStore
	users     *store.UserStore
	dashboard *projections.Dashboard
	logger    *zap.Logger
}

func NewIssueController(issues *store.IssueStore, users *store.UserStore, dashboard *projections.Dashboard, logger *zap.Logger) *IssueController {
	return &IssueController{issues: issues, users: users, dashboard: dashboard, logger: logger}
}

// CreateIssue handles the creation of a new issue
func (ic *IssueController) CreateIssue(c *gin.Context) {
	if !middlewares.CurrentSession(c).LoggedIn() {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User not authenticated"})
		return
	}

	var input struct {
		Title       string   `json:"title" binding:"max=200"`
		Category    string   `json:"category"`
		Priority    string   `json:"priority"`
		Description string   `json:"description" binding:"max=1000"`
		Latitude    *float64 `json:"latitude" binding:"required,min=-90,max=90"`
		Longitude   *float64 `json:"longitude" binding:"required,min=-180,max=180"`
		Address     string   `json:"address_formatted" binding:"max=200"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	current := middlewares.CurrentUser(c)
	issue, err := ic.issues.Create(models.IssueDraft{
		Title:       input.Title,
		Category:    models.IssueCategory(input.Category),
		Priority:    models.IssuePriority(input.Priority),
		Description: input.Description,
		Latitude:    *input.Latitude,
		Longitude:   *input.Longitude,
		Address:     input.Address,
	}, ic.reporterFor(current.ID, current.Name))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "issue": issue})
}

// GetAllIssues lists issues, optionally narrowed by status and category.
func (ic *IssueController) GetAllIssues(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"issues":  ic.dashboard.Issues(filter),
	})
}

// GetIssue retrieves an issue by its ID
func (ic *IssueController) GetIssue(c *gin.Context) {
	issue, err := ic.issues.FindByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "issue": issue})
}

// GetIssueHistory returns the status changes of an issue, oldest first.
func (ic *IssueController) GetIssueHistory(c *gin.Context) {
	history, err := ic.issues.History(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "history": history})
}

// UpdateIssueStatus lets an admin set the status of an issue.
func (ic *IssueController) UpdateIssueStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	issue, err := ic.issues.UpdateStatus(c.Param("id"), models.IssueStatus(input.Status), middlewares.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "issue": issue})
}

// GetStatistics returns the dashboard counters.
func (ic *IssueController) GetStatistics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": ic.dashboard.Stats()})
}

// GetMarkers returns the overview map markers.
func (ic *IssueController) GetMarkers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "markers": ic.dashboard.Markers()})
}

func (ic *IssueController) reporterFor(userID, name string) models.Reporter {
	user, err := ic.users.FindByID(userID)
	if err != nil {
		ic.logger.Warn("reporter not in user store, using token name", zap.String("user_id", userID))
		return models.Reporter{Name: name}
	}
	return user.Reporter()
}

// bindFilter reads status and category query parameters. "all" and empty
// values do not constrain.
func bindFilter(c *gin.Context) (projections.Filter, bool) {
	var filter projections.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		badRequest(c, err)
		return filter, false
	}
	if filter.Status == "all" {
		filter.Status = ""
	}
	if filter.Category == "all" {
		filter.Category = ""
	}
	if filter.Status != "" && !filter.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid status"})
		return filter, false
	}
	if filter.Category != "" && !filter.Category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid category"})
		return filter, false
	}
	return filter, true
}
