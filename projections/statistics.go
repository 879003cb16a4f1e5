// Package projections derives read-side views from an issue snapshot:
// statistics, filtered lists, map markers and exports. Everything here is
// recomputed from scratch on each call.
package projections

import (
	"math"
	"time"

	"citysense-be/models"
)

const day = 24 * time.Hour

// Statistics are the citizen-facing dashboard counters.
type Statistics struct {
	Total                 int `json:"total"`
	Resolved              int `json:"resolved"`
	InProgress            int `json:"inProgress"`
	HighPriority          int `json:"highPriority"`
	Today                 int `json:"today"`
	AverageResolutionDays int `json:"averageResolutionDays"`
}

// AdminStatistics are the counters shown on the admin dashboard.
type AdminStatistics struct {
	Total        int `json:"total"`
	Pending      int `json:"pending"`
	Today        int `json:"today"`
	HighPriority int `json:"highPriority"`
}

// ComputeStatistics counts snapshot as of now. "Today" compares local
// calendar days.
func ComputeStatistics(snapshot []models.Issue, now time.Time) Statistics {
	var stats Statistics
	today := localDay(now)
	resolvedDays := 0

	for _, issue := range snapshot {
		stats.Total++
		switch issue.Status {
		case models.Resolved:
			stats.Resolved++
			resolvedDays += resolutionDays(issue)
		case models.InProgress:
			stats.InProgress++
		}
		if issue.Priority == models.High {
			stats.HighPriority++
		}
		if localDay(issue.CreatedAt) == today {
			stats.Today++
		}
	}

	if stats.Resolved > 0 {
		stats.AverageResolutionDays = int(math.Round(float64(resolvedDays) / float64(stats.Resolved)))
	}
	return stats
}

// ComputeAdminStatistics counts snapshot for the admin dashboard. Pending
// covers submitted and assigned issues.
func ComputeAdminStatistics(snapshot []models.Issue, now time.Time) AdminStatistics {
	stats := ComputeStatistics(snapshot, now)
	admin := AdminStatistics{
		Total:        stats.Total,
		Today:        stats.Today,
		HighPriority: stats.HighPriority,
	}
	for _, issue := range snapshot {
		if issue.Status == models.Submitted || issue.Status == models.Assigned {
			admin.Pending++
		}
	}
	return admin
}

// resolutionDays is the whole number of days from creation to last
// update, never less than one.
func resolutionDays(issue models.Issue) int {
	days := int(math.Floor(float64(issue.UpdatedAt.Sub(issue.CreatedAt)) / float64(day)))
	if days < 1 {
		return 1
	}
	return days
}

func localDay(t time.Time) string {
	return t.Local().Format("2006-01-02")
}
