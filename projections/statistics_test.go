package projections

import (
	"testing"
	"time"

	"citysense-be/models"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2025, 9, 1, 15, 0, 0, 0, time.Local)

func issue(status models.IssueStatus, priority models.IssuePriority, created, updated time.Time) models.Issue {
	return models.Issue{
		Title:     "Issue",
		Category:  models.Infrastructure,
		Status:    status,
		Priority:  priority,
		CreatedAt: created,
		UpdatedAt: updated,
	}
}

func TestComputeStatistics_Empty(t *testing.T) {
	assert.Equal(t, Statistics{}, ComputeStatistics(nil, now))
}

func TestComputeStatistics_NoneResolved(t *testing.T) {
	snapshot := []models.Issue{
		issue(models.Submitted, models.High, now.Add(-time.Hour), now),
		issue(models.InProgress, models.Low, now.Add(-72*time.Hour), now),
	}

	stats := ComputeStatistics(snapshot, now)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 0, stats.Resolved)
	assert.Equal(t, 1, stats.InProgress)
	assert.Equal(t, 1, stats.HighPriority)
	assert.Equal(t, 1, stats.Today)
	assert.Equal(t, 0, stats.AverageResolutionDays)
}

func TestComputeStatistics_AverageResolution(t *testing.T) {
	created := now.Add(-96 * time.Hour)

	t.Run("two days", func(t *testing.T) {
		snapshot := []models.Issue{
			issue(models.Resolved, models.Medium, created, created.Add(2*24*time.Hour)),
		}
		assert.Equal(t, 2, ComputeStatistics(snapshot, now).AverageResolutionDays)
	})

	t.Run("same day counts as one", func(t *testing.T) {
		snapshot := []models.Issue{
			issue(models.Resolved, models.Medium, created, created.Add(3*time.Hour)),
		}
		assert.Equal(t, 1, ComputeStatistics(snapshot, now).AverageResolutionDays)
	})

	t.Run("partial days floor then average rounds", func(t *testing.T) {
		snapshot := []models.Issue{
			// 1.9 days floors to 1
			issue(models.Resolved, models.Medium, created, created.Add(45*time.Hour+36*time.Minute)),
			// 2 days
			issue(models.Resolved, models.Medium, created, created.Add(48*time.Hour)),
		}
		// (1 + 2) / 2 = 1.5 rounds to 2
		assert.Equal(t, 2, ComputeStatistics(snapshot, now).AverageResolutionDays)
	})
}

func TestComputeStatistics_TodayUsesCalendarDay(t *testing.T) {
	midnight := time.Date(2025, 9, 1, 0, 0, 0, 0, time.Local)
	snapshot := []models.Issue{
		issue(models.Submitted, models.Low, midnight, midnight),
		issue(models.Submitted, models.Low, midnight.Add(-time.Second), midnight),
	}
	assert.Equal(t, 1, ComputeStatistics(snapshot, now).Today)
}

func TestComputeAdminStatistics(t *testing.T) {
	snapshot := []models.Issue{
		issue(models.Submitted, models.High, now, now),
		issue(models.Assigned, models.Low, now.Add(-48*time.Hour), now),
		issue(models.InProgress, models.High, now.Add(-48*time.Hour), now),
		issue(models.Resolved, models.Medium, now.Add(-48*time.Hour), now),
	}

	stats := ComputeAdminStatistics(snapshot, now)
	assert.Equal(t, AdminStatistics{Total: 4, Pending: 2, Today: 1, HighPriority: 2}, stats)
}
