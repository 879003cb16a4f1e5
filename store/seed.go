package store

import (
	"fmt"
	"time"

	"citysense-be/models"
)

// DemoIssues returns the issues a fresh session starts with, newest first.
func DemoIssues() []models.Issue {
	return []models.Issue{
		{
			Title:       "Broken streetlight on Main Street",
			Category:    models.Infrastructure,
			Priority:    models.High,
			Status:      models.Submitted,
			Description: "Streetlight pole #45 has been non-functional for 3 days",
			Location: models.Location{
				Latitude:  28.4089,
				Longitude: 77.3178,
				Address:   "Main Street, Faridabad",
			},
			Reporter:           models.Reporter{Name: "John Doe", Contact: "john@example.com"},
			AssignedDepartment: models.Infrastructure.Department(),
			CreatedAt:          time.Date(2025, 8, 30, 10, 30, 0, 0, time.Local),
			UpdatedAt:          time.Date(2025, 8, 30, 10, 30, 0, 0, time.Local),
		},
		{
			Title:       "Pothole causing traffic issues",
			Category:    models.Infrastructure,
			Priority:    models.Medium,
			Status:      models.InProgress,
			Description: "Large pothole near intersection causing vehicle damage",
			Location: models.Location{
				Latitude:  28.4094,
				Longitude: 77.3185,
				Address:   "Sector 15, Faridabad",
			},
			Reporter:           models.Reporter{Name: "Jane Smith", Contact: "jane@example.com"},
			AssignedDepartment: models.Infrastructure.Department(),
			CreatedAt:          time.Date(2025, 8, 29, 14, 15, 0, 0, time.Local),
			UpdatedAt:          time.Date(2025, 8, 31, 9, 0, 0, 0, time.Local),
		},
	}
}

// SeedDemoUsers adds the demo admin and citizen accounts.
func SeedDemoUsers(users *UserStore) error {
	demo := []struct {
		name, email, password string
		role                  models.Role
	}{
		{"Admin User", "admin@citysense.com", "admin123", models.RoleAdmin},
		{"John Doe", "user@example.com", "user123", models.RoleUser},
	}
	for _, d := range demo {
		if _, err := users.AddUser(d.name, d.email, d.password, d.role); err != nil {
			return fmt.Errorf("seed %s: %w", d.email, err)
		}
	}
	return nil
}
