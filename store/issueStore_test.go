package store

import (
	"sync"
	"testing"
	"time"

	"citysense-be/models"
	"citysense-be/projections"
	"citysense-be/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	admin   = &session.User{ID: "admin-1", Name: "Admin User", Role: models.RoleAdmin}
	citizen = &session.User{ID: "user-1", Name: "John Doe", Role: models.RoleUser}
)

// stepClock returns a clock that moves forward one minute per call.
func stepClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	current := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := current
		current = current.Add(time.Minute)
		return t
	}
}

func newTestStore(t *testing.T) *IssueStore {
	t.Helper()
	return NewIssueStore(WithClock(stepClock(time.Date(2025, 9, 1, 9, 0, 0, 0, time.Local))))
}

func draft(title string, category models.IssueCategory) models.IssueDraft {
	return models.IssueDraft{
		Title:     title,
		Category:  category,
		Priority:  models.High,
		Latitude:  28.41,
		Longitude: 77.32,
		Address:   "Sector 15, Faridabad",
	}
}

func TestIssueStore_Create_NewestFirst(t *testing.T) {
	s := newTestStore(t)

	first, err := s.Create(draft("First", models.Infrastructure), models.Reporter{Name: "A"})
	require.NoError(t, err)
	second, err := s.Create(draft("Second", models.Safety), models.Reporter{Name: "B"})
	require.NoError(t, err)

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
	assert.Equal(t, 2, s.Len())
}

func TestIssueStore_Create_Defaults(t *testing.T) {
	s := newTestStore(t)

	issue, err := s.Create(models.IssueDraft{
		Title:    "  Overflowing bin  ",
		Category: models.Environment,
	}, models.Reporter{Name: "Jane", Contact: "jane@example.com"})
	require.NoError(t, err)

	assert.False(t, issue.ID.IsZero())
	assert.Equal(t, "Overflowing bin", issue.Title)
	assert.Equal(t, models.Submitted, issue.Status)
	assert.Equal(t, models.Medium, issue.Priority)
	assert.Equal(t, "No description provided", issue.Description)
	assert.Equal(t, "Address not available", issue.Location.Address)
	assert.Equal(t, "Environmental Services", issue.AssignedDepartment)
	assert.Equal(t, "Jane", issue.Reporter.Name)
	assert.Equal(t, issue.CreatedAt, issue.UpdatedAt)
}

func TestIssueStore_Create_DepartmentByCategory(t *testing.T) {
	cases := map[models.IssueCategory]string{
		models.Infrastructure: "Public Works",
		models.Environment:    "Environmental Services",
		models.Safety:         "Public Safety",
		models.Services:       "Parks & Recreation",
		models.Other:          "General Administration",
	}
	s := newTestStore(t)
	for category, department := range cases {
		issue, err := s.Create(draft("Issue", category), models.Reporter{})
		require.NoError(t, err)
		assert.Equal(t, department, issue.AssignedDepartment, string(category))
	}
}

func TestIssueStore_Create_Validation(t *testing.T) {
	tests := []struct {
		name  string
		draft models.IssueDraft
	}{
		{"missing title", models.IssueDraft{Category: models.Safety}},
		{"blank title", models.IssueDraft{Title: "   ", Category: models.Safety}},
		{"missing category", models.IssueDraft{Title: "Leak"}},
		{"unknown category", models.IssueDraft{Title: "Leak", Category: "plumbing"}},
		{"unknown priority", models.IssueDraft{Title: "Leak", Category: models.Safety, Priority: "urgent"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			_, err := s.Create(tt.draft, models.Reporter{})
			require.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, 0, s.Len())
		})
	}
}

func TestIssueStore_UpdateStatus_RequiresAdmin(t *testing.T) {
	s := newTestStore(t)
	issue, err := s.Create(draft("Pothole", models.Infrastructure), models.Reporter{})
	require.NoError(t, err)

	for _, actor := range []*session.User{nil, citizen} {
		_, err = s.UpdateStatus(issue.ID.Hex(), models.Resolved, actor)
		require.ErrorIs(t, err, ErrUnauthorized)
	}

	stored, err := s.FindByID(issue.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.Submitted, stored.Status)
	assert.Equal(t, issue.UpdatedAt, stored.UpdatedAt)

	history, err := s.History(issue.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestIssueStore_UpdateStatus_AdminAnyDirection(t *testing.T) {
	s := newTestStore(t)
	issue, err := s.Create(draft("Pothole", models.Infrastructure), models.Reporter{})
	require.NoError(t, err)

	resolved, err := s.UpdateStatus(issue.ID.Hex(), models.Resolved, admin)
	require.NoError(t, err)
	assert.Equal(t, models.Resolved, resolved.Status)
	assert.True(t, resolved.UpdatedAt.After(issue.UpdatedAt))

	back, err := s.UpdateStatus(issue.ID.Hex(), models.Submitted, admin)
	require.NoError(t, err)
	assert.Equal(t, models.Submitted, back.Status)
	assert.Equal(t, issue.CreatedAt, back.CreatedAt)

	history, err := s.History(issue.ID.Hex())
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, models.Submitted, history[0].From)
	assert.Equal(t, models.Resolved, history[0].To)
	assert.Equal(t, models.SourceAdmin, history[0].Source)
	assert.Equal(t, "admin-1", history[0].ChangedBy)
	assert.Equal(t, models.Resolved, history[1].From)
	assert.Equal(t, models.Submitted, history[1].To)
}

func TestIssueStore_UpdateStatus_Errors(t *testing.T) {
	s := newTestStore(t)
	issue, err := s.Create(draft("Pothole", models.Infrastructure), models.Reporter{})
	require.NoError(t, err)

	_, err = s.UpdateStatus("not-an-id", models.Resolved, admin)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.UpdateStatus("64b7f0c2a1b2c3d4e5f60718", models.Resolved, admin)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.UpdateStatus(issue.ID.Hex(), "closed", admin)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestIssueStore_Advance_OneStepClampedAtResolved(t *testing.T) {
	s := newTestStore(t)
	issue, err := s.Create(draft("Pothole", models.Infrastructure), models.Reporter{})
	require.NoError(t, err)

	want := []models.IssueStatus{models.Assigned, models.InProgress, models.Resolved}
	for _, status := range want {
		updated, advanced, err := s.Advance(issue.ID.Hex())
		require.NoError(t, err)
		assert.True(t, advanced)
		assert.Equal(t, status, updated.Status)
	}

	resolved, err := s.FindByID(issue.ID.Hex())
	require.NoError(t, err)

	again, advanced, err := s.Advance(issue.ID.Hex())
	require.NoError(t, err)
	assert.False(t, advanced)
	assert.Equal(t, models.Resolved, again.Status)
	assert.Equal(t, resolved.UpdatedAt, again.UpdatedAt)

	history, err := s.History(issue.ID.Hex())
	require.NoError(t, err)
	require.Len(t, history, 3)
	for _, change := range history {
		assert.Equal(t, models.SourceSimulator, change.Source)
	}
}

func TestIssueStore_Advance_UnknownStatusStays(t *testing.T) {
	s := newTestStore(t)
	s.Seed([]models.Issue{{Title: "Legacy", Category: models.Other, Status: "closed"}})
	legacy := s.List()[0]

	got, advanced, err := s.Advance(legacy.ID.Hex())
	require.NoError(t, err)
	assert.False(t, advanced)
	assert.Equal(t, models.IssueStatus("closed"), got.Status)

	history, err := s.History(legacy.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestIssueStore_FindByID_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.FindByID("")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.FindByID("64b7f0c2a1b2c3d4e5f60718")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.History("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIssueStore_Subscribe_NotifiedPerMutation(t *testing.T) {
	s := newTestStore(t)

	var snapshots [][]models.Issue
	s.Subscribe(func(snapshot []models.Issue) {
		snapshots = append(snapshots, snapshot)
	})

	issue, err := s.Create(draft("Pothole", models.Infrastructure), models.Reporter{})
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.Equal(t, models.Submitted, snapshots[0][0].Status)

	_, err = s.UpdateStatus(issue.ID.Hex(), models.InProgress, admin)
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
	assert.Equal(t, models.InProgress, snapshots[1][0].Status)

	// rejected and no-op calls do not notify
	_, err = s.UpdateStatus(issue.ID.Hex(), models.Resolved, citizen)
	require.Error(t, err)
	_, err = s.Create(models.IssueDraft{}, models.Reporter{})
	require.Error(t, err)
	_, err = s.UpdateStatus(issue.ID.Hex(), models.Resolved, admin)
	require.NoError(t, err)
	_, advanced, err := s.Advance(issue.ID.Hex())
	require.NoError(t, err)
	require.False(t, advanced)
	assert.Len(t, snapshots, 3)

	// earlier snapshots are not aliased to the store
	assert.Equal(t, models.Submitted, snapshots[0][0].Status)
}

func TestIssueStore_Seed(t *testing.T) {
	s := newTestStore(t)
	calls := 0
	s.Subscribe(func([]models.Issue) { calls++ })

	s.Seed(DemoIssues())
	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, "Broken streetlight on Main Street", list[0].Title)
	assert.Equal(t, models.InProgress, list[1].Status)
	assert.False(t, list[0].ID.IsZero())
	assert.Equal(t, 1, calls)

	created, err := s.Create(draft("New", models.Safety), models.Reporter{})
	require.NoError(t, err)
	assert.Equal(t, created.ID, s.List()[0].ID)

	// seeding the same issues again is a no-op for duplicates
	s.Seed(list)
	assert.Equal(t, 3, s.Len())
}

func TestIssueStore_ConcurrentMutations(t *testing.T) {
	s := NewIssueStore()
	var mu sync.Mutex
	lengths := []int{}
	s.Subscribe(func(snapshot []models.Issue) {
		mu.Lock()
		lengths = append(lengths, len(snapshot))
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Create(draft("Concurrent", models.Services), models.Reporter{})
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, s.Len())
	require.Len(t, lengths, 20)
	for i, n := range lengths {
		assert.Equal(t, i+1, n)
	}
}

func TestIssueStore_Scenario(t *testing.T) {
	s := newTestStore(t)
	dashboard := projections.NewDashboard(projections.NewMemoryLayer(), nil)
	s.Subscribe(dashboard.Refresh)

	issue, err := s.Create(models.IssueDraft{
		Title:     "Streetlight out",
		Category:  models.Infrastructure,
		Priority:  models.High,
		Latitude:  28.4089,
		Longitude: 77.3178,
	}, models.Reporter{Name: "John Doe", Contact: "user@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Public Works", issue.AssignedDepartment)

	_, err = s.UpdateStatus(issue.ID.Hex(), models.Resolved, citizen)
	require.ErrorIs(t, err, ErrUnauthorized)

	updated, err := s.UpdateStatus(issue.ID.Hex(), models.Resolved, admin)
	require.NoError(t, err)
	assert.Equal(t, models.Resolved, updated.Status)
	assert.Equal(t, "Public Works", updated.AssignedDepartment)
	assert.True(t, updated.UpdatedAt.After(issue.UpdatedAt))

	stats := dashboard.Stats()
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Resolved)
	assert.Len(t, dashboard.Markers(), 1)
}
