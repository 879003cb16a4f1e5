// Package store holds the in-memory issue and user collections.
package store

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"citysense-be/models"
	"citysense-be/session"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	defaultDescription = "No description provided"
	defaultAddress     = "Address not available"
)

// Listener receives the full snapshot after every successful mutation.
// Listeners run synchronously and must not mutate the store.
type Listener func(snapshot []models.Issue)

// IssueStore owns the ordered issue collection, newest first.
type IssueStore struct {
	// writeMu serializes mutations together with listener delivery so
	// listeners observe snapshots in mutation order.
	writeMu sync.Mutex
	mu      sync.RWMutex

	issues    []*models.Issue
	byID      map[primitive.ObjectID]*models.Issue
	history   map[primitive.ObjectID][]models.StatusChange
	listeners []Listener

	workflow Workflow
	now      func() time.Time
	logger   *zap.Logger
}

// Option configures an IssueStore.
type Option func(*IssueStore)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *IssueStore) { s.now = now }
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *IssueStore) { s.logger = logger }
}

func NewIssueStore(opts ...Option) *IssueStore {
	s := &IssueStore{
		byID:    make(map[primitive.ObjectID]*models.Issue),
		history: make(map[primitive.ObjectID][]models.StatusChange),
		now:     time.Now,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers fn to be called after each mutation.
func (s *IssueStore) Subscribe(fn Listener) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Seed loads existing issues, given newest first, behind any issues
// already in the store. Issues without an id get a fresh one.
func (s *IssueStore) Seed(issues []models.Issue) {
	s.mutate(func() bool {
		added := 0
		for i := range issues {
			issue := issues[i]
			if issue.ID.IsZero() {
				issue.ID = primitive.NewObjectID()
			}
			if _, exists := s.byID[issue.ID]; exists {
				continue
			}
			s.issues = append(s.issues, &issue)
			s.byID[issue.ID] = &issue
			added++
		}
		return added > 0
	})
}

// Create validates draft and inserts a new submitted issue at the head of
// the collection.
func (s *IssueStore) Create(draft models.IssueDraft, reporter models.Reporter) (models.Issue, error) {
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return models.Issue{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if draft.Category == "" {
		return models.Issue{}, fmt.Errorf("%w: category is required", ErrValidation)
	}
	if !draft.Category.Valid() {
		return models.Issue{}, fmt.Errorf("%w: unknown category %q", ErrValidation, draft.Category)
	}
	priority := draft.Priority
	if priority == "" {
		priority = models.Medium
	}
	if !priority.Valid() {
		return models.Issue{}, fmt.Errorf("%w: unknown priority %q", ErrValidation, draft.Priority)
	}
	description := strings.TrimSpace(draft.Description)
	if description == "" {
		description = defaultDescription
	}
	address := strings.TrimSpace(draft.Address)
	if address == "" {
		address = defaultAddress
	}

	var created models.Issue
	s.mutate(func() bool {
		now := s.now()
		issue := &models.Issue{
			ID:          primitive.NewObjectID(),
			Title:       title,
			Category:    draft.Category,
			Priority:    priority,
			Status:      models.Submitted,
			Description: description,
			Location: models.Location{
				Latitude:  draft.Latitude,
				Longitude: draft.Longitude,
				Address:   address,
			},
			Reporter:           reporter,
			AssignedDepartment: draft.Category.Department(),
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		s.issues = append([]*models.Issue{issue}, s.issues...)
		s.byID[issue.ID] = issue
		created = *issue
		return true
	})

	s.logger.Info("issue created",
		zap.String("issue_id", created.ID.Hex()),
		zap.String("category", string(created.Category)),
		zap.String("department", created.AssignedDepartment),
	)
	return created, nil
}

// List returns a copy of the whole collection, newest first.
func (s *IssueStore) List() []models.Issue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Len returns the number of issues in the store.
func (s *IssueStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.issues)
}

// FindByID looks an issue up by its hex id.
func (s *IssueStore) FindByID(id string) (models.Issue, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Issue{}, fmt.Errorf("issue %q: %w", id, ErrNotFound)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	issue, ok := s.byID[oid]
	if !ok {
		return models.Issue{}, fmt.Errorf("issue %q: %w", id, ErrNotFound)
	}
	return *issue, nil
}

// UpdateStatus sets the status of an issue on behalf of actor. Only admins
// may do this, and they may pick any status.
func (s *IssueStore) UpdateStatus(id string, target models.IssueStatus, actor *session.User) (models.Issue, error) {
	if err := s.workflow.AdminTransition(actor, target); err != nil {
		return models.Issue{}, err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Issue{}, fmt.Errorf("issue %q: %w", id, ErrNotFound)
	}

	var (
		updated models.Issue
		from    models.IssueStatus
		found   bool
	)
	s.mutate(func() bool {
		issue, ok := s.byID[oid]
		if !ok {
			return false
		}
		found = true
		from = issue.Status
		s.setStatusLocked(issue, target, models.SourceAdmin, actor.ID)
		updated = *issue
		return true
	})
	if !found {
		return models.Issue{}, fmt.Errorf("issue %q: %w", id, ErrNotFound)
	}

	s.logger.Info("issue status updated",
		zap.String("issue_id", id),
		zap.String("from", string(from)),
		zap.String("to", string(target)),
		zap.String("actor", actor.ID),
	)
	return updated, nil
}

// Advance moves an issue exactly one step forward. Resolved issues are
// returned unchanged with advanced set to false.
func (s *IssueStore) Advance(id string) (issue models.Issue, advanced bool, err error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Issue{}, false, fmt.Errorf("issue %q: %w", id, ErrNotFound)
	}

	found := false
	s.mutate(func() bool {
		current, ok := s.byID[oid]
		if !ok {
			return false
		}
		found = true
		next, ok := current.Status.Next()
		if ok {
			s.setStatusLocked(current, next, models.SourceSimulator, "simulator")
			advanced = true
		}
		issue = *current
		return advanced
	})
	if !found {
		return models.Issue{}, false, fmt.Errorf("issue %q: %w", id, ErrNotFound)
	}
	return issue, advanced, nil
}

// History returns the status changes recorded for an issue, oldest first.
func (s *IssueStore) History(id string) ([]models.StatusChange, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("issue %q: %w", id, ErrNotFound)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.byID[oid]; !ok {
		return nil, fmt.Errorf("issue %q: %w", id, ErrNotFound)
	}
	changes := s.history[oid]
	out := make([]models.StatusChange, len(changes))
	copy(out, changes)
	return out, nil
}

func (s *IssueStore) setStatusLocked(issue *models.Issue, to models.IssueStatus, source models.ChangeSource, by string) {
	now := s.now()
	s.history[issue.ID] = append(s.history[issue.ID], models.StatusChange{
		Issue:     issue.ID,
		From:      issue.Status,
		To:        to,
		Source:    source,
		ChangedBy: by,
		At:        now,
	})
	issue.Status = to
	issue.UpdatedAt = now
}

// mutate runs fn under the write lock and, when fn reports a change,
// hands the new snapshot to every listener.
func (s *IssueStore) mutate(fn func() bool) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	changed := fn()
	var snapshot []models.Issue
	if changed && len(s.listeners) > 0 {
		snapshot = s.snapshotLocked()
	}
	s.mu.Unlock()

	if !changed {
		return
	}
	for _, l := range s.listeners {
		l(snapshot)
	}
}

func (s *IssueStore) snapshotLocked() []models.Issue {
	out := make([]models.Issue, len(s.issues))
	for i, issue := range s.issues {
		out[i] = *issue
	}
	return out
}
