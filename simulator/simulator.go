// Package simulator drives the demo's background activity: new reports
// arriving and open issues moving through the workflow on their own.
package simulator

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"citysense-be/models"

	"go.uber.org/zap"
)

// Store is the part of the issue store the simulator mutates.
type Store interface {
	Create(draft models.IssueDraft, reporter models.Reporter) (models.Issue, error)
	List() []models.Issue
	Advance(id string) (models.Issue, bool, error)
}

// Config holds the per-tick probabilities.
type Config struct {
	NewIssueChance float64
	AdvanceChance  float64
}

// DefaultConfig matches the demo's refresh behavior.
func DefaultConfig() Config {
	return Config{NewIssueChance: 0.3, AdvanceChance: 0.15}
}

var (
	cityCenter = models.Location{Latitude: 28.4089, Longitude: 77.3178}

	monitor = models.Reporter{Name: "System Monitor", Contact: "monitor@citysense.com"}

	titles = []string{
		"Traffic signal malfunction detected",
		"Water pipeline burst reported",
		"Illegal waste dumping observed",
		"Street lighting failure",
		"Road surface damage",
	}

	categories = []models.IssueCategory{
		models.Infrastructure,
		models.Safety,
		models.Environment,
		models.Services,
	}

	priorities = []models.IssuePriority{models.Low, models.Medium, models.High}
)

// TickResult summarizes what one tick changed.
type TickResult struct {
	Created  *models.Issue
	Advanced []models.Issue
}

// Changed reports whether the tick mutated the store.
func (r TickResult) Changed() bool {
	return r.Created != nil || len(r.Advanced) > 0
}

// Simulator applies random activity to a Store.
type Simulator struct {
	store  Store
	cfg    Config
	logger *zap.Logger

	rngMu sync.Mutex
	rng   *rand.Rand

	running atomic.Bool
}

// New builds a simulator. rng supplies all randomness; pass a seeded
// source for reproducible runs.
func New(store Store, cfg Config, rng *rand.Rand, logger *zap.Logger) *Simulator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Simulator{store: store, cfg: cfg, rng: rng, logger: logger}
}

// Tick runs one simulation step. Each open issue gets its own chance to
// advance one status; resolved issues are never touched.
func (s *Simulator) Tick(ctx context.Context) (TickResult, error) {
	var result TickResult
	if err := ctx.Err(); err != nil {
		return result, err
	}

	if s.chance(s.cfg.NewIssueChance) {
		issue, err := s.store.Create(s.randomDraft(), monitor)
		if err != nil {
			return result, fmt.Errorf("create simulated issue: %w", err)
		}
		result.Created = &issue
	}

	for _, issue := range s.store.List() {
		if issue.Status == models.Resolved {
			continue
		}
		if !s.chance(s.cfg.AdvanceChance) {
			continue
		}
		updated, advanced, err := s.store.Advance(issue.ID.Hex())
		if err != nil {
			return result, fmt.Errorf("advance issue %s: %w", issue.ID.Hex(), err)
		}
		if advanced {
			result.Advanced = append(result.Advanced, updated)
		}
	}
	return result, nil
}

// Run ticks every interval until ctx is done. A tick that is still in
// flight when the next one is due causes that next tick to be skipped.
// Errors and panics are logged and never stop the loop.
func (s *Simulator) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("simulator started", zap.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("simulator stopped")
			return
		case <-ticker.C:
			go s.TryTick(ctx)
		}
	}
}

// TryTick runs a tick unless one is already running. It reports whether
// a tick ran.
func (s *Simulator) TryTick(ctx context.Context) (ran bool) {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warn("simulator tick skipped, previous tick still running")
		return false
	}
	ran = true
	defer s.running.Store(false)
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("simulator tick panicked", zap.Any("panic", r))
		}
	}()

	result, err := s.Tick(ctx)
	if err != nil {
		s.logger.Error("simulator tick failed", zap.Error(err))
		return true
	}
	if result.Changed() {
		fields := []zap.Field{zap.Int("advanced", len(result.Advanced))}
		if result.Created != nil {
			fields = append(fields, zap.String("created", result.Created.ID.Hex()))
		}
		s.logger.Info("simulator tick applied", fields...)
	}
	return true
}

func (s *Simulator) randomDraft() models.IssueDraft {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return models.IssueDraft{
		Title:       titles[s.rng.Intn(len(titles))],
		Category:    categories[s.rng.Intn(len(categories))],
		Priority:    priorities[s.rng.Intn(len(priorities))],
		Description: "Auto-generated issue for demonstration",
		Latitude:    cityCenter.Latitude + (s.rng.Float64()-0.5)*0.02,
		Longitude:   cityCenter.Longitude + (s.rng.Float64()-0.5)*0.02,
		Address:     fmt.Sprintf("Sector %d, Faridabad", s.rng.Intn(20)+1),
	}
}

func (s *Simulator) chance(p float64) bool {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Float64() < p
}
