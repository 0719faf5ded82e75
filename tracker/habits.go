package tracker

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/adarshh247/ListIT-doIT/models"
	"github.com/adarshh247/ListIT-doIT/period"
	"github.com/adarshh247/ListIT-doIT/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HabitStore owns the two habit collections (daily and monthly cadence).
// All mutations are optimistic: in-memory state changes synchronously under
// the lock, the backend write runs in the background.
type HabitStore struct {
	mu      sync.Mutex
	daily   []*models.Habit
	monthly []*models.Habit

	persister
}

func NewHabitStore(p store.Persistence, logger *zap.Logger) *HabitStore {
	return &HabitStore{persister: persister{p: p, log: logger}}
}

func kindFor(c period.Cadence) store.Kind {
	if c == period.Monthly {
		return store.KindMonthlyHabits
	}
	return store.KindDailyHabits
}

func (s *HabitStore) list(c period.Cadence) *[]*models.Habit {
	if c == period.Monthly {
		return &s.monthly
	}
	return &s.daily
}

// Load hydrates both collections from the backend. Called once at startup.
func (s *HabitStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, cadence := range []period.Cadence{period.Daily, period.Monthly} {
		records, err := s.p.ListAll(ctx, kindFor(cadence))
		if err != nil {
			return fmt.Errorf("load %s habits: %w", cadence, err)
		}

		habits := make([]*models.Habit, 0, len(records))
		for _, rec := range records {
			h := habitFromRecord(rec, cadence)
			habits = append(habits, &h)
		}
		*s.list(cadence) = habits
	}

	s.log.Info("habits_loaded",
		zap.Int("daily", len(s.daily)),
		zap.Int("monthly", len(s.monthly)),
	)
	return nil
}

// Add creates a habit with an empty completion map and returns a detached
// copy of it. A whitespace-only title is rejected and nil returned.
func (s *HabitStore) Add(title string, cadence period.Cadence) *models.Habit {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}

	h := &models.Habit{
		ID:          uuid.NewString(),
		Title:       title,
		Cadence:     cadence,
		Completions: map[string]bool{},
	}

	// The record and the returned copy are built under the lock: once the
	// habit is in the list a concurrent Toggle may mutate it, so nothing
	// live escapes. The record carries the locally generated id so local
	// and remote never diverge.
	s.mu.Lock()
	list := s.list(cadence)
	*list = append(*list, h)
	rec := habitRecord(h)
	out := *h
	out.Completions = h.CopyCompletions()
	s.mu.Unlock()

	kind := kindFor(cadence)
	s.async("insert", kind, func(ctx context.Context) error {
		return s.p.Insert(ctx, kind, rec)
	})

	s.log.Info("habit_added",
		zap.String("id", out.ID),
		zap.String("cadence", string(cadence)),
	)
	return &out
}

// Toggle flips completion for the period containing t. Unknown ids are a
// no-op. The whole completion map is sent to the backend, not a delta, so a
// racing earlier write is simply overwritten.
func (s *HabitStore) Toggle(id string, t time.Time, cadence period.Cadence) bool {
	s.mu.Lock()
	h := findHabit(*s.list(cadence), id)
	if h == nil {
		s.mu.Unlock()
		return false
	}
	h.Toggle(t)
	snapshot := h.CopyCompletions()
	s.mu.Unlock()

	kind := kindFor(cadence)
	s.async("update", kind, func(ctx context.Context) error {
		return s.p.Update(ctx, kind, id, store.Fields{"completions": snapshot})
	})
	return true
}

// Delete removes a habit and requests removal from the backend.
func (s *HabitStore) Delete(id string, cadence period.Cadence) bool {
	s.mu.Lock()
	list := s.list(cadence)
	idx := -1
	for i, h := range *list {
		if h.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	*list = append((*list)[:idx], (*list)[idx+1:]...)
	s.mu.Unlock()

	kind := kindFor(cadence)
	s.async("delete", kind, func(ctx context.Context) error {
		return s.p.Delete(ctx, kind, id)
	})

	s.log.Info("habit_deleted", zap.String("id", id))
	return true
}

// List returns value copies of the collection for the given cadence.
func (s *HabitStore) List(cadence period.Cadence) []models.Habit {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := *s.list(cadence)
	out := make([]models.Habit, 0, len(list))
	for _, h := range list {
		c := *h
		c.Completions = h.CopyCompletions()
		out = append(out, c)
	}
	return out
}

// Get returns a value copy of one habit.
func (s *HabitStore) Get(id string, cadence period.Cadence) (models.Habit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := findHabit(*s.list(cadence), id)
	if h == nil {
		return models.Habit{}, false
	}
	c := *h
	c.Completions = h.CopyCompletions()
	return c, true
}

func findHabit(list []*models.Habit, id string) *models.Habit {
	for _, h := range list {
		if h.ID == id {
			return h
		}
	}
	return nil
}
