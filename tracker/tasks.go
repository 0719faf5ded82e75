package tracker

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/adarshh247/ListIT-doIT/models"
	"github.com/adarshh247/ListIT-doIT/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TaskStore owns the board's task list. Tasks live in one flat slice shared
// across sectors; a board column is a filtered view of it. Intra-sector
// order is session-local: reorders mutate the slice but are never persisted.
type TaskStore struct {
	mu    sync.Mutex
	tasks []*models.Task

	persister
}

func NewTaskStore(p store.Persistence, logger *zap.Logger) *TaskStore {
	return &TaskStore{persister: persister{p: p, log: logger}}
}

// TaskPatch carries a partial update; nil fields are left untouched.
type TaskPatch struct {
	Title     *string
	Sector    *string
	Priority  *models.Priority
	Completed *bool
}

// Load hydrates the list from the backend, ordered by creation time (the
// default board order; session reorders are not persisted).
func (s *TaskStore) Load(ctx context.Context) error {
	records, err := s.p.ListAll(ctx, store.KindTasks)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}

	tasks := make([]*models.Task, 0, len(records))
	for _, rec := range records {
		t := taskFromRecord(rec)
		tasks = append(tasks, &t)
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})

	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()

	s.log.Info("tasks_loaded", zap.Int("count", len(tasks)))
	return nil
}

// Add creates a task in the given sector and returns a detached copy of it.
// Empty titles are rejected.
func (s *TaskStore) Add(title string, priority models.Priority, sector string) *models.Task {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}
	if !models.ValidPriority(priority) {
		priority = models.PriorityMedium
	}

	t := &models.Task{
		ID:        uuid.NewString(),
		Title:     title,
		Sector:    sector,
		Priority:  priority,
		Completed: false,
		CreatedAt: time.Now().UTC(),
	}

	// Record and copy are built under the lock: once appended, a concurrent
	// Update or ToggleCompleted may mutate the live task.
	s.mu.Lock()
	s.tasks = append(s.tasks, t)
	rec := taskRecord(t)
	out := *t
	s.mu.Unlock()

	s.async("insert", store.KindTasks, func(ctx context.Context) error {
		return s.p.Insert(ctx, store.KindTasks, rec)
	})

	s.log.Info("task_added", zap.String("id", out.ID), zap.String("sector", sector))
	return &out
}

// Update merges the provided fields into the task. Unknown ids are a no-op.
func (s *TaskStore) Update(id string, patch TaskPatch) bool {
	fields := store.Fields{}

	s.mu.Lock()
	t := s.find(id)
	if t == nil {
		s.mu.Unlock()
		return false
	}
	if patch.Title != nil {
		if title := strings.TrimSpace(*patch.Title); title != "" {
			t.Title = title
			fields["title"] = title
		}
	}
	if patch.Sector != nil {
		t.Sector = *patch.Sector
		fields["sector"] = *patch.Sector
	}
	if patch.Priority != nil && models.ValidPriority(*patch.Priority) {
		t.Priority = *patch.Priority
		fields["priority"] = string(*patch.Priority)
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
		fields["completed"] = *patch.Completed
	}
	s.mu.Unlock()

	if len(fields) > 0 {
		s.async("update", store.KindTasks, func(ctx context.Context) error {
			return s.p.Update(ctx, store.KindTasks, id, fields)
		})
	}
	return true
}

// ToggleCompleted flips the completed flag.
func (s *TaskStore) ToggleCompleted(id string) bool {
	s.mu.Lock()
	t := s.find(id)
	if t == nil {
		s.mu.Unlock()
		return false
	}
	t.Completed = !t.Completed
	done := t.Completed
	s.mu.Unlock()

	s.async("update", store.KindTasks, func(ctx context.Context) error {
		return s.p.Update(ctx, store.KindTasks, id, store.Fields{"completed": done})
	})
	return true
}

// Delete removes a task and requests removal from the backend.
func (s *TaskStore) Delete(id string) bool {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	s.mu.Unlock()

	s.async("delete", store.KindTasks, func(ctx context.Context) error {
		return s.p.Delete(ctx, store.KindTasks, id)
	})

	s.log.Info("task_deleted", zap.String("id", id))
	return true
}

// Move handles a board drag. Within the same sector it is a pure local
// reorder: the task is spliced out and reinserted so that it lands at
// newIndex among its sector siblings, preserving the relative order of every
// other task; nothing is persisted. Across sectors only the sector field
// changes (persisted); the task keeps its list position.
func (s *TaskStore) Move(id, newSector string, newIndex int) bool {
	s.mu.Lock()
	t := s.find(id)
	if t == nil {
		s.mu.Unlock()
		return false
	}

	if t.Sector != newSector {
		t.Sector = newSector
		s.mu.Unlock()

		s.async("update", store.KindTasks, func(ctx context.Context) error {
			return s.p.Update(ctx, store.KindTasks, id, store.Fields{"sector": newSector})
		})
		return true
	}

	s.reorder(t, newIndex)
	s.mu.Unlock()
	return true
}

// reorder splices t to the position corresponding to newIndex among its
// sector's tasks. The lock must be held.
func (s *TaskStore) reorder(t *models.Task, newIndex int) {
	idx := s.indexOf(t.ID)
	rest := make([]*models.Task, 0, len(s.tasks)-1)
	rest = append(rest, s.tasks[:idx]...)
	rest = append(rest, s.tasks[idx+1:]...)

	// Flat insertion point: just before the sibling that currently sits at
	// ordinal newIndex; past the last sibling, the task goes to the end.
	insertAt := len(rest)
	siblings := 0
	for i, other := range rest {
		if other.Sector != t.Sector {
			continue
		}
		if siblings == newIndex {
			insertAt = i
			break
		}
		siblings++
	}

	s.tasks = make([]*models.Task, 0, len(rest)+1)
	s.tasks = append(s.tasks, rest[:insertAt]...)
	s.tasks = append(s.tasks, t)
	s.tasks = append(s.tasks, rest[insertAt:]...)
}

// RenameSector rewrites the sector field of every matching task in memory.
// The remote bulk update is issued by the sector store as part of the same
// logical rename.
func (s *TaskStore) RenameSector(oldName, newName string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, t := range s.tasks {
		if t.Sector == oldName {
			t.Sector = newName
			n++
		}
	}
	return n
}

// DeleteBySector drops every task in the sector from memory. The remote
// bulk delete is issued by the sector store.
func (s *TaskStore) DeleteBySector(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.tasks[:0]
	n := 0
	for _, t := range s.tasks {
		if t.Sector == name {
			n++
			continue
		}
		kept = append(kept, t)
	}
	s.tasks = kept
	return n
}

// List returns value copies of all tasks in board order.
func (s *TaskStore) List() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, *t)
	}
	return out
}

func (s *TaskStore) find(id string) *models.Task {
	if idx := s.indexOf(id); idx >= 0 {
		return s.tasks[idx]
	}
	return nil
}

func (s *TaskStore) indexOf(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
