package tracker

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/adarshh247/ListIT-doIT/models"
	"github.com/adarshh247/ListIT-doIT/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SectorStore owns the ordered list of task sectors. Sector names are the
// identity tasks reference (trimmed, case-sensitive), so rename and delete
// cascade into the task store before any persistence is issued.
type SectorStore struct {
	mu      sync.Mutex
	sectors []*models.Sector
	tasks   *TaskStore

	persister
}

func NewSectorStore(p store.Persistence, tasks *TaskStore, logger *zap.Logger) *SectorStore {
	return &SectorStore{
		tasks:     tasks,
		persister: persister{p: p, log: logger},
	}
}

// Load hydrates the sector list, ordered by stored position.
func (s *SectorStore) Load(ctx context.Context) error {
	records, err := s.p.ListAll(ctx, store.KindSectors)
	if err != nil {
		return fmt.Errorf("load sectors: %w", err)
	}

	sectors := make([]*models.Sector, 0, len(records))
	for _, rec := range records {
		sec := sectorFromRecord(rec)
		sectors = append(sectors, &sec)
	}
	sort.Slice(sectors, func(i, j int) bool {
		return sectors[i].Position < sectors[j].Position
	})

	s.mu.Lock()
	s.sectors = sectors
	s.mu.Unlock()

	s.log.Info("sectors_loaded", zap.Int("count", len(sectors)))
	return nil
}

// Add appends a sector and returns a detached copy of it. Empty (after
// trimming) and duplicate names are rejected with a nil return.
func (s *SectorStore) Add(name string) *models.Sector {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	s.mu.Lock()
	if s.find(name) != nil {
		s.mu.Unlock()
		return nil
	}
	sec := &models.Sector{
		ID:       uuid.NewString(),
		Name:     name,
		Position: len(s.sectors),
	}
	s.sectors = append(s.sectors, sec)
	// Record and copy are built under the lock: a concurrent Rename may
	// mutate the live sector as soon as it is listed.
	rec := sectorRecord(sec)
	out := *sec
	s.mu.Unlock()

	s.async("insert", store.KindSectors, func(ctx context.Context) error {
		return s.p.Insert(ctx, store.KindSectors, rec)
	})

	s.log.Info("sector_added", zap.String("name", name))
	return &out
}

// Rename changes a sector's name and rewrites every task referencing the
// old name. Both in-memory mutations complete before the two backend calls
// (sector update, task bulk update) are issued. Rejected when the new name
// trims empty, the old name is unknown, or the new name is taken by a
// different sector.
func (s *SectorStore) Rename(oldName, newName string) bool {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return false
	}

	s.mu.Lock()
	sec := s.find(oldName)
	if sec == nil {
		s.mu.Unlock()
		return false
	}
	if existing := s.find(newName); existing != nil && existing != sec {
		s.mu.Unlock()
		return false
	}
	sec.Name = newName
	id := sec.ID
	s.mu.Unlock()

	renamed := s.tasks.RenameSector(oldName, newName)

	s.async("update", store.KindSectors, func(ctx context.Context) error {
		return s.p.Update(ctx, store.KindSectors, id, store.Fields{"name": newName})
	})
	s.async("bulk_update", store.KindTasks, func(ctx context.Context) error {
		return s.p.BulkUpdate(ctx, store.KindTasks, "sector", oldName, store.Fields{"sector": newName})
	})

	s.log.Info("sector_renamed",
		zap.String("from", oldName),
		zap.String("to", newName),
		zap.Int("tasks_rewritten", renamed),
	)
	return true
}

// Delete removes a sector and cascade-deletes its tasks (no reassignment).
func (s *SectorStore) Delete(name string) bool {
	s.mu.Lock()
	idx := -1
	for i, sec := range s.sectors {
		if sec.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	id := s.sectors[idx].ID
	s.sectors = append(s.sectors[:idx], s.sectors[idx+1:]...)
	s.mu.Unlock()

	removed := s.tasks.DeleteBySector(name)

	s.async("delete", store.KindSectors, func(ctx context.Context) error {
		return s.p.Delete(ctx, store.KindSectors, id)
	})
	s.async("bulk_delete", store.KindTasks, func(ctx context.Context) error {
		return s.p.BulkDelete(ctx, store.KindTasks, "sector", name)
	})

	s.log.Info("sector_deleted",
		zap.String("name", name),
		zap.Int("tasks_removed", removed),
	)
	return true
}

// Has reports whether a sector with the exact (case-sensitive) name exists.
func (s *SectorStore) Has(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.find(name) != nil
}

// List returns value copies of the sectors in board order.
func (s *SectorStore) List() []models.Sector {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Sector, 0, len(s.sectors))
	for _, sec := range s.sectors {
		out = append(out, *sec)
	}
	return out
}

// find returns the sector with the exact (case-sensitive) name.
// The lock must be held.
func (s *SectorStore) find(name string) *models.Sector {
	for _, sec := range s.sectors {
		if sec.Name == name {
			return sec
		}
	}
	return nil
}
