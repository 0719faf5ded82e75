package tracker

import (
	"time"

	"github.com/adarshh247/ListIT-doIT/models"
	"github.com/adarshh247/ListIT-doIT/period"
	"github.com/adarshh247/ListIT-doIT/store"
)

// Record codecs. The remote schema names the task's bucket column "sector";
// that translation lives here and is never exposed to callers.

func habitRecord(h *models.Habit) store.Record {
	return store.Record{
		"id":          h.ID,
		"title":       h.Title,
		"cadence":     string(h.Cadence),
		"completions": h.CopyCompletions(),
	}
}

func habitFromRecord(rec store.Record, cadence period.Cadence) models.Habit {
	h := models.Habit{
		ID:          rec.ID(),
		Cadence:     cadence,
		Completions: map[string]bool{},
	}
	h.Title, _ = rec["title"].(string)

	// JSON decoding yields map[string]any; values are booleans.
	if raw, ok := rec["completions"].(map[string]any); ok {
		for k, v := range raw {
			if done, ok := v.(bool); ok && done {
				h.Completions[k] = true
			}
		}
	} else if typed, ok := rec["completions"].(map[string]bool); ok {
		for k, v := range typed {
			if v {
				h.Completions[k] = true
			}
		}
	}
	return h
}

func taskRecord(t *models.Task) store.Record {
	return store.Record{
		"id":         t.ID,
		"title":      t.Title,
		"sector":     t.Sector,
		"priority":   string(t.Priority),
		"completed":  t.Completed,
		"created_at": t.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func taskFromRecord(rec store.Record) models.Task {
	t := models.Task{ID: rec.ID()}
	t.Title, _ = rec["title"].(string)
	t.Sector, _ = rec["sector"].(string)
	if p, ok := rec["priority"].(string); ok {
		t.Priority = models.Priority(p)
	}
	t.Completed, _ = rec["completed"].(bool)
	if raw, ok := rec["created_at"].(string); ok {
		if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			t.CreatedAt = ts
		}
	}
	return t
}

func sectorRecord(s *models.Sector) store.Record {
	return store.Record{
		"id":       s.ID,
		"name":     s.Name,
		"position": s.Position,
	}
}

func sectorFromRecord(rec store.Record) models.Sector {
	s := models.Sector{ID: rec.ID()}
	s.Name, _ = rec["name"].(string)
	switch v := rec["position"].(type) {
	case float64: // JSON number
		s.Position = int(v)
	case int:
		s.Position = v
	}
	return s
}
