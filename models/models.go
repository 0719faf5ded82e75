package models

import (
	"time"

	"github.com/adarshh247/ListIT-doIT/period"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ValidPriority reports whether p is one of the three known levels.
func ValidPriority(p Priority) bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// Habit is a tracked practice. Completions maps period keys (see package
// period) to true; a missing key means not completed, false is never stored.
type Habit struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Cadence     period.Cadence  `json:"cadence"`
	Completions map[string]bool `json:"completions"`
}

// Toggle flips completion state for the period containing t. Present keys
// are removed, absent keys inserted; calling twice restores the original map.
func (h *Habit) Toggle(t time.Time) {
	key := period.Key(t, h.Cadence)
	if h.Completions == nil {
		h.Completions = map[string]bool{key: true}
		return
	}
	if h.Completions[key] {
		delete(h.Completions, key)
	} else {
		h.Completions[key] = true
	}
}

// IsComplete reports whether the given period key is marked complete.
func (h *Habit) IsComplete(key string) bool {
	return h.Completions[key]
}

// CopyCompletions returns an independent copy of the completion map, used
// when a snapshot must outlive the store lock (persistence writes, reads).
func (h *Habit) CopyCompletions() map[string]bool {
	out := make(map[string]bool, len(h.Completions))
	for k, v := range h.Completions {
		out[k] = v
	}
	return out
}

// Task is a board item. Sector references a live Sector by name; the sector
// store rewrites it on rename and removes the task on sector delete, so it
// is never left dangling.
type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Sector    string    `json:"sector"`
	Priority  Priority  `json:"priority"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

// Sector is a named task bucket. Name is the identity used by tasks
// (trimmed, case-sensitive); ID only identifies the persisted record.
type Sector struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// User is the authenticated identity. Single-user focus: the first
// registered user typically owns everything.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
