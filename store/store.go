// Package store defines the document-style persistence contract shared by
// the remote (postgres) and local (diskv) backends, plus an in-memory
// implementation for tests. The backend is chosen once at startup; the
// tracker stores depend only on the Persistence interface.
package store

import "context"

// Kind names a record collection.
type Kind string

const (
	KindDailyHabits   Kind = "daily_habits"
	KindMonthlyHabits Kind = "monthly_habits"
	KindTasks         Kind = "tasks"
	KindSectors       Kind = "sectors"
	KindUsers         Kind = "users"
)

// Record is a full persisted document. Every record carries an "id" field.
type Record map[string]any

// Fields is a partial patch merged into an existing record.
type Fields map[string]any

// ID returns the record's id field, or "" when absent.
func (r Record) ID() string {
	id, _ := r["id"].(string)
	return id
}

// Persistence is the storage contract. Implementations must treat records as
// opaque documents: the tracker stores own field naming and encoding.
type Persistence interface {
	Insert(ctx context.Context, kind Kind, rec Record) error
	Update(ctx context.Context, kind Kind, id string, fields Fields) error
	Delete(ctx context.Context, kind Kind, id string) error
	BulkUpdate(ctx context.Context, kind Kind, matchField, matchValue string, fields Fields) error
	BulkDelete(ctx context.Context, kind Kind, matchField, matchValue string) error
	ListAll(ctx context.Context, kind Kind) ([]Record, error)
}
