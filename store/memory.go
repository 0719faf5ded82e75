package store

import (
	"context"
	"sync"
)

// Memory is a map-backed Persistence used by tests and as a throwaway
// backend when neither postgres nor a data directory is usable.
type Memory struct {
	mu    sync.RWMutex
	kinds map[Kind]map[string]Record
}

func NewMemory() *Memory {
	return &Memory{kinds: make(map[Kind]map[string]Record)}
}

func cloneRecord(rec Record) Record {
	out := make(Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}

func (m *Memory) collection(kind Kind) map[string]Record {
	if m.kinds[kind] == nil {
		m.kinds[kind] = make(map[string]Record)
	}
	return m.kinds[kind]
}

func (m *Memory) Insert(_ context.Context, kind Kind, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collection(kind)[rec.ID()] = cloneRecord(rec)
	return nil
}

func (m *Memory) Update(_ context.Context, kind Kind, id string, fields Fields) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.collection(kind)[id]
	if !ok {
		return nil
	}
	for k, v := range fields {
		rec[k] = v
	}
	return nil
}

func (m *Memory) Delete(_ context.Context, kind Kind, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.collection(kind), id)
	return nil
}

func (m *Memory) BulkUpdate(_ context.Context, kind Kind, matchField, matchValue string, fields Fields) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, rec := range m.collection(kind) {
		if v, ok := rec[matchField].(string); ok && v == matchValue {
			for k, val := range fields {
				rec[k] = val
			}
		}
	}
	return nil
}

func (m *Memory) BulkDelete(_ context.Context, kind Kind, matchField, matchValue string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	col := m.collection(kind)
	for id, rec := range col {
		if v, ok := rec[matchField].(string); ok && v == matchValue {
			delete(col, id)
		}
	}
	return nil
}

func (m *Memory) ListAll(_ context.Context, kind Kind) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	col := m.kinds[kind]
	records := make([]Record, 0, len(col))
	for _, rec := range col {
		records = append(records, cloneRecord(rec))
	}
	return records, nil
}

// Get returns the stored record for (kind, id), for test assertions.
func (m *Memory) Get(kind Kind, id string) (Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.kinds[kind][id]
	if !ok {
		return nil, false
	}
	return cloneRecord(rec), true
}
