package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/peterbourgon/diskv/v3"
)

// Diskv is the local on-device fallback: one JSON file per record under
// <base>/<kind>/<id>, used when no database is configured.
type Diskv struct {
	mu sync.Mutex
	d  *diskv.Diskv
}

// NewDiskv opens (or creates) a local record store rooted at basePath.
func NewDiskv(basePath string) *Diskv {
	return &Diskv{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPath,
			InverseTransform:  pathToKey,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
	}
}

func recordKey(kind Kind, id string) string {
	return string(kind) + "/" + id
}

func keyToPath(key string) *diskv.PathKey {
	parts := strings.Split(key, "/")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKey(pk *diskv.PathKey) string {
	return strings.Join(append(pk.Path, pk.FileName), "/")
}

func (s *Diskv) write(key string, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record %s: %w", key, err)
	}
	return s.d.Write(key, data)
}

func (s *Diskv) read(key string) (Record, error) {
	data, err := s.d.Read(key)
	if err != nil {
		return nil, err
	}
	rec := Record{}
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode record %s: %w", key, err)
	}
	return rec, nil
}

// keys lists every stored key for kind. The lock must be held.
func (s *Diskv) keys(ctx context.Context, kind Kind) []string {
	prefix := string(kind) + "/"
	var out []string
	for key := range s.d.Keys(ctx.Done()) {
		if strings.HasPrefix(key, prefix) {
			out = append(out, key)
		}
	}
	return out
}

func (s *Diskv) Insert(_ context.Context, kind Kind, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(recordKey(kind, rec.ID()), rec)
}

func (s *Diskv) Update(_ context.Context, kind Kind, id string, fields Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := recordKey(kind, id)
	rec, err := s.read(key)
	if err != nil {
		// Missing records are not an error: the optimistic local write
		// already happened and an earlier insert may still be in flight.
		return nil
	}
	for k, v := range fields {
		rec[k] = v
	}
	return s.write(key, rec)
}

func (s *Diskv) Delete(_ context.Context, kind Kind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := recordKey(kind, id)
	if !s.d.Has(key) {
		return nil
	}
	return s.d.Erase(key)
}

func (s *Diskv) BulkUpdate(ctx context.Context, kind Kind, matchField, matchValue string, fields Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range s.keys(ctx, kind) {
		rec, err := s.read(key)
		if err != nil {
			return err
		}
		if v, ok := rec[matchField].(string); !ok || v != matchValue {
			continue
		}
		for k, v := range fields {
			rec[k] = v
		}
		if err := s.write(key, rec); err != nil {
			return err
		}
	}
	return nil
}

func (s *Diskv) BulkDelete(ctx context.Context, kind Kind, matchField, matchValue string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range s.keys(ctx, kind) {
		rec, err := s.read(key)
		if err != nil {
			return err
		}
		if v, ok := rec[matchField].(string); ok && v == matchValue {
			if err := s.d.Erase(key); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Diskv) ListAll(ctx context.Context, kind Kind) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := s.keys(ctx, kind)
	records := make([]Record, 0, len(keys))
	for _, key := range keys {
		rec, err := s.read(key)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
