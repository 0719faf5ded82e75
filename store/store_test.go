package store

import (
	"context"
	"testing"
)

// backends under test share one behavioral contract.
func backends(t *testing.T) map[string]Persistence {
	t.Helper()
	return map[string]Persistence{
		"memory": NewMemory(),
		"diskv":  NewDiskv(t.TempDir()),
	}
}

func TestInsertAndListAll(t *testing.T) {
	for name, p := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if err := p.Insert(ctx, KindTasks, Record{"id": "t1", "title": "water plants", "sector": "Home"}); err != nil {
				t.Fatalf("insert: %v", err)
			}
			if err := p.Insert(ctx, KindTasks, Record{"id": "t2", "title": "file taxes", "sector": "Finance"}); err != nil {
				t.Fatalf("insert: %v", err)
			}

			records, err := p.ListAll(ctx, KindTasks)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(records) != 2 {
				t.Fatalf("listed %d records, want 2", len(records))
			}

			other, err := p.ListAll(ctx, KindSectors)
			if err != nil {
				t.Fatalf("list other kind: %v", err)
			}
			if len(other) != 0 {
				t.Errorf("sectors collection should be empty, got %d", len(other))
			}
		})
	}
}

func TestUpdateMergesFields(t *testing.T) {
	for name, p := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if err := p.Insert(ctx, KindTasks, Record{"id": "t1", "title": "water plants", "completed": false}); err != nil {
				t.Fatalf("insert: %v", err)
			}
			if err := p.Update(ctx, KindTasks, "t1", Fields{"completed": true}); err != nil {
				t.Fatalf("update: %v", err)
			}

			records, _ := p.ListAll(ctx, KindTasks)
			if len(records) != 1 {
				t.Fatalf("listed %d records, want 1", len(records))
			}
			if done, _ := records[0]["completed"].(bool); !done {
				t.Error("completed not merged")
			}
			if title, _ := records[0]["title"].(string); title != "water plants" {
				t.Errorf("untouched field changed: %q", title)
			}
		})
	}
}

func TestUpdateMissingIsNoop(t *testing.T) {
	for name, p := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := p.Update(context.Background(), KindTasks, "ghost", Fields{"completed": true}); err != nil {
				t.Fatalf("update of missing record must not error: %v", err)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	for name, p := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if err := p.Insert(ctx, KindSectors, Record{"id": "s1", "name": "Home"}); err != nil {
				t.Fatalf("insert: %v", err)
			}
			if err := p.Delete(ctx, KindSectors, "s1"); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if err := p.Delete(ctx, KindSectors, "s1"); err != nil {
				t.Fatalf("double delete must not error: %v", err)
			}

			records, _ := p.ListAll(ctx, KindSectors)
			if len(records) != 0 {
				t.Errorf("record survived delete")
			}
		})
	}
}

func TestBulkUpdateByField(t *testing.T) {
	for name, p := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			p.Insert(ctx, KindTasks, Record{"id": "t1", "sector": "Monthly"})
			p.Insert(ctx, KindTasks, Record{"id": "t2", "sector": "Yearly"})
			p.Insert(ctx, KindTasks, Record{"id": "t3", "sector": "Monthly"})

			if err := p.BulkUpdate(ctx, KindTasks, "sector", "Monthly", Fields{"sector": "Finance"}); err != nil {
				t.Fatalf("bulk update: %v", err)
			}

			records, _ := p.ListAll(ctx, KindTasks)
			got := map[string]string{}
			for _, rec := range records {
				got[rec.ID()], _ = rec["sector"].(string)
			}
			if got["t1"] != "Finance" || got["t3"] != "Finance" {
				t.Errorf("matching records not rewritten: %v", got)
			}
			if got["t2"] != "Yearly" {
				t.Errorf("non-matching record rewritten: %v", got)
			}
		})
	}
}

func TestBulkDeleteByField(t *testing.T) {
	for name, p := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			p.Insert(ctx, KindTasks, Record{"id": "t1", "sector": "Monthly"})
			p.Insert(ctx, KindTasks, Record{"id": "t2", "sector": "Yearly"})

			if err := p.BulkDelete(ctx, KindTasks, "sector", "Monthly"); err != nil {
				t.Fatalf("bulk delete: %v", err)
			}

			records, _ := p.ListAll(ctx, KindTasks)
			if len(records) != 1 || records[0].ID() != "t2" {
				t.Errorf("bulk delete kept wrong records: %v", records)
			}
		})
	}
}

func TestDiskvSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first := NewDiskv(dir)
	if err := first.Insert(ctx, KindDailyHabits, Record{"id": "h1", "title": "stretch"}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	second := NewDiskv(dir)
	records, err := second.ListAll(ctx, KindDailyHabits)
	if err != nil {
		t.Fatalf("list after reopen: %v", err)
	}
	if len(records) != 1 || records[0]["title"] != "stretch" {
		t.Errorf("record lost across reopen: %v", records)
	}
}
