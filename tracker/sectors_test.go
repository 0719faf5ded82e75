package tracker

import (
	"context"
	"testing"

	"github.com/adarshh247/ListIT-doIT/models"
	"github.com/adarshh247/ListIT-doIT/store"
	"go.uber.org/zap"
)

func newBoard() (*SectorStore, *TaskStore, *store.Memory) {
	mem := store.NewMemory()
	tasks := NewTaskStore(mem, zap.NewNop())
	sectors := NewSectorStore(mem, tasks, zap.NewNop())
	return sectors, tasks, mem
}

func sectorNames(list []models.Sector) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s.Name
	}
	return out
}

func TestSectorAddTrimsAndRejectsBlank(t *testing.T) {
	s, _, _ := newBoard()

	if sec := s.Add("  Work  "); sec == nil || sec.Name != "Work" {
		t.Fatalf("Add trimmed sector = %+v", sec)
	}
	if sec := s.Add("   "); sec != nil {
		t.Error("blank name accepted")
	}
	if len(s.List()) != 1 {
		t.Errorf("sector count = %d, want 1", len(s.List()))
	}
}

func TestSectorAddRejectsDuplicateCaseSensitive(t *testing.T) {
	s, _, _ := newBoard()
	s.Add("Work")

	if sec := s.Add("Work"); sec != nil {
		t.Error("exact duplicate accepted")
	}
	// Identity is case-sensitive: a different casing is a different sector.
	if sec := s.Add("work"); sec == nil {
		t.Error("differently cased name rejected")
	}
}

func TestSectorAddReturnsDetachedCopy(t *testing.T) {
	s, _, _ := newBoard()
	sec := s.Add("Work")

	if !s.Rename("Work", "Office") {
		t.Fatal("rename reported failure")
	}
	if sec.Name != "Work" {
		t.Error("store rename reached the copy returned by Add")
	}
}

func TestSectorRenameCascadesIntoTasks(t *testing.T) {
	s, tasks, mem := newBoard()
	s.Add("Monthly")
	s.Add("Yearly")
	t1 := tasks.Add("renew insurance", models.PriorityMedium, "Monthly")
	t2 := tasks.Add("review goals", models.PriorityMedium, "Yearly")
	s.Flush()
	tasks.Flush()

	if !s.Rename("Monthly", "Finance") {
		t.Fatal("rename reported failure")
	}

	names := sectorNames(s.List())
	if !equal(names, []string{"Finance", "Yearly"}) {
		t.Errorf("sectors = %v, want [Finance Yearly]", names)
	}

	for _, task := range tasks.List() {
		switch task.ID {
		case t1.ID:
			if task.Sector != "Finance" {
				t.Errorf("task 1 sector = %s, want Finance", task.Sector)
			}
		case t2.ID:
			if task.Sector != "Yearly" {
				t.Errorf("task 2 sector = %s, want Yearly", task.Sector)
			}
		}
	}

	s.Flush()
	rec, _ := mem.Get(store.KindTasks, t1.ID)
	if rec["sector"] != "Finance" {
		t.Errorf("remote task sector = %v, want Finance", rec["sector"])
	}
	other, _ := mem.Get(store.KindTasks, t2.ID)
	if other["sector"] != "Yearly" {
		t.Errorf("unrelated remote task rewritten: %v", other["sector"])
	}
}

func TestSectorRenameRejections(t *testing.T) {
	s, _, _ := newBoard()
	s.Add("Work")
	s.Add("Home")

	if s.Rename("Work", "  ") {
		t.Error("rename to blank accepted")
	}
	if s.Rename("Work", "Home") {
		t.Error("rename onto existing sector accepted")
	}
	if s.Rename("Ghost", "Anything") {
		t.Error("rename of unknown sector accepted")
	}
	// Renaming to itself is a harmless no-op rename.
	if !s.Rename("Work", "Work") {
		t.Error("identity rename rejected")
	}
}

func TestSectorDeleteCascadeDeletesTasks(t *testing.T) {
	s, tasks, mem := newBoard()
	s.Add("Monthly")
	s.Add("Yearly")
	t1 := tasks.Add("renew insurance", models.PriorityMedium, "Monthly")
	t2 := tasks.Add("review goals", models.PriorityMedium, "Yearly")
	tasks.Flush()

	if !s.Delete("Monthly") {
		t.Fatal("delete reported failure")
	}
	s.Flush()

	if !equal(sectorNames(s.List()), []string{"Yearly"}) {
		t.Errorf("sectors = %v, want [Yearly]", sectorNames(s.List()))
	}

	remaining := tasks.List()
	if len(remaining) != 1 || remaining[0].ID != t2.ID {
		t.Errorf("remaining tasks = %v, want only task 2", remaining)
	}

	if _, ok := mem.Get(store.KindTasks, t1.ID); ok {
		t.Error("cascaded task still persisted")
	}
	if _, ok := mem.Get(store.KindTasks, t2.ID); !ok {
		t.Error("unrelated task deleted remotely")
	}
}

func TestSectorDeleteUnknownIsNoop(t *testing.T) {
	s, _, _ := newBoard()
	s.Add("Work")

	if s.Delete("Ghost") {
		t.Error("delete of unknown sector reported success")
	}
	if len(s.List()) != 1 {
		t.Error("collection changed by no-op delete")
	}
}

func TestSectorLoadKeepsPositionOrder(t *testing.T) {
	s, tasks, mem := newBoard()
	s.Add("Work")
	s.Add("Home")
	s.Add("Finance")
	s.Flush()

	fresh := NewSectorStore(mem, tasks, zap.NewNop())
	if err := fresh.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !equal(sectorNames(fresh.List()), []string{"Work", "Home", "Finance"}) {
		t.Errorf("loaded order = %v", sectorNames(fresh.List()))
	}
}
