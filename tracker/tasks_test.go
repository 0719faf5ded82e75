package tracker

import (
	"testing"

	"github.com/adarshh247/ListIT-doIT/models"
	"github.com/adarshh247/ListIT-doIT/store"
	"go.uber.org/zap"
)

func newTaskStore() (*TaskStore, *store.Memory) {
	mem := store.NewMemory()
	return NewTaskStore(mem, zap.NewNop()), mem
}

func titles(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func sectorTitles(tasks []models.Task, sector string) []string {
	var out []string
	for _, t := range tasks {
		if t.Sector == sector {
			out = append(out, t.Title)
		}
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestTaskAddRejectsBlankTitle(t *testing.T) {
	s, _ := newTaskStore()

	if task := s.Add("  ", models.PriorityHigh, "Work"); task != nil {
		t.Error("blank title accepted")
	}
	if len(s.List()) != 0 {
		t.Error("collection grew after rejected add")
	}
}

func TestTaskAddDefaults(t *testing.T) {
	s, mem := newTaskStore()

	task := s.Add("file taxes", models.PriorityHigh, "Finance")
	if task == nil {
		t.Fatal("add rejected")
	}
	if task.Completed {
		t.Error("new task marked completed")
	}
	if task.CreatedAt.IsZero() {
		t.Error("created_at not set")
	}
	s.Flush()

	rec, ok := mem.Get(store.KindTasks, task.ID)
	if !ok {
		t.Fatal("task not persisted")
	}
	// Remote schema uses "sector" for the bucket column.
	if rec["sector"] != "Finance" {
		t.Errorf("persisted sector = %v", rec["sector"])
	}
}

func TestTaskAddReturnsDetachedCopy(t *testing.T) {
	s, _ := newTaskStore()
	task := s.Add("file taxes", models.PriorityLow, "Finance")

	s.ToggleCompleted(task.ID)
	if task.Completed {
		t.Error("store toggle reached the copy returned by Add")
	}
	if !s.List()[0].Completed {
		t.Error("store state missing the toggle")
	}
}

func TestTaskUpdateMergesOnlyProvidedFields(t *testing.T) {
	s, mem := newTaskStore()
	task := s.Add("file taxes", models.PriorityLow, "Finance")
	s.Flush()

	high := models.PriorityHigh
	if !s.Update(task.ID, TaskPatch{Priority: &high}) {
		t.Fatal("update reported failure")
	}
	s.Flush()

	got := s.List()[0]
	if got.Priority != models.PriorityHigh {
		t.Errorf("priority = %s, want high", got.Priority)
	}
	if got.Title != "file taxes" || got.Sector != "Finance" {
		t.Errorf("untouched fields changed: %+v", got)
	}

	rec, _ := mem.Get(store.KindTasks, task.ID)
	if rec["priority"] != "high" || rec["title"] != "file taxes" {
		t.Errorf("persisted record = %v", rec)
	}
}

func TestTaskUpdateUnknownIDIsNoop(t *testing.T) {
	s, _ := newTaskStore()
	title := "x"
	if s.Update("ghost", TaskPatch{Title: &title}) {
		t.Error("update of unknown id reported success")
	}
}

func TestTaskToggleCompleted(t *testing.T) {
	s, mem := newTaskStore()
	task := s.Add("file taxes", models.PriorityLow, "Finance")
	s.Flush()

	s.ToggleCompleted(task.ID)
	s.Flush()
	if !s.List()[0].Completed {
		t.Error("toggle did not complete task")
	}
	rec, _ := mem.Get(store.KindTasks, task.ID)
	if done, _ := rec["completed"].(bool); !done {
		t.Error("completion not persisted")
	}

	s.ToggleCompleted(task.ID)
	if s.List()[0].Completed {
		t.Error("second toggle did not clear completion")
	}
}

func TestTaskDelete(t *testing.T) {
	s, mem := newTaskStore()
	task := s.Add("file taxes", models.PriorityLow, "Finance")
	s.Flush()

	if !s.Delete(task.ID) {
		t.Fatal("delete reported failure")
	}
	s.Flush()

	if len(s.List()) != 0 {
		t.Error("task still in memory")
	}
	if _, ok := mem.Get(store.KindTasks, task.ID); ok {
		t.Error("task still persisted")
	}
}

func TestMoveWithinSectorReorders(t *testing.T) {
	s, mem := newTaskStore()
	a := s.Add("a", models.PriorityMedium, "Work")
	s.Add("b", models.PriorityMedium, "Work")
	s.Add("other", models.PriorityMedium, "Home")
	s.Add("c", models.PriorityMedium, "Work")
	s.Flush()

	// Move "a" to the last position among Work tasks.
	if !s.Move(a.ID, "Work", 2) {
		t.Fatal("move reported failure")
	}

	got := sectorTitles(s.List(), "Work")
	if !equal(got, []string{"b", "c", "a"}) {
		t.Errorf("work order = %v, want [b c a]", got)
	}
	if !equal(sectorTitles(s.List(), "Home"), []string{"other"}) {
		t.Error("unrelated sector disturbed")
	}
	if s.List()[len(s.List())-1].Sector != "Work" {
		t.Error("moved task changed sector")
	}

	// Session-local only: the reorder must not reach the backend.
	s.Flush()
	rec, _ := mem.Get(store.KindTasks, a.ID)
	if _, present := rec["order"]; present {
		t.Error("reorder leaked an order field to persistence")
	}
	if rec["sector"] != "Work" {
		t.Errorf("persisted sector changed on reorder: %v", rec["sector"])
	}
}

func TestMoveToFrontOfSector(t *testing.T) {
	s, _ := newTaskStore()
	s.Add("a", models.PriorityMedium, "Work")
	b := s.Add("b", models.PriorityMedium, "Work")
	s.Add("c", models.PriorityMedium, "Work")

	s.Move(b.ID, "Work", 0)

	got := sectorTitles(s.List(), "Work")
	if !equal(got, []string{"b", "a", "c"}) {
		t.Errorf("order = %v, want [b a c]", got)
	}
}

func TestMoveAcrossSectorsChangesOnlySector(t *testing.T) {
	s, mem := newTaskStore()
	s.Add("a", models.PriorityMedium, "Work")
	b := s.Add("b", models.PriorityMedium, "Work")
	s.Add("c", models.PriorityMedium, "Home")
	s.Flush()

	before := titles(s.List())
	if !s.Move(b.ID, "Home", 0) {
		t.Fatal("move reported failure")
	}
	s.Flush()

	// Cross-sector moves rewrite the sector field only; flat positions of
	// every task (including the moved one) stay put.
	if !equal(titles(s.List()), before) {
		t.Errorf("flat order changed: %v -> %v", before, titles(s.List()))
	}
	got := s.List()[1]
	if got.ID != b.ID || got.Sector != "Home" {
		t.Errorf("task after move = %+v", got)
	}

	rec, _ := mem.Get(store.KindTasks, b.ID)
	if rec["sector"] != "Home" {
		t.Errorf("sector change not persisted: %v", rec["sector"])
	}
}

func TestMoveUnknownIDIsNoop(t *testing.T) {
	s, _ := newTaskStore()
	if s.Move("ghost", "Work", 0) {
		t.Error("move of unknown id reported success")
	}
}
