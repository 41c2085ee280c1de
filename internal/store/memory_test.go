package store

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"tasklist/internal/models"
)

func setupTestStore(t *testing.T) *MemoryStore {
	t.Helper()
	return NewMemoryStore()
}

func seedTasks() []models.Task {
	return []models.Task{
		{ID: 1, Title: "Complete documentation", Status: models.StatusPending},
		{ID: 2, Title: "Review code", Status: models.StatusCompleted},
		{ID: 3, Title: "Write tests", Status: models.StatusPending},
	}
}

func TestSeed_ReplacesCollection(t *testing.T) {
	store := setupTestStore(t)

	store.Add("Will be replaced")
	store.Seed(seedTasks())

	got := store.List()
	if !reflect.DeepEqual(got, seedTasks()) {
		t.Fatalf("expected seeded tasks, got %+v", got)
	}
}

func TestSeed_CopiesInput(t *testing.T) {
	store := setupTestStore(t)

	items := seedTasks()
	store.Seed(items)
	items[0].Title = "Mutated"

	got, _ := store.Get(1)
	if got.Title != "Complete documentation" {
		t.Errorf("expected store to own its copy, got %q", got.Title)
	}
}

func TestAdd(t *testing.T) {
	store := setupTestStore(t)

	task, err := store.Add("Buy milk")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if task.ID == 0 {
		t.Error("expected task ID to be set")
	}
	if task.Status != models.StatusPending {
		t.Errorf("expected status %q, got %q", models.StatusPending, task.Status)
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 task, got %d", store.Len())
	}
}

func TestAdd_AppendsToEnd(t *testing.T) {
	store := setupTestStore(t)
	store.Seed(seedTasks())

	task, err := store.Add("Ship release")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	got := store.List()
	if got[len(got)-1].ID != task.ID {
		t.Errorf("expected new task last, got %+v", got)
	}
	if task.ID <= 3 {
		t.Errorf("expected ID above seeded IDs, got %d", task.ID)
	}
}

func TestAdd_BlankTitleIsNoop(t *testing.T) {
	tests := []struct {
		name  string
		title string
	}{
		{name: "empty title", title: ""},
		{name: "whitespace title", title: "   "},
		{name: "tabs and newlines", title: "\t\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := setupTestStore(t)
			store.Seed(seedTasks())

			_, err := store.Add(tt.title)
			if err == nil {
				t.Fatal("expected error for blank title")
			}
			if !errors.Is(err, models.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
			if !reflect.DeepEqual(store.List(), seedTasks()) {
				t.Errorf("expected collection unchanged, got %+v", store.List())
			}
		})
	}
}

func TestAdd_IDsStrictlyIncreaseWithinSameMillisecond(t *testing.T) {
	store := setupTestStore(t)
	fixed := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	first, _ := store.Add("First")
	second, _ := store.Add("Second")
	third, _ := store.Add("Third")

	if first.ID != fixed.UnixMilli() {
		t.Errorf("expected time-derived ID %d, got %d", fixed.UnixMilli(), first.ID)
	}
	if !(first.ID < second.ID && second.ID < third.ID) {
		t.Errorf("expected strictly increasing IDs, got %d, %d, %d", first.ID, second.ID, third.ID)
	}
}

func TestAdd_ThenFilterIsCaseInsensitive(t *testing.T) {
	store := setupTestStore(t)

	task, _ := store.Add("X")

	got := store.Filter("x")
	if len(got) != 1 || got[0].ID != task.ID {
		t.Errorf("expected filter to include new task, got %+v", got)
	}
}

func TestToggle(t *testing.T) {
	store := setupTestStore(t)
	store.Seed(seedTasks())

	// Toggle to complete
	got, ok := store.Toggle(1)
	if !ok {
		t.Fatal("expected toggle to find task")
	}
	if got.Status != models.StatusCompleted {
		t.Errorf("expected task to be completed, got %q", got.Status)
	}

	// Toggle back to pending
	got, _ = store.Toggle(1)
	if got.Status != models.StatusPending {
		t.Errorf("expected task to be pending, got %q", got.Status)
	}

	stored, _ := store.Get(1)
	if stored.Status != models.StatusPending {
		t.Errorf("expected stored task to be pending, got %q", stored.Status)
	}
}

func TestToggle_UnknownIDIsNoop(t *testing.T) {
	store := setupTestStore(t)
	store.Seed(seedTasks())

	if _, ok := store.Toggle(999); ok {
		t.Error("expected toggle of unknown ID to report not found")
	}
	if !reflect.DeepEqual(store.List(), seedTasks()) {
		t.Errorf("expected collection unchanged, got %+v", store.List())
	}
}

func TestRemove(t *testing.T) {
	store := setupTestStore(t)
	store.Seed(seedTasks())

	if !store.Remove(2) {
		t.Fatal("expected remove to find task")
	}

	if _, ok := store.Get(2); ok {
		t.Error("expected task to be deleted")
	}

	// Second remove is a no-op
	if store.Remove(2) {
		t.Error("expected second remove to report not found")
	}

	expectedOrder := []string{"Complete documentation", "Write tests"}
	got := store.List()
	for i, title := range expectedOrder {
		if got[i].Title != title {
			t.Errorf("position %d: expected %q, got %q", i, title, got[i].Title)
		}
	}
}

func TestFilter(t *testing.T) {
	store := setupTestStore(t)
	store.Seed(seedTasks())

	got := store.Filter("write")
	expected := []models.Task{{ID: 3, Title: "Write tests", Status: models.StatusPending}}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %+v, got %+v", expected, got)
	}
}

func TestFilter_EmptyTermReturnsAllInOrder(t *testing.T) {
	store := setupTestStore(t)
	store.Seed(seedTasks())

	got := store.Filter("")
	if !reflect.DeepEqual(got, seedTasks()) {
		t.Errorf("expected full collection, got %+v", got)
	}
}

func TestFilter_ReturnsCopy(t *testing.T) {
	store := setupTestStore(t)
	store.Seed(seedTasks())

	got := store.Filter("")
	got[0].Title = "Mutated"

	stored, _ := store.Get(1)
	if stored.Title != "Complete documentation" {
		t.Errorf("expected filter result not to alias the store, got %q", stored.Title)
	}
}

func TestRandomOperations_IDsStayUnique(t *testing.T) {
	store := setupTestStore(t)
	store.Seed(seedTasks())
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		tasks := store.List()
		switch op := rng.Intn(3); {
		case op == 0 || len(tasks) == 0:
			store.Add("task")
		case op == 1:
			store.Toggle(tasks[rng.Intn(len(tasks))].ID)
		default:
			store.Remove(tasks[rng.Intn(len(tasks))].ID)
		}

		seen := make(map[int64]bool)
		for _, task := range store.List() {
			if seen[task.ID] {
				t.Fatalf("duplicate ID %d after %d operations", task.ID, i+1)
			}
			seen[task.ID] = true
		}
	}
}
