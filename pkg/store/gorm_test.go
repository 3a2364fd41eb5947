package store

import (
	"context"
	"sync"
	"testing"

	"tastemap/pkg/db"
)

type note struct {
	ID   uint   `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"uniqueIndex;not null"`
	Rank int
}

func (note) TableName() string { return "notes" }

func (n *note) PrimaryKey() interface{} { return n.ID }

func newTestStore(t *testing.T) *Gorm[*note] {
	t.Helper()
	manager, err := db.NewDefaultManager("file::memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { manager.Close() })

	if err := manager.DB().AutoMigrate(&note{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewGorm[*note](manager)
}

func TestFlushCommitsPendingOperations(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	st.Insert(&note{Name: "alpha", Rank: 2})
	st.Insert(&note{Name: "beta", Rank: 1})
	if st.Pending() != 2 {
		t.Fatalf("pending = %d, want 2", st.Pending())
	}

	if err := st.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if st.Pending() != 0 {
		t.Errorf("pending = %d after flush, want 0", st.Pending())
	}

	count, err := st.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestFlushEmptyUnitOfWorkIsNoop(t *testing.T) {
	st := newTestStore(t)
	if err := st.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
}

func TestFailedFlushRollsBackAndClearsPending(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	st.Insert(&note{Name: "alpha"})
	if err := st.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}

	// Second operation in the unit of work violates the unique index,
	// so the whole transaction rolls back.
	st.Insert(&note{Name: "gamma"})
	st.Insert(&note{Name: "alpha"})
	if err := st.Flush(ctx); err == nil {
		t.Fatal("flush succeeded despite duplicate name")
	}

	if st.Pending() != 0 {
		t.Errorf("pending = %d after failed flush, want 0", st.Pending())
	}

	count, err := st.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1 (failed unit of work must not partially commit)", count)
	}

	// The failed unit of work is gone for good.
	if err := st.Flush(ctx); err != nil {
		t.Errorf("flush after failure: %v", err)
	}
}

func TestUpdateAndRemove(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	n := &note{Name: "alpha", Rank: 1}
	st.Insert(n)
	if err := st.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}

	n.Rank = 9
	st.Update(n)
	if err := st.Flush(ctx); err != nil {
		t.Fatalf("flush update: %v", err)
	}

	found, err := st.Find(ctx, Query{}.Where("name", Equal, "alpha"))
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(found) != 1 || found[0].Rank != 9 {
		t.Fatalf("found = %+v, want one note with rank 9", found)
	}

	st.Remove(n)
	if err := st.Flush(ctx); err != nil {
		t.Fatalf("flush remove: %v", err)
	}
	count, err := st.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
}

func TestFindConditionsAndSort(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	st.Insert(&note{Name: "alpha", Rank: 3})
	st.Insert(&note{Name: "beta", Rank: 1})
	st.Insert(&note{Name: "gamma", Rank: 2})
	if err := st.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}

	found, err := st.Find(ctx, Query{}.
		Where("rank", GreaterThan, 1).
		OrderBy("rank"))
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("found %d notes, want 2", len(found))
	}
	if found[0].Name != "gamma" || found[1].Name != "alpha" {
		t.Errorf("order = %q, %q; want gamma, alpha", found[0].Name, found[1].Name)
	}

	found, err = st.Find(ctx, Query{}.OrderByDesc("rank"))
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(found) != 3 || found[0].Name != "alpha" {
		t.Fatalf("descending order wrong: %+v", found)
	}
}

func TestConcurrentRegistration(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			st.Insert(&note{Name: string(rune('a' + i)), Rank: i})
		}(i)
	}
	wg.Wait()

	if st.Pending() != 10 {
		t.Fatalf("pending = %d, want 10", st.Pending())
	}
	if err := st.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}
	count, err := st.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 10 {
		t.Errorf("count = %d, want 10", count)
	}
}
