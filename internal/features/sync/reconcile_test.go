package sync

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

type fakeEntity struct {
	ID   string
	Name string
}

func (e fakeEntity) Key() string { return e.ID }

type fakeStore struct {
	docs        map[string]fakeEntity
	lookupErr   error
	replaceErrs map[string]error
	insertErr   error
	inserts     int
	replaces    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{docs: map[string]fakeEntity{}, replaceErrs: map[string]error{}}
}

func (s *fakeStore) ExistingIDs(_ context.Context, ids []string) (map[string]struct{}, error) {
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	existing := make(map[string]struct{})
	for _, id := range ids {
		if _, ok := s.docs[id]; ok {
			existing[id] = struct{}{}
		}
	}
	return existing, nil
}

func (s *fakeStore) InsertMany(_ context.Context, docs []fakeEntity) (int, error) {
	if s.insertErr != nil {
		return 0, s.insertErr
	}
	inserted := 0
	for _, doc := range docs {
		if _, ok := s.docs[doc.ID]; ok {
			continue // duplicate key, skipped silently
		}
		s.docs[doc.ID] = doc
		inserted++
	}
	s.inserts += inserted
	return inserted, nil
}

func (s *fakeStore) Replace(_ context.Context, id string, doc fakeEntity) error {
	if err := s.replaceErrs[id]; err != nil {
		return err
	}
	s.docs[id] = doc
	s.replaces++
	return nil
}

func TestReconcilerUpsertIdempotence(t *testing.T) {
	store := newFakeStore()
	rec := NewReconciler[fakeEntity](store, zap.NewNop())
	ctx := context.Background()

	batch := []fakeEntity{
		{ID: "a", Name: "first"},
		{ID: "b", Name: "second"},
		{ID: "c", Name: "third"},
	}

	first, err := rec.Upsert(ctx, batch)
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if first.Created != 3 || first.Updated != 0 || first.Failed != 0 {
		t.Fatalf("first pass outcome = %+v, want 3 creates", first)
	}

	// Re-running the identical batch replaces in place; document count is stable.
	second, err := rec.Upsert(ctx, batch)
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if second.Created != 0 || second.Updated != 3 || second.Failed != 0 {
		t.Fatalf("second pass outcome = %+v, want 3 updates", second)
	}
	if len(store.docs) != 3 {
		t.Fatalf("store holds %d docs after re-sync, want 3", len(store.docs))
	}
}

func TestReconcilerUpdateOverwrites(t *testing.T) {
	store := newFakeStore()
	store.docs["a"] = fakeEntity{ID: "a", Name: "stale"}
	rec := NewReconciler[fakeEntity](store, zap.NewNop())

	outcome, err := rec.Upsert(context.Background(), []fakeEntity{{ID: "a", Name: "fresh"}})
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if outcome.Updated != 1 {
		t.Fatalf("outcome = %+v, want 1 update", outcome)
	}
	if store.docs["a"].Name != "fresh" {
		t.Errorf("doc not overwritten: %+v", store.docs["a"])
	}
}

func TestReconcilerIsolatesRecordFailures(t *testing.T) {
	store := newFakeStore()
	store.docs["a"] = fakeEntity{ID: "a"}
	store.docs["b"] = fakeEntity{ID: "b"}
	store.docs["c"] = fakeEntity{ID: "c"}
	store.replaceErrs["b"] = errors.New("write conflict")

	rec := NewReconciler[fakeEntity](store, zap.NewNop())

	batch := []fakeEntity{
		{ID: "a", Name: "new-a"},
		{ID: "b", Name: "new-b"},
		{ID: "c", Name: "new-c"},
	}
	outcome, err := rec.Upsert(context.Background(), batch)
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if outcome.Updated != 2 || outcome.Failed != 1 {
		t.Fatalf("outcome = %+v, want 2 updated 1 failed", outcome)
	}
	if store.docs["a"].Name != "new-a" || store.docs["c"].Name != "new-c" {
		t.Error("surviving records were not written")
	}
}

func TestReconcilerLookupFailureFailsBatch(t *testing.T) {
	store := newFakeStore()
	store.lookupErr = errors.New("server selection timeout")
	rec := NewReconciler[fakeEntity](store, zap.NewNop())

	outcome, err := rec.Upsert(context.Background(), []fakeEntity{{ID: "a"}, {ID: "b"}})
	if err == nil {
		t.Fatal("expected error when existence lookup fails")
	}
	if outcome.Failed != 2 || outcome.Saved() != 0 {
		t.Fatalf("outcome = %+v, want all failed", outcome)
	}
	if store.inserts != 0 || store.replaces != 0 {
		t.Error("no writes should happen after a failed lookup")
	}
}

func TestReconcilerInBatchDuplicatesSkipped(t *testing.T) {
	store := newFakeStore()
	rec := NewReconciler[fakeEntity](store, zap.NewNop())

	batch := []fakeEntity{
		{ID: "a", Name: "first"},
		{ID: "a", Name: "dup"},
		{ID: "b", Name: "second"},
	}
	outcome, err := rec.Upsert(context.Background(), batch)
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if outcome.Created != 2 || outcome.Failed != 0 {
		t.Fatalf("outcome = %+v, want 2 created 0 failed", outcome)
	}
}

func TestReconcilerEmptyBatch(t *testing.T) {
	rec := NewReconciler[fakeEntity](newFakeStore(), zap.NewNop())

	outcome, err := rec.Upsert(context.Background(), nil)
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if outcome != (Outcome{}) {
		t.Fatalf("outcome = %+v, want zero", outcome)
	}
}
