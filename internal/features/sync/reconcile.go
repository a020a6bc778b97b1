package sync

import (
	"context"

	"go.uber.org/zap"
)

// Entity is anything the reconciler can upsert by identity key.
type Entity interface {
	Key() string
}

// Store is the slice of a repository the reconciler needs: a batched
// existence check, a duplicate-tolerant bulk insert and a full-replace
// update.
type Store[T Entity] interface {
	ExistingIDs(ctx context.Context, ids []string) (map[string]struct{}, error)
	InsertMany(ctx context.Context, docs []T) (int, error)
	Replace(ctx context.Context, id string, doc T) error
}

// Outcome tallies one reconciled batch.
type Outcome struct {
	Created int
	Updated int
	Failed  int
}

// Saved is the count of records that made it into storage.
func (o Outcome) Saved() int {
	return o.Created + o.Updated
}

// Reconciler idempotently writes transformed entities into local
// storage. Existence is resolved once per batch, creates go through a
// conflict-tolerant bulk insert, updates are full-field overwrites, and
// any single record's storage error is isolated from the rest of the
// batch.
type Reconciler[T Entity] struct {
	store Store[T]
	log   *zap.Logger
}

func NewReconciler[T Entity](store Store[T], log *zap.Logger) *Reconciler[T] {
	return &Reconciler[T]{store: store, log: log}
}

// Upsert reconciles one batch. The returned error is non-nil only when
// the batch-level existence lookup fails; in that case every record is
// counted as failed.
func (r *Reconciler[T]) Upsert(ctx context.Context, batch []T) (Outcome, error) {
	if len(batch) == 0 {
		return Outcome{}, nil
	}

	ids := make([]string, len(batch))
	for i, entity := range batch {
		ids[i] = entity.Key()
	}

	existing, err := r.store.ExistingIDs(ctx, ids)
	if err != nil {
		r.log.Error("failed to look up existing ids", zap.Error(err))
		return Outcome{Failed: len(batch)}, err
	}

	var outcome Outcome
	var creates []T
	for _, entity := range batch {
		if _, ok := existing[entity.Key()]; ok {
			if err := r.store.Replace(ctx, entity.Key(), entity); err != nil {
				r.log.Error("failed to update record",
					zap.String("id", entity.Key()), zap.Error(err))
				outcome.Failed++
				continue
			}
			outcome.Updated++
			continue
		}
		creates = append(creates, entity)
	}

	if len(creates) > 0 {
		inserted, err := r.store.InsertMany(ctx, creates)
		outcome.Created += inserted
		if err != nil {
			// In-batch duplicates are skipped silently inside InsertMany;
			// an error here means real writes were lost.
			r.log.Error("bulk insert failed", zap.Error(err))
			outcome.Failed += len(creates) - inserted
		}
	}

	return outcome, nil
}
