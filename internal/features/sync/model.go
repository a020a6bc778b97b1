package sync

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CollectionResult is the per-collection slice of a run summary. One
// collection is either a single pipeline's opportunities or the
// contacts listing.
type CollectionResult struct {
	Name      string `json:"name" bson:"name"`
	Fetched   int    `json:"fetched" bson:"fetched"`
	Saved     int    `json:"saved" bson:"saved"`
	Failed    int    `json:"failed" bson:"failed"`
	Truncated bool   `json:"truncated,omitempty" bson:"truncated,omitempty"`
	Error     string `json:"error,omitempty" bson:"error,omitempty"`
}

// RunSummary aggregates one full synchronization pass. A run always
// completes with a summary; only the pipeline-preload failure is fatal.
type RunSummary struct {
	Collections  []CollectionResult `json:"collections" bson:"collections"`
	TotalFetched int                `json:"total_fetched" bson:"total_fetched"`
	TotalSaved   int                `json:"total_saved" bson:"total_saved"`
	TotalFailed  int                `json:"total_failed" bson:"total_failed"`
}

func (s *RunSummary) add(res CollectionResult) {
	s.Collections = append(s.Collections, res)
	s.TotalFetched += res.Fetched
	s.TotalSaved += res.Saved
	s.TotalFailed += res.Failed
}

func (s *RunSummary) merge(other *RunSummary) {
	for _, res := range other.Collections {
		s.add(res)
	}
}

// SyncLog is the persisted record of one run.
type SyncLog struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Kind      string             `json:"kind" bson:"kind"` // "opportunities", "contacts", "full"
	StartTime time.Time          `json:"start_time" bson:"start_time"`
	EndTime   time.Time          `json:"end_time" bson:"end_time"`
	Status    string             `json:"status" bson:"status"` // "success", "failed", "in_progress"
	Summary   RunSummary         `json:"summary" bson:"summary"`
	Error     string             `json:"error,omitempty" bson:"error,omitempty"`
}
