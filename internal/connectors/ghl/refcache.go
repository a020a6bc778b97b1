package ghl

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

type pipelineEntry struct {
	name   string
	stages map[string]string
}

// ReferenceCache memoizes pipeline/stage names and user profiles for the
// duration of one sync run. It is created per run and passed in
// explicitly; never shared across runs.
type ReferenceCache struct {
	client     *Client
	locationID string
	log        *zap.Logger

	pipelineOrder []string
	pipelines     map[string]pipelineEntry
	users         map[string]UserProfile
}

func NewReferenceCache(client *Client, locationID string, log *zap.Logger) *ReferenceCache {
	return &ReferenceCache{
		client:     client,
		locationID: locationID,
		log:        log,
		pipelines:  make(map[string]pipelineEntry),
		users:      make(map[string]UserProfile),
	}
}

// LoadPipelines performs the one-shot full pipeline fetch. It must
// succeed before any stage-name resolution; a failure here is fatal for
// the run that owns this cache.
func (rc *ReferenceCache) LoadPipelines(ctx context.Context) error {
	list, err := rc.client.ListPipelines(ctx, rc.locationID)
	if err != nil {
		return fmt.Errorf("load pipelines: %w", err)
	}

	for _, p := range list.Pipelines {
		stages := make(map[string]string, len(p.Stages))
		for _, s := range p.Stages {
			stages[s.ID] = s.Name
		}
		rc.pipelines[p.ID] = pipelineEntry{name: p.Name, stages: stages}
		rc.pipelineOrder = append(rc.pipelineOrder, p.ID)
	}

	rc.log.Info("cached pipelines", zap.Int("count", len(list.Pipelines)))
	return nil
}

// PipelineIDs returns the cached pipeline ids in upstream listing order.
func (rc *ReferenceCache) PipelineIDs() []string {
	return rc.pipelineOrder
}

// PipelineName returns the cached name for a pipeline, or "" if unknown.
func (rc *ReferenceCache) PipelineName(pipelineID string) string {
	return rc.pipelines[pipelineID].name
}

// StageName is a pure cache lookup; it never touches the network.
func (rc *ReferenceCache) StageName(pipelineID, stageID string) string {
	return rc.pipelines[pipelineID].stages[stageID]
}

// User returns the cached profile for a user id, fetching it on first
// reference. A failed fetch caches an empty profile so the same id is
// not retried within this run.
func (rc *ReferenceCache) User(ctx context.Context, userID string) UserProfile {
	if profile, ok := rc.users[userID]; ok {
		return profile
	}

	profile, err := rc.client.GetUser(ctx, userID)
	if err != nil {
		rc.log.Error("failed to fetch user, caching empty profile",
			zap.String("userId", userID), zap.Error(err))
		rc.users[userID] = UserProfile{}
		return UserProfile{}
	}

	rc.users[userID] = *profile
	return *profile
}
