package sync

import (
	"context"
	"fmt"
	"time"

	"go-ghlsync/internal/config"
	"go-ghlsync/internal/connectors/ghl"
	"go-ghlsync/internal/features/contact"
	"go-ghlsync/internal/features/credential"
	"go-ghlsync/internal/features/opportunity"

	"go.uber.org/zap"
)

type SyncService interface {
	RunAll(ctx context.Context) (*RunSummary, error)
	RunOpportunities(ctx context.Context) (*RunSummary, error)
	RunContacts(ctx context.Context) (*RunSummary, error)
	ListLogs(ctx context.Context, limit int64) ([]SyncLog, error)
}

type SyncServiceImpl struct {
	Credentials credential.CredentialService
	OppRepo     opportunity.OpportunityRepository
	ContactRepo contact.ContactRepository
	LogRepo     SyncLogRepository
	Config      *config.Config
	Log         *zap.Logger

	loc *time.Location
}

func NewSyncService(
	credentials credential.CredentialService,
	oppRepo opportunity.OpportunityRepository,
	contactRepo contact.ContactRepository,
	logRepo SyncLogRepository,
	cfg *config.Config,
	log *zap.Logger,
) SyncService {
	loc, err := time.LoadLocation(cfg.SyncTimezone)
	if err != nil {
		// Arizona has no daylight saving, so a fixed offset is equivalent.
		log.Warn("could not load sync timezone, falling back to MST",
			zap.String("timezone", cfg.SyncTimezone), zap.Error(err))
		loc = time.FixedZone("MST", -7*3600)
	}

	return &SyncServiceImpl{
		Credentials: credentials,
		OppRepo:     oppRepo,
		ContactRepo: contactRepo,
		LogRepo:     logRepo,
		Config:      cfg,
		Log:         log,
		loc:         loc,
	}
}

func (s *SyncServiceImpl) RunAll(ctx context.Context) (*RunSummary, error) {
	log := s.startLog(ctx, "full")

	summary := &RunSummary{}
	contacts, contactsErr := s.runContacts(ctx)
	summary.merge(contacts)

	opportunities, oppErr := s.runOpportunities(ctx)
	summary.merge(opportunities)

	var runErr error
	if contactsErr != nil {
		runErr = contactsErr
	}
	if oppErr != nil {
		runErr = oppErr
	}

	s.finishLog(ctx, log, summary, runErr)
	return summary, runErr
}

func (s *SyncServiceImpl) RunOpportunities(ctx context.Context) (*RunSummary, error) {
	log := s.startLog(ctx, "opportunities")
	summary, err := s.runOpportunities(ctx)
	s.finishLog(ctx, log, summary, err)
	return summary, err
}

func (s *SyncServiceImpl) RunContacts(ctx context.Context) (*RunSummary, error) {
	log := s.startLog(ctx, "contacts")
	summary, err := s.runContacts(ctx)
	s.finishLog(ctx, log, summary, err)
	return summary, err
}

func (s *SyncServiceImpl) ListLogs(ctx context.Context, limit int64) ([]SyncLog, error) {
	return s.LogRepo.List(ctx, limit)
}

// runOpportunities synchronizes every pipeline of the active location.
// The pipeline listing is a hard precondition: without it stage
// enrichment is meaningless, so a preload failure aborts the run.
func (s *SyncServiceImpl) runOpportunities(ctx context.Context) (*RunSummary, error) {
	summary := &RunSummary{}

	cred, err := s.Credentials.ActiveGHL(ctx)
	if err != nil {
		return summary, fmt.Errorf("no active GHL credential: %w", err)
	}

	client := ghl.NewClient(s.Config.GHLAPIBase, cred.AccessToken, s.Config.SyncPageDelay)
	cache := ghl.NewReferenceCache(client, cred.LocationID, s.Log)

	if err := cache.LoadPipelines(ctx); err != nil {
		return summary, fmt.Errorf("pipeline preload failed, aborting run: %w", err)
	}

	transformer := NewTransformer(s.loc, cache, s.Log)
	reconciler := NewReconciler[opportunity.Opportunity](s.OppRepo, s.Log)

	for _, pipelineID := range cache.PipelineIDs() {
		res := s.syncPipeline(ctx, client, cache, transformer, reconciler, cred.LocationID, pipelineID)
		summary.add(res)

		s.Log.Info("pipeline synced",
			zap.String("pipeline", res.Name),
			zap.Int("fetched", res.Fetched),
			zap.Int("saved", res.Saved),
			zap.Int("failed", res.Failed),
			zap.String("locationId", cred.LocationID))
	}

	return summary, nil
}

func (s *SyncServiceImpl) syncPipeline(
	ctx context.Context,
	client *ghl.Client,
	cache *ghl.ReferenceCache,
	transformer *Transformer,
	reconciler *Reconciler[opportunity.Opportunity],
	locationID, pipelineID string,
) CollectionResult {
	name := cache.PipelineName(pipelineID)
	res := CollectionResult{Name: name}

	var raws []ghl.RawOpportunity
	var cur ghl.Cursor
	for page := 0; ; page++ {
		if page >= ghl.MaxPages {
			s.Log.Warn("reached maximum page limit, truncating collection",
				zap.String("pipeline", name))
			res.Truncated = true
			break
		}

		p, err := client.SearchOpportunities(ctx, locationID, pipelineID, s.Config.SyncPageSize, cur, page)
		if err != nil {
			// Pages already fetched are still processed below.
			s.Log.Error("opportunity page fetch failed",
				zap.String("pipeline", name), zap.Int("page", page+1), zap.Error(err))
			res.Error = err.Error()
			break
		}

		raws = append(raws, p.Opportunities...)

		next, cont := cur.Advance(opportunityPageInfo(p), s.Config.SyncPageSize, len(raws))
		cur = next
		if !cont {
			break
		}
	}

	res.Fetched = len(raws)

	batch := make([]opportunity.Opportunity, 0, len(raws))
	for _, raw := range raws {
		batch = append(batch, transformer.Opportunity(ctx, raw))
	}

	outcome, _ := reconciler.Upsert(ctx, batch)
	res.Saved = outcome.Saved()
	res.Failed = outcome.Failed
	return res
}

// runContacts synchronizes the contacts listing. Contacts need no
// pipeline data, so there is no preload precondition.
func (s *SyncServiceImpl) runContacts(ctx context.Context) (*RunSummary, error) {
	summary := &RunSummary{}

	cred, err := s.Credentials.ActiveGHL(ctx)
	if err != nil {
		return summary, fmt.Errorf("no active GHL credential: %w", err)
	}

	client := ghl.NewClient(s.Config.GHLAPIBase, cred.AccessToken, s.Config.SyncPageDelay)
	transformer := NewTransformer(s.loc, noResolver{}, s.Log)
	reconciler := NewReconciler[contact.Contact](s.ContactRepo, s.Log)

	res := CollectionResult{Name: "contacts"}

	var raws []ghl.RawContact
	var cur ghl.Cursor
	for page := 0; ; page++ {
		if page >= ghl.MaxPages {
			s.Log.Warn("reached maximum page limit, truncating contacts")
			res.Truncated = true
			break
		}

		p, err := client.ListContacts(ctx, cred.LocationID, s.Config.SyncPageSize, cur, page)
		if err != nil {
			s.Log.Error("contact page fetch failed",
				zap.Int("page", page+1), zap.Error(err))
			res.Error = err.Error()
			break
		}

		raws = append(raws, p.Contacts...)

		next, cont := cur.Advance(contactPageInfo(p), s.Config.SyncPageSize, len(raws))
		cur = next
		if !cont {
			break
		}
	}

	res.Fetched = len(raws)

	batch := make([]contact.Contact, 0, len(raws))
	for _, raw := range raws {
		batch = append(batch, transformer.Contact(raw))
	}

	outcome, _ := reconciler.Upsert(ctx, batch)
	res.Saved = outcome.Saved()
	res.Failed = outcome.Failed

	summary.add(res)

	s.Log.Info("contacts synced",
		zap.Int("fetched", res.Fetched),
		zap.Int("saved", res.Saved),
		zap.Int("failed", res.Failed),
		zap.String("locationId", cred.LocationID))

	return summary, nil
}

func (s *SyncServiceImpl) startLog(ctx context.Context, kind string) *SyncLog {
	log := &SyncLog{
		Kind:      kind,
		StartTime: time.Now(),
		Status:    "in_progress",
	}
	if err := s.LogRepo.Create(ctx, log); err != nil {
		s.Log.Error("failed to create sync log", zap.Error(err))
	}
	return log
}

func (s *SyncServiceImpl) finishLog(ctx context.Context, log *SyncLog, summary *RunSummary, runErr error) {
	log.EndTime = time.Now()
	log.Summary = *summary
	if runErr != nil {
		log.Status = "failed"
		log.Error = runErr.Error()
	} else {
		log.Status = "success"
	}
	if err := s.LogRepo.Update(ctx, log); err != nil {
		s.Log.Error("failed to update sync log", zap.Error(err))
	}
}

func opportunityPageInfo(p *ghl.OpportunityPage) ghl.PageInfo {
	info := ghl.PageInfo{Count: len(p.Opportunities), Total: p.Meta.Total}
	if info.Count > 0 {
		last := p.Opportunities[info.Count-1]
		info.LastID = last.ID
		info.LastDate = last.CreatedAt
	}
	return info
}

func contactPageInfo(p *ghl.ContactPage) ghl.PageInfo {
	info := ghl.PageInfo{Count: len(p.Contacts), Total: p.Meta.Total}
	if info.Count > 0 {
		last := p.Contacts[info.Count-1]
		info.LastID = last.ID
		info.LastDate = last.DateAdded
	}
	return info
}

// noResolver backs contact transforms, which need no reference data.
type noResolver struct{}

func (noResolver) PipelineName(string) string      { return "" }
func (noResolver) StageName(string, string) string { return "" }

func (noResolver) User(context.Context, string) ghl.UserProfile {
	return ghl.UserProfile{}
}
