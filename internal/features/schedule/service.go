package schedule

import (
	"context"
	"time"

	"go-ghlsync/internal/config"
	"go-ghlsync/internal/features/credential"
	"go-ghlsync/internal/features/sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Scheduler owns the recurring jobs: upstream token refresh and the
// combined contact + opportunity sync.
type Scheduler struct {
	cron        *cron.Cron
	credentials credential.CredentialService
	syncService sync.SyncService
	config      *config.Config
	log         *zap.Logger
}

func NewScheduler(
	lc fx.Lifecycle,
	credentials credential.CredentialService,
	syncService sync.SyncService,
	cfg *config.Config,
	log *zap.Logger,
) *Scheduler {
	s := &Scheduler{
		cron:        cron.New(),
		credentials: credentials,
		syncService: syncService,
		config:      cfg,
		log:         log,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if !cfg.SchedulerEnabled {
				log.Info("scheduler disabled by config")
				return nil
			}
			return s.Start()
		},
		OnStop: func(ctx context.Context) error {
			s.Stop()
			return nil
		},
	})

	return s
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.config.RefreshSchedule, s.refreshTokens); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(s.config.SyncSchedule, s.runSync); err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info("scheduler started",
		zap.String("refreshSchedule", s.config.RefreshSchedule),
		zap.String("syncSchedule", s.config.SyncSchedule))
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(30 * time.Second):
		s.log.Warn("scheduler stop timed out waiting for running jobs")
	}
}

// refreshTokens renews both upstream credentials so the next sync run
// starts with valid access tokens.
func (s *Scheduler) refreshTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.credentials.RefreshGHL(ctx); err != nil {
		s.log.Error("scheduled GHL token refresh failed", zap.Error(err))
	}
	if _, err := s.credentials.RefreshSmartVault(ctx); err != nil {
		s.log.Error("scheduled SmartVault token refresh failed", zap.Error(err))
	}
}

func (s *Scheduler) runSync() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	summary, err := s.syncService.RunAll(ctx)
	if err != nil {
		s.log.Error("scheduled sync failed", zap.Error(err))
		return
	}
	s.log.Info("scheduled sync finished",
		zap.Int("fetched", summary.TotalFetched),
		zap.Int("saved", summary.TotalSaved),
		zap.Int("failed", summary.TotalFailed))
}
