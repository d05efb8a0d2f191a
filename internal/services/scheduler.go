package services

import (
	"context"
	"sync"
	"time"

	"satta-board/internal/store"
	"satta-board/internal/types"

	"github.com/sirupsen/logrus"
)

const (
	migrationLockPrefix = "lock:daily-migration:"
	autoSyncLockKey     = "lock:auto-sync"
)

// Scheduler fires the daily migration at local midnight and auto-sync on a
// configured interval. Both jobs take a store SetNX lock first, so with a
// shared Redis store only one node runs each job.
type Scheduler struct {
	store         store.Store
	configManager types.ConfigManager
	lifecycle     *LifecycleService
	scrape        *ScrapeImportService
	location      *time.Location
	stopChan      chan struct{}
	wg            sync.WaitGroup
}

// NewScheduler creates a Scheduler.
func NewScheduler(
	s store.Store,
	configManager types.ConfigManager,
	lifecycle *LifecycleService,
	scrape *ScrapeImportService,
) *Scheduler {
	return &Scheduler{
		store:         s,
		configManager: configManager,
		lifecycle:     lifecycle,
		scrape:        scrape,
		location:      resolveLocation(configManager),
		stopChan:      make(chan struct{}),
	}
}

// Start begins the scheduling loops enabled by configuration.
func (s *Scheduler) Start() {
	cfg := s.configManager.GetSchedulerConfig()

	if cfg.EnableDailyMigration {
		s.wg.Add(1)
		go s.runMigrationLoop()
		logrus.Info("Daily migration scheduler started")
	}
	if cfg.AutoSyncIntervalMinutes > 0 {
		s.wg.Add(1)
		go s.runAutoSyncLoop(time.Duration(cfg.AutoSyncIntervalMinutes) * time.Minute)
		logrus.Infof("Auto-sync scheduler started (every %dm)", cfg.AutoSyncIntervalMinutes)
	}
}

// Stop stops the scheduling loops, respecting the shutdown timeout.
func (s *Scheduler) Stop(ctx context.Context) {
	close(s.stopChan)

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logrus.Info("Scheduler stopped gracefully.")
	case <-ctx.Done():
		logrus.Warn("Scheduler stop timed out.")
	}
}

// runMigrationLoop sleeps until the next local midnight, runs the rollover,
// and repeats.
func (s *Scheduler) runMigrationLoop() {
	defer s.wg.Done()

	for {
		wait := time.Until(s.nextMidnight())
		select {
		case <-time.After(wait):
			s.runDailyMigration()
		case <-s.stopChan:
			return
		}
	}
}

// nextMidnight returns the next local midnight after now.
func (s *Scheduler) nextMidnight() time.Time {
	now := time.Now().In(s.location)
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location).AddDate(0, 0, 1)
	return next
}

// runDailyMigration runs the rollover under a per-date lock so restarts and
// peer nodes cannot migrate the same day twice.
func (s *Scheduler) runDailyMigration() {
	date := time.Now().In(s.location).Format("2006-01-02")
	acquired, err := s.store.SetNX(migrationLockPrefix+date, []byte("1"), 23*time.Hour)
	if err != nil {
		logrus.WithError(err).Error("Failed to acquire daily migration lock")
		return
	}
	if !acquired {
		logrus.WithField("date", date).Debug("Daily migration already ran elsewhere")
		return
	}

	if _, err := s.lifecycle.RunDailyMigration(); err != nil {
		logrus.WithError(err).Error("Scheduled daily migration failed")
	}
}

// runAutoSyncLoop pulls scraped results on the configured interval.
func (s *Scheduler) runAutoSyncLoop(interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runAutoSync(interval)
		case <-s.stopChan:
			return
		}
	}
}

// runAutoSync runs one sync pass under a short lock.
func (s *Scheduler) runAutoSync(interval time.Duration) {
	acquired, err := s.store.SetNX(autoSyncLockKey, []byte("1"), interval/2)
	if err != nil {
		logrus.WithError(err).Error("Failed to acquire auto-sync lock")
		return
	}
	if !acquired {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if _, err := s.scrape.Run(ctx); err != nil {
		logrus.WithError(err).Warn("Scheduled auto-sync failed")
	}
}
