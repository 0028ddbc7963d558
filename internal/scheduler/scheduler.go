// Package scheduler runs the periodic import of external job listings.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"jobboard/internal/infrastructure/jobfeed"
	"jobboard/internal/usecase"

	"github.com/robfig/cron/v3"
)

const importLockKey = "jobs:import:lock"

type Importer interface {
	ImportExternal(ctx context.Context, listings []usecase.ExternalListing) (usecase.ImportResult, error)
}

// Locker keeps two instances from importing the same feed at once.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
}

type Scheduler struct {
	cron     *cron.Cron
	spec     string
	feed     jobfeed.Client
	importer Importer
	locker   Locker
	pages    int
	lockTTL  time.Duration
	logger   *log.Logger
}

func New(spec string, feed jobfeed.Client, importer Importer, locker Locker, pages int, logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.Default()
	}
	if pages <= 0 {
		pages = 1
	}
	if spec == "" {
		spec = "@every 5m"
	}
	return &Scheduler{
		cron:     cron.New(cron.WithLogger(cron.PrintfLogger(logger))),
		spec:     spec,
		feed:     feed,
		importer: importer,
		locker:   locker,
		pages:    pages,
		lockTTL:  4 * time.Minute,
		logger:   logger,
	}
}

// Start registers the import job and runs one import right away so the board
// is not empty until the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.feed == nil || s.importer == nil {
		s.logger.Printf("[Scheduler] job feed disabled")
		return nil
	}
	if _, err := s.cron.AddFunc(s.spec, func() { s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.logger.Printf("[Scheduler] cron started spec=%s", s.spec)

	go s.RunOnce(ctx)
	return nil
}

func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Printf("[Scheduler] cron stopped")
}

// RunOnce fetches every configured page and hands the listings to the
// importer. It returns early when another instance holds the lock.
func (s *Scheduler) RunOnce(ctx context.Context) {
	if s.locker != nil {
		ok, err := s.locker.TryLock(ctx, importLockKey, s.lockTTL)
		if err != nil {
			s.logger.Printf("[Scheduler] lock error: %v", err)
			return
		}
		if !ok {
			s.logger.Printf("[Scheduler] import already running elsewhere, skipping")
			return
		}
		defer func() {
			_ = s.locker.Delete(context.Background(), importLockKey)
		}()
	}

	start := time.Now()
	listings := make([]usecase.ExternalListing, 0)
	for page := 1; page <= s.pages; page++ {
		if ctx.Err() != nil {
			return
		}
		batch, err := s.feed.FetchPage(ctx, page)
		if err != nil {
			s.logger.Printf("[Scheduler] fetch page=%d error: %v", page, err)
			break
		}
		if len(batch) == 0 {
			break
		}
		listings = append(listings, batch...)
	}
	if len(listings) == 0 {
		s.logger.Printf("[Scheduler] no listings fetched")
		return
	}

	res, err := s.importer.ImportExternal(ctx, listings)
	if err != nil {
		s.logger.Printf("[Scheduler] import error: %v", err)
		return
	}
	s.logger.Printf("[Scheduler] import cycle complete fetched=%d imported=%d skipped=%d duration=%s",
		res.Fetched, res.Imported, res.Skipped, time.Since(start))
}
