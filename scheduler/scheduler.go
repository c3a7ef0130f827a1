package scheduler

import (
	"context"
	"log"
	"time"

	"capitals-scraper/notify"
)

// Scheduler re-runs the scrape pipeline on a fixed interval
type Scheduler struct {
	interval time.Duration
	job      func() error
	notifier *notify.Notifier
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewScheduler creates a new scheduler. notifier may be nil.
func NewScheduler(interval time.Duration, job func() error, notifier *notify.Notifier) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		interval: interval,
		job:      job,
		notifier: notifier,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start starts the scheduler in a goroutine
func (s *Scheduler) Start() {
	go s.run()
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.cancel()
	log.Println("Scheduler stopped")
}

// run is the main scheduler loop
func (s *Scheduler) run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Run once immediately rather than waiting a full interval
	s.runJob()

	for {
		select {
		case <-s.ctx.Done():
			log.Println("Scheduler stopped")
			return
		case <-ticker.C:
			s.runJob()
		}
	}
}

func (s *Scheduler) runJob() {
	log.Println("Scheduler: starting scrape run")
	if err := s.job(); err != nil {
		log.Printf("Scheduler: run failed: %v\n", err)
		if s.notifier != nil {
			s.notifier.NotifyFailure(err)
		}
		return
	}
	log.Println("Scheduler: run completed")
}
