package scheduler

import (
	"context"
	"time"

	"carelink/internal/shared/logger"
)

// SweepRunner runs one full reconciliation sweep over all linked
// tickets.
type SweepRunner interface {
	SyncAll(ctx context.Context) error
}

// TicketSyncScheduler drives the periodic reconciliation sweep. The
// first sweep runs immediately on Start; later sweeps fire on the
// configured interval until Stop or context cancellation. A sweep in
// flight is never interrupted between cycles.
type TicketSyncScheduler struct {
	runner   SweepRunner
	logger   logger.Interface
	interval time.Duration
	stopChan chan struct{}
	doneChan chan struct{}
}

func NewTicketSyncScheduler(runner SweepRunner, interval time.Duration, logger logger.Interface) *TicketSyncScheduler {
	if interval <= 0 {
		interval = 300 * time.Second
	}
	return &TicketSyncScheduler{
		runner:   runner,
		logger:   logger,
		interval: interval,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
}

func (s *TicketSyncScheduler) Start(ctx context.Context) {
	s.logger.Infow("starting ticket sync scheduler", "interval", s.interval)
	go s.run(ctx)
}

// Stop signals the loop and waits for the current sweep to finish.
func (s *TicketSyncScheduler) Stop() {
	close(s.stopChan)
	<-s.doneChan
	s.logger.Infow("ticket sync scheduler stopped")
}

func (s *TicketSyncScheduler) run(ctx context.Context) {
	defer close(s.doneChan)

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *TicketSyncScheduler) sweep(ctx context.Context) {
	if err := s.runner.SyncAll(ctx); err != nil {
		s.logger.Errorw("ticket sync sweep failed", "error", err)
	}
}
