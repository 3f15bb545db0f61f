package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/valutatrade_hub/internal/apperrors"
	"github.com/SscSPs/valutatrade_hub/internal/core/domain"
)

// Scheduler runs an UpdateRunner periodically in a background goroutine.
// After a failed cycle it waits retryDelay instead of the full interval.
type Scheduler struct {
	runner     UpdateRunner
	interval   time.Duration
	retryDelay time.Duration
	logger     *slog.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

func NewScheduler(runner UpdateRunner, interval, retryDelay time.Duration, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	if retryDelay <= 0 || retryDelay > interval {
		retryDelay = interval
	}
	return &Scheduler{
		runner:     runner,
		interval:   interval,
		retryDelay: retryDelay,
		logger:     logger,
	}
}

// Start launches the loop. The first cycle runs immediately. The loop ends when
// ctx is cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.interval <= 0 {
		return fmt.Errorf("%w: update interval must be positive", apperrors.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return fmt.Errorf("%w: scheduler already running", apperrors.ErrInvalidOperation)
	}

	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.running = true

	go s.loop(loopCtx, s.done)
	s.logger.Info("Rates scheduler started", slog.Duration("interval", s.interval))
	return nil
}

// Stop cancels the loop and waits for the current cycle to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (s *Scheduler) Interval() time.Duration { return s.interval }

// IsRunning reports whether the loop is active.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// RunOnce runs one cycle in the caller's goroutine.
func (s *Scheduler) RunOnce(ctx context.Context) (*domain.RefreshReport, error) {
	return s.runner.RunUpdate(ctx, "")
}

func (s *Scheduler) loop(ctx context.Context, done chan struct{}) {
	defer func() {
		s.mu.Lock()
		s.running = false
		s.cancel = nil
		s.mu.Unlock()
		close(done)
		s.logger.Info("Rates scheduler stopped")
	}()

	for {
		wait := s.interval
		if _, err := s.RunOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			s.logger.Warn("Scheduled rates update failed",
				slog.String("error", err.Error()),
				slog.Duration("retry_in", s.retryDelay))
			wait = s.retryDelay
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}
